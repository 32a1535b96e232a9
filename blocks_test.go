// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package gfm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsThematicBreak(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", false},
		{"---\n", true},
		{"***\n", true},
		{"___\n", true},
		{"+++\n", false},
		{"===\n", false},
		{"--\n", false},
		{"_____________________________________\n", true},
		{"- - -\n", true},
		{"**  * ** * ** * **\n", true},
		{"-     -      -      -\n", true},
		{"- - - -    \n", true},
		{"_ _ _ _ a\n", false},
		{"a------\n", false},
		{"---a---\n", false},
		{"*-*\n", false},
		{"    ---\n", false},
		{"   ---\n", true},
	}
	for _, test := range tests {
		if got := isThematicBreak(test.line); got != test.want {
			t.Errorf("isThematicBreak(%q) = %t; want %t", test.line, got, test.want)
		}
	}
}

func TestParseATXHeading(t *testing.T) {
	tests := []struct {
		line string
		want atxHeading
	}{
		{"# foo\n", atxHeading{level: 1, content: "foo"}},
		{"## foo\n", atxHeading{level: 2, content: "foo"}},
		{"####### foo\n", atxHeading{}},
		{"#5 bolt\n", atxHeading{}},
		{"#hashtag\n", atxHeading{}},
		{`# foo *bar* \*baz\*` + "\n", atxHeading{level: 1, content: `foo *bar* \*baz\*`}},
		{"#                  foo                     \n", atxHeading{level: 1, content: "foo"}},
		{"## foo ##\n", atxHeading{level: 2, content: "foo"}},
		{"# foo ##################################\n", atxHeading{level: 1, content: "foo"}},
		{"### foo ###     \n", atxHeading{level: 3, content: "foo"}},
		{"### foo ### b\n", atxHeading{level: 3, content: "foo ### b"}},
		{"# foo#\n", atxHeading{level: 1, content: "foo#"}},
		{`### foo \###` + "\n", atxHeading{level: 3, content: `foo \###`}},
		{"## \n", atxHeading{level: 2}},
		{"#\n", atxHeading{level: 1}},
		{"### ###\n", atxHeading{level: 3}},
	}
	for _, test := range tests {
		got := parseATXHeading(test.line)
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(atxHeading{})); diff != "" {
			t.Errorf("parseATXHeading(%q) (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestParseCodeFence(t *testing.T) {
	tests := []struct {
		line string
		want codeFence
		ok   bool
	}{
		{"```\n", codeFence{char: '`', n: 3}, true},
		{"```py info\n", codeFence{char: '`', n: 3, info: "py info"}, true},
		{"  ~~~~\n", codeFence{char: '~', n: 4, indent: 2}, true},
		{"``\n", codeFence{}, false},
		{"    ```\n", codeFence{}, false},
		{"``` a`b\n", codeFence{}, false},
		{"~~~ a`b\n", codeFence{}, false},
		{"~~~~~~\n", codeFence{char: '~', n: 6}, true},
	}
	for _, test := range tests {
		got, ok := parseCodeFence(test.line)
		if ok != test.ok {
			t.Errorf("parseCodeFence(%q) ok = %t; want %t", test.line, ok, test.ok)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(codeFence{})); diff != "" {
			t.Errorf("parseCodeFence(%q) (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestIsClosingFence(t *testing.T) {
	tests := []struct {
		line string
		char byte
		n    int
		want bool
	}{
		{"```\n", '`', 3, true},
		{"````\n", '`', 3, true},
		{"``\n", '`', 3, false},
		{"~~~\n", '`', 3, false},
		{"```x\n", '`', 3, false},
		{"   ```  \n", '`', 3, true},
		{"    ```\n", '`', 3, false},
	}
	for _, test := range tests {
		if got := isClosingFence(test.line, test.char, test.n); got != test.want {
			t.Errorf("isClosingFence(%q, %q, %d) = %t; want %t", test.line, test.char, test.n, got, test.want)
		}
	}
}

func TestParseListStart(t *testing.T) {
	tests := []struct {
		line string
		want listMarker
		ok   bool
	}{
		{"- a\n", listMarker{delim: '-'}, true},
		{"+ x\n", listMarker{delim: '+'}, true},
		{"* y\n", listMarker{delim: '*'}, true},
		{"-\n", listMarker{delim: '-'}, true},
		{"1. a\n", listMarker{delim: '.', n: 1, ordered: true}, true},
		{"12345. b\n", listMarker{delim: '.', n: 12345, ordered: true}, true},
		{"7) c\n", listMarker{delim: ')', n: 7, ordered: true}, true},
		{"1234567890. c\n", listMarker{}, false},
		{"-x\n", listMarker{}, false},
		{"1.x\n", listMarker{}, false},
		{"   - d\n", listMarker{indent: 3, delim: '-'}, true},
		{"    - e\n", listMarker{}, false},
	}
	for _, test := range tests {
		got, ok := parseListStart(test.line)
		if ok != test.ok {
			t.Errorf("parseListStart(%q) ok = %t; want %t", test.line, ok, test.ok)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(listMarker{})); diff != "" {
			t.Errorf("parseListStart(%q) (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestIsSetextUnderline(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"===\n", true},
		{"=\n", true},
		{"---\n", true},
		{"-\n", true},
		{"   ----   \n", true},
		{"    ---\n", false},
		{"=-=\n", false},
		{"=== x\n", false},
		{"\n", false},
		{"", false},
	}
	for _, test := range tests {
		if got := isSetextUnderline(test.line); got != test.want {
			t.Errorf("isSetextUnderline(%q) = %t; want %t", test.line, got, test.want)
		}
	}
}

func TestNewListItemIndent(t *testing.T) {
	tests := []struct {
		line   string
		offset int
		want   int
	}{
		{"- a\n", 0, 2},
		{"-  a\n", 0, 3},
		{"1. a\n", 0, 3},
		{"10. a\n", 0, 4},
		{"-\n", 0, 2},
		{"- \n", 0, 2},
		// Five or more spaces after the marker cap at marker width plus one.
		{"-      a\n", 0, 2},
		{"12.      a\n", 0, 4},
	}
	for _, test := range tests {
		item := newListItem(test.line, 0, test.offset)
		if item.indent != test.want {
			t.Errorf("newListItem(%q, 0, %d).indent = %d; want %d", test.line, test.offset, item.indent, test.want)
		}
	}
}

func TestStripBlockQuoteMarker(t *testing.T) {
	tests := []struct {
		line string
		rest string
		ok   bool
	}{
		{"> a\n", "a\n", true},
		{">a\n", "a\n", true},
		{">  a\n", " a\n", true},
		{"   > a\n", "a\n", true},
		{"    > a\n", "", false},
		{"a > b\n", "", false},
		{">\n", "\n", true},
	}
	for _, test := range tests {
		rest, ok := stripBlockQuoteMarker(test.line)
		if ok != test.ok || rest != test.rest {
			t.Errorf("stripBlockQuoteMarker(%q) = %q, %t; want %q, %t", test.line, rest, ok, test.rest, test.ok)
		}
	}
}
