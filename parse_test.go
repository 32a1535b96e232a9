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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// treeShape flattens a block tree into a readable signature.
func treeShape(b *Block) string {
	if len(b.Children()) == 0 {
		return b.Kind().String()
	}
	parts := make([]string, 0, len(b.Children()))
	for _, c := range b.Children() {
		parts = append(parts, treeShape(c))
	}
	return b.Kind().String() + "(" + strings.Join(parts, " ") + ")"
}

func TestParseTreeShape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			"# h\npara\n",
			"documentKind(ATXHeadingKind ParagraphKind)",
		},
		{
			"> # h\n> text\n",
			"documentKind(BlockQuoteKind(ATXHeadingKind ParagraphKind))",
		},
		{
			"- a\n  - b\n- c\n",
			"documentKind(BulletListKind(ListItemKind(ParagraphKind BulletListKind(ListItemKind(ParagraphKind))) ListItemKind(ParagraphKind)))",
		},
		{
			"- a\nlazy\n",
			"documentKind(BulletListKind(ListItemKind(ParagraphKind)))",
		},
		{
			"p\n===\n",
			"documentKind(ParagraphKind)",
		},
		{
			"```\nx\n```\nafter\n",
			"documentKind(FencedCodeBlockKind ParagraphKind)",
		},
		{
			"    code\n\npara\n",
			"documentKind(IndentedCodeBlockKind ParagraphKind)",
		},
	}
	for _, test := range tests {
		got := treeShape(Parse(test.input).Document())
		if got != test.want {
			t.Errorf("treeShape(Parse(%q)) = %s; want %s", test.input, got, test.want)
		}
	}
}

func TestLazyContinuation(t *testing.T) {
	tests := []struct {
		input string
		want  []string // paragraph lines
	}{
		// A bare line continues the paragraph inside a block quote.
		{"> a\nb\n", []string{"a\n", "b\n"}},
		// And inside a list item.
		{"- a\nb\n", []string{"a\n", "b\n"}},
	}
	for _, test := range tests {
		doc := Parse(test.input).Document()
		para := doc.Children()[0].lastDescendant()
		if para.Kind() != ParagraphKind {
			t.Errorf("Parse(%q): deepest block is %v; want %v", test.input, para.Kind(), ParagraphKind)
			continue
		}
		if diff := cmp.Diff(test.want, para.Lines()); diff != "" {
			t.Errorf("Parse(%q) paragraph lines (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestLazyBlankClosesAll(t *testing.T) {
	// A blank line after a lazy continuation closes the whole stack.
	doc := Parse("> a\nb\n\nc\n").Document()
	if got, want := treeShape(doc), "documentKind(BlockQuoteKind(ParagraphKind) ParagraphKind)"; got != want {
		t.Errorf("treeShape = %s; want %s", got, want)
	}
}

func TestListLooseness(t *testing.T) {
	tests := []struct {
		input     string
		loose     int
		renders   bool
		wantItems int
	}{
		// Tight: the only blank is at the very end.
		{"- a\n- b\n", 2, false, 2},
		// Loose: a blank line separates the items.
		{"- a\n\n- b\n", 1, true, 2},
		// A trailing blank after the last item keeps the list tight.
		{"- a\n- b\n\n", 2, false, 2},
		// A blank line before the list ends does not make it loose.
		{"- a\n\nb\n", 1, false, 1},
	}
	for _, test := range tests {
		doc := Parse(test.input).Document()
		list := doc.Children()[0]
		if !list.Kind().IsList() {
			t.Errorf("Parse(%q): first block is %v; want a list", test.input, list.Kind())
			continue
		}
		if list.loose != test.loose {
			t.Errorf("Parse(%q): list.loose = %d; want %d", test.input, list.loose, test.loose)
		}
		if got := list.isLooseList(); got != test.renders {
			t.Errorf("Parse(%q): isLooseList() = %t; want %t", test.input, got, test.renders)
		}
		if got := len(list.Children()); got != test.wantItems {
			t.Errorf("Parse(%q): %d items; want %d", test.input, got, test.wantItems)
		}
	}
}

func TestListTerminatedByOtherBlock(t *testing.T) {
	// A non-item block force-closes enclosing lists,
	// and the same line is reinterpreted against the re-exposed container.
	tests := []struct {
		input string
		want  string
	}{
		{"- a\n# h\n", "documentKind(BulletListKind(ListItemKind(ParagraphKind)) ATXHeadingKind)"},
		{"- a\n\n b\n", "documentKind(BulletListKind(ListItemKind(ParagraphKind)) ParagraphKind)"},
		{"- a\n\nb\n", "documentKind(BulletListKind(ListItemKind(ParagraphKind)) ParagraphKind)"},
	}
	for _, test := range tests {
		got := treeShape(Parse(test.input).Document())
		if got != test.want {
			t.Errorf("treeShape(Parse(%q)) = %s; want %s", test.input, got, test.want)
		}
	}
}

func TestOrderedListInterruptingParagraph(t *testing.T) {
	// Only a list starting at 1 may interrupt a paragraph.
	if got, want := treeShape(Parse("p\n1. one\n").Document()),
		"documentKind(ParagraphKind OrderedListKind(ListItemKind(ParagraphKind)))"; got != want {
		t.Errorf("start=1: treeShape = %s; want %s", got, want)
	}
	if got, want := treeShape(Parse("p\n2. two\n").Document()),
		"documentKind(ParagraphKind)"; got != want {
		t.Errorf("start=2: treeShape = %s; want %s", got, want)
	}
}

func TestSetextAbsorption(t *testing.T) {
	doc := Parse("foo\n===\n").Document()
	para := doc.Children()[0]
	if para.Kind() != ParagraphKind || !para.setextHeading {
		t.Fatalf("Parse(%q): got %v (setext=%t); want setext paragraph", "foo\n===\n", para.Kind(), para.setextHeading)
	}
	if got := para.HeadingLevel(); got != 1 {
		t.Errorf("HeadingLevel() = %d; want 1", got)
	}
	if got := Parse("foo\n---\n").Document().Children()[0].HeadingLevel(); got != 2 {
		t.Errorf("dash underline: HeadingLevel() = %d; want 2", got)
	}
	// Lazy continuation lines do not become underlines.
	doc = Parse("> foo\n---\n").Document()
	if got := doc.Children()[0].Children()[0]; got.setextHeading {
		t.Error("lazy underline was absorbed as a setext heading")
	}
}

func TestParsersDoNotShareState(t *testing.T) {
	// Two parsers never share state.
	p1, p2 := NewParser(), NewParser()
	p1.ParseText("# a\n")
	p2.ParseText("- b\n")
	if got, want := treeShape(p1.Document()), "documentKind(ATXHeadingKind)"; got != want {
		t.Errorf("p1 shape = %s; want %s", got, want)
	}
	if got, want := treeShape(p2.Document()), "documentKind(BulletListKind(ListItemKind(ParagraphKind)))"; got != want {
		t.Errorf("p2 shape = %s; want %s", got, want)
	}
}
