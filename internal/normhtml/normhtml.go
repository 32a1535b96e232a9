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

// Package normhtml normalizes rendered Markdown HTML for comparison in tests:
// whitespace between block-level tags is insignificant,
// attribute order is canonicalized,
// and text is consistently re-escaped.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Normalize strips insignificant differences from an HTML fragment.
func Normalize(b []byte) []byte {
	type attribute struct {
		key   string
		value string
	}

	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var out []byte
	inPre := 0
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return bytes.TrimSpace(out)
		case html.TextToken:
			text := tok.Text()
			if inPre == 0 {
				text = whitespaceRE.ReplaceAll(text, []byte(" "))
			}
			out = append(out, textEscaper.Replace(bytes.Clone(text))...)
		case html.EndTagToken:
			name, _ := tok.TagName()
			if atom.Lookup(name) == atom.Pre {
				inPre--
			}
			if isBlockTag(name) && inPre == 0 {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			out = append(out, "</"...)
			out = append(out, name...)
			out = append(out, '>')
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			if atom.Lookup(name) == atom.Pre {
				inPre++
			}
			if isBlockTag(name) && inPre == 0 {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			out = append(out, '<')
			out = append(out, name...)
			if hasAttr {
				var attrs []attribute
				for {
					k, v, more := tok.TagAttr()
					attrs = append(attrs, attribute{string(k), string(v)})
					if !more {
						break
					}
				}
				sort.Slice(attrs, func(i, j int) bool {
					return attrs[i].key < attrs[j].key
				})
				for _, attr := range attrs {
					out = append(out, ' ')
					out = append(out, attr.key...)
					out = append(out, `="`...)
					out = append(out, html.EscapeString(attr.value)...)
					out = append(out, '"')
				}
			}
			out = append(out, '>')
		}
	}
}

// isBlockTag reports whether whitespace around the tag is insignificant.
// The set covers the block-level tags the renderer emits.
func isBlockTag(name []byte) bool {
	switch atom.Lookup(name) {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Pre, atom.Blockquote, atom.Ul, atom.Ol, atom.Li, atom.Hr:
		return true
	}
	return false
}
