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

// Package gfm converts [GitHub Flavored Markdown] into HTML fragments.
//
// Parsing happens in two phases:
// a line-oriented block phase that builds a tree of block nodes,
// and an inline phase that resolves code spans, autolinks,
// emphasis, hard breaks, and backslash escapes
// inside each leaf block's text.
// The parser is total: every UTF-8 input produces output,
// with malformed constructs degrading to literal text.
//
// [GitHub Flavored Markdown]: https://github.github.com/gfm/
package gfm

// Parse builds the block tree for an entire document.
func Parse(text string) *Parser {
	p := NewParser()
	p.ParseText(text)
	return p
}

// ToHTML converts a Markdown document to an HTML fragment.
func ToHTML(text string) string {
	return Parse(text).HTML()
}
