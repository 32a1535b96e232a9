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
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
)

// HTML renders the parsed document as an HTML fragment.
// Leaf content is resolved to inline nodes during rendering;
// the block tree itself is left untouched,
// so HTML may be called more than once.
func (p *Parser) HTML() string {
	r := &renderState{refs: p.References}
	r.block(p.doc)
	return string(r.dst)
}

type renderState struct {
	refs ReferenceMap
	dst  []byte
}

func (r *renderState) openTag(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

func (r *renderState) block(b *Block) {
	switch b.kind {
	case documentKind:
		for _, c := range b.children {
			r.block(c)
		}
	case ParagraphKind:
		if b.setextHeading {
			content := strings.TrimSpace(strings.Join(b.lines[:len(b.lines)-1], ""))
			r.heading(b.HeadingLevel(), content)
			return
		}
		r.openTag(atom.P)
		r.inlineContent(strings.TrimSpace(strings.Join(b.lines, "")))
		r.closeTag(atom.P)
		r.dst = append(r.dst, '\n')
	case ATXHeadingKind:
		r.heading(b.level, strings.Join(b.lines, ""))
	case ThematicBreakKind:
		r.dst = append(r.dst, "<hr />"...)
	case IndentedCodeBlockKind:
		lines := b.lines
		for len(lines) > 0 && isBlankLine(lines[len(lines)-1]) {
			lines = lines[:len(lines)-1]
		}
		r.openTag(atom.Pre)
		r.openTag(atom.Code)
		r.dst = append(r.dst, strings.Join(lines, "")...)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
	case FencedCodeBlockKind:
		r.openTag(atom.Pre)
		r.dst = append(r.dst, "<code"...)
		if words := strings.Fields(b.info); len(words) > 0 {
			r.dst = append(r.dst, ` class="language-`...)
			r.dst = escapeHTML(r.dst, words[0])
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, '>')
		r.dst = append(r.dst, strings.Join(b.lines, "")...)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.dst = append(r.dst, '\n')
	case BlockQuoteKind:
		r.openTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
		for _, c := range b.children {
			r.block(c)
		}
		r.closeTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
	case BulletListKind, OrderedListKind:
		r.list(b)
	case ListItemKind:
		r.listItem(b, false)
	}
}

func (r *renderState) heading(level int, content string) {
	name := headingAtom(level)
	r.openTag(name)
	r.inlineContent(content)
	r.closeTag(name)
	r.dst = append(r.dst, '\n')
}

func (r *renderState) list(b *Block) {
	ordered := b.kind == OrderedListKind
	if ordered {
		r.dst = append(r.dst, "<ol"...)
		if b.start != 1 {
			r.dst = append(r.dst, ` start="`...)
			r.dst = strconv.AppendInt(r.dst, int64(b.start), 10)
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, ">\n"...)
	} else {
		r.dst = append(r.dst, "<ul>\n"...)
	}
	loose := b.isLooseList()
	for _, it := range b.children {
		r.listItem(it, loose)
	}
	if ordered {
		r.dst = append(r.dst, "</ol>\n"...)
	} else {
		r.dst = append(r.dst, "</ul>\n"...)
	}
}

// listItem renders an item's children,
// with paragraphs reduced to their inline content:
// list tightness only affects the whitespace around items.
func (r *renderState) listItem(b *Block, loose bool) {
	inner := &renderState{refs: r.refs}
	for _, c := range b.children {
		if c.kind == ParagraphKind && !c.setextHeading {
			inner.inlineContent(strings.TrimSpace(strings.Join(c.lines, "")))
			if loose {
				inner.dst = append(inner.dst, '\n')
			}
			continue
		}
		inner.block(c)
	}
	content := strings.TrimSpace(string(inner.dst))
	if loose {
		r.dst = append(r.dst, "<li>\n"...)
		r.dst = append(r.dst, content...)
		r.dst = append(r.dst, "\n</li>\n"...)
	} else {
		r.dst = append(r.dst, "<li>"...)
		r.dst = append(r.dst, content...)
		r.dst = append(r.dst, "</li>\n"...)
	}
}

// isLooseList reports whether the list renders loose:
// an interior blank line was recorded before its last child,
// or a blank line ended a descendant list
// somewhere before the end of this one.
func (b *Block) isLooseList() bool {
	loose := -1 < b.loose && b.loose < itemChildCount(b)
	var lastGrandchild *Block
	if n := len(b.children); n > 0 {
		if it := b.children[n-1]; len(it.children) > 0 {
			lastGrandchild = it.children[len(it.children)-1]
		}
	}
	for _, it := range b.children {
		for _, ch := range it.children {
			if ch.kind.IsList() && ch.loose > -1 && !ch.isLooseList() && ch != lastGrandchild {
				return true
			}
		}
	}
	return loose
}

func (r *renderState) inlineContent(text string) {
	for _, n := range parseInlines(r.refs, text) {
		r.inline(n)
	}
}

func (r *renderState) inline(n *Inline) {
	switch n.kind {
	case TextKind:
		r.dst = escapeHTML(r.dst, n.text)
	case SoftBreakKind:
		r.dst = append(r.dst, '\n')
	case HardBreakKind:
		r.dst = append(r.dst, "<br />\n"...)
	case CodeSpanKind:
		r.openTag(atom.Code)
		r.dst = escapeHTML(r.dst, strings.TrimSpace(inlineText(n)))
		r.closeTag(atom.Code)
	case AutolinkKind:
		r.anchor(n.text, n.text)
	case EmailAutolinkKind:
		r.anchor("mailto:"+n.text, n.text)
	case EmphasisKind:
		name := atom.Em
		if n.strong {
			name = atom.Strong
		}
		r.openTag(name)
		for _, c := range n.children {
			r.inline(c)
		}
		r.closeTag(name)
	case LinkKind:
		r.dst = append(r.dst, `<a href="`...)
		r.dst = escapeHTML(r.dst, n.dest)
		r.dst = append(r.dst, '"')
		if n.titled {
			r.dst = append(r.dst, ` title="`...)
			r.dst = escapeHTML(r.dst, n.title)
			r.dst = append(r.dst, '"')
		}
		r.dst = append(r.dst, '>')
		for _, c := range n.children {
			r.inline(c)
		}
		r.closeTag(atom.A)
	}
}

func (r *renderState) anchor(href, text string) {
	r.dst = append(r.dst, `<a href="`...)
	r.dst = escapeHTML(r.dst, href)
	r.dst = append(r.dst, `">`...)
	r.dst = escapeHTML(r.dst, text)
	r.closeTag(atom.A)
}

// inlineText concatenates the raw text of a node's descendants.
func inlineText(n *Inline) string {
	if n.kind == TextKind {
		return n.text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(inlineText(c))
	}
	return sb.String()
}

// escapeHTML appends the HTML-escaped version of a string to a byte slice.
func escapeHTML(dst []byte, src string) []byte {
	verbatimStart := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '&':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&amp;"...)
			verbatimStart = i + 1
		case '<':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&lt;"...)
			verbatimStart = i + 1
		case '>':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&gt;"...)
			verbatimStart = i + 1
		case '"':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&quot;"...)
			verbatimStart = i + 1
		}
	}
	if verbatimStart < len(src) {
		dst = append(dst, src[verbatimStart:]...)
	}
	return dst
}
