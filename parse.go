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

// A Parser builds a block tree from Markdown source, one line at a time.
//
// A Parser holds no global state and performs no I/O;
// independent Parsers may be used from separate goroutines.
type Parser struct {
	doc *Block

	// References supplies link reference definitions
	// to the inline phase.
	// It may be left nil,
	// in which case bracketed text stays literal.
	References ReferenceMap

	lineNo    int
	lastStrip int
	lazy      bool
}

// NewParser returns a Parser with an empty document.
func NewParser() *Parser {
	return &Parser{doc: &Block{kind: documentKind}}
}

// Document returns the root of the block tree built so far.
func (p *Parser) Document() *Block {
	return p.doc
}

// ParseText feeds every line of text into the parser.
func (p *Parser) ParseText(text string) {
	for _, line := range splitLines(text) {
		p.ParseLine(line)
	}
}

// ParseLine incorporates a single line into the block tree.
// The loop interprets the line against the open block stack:
// it may close blocks, extend the deepest open leaf,
// or open one or more nested blocks before consuming the line.
func (p *Parser) ParseLine(line string) {
	for {
		// Mark any blocks this line ends, then locate the insertion point.
		probe := expandTabs(line, -1, 0)
		p.doc.closeCheck(probe, p.lineNo, false)
		deepest, rest := p.doc.lastOpen(probe)
		last := p.doc.lastDescendant()

		// Re-strip from the raw line, expanding only the consumed prefix,
		// so tabs inside content survive untouched.
		toStrip := len(probe) - len(rest)
		remainder := expandTabs(line, toStrip, 0)
		if toStrip < len(remainder) {
			remainder = remainder[toStrip:]
		} else {
			remainder = ""
		}

		blk := newBlock(deepest, remainder, p.lineNo, last, toStrip)
		p.lazy = toStrip == 0 && (p.lazy || p.lastStrip > 0)
		p.lastStrip = toStrip

		// A fenced code block owns every line until its closing fence,
		// and the closing fence itself is consumed by the close.
		if last.kind == FencedCodeBlockKind && !last.closed {
			if last.closeNext {
				p.doc.closeMarked()
				break
			}
			last.addLine(remainder, toStrip, p.lazy)
			break
		}

		// A blank line inside a list marks where looseness begins.
		if blk == nil && isBlankLine(remainder) &&
			deepest.kind != BlockQuoteKind && !deepest.kind.IsCode() {
			if list := p.doc.lastOpenList(); list != nil {
				if it := list.children[len(list.children)-1]; len(it.children) > 0 || it.startLine < p.lineNo {
					if list.loose < 0 {
						list.loose = itemChildCount(list)
						p.doc.closeMarked()
					}
				}
				break
			}
			last.addLine(remainder, toStrip, p.lazy)
			break
		}

		// A blank line may not lazily continue anything.
		if p.lazy && isBlankLine(remainder) && !deepest.kind.IsCode() {
			p.doc.closeMarked()
			break
		}

		// A block that is not a list item terminates enclosing lists.
		// Closing a list re-exposes a shallower container,
		// so the line must be reinterpreted from the top.
		if blk != nil && blk.kind != ListItemKind && deepest.kind.IsList() {
			for deepest.kind.IsList() {
				deepest.closeCheck(probe, p.lineNo, true)
				p.doc.closeMarked()
				deepest, _ = p.doc.lastOpen(probe)
			}
			continue
		}

		// Content is absorbed into the most recent block
		// when no new block starts here,
		// or when a would-be paragraph continues an open one.
		if blk == nil || (blk.kind == ParagraphKind && last.kind == ParagraphKind && !last.closed) {
			last.addLine(remainder, toStrip, p.lazy)
			break
		}

		// Otherwise commit pending closes and attach the new block.
		// A new container may itself open nested blocks on the same line.
		p.doc.closeMarked()
		deepest.children = append(deepest.children, blk)
		if !blk.kind.isContainer() {
			break
		}
	}
	p.lineNo++
}

// newBlock returns the block that starts on the given line, if any.
// The checks run in precedence order;
// lastOpen and last provide the context
// that decides interruption and indented-code eligibility.
func newBlock(lastOpen *Block, line string, lineNo int, last *Block, columnOffset int) *Block {
	switch {
	case lastOpen.kind.IsCode():
		return nil
	case startsATXHeading(line):
		h := parseATXHeading(line)
		b := &Block{kind: ATXHeadingKind, level: h.level}
		b.addLine(h.content, columnOffset, false)
		return b
	case isThematicBreak(line):
		if lastOpen.kind == ParagraphKind && isSetextUnderline(line) {
			// Ambiguous with a setext underline: let the paragraph absorb it.
			return nil
		}
		return &Block{kind: ThematicBreakKind}
	case startsIndentedCode(line) &&
		lastOpen.kind != ParagraphKind &&
		!(last.kind == ParagraphKind && !last.closed) &&
		!startsListItem(lastOpen, line):
		b := &Block{kind: IndentedCodeBlockKind}
		b.addLine(line, columnOffset, false)
		return b
	}
	if f, ok := parseCodeFence(line); ok {
		return &Block{
			kind:      FencedCodeBlockKind,
			fenceChar: f.char,
			fenceLen:  f.n,
			indent:    f.indent,
			info:      f.info,
		}
	}
	if startsListItem(lastOpen, line) {
		return newListItem(line, lineNo, columnOffset)
	}
	if m, ok := parseListStart(line); ok {
		// An ordered list interrupting a paragraph must start at 1.
		if !m.ordered || lastOpen.kind != ParagraphKind || m.n == 1 {
			return newList(m, line, lineNo, columnOffset)
		}
	}
	if startsBlockQuote(line) {
		return &Block{kind: BlockQuoteKind}
	}
	if lastOpen.kind != ParagraphKind && !isBlankLine(line) {
		b := &Block{kind: ParagraphKind}
		b.addLine(line, columnOffset, false)
		return b
	}
	return nil
}

// newList builds a list block with its first item.
func newList(m listMarker, line string, lineNo, columnOffset int) *Block {
	list := &Block{kind: BulletListKind, indent: m.indent, delim: m.delim, loose: -1}
	if m.ordered {
		list.kind = OrderedListKind
		list.start = m.n
	}
	item := newListItem(list.stripLine(line), lineNo, columnOffset+list.indent)
	list.children = append(list.children, item)
	return list
}

// startsListItem reports whether line begins a new item
// of the currently open list.
func startsListItem(lastOpen *Block, line string) bool {
	if !lastOpen.kind.IsList() {
		return false
	}
	_, _, ok := matchListItem(line)
	return ok
}

// itemChildCount sums the child counts of a list's items.
func itemChildCount(list *Block) int {
	n := 0
	for _, it := range list.children {
		n += len(it.children)
	}
	return n
}
