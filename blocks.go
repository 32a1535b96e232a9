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

//go:generate stringer -type=BlockKind,InlineKind -output=kind_string.go

package gfm

import "strings"

// A Block is a structural element in a Markdown document.
// Blocks form a tree rooted at a document node:
// container blocks (document, block quote, lists, list items)
// hold child blocks,
// leaf blocks hold the raw lines assigned to them during parsing.
type Block struct {
	kind BlockKind

	// closed and closeNext implement the two-phase lifecycle:
	// a close check marks closeNext,
	// and closeMarked commits it to closed
	// once the current line has been fully interpreted.
	closed    bool
	closeNext bool

	lines    []string
	children []*Block

	// level is the heading level for [ATXHeadingKind].
	level int
	// setextHeading marks a [ParagraphKind] block
	// that absorbed a setext underline.
	setextHeading bool

	// fenceChar and fenceLen describe the opening fence
	// of a [FencedCodeBlockKind] block.
	fenceChar byte
	fenceLen  int
	// info is the fenced code block's info string.
	info string

	// indent is the fence indentation for [FencedCodeBlockKind],
	// the marker indentation (0-3) for list blocks,
	// and the continuation column requirement for [ListItemKind].
	indent int

	// delim is the marker character:
	// '-', '+', or '*' for [BulletListKind],
	// '.' or ')' for [OrderedListKind].
	delim byte
	// start is the first item number of an [OrderedListKind] block.
	start int
	// loose is -1 while the list has seen no interior blank line;
	// otherwise it records the total item child count
	// at the moment the first interior blank was observed.
	loose int

	// startLine is the line a [ListItemKind] block was opened on.
	startLine int
}

// Kind returns the type of block node, or zero if the node is nil.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// Children returns the block's child blocks.
// Only container blocks have children.
func (b *Block) Children() []*Block {
	if b == nil {
		return nil
	}
	return b.children
}

// Lines returns the raw lines assigned to a leaf block.
func (b *Block) Lines() []string {
	if b == nil {
		return nil
	}
	return b.lines
}

// HeadingLevel returns the 1-based heading level
// for an ATX heading or a setext paragraph, or zero otherwise.
func (b *Block) HeadingLevel() int {
	switch {
	case b.Kind() == ATXHeadingKind:
		return b.level
	case b.Kind() == ParagraphKind && b.setextHeading:
		if strings.Contains(b.lines[len(b.lines)-1], "=") {
			return 1
		}
		return 2
	default:
		return 0
	}
}

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind uint16

const (
	// ParagraphKind is used for a block of text.
	// A paragraph that absorbed a setext underline renders as a heading.
	ParagraphKind BlockKind = 1 + iota
	// ThematicBreakKind is used for a thematic break, also known as a horizontal rule.
	ThematicBreakKind
	// ATXHeadingKind is used for headings that start with hash marks.
	ATXHeadingKind
	// IndentedCodeBlockKind is used for code blocks started by indentation.
	IndentedCodeBlockKind
	// FencedCodeBlockKind is used for code blocks started by backticks or tildes.
	FencedCodeBlockKind
	// BlockQuoteKind is used for block quotes.
	BlockQuoteKind
	// ListItemKind is used for items in an ordered or unordered list.
	ListItemKind
	// BulletListKind is used for unordered lists.
	BulletListKind
	// OrderedListKind is used for ordered lists.
	OrderedListKind

	documentKind
)

// IsCode reports whether the kind is [IndentedCodeBlockKind] or [FencedCodeBlockKind].
func (k BlockKind) IsCode() bool {
	return k == IndentedCodeBlockKind || k == FencedCodeBlockKind
}

// IsList reports whether the kind is [BulletListKind] or [OrderedListKind].
func (k BlockKind) IsList() bool {
	return k == BulletListKind || k == OrderedListKind
}

func (k BlockKind) isContainer() bool {
	return k == BlockQuoteKind || k == ListItemKind || k.IsList() || k == documentKind
}

func (b *Block) isOpen() bool {
	return b != nil && !b.closed && !b.closeNext
}

// lastOpen descends to the deepest still-open descendant,
// stripping each container's marker from line along the way.
// It returns the deepest open block and the remaining line.
func (b *Block) lastOpen(line string) (*Block, string) {
	cur := b.stripLine(line)
	last, rest := b, cur
	for _, c := range b.children {
		if c.isOpen() {
			last, rest = c.lastOpen(cur)
		}
	}
	return last, rest
}

// lastOpenList returns the innermost open list block, or nil.
func (b *Block) lastOpenList() *Block {
	var ret *Block
	if b.kind.IsList() && b.isOpen() {
		ret = b
	}
	for _, c := range b.children {
		if !c.closed || c.closeNext {
			if got := c.lastOpenList(); got != nil {
				ret = got
			}
		}
	}
	return ret
}

// lastDescendant returns the most recently created block,
// regardless of its lifecycle state.
func (b *Block) lastDescendant() *Block {
	if len(b.children) == 0 {
		return b
	}
	return b.children[len(b.children)-1].lastDescendant()
}

// closeMarked commits every pending closeNext flag in the subtree.
func (b *Block) closeMarked() {
	if b.closeNext {
		b.closed = true
	}
	for _, c := range b.children {
		if !c.closed {
			c.closeMarked()
		}
	}
}

// stripLine removes the block's leading marker or indentation
// before the line is handed to its children.
// Leaf blocks return the line unchanged.
func (b *Block) stripLine(line string) string {
	switch b.kind {
	case BlockQuoteKind:
		if rest, ok := stripBlockQuoteMarker(line); ok {
			return rest
		}
		return line
	case BulletListKind, OrderedListKind:
		if b.indent >= len(line) {
			return ""
		}
		return line[b.indent:]
	case ListItemKind:
		n := b.indent
		if i := strings.IndexByte(line, '\n'); i >= 0 && i < n {
			n = i
		}
		if n >= len(line) {
			return ""
		}
		return line[n:]
	default:
		return line
	}
}

// closeCheck marks closeNext on every open block in the subtree
// whose end condition matches line.
// The commit happens separately in closeMarked,
// so the current line can still be interpreted against the old tree.
func (b *Block) closeCheck(line string, lineNo int, force bool) {
	switch b.kind {
	case documentKind:
		for _, c := range b.children {
			if !c.closed {
				c.closeCheck(line, lineNo, force)
			}
		}
		return
	case ParagraphKind:
		b.closeNext = isBlankLine(line) || force || interruptsParagraph(line)
		return
	case IndentedCodeBlockKind:
		b.closeNext = lessIndentedNonBlank(line, tabStopSize) || force
		return
	case FencedCodeBlockKind:
		b.closeNext = isClosingFence(line, b.fenceChar, b.fenceLen)
		if force {
			b.closed = true
		}
		return
	case BlockQuoteKind:
		_, marked := stripBlockQuoteMarker(line)
		b.closeNext = !marked || force
	case ListItemKind:
		b.closeNext = (lessIndentedNonBlank(line, b.indent) && lineNo != b.startLine) || force
	case BulletListKind, OrderedListKind:
		b.closeNext = listEnds(line, b) || isThematicBreak(line) || force
	default:
		// Single-line leaf blocks close unconditionally.
		b.closeNext = true
		return
	}
	stripped := b.stripLine(line)
	for _, c := range b.children {
		if !c.closed {
			c.closeCheck(stripped, lineNo, b.closeNext)
		}
	}
}

// addLine appends a line of content to a leaf block.
// columnOffset is the number of columns stripped from the line
// by enclosing containers, used to keep tab expansion aligned.
func (b *Block) addLine(line string, columnOffset int, lazy bool) {
	switch b.kind {
	case ParagraphKind:
		switch {
		case isSetextUnderline(line) && len(b.lines) > 0 && !lazy:
			b.closed = true
			b.setextHeading = true
			b.lines = append(b.lines, line)
		case isBlankLine(line):
			b.closed = true
		default:
			b.lines = append(b.lines, strings.Trim(line, " \t"))
		}
	case IndentedCodeBlockKind:
		line = expandTabs(line, tabStopSize, columnOffset)
		if !isBlankLine(line) || len(line) > tabStopSize {
			b.lines = append(b.lines, line[tabStopSize:])
		} else {
			b.lines = append(b.lines, strings.Trim(line, " \t"))
		}
	case FencedCodeBlockKind:
		line = expandTabs(line, b.indent, columnOffset)
		n := b.indent
		if n > len(line) {
			n = len(line)
		}
		if strings.TrimLeft(line[:n], " ") == "" {
			b.lines = append(b.lines, line[n:])
		} else {
			b.lines = append(b.lines, strings.TrimLeft(line, " "))
		}
	case ATXHeadingKind:
		// A heading holds only the content of its own line.
		if len(b.lines) == 0 {
			b.lines = append(b.lines, line)
		}
	default:
		b.lines = append(b.lines, line)
	}
}

// stripBlockQuoteMarker removes a block quote marker
// (up to three spaces, '>', and at most one following space)
// and reports whether the line carried one.
func stripBlockQuoteMarker(line string) (rest string, ok bool) {
	n := leadingSpaces(line)
	if n > 3 || n >= len(line) || line[n] != '>' {
		return "", false
	}
	rest = line[n+1:]
	if len(rest) > 0 && rest[0] == ' ' {
		rest = rest[1:]
	}
	return rest, true
}

func startsBlockQuote(line string) bool {
	_, ok := stripBlockQuoteMarker(line)
	return ok
}

// lessIndentedNonBlank reports whether line starts with
// fewer than indent spaces followed by a non-whitespace character.
func lessIndentedNonBlank(line string, indent int) bool {
	n := leadingSpaces(line)
	return n < indent && n < len(line) && !isSpaceTabOrLineEnding(line[n])
}

// startsOrderedMarker reports whether line begins with
// an ordered list marker using the given delimiter.
func startsOrderedMarker(line string, delim byte) bool {
	n := 0
	for n < len(line) && n < 9 && isASCIIDigit(line[n]) {
		n++
	}
	return n > 0 && n < len(line) && line[n] == delim
}

// listEnds reports whether line terminates the given list block:
// it falls below the list's continuation indent
// without starting a new item of the list.
func listEnds(line string, b *Block) bool {
	if b.indent > 0 {
		if b.kind == OrderedListKind {
			return !startsOrderedMarker(line, b.delim) && lessIndentedNonBlank(line, b.indent)
		}
		if lessIndentedNonBlank(line, b.indent) {
			return true
		}
		n := leadingSpaces(line)
		return n == b.indent && n < len(line) && line[n] != b.delim && !isSpaceTabOrLineEnding(line[n])
	}
	if b.kind == OrderedListKind {
		if startsOrderedMarker(line, b.delim) {
			return false
		}
		if len(line) > 0 && isSpaceTabOrLineEnding(line[0]) && (len(line) == 1 || line[1:] == "\n") {
			// A lone whitespace line does not terminate the list.
			return false
		}
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			return false
		}
		return true
	}
	if len(line) == 0 {
		return false
	}
	c := line[0]
	if c != b.delim && !isSpaceTabOrLineEnding(c) {
		return true
	}
	return c == b.delim && len(line) > 1 && !isSpaceTabOrLineEnding(line[1])
}

// isThematicBreak reports whether line is a [thematic break]:
// at most three spaces of indentation,
// then at least three of the same '*', '-', or '_' character,
// optionally separated by spaces and tabs.
//
// [thematic break]: https://spec.commonmark.org/0.30/#thematic-breaks
func isThematicBreak(line string) bool {
	if leadingSpaces(line) > 3 {
		return false
	}
	n := 0
	var want byte
	for i := leadingSpaces(line); i < len(line); i++ {
		switch b := line[i]; b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return false
			}
			n++
		case ' ', '\t', '\n', '\r':
			// Ignore.
		default:
			return false
		}
	}
	return n >= 3
}

// isSetextUnderline reports whether line is a [setext heading underline].
//
// [setext heading underline]: https://spec.commonmark.org/0.30/#setext-heading-underline
func isSetextUnderline(line string) bool {
	i := leadingSpaces(line)
	if i > 3 || i >= len(line) {
		return false
	}
	want := line[i]
	if want != '=' && want != '-' {
		return false
	}
	for ; i < len(line); i++ {
		if line[i] != want {
			break
		}
	}
	for ; i < len(line); i++ {
		if line[i] != ' ' {
			break
		}
	}
	return i == len(line) || line[i:] == "\n"
}

type atxHeading struct {
	level   int // 1-6
	content string
}

// startsATXHeading reports whether line begins an [ATX heading]:
// at most three spaces, one to six hash marks,
// then a space, tab, or the end of the line.
//
// [ATX heading]: https://spec.commonmark.org/0.30/#atx-headings
func startsATXHeading(line string) bool {
	i := leadingSpaces(line)
	if i > 3 {
		return false
	}
	level := 0
	for i < len(line) && line[i] == '#' {
		level++
		i++
	}
	if level < 1 || level > 6 {
		return false
	}
	return i == len(line) || line[i] == ' ' || line[i] == '\t' || line[i] == '\n'
}

// parseATXHeading extracts the level and content of an ATX heading line.
// The level is zero if the line is not an ATX heading.
func parseATXHeading(line string) atxHeading {
	line = line[leadingSpaces(line):]
	var h atxHeading
	for h.level < len(line) && line[h.level] == '#' {
		h.level++
	}
	if h.level == 0 || h.level > 6 {
		return atxHeading{}
	}

	// Consume required whitespace before the content.
	i := h.level
	if i >= len(line) || line[i] == '\n' || line[i] == '\r' {
		return h
	}
	if !(line[i] == ' ' || line[i] == '\t') {
		return atxHeading{}
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	start := i

	// Find the end of the content, skipping trailing whitespace.
	end := len(line)
	hitHash := false
scanBack:
	for ; end > start; end-- {
		switch line[end-1] {
		case '\r', '\n':
			// Skip past the line ending.
		case ' ', '\t':
			if isEndEscaped(line[:end-1]) {
				break scanBack
			}
		case '#':
			hitHash = true
			break scanBack
		default:
			break scanBack
		}
	}
	if !hitHash {
		h.content = line[start:end]
		return h
	}

	// Consume a trailing run of hash marks,
	// but only if it is preceded by a space or tab.
scanTrailingHashes:
	for j := end - 1; ; j-- {
		if j <= start {
			end = start
			break
		}
		switch line[j] {
		case '#':
			// Keep going.
		case ' ', '\t':
			end = j + 1
			break scanTrailingHashes
		default:
			h.content = line[start:end]
			return h
		}
	}
	for ; end > start; end-- {
		if c := line[end-1]; !(c == ' ' || c == '\t') || isEndEscaped(line[:end-1]) {
			break
		}
	}
	h.content = line[start:end]
	return h
}

type codeFence struct {
	char   byte // either '`' or '~'
	n      int
	indent int // 0-3
	info   string
}

// parseCodeFence attempts to parse line as the opening [code fence]
// of a fenced code block.
// The entire line must form the fence and its info string;
// info strings containing backticks are rejected.
//
// [code fence]: https://spec.commonmark.org/0.30/#code-fence
func parseCodeFence(line string) (codeFence, bool) {
	const minConsecutive = 3
	indent := leadingSpaces(line)
	if indent > 3 {
		return codeFence{}, false
	}
	rest := line[indent:]
	if len(rest) == 0 || (rest[0] != '`' && rest[0] != '~') {
		return codeFence{}, false
	}
	f := codeFence{char: rest[0], indent: indent}
	for f.n < len(rest) && rest[f.n] == f.char {
		f.n++
	}
	if f.n < minConsecutive {
		return codeFence{}, false
	}
	info := strings.Trim(rest[f.n:], " \t\n")
	if strings.ContainsRune(info, '`') {
		return codeFence{}, false
	}
	f.info = info
	return f, true
}

// isClosingFence reports whether line closes a fence
// opened with n or more of the given character:
// at most three spaces of indentation, the fence run,
// and nothing but spaces afterward.
func isClosingFence(line string, char byte, n int) bool {
	i := leadingSpaces(line)
	if i > 3 {
		return false
	}
	run := 0
	for i < len(line) && line[i] == char {
		run++
		i++
	}
	if run < n {
		return false
	}
	for ; i < len(line); i++ {
		if line[i] != ' ' {
			break
		}
	}
	return i == len(line) || line[i:] == "\n"
}

// startsIndentedCode reports whether line has
// the indentation of an indented code block
// (four spaces, or any spaces followed by a tab)
// and non-blank content after it.
func startsIndentedCode(line string) bool {
	var rest string
	if strings.HasPrefix(line, "    ") {
		rest = line[4:]
	} else {
		i := leadingSpaces(line)
		if i >= len(line) || line[i] != '\t' {
			return false
		}
		rest = line[i+1:]
	}
	return !isBlankLine(rest)
}

type listMarker struct {
	indent  int  // leading spaces, 0-3
	delim   byte // one of '-', '+', '*', '.', or ')'
	n       int  // start number for ordered markers
	ordered bool
}

// parseListStart attempts to parse a [list marker]
// that can begin a new list:
// at most three spaces, the marker,
// then a space, tab, or the end of the line.
//
// [list marker]: https://spec.commonmark.org/0.30/#list-marker
func parseListStart(line string) (listMarker, bool) {
	m := listMarker{indent: leadingSpaces(line)}
	if m.indent > 3 || m.indent >= len(line) {
		return listMarker{}, false
	}
	i := m.indent
	switch c := line[i]; {
	case c == '-' || c == '+' || c == '*':
		m.delim = c
		i++
	case isASCIIDigit(c):
		for i < len(line) && i-m.indent < 9 && isASCIIDigit(line[i]) {
			m.n = m.n*10 + int(line[i]-'0')
			i++
		}
		if i >= len(line) || (line[i] != '.' && line[i] != ')') {
			return listMarker{}, false
		}
		m.delim = line[i]
		m.ordered = true
		i++
	default:
		return listMarker{}, false
	}
	if i < len(line) && line[i] != ' ' && line[i] != '\t' && line[i] != '\n' {
		return listMarker{}, false
	}
	return m, true
}

// matchListItem matches a list item line inside an open list:
// any indentation, a marker, and any run of spaces or tabs after it.
// It returns the full marker prefix and the content following it.
func matchListItem(line string) (prefix, content string, ok bool) {
	i := leadingSpaces(line)
	switch {
	case i < len(line) && (line[i] == '-' || line[i] == '+' || line[i] == '*'):
		i++
	case i < len(line) && isASCIIDigit(line[i]):
		digits := 0
		for i < len(line) && digits < 9 && isASCIIDigit(line[i]) {
			digits++
			i++
		}
		if i >= len(line) || (line[i] != '.' && line[i] != ')') {
			return "", "", false
		}
		i++
	default:
		return "", "", false
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i], line[i:], true
}

// newListItem builds a [ListItemKind] block for a matched item line.
// The continuation indent is the marker prefix width on the tab grid,
// at least two columns,
// and capped to one column past the marker
// when five or more spaces follow it.
func newListItem(line string, lineNo, columnOffset int) *Block {
	prefix, content, _ := matchListItem(line)
	prefix = expandTabs(prefix, -1, columnOffset)
	if isBlankLine(content) {
		prefix = strings.TrimRight(prefix, " ") + " "
	}
	if trailing := len(prefix) - len(strings.TrimRight(prefix, " ")); trailing >= 5 {
		prefix = prefix[:len(prefix)-trailing+1]
	}
	indent := len(prefix)
	if indent < 2 {
		indent = 2
	}
	return &Block{kind: ListItemKind, indent: indent, startLine: lineNo}
}

// interruptsParagraph reports whether line begins a block
// that may interrupt an open paragraph.
func interruptsParagraph(line string) bool {
	if isThematicBreak(line) && !isSetextUnderline(line) {
		return true
	}
	if startsATXHeading(line) || startsBlockQuote(line) {
		return true
	}
	if _, ok := parseCodeFence(line); ok {
		return true
	}
	if m, ok := parseListStart(line); ok {
		return !m.ordered || m.n == 1
	}
	return false
}
