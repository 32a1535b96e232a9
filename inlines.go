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

import "strings"

// Inline represents Markdown content elements
// like text, code spans, or emphasis.
type Inline struct {
	kind InlineKind

	// text is the text buffer for [TextKind]
	// and the address for [AutolinkKind] and [EmailAutolinkKind].
	text string

	// strong distinguishes <strong> from <em> for [EmphasisKind].
	strong bool

	children []*Inline

	// dest, title, and titled carry the resolved
	// destination of a [LinkKind] node.
	dest   string
	title  string
	titled bool
}

// Kind returns the type of inline node, or zero if the node is nil.
func (inline *Inline) Kind() InlineKind {
	if inline == nil {
		return 0
	}
	return inline.kind
}

// Text returns the node's text buffer.
func (inline *Inline) Text() string {
	if inline == nil {
		return ""
	}
	return inline.text
}

// Children returns children of the node.
// Calling Children on nil returns a nil slice.
func (inline *Inline) Children() []*Inline {
	if inline == nil {
		return nil
	}
	return inline.children
}

// InlineKind is an enumeration of values returned by [*Inline.Kind].
type InlineKind uint16

const (
	TextKind InlineKind = 1 + iota
	CodeSpanKind
	AutolinkKind
	EmailAutolinkKind
	EmphasisKind
	LinkKind
	HardBreakKind
	SoftBreakKind
)

// parseInlines tokenizes a leaf block's text into inline nodes.
// The passes run in a fixed order;
// each rewrites only [TextKind] nodes,
// descending into children of nodes built by earlier passes
// except where the earlier pass already fixed their content.
func parseInlines(refs ReferenceMap, text string) []*Inline {
	if text == "" {
		return nil
	}
	nodes := []*Inline{{kind: TextKind, text: text}}
	nodes = rewriteText(nodes, scanAutolinks, nil)
	nodes = rewriteText(nodes, scanEmailAutolinks, skipResolved)
	nodes = rewriteText(nodes, scanCodeSpans, skipResolved)
	em := &emphasisParser{refs: refs}
	nodes = rewriteText(nodes, em.scan, skipResolved)
	nodes = rewriteText(nodes, scanLineBreaks, skipResolved)
	nodes = rewriteText(nodes, unescapeText, skipResolved)
	return nodes
}

// rewriteText replaces every [TextKind] node in nodes
// with the result of scan on its buffer.
// Other nodes are rewritten recursively
// unless skip reports their kind as already resolved.
func rewriteText(nodes []*Inline, scan func(string) []*Inline, skip func(InlineKind) bool) []*Inline {
	out := make([]*Inline, 0, len(nodes))
	for _, n := range nodes {
		if n.kind == TextKind {
			out = append(out, scan(n.text)...)
			continue
		}
		if (skip == nil || !skip(n.kind)) && len(n.children) > 0 {
			n.children = rewriteText(n.children, scan, skip)
		}
		out = append(out, n)
	}
	return out
}

// skipResolved reports the kinds whose content was fixed
// by the pass that produced them.
func skipResolved(k InlineKind) bool {
	return k == AutolinkKind || k == EmailAutolinkKind || k == CodeSpanKind
}

func appendTextNode(out []*Inline, s string) []*Inline {
	if s == "" {
		return out
	}
	return append(out, &Inline{kind: TextKind, text: s})
}

// scanAutolinks extracts [URI autolinks] of the form <scheme:address>.
//
// [URI autolinks]: https://spec.commonmark.org/0.30/#autolinks
func scanAutolinks(text string) []*Inline {
	var out []*Inline
	start := 0
	for i := 0; i < len(text); {
		if text[i] != '<' {
			i++
			continue
		}
		n, ok := parseAutolink(text[i:])
		if !ok {
			i++
			continue
		}
		out = appendTextNode(out, text[start:i])
		out = append(out, &Inline{kind: AutolinkKind, text: text[i+1 : i+n-1]})
		i += n
		start = i
	}
	return appendTextNode(out, text[start:])
}

// parseAutolink matches <scheme:address> at the start of s,
// returning the total length of the match.
// The scheme is a letter followed by one or more
// letters, '+', '.', or '-';
// the address may not contain whitespace, '<', or '>'.
func parseAutolink(s string) (int, bool) {
	i := 1
	if i >= len(s) || !isASCIILetter(s[i]) {
		return 0, false
	}
	j := i + 1
	for j < len(s) && (isASCIILetter(s[j]) || s[j] == '+' || s[j] == '.' || s[j] == '-') {
		j++
	}
	if j-i < 2 || j >= len(s) || s[j] != ':' {
		return 0, false
	}
	for k := j + 1; k < len(s); k++ {
		switch s[k] {
		case '>':
			return k + 1, true
		case ' ', '\t', '\n', '\r', '<':
			return 0, false
		}
	}
	return 0, false
}

// scanEmailAutolinks extracts [email autolinks] of the form <local@domain>.
//
// [email autolinks]: https://spec.commonmark.org/0.30/#email-autolink
func scanEmailAutolinks(text string) []*Inline {
	var out []*Inline
	start := 0
	for i := 0; i < len(text); {
		if text[i] != '<' {
			i++
			continue
		}
		n, ok := parseEmailAutolink(text[i:])
		if !ok {
			i++
			continue
		}
		out = appendTextNode(out, text[start:i])
		out = append(out, &Inline{kind: EmailAutolinkKind, text: text[i+1 : i+n-1]})
		i += n
		start = i
	}
	return appendTextNode(out, text[start:])
}

func parseEmailAutolink(s string) (int, bool) {
	i := 1
	start := i
	for i < len(s) && isEmailLocalChar(s[i]) {
		i++
	}
	if i == start || i >= len(s) || s[i] != '@' {
		return 0, false
	}
	i++
	for {
		if i >= len(s) || !isASCIIAlnum(s[i]) {
			return 0, false
		}
		n := 0
		for i+n < len(s) && (isASCIIAlnum(s[i+n]) || s[i+n] == '-') {
			n++
		}
		if n > 63 || s[i+n-1] == '-' {
			return 0, false
		}
		i += n
		if i < len(s) && s[i] == '.' {
			i++
			continue
		}
		break
	}
	if i < len(s) && s[i] == '>' {
		return i + 1, true
	}
	return 0, false
}

func isEmailLocalChar(c byte) bool {
	return isASCIIAlnum(c) || strings.IndexByte(".!#$%&'*+/=?^_`{|}~-", c) >= 0
}

// scanCodeSpans extracts [code spans]:
// the shortest balanced pair of backtick runs of equal length.
// A run that finds no balancing partner stays literal.
//
// [code spans]: https://spec.commonmark.org/0.30/#code-spans
func scanCodeSpans(text string) []*Inline {
	var out []*Inline
	start := 0
	for i := 0; i < len(text); {
		if text[i] != '`' {
			i++
			continue
		}
		runStart := i
		for i < len(text) && text[i] == '`' {
			i++
		}
		n := i - runStart
		j := findBacktickRun(text, i, n)
		if j < 0 {
			continue
		}
		out = appendTextNode(out, text[start:runStart])
		out = append(out, &Inline{
			kind:     CodeSpanKind,
			children: []*Inline{{kind: TextKind, text: text[i:j]}},
		})
		i = j + n
		start = i
	}
	return appendTextNode(out, text[start:])
}

// findBacktickRun returns the start of the earliest run
// of exactly n backticks at or after from, or -1.
func findBacktickRun(text string, from, n int) int {
	for j := from; j+n <= len(text); j++ {
		if text[j] != '`' || (j > 0 && text[j-1] == '`') {
			continue
		}
		k := j
		for k < len(text) && text[k] == '`' {
			k++
		}
		if k-j == n {
			return j
		}
		j = k - 1
	}
	return -1
}

// A delimiter is one entry of the [delimiter run] stack:
// a run of '*' or '_', or a bracket.
//
// [delimiter run]: https://spec.commonmark.org/0.30/#delimiter-run
type delimiter struct {
	kind     string // "*", "_", "[", "![", or "]"
	length   int
	canOpen  bool
	canClose bool
	active   bool
	part     *emphPart
}

// An emphPart is one segment of text under emphasis resolution:
// plain text, a delimiter run, or a completed inline node.
type emphPart struct {
	text  string
	delim *delimiter
	node  *Inline
}

type emphMatch struct {
	opener, closer *delimiter
	size           int // 1 for <em>, 2 for <strong>
}

type emphasisParser struct {
	refs ReferenceMap
}

// scan resolves emphasis (and bracketed reference links)
// in a single text buffer.
func (em *emphasisParser) scan(text string) []*Inline {
	parts, stack := splitDelimiterRuns(text)
	parts = em.resolveLinks(parts, stack)
	for _, m := range processEmphasis(stack) {
		parts = applyMatch(parts, m)
	}
	return assembleParts(parts)
}

// splitDelimiterRuns cuts text into literal segments and delimiter runs.
// Backslash-escaped punctuation never starts a run;
// the escape itself is resolved by a later pass.
func splitDelimiterRuns(text string) ([]*emphPart, []*delimiter) {
	var parts []*emphPart
	var stack []*delimiter
	start := 0
	flush := func(end int) {
		if end > start {
			parts = append(parts, &emphPart{text: text[start:end]})
		}
	}
	push := func(d *delimiter, from, to int) {
		flush(from)
		d.active = true
		d.part = &emphPart{text: text[from:to], delim: d}
		parts = append(parts, d.part)
		stack = append(stack, d)
		start = to
	}
	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '\\' && i+1 < len(text) && isASCIIPunct(text[i+1]):
			i += 2
		case c == '*' || c == '_':
			j := i + 1
			for j < len(text) && text[j] == c {
				j++
			}
			d := &delimiter{kind: string(c), length: j - i}
			var prev, next byte
			if i > 0 {
				prev = text[i-1]
			}
			if j < len(text) {
				next = text[j]
			}
			d.canOpen, d.canClose = delimiterFlags(prev, next, c)
			push(d, i, j)
			i = j
		case c == '!' && i+1 < len(text) && text[i+1] == '[':
			push(&delimiter{kind: "![", length: 1, canOpen: true}, i, i+2)
			i += 2
		case c == '[':
			push(&delimiter{kind: "[", length: 1, canOpen: true}, i, i+1)
			i++
		case c == ']':
			push(&delimiter{kind: "]", length: 1}, i, i+1)
			i++
		default:
			i++
		}
	}
	flush(len(text))
	return parts, stack
}

// delimiterFlags computes whether a delimiter run can open or close emphasis
// from the characters surrounding it.
// prev and next are zero at the beginning and end of the text.
func delimiterFlags(prev, next, delim byte) (canOpen, canClose bool) {
	canOpen = (prev == 0 || (!isASCIIAlnum(prev) && prev != delim)) &&
		next != 0 && !isSpaceTabOrLineEnding(next)
	canClose = prev != 0 && !isSpaceTabOrLineEnding(prev) &&
		(next == 0 || (!isASCIIAlnum(next) && next != delim))
	if delim == '_' && isASCIIAlnum(prev) && isASCIIAlnum(next) {
		// No intra-word emphasis with underscores.
		canOpen = false
	}
	return canOpen, canClose
}

// processEmphasis walks closers left to right,
// pairing each with the nearest preceding opener of its kind.
// Both runs shrink by the matched size,
// and delimiters strictly between a matched pair are deactivated.
// A closer keeps matching until it is exhausted or no opener remains.
func processEmphasis(stack []*delimiter) []emphMatch {
	var matches []emphMatch
	for ci := 0; ci < len(stack); ci++ {
		closer := stack[ci]
		if closer.kind != "*" && closer.kind != "_" {
			continue
		}
		if !closer.canClose {
			continue
		}
		for closer.active && closer.length > 0 {
			oi := ci - 1
			for ; oi >= 0; oi-- {
				o := stack[oi]
				if o.kind == closer.kind && o.active && o.canOpen && o.length > 0 {
					break
				}
			}
			if oi < 0 {
				break
			}
			opener := stack[oi]
			size := 1
			if closer.length >= 2 && opener.length >= 2 {
				size = 2
			}
			matches = append(matches, emphMatch{opener: opener, closer: closer, size: size})
			opener.length -= size
			closer.length -= size
			for k := oi + 1; k < ci; k++ {
				stack[k].active = false
			}
		}
	}
	return matches
}

// applyMatch wraps the parts strictly between a matched pair
// in a new emphasis node.
// Matches arrive innermost first,
// so earlier nodes become children of later ones.
func applyMatch(parts []*emphPart, m emphMatch) []*emphPart {
	oi := partIndex(parts, m.opener.part)
	ci := partIndex(parts, m.closer.part)
	if oi < 0 || ci < 0 || ci <= oi {
		return parts
	}
	node := &Inline{
		kind:     EmphasisKind,
		strong:   m.size > 1,
		children: assembleParts(parts[oi+1 : ci]),
	}
	out := make([]*emphPart, 0, len(parts)-(ci-oi)+2)
	out = append(out, parts[:oi+1]...)
	out = append(out, &emphPart{node: node})
	out = append(out, parts[ci:]...)
	return out
}

// resolveLinks handles ']' occurrences:
// the nearest active bracket opener is taken as a link label start,
// and the label is looked up in the reference map.
// With no matching definition the brackets stay literal text.
func (em *emphasisParser) resolveLinks(parts []*emphPart, stack []*delimiter) []*emphPart {
	if len(em.refs) == 0 {
		return parts
	}
	for ci := 0; ci < len(stack); ci++ {
		closer := stack[ci]
		if closer.kind != "]" || !closer.active {
			continue
		}
		oi := ci - 1
		for ; oi >= 0; oi-- {
			if d := stack[oi]; (d.kind == "[" || d.kind == "![") && d.active {
				break
			}
		}
		if oi < 0 {
			continue
		}
		opener := stack[oi]
		if opener.kind == "![" {
			// Image references are not resolved.
			opener.active = false
			continue
		}
		pi := partIndex(parts, opener.part)
		pj := partIndex(parts, closer.part)
		if pi < 0 || pj < 0 || pj <= pi {
			continue
		}
		var label strings.Builder
		for _, p := range parts[pi+1 : pj] {
			label.WriteString(p.literal())
		}
		def, ok := em.refs.Lookup(label.String())
		if !ok {
			opener.active = false
			continue
		}
		node := &Inline{
			kind:     LinkKind,
			dest:     def.Destination,
			title:    def.Title,
			titled:   def.TitlePresent,
			children: []*Inline{{kind: TextKind, text: label.String()}},
		}
		for k := oi; k <= ci; k++ {
			stack[k].active = false
		}
		for k := 0; k < oi; k++ {
			// No links inside links.
			if stack[k].kind == "[" {
				stack[k].active = false
			}
		}
		out := make([]*emphPart, 0, len(parts)-(pj-pi))
		out = append(out, parts[:pi]...)
		out = append(out, &emphPart{node: node})
		parts = append(out, parts[pj+1:]...)
	}
	return parts
}

func partIndex(parts []*emphPart, p *emphPart) int {
	for i, q := range parts {
		if q == p {
			return i
		}
	}
	return -1
}

// literal returns the text a part contributes
// when it is not consumed by a match.
func (p *emphPart) literal() string {
	if p.delim == nil {
		return p.text
	}
	switch p.delim.kind {
	case "*", "_":
		return strings.Repeat(p.delim.kind, p.delim.length)
	default:
		return p.delim.kind
	}
}

// assembleParts converts the remaining parts to inline nodes.
// Fully consumed delimiter runs vanish;
// partially consumed ones keep their leftover characters as text.
func assembleParts(parts []*emphPart) []*Inline {
	var out []*Inline
	for _, p := range parts {
		switch {
		case p.node != nil:
			out = append(out, p.node)
		case p.delim != nil:
			if p.delim.length > 0 {
				out = appendTextNode(out, p.literal())
			}
		default:
			out = appendTextNode(out, p.text)
		}
	}
	return out
}

// scanLineBreaks splits text at newlines.
// Two or more trailing spaces, a trailing backslash,
// or a trailing tab produce a hard break
// with the whitespace (or backslash) removed;
// every other newline becomes a soft break.
func scanLineBreaks(text string) []*Inline {
	var out []*Inline
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			break
		}
		seg := text[:i]
		switch {
		case strings.HasSuffix(seg, "  "):
			out = appendTextNode(out, strings.TrimRight(seg, " "))
			out = append(out, &Inline{kind: HardBreakKind})
		case isEndEscaped(seg):
			out = appendTextNode(out, seg[:len(seg)-1])
			out = append(out, &Inline{kind: HardBreakKind})
		case strings.HasSuffix(seg, "\t"):
			out = appendTextNode(out, strings.TrimRight(seg, "\t"))
			out = append(out, &Inline{kind: HardBreakKind})
		default:
			out = appendTextNode(out, seg)
			out = append(out, &Inline{kind: SoftBreakKind})
		}
		text = text[i+1:]
	}
	return appendTextNode(out, text)
}

// unescapeText resolves backslash escapes of ASCII punctuation.
func unescapeText(text string) []*Inline {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && isASCIIPunct(text[i+1]) {
			i++
		}
		sb.WriteByte(text[i])
	}
	return appendTextNode(nil, sb.String())
}
