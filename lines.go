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

// tabStopSize is the multiple of columns that a [tab] advances to.
//
// [tab]: https://spec.commonmark.org/0.30/#tabs
const tabStopSize = 4

// splitLines splits text into lines.
// Every element except the last keeps its trailing newline;
// if text itself ends with a newline, the final element is empty.
func splitLines(text string) []string {
	return strings.SplitAfter(text, "\n")
}

// expandTabs replaces every tab within the first width characters of line
// (the whole line if width is negative)
// with one to four spaces so that the character after the replacement
// lands on a tab stop relative to columnOffset.
// Tabs beyond width are left alone.
func expandTabs(line string, width, columnOffset int) string {
	for {
		limit := len(line)
		if width >= 0 && width < limit {
			limit = width
		}
		i := strings.IndexByte(line[:limit], '\t')
		if i < 0 {
			return line
		}
		fill := tabStopSize - (i+columnOffset)%tabStopSize
		line = line[:i] + strings.Repeat(" ", fill) + line[i+1:]
	}
}

// leadingSpaces returns the number of space characters at the start of line.
func leadingSpaces(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' {
			return i
		}
	}
	return len(line)
}

// isBlankLine reports whether line contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isSpaceTabOrLineEnding(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIAlnum(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c)
}

// isASCIIPunct reports whether c is an [ASCII punctuation character].
//
// [ASCII punctuation character]: https://spec.commonmark.org/0.30/#ascii-punctuation-character
func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// isEndEscaped reports whether s ends with an odd number of backslashes.
func isEndEscaped(s string) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}
