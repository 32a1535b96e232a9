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

	"golang.org/x/text/cases"
)

// LinkDefinition is the data of a [link reference definition].
//
// [link reference definition]: https://spec.commonmark.org/0.30/#link-reference-definition
type LinkDefinition struct {
	Destination  string
	Title        string
	TitlePresent bool
}

// ReferenceMap is a mapping of [normalized labels] to link definitions.
// The block phase does not collect definitions itself;
// callers that resolve them externally
// can hand a map to [Parser.References]
// to have bracketed labels rendered as links.
//
// [normalized labels]: https://spec.commonmark.org/0.30/#matches
type ReferenceMap map[string]LinkDefinition

// Add records a definition under its normalized label.
// An existing definition for the label is kept.
func (m ReferenceMap) Add(label string, def LinkDefinition) {
	key := NormalizeLabel(label)
	if _, exists := m[key]; key == "" || exists {
		return
	}
	m[key] = def
}

// Lookup finds the definition for a (raw) link label.
func (m ReferenceMap) Lookup(label string) (LinkDefinition, bool) {
	def, ok := m[NormalizeLabel(label)]
	return def, ok
}

// NormalizeLabel prepares a link label for matching:
// leading and trailing whitespace is removed,
// interior whitespace runs collapse to a single space,
// and the result is Unicode case-folded.
func NormalizeLabel(label string) string {
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}
