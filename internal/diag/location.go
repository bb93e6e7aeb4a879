// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag implements source locations and the diagnostics collector
// shared by every stage of the front end: the preprocessor, lexer, parser
// and sema all attach a Location to the problems they report and feed them
// into a single Collector for the driver to render (lowering reports none).
package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Location identifies a position in a source buffer: a byte offset plus the
// 1-based line and column a human would use to find it. Line and Column are
// computed incrementally as text is consumed, never by re-scanning.
type Location struct {
	Offset int
	Line   int
	Column int
}

// LocationInit is the position at the beginning of a file or string.
var LocationInit = Location{Offset: 0, Line: 1, Column: 1}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// AdvancedBy returns the Location reached by consuming text starting at l.
// Newlines in text increment the line number and reset the column;
// everything else advances the column by one rune.
func (l Location) AdvancedBy(text string) Location {
	newlines := strings.Count(text, "\n")
	tailBegin := 1 + strings.LastIndex(text, "\n")
	tailRunes := utf8.RuneCountInString(text[tailBegin:])

	l.Offset += len(text)
	if newlines == 0 {
		l.Column += tailRunes
	} else {
		l.Line += newlines
		l.Column = 1 + tailRunes
	}
	return l
}
