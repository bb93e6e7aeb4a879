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

package diag

import (
	"fmt"
	"io"
	"strings"
)

// Render writes one block per diagnostic to w: "path:line:col: level:
// message", followed by the offending source line and a caret pointer
// aligned to the diagnostic's column, when source is non-empty. Rendering
// never mutates the Collector.
func Render(w io.Writer, path string, source string, diagnostics []Diagnostic) {
	var lines []string
	if source != "" {
		lines = strings.Split(source, "\n")
	}
	for _, d := range diagnostics {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, d.Location.Line, d.Location.Column, d.Level, d.Message)
		if lines == nil {
			continue
		}
		idx := d.Location.Line - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		line := lines[idx]
		fmt.Fprintln(w, line)
		col := d.Location.Column - 1
		if col < 0 {
			col = 0
		}
		if col > len(line) {
			col = len(line)
		}
		fmt.Fprintln(w, strings.Repeat(" ", col)+"^")
	}
}
