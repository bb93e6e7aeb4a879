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

import "fmt"

// Level classifies the severity of a Diagnostic.
type Level int

const (
	Error Level = iota
	Warning
	Note
)

func (lv Level) String() string {
	switch lv {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported problem: what level it is, the message,
// and where in the source it was found.
type Diagnostic struct {
	Level    Level
	Message  string
	Location Location
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Level, d.Message)
}

// Collector accumulates diagnostics in insertion order. Every pipeline stage
// shares one Collector for the lifetime of a compilation; HasError becomes
// sticky the moment any Error-level diagnostic is appended and never resets.
type Collector struct {
	diagnostics []Diagnostic
	hasError    bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a diagnostic at the given level and location.
func (c *Collector) Add(level Level, loc Location, message string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Level: level, Message: message, Location: loc})
	if level == Error {
		c.hasError = true
	}
}

// Errorf appends an Error-level diagnostic, formatting the message.
func (c *Collector) Errorf(loc Location, format string, args ...any) {
	c.Add(Error, loc, fmt.Sprintf(format, args...))
}

// Warnf appends a Warning-level diagnostic, formatting the message.
func (c *Collector) Warnf(loc Location, format string, args ...any) {
	c.Add(Warning, loc, fmt.Sprintf(format, args...))
}

// HasError reports whether any Error-level diagnostic has been collected.
func (c *Collector) HasError() bool { return c.hasError }

// Diagnostics returns the diagnostics collected so far, in insertion order.
// The returned slice is owned by the caller; the Collector keeps appending
// to its own.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Len returns the number of diagnostics collected so far.
func (c *Collector) Len() int { return len(c.diagnostics) }
