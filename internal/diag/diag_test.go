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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorHasErrorIsSticky(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.HasError())

	c.Warnf(LocationInit, "just a warning")
	assert.False(t, c.HasError())

	c.Errorf(LocationInit, "boom")
	assert.True(t, c.HasError())

	c.Warnf(LocationInit, "another warning")
	assert.True(t, c.HasError(), "HasError must stay true once an error is seen")

	require.Len(t, c.Diagnostics(), 3)
}

func TestLocationAdvancedBy(t *testing.T) {
	loc := LocationInit
	loc = loc.AdvancedBy("abc")
	assert.Equal(t, Location{Offset: 3, Line: 1, Column: 4}, loc)

	loc = loc.AdvancedBy("\ndef")
	assert.Equal(t, Location{Offset: 7, Line: 2, Column: 4}, loc)
}

func TestRenderCaret(t *testing.T) {
	c := NewCollector()
	c.Errorf(Location{Line: 2, Column: 3}, "use of undeclared identifier 'x'")

	var buf bytes.Buffer
	Render(&buf, "test.c", "int main(){\n  x = 1;\n}", c.Diagnostics())

	want := "test.c:2:3: error: use of undeclared identifier 'x'\n  x = 1;\n  ^\n"
	assert.Equal(t, want, buf.String())
}
