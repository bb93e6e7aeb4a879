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

package ppscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRoundTrips(t *testing.T) {
	for _, line := range []string{
		`int CAT(v,1) = 10;`,
		`const char* s = "hi, there";`,
		`#define FOO(a, b) a##b`,
		`x = 'a' + 1;`,
	} {
		toks := Scan(line)
		assert.Equal(t, line, Join(toks), "round trip for %q", line)
	}
}

func TestScanHashHashIsOneToken(t *testing.T) {
	toks := Scan("a##b")
	require.Len(t, toks, 3)
	assert.Equal(t, Ident, toks[0].Kind)
	assert.Equal(t, HashHash, toks[1].Kind)
	assert.Equal(t, Ident, toks[2].Kind)
}

func TestScanStringIgnoresCommaAndParen(t *testing.T) {
	toks := Scan(`"a, (b)"`)
	require.Len(t, toks, 1)
	assert.Equal(t, String, toks[0].Kind)
	assert.Equal(t, `"a, (b)"`, toks[0].Text)
}

func TestTrimSpace(t *testing.T) {
	toks := Scan("  x  ")
	trimmed := TrimSpace(toks)
	require.Len(t, trimmed, 1)
	assert.Equal(t, "x", trimmed[0].Text)
}
