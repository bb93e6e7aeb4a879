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

package preproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minic/minic/internal/diag"
)

func evalIf(t *testing.T, p *Preprocessor, expr string) bool {
	t.Helper()
	cond, err := p.evalIf(expr)
	require.NoError(t, err)
	return cond
}

func TestIfExprPrecedence(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	cases := map[string]bool{
		"1 + 2 * 3 == 7":     true,
		"(1 + 2) * 3 == 9":   true,
		"1 << 2 == 4":        true,
		"8 >> 2 == 2":        true,
		"1 && 0 || 1":        true,
		"!0":                 true,
		"!1":                 false,
		"~0 == -1":           true,
		"5 % 2 == 1":         true,
		"1 / 0 == 0":         true,
		"1 % 0 == 0":         true,
		"1 == 1 && 2 == 2":   true,
		"0x10 == 16":         true,
	}
	for expr, want := range cases {
		assert.Equal(t, want, evalIf(t, p, expr), "expr %q", expr)
	}
}

func TestIfExprDefined(t *testing.T) {
	errs := diag.NewCollector()
	p := New(fakeFS{}, errs)
	p.macros["FOO"] = &Macro{Name: "FOO"}
	assert.True(t, evalIf(t, p, "defined(FOO)"))
	assert.True(t, evalIf(t, p, "defined FOO"))
	assert.False(t, evalIf(t, p, "defined(BAR)"))
	assert.False(t, errs.HasError())
}

func TestIfExprObjectMacroAsIdentifier(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	p.macros["V"] = &Macro{Name: "V", Body: scanMacroBody("2")}
	assert.True(t, evalIf(t, p, "V == 2"))
	assert.False(t, evalIf(t, p, "UNDEFINED_NAME"))
}

func TestIfExprMalformedReportsError(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	_, err := p.evalIf("1 +")
	assert.Error(t, err)
	_, err = p.evalIf("(1 + 2")
	assert.Error(t, err)
	_, err = p.evalIf("")
	assert.Error(t, err)
}
