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
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minic/minic/internal/cc/ppscan"
	"github.com/minic/minic/internal/diag"
)

// fakeFS is an in-memory FileSystem for tests, standing in for the driver.
type fakeFS map[string]string

func (fs fakeFS) ReadFile(p string) (string, bool, error) {
	text, ok := fs[p]
	return text, ok, nil
}

func (fs fakeFS) Dir(p string) string { return path.Dir(p) }

func scanMacroBody(text string) []ppscan.Token { return ppscan.Scan(text) }

func run(t *testing.T, p *Preprocessor, source string) (string, bool) {
	t.Helper()
	return p.Run("test.c", source)
}

func TestObjectLikeMacro(t *testing.T) {
	errs := diag.NewCollector()
	p := New(fakeFS{}, errs)
	out, ok := run(t, p, "#define SIZE 10\nint x = SIZE;\n")
	require.True(t, ok)
	assert.False(t, errs.HasError())
	assert.Equal(t, "int x = 10;\n", out)
}

func TestFunctionLikeMacro(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define ADD(a, b) ((a) + (b))\nint x = ADD(1, 2);\n")
	require.True(t, ok)
	assert.Equal(t, "int x = ((1) + (2));\n", out)
}

func TestFunctionLikeMacroArgCountMismatchEmitsVerbatim(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define ADD(a, b) ((a) + (b))\nint x = ADD(1);\n")
	require.True(t, ok)
	assert.Equal(t, "int x = ADD(1);\n", out)
}

func TestStringizeOperator(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define STR(x) #x\nchar *s = STR(hello);\n")
	require.True(t, ok)
	assert.Equal(t, `char *s = "hello";`+"\n", out)
}

func TestTokenPasteOperator(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define CAT(a, b) a##b\nint CAT(fo, o) = 1;\n")
	require.True(t, ok)
	assert.Equal(t, "int foo = 1;\n", out)
}

func TestVariadicMacro(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define LOG(fmt, ...) printf(fmt, __VA_ARGS__)\nLOG(\"%d %d\", 1, 2);\n")
	require.True(t, ok)
	assert.Equal(t, `printf("%d %d", 1, 2);`+"\n", out)
}

func TestMacroSelfReferenceGuard(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define X (X + 1)\nint y = X;\n")
	require.True(t, ok)
	assert.Equal(t, "int y = (X + 1);\n", out)
}

func TestUndef(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define FOO 1\n#undef FOO\nint x = FOO;\n")
	require.True(t, ok)
	assert.Equal(t, "int x = FOO;\n", out)
}

func TestConditionalCompilationTakesFirstTrueBranch(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	source := "#define V 2\n#if V==1\nint main(){return 1;}\n#elif V==2\nint main(){return 2;}\n#else\nint main(){return 3;}\n#endif\n"
	out, ok := run(t, p, source)
	require.True(t, ok)
	assert.Equal(t, "int main(){return 2;}\n", strings.TrimSpace(out)+"\n")
}

func TestIfdefIfndef(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "#define FOO\n#ifdef FOO\nint a;\n#endif\n#ifndef FOO\nint b;\n#endif\n")
	require.True(t, ok)
	assert.Equal(t, "int a;\n", out)
}

func TestNestedConditional(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	source := "#if 1\n#if 0\nint a;\n#else\nint b;\n#endif\n#endif\n"
	out, ok := run(t, p, source)
	require.True(t, ok)
	assert.Equal(t, "int b;\n", out)
}

func TestUnterminatedConditionalIsError(t *testing.T) {
	errs := diag.NewCollector()
	p := New(fakeFS{}, errs)
	_, ok := run(t, p, "#if 1\nint a;\n")
	assert.False(t, ok)
	assert.True(t, errs.HasError())
}

func TestUnexpectedElseIsError(t *testing.T) {
	errs := diag.NewCollector()
	p := New(fakeFS{}, errs)
	_, ok := run(t, p, "#else\n")
	assert.False(t, ok)
	assert.True(t, errs.HasError())
}

func TestIncludeQuoted(t *testing.T) {
	fs := fakeFS{
		"src/header.h": "#define GREETING 1\n",
		"src/main.c":   `#include "header.h"` + "\nint x = GREETING;\n",
	}
	p := New(fs, diag.NewCollector())
	out, ok := p.Run("src/main.c", fs["src/main.c"])
	require.True(t, ok)
	assert.Equal(t, "int x = 1;\n", out)
}

func TestIncludeNotFoundIsError(t *testing.T) {
	errs := diag.NewCollector()
	p := New(fakeFS{}, errs)
	_, ok := run(t, p, `#include "missing.h"`+"\n")
	assert.False(t, ok)
	assert.True(t, errs.HasError())
}

func TestIncludeVirtualHeaderSkipsRead(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector(), WithVirtualHeaders("**/stdio.h"))
	out, ok := run(t, p, `#include <stdio.h>`+"\nint x = 1;\n")
	require.True(t, ok)
	assert.Equal(t, "int x = 1;\n", out)
}

func TestBuiltinLine(t *testing.T) {
	p := New(fakeFS{}, diag.NewCollector())
	out, ok := run(t, p, "int a = __LINE__;\nint b = __LINE__;\n")
	require.True(t, ok)
	assert.Equal(t, "int a = 1;\nint b = 2;\n", out)
}
