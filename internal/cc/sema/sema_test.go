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

package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minic/minic/internal/cc/ast"
	"github.com/minic/minic/internal/cc/lexer"
	"github.com/minic/minic/internal/cc/parser"
	"github.com/minic/minic/internal/diag"
)

func check(t *testing.T, source string) (bool, *diag.Collector) {
	t.Helper()
	errs := diag.NewCollector()
	lx := lexer.New([]byte(source), errs)
	p := parser.New(lx, errs)
	tu, ok := p.ParseTranslationUnit()
	require.True(t, ok, "parse failed: %v", errs.Diagnostics())
	require.Zero(t, errs.Len())

	return New(errs).Check(tu), errs
}

func TestCheckWellFormedProgramHasNoErrors(t *testing.T) {
	ok, errs := check(t, "int main() { int x = 1; int y = x + 1; return y; }\n")
	assert.True(t, ok)
	assert.Zero(t, errs.Len())
}

func TestCheckRedeclarationInSameScopeIsError(t *testing.T) {
	ok, errs := check(t, "int main() { int x = 1; int x = 2; return x; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Diagnostics()[0].Message, "redefinition of 'x'")
}

func TestCheckShadowingInNestedBlockIsNotRedefinition(t *testing.T) {
	ok, errs := check(t, "int main() { int x = 1; { int x = 2; } return x; }\n")
	assert.True(t, ok)
	assert.Zero(t, errs.Len())
}

func TestCheckUndeclaredUseIsError(t *testing.T) {
	ok, errs := check(t, "int main() { return x; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Diagnostics()[0].Message, "use of undeclared identifier 'x'")
}

func TestCheckAssignmentToUndeclaredIsError(t *testing.T) {
	ok, errs := check(t, "int main() { x = 1; return 0; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Diagnostics()[0].Message, "assignment to undeclared identifier 'x'")
}

// S6: the initializer of a declaration cannot refer to the name it is
// initializing, since that name is not yet in scope.
func TestCheckInitializerCannotReferenceOwnName(t *testing.T) {
	ok, errs := check(t, "int main() { x=1; int y=y; return 0; }\n")
	assert.False(t, ok)
	require.GreaterOrEqual(t, errs.Len(), 2)
	assert.Contains(t, errs.Diagnostics()[0].Message, "assignment to undeclared identifier 'x'")
	assert.Contains(t, errs.Diagnostics()[1].Message, "use of undeclared identifier 'y'")
}

func TestCheckBreakOutsideLoopIsError(t *testing.T) {
	ok, errs := check(t, "int main() { break; return 0; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Diagnostics()[0].Message, "'break' statement not in a loop")
}

func TestCheckContinueOutsideLoopIsError(t *testing.T) {
	ok, errs := check(t, "int main() { if (1) continue; return 0; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Diagnostics()[0].Message, "'continue' statement not in a loop")
}

func TestCheckBreakContinueInsideNestedLoopIsFine(t *testing.T) {
	ok, errs := check(t, "int main() { while (1) { if (1) { break; } else { continue; } } return 0; }\n")
	assert.True(t, ok)
	assert.Zero(t, errs.Len())
}

func TestCheckBreakAfterLoopExitIsError(t *testing.T) {
	ok, errs := check(t, "int main() { while (0) { } break; return 0; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
}

func TestCheckForLoopInitVariableScopedToLoop(t *testing.T) {
	ok, errs := check(t, "int main() { for (int i = 0; i < 1; i = i + 1) { } return i; }\n")
	assert.False(t, ok)
	require.Equal(t, 1, errs.Len())
	assert.Contains(t, errs.Diagnostics()[0].Message, "use of undeclared identifier 'i'")
}

func TestCheckContinuesAnalyzingAfterFirstError(t *testing.T) {
	ok, errs := check(t, "int main() { return a; return b; }\n")
	assert.False(t, ok)
	require.Equal(t, 2, errs.Len())
}
