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

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minic/minic/internal/diag"
)

func tokenize(t *testing.T, src string) ([]Token, *diag.Collector) {
	t.Helper()
	errs := diag.NewCollector()
	lx := New([]byte(src), errs)
	var toks []Token
	for tok := range lx.AllTokens() {
		toks = append(toks, tok)
	}
	return toks, errs
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	toks, errs := tokenize(t, `int x = 1 + y;`)
	require.False(t, errs.HasError())
	require.Equal(t, []Kind{Keyword, Identifier, Punct, IntLiteral, Punct, Identifier, Punct, EOF}, kinds(toks))
	assert.Equal(t, "int", toks[0].Text)
	assert.Equal(t, "x", toks[1].Text)
	assert.Equal(t, "=", toks[2].Text)
}

func TestLexerLocationMonotonicity(t *testing.T) {
	toks, errs := tokenize(t, "int x;\nint y;")
	require.False(t, errs.HasError())
	for i := 1; i < len(toks); i++ {
		assert.Greaterf(t, toks[i].Location.Offset, toks[i-1].Location.Offset,
			"token %d (%q) must start after token %d (%q)", i, toks[i].Text, i-1, toks[i-1].Text)
	}
}

func TestLexerFloatVsInt(t *testing.T) {
	toks, errs := tokenize(t, "1 1.5 1e3 1.0f 0x1F")
	require.False(t, errs.HasError())
	require.Equal(t, []Kind{IntLiteral, FloatLiteral, FloatLiteral, FloatLiteral, IntLiteral, EOF}, kinds(toks))
}

func TestLexerCharLiteralBecomesIntLiteral(t *testing.T) {
	toks, errs := tokenize(t, `'a' '\n' '\0'`)
	require.False(t, errs.HasError())
	require.Equal(t, []Kind{IntLiteral, IntLiteral, IntLiteral, EOF}, kinds(toks))
	assert.Equal(t, "97", toks[0].Text)
	assert.Equal(t, "10", toks[1].Text)
	assert.Equal(t, "0", toks[2].Text)
}

func TestLexerUnterminatedStringRecovers(t *testing.T) {
	toks, errs := tokenize(t, "\"abc\nint y;")
	require.True(t, errs.HasError())
	// Lexing continues after the broken literal instead of aborting.
	require.Equal(t, []Kind{StringLiteral, Keyword, Identifier, Punct, EOF}, kinds(toks))
}

func TestLexerUnknownCharacterRecovers(t *testing.T) {
	toks, errs := tokenize(t, "int x `@ = 1;")
	require.True(t, errs.HasError())
	require.GreaterOrEqual(t, errs.Len(), 2, "both stray characters should be reported")
	require.Equal(t, []Kind{Keyword, Identifier, Punct, IntLiteral, Punct, EOF}, kinds(toks))
}

func TestLexerThreeCharPunctuator(t *testing.T) {
	toks, errs := tokenize(t, "x <<= 1")
	require.False(t, errs.HasError())
	require.Equal(t, []Kind{Identifier, Punct, IntLiteral, EOF}, kinds(toks))
	assert.Equal(t, "<<=", toks[1].Text)
}
