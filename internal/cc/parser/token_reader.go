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

package parser

import "github.com/minic/minic/internal/cc/lexer"

// tokenReader is a thin wrapper around *lexer.Lexer giving the parser a
// one-token lookahead (peek) on top of the lexer's own single-token
// interface.
type tokenReader struct {
	lx  *lexer.Lexer
	cur lexer.Token
}

func newTokenReader(lx *lexer.Lexer) *tokenReader {
	tr := &tokenReader{lx: lx}
	tr.cur = lx.NextToken()
	return tr
}

// peek returns the token that next() would return, without consuming it.
func (tr *tokenReader) peek() lexer.Token { return tr.cur }

// next consumes and returns the current token, advancing the lookahead.
func (tr *tokenReader) next() lexer.Token {
	tok := tr.cur
	tr.cur = tr.lx.NextToken()
	return tok
}

// atKeyword reports whether the current token is the keyword kw.
func (tr *tokenReader) atKeyword(kw string) bool {
	t := tr.cur
	return t.Kind == lexer.Keyword && t.Text == kw
}

// atPunct reports whether the current token is the punctuator p.
func (tr *tokenReader) atPunct(p string) bool {
	t := tr.cur
	return t.Kind == lexer.Punct && t.Text == p
}
