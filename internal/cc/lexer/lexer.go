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
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/minic/minic/internal/diag"
)

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	reNumber     = regexp.MustCompile(`^(?:0[xX][0-9a-fA-F]+|[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?[fF]?|\.[0-9]+([eE][+-]?[0-9]+)?[fF]?)`)
)

// punctuators is tried longest-match-first so that e.g. "<<=" is preferred
// over "<<" which is preferred over "<".
var punctuators = []string{
	"<<=", ">>=",
	"==", "!=", "<=", ">=", "&&", "||", "++", "--", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "~", "&", "|", "^",
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "?", ":",
}

type lexeme struct {
	kind   Kind
	length int
}

// Lexer is a single-pass, non-backtracking (beyond one character of
// lookahead, two for a leading-dot number or a three-character punctuator)
// scanner over preprocessed source text.
type Lexer struct {
	dataLeft []byte
	loc      diag.Location
	errs     *diag.Collector
}

// New returns a Lexer positioned at the start of source. Lexical errors
// (unterminated literals, unknown characters) are reported to errs; the
// lexer recovers from every one of them and keeps producing tokens.
func New(source []byte, errs *diag.Collector) *Lexer {
	return &Lexer{dataLeft: source, loc: diag.LocationInit, errs: errs}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r' || b == '\n'
}

func (lx *Lexer) skipSpace() {
	i := 0
	for i < len(lx.dataLeft) && isSpace(lx.dataLeft[i]) {
		i++
	}
	if i > 0 {
		lx.advance(i)
	}
}

func (lx *Lexer) advance(n int) string {
	text := string(lx.dataLeft[:n])
	lx.dataLeft = lx.dataLeft[n:]
	lx.loc = lx.loc.AdvancedBy(text)
	return text
}

func (lx *Lexer) consume(lxm lexeme) Token {
	loc := lx.loc
	text := lx.advance(lxm.length)
	return Token{Kind: lxm.kind, Text: text, Location: loc}
}

// NextToken returns the next token in the input, or TokenEOF once exhausted.
func (lx *Lexer) NextToken() Token {
	lx.skipSpace()
	if len(lx.dataLeft) == 0 {
		return TokenEOF
	}

	c := lx.dataLeft[0]
	switch {
	case c == '"':
		return lx.scanString()
	case c == '\'':
		return lx.scanChar()
	case isIdentStart(c):
		return lx.scanIdentOrKeyword()
	case isDigit(c) || (c == '.' && len(lx.dataLeft) > 1 && isDigit(lx.dataLeft[1])):
		return lx.scanNumber()
	}

	for _, p := range punctuators {
		if strings.HasPrefix(string(lx.dataLeft), p) {
			return lx.consume(lexeme{kind: Punct, length: len(p)})
		}
	}

	loc := lx.loc
	bad := lx.advance(1)
	lx.errs.Errorf(loc, "unknown character %q", bad)
	return lx.NextToken()
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }
func isDigit(c byte) bool     { return c >= '0' && c <= '9' }

func (lx *Lexer) scanIdentOrKeyword() Token {
	i := 1
	for i < len(lx.dataLeft) && isIdentCont(lx.dataLeft[i]) {
		i++
	}
	kind := Identifier
	loc := lx.loc
	text := string(lx.dataLeft[:i])
	if keywords[text] {
		kind = Keyword
	}
	lx.advance(i)
	return Token{Kind: kind, Text: text, Location: loc}
}

func (lx *Lexer) scanNumber() Token {
	match := reNumber.Find(lx.dataLeft)
	kind := IntLiteral
	// Hex literals are never float; otherwise a fractional part, exponent,
	// or float suffix reclassifies the token.
	if !strings.HasPrefix(string(match), "0x") && !strings.HasPrefix(string(match), "0X") {
		if strings.ContainsAny(string(match), ".eEfF") {
			kind = FloatLiteral
		}
	}
	return lx.consume(lexeme{kind: kind, length: len(match)})
}

var stringEscapes = map[byte]bool{'n': true, 't': true, 'r': true, '0': true, '\\': true, '\'': true, '"': true}

func (lx *Lexer) scanString() Token {
	loc := lx.loc
	i := 1
	for i < len(lx.dataLeft) {
		c := lx.dataLeft[i]
		if c == '\n' {
			lx.errs.Errorf(loc, "newline in string literal")
			text := lx.advance(i)
			return Token{Kind: StringLiteral, Text: text, Location: loc}
		}
		if c == '\\' && i+1 < len(lx.dataLeft) {
			if !stringEscapes[lx.dataLeft[i+1]] {
				lx.errs.Errorf(lx.loc.AdvancedBy(string(lx.dataLeft[:i])), "unsupported escape sequence '\\%c'", lx.dataLeft[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			i++
			text := lx.advance(i)
			return Token{Kind: StringLiteral, Text: text, Location: loc}
		}
		i++
	}
	lx.errs.Errorf(loc, "unterminated string literal")
	text := lx.advance(i)
	return Token{Kind: StringLiteral, Text: text, Location: loc}
}

// scanChar scans a character literal and yields an integer-literal token
// holding the numeric value of the character, per the lexical spec.
func (lx *Lexer) scanChar() Token {
	loc := lx.loc
	i := 1
	var value int
	ok := false
	if i < len(lx.dataLeft) && lx.dataLeft[i] == '\\' && i+1 < len(lx.dataLeft) {
		esc := lx.dataLeft[i+1]
		value, ok = charEscapeValue(esc)
		if !ok {
			lx.errs.Errorf(lx.loc.AdvancedBy(string(lx.dataLeft[:i])), "unsupported escape sequence '\\%c'", esc)
		}
		i += 2
	} else if i < len(lx.dataLeft) && lx.dataLeft[i] != '\'' && lx.dataLeft[i] != '\n' {
		value = int(lx.dataLeft[i])
		ok = true
		i++
	}
	if i >= len(lx.dataLeft) || lx.dataLeft[i] != '\'' {
		lx.errs.Errorf(loc, "unterminated character literal")
		lx.advance(i)
		return Token{Kind: IntLiteral, Text: "0", Location: loc}
	}
	i++ // closing quote
	lx.advance(i)
	if !ok {
		value = 0
	}
	return Token{Kind: IntLiteral, Text: strconv.Itoa(value), Location: loc}
}

func charEscapeValue(esc byte) (int, bool) {
	switch esc {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	default:
		return 0, false
	}
}

// AllTokens iterates through every token in the input up to and including
// the terminal EOF token.
func (lx *Lexer) AllTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := lx.NextToken()
			if !yield(tok) {
				return
			}
			if tok.Kind == EOF {
				return
			}
		}
	}
}
