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

// Package ppscan tokenizes preprocessing text into pp-tokens: the unit the
// preprocessor's macro expander operates on, distinct from internal/cc/lexer
// which tokenizes the already-preprocessed output. A pp-token stream keeps
// whitespace as explicit tokens (needed to implement the whitespace-trimming
// rule around the '##' paste operator) and keeps string/char literals whole
// (needed so argument scanning doesn't split on a ',' or ')' inside quotes).
package ppscan

import "regexp"

// Kind classifies a pp-token.
type Kind int

const (
	Ident Kind = iota
	Number
	String
	Char
	HashHash // '##', the token-paste operator
	Punct    // any other single punctuator character, including lone '#'
	Whitespace
)

// Token is a pp-token: its kind and exact source text.
type Token struct {
	Kind Kind
	Text string
}

var (
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	reNumber     = regexp.MustCompile(`^(?:0[xX][0-9a-fA-F]+|[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?[fF]?|\.[0-9]+)`)
)

// Scan tokenizes a single line of preprocessing text into pp-tokens. The
// preprocessor passes it one physical source line at a time; backslash-newline
// continuations are not spliced.
func Scan(text string) []Token {
	var toks []Token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t':
			j := i
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			toks = append(toks, Token{Kind: Whitespace, Text: text[i:j]})
			i = j

		case c == '"':
			j := scanQuoted(text, i, '"')
			toks = append(toks, Token{Kind: String, Text: text[i:j]})
			i = j

		case c == '\'':
			j := scanQuoted(text, i, '\'')
			toks = append(toks, Token{Kind: Char, Text: text[i:j]})
			i = j

		case c == '#':
			if i+1 < len(text) && text[i+1] == '#' {
				toks = append(toks, Token{Kind: HashHash, Text: "##"})
				i += 2
			} else {
				toks = append(toks, Token{Kind: Punct, Text: "#"})
				i++
			}

		case isIdentStart(c):
			m := reIdentifier.FindString(text[i:])
			toks = append(toks, Token{Kind: Ident, Text: m})
			i += len(m)

		case isDigit(c) || (c == '.' && i+1 < len(text) && isDigit(text[i+1])):
			m := reNumber.FindString(text[i:])
			if m == "" {
				toks = append(toks, Token{Kind: Punct, Text: string(c)})
				i++
				continue
			}
			toks = append(toks, Token{Kind: Number, Text: m})
			i += len(m)

		default:
			toks = append(toks, Token{Kind: Punct, Text: string(c)})
			i++
		}
	}
	return toks
}

// scanQuoted returns the index just past a quoted literal starting at i
// (text[i] == quote), honoring backslash escapes. If the literal is
// unterminated, it returns len(text).
func scanQuoted(text string, i int, quote byte) int {
	j := i + 1
	for j < len(text) {
		if text[j] == '\\' && j+1 < len(text) {
			j += 2
			continue
		}
		if text[j] == quote {
			return j + 1
		}
		j++
	}
	return j
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Join renders a token slice back to text, verbatim.
func Join(toks []Token) string {
	var out []byte
	for _, t := range toks {
		out = append(out, t.Text...)
	}
	return string(out)
}

// TrimSpace drops leading and trailing Whitespace tokens.
func TrimSpace(toks []Token) []Token {
	start := 0
	for start < len(toks) && toks[start].Kind == Whitespace {
		start++
	}
	end := len(toks)
	for end > start && toks[end-1].Kind == Whitespace {
		end--
	}
	return toks[start:end]
}
