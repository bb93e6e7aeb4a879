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

// Package lexer tokenizes preprocessed C source text into a stream of typed
// tokens carrying source locations. It runs after internal/cc/preproc has
// already stripped comments, resolved includes, and expanded macros, so it
// only needs to understand the core C lexical grammar: identifiers,
// keywords, numeric/char/string literals, and punctuators.
package lexer

import "github.com/minic/minic/internal/diag"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Identifier
	Keyword
	IntLiteral
	FloatLiteral
	StringLiteral
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case IntLiteral:
		return "integer literal"
	case FloatLiteral:
		return "float literal"
	case StringLiteral:
		return "string literal"
	case Punct:
		return "punctuator"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit: its kind, the literal text it was scanned
// from (already stripped of surrounding quotes is NOT done here — string and
// char literals keep their delimiters in Text so the parser can tell an
// empty literal from none at all), and the location of its first character.
type Token struct {
	Kind     Kind
	Text     string
	Location diag.Location
}

// TokenEOF is the sentinel token returned once the input is exhausted.
var TokenEOF = Token{Kind: EOF}

// keywords is the fixed set of reserved words recognized only after an
// identifier has already been scanned, per the lexical spec: "Keywords are
// recognized only after identifier tokenization."
var keywords = map[string]bool{
	"int": true, "if": true, "else": true, "while": true, "do": true,
	"for": true, "break": true, "continue": true, "return": true,
}
