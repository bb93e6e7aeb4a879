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

// Package parser implements a layered recursive-descent parser that turns
// a internal/cc/lexer token stream into the typed AST defined in
// internal/cc/ast. Each parse function reports at most one diagnostic, at
// the first unexpected token, and reports failure to its caller by
// returning ok=false rather than a partial tree.
package parser

import (
	"github.com/minic/minic/internal/cc/ast"
	"github.com/minic/minic/internal/cc/lexer"
	"github.com/minic/minic/internal/diag"
)

// Parser holds the state threaded through one parse of a translation unit.
type Parser struct {
	tr   *tokenReader
	errs *diag.Collector
}

// New returns a Parser consuming tokens from lx, reporting diagnostics to
// errs.
func New(lx *lexer.Lexer, errs *diag.Collector) *Parser {
	return &Parser{tr: newTokenReader(lx), errs: errs}
}

// ParseTranslationUnit parses the single top-level function definition
// ("int name ( ) { stmt* }") that makes up a translation unit.
func (p *Parser) ParseTranslationUnit() (ast.TranslationUnit, bool) {
	loc := p.tr.peek().Location
	if !p.expectKeyword("int") {
		return ast.TranslationUnit{}, false
	}
	nameTok := p.tr.peek()
	if nameTok.Kind != lexer.Identifier {
		p.errs.Errorf(nameTok.Location, "expected function name")
		return ast.TranslationUnit{}, false
	}
	p.tr.next()
	if !p.expectPunct("(") {
		return ast.TranslationUnit{}, false
	}
	if !p.expectPunct(")") {
		return ast.TranslationUnit{}, false
	}
	if !p.tr.atPunct("{") {
		p.errs.Errorf(p.tr.peek().Location, "expected '{'")
		return ast.TranslationUnit{}, false
	}
	block, ok := p.parseBlock()
	if !ok {
		return ast.TranslationUnit{}, false
	}
	body := block.(ast.Block).Stmts

	if p.tr.peek().Kind != lexer.EOF {
		p.errs.Errorf(p.tr.peek().Location, "unexpected token after function body")
		return ast.TranslationUnit{}, false
	}

	return ast.TranslationUnit{FuncName: nameTok.Text, Body: body, Loc: loc}, true
}
