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

import (
	"github.com/minic/minic/internal/cc/ast"
	"github.com/minic/minic/internal/cc/lexer"
)

// parseStatement parses any one of the statement forms named in the
// grammar: declaration, block, if/while/do-while/for, break, continue,
// return, empty, or a bare expression statement.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	switch {
	case p.tr.atKeyword("int"):
		return p.parseDecl()
	case p.tr.atPunct("{"):
		return p.parseBlock()
	case p.tr.atKeyword("if"):
		return p.parseIf()
	case p.tr.atKeyword("while"):
		return p.parseWhile()
	case p.tr.atKeyword("do"):
		return p.parseDoWhile()
	case p.tr.atKeyword("for"):
		return p.parseFor()
	case p.tr.atKeyword("break"):
		loc := p.tr.next().Location
		if !p.expectPunct(";") {
			return nil, false
		}
		return ast.Break{Loc: loc}, true
	case p.tr.atKeyword("continue"):
		loc := p.tr.next().Location
		if !p.expectPunct(";") {
			return nil, false
		}
		return ast.Continue{Loc: loc}, true
	case p.tr.atKeyword("return"):
		return p.parseReturn()
	case p.tr.atPunct(";"):
		loc := p.tr.next().Location
		return ast.Empty{Loc: loc}, true
	default:
		return p.parseExprStmt()
	}
}

// parseDecl parses "int name [= expr] ;".
func (p *Parser) parseDecl() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "int"
	nameTok := p.tr.peek()
	if nameTok.Kind != lexer.Identifier {
		p.errs.Errorf(nameTok.Location, "expected identifier after 'int'")
		return nil, false
	}
	p.tr.next()
	decl := ast.Decl{Name: nameTok.Text, Loc: loc}
	if p.tr.atPunct("=") {
		p.tr.next()
		init, ok := p.parseAssignment()
		if !ok {
			return nil, false
		}
		decl.Init = init
	}
	if !p.expectPunct(";") {
		return nil, false
	}
	return decl, true
}

// parseExprStmt parses a bare expression statement, which also covers
// assignment ("name = expr ;") since assignment is itself an expression
// form.
func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	loc := p.tr.peek().Location
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectPunct(";") {
		return nil, false
	}
	return ast.ExprStmt{X: x, Loc: loc}, true
}

func (p *Parser) parseBlock() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "{"
	var stmts []ast.Stmt
	for !p.tr.atPunct("}") {
		if p.tr.peek().Kind == lexer.EOF {
			p.errs.Errorf(p.tr.peek().Location, "expected '}'")
			return nil, false
		}
		s, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		stmts = append(stmts, s)
	}
	p.tr.next() // "}"
	return ast.Block{Stmts: stmts, Loc: loc}, true
}

func (p *Parser) parseIf() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "if"
	if !p.expectPunct("(") {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectPunct(")") {
		return nil, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	ifStmt := ast.If{Cond: cond, Then: then, Loc: loc}
	if p.tr.atKeyword("else") {
		p.tr.next()
		elseStmt, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		ifStmt.Else = elseStmt
	}
	return ifStmt, true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "while"
	if !p.expectPunct("(") {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectPunct(")") {
		return nil, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	return ast.While{Cond: cond, Body: body, Loc: loc}, true
}

func (p *Parser) parseDoWhile() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "do"
	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	if !p.expectKeyword("while") {
		return nil, false
	}
	if !p.expectPunct("(") {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectPunct(")") {
		return nil, false
	}
	if !p.expectPunct(";") {
		return nil, false
	}
	return ast.DoWhile{Body: body, Cond: cond, Loc: loc}, true
}

// parseFor parses "for ( [init] ; [cond] ; [step] ) stmt". The init
// position accepts a declaration, any comma-expression, or nothing; cond
// and step accept any comma-expression or nothing.
func (p *Parser) parseFor() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "for"
	if !p.expectPunct("(") {
		return nil, false
	}

	forStmt := ast.For{Loc: loc}
	if p.tr.atKeyword("int") {
		init, ok := p.parseDecl()
		if !ok {
			return nil, false
		}
		forStmt.Init = init
	} else if p.tr.atPunct(";") {
		p.tr.next()
	} else {
		exprLoc := p.tr.peek().Location
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.expectPunct(";") {
			return nil, false
		}
		forStmt.Init = ast.ExprStmt{X: x, Loc: exprLoc}
	}

	if !p.tr.atPunct(";") {
		cond, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		forStmt.Cond = cond
	}
	if !p.expectPunct(";") {
		return nil, false
	}

	if !p.tr.atPunct(")") {
		step, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		forStmt.Step = step
	}
	if !p.expectPunct(")") {
		return nil, false
	}

	body, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	forStmt.Body = body
	return forStmt, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	loc := p.tr.next().Location // "return"
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.expectPunct(";") {
		return nil, false
	}
	return ast.Return{Value: value, Loc: loc}, true
}

func (p *Parser) expectPunct(text string) bool {
	if !p.tr.atPunct(text) {
		p.errs.Errorf(p.tr.peek().Location, "expected '%s'", text)
		return false
	}
	p.tr.next()
	return true
}

func (p *Parser) expectKeyword(text string) bool {
	if !p.tr.atKeyword(text) {
		p.errs.Errorf(p.tr.peek().Location, "expected '%s'", text)
		return false
	}
	p.tr.next()
	return true
}
