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

// Package sema walks the AST produced by internal/cc/parser, maintaining a
// lexical symbol table and reporting redefinition, undeclared-use, and
// misplaced break/continue diagnostics. It never mutates the AST, and it
// keeps walking after an error to collect as many diagnostics as possible
// in one pass.
package sema

import (
	"log"

	"github.com/minic/minic/internal/cc/ast"
	"github.com/minic/minic/internal/diag"
)

// Checker holds the state threaded through one semantic analysis pass.
type Checker struct {
	errs      *diag.Collector
	scopes    []map[string]diag.Location
	loopDepth int
}

// New returns a Checker that reports diagnostics to errs.
func New(errs *diag.Collector) *Checker {
	return &Checker{errs: errs}
}

// Check walks tu's body, reporting diagnostics to the Checker's collector.
// It reports whether the collector is still error-free afterward.
func (c *Checker) Check(tu ast.TranslationUnit) bool {
	c.pushScope()
	c.checkStmts(tu.Body)
	c.popScope()
	return !c.errs.HasError()
}

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, map[string]diag.Location{})
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// declare inserts name into the innermost scope, or reports a redefinition
// if it is already present there (shadowing an outer scope is fine).
func (c *Checker) declare(name string, loc diag.Location) {
	scope := c.scopes[len(c.scopes)-1]
	if _, exists := scope[name]; exists {
		c.errs.Errorf(loc, "redefinition of '%s'", name)
		return
	}
	scope[name] = loc
}

func (c *Checker) isDeclared(name string) bool {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

func (c *Checker) checkStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		c.checkStmt(s)
	}
}

func (c *Checker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case ast.Decl:
		if st.Init != nil {
			c.checkExpr(st.Init)
		}
		c.declare(st.Name, st.Loc)

	case ast.ExprStmt:
		c.checkExpr(st.X)

	case ast.Block:
		c.pushScope()
		c.checkStmts(st.Stmts)
		c.popScope()

	case ast.If:
		c.checkExpr(st.Cond)
		c.checkStmt(st.Then)
		if st.Else != nil {
			c.checkStmt(st.Else)
		}

	case ast.While:
		c.checkExpr(st.Cond)
		c.loopDepth++
		c.checkStmt(st.Body)
		c.loopDepth--

	case ast.DoWhile:
		c.loopDepth++
		c.checkStmt(st.Body)
		c.loopDepth--
		c.checkExpr(st.Cond)

	case ast.For:
		// The for's own scope holds a declaration in the init clause, so
		// "for (int i = 0; ...)" doesn't leak i past the loop.
		c.pushScope()
		if st.Init != nil {
			c.checkStmt(st.Init)
		}
		if st.Cond != nil {
			c.checkExpr(st.Cond)
		}
		c.loopDepth++
		c.checkStmt(st.Body)
		c.loopDepth--
		if st.Step != nil {
			c.checkExpr(st.Step)
		}
		c.popScope()

	case ast.Break:
		if c.loopDepth == 0 {
			c.errs.Errorf(st.Loc, "'break' statement not in a loop")
		}

	case ast.Continue:
		if c.loopDepth == 0 {
			c.errs.Errorf(st.Loc, "'continue' statement not in a loop")
		}

	case ast.Return:
		c.checkExpr(st.Value)

	case ast.Empty:
		// nothing to check

	default:
		log.Panicf("sema: unknown statement variant %T", st)
	}
}

func (c *Checker) checkExpr(e ast.Expr) {
	switch ex := e.(type) {
	case ast.IntLit:
		// nothing to check

	case ast.Ident:
		if !c.isDeclared(ex.Name) {
			c.errs.Errorf(ex.Loc, "use of undeclared identifier '%s'", ex.Name)
		}

	case ast.Unary:
		c.checkExpr(ex.X)

	case ast.Binary:
		c.checkExpr(ex.L)
		c.checkExpr(ex.R)

	case ast.Assign:
		c.checkExpr(ex.Value)
		if !c.isDeclared(ex.Target.Name) {
			c.errs.Errorf(ex.Target.Loc, "assignment to undeclared identifier '%s'", ex.Target.Name)
		}

	default:
		log.Panicf("sema: unknown expression variant %T", ex)
	}
}
