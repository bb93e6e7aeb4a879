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

// Package ast defines the typed abstract syntax tree produced by
// internal/cc/parser: a tagged sum of expression and statement variants,
// each carrying the source location it was parsed from.
package ast

import "github.com/minic/minic/internal/diag"

// Node is anything in the tree that can point back at its source location.
type Node interface {
	Location() diag.Location
}

// Expr is an expression-tree node. The comma operator is represented as a
// Binary with Op ",", not a separate variant, since it behaves exactly
// like any other left-associative binary operator once parsed.
type Expr interface {
	Node
	exprNode()
}

type (
	// IntLit is an integer literal.
	IntLit struct {
		Value int64
		Loc   diag.Location
	}

	// Ident is a variable reference.
	Ident struct {
		Name string
		Loc  diag.Location
	}

	// Unary is a prefix operator applied to a single operand: one of
	// "+", "-", "!", "~".
	Unary struct {
		Op  string
		X   Expr
		Loc diag.Location
	}

	// Binary is a two-operand operator, including the comma operator.
	Binary struct {
		Op   string
		L, R Expr
		Loc  diag.Location
	}

	// Assign is an assignment expression. The parser only ever builds one
	// with Target pointing at an Ident (invariant: an assignment's
	// left-hand side is always a variable reference); a bare assignment
	// statement `name = expr;` is an ExprStmt wrapping one of these, and
	// chained assignment (`a = b = c`) nests one inside another's Value.
	Assign struct {
		Target *Ident
		Value  Expr
		Loc    diag.Location
	}
)

func (n IntLit) Location() diag.Location { return n.Loc }
func (n Ident) Location() diag.Location  { return n.Loc }
func (n Unary) Location() diag.Location  { return n.Loc }
func (n Binary) Location() diag.Location { return n.Loc }
func (n Assign) Location() diag.Location { return n.Loc }

func (IntLit) exprNode() {}
func (Ident) exprNode()  {}
func (Unary) exprNode()  {}
func (Binary) exprNode() {}
func (Assign) exprNode() {}
