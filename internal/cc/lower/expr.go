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

package lower

import (
	"log"

	"github.com/minic/minic/internal/cc/ast"
	"github.com/minic/minic/internal/cc/ir"
)

// lowerExpr emits e's value into b, returning the (possibly different,
// for short-circuit operators) block the result now lives in and the
// I32-typed ValueID holding it. Expression lowering never terminates a
// block on its own except as an internal step of && / || merging, which
// always leaves the returned block open.
func (c *ctx) lowerExpr(b *ir.BasicBlock, e ast.Expr) (*ir.BasicBlock, ir.ValueID) {
	switch ex := e.(type) {
	case ast.IntLit:
		return b, c.fn.Const(b, ex.Value)

	case ast.Ident:
		return b, c.fn.Load(b, c.resolve(ex.Name))

	case ast.Assign:
		b, v := c.lowerExpr(b, ex.Value)
		c.fn.Store(b, c.resolve(ex.Target.Name), v)
		return b, v

	case ast.Unary:
		return c.lowerUnary(b, ex)

	case ast.Binary:
		return c.lowerBinary(b, ex)

	default:
		log.Panicf("lower: unknown expression variant %T", ex)
		return nil, 0
	}
}

func (c *ctx) lowerUnary(b *ir.BasicBlock, ex ast.Unary) (*ir.BasicBlock, ir.ValueID) {
	b, x := c.lowerExpr(b, ex.X)
	switch ex.Op {
	case "+":
		return b, x
	case "-":
		return b, c.fn.UnOp(b, ir.OpNeg, x)
	case "~":
		return b, c.fn.UnOp(b, ir.OpNot, x)
	case "!":
		zero := c.fn.Const(b, 0)
		cmp := c.fn.Icmp(b, ir.OpIcmpEQ, x, zero)
		return b, c.fn.ZExt(b, cmp)
	default:
		log.Panicf("lower: unknown unary operator %q", ex.Op)
		return nil, 0
	}
}

// truthy lowers v (an I32 value) to the I1 branch predicate the spec
// requires: compared not-equal against zero.
func (c *ctx) truthy(b *ir.BasicBlock, v ir.ValueID) ir.ValueID {
	zero := c.fn.Const(b, 0)
	return c.fn.Icmp(b, ir.OpIcmpNE, v, zero)
}

var cmpOps = map[string]ir.Op{
	"==": ir.OpIcmpEQ,
	"!=": ir.OpIcmpNE,
	"<":  ir.OpIcmpSLT,
	">":  ir.OpIcmpSGT,
	"<=": ir.OpIcmpSLE,
	">=": ir.OpIcmpSGE,
}

var arithOps = map[string]ir.Op{
	"+": ir.OpAdd,
	"-": ir.OpSub,
	"*": ir.OpMul,
	"/": ir.OpSDiv,
}

func (c *ctx) lowerBinary(b *ir.BasicBlock, ex ast.Binary) (*ir.BasicBlock, ir.ValueID) {
	switch ex.Op {
	case "&&":
		return c.lowerLogicalAnd(b, ex.L, ex.R)
	case "||":
		return c.lowerLogicalOr(b, ex.L, ex.R)
	case ",":
		b, _ = c.lowerExpr(b, ex.L)
		return c.lowerExpr(b, ex.R)
	}

	if op, ok := arithOps[ex.Op]; ok {
		b, l := c.lowerExpr(b, ex.L)
		b, r := c.lowerExpr(b, ex.R)
		return b, c.fn.BinOp(b, op, l, r)
	}
	if op, ok := cmpOps[ex.Op]; ok {
		b, l := c.lowerExpr(b, ex.L)
		b, r := c.lowerExpr(b, ex.R)
		cmp := c.fn.Icmp(b, op, l, r)
		return b, c.fn.ZExt(b, cmp)
	}

	log.Panicf("lower: unknown binary operator %q", ex.Op)
	return nil, 0
}

// lowerLogicalAnd implements the spec's short-circuit &&: evaluate LHS; if
// false, branch straight to a block that yields constant false without
// ever touching RHS; otherwise branch to a block that evaluates RHS and
// yields its truthiness. A phi over the two paths merges the result, which
// is then zero-extended back to I32.
func (c *ctx) lowerLogicalAnd(b *ir.BasicBlock, lhs, rhs ast.Expr) (*ir.BasicBlock, ir.ValueID) {
	b, lv := c.lowerExpr(b, lhs)
	lb := c.truthy(b, lv)

	rhsBlock := c.fn.NewBlock("land.rhs")
	falseBlock := c.fn.NewBlock("land.false")
	mergeBlock := c.fn.NewBlock("land.end")

	b.SetTerm(ir.CondBr{Cond: lb, True: rhsBlock.ID, False: falseBlock.ID})

	falseBool := c.fn.ConstBool(falseBlock, false)
	falseBlock.SetTerm(ir.Br{Target: mergeBlock.ID})

	rhsBlock2, rv := c.lowerExpr(rhsBlock, rhs)
	rb := c.truthy(rhsBlock2, rv)
	rhsBlock2.SetTerm(ir.Br{Target: mergeBlock.ID})

	phi := c.fn.Phi(ir.I1, []ir.PhiEdge{
		{Block: falseBlock.ID, Value: falseBool},
		{Block: rhsBlock2.ID, Value: rb},
	})
	mergeBlock.AddPhi(phi)
	return mergeBlock, c.fn.ZExt(mergeBlock, phi.ID)
}

// lowerLogicalOr is the symmetric counterpart of lowerLogicalAnd: on LHS
// true, branch to a block yielding constant true without evaluating RHS;
// otherwise evaluate RHS and merge.
func (c *ctx) lowerLogicalOr(b *ir.BasicBlock, lhs, rhs ast.Expr) (*ir.BasicBlock, ir.ValueID) {
	b, lv := c.lowerExpr(b, lhs)
	lb := c.truthy(b, lv)

	rhsBlock := c.fn.NewBlock("lor.rhs")
	trueBlock := c.fn.NewBlock("lor.true")
	mergeBlock := c.fn.NewBlock("lor.end")

	b.SetTerm(ir.CondBr{Cond: lb, True: trueBlock.ID, False: rhsBlock.ID})

	trueBool := c.fn.ConstBool(trueBlock, true)
	trueBlock.SetTerm(ir.Br{Target: mergeBlock.ID})

	rhsBlock2, rv := c.lowerExpr(rhsBlock, rhs)
	rb := c.truthy(rhsBlock2, rv)
	rhsBlock2.SetTerm(ir.Br{Target: mergeBlock.ID})

	phi := c.fn.Phi(ir.I1, []ir.PhiEdge{
		{Block: trueBlock.ID, Value: trueBool},
		{Block: rhsBlock2.ID, Value: rb},
	})
	mergeBlock.AddPhi(phi)
	return mergeBlock, c.fn.ZExt(mergeBlock, phi.ID)
}
