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

// lowerStmt lowers one statement starting at block b, returning the block
// subsequent statements should be appended to and whether that block has
// already been terminated. Per the terminator-tracking rule, callers must
// stop lowering the enclosing statement sequence the moment terminated is
// true: a terminated block is never appended to again.
func (c *ctx) lowerStmt(b *ir.BasicBlock, s ast.Stmt) (*ir.BasicBlock, bool) {
	switch st := s.(type) {
	case ast.Decl:
		slot := c.declareLocal(st.Name)
		if st.Init != nil {
			var v ir.ValueID
			b, v = c.lowerExpr(b, st.Init)
			c.fn.Store(b, slot, v)
		}
		return b, false

	case ast.ExprStmt:
		b, _ = c.lowerExpr(b, st.X)
		return b, false

	case ast.Block:
		c.pushScope()
		b, terminated := c.lowerStmts(b, st.Stmts)
		c.popScope()
		return b, terminated

	case ast.If:
		return c.lowerIf(b, st)

	case ast.While:
		return c.lowerWhile(b, st)

	case ast.DoWhile:
		return c.lowerDoWhile(b, st)

	case ast.For:
		return c.lowerFor(b, st)

	case ast.Break:
		t := c.currentLoop()
		b.SetTerm(ir.Br{Target: t.Break})
		return b, true

	case ast.Continue:
		t := c.currentLoop()
		b.SetTerm(ir.Br{Target: t.Continue})
		return b, true

	case ast.Return:
		b, v := c.lowerExpr(b, st.Value)
		b.SetTerm(ir.Ret{Value: v})
		return b, true

	case ast.Empty:
		return b, false

	default:
		log.Panicf("lower: unknown statement variant %T", st)
		return nil, false
	}
}

// lowerStmts lowers an ordered statement sequence into b, stopping as soon
// as one of them terminates the block: "subsequent statements in the same
// block after a terminator are silently skipped", per §4.6.
func (c *ctx) lowerStmts(b *ir.BasicBlock, stmts []ast.Stmt) (*ir.BasicBlock, bool) {
	for _, s := range stmts {
		var terminated bool
		b, terminated = c.lowerStmt(b, s)
		if terminated {
			return b, true
		}
	}
	return b, false
}

func (c *ctx) lowerIf(b *ir.BasicBlock, st ast.If) (*ir.BasicBlock, bool) {
	b, condV := c.lowerExpr(b, st.Cond)
	condB := c.truthy(b, condV)

	thenBlock := c.fn.NewBlock("if.then")
	var elseBlock *ir.BasicBlock
	mergeBlock := c.fn.NewBlock("if.end")

	if st.Else != nil {
		elseBlock = c.fn.NewBlock("if.else")
		b.SetTerm(ir.CondBr{Cond: condB, True: thenBlock.ID, False: elseBlock.ID})
	} else {
		b.SetTerm(ir.CondBr{Cond: condB, True: thenBlock.ID, False: mergeBlock.ID})
	}

	thenEnd, thenTerm := c.lowerStmt(thenBlock, st.Then)
	if !thenTerm {
		thenEnd.SetTerm(ir.Br{Target: mergeBlock.ID})
	}

	if st.Else != nil {
		elseEnd, elseTerm := c.lowerStmt(elseBlock, st.Else)
		if !elseTerm {
			elseEnd.SetTerm(ir.Br{Target: mergeBlock.ID})
		}
	}

	return mergeBlock, false
}

func (c *ctx) lowerWhile(b *ir.BasicBlock, st ast.While) (*ir.BasicBlock, bool) {
	condBlock := c.fn.NewBlock("while.cond")
	bodyBlock := c.fn.NewBlock("while.body")
	endBlock := c.fn.NewBlock("while.end")

	b.SetTerm(ir.Br{Target: condBlock.ID})

	condEnd, condV := c.lowerExpr(condBlock, st.Cond)
	condB := c.truthy(condEnd, condV)
	condEnd.SetTerm(ir.CondBr{Cond: condB, True: bodyBlock.ID, False: endBlock.ID})

	c.pushLoop(loopTarget{Break: endBlock.ID, Continue: condBlock.ID})
	bodyEnd, bodyTerm := c.lowerStmt(bodyBlock, st.Body)
	c.popLoop()
	if !bodyTerm {
		bodyEnd.SetTerm(ir.Br{Target: condBlock.ID})
	}

	return endBlock, false
}

func (c *ctx) lowerDoWhile(b *ir.BasicBlock, st ast.DoWhile) (*ir.BasicBlock, bool) {
	bodyBlock := c.fn.NewBlock("dowhile.body")
	condBlock := c.fn.NewBlock("dowhile.cond")
	endBlock := c.fn.NewBlock("dowhile.end")

	b.SetTerm(ir.Br{Target: bodyBlock.ID})

	c.pushLoop(loopTarget{Break: endBlock.ID, Continue: condBlock.ID})
	bodyEnd, bodyTerm := c.lowerStmt(bodyBlock, st.Body)
	c.popLoop()
	if !bodyTerm {
		bodyEnd.SetTerm(ir.Br{Target: condBlock.ID})
	}

	condEnd, condV := c.lowerExpr(condBlock, st.Cond)
	condB := c.truthy(condEnd, condV)
	condEnd.SetTerm(ir.CondBr{Cond: condB, True: bodyBlock.ID, False: endBlock.ID})

	return endBlock, false
}

// lowerFor lowers every clause as the spec prescribes in full (unlike the
// source this system is grounded on, whose codegen only implements while):
// init runs in the current block, an absent cond is the constant true, and
// continue targets the step block rather than the condition so the step
// always runs before control returns to cond.
func (c *ctx) lowerFor(b *ir.BasicBlock, st ast.For) (*ir.BasicBlock, bool) {
	c.pushScope()
	defer c.popScope()

	if st.Init != nil {
		var terminated bool
		b, terminated = c.lowerStmt(b, st.Init)
		if terminated {
			return b, true
		}
	}

	condBlock := c.fn.NewBlock("for.cond")
	bodyBlock := c.fn.NewBlock("for.body")
	stepBlock := c.fn.NewBlock("for.step")
	endBlock := c.fn.NewBlock("for.end")

	b.SetTerm(ir.Br{Target: condBlock.ID})

	var condB ir.ValueID
	condEnd := condBlock
	if st.Cond != nil {
		var condV ir.ValueID
		condEnd, condV = c.lowerExpr(condBlock, st.Cond)
		condB = c.truthy(condEnd, condV)
	} else {
		condB = c.fn.ConstBool(condEnd, true)
	}
	condEnd.SetTerm(ir.CondBr{Cond: condB, True: bodyBlock.ID, False: endBlock.ID})

	c.pushLoop(loopTarget{Break: endBlock.ID, Continue: stepBlock.ID})
	bodyEnd, bodyTerm := c.lowerStmt(bodyBlock, st.Body)
	c.popLoop()
	if !bodyTerm {
		bodyEnd.SetTerm(ir.Br{Target: stepBlock.ID})
	}

	stepEnd := stepBlock
	if st.Step != nil {
		stepEnd, _ = c.lowerExpr(stepBlock, st.Step)
	}
	stepEnd.SetTerm(ir.Br{Target: condBlock.ID})

	return endBlock, false
}
