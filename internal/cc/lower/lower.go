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

// Package lower traverses a validated internal/cc/ast.TranslationUnit and
// emits the internal/cc/ir representation: one function, its basic blocks,
// and a well-formed control-flow graph. Lowering never fails — any input
// that could cause a lowering anomaly has already been rejected by
// internal/cc/sema; an unrecognized AST variant reaching this package is an
// internal inconsistency and triggers a fatal assertion, per §4.6/§7.
package lower

import (
	"log"
	"strconv"

	"github.com/minic/minic/internal/cc/ast"
	"github.com/minic/minic/internal/cc/ir"
)

// loopTarget is one entry of the explicit loop-target stack: the blocks
// break and continue jump to for the loop currently being lowered.
type loopTarget struct {
	Break, Continue ir.BlockID
}

// ctx holds the state threaded through lowering a single function body.
type ctx struct {
	fn *ir.Function

	// scopes mirrors sema's lexical scoping, mapping a surface name to the
	// mangled slot name that currently denotes it. A new entry shadows any
	// outer one with the same surface name without colliding in fn.Locals.
	scopes []map[string]string
	slotID int

	loops []loopTarget
}

// Lower produces an ir.Module from tu. The module name is tu.FuncName; the
// module's single function carries the same name, per §6's "one function
// with external linkage".
func Lower(tu ast.TranslationUnit) *ir.Module {
	fn := ir.NewFunction(tu.FuncName)
	c := &ctx{fn: fn}
	c.pushScope()

	cur := fn.Block(fn.Entry)
	terminated := false
	for _, s := range tu.Body {
		cur, terminated = c.lowerStmt(cur, s)
		if terminated {
			break
		}
	}
	c.popScope()

	if !terminated {
		cur.SetTerm(ir.Ret{Value: fn.Const(cur, 0)})
	}

	return &ir.Module{Name: tu.FuncName, Func: fn}
}

func (c *ctx) pushScope() { c.scopes = append(c.scopes, map[string]string{}) }
func (c *ctx) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

// declareLocal mints a fresh slot for name in the innermost scope. Names
// get a numeric suffix whenever they are not already unique across the
// whole function, so a shadowing inner declaration never reuses its outer
// namesake's slot.
func (c *ctx) declareLocal(name string) string {
	slot := name
	if _, taken := c.lookupInCurrentFunction(name); taken {
		c.slotID++
		slot = fmtSlot(name, c.slotID)
	}
	c.fn.AddLocal(slot)
	c.scopes[len(c.scopes)-1][name] = slot
	return slot
}

// lookupInCurrentFunction reports whether slot name is already registered
// anywhere in the function, regardless of current scope visibility; used
// only to decide whether declareLocal needs to disambiguate.
func (c *ctx) lookupInCurrentFunction(name string) (string, bool) {
	for _, n := range c.fn.Locals {
		if n == name {
			return n, true
		}
	}
	return "", false
}

// resolve returns the slot name currently bound to a surface identifier,
// searching from the innermost scope outward. sema has already guaranteed
// this always finds something.
func (c *ctx) resolve(name string) string {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if slot, ok := c.scopes[i][name]; ok {
			return slot
		}
	}
	log.Panicf("lower: unresolved identifier %q reached lowering", name)
	return ""
}

func fmtSlot(name string, n int) string {
	return name + "." + strconv.Itoa(n)
}

func (c *ctx) pushLoop(t loopTarget) { c.loops = append(c.loops, t) }
func (c *ctx) popLoop()              { c.loops = c.loops[:len(c.loops)-1] }
func (c *ctx) currentLoop() loopTarget {
	return c.loops[len(c.loops)-1]
}
