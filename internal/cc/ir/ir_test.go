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

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTermRejectsDoubleTerminator(t *testing.T) {
	fn := NewFunction("main")
	entry := fn.Block(fn.Entry)
	entry.SetTerm(Ret{Value: fn.Const(entry, 0)})
	assert.Panics(t, func() { entry.SetTerm(Ret{Value: fn.Const(entry, 1)}) })
}

func TestEmitAfterTerminatorPanics(t *testing.T) {
	fn := NewFunction("main")
	entry := fn.Block(fn.Entry)
	entry.SetTerm(Ret{Value: fn.Const(entry, 0)})
	assert.Panics(t, func() { fn.Const(entry, 2) })
}

func TestAddLocalIsIdempotentPerName(t *testing.T) {
	fn := NewFunction("main")
	fn.AddLocal("x")
	fn.AddLocal("y")
	fn.AddLocal("x")
	require.Equal(t, []string{"x", "y"}, fn.Locals)
}

func TestPhiIncomingMatchesPredecessors(t *testing.T) {
	fn := NewFunction("main")
	entry := fn.Block(fn.Entry)
	a := fn.NewBlock("a")
	b := fn.NewBlock("b")
	merge := fn.NewBlock("merge")

	cond := fn.Icmp(entry, OpIcmpNE, fn.Const(entry, 0), fn.Const(entry, 0))
	entry.SetTerm(CondBr{Cond: cond, True: a, False: b})

	av := fn.Const(a, 1)
	a.SetTerm(Br{Target: merge})
	bv := fn.Const(b, 2)
	b.SetTerm(Br{Target: merge})

	phi := fn.Phi(I32, []PhiEdge{{Block: a, Value: av}, {Block: b, Value: bv}})
	merge.AddPhi(phi)
	merge.SetTerm(Ret{Value: phi.ID})

	require.Len(t, phi.Incoming, 2)
	assert.Equal(t, a.ID, phi.Incoming[0].Block)
	assert.Equal(t, b.ID, phi.Incoming[1].Block)
}
