// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package circuit

import (
	"slices"

	"github.com/consensys/go-kcm/pkg/util/bitvec"
)

// Node represents a single structural element of a circuit: a lookup table, a
// truncating adder or a register stage.  Nodes are stored in construction
// order, which is always a valid topological order.
type Node interface {
	// Evaluate propagates values from this node's input wires to its output
	// wires during combinational settling.  Registers do not propagate here
	// (their outputs are state, updated only on a clock edge).
	Evaluate(state *State)
	// Equals compares this node structurally against another.
	Equals(Node) bool
}

// ============================================================================

// LookupNode is an exact-content lookup table mapping an address bus of at
// most four wires onto an output bus.  The table always has one row per
// possible address; its contents are fixed at elaboration time and are never
// re-derived arithmetically downstream.
type LookupNode struct {
	// Address bus (at most four wires).
	Address Bus
	// Output bus, one wire per table row bit.
	Outputs Bus
	// Row values, indexed by address.  Every row has width equal to the
	// output bus.
	Table []bitvec.Vector
}

// Evaluate implementation for the Node interface.
func (p *LookupNode) Evaluate(state *State) {
	index := uint(0)
	//
	for i, wire := range p.Address {
		if state.Get(wire) {
			index |= 1 << i
		}
	}
	//
	row := p.Table[index]
	//
	for i, wire := range p.Outputs {
		state.set(wire, row.Bit(uint(i)))
	}
}

// Equals implementation for the Node interface.
func (p *LookupNode) Equals(other Node) bool {
	o, ok := other.(*LookupNode)
	//
	if !ok || !slices.Equal(p.Address, o.Address) || !slices.Equal(p.Outputs, o.Outputs) {
		return false
	} else if len(p.Table) != len(o.Table) {
		return false
	}
	//
	for i := range p.Table {
		if !p.Table[i].Equals(o.Table[i]) {
			return false
		}
	}
	//
	return true
}

// ============================================================================

// AdderNode is a ripple-carry adder over two buses of (possibly) unequal
// width.  Its output width is exactly the wider of its two inputs: any carry
// out of the final position is dropped.  Callers requiring an exact sum must
// widen an operand beforehand.
type AdderNode struct {
	// Left operand.
	Left Bus
	// Right operand.
	Right Bus
	// Output bus of width max(len(Left), len(Right)).
	Outputs Bus
}

// Evaluate implementation for the Node interface.
func (p *AdderNode) Evaluate(state *State) {
	carry := false
	//
	for i, wire := range p.Outputs {
		var l, r bool
		//
		if i < len(p.Left) {
			l = state.Get(p.Left[i])
		}
		//
		if i < len(p.Right) {
			r = state.Get(p.Right[i])
		}
		// Full adder cell
		sum := l != r != carry
		carry = (l && r) || ((l != r) && carry)
		//
		state.set(wire, sum)
	}
	// Final carry deliberately dropped.
}

// Equals implementation for the Node interface.
func (p *AdderNode) Equals(other Node) bool {
	o, ok := other.(*AdderNode)
	//
	return ok && slices.Equal(p.Left, o.Left) && slices.Equal(p.Right, o.Right) &&
		slices.Equal(p.Outputs, o.Outputs)
}

// ============================================================================

// RegisterNode latches its input bus onto its output bus on a rising clock
// edge whenever its enable wire is high.  All registers in a circuit share
// one abstract clock; the enable wire is normally the circuit's clock-enable
// rail.  Register state initialises to zero.
type RegisterNode struct {
	// Input bus.
	Inputs Bus
	// Output (latched) bus of the same width.
	Outputs Bus
	// Clock enable wire.
	Enable Wire
}

// Evaluate implementation for the Node interface.  Registers hold their state
// during combinational settling, so there is nothing to do here.
func (p *RegisterNode) Evaluate(state *State) {
}

// Equals implementation for the Node interface.
func (p *RegisterNode) Equals(other Node) bool {
	o, ok := other.(*RegisterNode)
	//
	return ok && slices.Equal(p.Inputs, o.Inputs) && slices.Equal(p.Outputs, o.Outputs) &&
		p.Enable == o.Enable
}
