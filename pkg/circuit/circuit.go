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

// Package circuit provides the structural artifact produced by elaboration: a
// wiring graph of lookup tables, truncating adders and register stages over
// single-bit wires, along with a naive evaluator for simulating it.  A
// circuit says nothing about how it was produced; in particular,
// elaboration-time bookkeeping (such as the binary weight of a partial
// product) never appears here.
package circuit

import "slices"

// Circuit is an immutable structural description of a combinational or
// registered datapath.  Nodes are held in construction order, which the
// builder guarantees to be a topological order of the wiring graph.
type Circuit struct {
	// Total number of allocated wires, including the constant rails.
	wires uint
	// Declared input bus.
	inputs Bus
	// Declared output bus.
	outputs Bus
	// Clock enable wire, if this circuit contains any registers.
	clockEnable Wire
	// Indicates whether a clock enable was declared.
	clocked bool
	// Structural nodes in topological order.
	nodes []Node
}

// Wires returns the total number of wires allocated in this circuit,
// including the two constant rails.
func (p *Circuit) Wires() uint {
	return p.wires
}

// Inputs returns the declared input bus of this circuit.
func (p *Circuit) Inputs() Bus {
	return p.inputs
}

// Outputs returns the declared output bus of this circuit.
func (p *Circuit) Outputs() Bus {
	return p.outputs
}

// ClockEnable returns the clock enable wire of this circuit, along with a
// flag indicating whether one was declared (purely combinational circuits
// have none).
func (p *Circuit) ClockEnable() (Wire, bool) {
	return p.clockEnable, p.clocked
}

// Nodes returns the structural nodes of this circuit in topological order.
func (p *Circuit) Nodes() []Node {
	return p.nodes
}

// Registers returns the number of register stages in this circuit.
func (p *Circuit) Registers() uint {
	count := uint(0)
	//
	for _, node := range p.nodes {
		if _, ok := node.(*RegisterNode); ok {
			count++
		}
	}
	//
	return count
}

// Lookups returns the number of lookup tables in this circuit.
func (p *Circuit) Lookups() uint {
	count := uint(0)
	//
	for _, node := range p.nodes {
		if _, ok := node.(*LookupNode); ok {
			count++
		}
	}
	//
	return count
}

// Adders returns the number of adder nodes in this circuit.
func (p *Circuit) Adders() uint {
	count := uint(0)
	//
	for _, node := range p.nodes {
		if _, ok := node.(*AdderNode); ok {
			count++
		}
	}
	//
	return count
}

// Equals checks whether two circuits are structurally identical: same wire
// count, same declared buses, and the same nodes (including table contents)
// in the same order.
func (p *Circuit) Equals(other *Circuit) bool {
	if p.wires != other.wires || p.clocked != other.clocked {
		return false
	} else if p.clocked && p.clockEnable != other.clockEnable {
		return false
	} else if !slices.Equal(p.inputs, other.inputs) || !slices.Equal(p.outputs, other.outputs) {
		return false
	} else if len(p.nodes) != len(other.nodes) {
		return false
	}
	//
	for i := range p.nodes {
		if !p.nodes[i].Equals(other.nodes[i]) {
			return false
		}
	}
	//
	return true
}
