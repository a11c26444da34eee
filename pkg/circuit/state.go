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
	"github.com/consensys/go-kcm/pkg/util/bitvec"
)

// State holds a value for every wire of a circuit, providing a naive
// simulation of the generated structure.  Combinational values are
// recomputed by Settle; register outputs are part of the state proper and
// change only on Cycle.  All registers initialise to zero.
type State struct {
	circuit *Circuit
	values  []bool
}

// NewState constructs a fresh state for the given circuit, with every wire
// low except the constant high rail.
func NewState(circuit *Circuit) *State {
	values := make([]bool, circuit.Wires())
	values[High] = true
	//
	return &State{circuit, values}
}

// Get reads the current value of a wire.
func (p *State) Get(wire Wire) bool {
	return p.values[wire]
}

// Set drives a wire to the given value.  The constant rails cannot be
// driven.
func (p *State) Set(wire Wire, value bool) {
	if wire == Low || wire == High {
		panic("cannot drive constant rail")
	}
	//
	p.values[wire] = value
}

// set is the internal (unchecked) form used by node evaluation.
func (p *State) set(wire Wire, value bool) {
	p.values[wire] = value
}

// SetInput drives the circuit's declared input bus with the given vector,
// whose width must match.
func (p *State) SetInput(value bitvec.Vector) {
	inputs := p.circuit.Inputs()
	//
	if value.Width() != inputs.Width() {
		panic("input width mismatch")
	}
	//
	for i, wire := range inputs {
		p.Set(wire, value.Bit(uint(i)))
	}
}

// SetClockEnable drives the circuit's clock enable wire.
func (p *State) SetClockEnable(value bool) {
	wire, ok := p.circuit.ClockEnable()
	//
	if !ok {
		panic("circuit has no clock enable")
	}
	//
	p.Set(wire, value)
}

// ReadBus reads the current values of a bus as a vector.
func (p *State) ReadBus(bus Bus) bitvec.Vector {
	vec := bitvec.New(bus.Width())
	//
	for i, wire := range bus {
		vec.SetBit(uint(i), p.values[wire])
	}
	//
	return vec
}

// Output reads the current values of the circuit's declared output bus.
func (p *State) Output() bitvec.Vector {
	return p.ReadBus(p.circuit.Outputs())
}

// Settle propagates values through all combinational nodes in topological
// order.  Register outputs are left untouched.
func (p *State) Settle() {
	for _, node := range p.circuit.Nodes() {
		node.Evaluate(p)
	}
}

// Cycle applies one rising clock edge: every register whose enable is high
// latches its (settled) input values, all updates being committed
// simultaneously, after which the combinational logic settles again.
func (p *State) Cycle() {
	var (
		regs    []*RegisterNode
		latched [][]bool
	)
	// Capture inputs of all enabled registers before committing anything, so
	// that back-to-back register stages behave as a true pipeline.
	for _, node := range p.circuit.Nodes() {
		if reg, ok := node.(*RegisterNode); ok && p.values[reg.Enable] {
			values := make([]bool, len(reg.Inputs))
			//
			for i, wire := range reg.Inputs {
				values[i] = p.values[wire]
			}
			//
			regs = append(regs, reg)
			latched = append(latched, values)
		}
	}
	// Commit
	for i, reg := range regs {
		for j, wire := range reg.Outputs {
			p.values[wire] = latched[i][j]
		}
	}
	//
	p.Settle()
}
