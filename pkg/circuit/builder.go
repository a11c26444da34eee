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
	"fmt"

	"github.com/consensys/go-kcm/pkg/util/bitvec"
)

// MaxLookupAddressWidth is the widest address bus a lookup node may have.
// This mirrors the underlying lookup-table technology, which takes at most
// four inputs.
const MaxLookupAddressWidth = 4

// Builder incrementally constructs a circuit.  Wires are allocated before the
// nodes driving them are appended, hence construction order is a topological
// order by construction.  Contract violations (e.g. referencing an
// unallocated wire) indicate a broken caller and result in a panic rather
// than an error.
type Builder struct {
	wires       uint
	inputs      Bus
	clockEnable Wire
	clocked     bool
	nodes       []Node
}

// NewBuilder constructs an empty builder holding only the two constant rails.
func NewBuilder() *Builder {
	return &Builder{wires: 2}
}

// AllocWire allocates a fresh wire.
func (p *Builder) AllocWire() Wire {
	wire := Wire(p.wires)
	p.wires++
	//
	return wire
}

// AllocBus allocates a bus of fresh wires of the given width.
func (p *Builder) AllocBus(width uint) Bus {
	bus := make(Bus, width)
	//
	for i := range bus {
		bus[i] = p.AllocWire()
	}
	//
	return bus
}

// DeclareInput allocates and records the circuit's input bus.  At most one
// input bus may be declared.
func (p *Builder) DeclareInput(width uint) Bus {
	if p.inputs != nil {
		panic("input bus already declared")
	}
	//
	p.inputs = p.AllocBus(width)
	//
	return p.inputs
}

// DeclareClockEnable allocates and records the circuit's clock enable wire.
// At most one may be declared.
func (p *Builder) DeclareClockEnable() Wire {
	if p.clocked {
		panic("clock enable already declared")
	}
	//
	p.clockEnable = p.AllocWire()
	p.clocked = true
	//
	return p.clockEnable
}

// Lookup appends a lookup node mapping the given address bus through the
// given table, returning the freshly allocated output bus.  The table must
// have exactly one row per possible address, and all rows must share one
// width.
func (p *Builder) Lookup(address Bus, table []bitvec.Vector) Bus {
	if address.Width() == 0 || address.Width() > MaxLookupAddressWidth {
		panic(fmt.Sprintf("invalid lookup address width %d", address.Width()))
	} else if len(table) != (1 << address.Width()) {
		panic(fmt.Sprintf("lookup table has %d rows, expected %d", len(table), 1<<address.Width()))
	}
	//
	p.checkBus(address)
	//
	width := table[0].Width()
	//
	for _, row := range table {
		if row.Width() != width {
			panic("ragged lookup table")
		}
	}
	//
	outputs := p.AllocBus(width)
	p.nodes = append(p.nodes, &LookupNode{address, outputs, table})
	//
	return outputs
}

// Add appends a truncating adder node over the two given buses, returning the
// freshly allocated output bus of width max(len(left), len(right)).
func (p *Builder) Add(left Bus, right Bus) Bus {
	p.checkBus(left)
	p.checkBus(right)
	//
	outputs := p.AllocBus(max(left.Width(), right.Width()))
	p.nodes = append(p.nodes, &AdderNode{left, right, outputs})
	//
	return outputs
}

// Register appends a register stage latching the given bus on the clock edge
// when the circuit's clock enable is high, returning the freshly allocated
// output bus.  A clock enable must have been declared beforehand.
func (p *Builder) Register(inputs Bus) Bus {
	if !p.clocked {
		panic("register requires a declared clock enable")
	}
	//
	p.checkBus(inputs)
	//
	outputs := p.AllocBus(inputs.Width())
	p.nodes = append(p.nodes, &RegisterNode{inputs, outputs, p.clockEnable})
	//
	return outputs
}

// Seal finalises construction, declaring the given bus as the circuit's
// output and yielding the completed (immutable) circuit.
func (p *Builder) Seal(outputs Bus) *Circuit {
	if p.inputs == nil {
		panic("no input bus declared")
	}
	//
	p.checkBus(outputs)
	//
	return &Circuit{
		wires:       p.wires,
		inputs:      p.inputs,
		outputs:     outputs,
		clockEnable: p.clockEnable,
		clocked:     p.clocked,
		nodes:       p.nodes,
	}
}

func (p *Builder) checkBus(bus Bus) {
	for _, wire := range bus {
		if uint(wire) >= p.wires {
			panic(fmt.Sprintf("wire %d not allocated", wire))
		}
	}
}
