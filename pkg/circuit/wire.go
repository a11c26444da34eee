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

// Wire identifies a single-bit signal within a circuit.  Wires are pure
// identifiers: the same wire may appear in any number of bus positions, which
// is how fanout (e.g. sign replication) is expressed.
type Wire uint

// Low is the constant zero rail, present in every circuit.
const Low Wire = 0

// High is the constant one rail, present in every circuit.
const High Wire = 1

// Bus is an ordered collection of wires interpreted least significant bit
// first.
type Bus []Wire

// Width returns the number of wires in this bus.
func (p Bus) Width() uint {
	return uint(len(p))
}

// Slice returns the sub-bus covering bits [lo..hi).  The result shares wire
// identifiers with this bus (wires are identifiers, not storage), but the
// backing slice is fresh.
func (p Bus) Slice(lo uint, hi uint) Bus {
	if lo > hi || hi > p.Width() {
		panic("bus slice out of range")
	}
	//
	bus := make(Bus, hi-lo)
	copy(bus, p[lo:hi])
	//
	return bus
}

// Concat returns a fresh bus whose low bits are this bus and whose high bits
// are the other.
func (p Bus) Concat(other Bus) Bus {
	bus := make(Bus, 0, len(p)+len(other))
	bus = append(bus, p...)
	bus = append(bus, other...)
	//
	return bus
}

// ZeroExtend pads this bus up to the given width using the constant low rail.
func (p Bus) ZeroExtend(width uint) Bus {
	if width < p.Width() {
		panic("cannot extend bus to a narrower width")
	}
	//
	bus := p.Slice(0, p.Width())
	//
	for bus.Width() < width {
		bus = append(bus, Low)
	}
	//
	return bus
}

// SignExtend pads this bus up to the given width by replicating its most
// significant wire.
func (p Bus) SignExtend(width uint) Bus {
	if len(p) == 0 {
		panic("cannot sign extend empty bus")
	} else if width < p.Width() {
		panic("cannot extend bus to a narrower width")
	}
	//
	var (
		sign = p[len(p)-1]
		bus  = p.Slice(0, p.Width())
	)
	//
	for bus.Width() < width {
		bus = append(bus, sign)
	}
	//
	return bus
}
