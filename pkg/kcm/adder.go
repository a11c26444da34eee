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
package kcm

import (
	"github.com/consensys/go-kcm/pkg/circuit"
)

// Adder combines two weighted numbers into one.  Implementations elaborate
// structure into the supplied builder; the pure and registered variants yield
// the same numeric result, the latter one clock cycle later.
type Adder interface {
	// Combine two weighted numbers.  The result's weight is the smaller of
	// the two input weights, and its width is d + max(len(n1), len(upper))
	// where d is the weight difference and upper the overlapping part of the
	// lighter operand.  Any carry beyond that width is dropped, so callers
	// must fix the tree's final width up front (see Compose).
	Combine(builder *circuit.Builder, n1 WeightedNumber, n2 WeightedNumber) WeightedNumber
	// Delay produces the same weighted number one combine-latency later.
	// This is the identity for a pure adder, and a register stage for a
	// registered one; the tree builder uses it to keep all leaf-to-root
	// latencies equal.
	Delay(builder *circuit.Builder, n WeightedNumber) WeightedNumber
	// Latency returns the number of register stages per combine (zero or
	// one).
	Latency() uint
}

// ============================================================================

// CombAdder is the pure (zero latency) weighted adder.
type CombAdder struct{}

// Combine implementation for the Adder interface.
func (CombAdder) Combine(builder *circuit.Builder, n1 WeightedNumber, n2 WeightedNumber) WeightedNumber {
	// Normalise so the first operand carries the larger weight.
	if n1.Weight < n2.Weight {
		n1, n2 = n2, n1
	}
	//
	var (
		d     = n1.Weight - n2.Weight
		width = n2.Bus.Width()
		lower circuit.Bus
		upper circuit.Bus
	)
	// Bits of n2 below the overlap pass through untouched; any gap between
	// them and the overlap is constant zero.
	if d >= width {
		lower = n2.Bus.ZeroExtend(d)
	} else {
		lower = n2.Bus.Slice(0, d)
		upper = n2.Bus.Slice(d, width)
	}
	// Sum the overlapping region.  Nothing to add when the operands do not
	// overlap at all.
	part := n1.Bus
	//
	if upper.Width() > 0 {
		part = builder.Add(n1.Bus, upper)
	}
	//
	return WeightedNumber{n2.Weight, lower.Concat(part)}
}

// Delay implementation for the Adder interface: the identity.
func (CombAdder) Delay(builder *circuit.Builder, n WeightedNumber) WeightedNumber {
	return n
}

// Latency implementation for the Adder interface.
func (CombAdder) Latency() uint {
	return 0
}

// ============================================================================

// RegAdder is the registered weighted adder: it elaborates the same structure
// as CombAdder and then latches the entire result vector, pass-through bits
// included, so that alignment across the tree is preserved.  The weight is
// elaboration-time bookkeeping and carries no timing, hence it passes through
// unchanged.
type RegAdder struct{}

// Combine implementation for the Adder interface.
func (RegAdder) Combine(builder *circuit.Builder, n1 WeightedNumber, n2 WeightedNumber) WeightedNumber {
	n := CombAdder{}.Combine(builder, n1, n2)
	//
	return WeightedNumber{n.Weight, builder.Register(n.Bus)}
}

// Delay implementation for the Adder interface: one register stage.
func (RegAdder) Delay(builder *circuit.Builder, n WeightedNumber) WeightedNumber {
	return WeightedNumber{n.Weight, builder.Register(n.Bus)}
}

// Latency implementation for the Adder interface.
func (RegAdder) Latency() uint {
	return 1
}
