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
	"math/big"
	"testing"

	"github.com/consensys/go-kcm/pkg/circuit"
	"github.com/consensys/go-kcm/pkg/util/bitvec"
	"github.com/stretchr/testify/assert"
)

func Test_Combine_Exhaustive(t *testing.T) {
	// Verify the combine result against a masked arbitrary precision
	// reference, across all small width and weight pairings.
	for len1 := uint(1); len1 <= 3; len1++ {
		for len2 := uint(1); len2 <= 3; len2++ {
			for w1 := uint(0); w1 <= 4; w1++ {
				for w2 := uint(0); w2 <= 4; w2++ {
					checkCombine(t, w1, len1, w2, len2)
				}
			}
		}
	}
}

func Test_Combine_Guarantees(t *testing.T) {
	var (
		builder = circuit.NewBuilder()
		inputs  = builder.DeclareInput(12)
		n1      = WeightedNumber{7, inputs.Slice(0, 8)}
		n2      = WeightedNumber{2, inputs.Slice(8, 12)}
		sum     = CombAdder{}.Combine(builder, n1, n2)
	)
	// Output weight is the smaller input weight; output length is
	// d + max(len(n1), len(upper)).
	assert.Equal(t, uint(2), sum.Weight)
	assert.Equal(t, uint(5+8), sum.Bus.Width())
	// The d low bits pass through verbatim, below the overlap.
	for i := 0; i < 4; i++ {
		assert.Equal(t, inputs[8+i], sum.Bus[i])
	}
	assert.Equal(t, circuit.Low, sum.Bus[4])
}

func Test_Combine_Commutative(t *testing.T) {
	// With unequal weights the conditional swap normalises operand order,
	// hence both orders elaborate identical structure.
	var (
		b1 = circuit.NewBuilder()
		i1 = b1.DeclareInput(10)
		s1 = CombAdder{}.Combine(b1, WeightedNumber{4, i1.Slice(0, 6)}, WeightedNumber{0, i1.Slice(6, 10)})
		c1 = b1.Seal(s1.Bus)
		//
		b2 = circuit.NewBuilder()
		i2 = b2.DeclareInput(10)
		s2 = CombAdder{}.Combine(b2, WeightedNumber{0, i2.Slice(6, 10)}, WeightedNumber{4, i2.Slice(0, 6)})
		c2 = b2.Seal(s2.Bus)
	)
	//
	assert.Equal(t, s1.Weight, s2.Weight)
	assert.True(t, c1.Equals(c2))
}

func Test_Combine_Registered(t *testing.T) {
	// The registered adder produces the same number one clock cycle later.
	var (
		builder = circuit.NewBuilder()
		inputs  = builder.DeclareInput(8)
		_       = builder.DeclareClockEnable()
		n1      = WeightedNumber{3, inputs.Slice(0, 5)}
		n2      = WeightedNumber{0, inputs.Slice(5, 8)}
		sum     = RegAdder{}.Combine(builder, n1, n2)
		c       = builder.Seal(sum.Bus)
		state   = circuit.NewState(c)
	)
	//
	assert.Equal(t, uint(1), RegAdder{}.Latency())
	assert.Equal(t, uint(0), sum.Weight)
	//
	state.SetClockEnable(true)
	state.SetInput(bitvec.FromUint64(0b110_10110, 8))
	state.Settle()
	// Nothing observable before the edge.
	assert.Equal(t, uint64(0), state.Output().Unsigned().Uint64())
	//
	state.Cycle()
	// value = 0b10110 * 2^3 + 0b110 = 176 + 6
	assert.Equal(t, uint64(182), state.Output().Unsigned().Uint64())
}

// checkCombine builds a single combine over fresh input vectors of the given
// weights and widths, then checks its value for every input pair against an
// arbitrary precision add, masked according to the no-growth policy.
func checkCombine(t *testing.T, w1 uint, len1 uint, w2 uint, len2 uint) {
	var (
		builder = circuit.NewBuilder()
		inputs  = builder.DeclareInput(len1 + len2)
		n1      = WeightedNumber{w1, inputs.Slice(0, len1)}
		n2      = WeightedNumber{w2, inputs.Slice(len1, len1+len2)}
		sum     = CombAdder{}.Combine(builder, n1, n2)
		c       = builder.Seal(sum.Bus)
		state   = circuit.NewState(c)
		modulus = new(big.Int).Lsh(big.NewInt(1), sum.Weight+sum.Bus.Width())
	)
	// Output weight equals the smaller input weight.
	assert.Equal(t, min(w1, w2), sum.Weight)
	//
	for v1 := uint64(0); v1 < 1<<len1; v1++ {
		for v2 := uint64(0); v2 < 1<<len2; v2++ {
			var (
				in       = v1 | (v2 << len1)
				expected = new(big.Int).SetUint64(v1<<w1 + v2<<w2)
			)
			//
			expected.Mod(expected, modulus)
			//
			state.SetInput(bitvec.FromUint64(in, len1+len2))
			state.Settle()
			//
			var (
				actual = state.ReadBus(sum.Bus).Unsigned()
				scale  = new(big.Int).Lsh(actual, sum.Weight)
			)
			//
			if scale.Cmp(expected) != 0 {
				t.Fatalf("combine (2^%d, %d bits) + (2^%d, %d bits) on %d/%d: expected %s, actual %s",
					w1, len1, w2, len2, v1, v2, expected, scale)
			}
		}
	}
}
