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
	"testing"

	"github.com/consensys/go-kcm/pkg/util/bitvec"
	"github.com/stretchr/testify/assert"
)

func Test_Adder_Truncating(t *testing.T) {
	// 4-bit + 4-bit truncating adder: result is (a + b) mod 16.
	var (
		builder = NewBuilder()
		inputs  = builder.DeclareInput(8)
		sum     = builder.Add(inputs.Slice(0, 4), inputs.Slice(4, 8))
		c       = builder.Seal(sum)
		state   = NewState(c)
	)
	//
	for a := uint64(0); a < 16; a++ {
		for b := uint64(0); b < 16; b++ {
			state.SetInput(bitvec.FromUint64(a|(b<<4), 8))
			state.Settle()
			//
			expected := (a + b) % 16
			actual := state.Output().Unsigned().Uint64()
			//
			if actual != expected {
				t.Errorf("%d + %d: expected %d, actual %d", a, b, expected, actual)
			}
		}
	}
}

func Test_Adder_UnequalWidths(t *testing.T) {
	// 6-bit + 3-bit adder: output is six bits wide.
	var (
		builder = NewBuilder()
		inputs  = builder.DeclareInput(9)
		sum     = builder.Add(inputs.Slice(0, 6), inputs.Slice(6, 9))
		c       = builder.Seal(sum)
		state   = NewState(c)
	)
	//
	assert.Equal(t, uint(6), sum.Width())
	//
	for a := uint64(0); a < 64; a++ {
		for b := uint64(0); b < 8; b++ {
			state.SetInput(bitvec.FromUint64(a|(b<<6), 9))
			state.Settle()
			//
			expected := (a + b) % 64
			actual := state.Output().Unsigned().Uint64()
			//
			if actual != expected {
				t.Errorf("%d + %d: expected %d, actual %d", a, b, expected, actual)
			}
		}
	}
}

func Test_Lookup_Exhaustive(t *testing.T) {
	// Table of squares over a 4-bit address.
	table := make([]bitvec.Vector, 16)
	//
	for i := range table {
		table[i] = bitvec.FromUint64(uint64(i*i), 8)
	}
	//
	var (
		builder = NewBuilder()
		inputs  = builder.DeclareInput(4)
		outputs = builder.Lookup(inputs, table)
		c       = builder.Seal(outputs)
		state   = NewState(c)
	)
	//
	for i := uint64(0); i < 16; i++ {
		state.SetInput(bitvec.FromUint64(i, 4))
		state.Settle()
		assert.Equal(t, i*i, state.Output().Unsigned().Uint64())
	}
}

func Test_Register_Pipeline(t *testing.T) {
	// Two back-to-back register stages form a two-cycle delay line.
	var (
		builder = NewBuilder()
		inputs  = builder.DeclareInput(4)
		_       = builder.DeclareClockEnable()
		r1      = builder.Register(inputs)
		r2      = builder.Register(r1)
		c       = builder.Seal(r2)
		state   = NewState(c)
	)
	//
	state.SetClockEnable(true)
	//
	values := []uint64{3, 7, 12, 1, 0, 9}
	//
	for cycle, v := range values {
		state.SetInput(bitvec.FromUint64(v, 4))
		state.Settle()
		state.Cycle()
		// After cycle k, the output holds the input of cycle k-1.
		if cycle >= 1 {
			assert.Equal(t, values[cycle-1], state.Output().Unsigned().Uint64())
		}
	}
}

func Test_Register_ClockEnable(t *testing.T) {
	var (
		builder = NewBuilder()
		inputs  = builder.DeclareInput(4)
		_       = builder.DeclareClockEnable()
		r1      = builder.Register(inputs)
		c       = builder.Seal(r1)
		state   = NewState(c)
	)
	// Latch an initial value.
	state.SetClockEnable(true)
	state.SetInput(bitvec.FromUint64(11, 4))
	state.Settle()
	state.Cycle()
	assert.Equal(t, uint64(11), state.Output().Unsigned().Uint64())
	// With the enable low, further edges change nothing.
	state.SetClockEnable(false)
	state.SetInput(bitvec.FromUint64(5, 4))
	state.Settle()
	state.Cycle()
	assert.Equal(t, uint64(11), state.Output().Unsigned().Uint64())
}

func Test_Bus_Extension(t *testing.T) {
	var (
		builder = NewBuilder()
		inputs  = builder.DeclareInput(3)
	)
	// Zero extension pads with the low rail.
	zext := inputs.ZeroExtend(5)
	assert.Equal(t, Low, zext[3])
	assert.Equal(t, Low, zext[4])
	// Sign extension replicates the top wire.
	sext := inputs.SignExtend(5)
	assert.Equal(t, inputs[2], sext[3])
	assert.Equal(t, inputs[2], sext[4])
}

func Test_Rails(t *testing.T) {
	var (
		builder = NewBuilder()
		_       = builder.DeclareInput(1)
		c       = builder.Seal(Bus{Low, High})
		state   = NewState(c)
	)
	//
	state.Settle()
	assert.Equal(t, uint64(2), state.Output().Unsigned().Uint64())
}
