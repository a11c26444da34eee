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
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/go-kcm/pkg/circuit"
	"github.com/consensys/go-kcm/pkg/util/bitvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Kcm_Combinational(t *testing.T) {
	k, err := Config{big.NewInt(5), 11, true, false}.Build()
	require.NoError(t, err)
	//
	assert.Equal(t, uint(3), k.Groups())
	assert.Equal(t, uint(0), k.Latency())
	assert.Equal(t, int64(-15), k.Multiply(big.NewInt(-3)).Int64())
}

func Test_Kcm_Exhaustive(t *testing.T) {
	coefficients := []int64{0, 1, 5, 17, 100, -1, -5, -77}
	//
	for _, k := range coefficients {
		for _, width := range []uint{1, 3, 4, 5, 8, 11} {
			checkKcm(t, k, width, false)
			checkKcm(t, k, width, true)
		}
	}
}

func Test_Kcm_LargeCoefficient(t *testing.T) {
	coefficient, ok := new(big.Int).SetString("123456789123456789123456789", 10)
	require.True(t, ok)
	//
	k, err := Config{coefficient, 11, true, false}.Build()
	require.NoError(t, err)
	//
	for _, a := range []int64{-1024, -3, -1, 0, 1, 511, 1023} {
		var (
			operand  = big.NewInt(a)
			expected = new(big.Int).Mul(coefficient, operand)
		)
		//
		assert.Equal(t, expected.String(), k.Multiply(operand).String())
	}
}

func Test_Kcm_Registered(t *testing.T) {
	k, err := Config{big.NewInt(5), 11, true, true}.Build()
	require.NoError(t, err)
	// One multiplier stage plus ceil(log2(3)) adder stages.
	assert.Equal(t, uint(3), k.Latency())
	assert.Equal(t, int64(-15), k.Multiply(big.NewInt(-3)).Int64())
}

func Test_Kcm_RegisteredPipeline(t *testing.T) {
	// Feed one operand per clock cycle; each product must appear exactly
	// latency cycles after its operand, with intermediate cycles showing the
	// products of earlier inputs.
	var (
		k, err   = Config{big.NewInt(5), 11, true, true}.Build()
		operands = []int64{-3, 100, -1024, 1023, 0, 55, -999, 1, -1}
	)
	//
	require.NoError(t, err)
	//
	var (
		latency = int(k.Latency())
		state   = circuit.NewState(k.Circuit())
	)
	//
	state.SetClockEnable(true)
	//
	for cycle, a := range operands {
		state.SetInput(bitvec.FromBig(big.NewInt(a), 11))
		state.Settle()
		state.Cycle()
		// After cycle c (counting from one), the output corresponds to the
		// operand of cycle c - latency + 1.
		if cycle+1 >= latency {
			var (
				source   = operands[cycle+1-latency]
				expected = 5 * source
				actual   = state.Output().Signed().Int64()
			)
			//
			assert.Equal(t, expected, actual, "cycle %d", cycle)
		}
	}
}

func Test_Kcm_RegisteredStalled(t *testing.T) {
	// With the clock enable low, the pipeline holds its contents.
	k, err := Config{big.NewInt(7), 8, false, true}.Build()
	require.NoError(t, err)
	//
	state := circuit.NewState(k.Circuit())
	state.SetClockEnable(true)
	state.SetInput(bitvec.FromUint64(200, 8))
	state.Settle()
	//
	for i := uint(0); i < k.Latency(); i++ {
		state.Cycle()
	}
	//
	require.Equal(t, int64(1400), state.Output().Unsigned().Int64())
	// Stall with a different operand applied.
	state.SetClockEnable(false)
	state.SetInput(bitvec.FromUint64(3, 8))
	state.Settle()
	state.Cycle()
	state.Cycle()
	//
	assert.Equal(t, int64(1400), state.Output().Unsigned().Int64())
}

func Test_Kcm_Idempotent(t *testing.T) {
	for _, pipelined := range []bool{false, true} {
		var (
			config = Config{big.NewInt(-1234), 13, true, pipelined}
			k1, e1 = config.Build()
			k2, e2 = config.Build()
		)
		//
		require.NoError(t, e1)
		require.NoError(t, e2)
		assert.True(t, k1.Circuit().Equals(k2.Circuit()), "pipelined=%v", pipelined)
	}
}

func Test_Kcm_SharedTables(t *testing.T) {
	// All full-width unsigned groups share one table, so an unsigned
	// multiplier has exactly one distinct table replicated across lookups.
	k, err := Config{big.NewInt(42), 16, false, false}.Build()
	require.NoError(t, err)
	//
	var tables []*circuit.LookupNode
	//
	for _, node := range k.Circuit().Nodes() {
		if lookup, ok := node.(*circuit.LookupNode); ok {
			tables = append(tables, lookup)
		}
	}
	//
	require.Len(t, tables, 4)
	//
	for _, lookup := range tables[1:] {
		for i := range lookup.Table {
			assert.True(t, lookup.Table[i].Equals(tables[0].Table[i]))
		}
	}
}

func Test_Kcm_EmptyOperand(t *testing.T) {
	_, err := Config{big.NewInt(5), 0, false, false}.Build()
	assert.True(t, errors.Is(err, ErrEmptyOperand))
}

func Test_Kcm_UnbalancedPipeline(t *testing.T) {
	_, err := Compose(Config{big.NewInt(5), 11, true, true}, RegMult{}, CombAdder{})
	assert.True(t, errors.Is(err, ErrUnbalancedPipeline))
	//
	_, err = Compose(Config{big.NewInt(5), 11, true, false}, CombMult{}, RegAdder{})
	assert.True(t, errors.Is(err, ErrUnbalancedPipeline))
}

func Test_Kcm_WidthMismatch(t *testing.T) {
	_, err := Compose(Config{big.NewInt(5), 11, true, false}, truncatingMult{}, CombAdder{})
	assert.True(t, errors.Is(err, ErrWidthMismatch))
}

// truncatingMult violates the multiplier contract by dropping the top bit of
// every partial product.
type truncatingMult struct{}

func (truncatingMult) Multiply(builder *circuit.Builder, group circuit.Bus, table *Table) circuit.Bus {
	bus := CombMult{}.Multiply(builder, group, table)
	//
	return bus.Slice(0, bus.Width()-1)
}

func (truncatingMult) Latency() uint {
	return 0
}

// checkKcm builds a multiplier and verifies its product over the full
// operand range against an arbitrary precision reference.
func checkKcm(t *testing.T, k int64, width uint, signed bool) {
	var (
		coefficient = big.NewInt(k)
		config      = Config{coefficient, width, signed, false}
		kcm, err    = config.Build()
	)
	//
	require.NoError(t, err)
	//
	var lo, hi int64
	//
	if signed {
		lo, hi = -(1 << (width - 1)), 1<<(width-1)-1
	} else {
		lo, hi = 0, 1<<width-1
	}
	//
	for a := lo; a <= hi; a++ {
		var (
			operand  = big.NewInt(a)
			expected = new(big.Int).Mul(coefficient, operand)
			actual   = kcm.Multiply(operand)
		)
		//
		if expected.Cmp(actual) != 0 {
			t.Fatalf("%d * %d (width %d, signed %v): expected %s, actual %s",
				k, a, width, signed, expected, actual)
		}
	}
}
