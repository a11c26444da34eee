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

// Package kcm elaborates constant-coefficient multiplier circuits.  The
// dynamic operand is split into groups of at most four bits, each group is
// mapped through an exact-content lookup table of sub-word products, and the
// resulting partial products are merged by a balanced tree of weighted
// adders.  The combinational and registered variants share this entire
// structure; pipelining is obtained purely by injecting registered primitives
// into the same composer.
package kcm

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/go-kcm/pkg/circuit"
	"github.com/consensys/go-kcm/pkg/util/bitvec"
	log "github.com/sirupsen/logrus"
)

// GroupWidth is the operand slice width fed into each sub-word multiplier.
// This matches the four-input shape of the underlying lookup technology;
// other grouping sizes are not supported.
const GroupWidth = 4

// Config captures the construction parameters of a constant-coefficient
// multiplier.  A config fully determines the generated structure and is never
// mutated after construction.
type Config struct {
	// The fixed coefficient.
	Coefficient *big.Int
	// Width of the dynamic operand in bits.
	OperandWidth uint
	// Whether the operand is interpreted as two's complement.
	Signed bool
	// Whether to generate the registered (pipelined) variant.
	Pipelined bool
}

// KCM is a fully elaborated constant-coefficient multiplier: the generated
// circuit together with the construction parameters and derived properties.
// Instances are immutable.
type KCM struct {
	config        Config
	circuit       *circuit.Circuit
	groups        uint
	latency       uint
	productWidth  uint
	signedProduct bool
}

// Build elaborates the multiplier described by this config, injecting the
// pure or registered primitives as appropriate.
func (p Config) Build() (*KCM, error) {
	if p.Pipelined {
		return Compose(p, RegMult{}, RegAdder{})
	}
	//
	return Compose(p, CombMult{}, CombAdder{})
}

// Compose elaborates a constant-coefficient multiplier from explicitly
// injected primitives.  Both primitives must agree on their registered/pure
// status; otherwise partial products would arrive at the adder tree out of
// step, and composition is refused with ErrUnbalancedPipeline.
func Compose(config Config, mult Mult, adder Adder) (*KCM, error) {
	if config.Coefficient == nil {
		return nil, errors.New("missing coefficient")
	} else if config.OperandWidth == 0 {
		return nil, ErrEmptyOperand
	} else if (mult.Latency() == 0) != (adder.Latency() == 0) {
		return nil, fmt.Errorf("%w: multiplier latency %d, adder latency %d",
			ErrUnbalancedPipeline, mult.Latency(), adder.Latency())
	}
	//
	var (
		builder    = circuit.NewBuilder()
		operand    = builder.DeclareInput(config.OperandWidth)
		registered = mult.Latency() > 0
		groups     = (config.OperandWidth + GroupWidth - 1) / GroupWidth
		tables     = make(map[tableKey]*Table)
		partials   = make([]circuit.Bus, groups)
		signedOut  = make([]bool, groups)
	)
	//
	if registered {
		builder.DeclareClockEnable()
	}
	// Elaborate one sub-word multiplier per group.  The uppermost group may
	// be narrower than GroupWidth; it is sign extended for a signed operand
	// and zero extended otherwise, with all other groups zero extended.
	for i := uint(0); i < groups; i++ {
		var (
			lo    = i * GroupWidth
			hi    = min(lo+GroupWidth, config.OperandWidth)
			top   = i == groups-1
			group = operand.Slice(lo, hi)
		)
		//
		table, err := groupTable(tables, config, hi-lo, top)
		if err != nil {
			return nil, err
		}
		//
		if top && config.Signed {
			group = group.SignExtend(GroupWidth)
		} else {
			group = group.ZeroExtend(GroupWidth)
		}
		//
		partial := mult.Multiply(builder, group, table)
		// Multipliers must produce exactly the table width.
		if partial.Width() != table.OutputWidth() {
			return nil, fmt.Errorf("%w: partial product has width %d, expected %d",
				ErrWidthMismatch, partial.Width(), table.OutputWidth())
		}
		//
		partials[i] = partial
		signedOut[i] = table.SignedOutput()
	}
	// Fix the final width: wide enough for every representable product, and
	// no narrower than any partial product's span.  Every partial product is
	// then extended up to that span, so the truncating adders only ever drop
	// bits at the final position (i.e. the tree computes modulo 2^span).
	span, signedProduct := productSpan(config)
	//
	for i := uint(0); i < groups; i++ {
		span = max(span, i*GroupWidth+partials[i].Width())
	}
	//
	weighted := make([]WeightedNumber, groups)
	//
	for i := uint(0); i < groups; i++ {
		var (
			weight = i * GroupWidth
			target = span - weight
			bus    = partials[i]
		)
		// Negative partial products sign extend; all others pad with the
		// zero rail.
		if signedOut[i] {
			bus = bus.SignExtend(target)
		} else {
			bus = bus.ZeroExtend(target)
		}
		//
		weighted[i] = WeightedNumber{weight, bus}
	}
	// Reduce all partial products down to the final product.
	result, err := Reduce(builder, adder, weighted)
	if err != nil {
		return nil, err
	}
	// With input weights assigned per group position, reduction must land
	// back at the reference point.
	if result.Weight != 0 {
		panic(fmt.Sprintf("reduced weight %d, expected 0", result.Weight))
	}
	// Weighted addition never grows beyond the fixed span.
	if result.Span() != span {
		return nil, fmt.Errorf("%w: product has width %d, expected %d",
			ErrWidthMismatch, result.Bus.Width(), span)
	}
	//
	var (
		latency = mult.Latency() + TreeDepth(groups)*adder.Latency()
		c       = builder.Seal(result.Bus)
	)
	//
	log.Debugf("kcm: coefficient %s, %d-bit operand, %d groups, %d-bit product, latency %d",
		config.Coefficient, config.OperandWidth, groups, span, latency)
	//
	return &KCM{
		config:        config,
		circuit:       c,
		groups:        groups,
		latency:       latency,
		productWidth:  span,
		signedProduct: signedProduct,
	}, nil
}

// Config returns the construction parameters of this multiplier.
func (p *KCM) Config() Config {
	return p.config
}

// Circuit returns the generated structural circuit.
func (p *KCM) Circuit() *circuit.Circuit {
	return p.circuit
}

// Groups returns the number of operand groups (hence sub-word multipliers).
func (p *KCM) Groups() uint {
	return p.groups
}

// Latency returns the number of clock cycles between an operand entering the
// circuit and its product appearing at the output.  Every input-to-output
// path crosses exactly this many register stages; for the combinational
// variant it is zero.
func (p *KCM) Latency() uint {
	return p.latency
}

// ProductWidth returns the width of the product bus.
func (p *KCM) ProductWidth() uint {
	return p.productWidth
}

// SignedProduct indicates whether the product bus is two's complement
// encoded, which is the case whenever the operand is signed or the
// coefficient negative.
func (p *KCM) SignedProduct() bool {
	return p.signedProduct
}

// Multiply simulates the generated circuit on a given operand value,
// returning the product.  For the registered variant, the operand is held
// stable whilst the pipeline is cycled through its full latency.  This is a
// simulation convenience for checking the structure; it is not the hardware
// interface.
func (p *KCM) Multiply(operand *big.Int) *big.Int {
	state := circuit.NewState(p.circuit)
	//
	if _, clocked := p.circuit.ClockEnable(); clocked {
		state.SetClockEnable(true)
	}
	//
	state.SetInput(bitvec.FromBig(operand, p.config.OperandWidth))
	state.Settle()
	//
	for i := uint(0); i < p.latency; i++ {
		state.Cycle()
	}
	//
	if p.signedProduct {
		return state.Output().Signed()
	}
	//
	return state.Output().Unsigned()
}

// ============================================================================

type tableKey struct {
	width  uint
	signed bool
}

// groupTable returns the multiplier table for a group of the given true
// width, elaborating it on first use.  Tables are shared between groups of
// identical shape.  The top group of a signed operand is sign extended to the
// full group width before the lookup, so its table interprets all four
// address bits as two's complement.
func groupTable(tables map[tableKey]*Table, config Config, width uint, top bool) (*Table, error) {
	key := tableKey{width, false}
	//
	if top && config.Signed {
		key = tableKey{GroupWidth, true}
	}
	//
	if table, ok := tables[key]; ok {
		return table, nil
	}
	//
	table, err := NewTable(config.Coefficient, key.width, key.signed)
	if err != nil {
		return nil, err
	}
	//
	tables[key] = table
	//
	return table, nil
}

// productSpan determines the minimum width required to represent every
// product of the coefficient with an operand of the configured width and
// signedness, along with whether products are two's complement encoded.
func productSpan(config Config) (uint, bool) {
	var minOperand, maxOperand *big.Int
	//
	if config.Signed {
		minOperand = new(big.Int).Lsh(big.NewInt(-1), config.OperandWidth-1)
		maxOperand = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), config.OperandWidth-1), big.NewInt(1))
	} else {
		minOperand = big.NewInt(0)
		maxOperand = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), config.OperandWidth), big.NewInt(1))
	}
	//
	var (
		p1 = new(big.Int).Mul(config.Coefficient, minOperand)
		p2 = new(big.Int).Mul(config.Coefficient, maxOperand)
	)
	//
	if p1.Cmp(p2) > 0 {
		p1, p2 = p2, p1
	}
	// p1 is now the smallest product, p2 the largest.
	if p1.Sign() < 0 {
		return max(bitvec.SignedWidth(p1), bitvec.SignedWidth(p2)), true
	}
	//
	return bitvec.UnsignedWidth(p2), false
}
