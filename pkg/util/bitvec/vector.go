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
package bitvec

import (
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Vector represents a fixed-width sequence of bits stored least significant
// bit first.  The width is always explicit: a vector of width 8 whose value
// is zero is distinct from one of width 4.  Whether the contents are
// interpreted as signed or unsigned is a property of the operation applied
// (e.g. Signed versus Unsigned), never of the vector itself.
type Vector struct {
	width uint
	bits  *bitset.BitSet
}

// New constructs a zeroed vector of the given width.
func New(width uint) Vector {
	return Vector{width, bitset.New(width)}
}

// FromBig constructs a vector of the given width holding the two's complement
// encoding of value.  Values outside the representable range are reduced
// modulo 2^width.
func FromBig(value *big.Int, width uint) Vector {
	var (
		modulus = new(big.Int).Lsh(big.NewInt(1), width)
		residue = new(big.Int).Mod(value, modulus)
		vec     = New(width)
	)
	// Mod always yields a non-negative residue, so bits can be read off
	// directly.
	for i := uint(0); i < width; i++ {
		if residue.Bit(int(i)) == 1 {
			vec.bits.Set(i)
		}
	}
	//
	return vec
}

// FromUint64 constructs a vector of the given width holding the least
// significant width bits of value.
func FromUint64(value uint64, width uint) Vector {
	return FromBig(new(big.Int).SetUint64(value), width)
}

// Width returns the number of bits in this vector.
func (p Vector) Width() uint {
	return p.width
}

// Bit returns the ith bit of this vector, where bit 0 is the least
// significant.
func (p Vector) Bit(index uint) bool {
	if index >= p.width {
		panic("bit index out of bounds")
	}

	return p.bits.Test(index)
}

// SetBit updates the ith bit of this vector in place.
func (p Vector) SetBit(index uint, value bool) {
	if index >= p.width {
		panic("bit index out of bounds")
	}
	//
	p.bits.SetTo(index, value)
}

// Slice returns a fresh vector holding bits [lo..hi) of this vector.  An
// empty slice (lo == hi) yields a vector of width zero.
func (p Vector) Slice(lo uint, hi uint) Vector {
	if lo > hi || hi > p.width {
		panic("slice bounds out of range")
	}
	//
	vec := New(hi - lo)
	//
	for i := lo; i < hi; i++ {
		vec.bits.SetTo(i-lo, p.bits.Test(i))
	}
	//
	return vec
}

// Concat returns a fresh vector whose low bits are this vector and whose high
// bits are the other vector.
func (p Vector) Concat(other Vector) Vector {
	vec := New(p.width + other.width)
	//
	for i := uint(0); i < p.width; i++ {
		vec.bits.SetTo(i, p.bits.Test(i))
	}
	//
	for i := uint(0); i < other.width; i++ {
		vec.bits.SetTo(p.width+i, other.bits.Test(i))
	}
	//
	return vec
}

// ZeroExtend returns a fresh copy of this vector padded with zero bits up to
// the given width, which must not be smaller than the current width.
func (p Vector) ZeroExtend(width uint) Vector {
	if width < p.width {
		panic("cannot extend to a narrower width")
	}
	//
	return p.Concat(New(width - p.width))
}

// SignExtend returns a fresh copy of this vector padded up to the given width
// by replicating its most significant bit.  Extending an empty vector is not
// meaningful and, hence, not permitted.
func (p Vector) SignExtend(width uint) Vector {
	if p.width == 0 {
		panic("cannot sign extend empty vector")
	} else if width < p.width {
		panic("cannot extend to a narrower width")
	}
	//
	var (
		sign = p.bits.Test(p.width - 1)
		vec  = p.ZeroExtend(width)
	)
	//
	for i := p.width; i < width; i++ {
		vec.bits.SetTo(i, sign)
	}
	//
	return vec
}

// Unsigned returns the value of this vector interpreted as an unsigned
// integer.
func (p Vector) Unsigned() *big.Int {
	value := big.NewInt(0)
	//
	for i := uint(0); i < p.width; i++ {
		if p.bits.Test(i) {
			value.SetBit(value, int(i), 1)
		}
	}
	//
	return value
}

// Signed returns the value of this vector interpreted as a two's complement
// signed integer.  A vector of width zero has value zero.
func (p Vector) Signed() *big.Int {
	value := p.Unsigned()
	// Check sign bit
	if p.width > 0 && p.bits.Test(p.width-1) {
		modulus := new(big.Int).Lsh(big.NewInt(1), p.width)
		value.Sub(value, modulus)
	}
	//
	return value
}

// Equals checks whether this vector has the same width and contents as the
// other.
func (p Vector) Equals(other Vector) bool {
	if p.width != other.width {
		return false
	}
	//
	for i := uint(0); i < p.width; i++ {
		if p.bits.Test(i) != other.bits.Test(i) {
			return false
		}
	}
	//
	return true
}

// String returns a binary rendering of this vector, most significant bit
// first (i.e. as conventionally written).
func (p Vector) String() string {
	var builder strings.Builder
	//
	builder.WriteString("0b")
	//
	for i := p.width; i > 0; i-- {
		if p.bits.Test(i - 1) {
			builder.WriteString("1")
		} else {
			builder.WriteString("0")
		}
	}
	//
	return builder.String()
}

// UnsignedWidth returns the minimum number of bits required to represent a
// given non-negative value as an unsigned integer, which is always at least
// one.
func UnsignedWidth(value *big.Int) uint {
	if value.Sign() < 0 {
		panic("unsigned width of negative value")
	} else if value.Sign() == 0 {
		return 1
	}
	//
	return uint(value.BitLen())
}

// SignedWidth returns the minimum number of bits required to represent a
// given value in two's complement form.  For example, -8..7 all fit within
// four bits, whilst 8 requires five.
func SignedWidth(value *big.Int) uint {
	if value.Sign() >= 0 {
		return uint(value.BitLen()) + 1
	}
	// For negative values, -2^(n-1) is representable in n bits.
	plus1 := new(big.Int).Add(value, big.NewInt(1))
	//
	return uint(plus1.BitLen()) + 1
}
