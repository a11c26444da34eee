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
	"fmt"
	"math/big"

	"github.com/consensys/go-kcm/pkg/util/bitvec"
)

// TableRows is the number of rows every sub-word multiplier table carries.
// Narrower groups still produce a full-shape table (padded with zero rows) so
// that one uniform four-input lookup shape is used throughout.
const TableRows = 16

// Table holds the exact contents of one sub-word multiplier lookup: the
// products coefficient x address for every address of a given group width.
// Addresses are interpreted as unsigned or, for the designated top group of a
// signed operand, as two's complement.  The table is exact content, computed
// once during elaboration; downstream consumers must never re-derive it
// arithmetically, since a technology mapper could then re-optimise it
// incorrectly.
type Table struct {
	coefficient *big.Int
	groupWidth  uint
	signed      bool
	outputWidth uint
	// Indicates whether rows are two's complement encoded (i.e. some product
	// is negative).
	negative bool
	// Exactly TableRows rows; rows beyond 2^groupWidth are zero and
	// unreachable in practice.
	rows []bitvec.Vector
}

// NewTable elaborates the multiplier table for a given coefficient and group
// width.  When signed is set, addresses are interpreted as groupWidth-bit
// two's complement values.  Group widths outside 1..4 are rejected with
// ErrInvalidGroupWidth.
func NewTable(coefficient *big.Int, groupWidth uint, signed bool) (*Table, error) {
	if groupWidth < 1 || groupWidth > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGroupWidth, groupWidth)
	}
	//
	var (
		count    = 1 << groupWidth
		products = make([]*big.Int, count)
		negative = false
	)
	// Build the product list.
	for address := 0; address < count; address++ {
		value := big.NewInt(int64(address))
		// Sign extend address for the designated top group.
		if signed && address >= count/2 {
			value.Sub(value, big.NewInt(int64(count)))
		}
		//
		product := value.Mul(value, coefficient)
		products[address] = product
		negative = negative || product.Sign() < 0
	}
	// Determine minimal output width across all products.
	width := uint(1)
	//
	for _, product := range products {
		if negative {
			width = max(width, bitvec.SignedWidth(product))
		} else {
			width = max(width, bitvec.UnsignedWidth(product))
		}
	}
	// Encode rows, padding up to the uniform table shape.
	rows := make([]bitvec.Vector, TableRows)
	//
	for i := range rows {
		if i < count {
			rows[i] = bitvec.FromBig(products[i], width)
		} else {
			rows[i] = bitvec.New(width)
		}
	}
	//
	return &Table{
		coefficient: coefficient,
		groupWidth:  groupWidth,
		signed:      signed,
		outputWidth: width,
		negative:    negative,
		rows:        rows,
	}, nil
}

// Coefficient returns the coefficient this table multiplies by.
func (p *Table) Coefficient() *big.Int {
	return p.coefficient
}

// GroupWidth returns the true width of the group this table covers.
func (p *Table) GroupWidth() uint {
	return p.groupWidth
}

// Signed indicates whether addresses are interpreted as two's complement.
func (p *Table) Signed() bool {
	return p.signed
}

// OutputWidth returns the width of every row: the minimum number of bits
// capable of representing the largest-magnitude product.
func (p *Table) OutputWidth() uint {
	return p.outputWidth
}

// SignedOutput indicates whether rows are two's complement encoded, i.e.
// whether any product is negative.
func (p *Table) SignedOutput() bool {
	return p.negative
}

// Rows returns all TableRows rows of this table.
func (p *Table) Rows() []bitvec.Vector {
	return p.rows
}

// Product decodes the row for a given address back into its numeric value.
func (p *Table) Product(address uint) *big.Int {
	row := p.rows[address]
	//
	if p.negative {
		return row.Signed()
	}
	//
	return row.Unsigned()
}
