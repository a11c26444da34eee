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
	"math/bits"

	"github.com/consensys/go-kcm/pkg/circuit"
)

// TreeDepth returns the depth of the balanced reduction tree over n items,
// i.e. ceil(log2(n)).
func TreeDepth(n uint) uint {
	if n == 0 {
		panic("tree depth of empty sequence")
	}
	//
	return uint(bits.Len(n - 1))
}

// Reduce combines a non-empty sequence of weighted numbers into a single one
// using a balanced binary tree of weighted adders.  The tree builder is
// agnostic about pipelining: the supplied adder decides whether each combine
// is pure or registered.  For a registered adder, every leaf-to-root path is
// padded (via Delay) to cross exactly TreeDepth(len(items)) register stages,
// keeping all partial products synchronised at each combine.
func Reduce(builder *circuit.Builder, adder Adder, items []WeightedNumber) (WeightedNumber, error) {
	if len(items) == 0 {
		return WeightedNumber{}, fmt.Errorf("cannot reduce empty sequence")
	}
	//
	n, _ := reduce(builder, adder, items)
	//
	return n, nil
}

// reduce splits the sequence as evenly as possible, recurses on each half and
// combines the sub-results, reporting the register depth of the subtree so
// the caller can balance latencies.
func reduce(builder *circuit.Builder, adder Adder, items []WeightedNumber) (WeightedNumber, uint) {
	if len(items) == 1 {
		return items[0], 0
	}
	//
	var (
		mid          = len(items) / 2
		left, ldepth = reduce(builder, adder, items[:mid])
		right, rd    = reduce(builder, adder, items[mid:])
	)
	// Pad the shallower side so both operands arrive in step.
	for ldepth < rd {
		left = adder.Delay(builder, left)
		ldepth++
	}
	//
	for rd < ldepth {
		right = adder.Delay(builder, right)
		rd++
	}
	//
	return adder.Combine(builder, left, right), ldepth + 1
}
