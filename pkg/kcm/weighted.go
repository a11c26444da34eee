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

	"github.com/consensys/go-kcm/pkg/circuit"
)

// WeightedNumber pairs a bus with the binary significance of its least
// significant wire, relative to a common reference point (weight zero for the
// final product).  The numeric value it denotes is the bus value scaled by
// 2^weight.  Weights exist only during elaboration as bookkeeping for
// aligning partial products; they never correspond to a physical wire, which
// is why they live here rather than in the circuit package.
type WeightedNumber struct {
	// Binary significance of Bus[0].
	Weight uint
	// The wires denoting this number.
	Bus circuit.Bus
}

// Span returns the binary position one past this number's most significant
// wire, i.e. weight plus width.
func (p WeightedNumber) Span() uint {
	return p.Weight + p.Bus.Width()
}

func (p WeightedNumber) String() string {
	return fmt.Sprintf("2^%d * %d'bus", p.Weight, p.Bus.Width())
}
