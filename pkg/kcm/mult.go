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

// Mult elaborates one sub-word multiplier: a lookup of a (padded) four-wire
// group through an exact-content table.  The pure and registered variants
// yield the same partial product, the latter one clock cycle later.
type Mult interface {
	// Multiply maps the given group bus through the given table, returning
	// the partial product bus.
	Multiply(builder *circuit.Builder, group circuit.Bus, table *Table) circuit.Bus
	// Latency returns the number of register stages per multiply (zero or
	// one).
	Latency() uint
}

// ============================================================================

// CombMult is the pure (zero latency) sub-word multiplier.
type CombMult struct{}

// Multiply implementation for the Mult interface.
func (CombMult) Multiply(builder *circuit.Builder, group circuit.Bus, table *Table) circuit.Bus {
	return builder.Lookup(group, table.Rows())
}

// Latency implementation for the Mult interface.
func (CombMult) Latency() uint {
	return 0
}

// ============================================================================

// RegMult is the registered sub-word multiplier: a lookup whose output is
// latched by a clock-enabled register.
type RegMult struct{}

// Multiply implementation for the Mult interface.
func (RegMult) Multiply(builder *circuit.Builder, group circuit.Bus, table *Table) circuit.Bus {
	return builder.Register(builder.Lookup(group, table.Rows()))
}

// Latency implementation for the Mult interface.
func (RegMult) Latency() uint {
	return 1
}
