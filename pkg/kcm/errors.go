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

import "errors"

// All failures in this package are construction-time failures: the generated
// artifact is a fixed structure, hence there is no runtime error path.  None
// of these conditions is transient, so none is ever retried.
var (
	// ErrInvalidGroupWidth indicates a requested sub-word multiplier group
	// width outside the supported range 1..4.
	ErrInvalidGroupWidth = errors.New("invalid group width")
	// ErrEmptyOperand indicates a multiplier was requested over an operand of
	// width zero.
	ErrEmptyOperand = errors.New("empty operand")
	// ErrWidthMismatch indicates an injected primitive produced a bus of
	// unexpected width, violating an internal invariant.  This signals a
	// broken primitive implementation, not a recoverable condition.
	ErrWidthMismatch = errors.New("width mismatch")
	// ErrUnbalancedPipeline indicates an attempt to compose primitives whose
	// registered/pure status is inconsistent, which would yield partial
	// products arriving at the adder tree out of step.
	ErrUnbalancedPipeline = errors.New("unbalanced pipeline")
)
