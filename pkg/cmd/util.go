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
package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/go-kcm/pkg/kcm"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// addBuildFlags registers the construction parameter flags shared by all
// subcommands which elaborate a multiplier.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("coefficient", "c", "", "the fixed coefficient (decimal, possibly negative)")
	cmd.Flags().UintP("width", "w", 0, "operand width in bits")
	cmd.Flags().BoolP("signed", "s", false, "interpret the operand as two's complement")
	cmd.Flags().BoolP("pipelined", "p", false, "generate the registered (pipelined) variant")
}

// configFromFlags assembles a multiplier config from the shared construction
// flags.
func configFromFlags(cmd *cobra.Command) (kcm.Config, error) {
	var config kcm.Config
	//
	coefficient, ok := new(big.Int).SetString(GetString(cmd, "coefficient"), 10)
	if !ok {
		return config, fmt.Errorf("malformed coefficient %q", GetString(cmd, "coefficient"))
	}
	//
	config = kcm.Config{
		Coefficient:  coefficient,
		OperandWidth: GetUint(cmd, "width"),
		Signed:       GetFlag(cmd, "signed"),
		Pipelined:    GetFlag(cmd, "pipelined"),
	}
	//
	return config, nil
}
