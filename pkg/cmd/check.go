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
	"math/rand"
	"os"

	"github.com/consensys/go-kcm/pkg/kcm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Beyond this operand width, checking samples randomly rather than sweeping
// the full range.
const exhaustiveLimit = 16

var checkCmd = &cobra.Command{
	Use:   "check [flags]",
	Short: "check a generated multiplier against reference products.",
	Long: `Elaborate a multiplier and simulate the generated structure, comparing
every product (or, for wide operands, a random sample) against an arbitrary
precision reference multiplication.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		config, err := configFromFlags(cmd)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		//
		checked, err := checkMultiplier(config, GetUint(cmd, "samples"))
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		//
		fmt.Printf("OK (%d products checked)\n", checked)
	},
}

// checkMultiplier elaborates the configured multiplier and verifies its
// products, returning the number of products checked.
func checkMultiplier(config kcm.Config, samples uint) (uint, error) {
	k, err := config.Build()
	if err != nil {
		return 0, err
	}
	//
	var (
		bound   = new(big.Int).Lsh(big.NewInt(1), config.OperandWidth)
		offset  = big.NewInt(0)
		checked = uint(0)
	)
	// Signed operands range over [-2^(w-1), 2^(w-1)).
	if config.Signed {
		offset = new(big.Int).Lsh(big.NewInt(-1), config.OperandWidth-1)
	}
	//
	exhaustive := config.OperandWidth <= exhaustiveLimit
	//
	if !exhaustive {
		log.Debugf("operand too wide for a full sweep, sampling %d products", samples)
	}
	//
	for i := uint(0); exhaustive || i < samples; i++ {
		var operand *big.Int
		//
		if exhaustive {
			if i == uint(1)<<config.OperandWidth {
				break
			}
			//
			operand = new(big.Int).SetUint64(uint64(i))
		} else {
			operand = new(big.Int).Rand(rand.New(rand.NewSource(int64(i))), bound)
		}
		//
		operand.Add(operand, offset)
		//
		var (
			expected = new(big.Int).Mul(config.Coefficient, operand)
			actual   = k.Multiply(operand)
		)
		//
		if expected.Cmp(actual) != 0 {
			return checked, fmt.Errorf("mismatch at %s: expected %s, actual %s", operand, expected, actual)
		}
		//
		checked++
	}
	//
	return checked, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addBuildFlags(checkCmd)
	checkCmd.Flags().Uint("samples", 1000, "number of random products to check for wide operands")
}
