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
	"os"
	"strings"

	"github.com/consensys/go-kcm/pkg/circuit"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var infoCmd = &cobra.Command{
	Use:   "info [flags]",
	Short: "summarise the structure of a generated multiplier.",
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
		k, err := config.Build()
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		//
		var (
			c       = k.Circuit()
			variant = "combinational"
		)
		//
		if config.Pipelined {
			variant = "pipelined"
		}
		//
		fmt.Printf("coefficient:   %s\n", config.Coefficient)
		fmt.Printf("operand:       %d bits, signed=%v\n", config.OperandWidth, config.Signed)
		fmt.Printf("variant:       %s\n", variant)
		fmt.Printf("groups:        %d\n", k.Groups())
		fmt.Printf("product width: %d bits\n", k.ProductWidth())
		fmt.Printf("latency:       %d cycles\n", k.Latency())
		fmt.Printf("wires:         %d\n", c.Wires())
		fmt.Printf("lookups:       %d\n", c.Lookups())
		fmt.Printf("adders:        %d\n", c.Adders())
		fmt.Printf("registers:     %d\n", c.Registers())
		//
		if GetFlag(cmd, "tables") {
			printTables(c)
		}
	},
}

// printTables dumps the contents of each lookup table, clipping rows to the
// terminal width when attached to one.
func printTables(c *circuit.Circuit) {
	// Determine available line width.
	width := 80
	//
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	//
	index := 0
	//
	for _, node := range c.Nodes() {
		lookup, ok := node.(*circuit.LookupNode)
		if !ok {
			continue
		}
		//
		var rows []string
		//
		for _, row := range lookup.Table {
			rows = append(rows, row.Unsigned().Text(16))
		}
		//
		line := fmt.Sprintf("table %d (%d bits): %s", index, lookup.Table[0].Width(), strings.Join(rows, " "))
		//
		if len(line) > width {
			line = line[:width-3] + "..."
		}
		//
		fmt.Println(line)
		//
		index++
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
	addBuildFlags(infoCmd)
	infoCmd.Flags().Bool("tables", false, "dump the contents of every lookup table")
}
