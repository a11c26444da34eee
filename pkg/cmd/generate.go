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
	"path/filepath"

	"github.com/consensys/go-kcm/pkg/circuit"
	"github.com/consensys/go-kcm/pkg/kcm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "generate one or more multiplier netlists.",
	Long: `Generate the JSON netlist of a constant-coefficient multiplier, either for
a single multiplier described by flags, or for a batch of multipliers
described by a YAML configuration file.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			batch  = GetString(cmd, "batch")
			output = GetString(cmd, "output")
		)
		//
		if batch != "" {
			if err := generateBatch(batch, output); err != nil {
				fmt.Println(err.Error())
				os.Exit(1)
			}
			//
			return
		}
		//
		config, err := configFromFlags(cmd)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		//
		if err := generateNetlist(config, output); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
	},
}

// batchFile describes a YAML file listing several multipliers to generate in
// one go.
type batchFile struct {
	Multipliers []batchEntry `yaml:"multipliers"`
}

type batchEntry struct {
	Name        string `yaml:"name"`
	Coefficient string `yaml:"coefficient"`
	Width       uint   `yaml:"width"`
	Signed      bool   `yaml:"signed"`
	Pipelined   bool   `yaml:"pipelined"`
}

// generateNetlist elaborates a single multiplier and writes its netlist to
// the given file, or to stdout when no filename is given.
func generateNetlist(config kcm.Config, filename string) error {
	k, err := config.Build()
	if err != nil {
		return err
	}
	//
	data, err := circuit.ToJson(k.Circuit())
	if err != nil {
		return err
	}
	//
	if filename == "" {
		fmt.Println(string(data))
		return nil
	}
	//
	return os.WriteFile(filename, data, 0644)
}

// generateBatch elaborates every multiplier listed in a YAML batch file,
// writing one netlist per entry into the given output directory.
func generateBatch(filename string, dir string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	//
	var batch batchFile
	//
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return err
	}
	//
	if dir == "" {
		dir = "."
	}
	//
	for i, entry := range batch.Multipliers {
		if entry.Name == "" {
			return fmt.Errorf("multiplier %d: missing name", i)
		}
		//
		coefficient, ok := new(big.Int).SetString(entry.Coefficient, 10)
		if !ok {
			return fmt.Errorf("multiplier %q: malformed coefficient %q", entry.Name, entry.Coefficient)
		}
		//
		config := kcm.Config{
			Coefficient:  coefficient,
			OperandWidth: entry.Width,
			Signed:       entry.Signed,
			Pipelined:    entry.Pipelined,
		}
		//
		target := filepath.Join(dir, entry.Name+".json")
		//
		if err := generateNetlist(config, target); err != nil {
			return fmt.Errorf("multiplier %q: %w", entry.Name, err)
		}
		//
		log.Debugf("wrote %s", target)
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addBuildFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "output file (or directory in batch mode)")
	generateCmd.Flags().StringP("batch", "b", "", "YAML file describing multipliers to generate")
}
