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
package circuit

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-kcm/pkg/util/bitvec"
	"github.com/segmentio/encoding/json"
)

// The JSON netlist is the hand-off format consumed by technology-mapping
// backends.  Wires are plain indices; lookup rows are hex strings paired with
// an explicit row width (leading zero bits are significant).

type jsonCircuit struct {
	Wires       uint       `json:"wires"`
	Inputs      Bus        `json:"inputs"`
	Outputs     Bus        `json:"outputs"`
	ClockEnable *Wire      `json:"clock_enable,omitempty"`
	Nodes       []jsonNode `json:"nodes"`
}

type jsonNode struct {
	Kind    string   `json:"kind"`
	Address Bus      `json:"address,omitempty"`
	Left    Bus      `json:"left,omitempty"`
	Right   Bus      `json:"right,omitempty"`
	Inputs  Bus      `json:"inputs,omitempty"`
	Enable  *Wire    `json:"enable,omitempty"`
	Outputs Bus      `json:"outputs"`
	Width   uint     `json:"width,omitempty"`
	Table   []string `json:"table,omitempty"`
}

// ToJson serialises a circuit into its JSON netlist form.
func ToJson(circuit *Circuit) ([]byte, error) {
	netlist := jsonCircuit{
		Wires:   circuit.Wires(),
		Inputs:  circuit.Inputs(),
		Outputs: circuit.Outputs(),
	}
	//
	if ce, ok := circuit.ClockEnable(); ok {
		netlist.ClockEnable = &ce
	}
	//
	for _, node := range circuit.Nodes() {
		switch n := node.(type) {
		case *LookupNode:
			rows := make([]string, len(n.Table))
			//
			for i, row := range n.Table {
				rows[i] = row.Unsigned().Text(16)
			}
			//
			netlist.Nodes = append(netlist.Nodes, jsonNode{
				Kind:    "lookup",
				Address: n.Address,
				Outputs: n.Outputs,
				Width:   n.Table[0].Width(),
				Table:   rows,
			})
		case *AdderNode:
			netlist.Nodes = append(netlist.Nodes, jsonNode{
				Kind:    "adder",
				Left:    n.Left,
				Right:   n.Right,
				Outputs: n.Outputs,
			})
		case *RegisterNode:
			enable := n.Enable
			netlist.Nodes = append(netlist.Nodes, jsonNode{
				Kind:    "register",
				Inputs:  n.Inputs,
				Enable:  &enable,
				Outputs: n.Outputs,
			})
		default:
			return nil, fmt.Errorf("unknown node type %T", node)
		}
	}
	//
	return json.Marshal(netlist)
}

// FromJson deserialises a circuit from its JSON netlist form.
func FromJson(data []byte) (*Circuit, error) {
	var netlist jsonCircuit
	//
	if err := json.Unmarshal(data, &netlist); err != nil {
		return nil, err
	}
	//
	circuit := &Circuit{
		wires:   netlist.Wires,
		inputs:  netlist.Inputs,
		outputs: netlist.Outputs,
	}
	//
	if netlist.ClockEnable != nil {
		circuit.clockEnable = *netlist.ClockEnable
		circuit.clocked = true
	}
	//
	for i, n := range netlist.Nodes {
		switch n.Kind {
		case "lookup":
			table := make([]bitvec.Vector, len(n.Table))
			//
			for j, row := range n.Table {
				value, ok := new(big.Int).SetString(row, 16)
				if !ok {
					return nil, fmt.Errorf("node %d: malformed table row %q", i, row)
				}
				//
				table[j] = bitvec.FromBig(value, n.Width)
			}
			//
			circuit.nodes = append(circuit.nodes, &LookupNode{n.Address, n.Outputs, table})
		case "adder":
			circuit.nodes = append(circuit.nodes, &AdderNode{n.Left, n.Right, n.Outputs})
		case "register":
			if n.Enable == nil {
				return nil, fmt.Errorf("node %d: register missing enable", i)
			}
			//
			circuit.nodes = append(circuit.nodes, &RegisterNode{n.Inputs, n.Outputs, *n.Enable})
		default:
			return nil, fmt.Errorf("node %d: unknown kind %q", i, n.Kind)
		}
	}
	//
	return circuit, nil
}
