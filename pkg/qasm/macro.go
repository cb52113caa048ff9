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
package qasm

import (
	"strings"
)

// GateDefinition represents a user-defined gate.  This is a named template with
// zero or more formal angle parameters, one or more formal qubit parameters and
// a body of statements.  Body statements are kept as text, and are instantiated
// by textual substitution of actual arguments for formal parameters.
type GateDefinition struct {
	Name   string
	Params []string
	Qubits []string
	Body   []string
}

// MacroTable maps gate names to their definitions.  Names are matched without
// regard to case.
type MacroTable struct {
	gates map[string]*GateDefinition
}

// NewMacroTable constructs an empty macro table.
func NewMacroTable() *MacroTable {
	return &MacroTable{make(map[string]*GateDefinition)}
}

// Define a new gate.  If a gate of the same name (ignoring case) is already
// defined then the existing definition is retained and false is returned.
func (p *MacroTable) Define(gate GateDefinition) bool {
	key := strings.ToLower(gate.Name)
	//
	if _, ok := p.gates[key]; ok {
		return false
	}
	//
	p.gates[key] = &gate
	//
	return true
}

// Lookup the definition of a given gate (ignoring case).
func (p *MacroTable) Lookup(name string) (*GateDefinition, bool) {
	gate, ok := p.gates[strings.ToLower(name)]
	return gate, ok
}

// Len returns the number of gates defined.
func (p *MacroTable) Len() int {
	return len(p.gates)
}
