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
package ir

import "math"

// Program is an ordered sequence of instructions.  Order is definitional
// execution order.
type Program struct {
	Instructions []Instruction
}

// NewProgram constructs a program from a given instruction sequence.
func NewProgram(insns ...Instruction) Program {
	return Program{insns}
}

// Len returns the number of instructions in this program.
func (p *Program) Len() uint {
	return uint(len(p.Instructions))
}

// Add appends zero or more instructions to this program.
func (p *Program) Add(insns ...Instruction) {
	p.Instructions = append(p.Instructions, insns...)
}

// QubitCount returns the highest qubit index used by any operand, plus one.
// Programs without operands have no qubits.  The count saturates, rather than
// wrapping, when the largest possible index is used.
func (p *Program) QubitCount() uint {
	var count uint
	//
	for _, insn := range p.Instructions {
		for _, q := range insn.Qubits() {
			count = max(count, min(q, math.MaxUint-1)+1)
		}
	}
	//
	return count
}

// BitCount returns the highest classical bit index used by a measurement or a
// conditional, plus one.
func (p *Program) BitCount() uint {
	var count uint
	//
	for _, insn := range p.Instructions {
		switch insn.Opcode {
		case MEASURE, IF_EQ, IF_NEQ:
			if insn.Aux.HasValue() {
				count = max(count, uint(insn.Aux.Unwrap())+1)
			}
		}
	}
	//
	return count
}
