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

import (
	"fmt"
	"strings"

	"github.com/consensys/go-qbin/pkg/util"
)

// AngleKind distinguishes how an angle is given.  The values match the angle
// tag byte on the wire.
type AngleKind uint8

// LITERAL angles carry their value directly (as a 32bit float).
const LITERAL AngleKind = 0

// PARAMETER angles refer to a parameter by identifier.  Parameter tables are
// not part of the instruction section, hence the value of such an angle is
// always zero.
const PARAMETER AngleKind = 1

// Angle represents the (single) angle of a parameterised gate.
type Angle struct {
	Kind AngleKind
	// Value of a literal angle (zero for a parameter reference).
	Value float32
	// Parameter identifier (zero for a literal).
	Ref uint64
}

// Literal constructs a literal angle.
func Literal(value float32) Angle {
	return Angle{LITERAL, value, 0}
}

// ParameterRef constructs a reference to a named parameter.
func ParameterRef(ref uint64) Angle {
	return Angle{PARAMETER, 0, ref}
}

func (a Angle) String() string {
	if a.Kind == PARAMETER {
		return fmt.Sprintf("$%d", a.Ref)
	}
	//
	return fmt.Sprintf("%.9g", a.Value)
}

// Instruction is a single record of the instruction stream.  Which of the
// optional slots are present is determined by the opcode (see Opcode.Slots),
// with the exception of decoded instructions which faithfully reflect the
// presence mask they were read with.
type Instruction struct {
	Opcode Opcode
	// Operand slots (qubit indices).
	A, B, C util.Option[uint]
	// Angle for single-angle gates.
	Angle util.Option[Angle]
	// Classical bit index for measurements and conditionals.
	Aux util.Option[uint32]
	// Comparison literal for conditionals.
	Imm8 util.Option[uint8]
}

// NewGate constructs an angle-free gate over one, two or three qubits.
func NewGate(op Opcode, qubits ...uint) Instruction {
	var insn = Instruction{Opcode: op}
	//
	if len(qubits) > 0 {
		insn.A = util.Some(qubits[0])
	}
	//
	if len(qubits) > 1 {
		insn.B = util.Some(qubits[1])
	}
	//
	if len(qubits) > 2 {
		insn.C = util.Some(qubits[2])
	}
	//
	return insn
}

// NewRotation constructs a single-angle gate on a given qubit.
func NewRotation(op Opcode, angle float32, qubit uint) Instruction {
	insn := NewGate(op, qubit)
	insn.Angle = util.Some(Literal(angle))
	//
	return insn
}

// NewMeasure constructs a measurement of a qubit into a classical bit.
func NewMeasure(qubit uint, bit uint32) Instruction {
	insn := NewGate(MEASURE, qubit)
	insn.Aux = util.Some(bit)
	//
	return insn
}

// NewIf constructs a conditional-open instruction testing a given classical
// bit against a literal.
func NewIf(op Opcode, bit uint32, literal uint8) Instruction {
	return Instruction{Opcode: op, Aux: util.Some(bit), Imm8: util.Some(literal)}
}

// NewEndIf constructs a conditional-close instruction.
func NewEndIf() Instruction {
	return Instruction{Opcode: ENDIF}
}

// Mask returns the presence mask for this instruction.
func (p *Instruction) Mask() Mask {
	var mask Mask
	//
	if p.A.HasValue() {
		mask |= MASK_A
	}
	//
	if p.B.HasValue() {
		mask |= MASK_B
	}
	//
	if p.C.HasValue() {
		mask |= MASK_C
	}
	//
	if p.Angle.HasValue() {
		mask |= MASK_ANGLE
	}
	//
	if p.Aux.HasValue() {
		mask |= MASK_AUX
	}
	//
	return mask
}

// IsWellFormed checks that this instruction carries only slots legal for its
// opcode, and that conditionals carry their literal.
func (p *Instruction) IsWellFormed() bool {
	var (
		mask  = p.Mask()
		slots = p.Opcode.Slots()
	)
	//
	if mask&^slots != 0 {
		return false
	}
	//
	return p.Opcode.IsConditional() == p.Imm8.HasValue()
}

// Qubits returns the qubit operands present in this instruction.
func (p *Instruction) Qubits() []uint {
	var qubits []uint
	//
	for _, q := range []util.Option[uint]{p.A, p.B, p.C} {
		if q.HasValue() {
			qubits = append(qubits, q.Unwrap())
		}
	}
	//
	return qubits
}

func (p Instruction) String() string {
	var (
		builder strings.Builder
		args    []string
	)
	//
	builder.WriteString(p.Opcode.String())
	//
	for _, q := range p.Qubits() {
		args = append(args, fmt.Sprintf("q%d", q))
	}
	//
	if p.Angle.HasValue() {
		args = append(args, p.Angle.Unwrap().String())
	}
	//
	if p.Aux.HasValue() {
		args = append(args, fmt.Sprintf("c%d", p.Aux.Unwrap()))
	}
	//
	if p.Imm8.HasValue() {
		args = append(args, fmt.Sprintf("#%d", p.Imm8.Unwrap()))
	}
	//
	if len(args) > 0 {
		builder.WriteString(" ")
		builder.WriteString(strings.Join(args, ", "))
	}
	//
	return builder.String()
}
