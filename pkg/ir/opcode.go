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

import "fmt"

// Opcode identifies the kind of an instruction.  Opcodes are encoded as a
// single byte on the wire, hence values outside the known set can arise when
// decoding containers written by newer tools.
type Opcode uint8

// X is the Pauli-X gate.
const X Opcode = 0x01

// Y is the Pauli-Y gate.
const Y Opcode = 0x02

// Z is the Pauli-Z gate.
const Z Opcode = 0x03

// H is the Hadamard gate.
const H Opcode = 0x04

// S is the phase gate (sqrt(Z)).
const S Opcode = 0x05

// SDG is the adjoint of S.
const SDG Opcode = 0x06

// T is the pi/8 gate (sqrt(S)).
const T Opcode = 0x07

// TDG is the adjoint of T.
const TDG Opcode = 0x08

// SX is the sqrt(X) gate.
const SX Opcode = 0x09

// SXDG is the adjoint of SX.
const SXDG Opcode = 0x0A

// RX is a rotation about the X axis.
const RX Opcode = 0x0B

// RY is a rotation about the Y axis.
const RY Opcode = 0x0C

// RZ is a rotation about the Z axis.
const RZ Opcode = 0x0D

// PHASE is a (global) phase gate.
const PHASE Opcode = 0x0E

// U is the universal single-qubit rotation.  It is reserved, since the
// frontend always decomposes it into RZ/RY/RZ.
const U Opcode = 0x0F

// CX is the controlled-X gate.
const CX Opcode = 0x10

// CZ is the controlled-Z gate.
const CZ Opcode = 0x11

// ECR is the echoed cross-resonance gate.
const ECR Opcode = 0x12

// SWAP exchanges two qubits.
const SWAP Opcode = 0x13

// CSX is the controlled-SX gate.
const CSX Opcode = 0x14

// CRX is the controlled-RX gate.
const CRX Opcode = 0x15

// CRY is the controlled-RY gate.
const CRY Opcode = 0x16

// CRZ is the controlled-RZ gate.
const CRZ Opcode = 0x17

// CU is the controlled-U gate.
const CU Opcode = 0x18

// RXX is the XX-interaction gate.
const RXX Opcode = 0x20

// RYY is the YY-interaction gate.
const RYY Opcode = 0x21

// RZZ is the ZZ-interaction gate.
const RZZ Opcode = 0x22

// MEASURE measures a qubit into a classical bit (held in aux).
const MEASURE Opcode = 0x30

// RESET resets a qubit to |0>.
const RESET Opcode = 0x31

// BARRIER is a scheduling barrier.
const BARRIER Opcode = 0x32

// DELAY idles a qubit.
const DELAY Opcode = 0x38

// FRAME is a pulse-level frame change.
const FRAME Opcode = 0x39

// CALLG calls a gate from an extension section.
const CALLG Opcode = 0x40

// IF_EQ opens a conditional block executed when the classical bit (aux) equals
// the literal (imm8).
const IF_EQ Opcode = 0x81

// IF_NEQ opens a conditional block executed when the classical bit (aux) does
// not equal the literal (imm8).
const IF_NEQ Opcode = 0x82

// ENDIF closes the innermost conditional block.
const ENDIF Opcode = 0x8F

// Mask describes which optional slots of an instruction record are present.
// The bit assignment is exactly that of the presence mask on the wire.
type Mask uint8

// MASK_A indicates operand a is present.
const MASK_A Mask = 0x01

// MASK_B indicates operand b is present.
const MASK_B Mask = 0x02

// MASK_C indicates operand c is present.
const MASK_C Mask = 0x04

// MASK_ANGLE indicates an angle is present.
const MASK_ANGLE Mask = 0x08

// MASK_AUX indicates the aux word is present.
const MASK_AUX Mask = 0x80

type opcodeInfo struct {
	name  string
	slots Mask
}

var opcodes = map[Opcode]opcodeInfo{
	X:       {"x", MASK_A},
	Y:       {"y", MASK_A},
	Z:       {"z", MASK_A},
	H:       {"h", MASK_A},
	S:       {"s", MASK_A},
	SDG:     {"sdg", MASK_A},
	T:       {"t", MASK_A},
	TDG:     {"tdg", MASK_A},
	SX:      {"sx", MASK_A},
	SXDG:    {"sxdg", MASK_A},
	RX:      {"rx", MASK_A | MASK_ANGLE},
	RY:      {"ry", MASK_A | MASK_ANGLE},
	RZ:      {"rz", MASK_A | MASK_ANGLE},
	PHASE:   {"phase", MASK_A | MASK_ANGLE},
	U:       {"u", MASK_A | MASK_ANGLE},
	CX:      {"cx", MASK_A | MASK_B},
	CZ:      {"cz", MASK_A | MASK_B},
	ECR:     {"ecr", MASK_A | MASK_B},
	SWAP:    {"swap", MASK_A | MASK_B},
	CSX:     {"csx", MASK_A | MASK_B},
	CRX:     {"crx", MASK_A | MASK_B | MASK_ANGLE},
	CRY:     {"cry", MASK_A | MASK_B | MASK_ANGLE},
	CRZ:     {"crz", MASK_A | MASK_B | MASK_ANGLE},
	CU:      {"cu", MASK_A | MASK_B | MASK_ANGLE},
	RXX:     {"rxx", MASK_A | MASK_B | MASK_ANGLE},
	RYY:     {"ryy", MASK_A | MASK_B | MASK_ANGLE},
	RZZ:     {"rzz", MASK_A | MASK_B | MASK_ANGLE},
	MEASURE: {"measure", MASK_A | MASK_AUX},
	RESET:   {"reset", MASK_A},
	BARRIER: {"barrier", 0},
	DELAY:   {"delay", MASK_A | MASK_ANGLE},
	FRAME:   {"frame", 0},
	CALLG:   {"callg", MASK_A | MASK_B | MASK_C | MASK_AUX},
	IF_EQ:   {"if_eq", MASK_AUX},
	IF_NEQ:  {"if_neq", MASK_AUX},
	ENDIF:   {"endif", 0},
}

// IsKnown determines whether this opcode is part of the known instruction set.
func (op Opcode) IsKnown() bool {
	_, ok := opcodes[op]
	return ok
}

// Name returns the mnemonic for this opcode, or "unknown".
func (op Opcode) Name() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	//
	return "unknown"
}

// Slots returns the set of optional slots which instructions with this opcode
// may legally carry.  Unknown opcodes have no legal slots.
func (op Opcode) Slots() Mask {
	return opcodes[op].slots
}

// IsConditional determines whether this opcode opens a conditional block, in
// which case its records carry a trailing imm8 byte.
func (op Opcode) IsConditional() bool {
	return op == IF_EQ || op == IF_NEQ
}

func (op Opcode) String() string {
	if op.IsKnown() {
		return op.Name()
	}
	//
	return fmt.Sprintf("0x%02x", uint8(op))
}
