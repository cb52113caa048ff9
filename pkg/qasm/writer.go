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
	"fmt"
	"strings"

	"github.com/consensys/go-qbin/pkg/ir"
)

// Write reconstructs readable QASM source from a program.  The output declares
// a single qubit register "q" and a single bit register "c", sized to cover all
// indices used.  Conditional blocks guarding exactly one renderable
// instruction are written on one line.  Other conditional blocks are written
// with one "// incomplete" marker per body instruction, since they cannot be
// faithfully reconstructed.  Unknown opcodes are written as comments.
func Write(program ir.Program) string {
	var (
		builder strings.Builder
		insns   = program.Instructions
	)
	//
	builder.WriteString("OPENQASM 3.0;\n")
	//
	if n := program.QubitCount(); n > 0 {
		fmt.Fprintf(&builder, "qubit[%d] q;\n", n)
	}
	//
	if n := program.BitCount(); n > 0 {
		fmt.Fprintf(&builder, "bit[%d] c;\n", n)
	}
	//
	builder.WriteString("\n")
	//
	for i := 0; i < len(insns); i++ {
		insn := &insns[i]
		//
		switch {
		case insn.Opcode.IsConditional():
			i = writeConditional(&builder, insns, i)
		case insn.Opcode == ir.ENDIF:
			// stray
		default:
			builder.WriteString(render(insn))
			builder.WriteString("\n")
		}
	}
	//
	return builder.String()
}

// Write a conditional block beginning at a given index, returning the index of
// the last instruction consumed.
func writeConditional(builder *strings.Builder, insns []ir.Instruction, index int) int {
	var (
		open      = &insns[index]
		condition = renderCondition(open)
	)
	// Single line form
	if index+2 < len(insns) && insns[index+2].Opcode == ir.ENDIF {
		if body, ok := renderStatement(&insns[index+1]); ok {
			fmt.Fprintf(builder, "%s { %s }\n", condition, body)
			return index + 2
		}
	}
	// Multi-line form
	fmt.Fprintf(builder, "%s {\n", condition)
	//
	for index++; index < len(insns) && insns[index].Opcode != ir.ENDIF; index++ {
		fmt.Fprintf(builder, "  // incomplete: %s\n", describe(&insns[index]))
	}
	//
	builder.WriteString("}\n")
	//
	return index
}

func renderCondition(insn *ir.Instruction) string {
	var comparator = "=="
	//
	if insn.Opcode == ir.IF_NEQ {
		comparator = "!="
	}
	//
	return fmt.Sprintf("if (c[%d] %s %d)", insn.Aux.UnwrapOr(0), comparator, insn.Imm8.UnwrapOr(0))
}

// Describe an instruction within an incomplete conditional body.  Opcodes which
// have no template are identified by their numeric value.
func describe(insn *ir.Instruction) string {
	if _, ok := renderStatement(insn); ok {
		return insn.Opcode.Name()
	} else if insn.Opcode.IsKnown() {
		return fmt.Sprintf("unsupported opcode 0x%02x (%s)", uint8(insn.Opcode), insn.Opcode.Name())
	}
	//
	return fmt.Sprintf("unknown opcode 0x%02x", uint8(insn.Opcode))
}

// Render a single instruction as a line of output.
func render(insn *ir.Instruction) string {
	if stmt, ok := renderStatement(insn); ok {
		return stmt
	} else if insn.Opcode.IsKnown() {
		return fmt.Sprintf("// unsupported opcode 0x%02x (%s)", uint8(insn.Opcode), insn.Opcode.Name())
	}
	//
	return fmt.Sprintf("// unknown opcode 0x%02x", uint8(insn.Opcode))
}

// Render an instruction as a statement, returning false if it has no template
// or lacks the operands its template requires.
func renderStatement(insn *ir.Instruction) (string, bool) {
	var (
		name  = insn.Opcode.Name()
		a, b  = insn.A, insn.B
		angle = insn.Angle
	)
	//
	switch insn.Opcode {
	case ir.X, ir.Y, ir.Z, ir.H, ir.S, ir.SDG, ir.T, ir.TDG, ir.SX, ir.SXDG:
		if a.HasValue() {
			return fmt.Sprintf("%s q[%d];", name, a.Unwrap()), true
		}
	case ir.RX, ir.RY, ir.RZ, ir.PHASE:
		if a.HasValue() && angle.HasValue() {
			return fmt.Sprintf("%s(%s) q[%d];", name, renderAngle(angle.Unwrap()), a.Unwrap()), true
		}
	case ir.CX, ir.CZ, ir.SWAP, ir.ECR, ir.CSX:
		if a.HasValue() && b.HasValue() {
			return fmt.Sprintf("%s q[%d], q[%d];", name, a.Unwrap(), b.Unwrap()), true
		}
	case ir.CRX, ir.CRY, ir.CRZ, ir.RXX, ir.RYY, ir.RZZ:
		if a.HasValue() && b.HasValue() && angle.HasValue() {
			return fmt.Sprintf("%s(%s) q[%d], q[%d];", name, renderAngle(angle.Unwrap()), a.Unwrap(), b.Unwrap()), true
		}
	case ir.MEASURE:
		if a.HasValue() && insn.Aux.HasValue() {
			return fmt.Sprintf("c[%d] = measure q[%d];", insn.Aux.Unwrap(), a.Unwrap()), true
		}
	case ir.RESET:
		if a.HasValue() {
			return fmt.Sprintf("reset q[%d];", a.Unwrap()), true
		}
	case ir.BARRIER:
		return "barrier;", true
	}
	//
	return "", false
}

// Angles are written with nine significant digits, which is sufficient to
// recover any single precision value exactly.  Parameter references have no
// textual form, hence are written as their literal value (which is zero).
func renderAngle(angle ir.Angle) string {
	return fmt.Sprintf("%.9g", angle.Value)
}
