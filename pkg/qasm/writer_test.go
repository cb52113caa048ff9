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
	"math"
	"testing"

	"github.com/consensys/go-qbin/pkg/ir"
	"github.com/consensys/go-qbin/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Write_Empty(t *testing.T) {
	assert.Equal(t, "OPENQASM 3.0;\n\n", Write(ir.NewProgram()))
}

func Test_Write_Program(t *testing.T) {
	program := ir.NewProgram(
		ir.NewGate(ir.H, 0),
		ir.NewRotation(ir.RZ, 1.0, 1),
		ir.NewGate(ir.CX, 0, 1),
		ir.NewMeasure(1, 0),
		ir.NewIf(ir.IF_EQ, 0, 1),
		ir.NewGate(ir.X, 0),
		ir.NewEndIf(),
	)
	expected := `OPENQASM 3.0;
qubit[2] q;
bit[1] c;

h q[0];
rz(1) q[1];
cx q[0], q[1];
c[0] = measure q[1];
if (c[0] == 1) { x q[0]; }
`
	assert.Equal(t, expected, Write(program))
}

func Test_Write_Templates(t *testing.T) {
	tests := []struct {
		insn     ir.Instruction
		expected string
	}{
		{ir.NewGate(ir.SXDG, 3), "sxdg q[3];"},
		{ir.NewRotation(ir.PHASE, 0.5, 0), "phase(0.5) q[0];"},
		{ir.NewRotation(ir.RX, 1.57079637, 0), "rx(1.57079637) q[0];"},
		{ir.NewRotation(ir.RY, -0.00001, 0), "ry(-9.99999975e-06) q[0];"},
		{ir.NewGate(ir.SWAP, 2, 1), "swap q[2], q[1];"},
		{ir.NewGate(ir.ECR, 0, 1), "ecr q[0], q[1];"},
		{withAngle(ir.NewGate(ir.CRZ, 0, 1), 0.25), "crz(0.25) q[0], q[1];"},
		{withAngle(ir.NewGate(ir.RZZ, 1, 0), 2), "rzz(2) q[1], q[0];"},
		{ir.NewGate(ir.RESET, 4), "reset q[4];"},
		{ir.NewGate(ir.BARRIER), "barrier;"},
		{ir.NewGate(ir.CALLG, 0, 1, 2), "// unsupported opcode 0x40 (callg)"},
		{ir.NewGate(ir.Opcode(0x77), 0), "// unknown opcode 0x77"},
		{ir.Instruction{Opcode: ir.RZ, A: util.Some[uint](0)}, "// unsupported opcode 0x0d (rz)"},
	}
	//
	for _, test := range tests {
		assert.Equal(t, test.expected, render(&test.insn))
	}
}

func Test_Write_ParameterRef(t *testing.T) {
	insn := ir.NewGate(ir.RX, 0)
	insn.Angle = util.Some(ir.ParameterRef(7))
	//
	assert.Equal(t, "rx(0) q[0];", render(&insn))
}

func Test_Write_ConditionalFallback(t *testing.T) {
	program := ir.NewProgram(
		ir.NewIf(ir.IF_NEQ, 2, 0),
		ir.NewGate(ir.X, 0),
		ir.NewGate(ir.Opcode(0x77)),
		ir.NewEndIf(),
		ir.NewGate(ir.H, 0),
	)
	expected := "if (c[2] != 0) {\n  // incomplete: x\n  // incomplete: unknown opcode 0x77\n}\nh q[0];\n"
	//
	assert.Equal(t, "OPENQASM 3.0;\nqubit[1] q;\nbit[3] c;\n\n"+expected, Write(program))
}

func Test_Write_ConditionalUnrenderable(t *testing.T) {
	program := ir.NewProgram(ir.NewIf(ir.IF_EQ, 0, 1), ir.NewGate(ir.CALLG, 0, 1, 2), ir.NewEndIf())
	//
	assert.Contains(t, Write(program), "if (c[0] == 1) {\n  // incomplete: unsupported opcode 0x40 (callg)\n}\n")
}

func Test_Write_ConditionalUnknownOpcode(t *testing.T) {
	program := ir.NewProgram(ir.NewIf(ir.IF_EQ, 0, 1), ir.NewGate(ir.Opcode(0x77), 0), ir.NewEndIf())
	//
	assert.Contains(t, Write(program), "if (c[0] == 1) {\n  // incomplete: unknown opcode 0x77\n}\n")
}

func Test_Write_ConditionalEmptyAndUnclosed(t *testing.T) {
	empty := ir.NewProgram(ir.NewIf(ir.IF_EQ, 0, 1), ir.NewEndIf())
	assert.Contains(t, Write(empty), "if (c[0] == 1) {\n}\n")
	//
	unclosed := ir.NewProgram(ir.NewIf(ir.IF_EQ, 0, 1), ir.NewGate(ir.H, 0))
	assert.Contains(t, Write(unclosed), "if (c[0] == 1) {\n  // incomplete: h\n}\n")
}

func Test_Write_LargestQubit(t *testing.T) {
	program := ir.NewProgram(ir.NewGate(ir.X, math.MaxUint))
	//
	expected := fmt.Sprintf("OPENQASM 3.0;\nqubit[%d] q;\n\nx q[%d];\n", uint(math.MaxUint), uint(math.MaxUint))
	//
	assert.Equal(t, expected, Write(program))
}

func Test_Write_StrayEndIf(t *testing.T) {
	program := ir.NewProgram(ir.NewGate(ir.H, 0), ir.NewEndIf(), ir.NewGate(ir.X, 0))
	//
	assert.Equal(t, "OPENQASM 3.0;\nqubit[1] q;\n\nh q[0];\nx q[0];\n", Write(program))
}

func Test_Write_Reparse(t *testing.T) {
	sources := []string{
		"qubit[3] q; bit[2] c; h q[0]; cx q[0], q[2]; rz(pi/3) q[1]; c[1] = measure q[2];",
		"qubit[2] q; bit[1] c; if (c[0] == 0) { x q[1]; } if (c[0] != 1) { swap q[0], q[1]; }",
		"qubit q; u(0.1, 0.2, 0.3) q[0]; p(-1e-3) q[0]; ry(1234.5678) q[0];",
	}
	//
	for _, src := range sources {
		p1, d1 := ParseString(src)
		require.Empty(t, d1, src)
		//
		p2, d2 := ParseString(Write(p1))
		require.Empty(t, d2, src)
		//
		assert.Equal(t, p1, p2, src)
	}
}

func withAngle(insn ir.Instruction, value float32) ir.Instruction {
	insn.Angle = util.Some(ir.Literal(value))
	return insn
}
