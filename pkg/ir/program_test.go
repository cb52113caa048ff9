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
	"math"
	"testing"

	"github.com/consensys/go-qbin/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestProgram_Counts(t *testing.T) {
	program := NewProgram(
		NewGate(H, 0),
		NewGate(CX, 0, 4),
		NewMeasure(4, 2),
		NewIf(IF_NEQ, 6, 1),
		NewGate(X, 1),
		NewEndIf(),
	)
	//
	assert.Equal(t, uint(5), program.QubitCount())
	assert.Equal(t, uint(7), program.BitCount())
}

func TestProgram_SaturatedCount(t *testing.T) {
	program := NewProgram(NewGate(X, 3), NewGate(X, math.MaxUint))
	//
	assert.Equal(t, uint(math.MaxUint), program.QubitCount())
	//
	program = NewProgram(NewGate(X, math.MaxUint-1))
	assert.Equal(t, uint(math.MaxUint), program.QubitCount())
}

func TestProgram_EmptyCounts(t *testing.T) {
	program := NewProgram(NewIf(IF_EQ, 0, 0), NewEndIf())
	//
	assert.Equal(t, uint(0), program.QubitCount())
	assert.Equal(t, uint(1), program.BitCount())
	//
	empty := NewProgram()
	assert.Equal(t, uint(0), empty.QubitCount())
	assert.Equal(t, uint(0), empty.BitCount())
}

func TestInstruction_Mask(t *testing.T) {
	rz := NewRotation(RZ, 1.5, 3)
	measure := NewMeasure(1, 0)
	cond := NewIf(IF_EQ, 2, 1)
	//
	assert.Equal(t, MASK_A|MASK_ANGLE, rz.Mask())
	assert.Equal(t, MASK_A|MASK_AUX, measure.Mask())
	assert.Equal(t, MASK_AUX, cond.Mask())
}

func TestInstruction_WellFormed(t *testing.T) {
	var (
		ok       = NewGate(SWAP, 1, 2)
		badAngle = NewGate(H, 0)
		noImm    = Instruction{Opcode: IF_EQ, Aux: util.Some[uint32](0)}
	)
	//
	badAngle.Angle = util.Some(Literal(1))
	//
	assert.True(t, ok.IsWellFormed())
	assert.False(t, badAngle.IsWellFormed())
	assert.False(t, noImm.IsWellFormed())
}

func TestInstruction_String(t *testing.T) {
	assert.Equal(t, "rx q2, 0.5", NewRotation(RX, 0.5, 2).String())
	assert.Equal(t, "measure q1, c3", NewMeasure(1, 3).String())
	assert.Equal(t, "if_neq c0, #1", NewIf(IF_NEQ, 0, 1).String())
	assert.Equal(t, "0x7e", Instruction{Opcode: 0x7e}.String())
}

func TestOpcode_Names(t *testing.T) {
	assert.Equal(t, "sxdg", SXDG.Name())
	assert.Equal(t, "unknown", Opcode(0x7e).Name())
	assert.True(t, IF_NEQ.IsConditional())
	assert.False(t, ENDIF.IsConditional())
}
