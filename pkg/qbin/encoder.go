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
package qbin

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/consensys/go-qbin/pkg/ir"
)

// Encode serialises a program into a container holding exactly one
// instruction section.  Encoding cannot fail for well-formed instructions;
// records carrying slots not legal for their opcode are still written exactly
// as their presence mask dictates.
func Encode(program ir.Program) []byte {
	var (
		buffer    bytes.Buffer
		header    = NewHeader()
		hbytes, _ = header.MarshalBinary()
	)
	// Write header
	buffer.Write(hbytes)
	// Write instruction section
	buffer.Write(INST[:])
	writeUvarint(&buffer, uint64(program.Len()))
	//
	for _, insn := range program.Instructions {
		encodeInstruction(&buffer, insn)
	}
	// Done
	return buffer.Bytes()
}

func encodeInstruction(buffer *bytes.Buffer, insn ir.Instruction) {
	var mask = insn.Mask()
	//
	buffer.WriteByte(uint8(insn.Opcode))
	buffer.WriteByte(uint8(mask))
	// Operands
	if insn.A.HasValue() {
		writeUvarint(buffer, uint64(insn.A.Unwrap()))
	}
	//
	if insn.B.HasValue() {
		writeUvarint(buffer, uint64(insn.B.Unwrap()))
	}
	//
	if insn.C.HasValue() {
		writeUvarint(buffer, uint64(insn.C.Unwrap()))
	}
	// Angle (tag followed by payload)
	if insn.Angle.HasValue() {
		angle := insn.Angle.Unwrap()
		//
		buffer.WriteByte(uint8(angle.Kind))
		//
		if angle.Kind == ir.PARAMETER {
			writeUvarint(buffer, angle.Ref)
		} else {
			buffer.Write(binary.LittleEndian.AppendUint32(nil, math.Float32bits(angle.Value)))
		}
	}
	// Aux
	if insn.Aux.HasValue() {
		buffer.Write(binary.LittleEndian.AppendUint32(nil, insn.Aux.Unwrap()))
	}
	// Conditionals always carry a trailing literal
	if insn.Opcode.IsConditional() {
		buffer.WriteByte(insn.Imm8.UnwrapOr(0))
	}
}

func writeUvarint(buffer *bytes.Buffer, value uint64) {
	buffer.Write(binary.AppendUvarint(nil, value))
}
