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
	"fmt"

	"github.com/consensys/go-qbin/pkg/ir"
	"github.com/consensys/go-qbin/pkg/util"
	log "github.com/sirupsen/logrus"
)

// MIN_RECORD_SIZE is the smallest number of bytes an instruction record can
// occupy (opcode and mask).
const MIN_RECORD_SIZE = 2

// Record is an instruction along with its location within a container.
type Record struct {
	ir.Instruction
	// Byte offset of the record within the container.
	Offset uint
	// Size of the record (in bytes).
	Size uint
}

// Decode parses a container into the program held in its instruction section.
// Any structural violation of the format (e.g. bad magic, truncated fields,
// unknown angle tags) is reported as an error wrapping ErrMalformed, in which
// case no partial program is returned.  Unknown opcodes are not errors.
func Decode(data []byte) (ir.Program, error) {
	var program ir.Program
	//
	_, records, err := DecodeRecords(data)
	if err != nil {
		return program, err
	}
	//
	program.Instructions = make([]ir.Instruction, len(records))
	//
	for i, record := range records {
		program.Instructions[i] = record.Instruction
	}
	//
	return program, nil
}

// DecodeRecords parses a container into its header and the records of its
// instruction section.
func DecodeRecords(data []byte) (Header, []Record, error) {
	var cursor = NewCursor(data)
	//
	header, err := ReadHeader(cursor)
	if err != nil {
		return header, nil, err
	}
	//
	records, err := readInstructionSection(cursor)
	if err != nil {
		return header, nil, err
	}
	//
	return header, records, nil
}

func readInstructionSection(cursor *Cursor) ([]Record, error) {
	// Check section tag
	if tag, err := cursor.ReadBytes(4); err != nil || !bytes.Equal(tag, INST[:]) {
		return nil, fmt.Errorf("%w: no instruction section", ErrMalformed)
	}
	//
	count, err := cursor.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("bad instruction count: %w", err)
	}
	// Don't trust the declared count for allocation
	records := make([]Record, 0, min(count, uint64(cursor.Remaining()/MIN_RECORD_SIZE)))
	//
	for k := uint64(0); k < count; k++ {
		offset := cursor.Offset()
		//
		insn, err := readInstruction(cursor, k)
		if err != nil {
			return nil, err
		}
		//
		records = append(records, Record{insn, offset, cursor.Offset() - offset})
	}
	//
	return records, nil
}

func readInstruction(cursor *Cursor, index uint64) (ir.Instruction, error) {
	var (
		insn   ir.Instruction
		offset = cursor.Offset()
		fail   = func(field string, err error) (ir.Instruction, error) {
			return insn, fmt.Errorf("instruction %d: %s: %w", index, field, err)
		}
	)
	//
	header, err := cursor.ReadBytes(MIN_RECORD_SIZE)
	if err != nil {
		return fail("truncated instruction header", err)
	}
	//
	insn.Opcode = ir.Opcode(header[0])
	mask := ir.Mask(header[1])
	//
	log.Debugf("idx=%d: op=0x%02X mask=0x%02X @%d", index, header[0], header[1], offset)
	// Operands
	if insn.A, err = readOperand(cursor, mask, ir.MASK_A); err != nil {
		return fail("bad a", err)
	} else if insn.B, err = readOperand(cursor, mask, ir.MASK_B); err != nil {
		return fail("bad b", err)
	} else if insn.C, err = readOperand(cursor, mask, ir.MASK_C); err != nil {
		return fail("bad c", err)
	}
	// Angle
	if mask&ir.MASK_ANGLE != 0 {
		var angle ir.Angle
		//
		tag, err := cursor.ReadU8()
		if err != nil {
			return fail("angle tag", err)
		}
		//
		switch ir.AngleKind(tag) {
		case ir.LITERAL:
			if angle.Value, err = cursor.ReadF32(); err != nil {
				return fail("angle f32", err)
			}
		case ir.PARAMETER:
			if angle.Ref, err = cursor.ReadUvarint(); err != nil {
				return fail("angle param_ref", err)
			}
		default:
			return fail("angle tag", fmt.Errorf("%w: unknown angle tag %d", ErrMalformed, tag))
		}
		//
		angle.Kind = ir.AngleKind(tag)
		insn.Angle = util.Some(angle)
	}
	// Aux
	if mask&ir.MASK_AUX != 0 {
		aux, err := cursor.ReadU32()
		if err != nil {
			return fail("aux", err)
		}
		//
		insn.Aux = util.Some(aux)
	}
	// Conditional literal
	if insn.Opcode.IsConditional() {
		imm8, err := cursor.ReadU8()
		if err != nil {
			return fail("if imm8", err)
		}
		//
		insn.Imm8 = util.Some(imm8)
	}
	//
	return insn, nil
}

func readOperand(cursor *Cursor, mask ir.Mask, bit ir.Mask) (util.Option[uint], error) {
	if mask&bit == 0 {
		return util.None[uint](), nil
	}
	//
	value, err := cursor.ReadUvarint()
	if err != nil {
		return util.None[uint](), err
	}
	//
	return util.Some(uint(value)), nil
}
