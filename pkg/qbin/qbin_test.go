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
	"errors"
	"testing"

	"github.com/consensys/go-qbin/pkg/ir"
	"github.com/consensys/go-qbin/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headerBytes = []byte{
	'Q', 'B', 'I', 'N',
	0x01, 0x00, // version
	0x00, 0x00, // flags
	0x14, 0x00, 0x00, 0x00, // header size
	0x01, 0x00, 0x00, 0x00, // section count
	0x00, 0x00, 0x00, 0x00, // reserved
}

func sampleProgram() ir.Program {
	return ir.NewProgram(
		ir.NewGate(ir.H, 0),
		ir.NewRotation(ir.RZ, 1.0, 1),
		ir.NewGate(ir.CX, 0, 1),
		ir.NewMeasure(1, 0),
		ir.NewIf(ir.IF_EQ, 0, 1),
		ir.NewGate(ir.X, 0),
		ir.NewEndIf(),
	)
}

func TestEncode_Empty(t *testing.T) {
	expected := append(append([]byte{}, headerBytes...), 'I', 'N', 'S', 'T', 0x00)
	//
	assert.Equal(t, expected, Encode(ir.NewProgram()))
}

func TestEncode_Layout(t *testing.T) {
	expected := append([]byte{}, headerBytes...)
	expected = append(expected, 'I', 'N', 'S', 'T', 0x07)
	expected = append(expected,
		0x04, 0x01, 0x00, // h q[0]
		0x0D, 0x09, 0x01, 0x00, 0x00, 0x00, 0x80, 0x3F, // rz(1.0) q[1]
		0x10, 0x03, 0x00, 0x01, // cx q[0], q[1]
		0x30, 0x81, 0x01, 0x00, 0x00, 0x00, 0x00, // c[0] = measure q[1]
		0x81, 0x80, 0x00, 0x00, 0x00, 0x00, 0x01, // if (c[0] == 1)
		0x01, 0x01, 0x00, // x q[0]
		0x8F, 0x00, // endif
	)
	//
	assert.Equal(t, expected, Encode(sampleProgram()))
}

func TestEncode_LargeOperands(t *testing.T) {
	bytes := Encode(ir.NewProgram(ir.NewGate(ir.SWAP, 127, 300)))
	// 127 fits in one byte, 300 = 0b10_0101100 needs two
	assert.Equal(t, []byte{0x13, 0x03, 0x7F, 0xAC, 0x02}, bytes[25:])
}

func TestRoundTrip(t *testing.T) {
	program := sampleProgram()
	decoded, err := Decode(Encode(program))
	//
	require.NoError(t, err)
	assert.Equal(t, program, decoded)
	assert.Equal(t, uint(2), decoded.QubitCount())
	assert.Equal(t, uint(1), decoded.BitCount())
}

func TestRoundTrip_AllGates(t *testing.T) {
	var program ir.Program
	//
	for _, op := range []ir.Opcode{ir.X, ir.Y, ir.Z, ir.H, ir.S, ir.SDG, ir.T, ir.TDG, ir.SX, ir.SXDG} {
		program.Add(ir.NewGate(op, 3))
	}
	//
	for i, op := range []ir.Opcode{ir.RX, ir.RY, ir.RZ, ir.PHASE} {
		program.Add(ir.NewRotation(op, float32(i)*0.3-1.1, uint(i)))
	}
	//
	for _, op := range []ir.Opcode{ir.CX, ir.CZ, ir.SWAP} {
		program.Add(ir.NewGate(op, 5, 1000))
	}
	//
	program.Add(ir.NewMeasure(1000, 70000))
	//
	decoded, err := Decode(Encode(program))
	require.NoError(t, err)
	assert.Equal(t, program, decoded)
}

func TestDecode_ParameterReference(t *testing.T) {
	var insn = ir.NewGate(ir.RX, 2)
	//
	insn.Angle = util.Some(ir.ParameterRef(300))
	decoded, err := Decode(Encode(ir.NewProgram(insn)))
	//
	require.NoError(t, err)
	require.Equal(t, uint(1), decoded.Len())
	//
	angle := decoded.Instructions[0].Angle.Unwrap()
	assert.Equal(t, ir.PARAMETER, angle.Kind)
	assert.Equal(t, float32(0), angle.Value)
	assert.Equal(t, uint64(300), angle.Ref)
}

func TestDecode_HeaderPadding(t *testing.T) {
	var data = append([]byte{}, headerBytes...)
	// Declare 24 byte header
	data[8] = 24
	data = append(data, 0xEE, 0xEE, 0xEE, 0xEE)
	data = append(data, 'I', 'N', 'S', 'T', 0x01, 0x04, 0x01, 0x02)
	//
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, ir.NewProgram(ir.NewGate(ir.H, 2)), decoded)
}

func TestDecode_UnknownOpcode(t *testing.T) {
	var data = append([]byte{}, headerBytes...)
	//
	data = append(data, 'I', 'N', 'S', 'T', 0x02, 0x7E, 0x01, 0x05, 0x01, 0x01, 0x06)
	//
	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint(2), decoded.Len())
	assert.Equal(t, ir.Opcode(0x7E), decoded.Instructions[0].Opcode)
	assert.False(t, decoded.Instructions[0].Opcode.IsKnown())
	assert.Equal(t, ir.NewGate(ir.X, 6), decoded.Instructions[1])
}

func TestDecode_Errors(t *testing.T) {
	var (
		inst    = append(append([]byte{}, headerBytes...), 'I', 'N', 'S', 'T')
		badSize = append([]byte{}, inst...)
		bigSize = append([]byte{}, inst...)
	)
	//
	badSize[8] = 19
	bigSize[8] = 200
	//
	tests := []struct {
		name    string
		data    []byte
		message string
	}{
		{"too small", headerBytes[:19], "file too small for header"},
		{"bad magic", append([]byte("QBIX"), inst[4:]...), "bad magic"},
		{"header undersized", badSize, "header too small: 19"},
		{"header oversized", bigSize, "header claims bigger than file: 200"},
		{"no section", append(append([]byte{}, headerBytes...), 'S', 'T', 'R', 'S', 0x00), "no instruction section"},
		{"section missing", headerBytes, "no instruction section"},
		{"no count", inst, "bad instruction count"},
		{"truncated record", append(append([]byte{}, inst...), 0x01, 0x04), "instruction 0: truncated instruction header"},
		{"truncated operand", append(append([]byte{}, inst...), 0x01, 0x04, 0x01, 0x80), "instruction 0: bad a"},
		{"unknown angle tag", append(append([]byte{}, inst...), 0x01, 0x0B, 0x09, 0x00, 0x07), "unknown angle tag 7"},
		{"truncated angle", append(append([]byte{}, inst...), 0x01, 0x0B, 0x09, 0x00, 0x00, 0x01), "angle f32"},
		{"truncated aux", append(append([]byte{}, inst...), 0x01, 0x30, 0x81, 0x00, 0x01, 0x00), "instruction 0: aux"},
		{"missing imm8", append(append([]byte{}, inst...), 0x02, 0x04, 0x01, 0x00, 0x81, 0x80, 0, 0, 0, 0),
			"instruction 1: if imm8"},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			//
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCursor_Varint(t *testing.T) {
	cursor := NewCursor([]byte{0xE5, 0x8E, 0x26, 0xFF})
	//
	value, err := cursor.ReadUvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(624485), value)
	assert.Equal(t, uint(3), cursor.Offset())
	// Unterminated
	_, err = cursor.ReadUvarint()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, uint(3), cursor.Offset())
}

func TestCursor_VarintOverflow(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	_, err := NewCursor(data).ReadUvarint()
	//
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCursor_Bounds(t *testing.T) {
	cursor := NewCursor([]byte{1, 2, 3})
	//
	_, err := cursor.ReadU32()
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, uint(0), cursor.Offset())
	//
	v, err := cursor.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)
	assert.Error(t, cursor.Skip(2))
	assert.NoError(t, cursor.Skip(1))
	assert.Equal(t, uint(0), cursor.Remaining())
}

func TestDecodeRecords_Offsets(t *testing.T) {
	header, records, err := DecodeRecords(Encode(sampleProgram()))
	//
	require.NoError(t, err)
	assert.Equal(t, NewHeader(), header)
	require.Len(t, records, 7)
	// h q[0]
	assert.Equal(t, uint(25), records[0].Offset)
	assert.Equal(t, uint(3), records[0].Size)
	// rz(1.0) q[1]
	assert.Equal(t, uint(28), records[1].Offset)
	assert.Equal(t, uint(8), records[1].Size)
	assert.Equal(t, ir.RZ, records[1].Opcode)
	// endif
	assert.Equal(t, uint(2), records[6].Size)
}

func TestDecodeHeader(t *testing.T) {
	header, err := DecodeHeader(headerBytes)
	//
	require.NoError(t, err)
	assert.Equal(t, uint16(QBIN_VERSION), header.Version)
	assert.Equal(t, uint32(1), header.SectionCount)
	//
	_, err = DecodeHeader(headerBytes[:10])
	assert.True(t, errors.Is(err, ErrMalformed))
}
