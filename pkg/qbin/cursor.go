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
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrMalformed is the root of all structural failures reported when reading a
// container.  Callers can use errors.Is to distinguish these from other errors.
var ErrMalformed = errors.New("malformed qbin file")

// MAX_VARINT_LEN is the maximum number of bytes a 64bit varint can occupy.
const MAX_VARINT_LEN = binary.MaxVarintLen64

// Cursor is a read position within a byte buffer.  Every read is checked
// against the end of the buffer before it is performed, and fails with an error
// wrapping ErrMalformed (rather than panicking) when insufficient bytes remain.
// A failed read does not advance the cursor.
type Cursor struct {
	data []byte
	pos  uint
}

// NewCursor constructs a cursor positioned at the start of the given buffer.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data, 0}
}

// Offset returns the current read position.
func (p *Cursor) Offset() uint {
	return p.pos
}

// Remaining returns the number of unread bytes.
func (p *Cursor) Remaining() uint {
	return uint(len(p.data)) - p.pos
}

// Skip advances the cursor by n bytes.
func (p *Cursor) Skip(n uint) error {
	if err := p.require(n); err != nil {
		return err
	}
	//
	p.pos += n
	//
	return nil
}

// ReadBytes reads the next n bytes.  The returned slice aliases the underlying
// buffer.
func (p *Cursor) ReadBytes(n uint) ([]byte, error) {
	if err := p.require(n); err != nil {
		return nil, err
	}
	//
	bytes := p.data[p.pos : p.pos+n]
	p.pos += n
	//
	return bytes, nil
}

// ReadU8 reads a single byte.
func (p *Cursor) ReadU8() (uint8, error) {
	bytes, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	//
	return bytes[0], nil
}

// ReadU16 reads a 16bit little-endian unsigned integer.
func (p *Cursor) ReadU16() (uint16, error) {
	bytes, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	//
	return binary.LittleEndian.Uint16(bytes), nil
}

// ReadU32 reads a 32bit little-endian unsigned integer.
func (p *Cursor) ReadU32() (uint32, error) {
	bytes, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	//
	return binary.LittleEndian.Uint32(bytes), nil
}

// ReadF32 reads a 32bit little-endian IEEE-754 float.
func (p *Cursor) ReadF32() (float32, error) {
	bits, err := p.ReadU32()
	if err != nil {
		return 0, err
	}
	//
	return math.Float32frombits(bits), nil
}

// ReadUvarint reads an unsigned base-128 varint (least-significant group
// first, high bit set on all but the final byte).  Encodings which run past the
// end of the buffer, or which overflow 64 bits, are rejected.
func (p *Cursor) ReadUvarint() (uint64, error) {
	value, n := binary.Uvarint(p.data[p.pos:])
	//
	switch {
	case n == 0:
		return 0, fmt.Errorf("%w: unterminated varint at offset %d", ErrMalformed, p.pos)
	case n < 0:
		return 0, fmt.Errorf("%w: varint overflow at offset %d", ErrMalformed, p.pos)
	}
	//
	p.pos += uint(n)
	//
	return value, nil
}

func (p *Cursor) require(n uint) error {
	if n > p.Remaining() {
		return fmt.Errorf("%w: need %d byte(s) at offset %d, but only %d remain", ErrMalformed, n, p.pos,
			p.Remaining())
	}
	//
	return nil
}
