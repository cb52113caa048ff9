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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// QBIN is the file identifier at the start of every container.  This just helps
// us identify actual container files from corrupted (or unrelated) files.
var QBIN [4]byte = [4]byte{'Q', 'B', 'I', 'N'}

// INST is the tag identifying the instruction section.
var INST [4]byte = [4]byte{'I', 'N', 'S', 'T'}

// QBIN_VERSION gives the version of the container format written by this
// encoder.
const QBIN_VERSION uint16 = 1

// HEADER_SIZE is the size (in bytes) of the fixed header.  A container may
// declare a larger header, in which case the excess is padding.
const HEADER_SIZE uint32 = 20

// Header provides a structured header for the container format.
type Header struct {
	Identifier [4]byte
	Version    uint16
	Flags      uint16
	// Declared size of the header, including any padding.
	HeaderSize   uint32
	SectionCount uint32
	Reserved     uint32
}

// NewHeader constructs the header written by this encoder, which has exactly one
// section and no padding.
func NewHeader() Header {
	return Header{QBIN, QBIN_VERSION, 0, HEADER_SIZE, 1, 0}
}

// MarshalBinary converts the header into a sequence of bytes.  Observe that
// padding (if declared) is not written, and must be appended by the caller.
func (p *Header) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	// Write identifier
	buffer.Write(p.Identifier[:])
	// Write version & flags
	buffer.Write(binary.LittleEndian.AppendUint16(nil, p.Version))
	buffer.Write(binary.LittleEndian.AppendUint16(nil, p.Flags))
	// Write sizes
	buffer.Write(binary.LittleEndian.AppendUint32(nil, p.HeaderSize))
	buffer.Write(binary.LittleEndian.AppendUint32(nil, p.SectionCount))
	buffer.Write(binary.LittleEndian.AppendUint32(nil, p.Reserved))
	// Done
	return buffer.Bytes(), nil
}

// DecodeHeader reads and validates the header of a given container.
func DecodeHeader(data []byte) (Header, error) {
	return ReadHeader(NewCursor(data))
}

// ReadHeader reads and validates a header from the start of a container,
// leaving the cursor positioned immediately after the header (including any
// padding).
func ReadHeader(cursor *Cursor) (Header, error) {
	var (
		header Header
		ident  []byte
		err    error
	)
	//
	if cursor.Remaining() < uint(HEADER_SIZE) {
		return header, fmt.Errorf("%w: file too small for header (%d bytes)", ErrMalformed, cursor.Remaining())
	} else if ident, err = cursor.ReadBytes(4); err != nil {
		return header, err
	} else if !bytes.Equal(ident, QBIN[:]) {
		return header, fmt.Errorf("%w: bad magic (not QBIN)", ErrMalformed)
	}
	//
	copy(header.Identifier[:], ident)
	// The size check above guarantees the remaining fixed fields are present.
	header.Version, _ = cursor.ReadU16()
	header.Flags, _ = cursor.ReadU16()
	header.HeaderSize, _ = cursor.ReadU32()
	header.SectionCount, _ = cursor.ReadU32()
	header.Reserved, _ = cursor.ReadU32()
	//
	if header.HeaderSize < HEADER_SIZE {
		return header, fmt.Errorf("%w: header too small: %d", ErrMalformed, header.HeaderSize)
	} else if uint(header.HeaderSize) > uint(len(cursor.data)) {
		return header, fmt.Errorf("%w: header claims bigger than file: %d", ErrMalformed, header.HeaderSize)
	}
	// Skip any padding to land at the first section
	if err = cursor.Skip(uint(header.HeaderSize - HEADER_SIZE)); err != nil {
		return header, err
	}
	//
	log.Debugf("header: ver=%d flags=0x%04x header_size=%d sections=%d", header.Version, header.Flags,
		header.HeaderSize, header.SectionCount)
	//
	return header, nil
}
