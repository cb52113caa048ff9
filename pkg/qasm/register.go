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
)

// Register describes a named block of contiguous global indices.  For example,
// a declaration "qubit[3] a" following "qubit[2] q" gives a register for "a"
// with base 2 and size 3.
type Register struct {
	Base uint
	Size uint
}

// Index returns the global index corresponding to a given local index within
// this register.
func (r Register) Index(local uint) (uint, error) {
	if local >= r.Size {
		return 0, fmt.Errorf("index %d out of bounds (size %d)", local, r.Size)
	}
	//
	return r.Base + local, nil
}

// RegisterFile maps register names to their global index ranges.  Qubit and
// bit registers occupy separate namespaces, and each namespace allocates
// indices contiguously in declaration order.
type RegisterFile struct {
	qubits    map[string]Register
	bits      map[string]Register
	numQubits uint
	numBits   uint
}

// NewRegisterFile constructs an empty register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{make(map[string]Register), make(map[string]Register), 0, 0}
}

// DeclareQubits allocates a new qubit register of a given size.  If a qubit
// register of the same name already exists then the existing declaration is
// retained and false is returned.
func (p *RegisterFile) DeclareQubits(name string, size uint) bool {
	return declare(p.qubits, &p.numQubits, name, size)
}

// DeclareBits allocates a new bit register of a given size.  If a bit register
// of the same name already exists then the existing declaration is retained
// and false is returned.
func (p *RegisterFile) DeclareBits(name string, size uint) bool {
	return declare(p.bits, &p.numBits, name, size)
}

// Qubit resolves a reference "name[index]" to a global qubit index.
func (p *RegisterFile) Qubit(name string, index uint) (uint, error) {
	return resolve(p.qubits, "qubit", name, index)
}

// Bit resolves a reference "name[index]" to a global bit index.
func (p *RegisterFile) Bit(name string, index uint) (uint, error) {
	return resolve(p.bits, "bit", name, index)
}

// QubitRegister returns the qubit register of a given name (if it exists).
func (p *RegisterFile) QubitRegister(name string) (Register, bool) {
	r, ok := p.qubits[name]
	return r, ok
}

// BitRegister returns the bit register of a given name (if it exists).
func (p *RegisterFile) BitRegister(name string) (Register, bool) {
	r, ok := p.bits[name]
	return r, ok
}

// NumQubits returns the total number of qubits declared.
func (p *RegisterFile) NumQubits() uint {
	return p.numQubits
}

// NumBits returns the total number of bits declared.
func (p *RegisterFile) NumBits() uint {
	return p.numBits
}

func declare(registers map[string]Register, total *uint, name string, size uint) bool {
	if _, ok := registers[name]; ok {
		return false
	}
	//
	registers[name] = Register{*total, size}
	*total += size
	//
	return true
}

func resolve(registers map[string]Register, kind string, name string, index uint) (uint, error) {
	if r, ok := registers[name]; !ok {
		return 0, fmt.Errorf("unknown %s register %s", kind, name)
	} else if global, err := r.Index(index); err != nil {
		return 0, fmt.Errorf("%s[%d]: %w", name, index, err)
	} else {
		return global, nil
	}
}
