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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/consensys/go-qbin/pkg/ir"
)

// Describes the shape of a gate which can be emitted directly.
type gateShape struct {
	opcode ir.Opcode
	// Number of qubit operands
	qubits int
	// Indicates whether an angle is required
	angle bool
}

// Gates which can be emitted directly, indexed by lower case name.  The
// identity gate is absent, since it emits nothing.
var gates = map[string]gateShape{
	"x":     {ir.X, 1, false},
	"y":     {ir.Y, 1, false},
	"z":     {ir.Z, 1, false},
	"h":     {ir.H, 1, false},
	"s":     {ir.S, 1, false},
	"sdg":   {ir.SDG, 1, false},
	"t":     {ir.T, 1, false},
	"tdg":   {ir.TDG, 1, false},
	"sx":    {ir.SX, 1, false},
	"sxdg":  {ir.SXDG, 1, false},
	"rx":    {ir.RX, 1, true},
	"ry":    {ir.RY, 1, true},
	"rz":    {ir.RZ, 1, true},
	"phase": {ir.PHASE, 1, true},
	"p":     {ir.PHASE, 1, true},
	"cx":    {ir.CX, 2, false},
	"cnot":  {ir.CX, 2, false},
	"cz":    {ir.CZ, 2, false},
	"swap":  {ir.SWAP, 2, false},
}

// Emit instructions for all canonical statements, recording diagnostics for
// those which cannot be resolved.
func (p *frontend) emitAll(canonicals []Canonical) ir.Program {
	var program ir.Program
	//
	for _, c := range canonicals {
		if insns, err := p.emit(c); err != nil {
			p.report(c.Source, err)
		} else {
			program.Add(insns...)
		}
	}
	//
	return program
}

// Emit instructions for a canonical statement.  A conditional is emitted as a
// unit: if any part of it cannot be resolved, then nothing is emitted.
func (p *frontend) emit(c Canonical) ([]ir.Instruction, error) {
	if !c.Conditional {
		return p.emitStatement(c.Text)
	}
	//
	open, err := p.emitCondition(c.Text)
	if err != nil {
		return nil, err
	}
	//
	insns := []ir.Instruction{open}
	//
	for _, stmt := range c.Body {
		body, err := p.emitStatement(stmt)
		if err != nil {
			return nil, fmt.Errorf("conditional body: %w", err)
		}
		//
		insns = append(insns, body...)
	}
	//
	return append(insns, ir.NewEndIf()), nil
}

// Emit the opening instruction for a condition of the form "c[k] == v" or
// "c[k] != v".  A single-bit register can also be compared without an index.
func (p *frontend) emitCondition(condition string) (ir.Instruction, error) {
	var (
		parser = NewParser(condition)
		opcode ir.Opcode
	)
	//
	bit, err := p.parseBit(parser)
	if err != nil {
		return ir.Instruction{}, err
	}
	//
	switch {
	case parser.match(EQUALS_EQUALS):
		opcode = ir.IF_EQ
	case parser.match(NOT_EQUALS):
		opcode = ir.IF_NEQ
	default:
		return ir.Instruction{}, errors.New("missing comparison operator")
	}
	//
	token, err := parser.expect(NUMBER)
	if err != nil {
		return ir.Instruction{}, err
	}
	//
	literal, err := strconv.ParseUint(parser.string(token), 10, 64)
	if err != nil {
		return ir.Instruction{}, fmt.Errorf("invalid literal %s", parser.string(token))
	} else if err := parser.expectEnd(); err != nil {
		return ir.Instruction{}, err
	}
	//
	return ir.NewIf(opcode, uint32(bit), uint8(literal&0xff)), nil
}

// Parse and resolve a bit reference "c[k]", or "c" for a single-bit register.
func (p *frontend) parseBit(parser *Parser) (uint, error) {
	name, err := parser.expect(IDENTIFIER)
	if err != nil {
		return 0, err
	}
	//
	if !parser.follows(LSQUARE) {
		if r, ok := p.registers.BitRegister(parser.string(name)); ok && r.Size != 1 {
			return 0, fmt.Errorf("cannot compare multi-bit register %s", parser.string(name))
		}
		//
		return checkBit(p.registers.Bit(parser.string(name), 0))
	}
	//
	index, err := parser.parseIndex()
	if err != nil {
		return 0, err
	}
	//
	return checkBit(p.registers.Bit(parser.string(name), index))
}

// Classical bits are encoded in a 32-bit field, hence any bit beyond this
// cannot be represented.
func checkBit(bit uint, err error) (uint, error) {
	if err == nil && bit > math.MaxUint32 {
		return 0, fmt.Errorf("bit index %d exceeds encodable range", bit)
	}
	//
	return bit, err
}

// Parse and resolve a qubit reference "q[k]".
func (p *frontend) parseQubit(parser *Parser) (uint, error) {
	name, index, err := parser.parseReference()
	if err != nil {
		return 0, err
	}
	//
	return p.registers.Qubit(name, index)
}

// Emit instructions for a canonical (non-conditional) statement.  This emits
// at most one instruction.
func (p *frontend) emitStatement(stmt string) ([]ir.Instruction, error) {
	var parser = NewParser(stmt)
	//
	if !parser.follows(IDENTIFIER) {
		return nil, errors.New("unrecognised statement")
	}
	// Measurement (i.e. an assignment "c[k] = ...")
	if second := parser.tokens[1].Kind; second == LSQUARE || second == EQUALS {
		return p.emitMeasure(parser)
	}
	//
	c, ok := parseCall(stmt)
	if !ok {
		return nil, errors.New("unrecognised statement")
	}
	//
	name := strings.ToLower(c.name)
	shape, ok := gates[name]
	//
	switch {
	case name == "id" && len(c.args) == 0 && len(c.operands) == 1:
		_, err := p.resolveQubit(c.operands[0])
		return nil, err
	case !ok:
		return nil, fmt.Errorf("unsupported gate %s", c.name)
	case len(c.operands) != shape.qubits:
		return nil, fmt.Errorf("gate %s expects %d qubit(s)", name, shape.qubits)
	case shape.angle && len(c.args) != 1:
		return nil, fmt.Errorf("gate %s expects one angle", name)
	case !shape.angle && len(c.args) != 0:
		return nil, fmt.Errorf("gate %s does not accept angles", name)
	}
	//
	qubits := make([]uint, len(c.operands))
	//
	for i, operand := range c.operands {
		qubit, err := p.resolveQubit(operand)
		if err != nil {
			return nil, err
		}
		//
		qubits[i] = qubit
	}
	//
	if shape.angle {
		angle := float32(Evaluate(c.args[0]))
		return []ir.Instruction{ir.NewRotation(shape.opcode, angle, qubits[0])}, nil
	}
	//
	return []ir.Instruction{ir.NewGate(shape.opcode, qubits...)}, nil
}

// Emit a measurement of the form "c[j] = measure q[i]".
func (p *frontend) emitMeasure(parser *Parser) ([]ir.Instruction, error) {
	bit, err := p.parseBit(parser)
	if err != nil {
		return nil, err
	} else if _, err := parser.expect(EQUALS); err != nil {
		return nil, err
	} else if !parser.matchKeyword("measure") {
		return nil, errors.New("unrecognised statement")
	}
	//
	qubit, err := p.parseQubit(parser)
	if err != nil {
		return nil, err
	} else if err := parser.expectEnd(); err != nil {
		return nil, err
	}
	//
	return []ir.Instruction{ir.NewMeasure(qubit, uint32(bit))}, nil
}

// Resolve a qubit operand, which must be exactly of the form "q[k]".
func (p *frontend) resolveQubit(operand string) (uint, error) {
	var parser = NewParser(operand)
	//
	qubit, err := p.parseQubit(parser)
	if err != nil {
		return 0, err
	} else if err := parser.expectEnd(); err != nil {
		return 0, err
	}
	//
	return qubit, nil
}
