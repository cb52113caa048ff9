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
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-qbin/pkg/ir"
	"github.com/consensys/go-qbin/pkg/util/source"
	"github.com/consensys/go-qbin/pkg/util/source/lex"
)

// MAX_EXPANSION_DEPTH bounds the nesting of gate macro expansion.  This
// prevents self-recursive (or mutually recursive) gate definitions from
// expanding forever.
const MAX_EXPANSION_DEPTH = 64

// MAX_EXPANDED_STATEMENTS bounds the number of statements visited whilst
// expanding a single top-level statement.  Without this, a chain of gates each
// calling the previous one twice grows exponentially within the depth bound.
const MAX_EXPANDED_STATEMENTS = 1 << 16

// Parse a QASM source file into a program.  Parsing proceeds in three passes
// over the statements of the file: firstly, register declarations and gate
// definitions are collected; secondly, gate macros are expanded and statements
// are rewritten into canonical form; finally, register references are resolved
// and instructions emitted.  Parsing never fails.  Instead, any statement which
// cannot be compiled is dropped and reported as a diagnostic.
func Parse(srcfile *source.File) (ir.Program, []Diagnostic) {
	var (
		frontend   = newFrontend(srcfile)
		statements = Split(srcfile.Contents())
	)
	// Pass 1
	statements = frontend.declare(statements)
	// Pass 2
	canonicals := frontend.canonicaliseAll(statements)
	// Pass 3
	program := frontend.emitAll(canonicals)
	//
	return program, frontend.diagnostics
}

// ParseString is a convenience wrapper around Parse for a given string.
func ParseString(text string) (ir.Program, []Diagnostic) {
	return Parse(source.NewSourceFile("<input>", []byte(text)))
}

// Holds state local to a single parse.
type frontend struct {
	srcfile     *source.File
	registers   *RegisterFile
	macros      *MacroTable
	diagnostics []Diagnostic
	// statements expanded for the current top-level statement
	expansions uint
}

func newFrontend(srcfile *source.File) *frontend {
	return &frontend{srcfile, NewRegisterFile(), NewMacroTable(), nil, 0}
}

// Record that a given statement was dropped.
func (p *frontend) report(stmt Statement, err error) {
	syntaxError := p.srcfile.SyntaxError(stmt.Span, err.Error())
	p.diagnostics = append(p.diagnostics, Diagnostic{*syntaxError, stmt.Text})
}

// ============================================================================
// Pass 1: declarations
// ============================================================================

// Process all register declarations and gate definitions, returning those
// statements which remain.
func (p *frontend) declare(statements []Statement) []Statement {
	var remaining []Statement
	//
	for _, stmt := range statements {
		if handled, err := p.declareStatement(stmt.Text); err != nil {
			p.report(stmt, err)
		} else if !handled {
			remaining = append(remaining, stmt)
		}
	}
	//
	return remaining
}

// Process a single statement, returning true if it was a declaration (or
// otherwise should not be considered further).
func (p *frontend) declareStatement(text string) (bool, error) {
	var parser = NewParser(text)
	//
	switch strings.ToLower(parser.string(parser.lookahead())) {
	case "openqasm", "include":
		return true, nil
	case "qreg":
		return true, p.parseSizeSuffixDeclaration(parser, p.registers.DeclareQubits)
	case "creg":
		return true, p.parseSizeSuffixDeclaration(parser, p.registers.DeclareBits)
	case "qubit":
		return true, p.parseSizePrefixDeclaration(parser, p.registers.DeclareQubits)
	case "bit":
		return true, p.parseSizePrefixDeclaration(parser, p.registers.DeclareBits)
	case "gate":
		return true, p.parseGateDefinition(parser)
	}
	//
	return false, nil
}

// Parse a declaration of the form "qreg name[n]".
func (p *frontend) parseSizeSuffixDeclaration(parser *Parser, declare func(string, uint) bool) error {
	parser.next()
	//
	name, err := parser.expect(IDENTIFIER)
	if err != nil {
		return err
	}
	//
	size, err := parser.parseIndex()
	if err != nil {
		return err
	} else if err := parser.expectEnd(); err != nil {
		return err
	}
	//
	return declareRegister(declare, parser.string(name), size)
}

// Parse a declaration of the form "qubit[n] name" or "qubit name".
func (p *frontend) parseSizePrefixDeclaration(parser *Parser, declare func(string, uint) bool) error {
	var (
		size uint = 1
		err  error
	)
	//
	parser.next()
	//
	if parser.follows(LSQUARE) {
		if size, err = parser.parseIndex(); err != nil {
			return err
		}
	}
	//
	name, err := parser.expect(IDENTIFIER)
	if err != nil {
		return err
	} else if err := parser.expectEnd(); err != nil {
		return err
	}
	//
	return declareRegister(declare, parser.string(name), size)
}

func declareRegister(declare func(string, uint) bool, name string, size uint) error {
	if !declare(name, size) {
		return fmt.Errorf("register %s already declared", name)
	}
	//
	return nil
}

// Parse a gate definition of the form "gate name(p1, ...) q1, ... { body }".
func (p *frontend) parseGateDefinition(parser *Parser) error {
	var gate GateDefinition
	//
	parser.next()
	//
	name, err := parser.expect(IDENTIFIER)
	if err != nil {
		return err
	}
	//
	gate.Name = parser.string(name)
	// Angle parameters (optional)
	if parser.match(LBRACE) && !parser.match(RBRACE) {
		if gate.Params, err = parser.parseIdentifierList(); err != nil {
			return err
		} else if _, err = parser.expect(RBRACE); err != nil {
			return err
		}
	}
	// Qubit parameters
	if gate.Qubits, err = parser.parseIdentifierList(); err != nil {
		return err
	}
	// Body
	body, err := parser.parseBlock()
	if err != nil {
		return err
	} else if err := parser.expectEnd(); err != nil {
		return err
	}
	//
	gate.Body = SplitString(body)
	//
	if !p.macros.Define(gate) {
		return fmt.Errorf("gate %s already defined", gate.Name)
	}
	//
	return nil
}

// ============================================================================
// Parser
// ============================================================================

// Parser provides the token-level machinery for parsing a single statement.
type Parser struct {
	text   []rune
	tokens []lex.Token
	index  int
}

// NewParser constructs a parser for a given statement.  Whitespace and
// comments are discarded.
func NewParser(text string) *Parser {
	runes := []rune(text)
	return &Parser{runes, lexCode(runes), 0}
}

// Parse a register index (or size) of the form "[n]".
func (p *Parser) parseIndex() (uint, error) {
	if _, err := p.expect(LSQUARE); err != nil {
		return 0, err
	}
	//
	token, err := p.expect(NUMBER)
	if err != nil {
		return 0, err
	}
	//
	index, err := strconv.ParseUint(p.string(token), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %s", p.string(token))
	} else if _, err := p.expect(RSQUARE); err != nil {
		return 0, err
	}
	//
	return uint(index), nil
}

// Parse a reference of the form "name[n]".
func (p *Parser) parseReference() (string, uint, error) {
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return "", 0, err
	}
	//
	index, err := p.parseIndex()
	//
	return p.string(name), index, err
}

// Parse a non-empty, comma-separated list of identifiers.
func (p *Parser) parseIdentifierList() ([]string, error) {
	var names []string
	//
	for {
		name, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		//
		names = append(names, p.string(name))
		//
		if !p.match(COMMA) {
			return names, nil
		}
	}
}

// Parse a bracketed group, such as "( ... )" or "{ ... }", returning the list
// of items it contains, split at top-level commas.  The opening bracket must be
// the next token.
func (p *Parser) parseGroup(open uint, close uint) ([]string, error) {
	var (
		items []string
		depth = 0
	)
	//
	start, err := p.expect(open)
	if err != nil {
		return nil, err
	}
	//
	from := start.Span.End()
	//
	for {
		token := p.next()
		//
		switch {
		case token.Kind == END_OF:
			return nil, errors.New("unbalanced brackets")
		case token.Kind == open:
			depth++
		case token.Kind == close && depth > 0:
			depth--
		case token.Kind == close:
			items = append(items, p.slice(from, token.Span.Start()))
			// Empty group
			if len(items) == 1 && items[0] == "" {
				return nil, nil
			}
			//
			return items, nil
		case token.Kind == COMMA && depth == 0:
			items = append(items, p.slice(from, token.Span.Start()))
			from = token.Span.End()
		}
	}
}

// Parse a block "{ ... }" which must extend to the end of the statement,
// returning the text within.
func (p *Parser) parseBlock() (string, error) {
	start, err := p.expect(LCURLY)
	if err != nil {
		return "", err
	}
	// Closing brace must be final token
	last := len(p.tokens) - 2
	if last < p.index || p.tokens[last].Kind != RCURLY {
		return "", errors.New("unterminated block")
	}
	//
	body := p.slice(start.Span.End(), p.tokens[last].Span.Start())
	p.index = last + 1
	//
	return body, nil
}

// Parse the remainder of the statement as a comma-separated list of operands.
func (p *Parser) parseOperands() []string {
	var (
		operands []string
		depth    = 0
		start    = p.position()
	)
	//
	if p.follows(END_OF) {
		return nil
	}
	//
	for {
		token := p.next()
		//
		switch token.Kind {
		case END_OF:
			return append(operands, p.slice(start, token.Span.Start()))
		case LBRACE, LSQUARE, LCURLY:
			depth++
		case RBRACE, RSQUARE, RCURLY:
			depth = max(0, depth-1)
		case COMMA:
			if depth == 0 {
				operands = append(operands, p.slice(start, token.Span.Start()))
				start = token.Span.End()
			}
		}
	}
}

// Rest returns the remaining text of the statement.
func (p *Parser) rest() string {
	return p.slice(p.position(), len(p.text))
}

// Position returns the offset of the next token within the statement.
func (p *Parser) position() int {
	return p.tokens[p.index].Span.Start()
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return token.Text(p.text)
}

// Get the (trimmed) text between two positions.
func (p *Parser) slice(start int, end int) string {
	return strings.TrimSpace(string(p.text[start:end]))
}

// Lookahead returns the next token.  This must exist because END_OF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Next returns the next token and advances, though never beyond END_OF.
func (p *Parser) next() lex.Token {
	token := p.lookahead()
	//
	if token.Kind != END_OF {
		p.index++
	}
	//
	return token
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, error) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.unexpected(lookahead)
	}
	//
	p.index++
	//
	return lookahead, nil
}

// ExpectEnd returns an error if the statement has not been fully consumed.
func (p *Parser) expectEnd() error {
	if lookahead := p.lookahead(); lookahead.Kind != END_OF {
		return p.unexpected(lookahead)
	}
	//
	return nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// MatchKeyword attempts to match an identifier (ignoring case).
func (p *Parser) matchKeyword(keyword string) bool {
	if lookahead := p.lookahead(); lookahead.Kind == IDENTIFIER && strings.EqualFold(p.string(lookahead), keyword) {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) unexpected(token lex.Token) error {
	if token.Kind == END_OF {
		return errors.New("unexpected end of statement")
	}
	//
	return fmt.Errorf("unexpected %q", p.string(token))
}
