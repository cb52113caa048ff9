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
	"maps"
	"slices"
	"strings"

	"github.com/consensys/go-qbin/pkg/util/source/lex"
)

// Canonical represents a statement after macro expansion, but before register
// references are resolved.  A conditional statement is kept as a unit, where
// Text holds the condition and Body holds the canonical statements it guards.
type Canonical struct {
	// Source statement from which this was derived
	Source Statement
	// Canonical text (or condition for a conditional)
	Text string
	// Body of a conditional (otherwise empty)
	Body []string
	// Indicates whether this is a conditional
	Conditional bool
}

// Bindings maps formal parameter names to the text of their actual arguments.
// Bindings are never modified once constructed.
type Bindings map[string]string

// Bind returns a copy of these bindings extended with a new binding.
func (b Bindings) Bind(formal string, actual string) Bindings {
	nb := maps.Clone(b)
	//
	if nb == nil {
		nb = make(Bindings)
	}
	//
	nb[formal] = actual
	//
	return nb
}

// A call of the form "name(args) operands".
type call struct {
	name     string
	args     []string
	operands []string
}

// Canonicalise all statements, recording diagnostics for those which cannot be
// expanded.
func (p *frontend) canonicaliseAll(statements []Statement) []Canonical {
	var canonicals []Canonical
	//
	for _, stmt := range statements {
		if cs, err := p.canonicalise(stmt); err != nil {
			p.report(stmt, err)
		} else {
			canonicals = append(canonicals, cs...)
		}
	}
	//
	return canonicals
}

// Canonicalise a single top-level statement.  Conditionals are kept as a unit,
// with their bodies canonicalised in place.
func (p *frontend) canonicalise(stmt Statement) ([]Canonical, error) {
	var canonicals []Canonical
	// Each top-level statement has its own budget
	p.expansions = 0
	//
	if condition, body, ok, err := splitConditional(stmt.Text); err != nil {
		return nil, err
	} else if ok {
		var stmts []string
		//
		for _, s := range SplitString(body) {
			expanded, err := p.expand(s, nil, 0)
			if err != nil {
				return nil, err
			}
			//
			stmts = append(stmts, expanded...)
		}
		//
		return []Canonical{{stmt, condition, stmts, true}}, nil
	}
	//
	expanded, err := p.expand(stmt.Text, nil, 0)
	if err != nil {
		return nil, err
	}
	//
	for _, s := range expanded {
		canonicals = append(canonicals, Canonical{stmt, s, nil, false})
	}
	//
	return canonicals, nil
}

// Expand a statement under a given set of bindings.  This substitutes actual
// arguments for formal parameters, normalises measurements and recursively
// expands calls to gate macros.  Statements which are not recognised are
// returned unchanged.
func (p *frontend) expand(stmt string, bindings Bindings, depth uint) ([]string, error) {
	if depth >= MAX_EXPANSION_DEPTH {
		return nil, errors.New("gate expansion too deep")
	} else if p.expansions >= MAX_EXPANDED_STATEMENTS {
		return nil, errors.New("gate expansion too large")
	}
	//
	p.expansions++
	//
	stmt = substitute(stmt, bindings)
	//
	if measure, ok := normaliseMeasure(stmt); ok {
		return []string{measure}, nil
	}
	//
	c, ok := parseCall(stmt)
	//
	if !ok {
		return []string{stmt}, nil
	} else if gate, ok := p.macros.Lookup(c.name); ok {
		return p.instantiate(gate, c, depth)
	}
	//
	switch strings.ToLower(c.name) {
	case "u", "u3":
		if len(c.args) == 3 && len(c.operands) == 1 {
			theta, phi, lambda, q := c.args[0], c.args[1], c.args[2], c.operands[0]
			//
			return []string{
				fmt.Sprintf("rz(%s) %s", phi, q),
				fmt.Sprintf("ry(%s) %s", theta, q),
				fmt.Sprintf("rz(%s) %s", lambda, q),
			}, nil
		}
	case "barrier", "reset":
		return nil, nil
	}
	//
	return []string{stmt}, nil
}

// Instantiate the body of a gate macro for a given call.  Actuals are bound to
// formals by position, where angle actuals are parenthesised so their
// precedence is preserved.  Missing or extra actuals are simply not bound.
func (p *frontend) instantiate(gate *GateDefinition, c call, depth uint) ([]string, error) {
	var (
		bindings Bindings
		stmts    []string
	)
	//
	for i, formal := range gate.Qubits {
		if i < len(c.operands) {
			bindings = bindings.Bind(formal, c.operands[i])
		}
	}
	//
	for i, formal := range gate.Params {
		if i < len(c.args) {
			bindings = bindings.Bind(formal, fmt.Sprintf("(%s)", c.args[i]))
		}
	}
	//
	for _, body := range gate.Body {
		expanded, err := p.expand(body, bindings, depth+1)
		if err != nil {
			return nil, err
		}
		//
		stmts = append(stmts, expanded...)
	}
	//
	return stmts, nil
}

// Substitute identifiers bound to actual arguments.  The substitution is
// token-based, hence only whole identifiers are replaced.  The name of the gate
// being called is never replaced, even when a formal shares it.
func substitute(stmt string, bindings Bindings) string {
	if len(bindings) == 0 {
		return stmt
	}
	//
	var (
		text    = []rune(stmt)
		tokens  = Lex(text)
		callee  = calleeIndex(tokens)
		builder strings.Builder
	)
	//
	for i, token := range tokens {
		word := token.Text(text)
		//
		if actual, ok := bindings[word]; ok && token.Kind == IDENTIFIER && i != callee {
			builder.WriteString(actual)
		} else {
			builder.WriteString(word)
		}
	}
	//
	return builder.String()
}

// Determine the index of the token naming the gate called by a statement, or
// -1 if there is none.  A leading identifier followed by an index or an
// assignment is a register reference rather than a gate name.
func calleeIndex(tokens []lex.Token) int {
	var code []int
	//
	for i, token := range tokens {
		if token.Kind != WHITESPACE && token.Kind != COMMENT {
			code = append(code, i)
		}
		//
		if len(code) == 2 {
			break
		}
	}
	//
	if len(code) == 0 || tokens[code[0]].Kind != IDENTIFIER {
		return -1
	} else if len(code) == 2 && slices.Contains([]uint{LSQUARE, EQUALS}, tokens[code[1]].Kind) {
		return -1
	}
	//
	return code[0]
}

// Normalise a measurement statement into the form "c[j] = measure q[i]".  Both
// "measure q[i] -> c[j]" and "c[j] = measure q[i]" are accepted.
func normaliseMeasure(stmt string) (string, bool) {
	var parser = NewParser(stmt)
	//
	if parser.matchKeyword("measure") {
		from := parser.position()
		//
		for !parser.follows(END_OF, RIGHTARROW) {
			parser.next()
		}
		//
		arrow := parser.next()
		//
		if arrow.Kind == RIGHTARROW {
			qubit := parser.slice(from, arrow.Span.Start())
			return fmt.Sprintf("%s = measure %s", parser.rest(), qubit), true
		}
		//
		return "", false
	}
	//
	for !parser.follows(END_OF, EQUALS) {
		parser.next()
	}
	//
	equals := parser.next()
	//
	if equals.Kind == EQUALS && parser.matchKeyword("measure") {
		bit := parser.slice(0, equals.Span.Start())
		return fmt.Sprintf("%s = measure %s", bit, parser.rest()), true
	}
	//
	return "", false
}

// Parse a statement of the form "name(args) operands", where the argument list
// is optional.
func parseCall(stmt string) (call, bool) {
	var (
		parser = NewParser(stmt)
		c      call
		err    error
	)
	//
	name, err := parser.expect(IDENTIFIER)
	if err != nil {
		return c, false
	}
	//
	c.name = parser.string(name)
	//
	if parser.follows(LBRACE) {
		if c.args, err = parser.parseGroup(LBRACE, RBRACE); err != nil {
			return c, false
		}
	}
	//
	c.operands = parser.parseOperands()
	//
	return c, true
}

// Split a conditional of the form "if (condition) { body }" (or "if (condition)
// body") into its condition and body.  This returns false if the statement is
// not a conditional, and an error if it is a malformed conditional.
func splitConditional(stmt string) (string, string, bool, error) {
	var parser = NewParser(stmt)
	//
	if !parser.matchKeyword("if") {
		return "", "", false, nil
	}
	//
	group, err := parser.parseGroup(LBRACE, RBRACE)
	if err != nil || len(group) != 1 {
		return "", "", true, errors.New("malformed condition")
	}
	//
	if !parser.follows(LCURLY) {
		return group[0], parser.rest(), true, nil
	}
	//
	body, err := parser.parseBlock()
	if err != nil {
		return "", "", true, err
	} else if err := parser.expectEnd(); err != nil {
		return "", "", true, err
	}
	//
	return group[0], body, true, nil
}
