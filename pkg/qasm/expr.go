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
	"math"
	"strconv"
	"strings"
)

// Evaluate an angle expression over numbers, the constant pi (written "pi" in
// any case, or "π"), binary "+", "-", "*", "/", unary "+" and "-" and
// parentheses.  Evaluation never fails: a malformed expression (including one
// with trailing text) evaluates to 0.
func Evaluate(expr string) float64 {
	var parser = NewParser(expr)
	//
	value, ok := parser.parseExpr()
	// Check everything was consumed
	if !ok || !parser.follows(END_OF) {
		return 0
	}
	//
	return value
}

// expr := term (('+' | '-') term)*
func (p *Parser) parseExpr() (float64, bool) {
	lhs, ok := p.parseTerm()
	//
	for ok && p.follows(ADD, SUB) {
		var (
			op  = p.next().Kind
			rhs float64
		)
		//
		if rhs, ok = p.parseTerm(); op == ADD {
			lhs += rhs
		} else {
			lhs -= rhs
		}
	}
	//
	return lhs, ok
}

// term := unary (('*' | '/') unary)*
func (p *Parser) parseTerm() (float64, bool) {
	lhs, ok := p.parseUnary()
	//
	for ok && p.follows(MUL, DIV) {
		var (
			op  = p.next().Kind
			rhs float64
		)
		//
		if rhs, ok = p.parseUnary(); op == MUL {
			lhs *= rhs
		} else {
			lhs /= rhs
		}
	}
	//
	return lhs, ok
}

// unary := ('+' | '-') unary | primary
func (p *Parser) parseUnary() (float64, bool) {
	switch {
	case p.match(ADD):
		return p.parseUnary()
	case p.match(SUB):
		value, ok := p.parseUnary()
		return -value, ok
	}
	//
	return p.parsePrimary()
}

// primary := number | 'pi' | '(' expr ')'
func (p *Parser) parsePrimary() (float64, bool) {
	token := p.next()
	//
	switch token.Kind {
	case NUMBER:
		value, err := strconv.ParseFloat(p.string(token), 64)
		return value, err == nil
	case IDENTIFIER:
		name := p.string(token)
		return math.Pi, strings.EqualFold(name, "pi") || name == "π"
	case LBRACE:
		value, ok := p.parseExpr()
		return value, ok && p.match(RBRACE)
	}
	//
	return 0, false
}
