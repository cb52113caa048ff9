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
	"slices"
	"unicode"

	"github.com/consensys/go-qbin/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "// ... \n", "# ... \n" or "/* ... */"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LSQUARE signals "["
const LSQUARE uint = 5

// RSQUARE signals "]"
const RSQUARE uint = 6

// LCURLY signals "{"
const LCURLY uint = 7

// RCURLY signals "}"
const RCURLY uint = 8

// COMMA signals ","
const COMMA uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// NUMBER signals a (possibly fractional) number
const NUMBER uint = 11

// STRING signals a quoted string
const STRING uint = 12

// IDENTIFIER signals a gate, register or parameter name
const IDENTIFIER uint = 20

// RIGHTARROW signals "->"
const RIGHTARROW uint = 30

// EQUALS signals "="
const EQUALS uint = 31

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 32

// NOT_EQUALS signals "!="
const NOT_EQUALS uint = 33

// ADD signals "+"
const ADD uint = 38

// SUB signals "-"
const SUB uint = 39

// MUL signals "*"
const MUL uint = 40

// DIV signals "/"
const DIV uint = 41

// OTHER signals any character not otherwise recognised.  This ensures lexing
// never fails, since the frontend must accept arbitrary text.
const OTHER uint = 99

// Rule for describing whitespace.  Carriage returns are treated as whitespace,
// which normalises line endings.
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r'),
	lex.Unit('\f'), lex.Unit('\v')))

// Rule for describing numbers, e.g. "1", "1.5", ".5", "2e-3".  At least one
// digit is required, and an exponent is only consumed when it is well-formed.
func number(items []rune) uint {
	var (
		n     = digits(items)
		count = n
	)
	// Fractional part
	if n < uint(len(items)) && items[n] == '.' {
		m := digits(items[n+1:])
		n, count = n+1+m, count+m
	}
	//
	if count == 0 {
		return 0
	}
	// Exponent
	if n < uint(len(items)) && (items[n] == 'e' || items[n] == 'E') {
		i := n + 1
		if i < uint(len(items)) && (items[i] == '+' || items[i] == '-') {
			i++
		}
		//
		if m := digits(items[i:]); m > 0 {
			n = i + m
		}
	}
	//
	return n
}

var digits = lex.Many(lex.Within('0', '9'))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'),
	lex.Scanner[rune](letter))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'),
	lex.Scanner[rune](letter)))

// Accepts non-ASCII letters (e.g. "π" or "θ").
func letter(items []rune) uint {
	if len(items) > 0 && items[0] > unicode.MaxASCII && unicode.IsLetter(items[0]) {
		return 1
	}
	//
	return 0
}

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// Rule for describing strings in quotes
var strung lex.Scanner[rune] = lex.Sequence(lex.Unit('"'), lex.Many(lex.Not('"')), lex.Unit('"'))

// Rule for describing comments
var comment lex.Scanner[rune] = lex.Or(
	lex.And(lex.Unit('/', '/'), lex.Until('\n')),
	lex.And(lex.Unit('#'), lex.Until('\n')),
	lex.Delimited([]rune("/*"), []rune("*/")))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('-', '>'), RIGHTARROW),
	lex.Rule(lex.Unit('=', '='), EQUALS_EQUALS),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(lex.Scanner[rune](number), NUMBER),
	lex.Rule(strung, STRING),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
	lex.Rule(lex.Any[rune](), OTHER),
}

// Lex a given sequence of characters into tokens.  Lexing is total: characters
// which are not otherwise recognised are returned as OTHER tokens.  The final
// token is always END_OF.
func Lex(text []rune) []lex.Token {
	return lex.NewLexer(text, rules...).Collect()
}

// lexCode lexes a given string, dropping whitespace and comments.
func lexCode(text []rune) []lex.Token {
	return slices.DeleteFunc(Lex(text), func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
}
