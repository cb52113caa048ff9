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
package lex

import (
	"testing"

	"github.com/consensys/go-qbin/pkg/util/source"
	"github.com/stretchr/testify/assert"
)

func TestLexer_00(t *testing.T) {
	checkLexer(t, "", 0, Token{END_OF, source.NewSpan(0, 0)})
}

func TestLexer_01(t *testing.T) {
	checkLexer(t, "(", 0,
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{END_OF, source.NewSpan(1, 1)})
}

func TestLexer_02(t *testing.T) {
	checkLexer(t, "( 12)", 0,
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{WSPACE, source.NewSpan(1, 2)},
		Token{NUMBER, source.NewSpan(2, 4)},
		Token{RBRACE, source.NewSpan(4, 5)},
		Token{END_OF, source.NewSpan(5, 5)})
}

func TestLexer_03(t *testing.T) {
	// Nothing matches "x" so lexing stops immediately.
	checkLexer(t, "x", 1)
}

func TestLexer_04(t *testing.T) {
	checkLexer(t, "1/* a ) b */2", 0,
		Token{NUMBER, source.NewSpan(0, 1)},
		Token{COMMENT, source.NewSpan(1, 12)},
		Token{NUMBER, source.NewSpan(12, 13)},
		Token{END_OF, source.NewSpan(13, 13)})
}

func TestLexer_05(t *testing.T) {
	// Unterminated comments run to the end of input.
	checkLexer(t, "(/* (", 0,
		Token{LBRACE, source.NewSpan(0, 1)},
		Token{COMMENT, source.NewSpan(1, 5)},
		Token{END_OF, source.NewSpan(5, 5)})
}

func TestLexer_Text(t *testing.T) {
	var (
		input  = []rune("(90)")
		tokens = NewLexer(input, rules...).Collect()
	)
	//
	assert.Len(t, tokens, 4)
	assert.Equal(t, "90", tokens[1].Text(input))
}

func TestScanner_Sequence(t *testing.T) {
	rule := Sequence(Unit('a'), Unit('b'), Unit('c'))
	//
	assert.Equal(t, uint(3), rule([]rune("abcd")))
	assert.Equal(t, uint(0), rule([]rune("acc")))
	assert.Equal(t, uint(0), rule([]rune("ab")))
}

func TestScanner_Not(t *testing.T) {
	rule := Many(Not('"'))
	//
	assert.Equal(t, uint(3), rule([]rune(`abc"d`)))
	assert.Equal(t, uint(0), rule([]rune(`"`)))
}

func TestScanner_Until(t *testing.T) {
	rule := Until('\n')
	//
	assert.Equal(t, uint(5), rule([]rune("// hi\nx")))
	assert.Equal(t, uint(2), rule([]rune("ab")))
}

// ==================================================================
// Framework
// ==================================================================

const END_OF uint = 0
const WSPACE uint = 1
const LBRACE uint = 2
const RBRACE uint = 3
const NUMBER uint = 4
const COMMENT uint = 5

// Rule for describing whitespace
var whitespace Scanner[rune] = Many(Or(Unit(' '), Unit('\t')))

// Rule for describing numbers
var number Scanner[rune] = Many(Within('0', '9'))

// lexing rules
var rules []LexRule[rune] = []LexRule[rune]{
	Rule(Delimited([]rune("/*"), []rune("*/")), COMMENT),
	Rule(Unit('('), LBRACE),
	Rule(Unit(')'), RBRACE),
	Rule(whitespace, WSPACE),
	Rule(number, NUMBER),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	items := []rune(input)
	// Construct text lexer
	lexer := NewLexer(items, rules...)
	// Apply lexer
	tokens := lexer.Collect()
	//
	assert.Equal(t, expected, tokens)
	assert.Equal(t, remainder, lexer.Remaining())
}
