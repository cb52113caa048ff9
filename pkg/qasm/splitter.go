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
	"strings"

	"github.com/consensys/go-qbin/pkg/util/source"
)

// Statement represents a single top-level statement extracted from a QASM
// source file.  The text of a statement has comments removed, whitespace
// collapsed into single spaces and excludes any terminating semicolon.
type Statement struct {
	Text string
	Span source.Span
}

// Split a sequence of characters into statements.  A statement ends at a
// semicolon which is not nested within parentheses or braces, or at a closing
// brace which returns the brace depth to zero.  Empty statements are dropped,
// and any trailing text without a terminator forms a final statement.
func Split(text []rune) []Statement {
	var (
		statements []Statement
		builder    strings.Builder
		start      = -1
		end        = 0
		parens     = 0
		braces     = 0
		space      = false
	)
	//
	flush := func() {
		if start >= 0 {
			statements = append(statements, Statement{builder.String(), source.NewSpan(start, end)})
		}
		//
		builder.Reset()
		start, parens, braces, space = -1, 0, 0, false
	}
	//
	for _, token := range Lex(text) {
		switch token.Kind {
		case END_OF:
			continue
		case WHITESPACE, COMMENT:
			space = start >= 0
			continue
		case SEMICOLON:
			if parens == 0 && braces == 0 {
				flush()
				continue
			}
		}
		//
		if start < 0 {
			start = token.Span.Start()
		} else if space {
			builder.WriteByte(' ')
		}
		//
		builder.WriteString(token.Text(text))
		end, space = token.Span.End(), false
		//
		switch token.Kind {
		case LBRACE:
			parens++
		case RBRACE:
			parens = max(0, parens-1)
		case LCURLY:
			braces++
		case RCURLY:
			if braces <= 1 {
				flush()
			} else {
				braces--
			}
		}
	}
	// Trailing statement (if any)
	flush()
	//
	return statements
}

// SplitString is a convenience wrapper around Split for a given string.
func SplitString(text string) []string {
	var statements []string
	//
	for _, stmt := range Split([]rune(text)) {
		statements = append(statements, stmt.Text)
	}
	//
	return statements
}
