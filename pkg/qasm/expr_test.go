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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Evaluate(t *testing.T) {
	tests := []struct {
		expr     string
		expected float64
	}{
		{"0", 0},
		{"1.5", 1.5},
		{".25", 0.25},
		{"2e-3", 0.002},
		{"1E2", 100},
		{"pi", math.Pi},
		{"PI", math.Pi},
		{"Pi", math.Pi},
		{"π", math.Pi},
		{"pi/2", math.Pi / 2},
		{"-pi/4", -math.Pi / 4},
		{"+3", 3},
		{"--3", 3},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"8/4/2", 1},
		{"8-4-2", 2},
		{"2*-3", -6},
		{" ( pi ) * ( 1 / 2 ) ", math.Pi / 2},
		{"((pi))/((2))", math.Pi / 2},
	}
	//
	for _, test := range tests {
		assert.InDelta(t, test.expected, Evaluate(test.expr), 1e-12, test.expr)
	}
}

func Test_Evaluate_Malformed(t *testing.T) {
	tests := []string{
		"",
		"theta",
		"1+",
		"*2",
		"(1+2",
		"1+2)",
		"1 2",
		"pi pi",
		"2pi",
		"1.2.3",
		"@",
	}
	//
	for _, expr := range tests {
		assert.Equal(t, 0.0, Evaluate(expr), expr)
	}
}

func Test_Evaluate_DivisionByZero(t *testing.T) {
	assert.True(t, math.IsInf(Evaluate("1/0"), 1))
}
