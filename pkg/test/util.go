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
package test

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/consensys/go-qbin/pkg/compiler"
	"github.com/consensys/go-qbin/pkg/qasm"
	"github.com/consensys/go-qbin/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the QASM source files and their expected decompilations are found.
const TestDir = "../../testdata/qasm"

// Check that a given source file compiles and decompiles into the expected
// output, and that the lines of any dropped statements are as expected.  A
// test consists of a source file (".qasm"), the expected decompilation
// (".out") and, optionally, the line numbers of dropped statements (".lines").
// Finally, the decompiled output is checked to be a fixed point: compiling it
// again produces an identical binary.
func Check(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/%s.qasm", TestDir, test)
		expected = readFile(t, fmt.Sprintf("%s/%s.out", TestDir, test))
		lines    = readLines(t, fmt.Sprintf("%s/%s.lines", TestDir, test))
	)
	//
	t.Parallel()
	//
	srcfile, err := source.ReadFile(filename)
	require.NoError(t, err)
	// Compile
	bytes, diagnostics := compiler.Compile(srcfile)
	assert.Equal(t, lines, diagnosticLines(diagnostics), "dropped statements")
	// Decompile
	text, err := compiler.Decompile(bytes)
	require.NoError(t, err)
	assert.Equal(t, expected, text)
	// Check fixed point
	rebytes, diagnostics := compiler.Compile(source.NewSourceFile(test+".out", []byte(text)))
	assert.Empty(t, diagnostics)
	assert.Equal(t, bytes, rebytes)
}

func diagnosticLines(diagnostics []qasm.Diagnostic) []int {
	var lines = []int{}
	//
	for i := range diagnostics {
		lines = append(lines, diagnostics[i].Line())
	}
	//
	slices.Sort(lines)
	//
	return lines
}

func readFile(t *testing.T, filename string) string {
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	//
	return string(bytes)
}

// Read a file of line numbers (one per line).  A missing file indicates no
// line numbers.
func readLines(t *testing.T, filename string) []int {
	var lines = []int{}
	//
	bytes, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return lines
	}
	//
	require.NoError(t, err)
	//
	for _, line := range strings.Fields(string(bytes)) {
		n, err := strconv.Atoi(line)
		require.NoError(t, err)
		//
		lines = append(lines, n)
	}
	//
	return lines
}
