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
package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/consensys/go-qbin/pkg/qasm"
	"github.com/consensys/go-qbin/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		exit(2)
	}
	//
	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		exit(2)
	}
	//
	return r
}

// Read a QASM source file, or exit if it cannot be read or is empty.
func readSourceFile(filename string) *source.File {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		exit(2)
	} else if len(srcfile.Contents()) == 0 {
		fmt.Printf("%s: empty input\n", filename)
		exit(2)
	}
	//
	return srcfile
}

// Read a QBIN file, or exit if it cannot be read.
func readBinaryFile(filename string) []byte {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		exit(2)
	}
	//
	return bytes
}

// Write output to a given file, or to stdout if no file is given.
func writeOutput(filename string, bytes []byte) {
	if filename == "" || filename == "-" {
		if _, err := os.Stdout.Write(bytes); err != nil {
			fmt.Println(err)
			exit(4)
		}
		//
		return
	}
	//
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		fmt.Println(err)
		exit(4)
	}
	//
	log.Debugf("wrote %d bytes to %s", len(bytes), filename)
}

// Determine the default output filename for a given input filename, by
// replacing its extension.
func defaultOutput(filename string, ext string) string {
	return strings.TrimSuffix(filename, path.Ext(filename)) + ext
}

// Report diagnostics for dropped statements.  These are only shown in verbose
// mode, since compilation is best effort.
func reportDiagnostics(diagnostics []qasm.Diagnostic) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	//
	for i := range diagnostics {
		printDiagnostic(&diagnostics[i])
	}
	//
	log.Warnf("%d statement(s) dropped", len(diagnostics))
}

// Print a diagnostic with appropriate highlighting.
func printDiagnostic(diagnostic *qasm.Diagnostic) {
	span := diagnostic.Span()
	line := diagnostic.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	log.Warnf("%s:%d:%d-%d %s", diagnostic.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, diagnostic.Message())
	// Print line
	fmt.Fprintln(os.Stderr, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(os.Stderr, strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Fprintln(os.Stderr, strings.Repeat("^", length))
}
