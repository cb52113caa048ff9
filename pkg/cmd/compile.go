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

	"github.com/consensys/go-qbin/pkg/compiler"
	"github.com/consensys/go-qbin/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] qasm_file",
	Short: "compile a QASM source file into a QBIN file.",
	Long: `Compile a QASM source file into a QBIN file.  Compilation is best effort:
	 statements which cannot be compiled are dropped (use --verbose to see them).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			exit(1)
		}
		//
		output := GetString(cmd, "output")
		//
		if output == "" {
			output = defaultOutput(args[0], ".qbin")
		}
		//
		stats := util.NewPerfStats()
		srcfile := readSourceFile(args[0])
		bytes, diagnostics := compiler.Compile(srcfile)
		//
		stats.Log("Compiling source file")
		reportDiagnostics(diagnostics)
		log.Debugf("compiled %s into %d bytes", args[0], len(bytes))
		//
		writeOutput(output, bytes)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "specify output file (default replaces extension with .qbin)")
}
