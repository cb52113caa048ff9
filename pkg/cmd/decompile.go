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
	"github.com/spf13/cobra"
)

var decompileCmd = &cobra.Command{
	Use:   "decompile [flags] qbin_file",
	Short: "decompile a QBIN file into QASM source.",
	Long: `Decompile a QBIN file into readable QASM source, reconstructing conditional
	 blocks where possible.  Malformed files are rejected.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			exit(1)
		}
		//
		stats := util.NewPerfStats()
		bytes := readBinaryFile(args[0])
		text, err := compiler.Decompile(bytes)
		//
		if err != nil {
			fmt.Printf("%s: %s\n", args[0], err)
			exit(3)
		}
		//
		stats.Log("Decompiling binary file")
		writeOutput(GetString(cmd, "output"), []byte(text))
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(decompileCmd)
	decompileCmd.Flags().StringP("output", "o", "", "specify output file (default stdout)")
}
