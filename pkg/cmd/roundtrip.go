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
	"path/filepath"
	"strings"

	"github.com/consensys/go-qbin/pkg/compiler"
	"github.com/consensys/go-qbin/pkg/util"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip [flags] qasm_file",
	Short: "check a QASM source file survives compilation and decompilation.",
	Long: `Compile a QASM source file, decompile the result and compare it against the
	 original.  By default, trailing whitespace is ignored.  Differences are reported
	 as a unified diff.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			exit(1)
		}
		//
		var (
			exact   = GetFlag(cmd, "exact")
			stats   = util.NewPerfStats()
			srcfile = readSourceFile(args[0])
		)
		//
		_, text, diagnostics, err := compiler.RoundTrip(srcfile)
		if err != nil {
			fmt.Printf("%s: %s\n", args[0], err)
			exit(3)
		}
		//
		stats.Log("Round tripping source file")
		reportDiagnostics(diagnostics)
		//
		original := string(srcfile.Contents())
		//
		if diff, ok := compareText(original, text, exact); !ok {
			fmt.Fprintf(os.Stderr, "Mismatch (%s). Unified diff:\n%s\n", mode(exact), diff)
			//
			if exact {
				exit(2)
			}
			//
			exit(3)
		}
		//
		fmt.Printf("OK (%s) - %s\n", mode(exact), filepath.Base(args[0]))
	},
}

func mode(exact bool) string {
	if exact {
		return "exact"
	}
	//
	return "normalized"
}

// Compare original and decompiled text, returning a unified diff if they
// differ.
func compareText(original string, decompiled string, exact bool) (string, bool) {
	if !exact {
		original, decompiled = normalise(original), normalise(decompiled)
	}
	//
	if original == decompiled {
		return "", true
	}
	//
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(decompiled),
		FromFile: "input",
		ToFile:   "decompiled",
		Context:  3,
	})
	//
	if err != nil {
		return err.Error(), false
	}
	//
	return diff, false
}

// Strip trailing whitespace from each line, and ensure a single newline at the
// end.
func normalise(text string) string {
	var lines []string
	//
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines = append(lines, strings.TrimRight(line, " \t\r"))
	}
	//
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(roundtripCmd)
	roundtripCmd.Flags().Bool("exact", false, "require byte-for-byte equality")
}
