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

	"github.com/consensys/go-qbin/pkg/qbin"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DEFAULT_WIDTH is the width assumed when output is not a terminal.
const DEFAULT_WIDTH = 120

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] qbin_file",
	Short: "inspect the contents of a QBIN file.",
	Long: `Inspect the header and instruction records of a QBIN file, showing the offset
	 and size of each record.  Output is fitted to the terminal width (if any).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			exit(1)
		}
		//
		bytes := readBinaryFile(args[0])
		header, records, err := qbin.DecodeRecords(bytes)
		//
		if err != nil {
			fmt.Printf("%s: %s\n", args[0], err)
			exit(3)
		}
		//
		fmt.Println(renderHeader(header, len(bytes)))
		fmt.Println(renderRecords(bytes, records, GetFlag(cmd, "raw"), terminalWidth()))
	},
}

// Determine the width of the terminal on stdout, or a default if stdout is not
// a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	//
	return DEFAULT_WIDTH
}

func renderHeader(header qbin.Header, size int) string {
	return fmt.Sprintf("%s v%d (flags 0x%04x, header %d bytes, %d section(s), %d bytes total)",
		string(header.Identifier[:]), header.Version, header.Flags, header.HeaderSize, header.SectionCount, size)
}

// Render records as a table, optionally including the raw bytes of each
// record.  Rows are truncated to fit a given width.
func renderRecords(data []byte, records []qbin.Record, raw bool, width int) string {
	var (
		t       = table.NewWriter()
		heading = table.Row{"#", "offset", "size", "opcode", "instruction"}
	)
	//
	if raw {
		heading = append(heading, "bytes")
	}
	//
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(width)
	t.AppendHeader(heading)
	//
	for i, record := range records {
		row := table.Row{i, record.Offset, record.Size, fmt.Sprintf("0x%02x", uint8(record.Opcode)),
			record.Instruction.String()}
		//
		if raw {
			row = append(row, fmt.Sprintf("% x", data[record.Offset:record.Offset+record.Size]))
		}
		//
		t.AppendRow(row)
	}
	//
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d instruction(s)", len(records))})
	//
	return t.Render()
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "show the raw bytes of each record")
}
