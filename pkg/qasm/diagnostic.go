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
	"fmt"

	"github.com/consensys/go-qbin/pkg/util/source"
)

// Diagnostic records a statement which was dropped during compilation, along
// with the reason.  Diagnostics are never fatal: compilation is best effort and
// continues with the next statement.
type Diagnostic struct {
	source.SyntaxError
	// Statement (after comment removal) which was dropped.
	statement string
}

// Statement returns the text of the statement which was dropped.
func (p *Diagnostic) Statement() string {
	return p.statement
}

// Line returns the (one-based) line on which the dropped statement begins.
func (p *Diagnostic) Line() int {
	line := p.FirstEnclosingLine()
	return line.Number()
}

func (p *Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", p.Line(), p.Message(), p.statement)
}
