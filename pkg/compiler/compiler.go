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
package compiler

import (
	"github.com/consensys/go-qbin/pkg/ir"
	"github.com/consensys/go-qbin/pkg/qasm"
	"github.com/consensys/go-qbin/pkg/qbin"
	"github.com/consensys/go-qbin/pkg/util/source"
)

// Compile a QASM source file into a QBIN container.  Compilation is best
// effort: statements which cannot be compiled are dropped, and reported as
// diagnostics.
func Compile(srcfile *source.File) ([]byte, []qasm.Diagnostic) {
	program, diagnostics := qasm.Parse(srcfile)
	//
	return qbin.Encode(program), diagnostics
}

// Decompile a QBIN container into readable QASM source.  This fails if the
// container is malformed, in which case the error wraps qbin.ErrMalformed.
func Decompile(data []byte) (string, error) {
	program, err := qbin.Decode(data)
	if err != nil {
		return "", err
	}
	//
	return qasm.Write(program), nil
}

// RoundTrip compiles a QASM source file, and then decompiles the result.  The
// intermediate program is also returned.
func RoundTrip(srcfile *source.File) (ir.Program, string, []qasm.Diagnostic, error) {
	bytes, diagnostics := Compile(srcfile)
	//
	program, err := qbin.Decode(bytes)
	if err != nil {
		return program, "", diagnostics, err
	}
	//
	return program, qasm.Write(program), diagnostics, nil
}
