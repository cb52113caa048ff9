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
	"testing"
)

func Test_Valid_Bell(t *testing.T) {
	Check(t, "valid/bell")
}

func Test_Valid_GhzRegisters(t *testing.T) {
	Check(t, "valid/ghz_registers")
}

func Test_Valid_Macros(t *testing.T) {
	Check(t, "valid/macros")
}

func Test_Valid_Teleport(t *testing.T) {
	Check(t, "valid/teleport")
}

func Test_Valid_Rotations(t *testing.T) {
	Check(t, "valid/rotations")
}

func Test_Valid_Crlf(t *testing.T) {
	Check(t, "valid/crlf")
}

// ===================================================================
// Best Effort Tests
// ===================================================================

func Test_Partial_BestEffort(t *testing.T) {
	Check(t, "partial/best_effort")
}

func Test_Partial_Malformed(t *testing.T) {
	Check(t, "partial/malformed")
}
