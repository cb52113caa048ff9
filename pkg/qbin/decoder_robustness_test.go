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
package qbin

import (
	"math/rand"

	"github.com/consensys/go-qbin/pkg/ir"
	"github.com/consensys/go-qbin/pkg/util"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decoder", func() {
	var encoded []byte

	BeforeEach(func() {
		var param = ir.NewGate(ir.RY, 9)
		//
		param.Angle = util.Some(ir.ParameterRef(1 << 20))
		//
		program := sampleProgram()
		program.Add(param, ir.NewGate(ir.SWAP, 200, 20000), ir.NewIf(ir.IF_NEQ, 3, 0), ir.NewEndIf())
		encoded = Encode(program)
	})

	It("should decode the untruncated buffer", func() {
		program, err := Decode(encoded)
		Expect(err).NotTo(HaveOccurred())
		Expect(program.Len()).To(Equal(uint(11)))
	})

	It("should reject every truncation of a valid buffer", func() {
		for n := 0; n < len(encoded); n++ {
			// Copy into an exactly sized buffer so any overread would be caught.
			truncated := make([]byte, n)
			copy(truncated, encoded[:n])
			//
			var (
				program ir.Program
				err     error
			)
			//
			Expect(func() { program, err = Decode(truncated) }).NotTo(Panic())
			Expect(err).To(MatchError(ErrMalformed), "truncated at offset %d", n)
			Expect(program.Instructions).To(BeEmpty())
		}
	})

	It("should never panic on corrupted buffers", func() {
		var rng = rand.New(rand.NewSource(1))
		//
		for i := 0; i < 2000; i++ {
			corrupted := append([]byte{}, encoded...)
			// Flip a few bytes after the magic
			for j := 0; j < 1+rng.Intn(4); j++ {
				corrupted[4+rng.Intn(len(corrupted)-4)] = byte(rng.Intn(256))
			}
			//
			Expect(func() { _, _ = Decode(corrupted) }).NotTo(Panic())
		}
	})

	It("should report the offending instruction index", func() {
		// Chop the final byte (ENDIF's mask) from the 11th instruction
		_, err := Decode(encoded[:len(encoded)-1])
		Expect(err).To(MatchError(ContainSubstring("instruction 10")))
	})
})
