// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package asm

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// Instruction is a single decoded instruction of some code.
type Instruction struct {
	Pos  int
	Op   vm.OpCode
	Data []byte
	// Truncated is set if the code ends within the data portion.
	Truncated bool
}

func (i Instruction) String() string {
	if len(i.Data) == 0 && !i.Truncated {
		return i.Op.String()
	}
	res := fmt.Sprintf("%v 0x%x", i.Op, i.Data)
	if i.Truncated {
		res += " (truncated)"
	}
	return res
}

// Disassemble splits the given code into instructions. The size of the data
// portion is taken from the opcode catalog, except for RJUMPV whose jump
// table size is encoded in its first immediate byte.
func Disassemble(code []byte) []Instruction {
	res := []Instruction{}
	for pos := 0; pos < len(code); {
		op := vm.OpCode(code[pos])
		width := dataPortionLength(code, pos)
		end := pos + 1 + width
		truncated := end > len(code)
		if truncated {
			end = len(code)
		}
		var data []byte
		if pos+1 < end {
			data = append([]byte{}, code[pos+1:end]...)
		}
		res = append(res, Instruction{
			Pos:       pos,
			Op:        op,
			Data:      data,
			Truncated: truncated,
		})
		pos = end
	}
	return res
}

func dataPortionLength(code []byte, pos int) int {
	op := vm.OpCode(code[pos])
	if op == vm.RJUMPV && pos+1 < len(code) {
		return 1 + 2*(int(code[pos+1])+1)
	}
	return op.Info().DataPortionLength
}

// Instructions decodes the code of b into instructions.
func (b Bytecode) Instructions() []Instruction {
	return Disassemble(b.Bytes())
}

// Listing produces a human readable listing of the code of b, one
// instruction per line prefixed by its position.
func (b Bytecode) Listing() string {
	var builder strings.Builder
	for _, instruction := range b.Instructions() {
		fmt.Fprintf(&builder, "%04x: %v\n", instruction.Pos, instruction)
	}
	return builder.String()
}
