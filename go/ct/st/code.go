// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.


package st

import (
	"slices"

	"github.com/Fantom-foundation/tosca-tests/go/ct/asm"
	"github.com/Fantom-foundation/tosca-tests/go/ct/common"
	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// MaxCodeSize is the maximum size of a contract stored on a Ethereum
// compatible block chain.
const MaxCodeSize = 1<<14 + 1<<13 // = 24576

// ErrInvalidPosition is reported when querying the operation at a position
// covered by the data portion of a PUSH instruction.
const ErrInvalidPosition = common.ConstErr("invalid position")

// Code is the legacy analysis of deployed byte code. Only PUSH instructions
// carry a data portion; every other byte, including EOF opcodes, is a single
// byte instruction. A Code is immutable and may be shared.
type Code struct {
	code []byte
	// pushData marks bytes which are part of the data portion of a PUSH.
	pushData []bool
}

// NewCode analyzes a copy of the given code.
func NewCode(code []byte) *Code {
	pushData := make([]bool, len(code))
	for pos := 0; pos < len(code); pos++ {
		op := vm.OpCode(code[pos])
		if !op.IsPush() {
			continue
		}
		end := min(pos+1+int(op-vm.PUSH0), len(code))
		for i := pos + 1; i < end; i++ {
			pushData[i] = true
		}
		pos = end - 1
	}
	return &Code{
		code:     slices.Clone(code),
		pushData: pushData,
	}
}

// FromBytecode analyzes the given byte code.
func FromBytecode(code asm.Bytecode) *Code {
	return NewCode(code.Bytes())
}

func (c *Code) Length() int {
	return len(c.code)
}

// IsCode reports whether pos starts an instruction. Positions outside the
// code are implicit STOP instructions.
func (c *Code) IsCode(pos int) bool {
	return pos < 0 || pos >= len(c.pushData) || !c.pushData[pos]
}

// IsData reports whether pos is part of the data portion of a PUSH.
func (c *Code) IsData(pos int) bool {
	return !c.IsCode(pos)
}

// GetOperation returns the instruction starting at pos.
func (c *Code) GetOperation(pos int) (vm.OpCode, error) {
	if pos < 0 || pos >= len(c.code) {
		return vm.STOP, nil
	}
	if c.pushData[pos] {
		return vm.INVALID, ErrInvalidPosition
	}
	return vm.OpCode(c.code[pos]), nil
}

// JumpDests lists the positions of all valid jump destinations.
func (c *Code) JumpDests() []int {
	res := []int{}
	for pos := range c.code {
		if c.IsJumpDest(pos) {
			res = append(res, pos)
		}
	}
	return res
}

// IsJumpDest reports whether pos is a JUMPDEST outside any PUSH data.
func (c *Code) IsJumpDest(pos int) bool {
	op, err := c.GetOperation(pos)
	return err == nil && pos >= 0 && pos < len(c.code) && op == vm.JUMPDEST
}

// Bytecode returns the analyzed code.
func (c *Code) Bytecode() asm.Bytecode {
	return asm.Raw(c.code)
}
