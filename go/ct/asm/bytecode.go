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
	"bytes"
	"encoding/json"

	"golang.org/x/crypto/sha3"

	"github.com/Fantom-foundation/tosca-tests/go/ct/common"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// Bytecode is an immutable sequence of EVM code bytes which may be freely
// copied and composed. Besides the encoded bytes it tracks the combined
// stack effect of the contained instructions:
//   - popped is the number of stack elements consumed below the initial
//     stack height,
//   - pushed is the number of elements left on top of that lowest point,
//   - minStackHeight is the stack height required to run the code,
//   - maxStackHeight is the highest stack reached when starting with
//     minStackHeight elements.
//
// Literal byte segments added through Raw do not contribute to the stack
// effect.
type Bytecode struct {
	code           common.Bytes
	popped         int
	pushed         int
	minStackHeight int
	maxStackHeight int
}

// Op returns the bare instruction without any immediate data.
func Op(op vm.OpCode) Bytecode {
	info := op.Info()
	end := info.MinStackHeight - info.Popped + info.Pushed
	return Bytecode{
		code:           common.NewBytes([]byte{byte(op)}),
		popped:         info.Popped,
		pushed:         info.Pushed,
		minStackHeight: info.MinStackHeight,
		maxStackHeight: max(info.MinStackHeight, end),
	}
}

// Raw returns a literal byte segment. The data is copied.
func Raw(data []byte) Bytecode {
	return Bytecode{code: common.NewBytes(data)}
}

// Concat concatenates the given byte codes into a new byte code.
func Concat(parts ...Bytecode) Bytecode {
	return Bytecode{}.Concat(parts...)
}

// Repeat returns n concatenated copies of b. It panics if n is negative.
func Repeat(b Bytecode, n int) Bytecode {
	return b.Repeat(n)
}

// Concat returns the concatenation of b and the given byte codes.
func (b Bytecode) Concat(others ...Bytecode) Bytecode {
	res := b
	codes := make([]common.Bytes, 0, len(others))
	for _, other := range others {
		res = combine(res, other)
		codes = append(codes, other.code)
	}
	res.code = b.code.Append(codes...)
	return res
}

// Repeat returns n concatenated copies of b. It panics if n is negative.
func (b Bytecode) Repeat(n int) Bytecode {
	if n < 0 {
		panic("asm: negative Repeat count")
	}
	res := Bytecode{}
	for i := 0; i < n; i++ {
		res = combine(res, b)
	}
	res.code = b.code.Repeat(n)
	return res
}

// combine computes the stack effect of running a followed by b. The code of
// the result is left to the caller.
func combine(a, b Bytecode) Bytecode {
	deltaA := a.pushed - a.popped
	deltaB := b.pushed - b.popped

	popped := max(a.popped, b.popped-deltaA)
	minHeight := max(a.minStackHeight, b.minStackHeight-deltaA)
	maxHeight := max(
		a.maxStackHeight+(minHeight-a.minStackHeight),
		b.maxStackHeight+(minHeight+deltaA-b.minStackHeight),
	)
	return Bytecode{
		popped:         popped,
		pushed:         popped + deltaA + deltaB,
		minStackHeight: minHeight,
		maxStackHeight: maxHeight,
	}
}

// Bytecode makes a byte code usable as stack argument of other instructions.
func (b Bytecode) Bytecode() Bytecode {
	return b
}

// Len returns the number of bytes of the encoded code.
func (b Bytecode) Len() int {
	return b.code.Length()
}

// Bytes returns a copy of the encoded code.
func (b Bytecode) Bytes() []byte {
	return b.code.ToBytes()
}

func (b Bytecode) Popped() int {
	return b.popped
}

func (b Bytecode) Pushed() int {
	return b.pushed
}

func (b Bytecode) MinStackHeight() int {
	return b.minStackHeight
}

func (b Bytecode) MaxStackHeight() int {
	return b.maxStackHeight
}

// Equal compares the encoded code of both byte codes.
func (b Bytecode) Equal(other Bytecode) bool {
	return b.code == other.code
}

// Hash computes the Keccak-256 hash of the code, as used for code hashes in
// the world state.
func (b Bytecode) Hash() (res tosca.Hash) {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(b.Bytes())
	copy(res[:], hasher.Sum(nil))
	return res
}

// Hex returns the 0x-prefixed hex encoding of the code.
func (b Bytecode) Hex() string {
	return b.code.String()
}

func (b Bytecode) String() string {
	return b.Hex()
}

func (b Bytecode) MarshalJSON() ([]byte, error) {
	return b.code.MarshalJSON()
}

// UnmarshalJSON restores the code from its hex encoding. The result is a raw
// segment without stack effect information.
func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var code common.Bytes
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*b = Bytecode{code: code}
	return nil
}

// HasPrefix reports whether the code of b starts with the code of prefix.
func (b Bytecode) HasPrefix(prefix Bytecode) bool {
	return bytes.HasPrefix(b.Bytes(), prefix.Bytes())
}
