// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gen

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"pgregory.net/rand"

	"github.com/Fantom-foundation/tosca-tests/go/ct/asm"
	"github.com/Fantom-foundation/tosca-tests/go/ct/st"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// CodeGenerator is a utility class for generating random byte codes
// satisfying a set of constraints. Instruction boundaries follow the data
// portion lengths of the opcode catalog.
type CodeGenerator struct {
	sizes     []int
	constOps  []constOpConstraint
	revisions []tosca.Revision
}

type constOpConstraint struct {
	pos int
	op  vm.OpCode
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// SetSize fixes the size of the generated code.
func (g *CodeGenerator) SetSize(size int) {
	g.sizes = append(g.sizes, size)
}

// SetOperation fixes an operation to be placed at a given offset.
func (g *CodeGenerator) SetOperation(pos int, op vm.OpCode) {
	g.constOps = append(g.constOps, constOpConstraint{pos: pos, op: op})
}

// SetRevision restricts randomly chosen operations to those valid in the
// given revision. Without it, arbitrary byte values are used.
func (g *CodeGenerator) SetRevision(revision tosca.Revision) {
	g.revisions = append(g.revisions, revision)
}

// Generate produces a byte code satisfying the constraints set on this
// generator or returns ErrUnsatisfiable on conflicting constraints.
func (g *CodeGenerator) Generate(rnd *rand.Rand) (asm.Bytecode, error) {
	ops, err := g.normalizeOps()
	if err != nil {
		return asm.Bytecode{}, err
	}

	size, err := g.pickSize(rnd, ops)
	if err != nil {
		return asm.Bytecode{}, err
	}

	pick, err := g.opPicker()
	if err != nil {
		return asm.Bytecode{}, err
	}

	parts := []asm.Bytecode{}
	for i := 0; i < size; {
		op := vm.INVALID
		limit := size // data may be truncated at the end of the code
		if len(ops) > 0 {
			limit = ops[0].pos - i - 1
		}

		if len(ops) > 0 && ops[0].pos == i {
			op = ops[0].op
			ops = ops[1:]
		} else {
			// Pick a random operation, but make sure to not overshoot to next position.
			op = pick(rnd)
			if dataLength(op) > limit {
				op = vm.JUMPDEST
				if limit > 0 {
					op = vm.PUSH1 + vm.OpCode(min(limit, 32)-1)
				}
			}
		}

		data := make([]byte, min(dataLength(op), size-i-1))
		rnd.Read(data)
		if op == vm.RJUMPV && len(data) > 0 {
			data[0] = 0 // single entry jump table
		}
		parts = append(parts, asm.Op(op), asm.Raw(data))
		i += 1 + len(data)
	}

	// After filling in the code, we expect all ops to have been processed.
	if len(ops) > 0 {
		return asm.Bytecode{}, fmt.Errorf(
			"%w, unable to satisfy last %v constraint",
			ErrUnsatisfiable, len(ops))
	}
	return asm.Concat(parts...), nil
}

func dataLength(op vm.OpCode) int {
	return op.Info().DataPortionLength
}

// normalizeOps sorts the operation constraints by position and checks that
// they neither conflict nor overlap with each others data portion.
func (g *CodeGenerator) normalizeOps() ([]constOpConstraint, error) {
	ops := slices.Clone(g.constOps)
	sort.Slice(ops, func(i, j int) bool { return ops[i].pos < ops[j].pos })
	ops = slices.Compact(ops)

	for i, cur := range ops {
		if cur.pos < 0 {
			return nil, fmt.Errorf("%w, negative position %d of %v", ErrUnsatisfiable, cur.pos, cur.op)
		}
		if i == 0 {
			continue
		}
		prev := ops[i-1]
		if prev.pos == cur.pos {
			return nil, fmt.Errorf(
				"%w, unable to satisfy conflicting constraint for op[%d]=%v and op[%d]=%v",
				ErrUnsatisfiable, prev.pos, prev.op, cur.pos, cur.op,
			)
		}
		if prev.pos+1+dataLength(prev.op) > cur.pos {
			return nil, fmt.Errorf(
				"%w, op[%d]=%v is covered by the data of op[%d]=%v",
				ErrUnsatisfiable, cur.pos, cur.op, prev.pos, prev.op,
			)
		}
	}
	return ops, nil
}

func (g *CodeGenerator) pickSize(rnd *rand.Rand, ops []constOpConstraint) (int, error) {
	// Pick a random size that is large enough for all const constraints.
	minSize := 0
	if len(ops) > 0 {
		minSize = ops[len(ops)-1].pos + 1
	}

	if len(g.sizes) == 0 {
		if minSize >= st.MaxCodeSize {
			return minSize, nil
		}
		return int(rnd.Int31n(int32(st.MaxCodeSize+1-minSize))) + minSize, nil
	}

	size := g.sizes[0]
	for _, cur := range g.sizes[1:] {
		if cur != size {
			return 0, fmt.Errorf("%w, conflicting code sizes %d and %d", ErrUnsatisfiable, size, cur)
		}
	}
	if size < 0 {
		return 0, fmt.Errorf("%w, negative code size %d", ErrUnsatisfiable, size)
	}
	if size < minSize {
		return 0, fmt.Errorf(
			"%w, operation constraint on position %d cannot be satisfied with a code length of %d",
			ErrUnsatisfiable, minSize-1, size,
		)
	}
	return size, nil
}

func (g *CodeGenerator) opPicker() (func(*rand.Rand) vm.OpCode, error) {
	if len(g.revisions) == 0 {
		return func(rnd *rand.Rand) vm.OpCode {
			return vm.OpCode(rnd.Uint32())
		}, nil
	}
	revision := g.revisions[0]
	for _, cur := range g.revisions[1:] {
		if cur != revision {
			return nil, fmt.Errorf("%w, conflicting revisions %v and %v", ErrUnsatisfiable, revision, cur)
		}
	}
	valid := validOpCodes(revision)
	return func(rnd *rand.Rand) vm.OpCode {
		return valid[rnd.Intn(len(valid))]
	}, nil
}

func validOpCodes(revision tosca.Revision) []vm.OpCode {
	res := []vm.OpCode{}
	for _, info := range vm.Catalog() {
		if vm.IsValidIn(info.OpCode, revision) {
			res = append(res, info.OpCode)
		}
	}
	return res
}

// RandomInstruction produces a random instruction valid in the given revision
// with random immediate data.
func RandomInstruction(rnd *rand.Rand, revision tosca.Revision) asm.Bytecode {
	valid := validOpCodes(revision)
	op := valid[rnd.Intn(len(valid))]
	data := make([]byte, dataLength(op))
	rnd.Read(data)
	if op == vm.RJUMPV {
		data[0] = 0
	}
	return asm.Op(op).Concat(asm.Raw(data))
}

// Clone creates an independent copy of the generator in its current state.
// Future modifications are isolated from each other.
func (g *CodeGenerator) Clone() *CodeGenerator {
	return &CodeGenerator{
		sizes:     slices.Clone(g.sizes),
		constOps:  slices.Clone(g.constOps),
		revisions: slices.Clone(g.revisions),
	}
}

// Restore copies the state of the provided generator into this generator.
func (g *CodeGenerator) Restore(other *CodeGenerator) {
	if g == other {
		return
	}
	g.sizes = slices.Clone(other.sizes)
	g.constOps = slices.Clone(other.constOps)
	g.revisions = slices.Clone(other.revisions)
}

func (g *CodeGenerator) String() string {
	var parts []string

	sizes := slices.Clone(g.sizes)
	slices.Sort(sizes)
	for _, size := range slices.Compact(sizes) {
		parts = append(parts, fmt.Sprintf("size=%d", size))
	}

	for _, revision := range g.revisions {
		parts = append(parts, fmt.Sprintf("revision=%v", revision))
	}

	sort.Slice(g.constOps, func(i, j int) bool { return g.constOps[i].pos < g.constOps[j].pos })
	for _, op := range g.constOps {
		parts = append(parts, fmt.Sprintf("op[%v]=%v", op.pos, op.op))
	}

	return "{" + strings.Join(parts, ",") + "}"
}
