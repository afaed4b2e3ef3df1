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
	"errors"
	"slices"
	"testing"

	"github.com/Fantom-foundation/tosca-tests/go/ct/asm"
	. "github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

func TestCode_NewCode(t *testing.T) {
	code := NewCode([]byte{})
	if want, got := 0, code.Length(); want != got {
		t.Errorf("unexpected code length, want %v, got %v", want, got)
	}

	code = NewCode([]byte{byte(ADD), byte(PUSH1), 0, byte(PUSH2)})
	if want, got := 4, code.Length(); want != got {
		t.Errorf("unexpected code length, want %v, got %v", want, got)
	}
}

func TestCode_NewCodeIsIndependent(t *testing.T) {
	src := []byte{byte(ADD), byte(PUSH1), 5, byte(PUSH2)}
	code := NewCode(src)
	src[0] = byte(PUSH1)
	if want, got := byte(ADD), code.Bytecode().Bytes()[0]; want != got {
		t.Errorf("unexpected code, want %v, got %v", want, got)
	}
}

func TestCode_IsCode(t *testing.T) {
	code := NewCode([]byte{byte(ADD), byte(PUSH1), 0, byte(PUSH2), 1})
	for i, want := range []bool{true, true, false, true, false, true, true} {
		if got := code.IsCode(i); want != got {
			t.Errorf("unexpected result for position %d, want %t, got %t", i, want, got)
		}
	}
	if !code.IsCode(-1) {
		t.Errorf("negative positions should be code")
	}
}

func TestCode_IsData(t *testing.T) {
	code := NewCode([]byte{byte(ADD), byte(PUSH1), 0, byte(PUSH2)})
	for i, want := range []bool{false, false, true, false, false, false} {
		if got := code.IsData(i); want != got {
			t.Errorf("unexpected result for position %d, want %t, got %t", i, want, got)
		}
	}
}

func TestCode_EofOpCodesHaveNoDataPortion(t *testing.T) {
	// RJUMP carries two immediate bytes in EOF containers only.
	code := NewCode([]byte{byte(RJUMP), byte(JUMPDEST), byte(PUSH1), byte(JUMPDEST)})
	for i, want := range []bool{false, false, false, true} {
		if got := code.IsData(i); want != got {
			t.Errorf("unexpected result for position %d, want %t, got %t", i, want, got)
		}
	}
	if want, got := []int{1}, code.JumpDests(); !slices.Equal(want, got) {
		t.Errorf("unexpected jump destinations, wanted %v, got %v", want, got)
	}
}

func TestCode_GetOperation(t *testing.T) {
	code := NewCode([]byte{byte(ADD), byte(PUSH1), 0, byte(PUSH2)})
	for i, want := range map[int]OpCode{-1: STOP, 0: ADD, 1: PUSH1, 3: PUSH2, 6: STOP} {
		if got, err := code.GetOperation(i); err != nil || want != got {
			t.Errorf("unexpected result for position %d, want %v, got %v, err %v", i, want, got, err)
		}
	}
	if _, err := code.GetOperation(2); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCode_JumpDests(t *testing.T) {
	code := NewCode([]byte{byte(JUMPDEST), byte(PUSH1), byte(JUMPDEST), byte(JUMPDEST), byte(PUSH2), byte(JUMPDEST)})
	if want, got := []int{0, 3}, code.JumpDests(); !slices.Equal(want, got) {
		t.Errorf("unexpected jump destinations, wanted %v, got %v", want, got)
	}
	for i, want := range []bool{true, false, false, true, false, false, false} {
		if got := code.IsJumpDest(i); want != got {
			t.Errorf("unexpected result for position %d, want %t, got %t", i, want, got)
		}
	}
	if code.IsJumpDest(-1) {
		t.Errorf("negative positions are no jump destinations")
	}
}

func TestCode_FromBytecode(t *testing.T) {
	bytecode := asm.MustCall(JUMP, asm.MustPush(0x0102))
	code := FromBytecode(bytecode)
	if !code.Bytecode().Equal(bytecode) {
		t.Errorf("unexpected byte code, wanted %v, got %v", bytecode, code.Bytecode())
	}
	for i, want := range []bool{true, false, false, true} {
		if got := code.IsCode(i); want != got {
			t.Errorf("unexpected result for position %d, want %t, got %t", i, want, got)
		}
	}
}
