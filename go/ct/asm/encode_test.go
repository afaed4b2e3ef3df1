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
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"go.uber.org/mock/gomock"

	"github.com/Fantom-foundation/tosca-tests/go/ct/common"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

var ff32 = strings.Repeat("ff", 32)

func TestEncode_ProducesExpectedCode(t *testing.T) {
	tests := []struct {
		op   vm.OpCode
		data any
		want string
	}{
		{vm.ADD, nil, "0x01"},
		{vm.ADD, 0, "0x01"},
		{vm.ADD, []byte{}, "0x01"},
		{vm.PUSH1, 0x01, "0x6001"},
		{vm.PUSH1, 0xFF, "0x60ff"},
		{vm.PUSH1, -1, "0x60ff"},
		{vm.PUSH1, -2, "0x60fe"},
		{vm.PUSH1, -128, "0x6080"},
		{vm.PUSH2, 0x1234, "0x611234"},
		{vm.PUSH2, 1, "0x610001"},
		{vm.PUSH2, -1, "0x61ffff"},
		{vm.PUSH20, 1, "0x73" + strings.Repeat("00", 19) + "01"},
		{vm.PUSH32, -1, "0x7f" + ff32},
		{vm.PUSH2, []byte{0x12, 0x34}, "0x611234"},
		{vm.PUSH4, []byte{0x12, 0x34}, "0x6312340000"},
		{vm.PUSH2, Raw([]byte{0xab}), "0x61ab00"},
		{vm.PUSH2, common.NewBytes([]byte{0xab, 0xcd}), "0x61abcd"},
		{vm.PUSH20, tosca.Address{19: 1}, "0x73" + strings.Repeat("00", 19) + "01"},
		{vm.RJUMP, -3, "0xe0fffd"},
		{vm.DUPN, 7, "0xe607"},
	}

	for _, test := range tests {
		code, err := Encode(test.op, test.data)
		if err != nil {
			t.Errorf("failed to encode %v with %v: %v", test.op, test.data, err)
			continue
		}
		if want, got := test.want, code.Hex(); want != got {
			t.Errorf("unexpected encoding of %v with %v, wanted %s, got %s", test.op, test.data, want, got)
		}
	}
}

func TestEncode_SupportsIntegerKinds(t *testing.T) {
	values := []any{
		int(0x42), int8(0x42), int16(0x42), int32(0x42), int64(0x42),
		uint(0x42), uint8(0x42), uint16(0x42), uint32(0x42), uint64(0x42),
		big.NewInt(0x42), *big.NewInt(0x42),
		uint256.NewInt(0x42), *uint256.NewInt(0x42),
		common.NewU256(0x42), tosca.NewValue(0x42),
	}
	for _, value := range values {
		code, err := Encode(vm.PUSH2, value)
		if err != nil {
			t.Errorf("failed to encode %T: %v", value, err)
			continue
		}
		if want, got := "0x610042", code.Hex(); want != got {
			t.Errorf("unexpected encoding of %T, wanted %s, got %s", value, want, got)
		}
	}
}

func TestEncode_ChecksRangeOfIntegers(t *testing.T) {
	tests := []struct {
		op    vm.OpCode
		value any
		fits  bool
	}{
		{vm.PUSH1, 255, true},
		{vm.PUSH1, 256, false},
		{vm.PUSH1, -128, true},
		{vm.PUSH1, -129, false},
		{vm.PUSH2, 0xFFFF, true},
		{vm.PUSH2, 0x10000, false},
		{vm.PUSH2, -0x8000, true},
		{vm.PUSH2, -0x8001, false},
		{vm.PUSH32, common.MaxU256(), true},
		{vm.PUSH32, new(big.Int).Lsh(big.NewInt(1), 256), false},
		{vm.PUSH32, new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255)), true},
	}

	for _, test := range tests {
		_, err := Encode(test.op, test.value)
		if test.fits && err != nil {
			t.Errorf("unexpected error encoding %v with %v: %v", test.op, test.value, err)
		}
		if !test.fits && !errors.Is(err, ErrDataOverflow) {
			t.Errorf("expected overflow encoding %v with %v, got %v", test.op, test.value, err)
		}
	}
}

func TestEncode_ReportsInvalidData(t *testing.T) {
	tests := map[string]struct {
		op   vm.OpCode
		data any
		want error
	}{
		"data for ADD":      {vm.ADD, 1, ErrNoDataPortion},
		"bytes for ADD":     {vm.ADD, []byte{1}, ErrNoDataPortion},
		"missing data":      {vm.PUSH1, nil, ErrMissingData},
		"long byte string":  {vm.PUSH1, []byte{1, 2}, ErrDataOverflow},
		"unsupported type":  {vm.PUSH1, "1", ErrUnsupportedOperand},
		"unsupported float": {vm.PUSH1, 1.5, ErrUnsupportedOperand},
		"nil big integer":   {vm.PUSH1, (*big.Int)(nil), ErrUnsupportedOperand},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Encode(test.op, test.data); !errors.Is(err, test.want) {
				t.Errorf("unexpected error, wanted %v, got %v", test.want, err)
			}
		})
	}
}

func TestEncode_CoversAllOpCodes(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := vm.OpCode(i)
		n := op.Info().DataPortionLength

		zero, err := Encode(op, 0)
		if err != nil {
			t.Errorf("failed to encode %v with 0: %v", op, err)
		} else if want, got := append([]byte{byte(op)}, make([]byte, n)...), zero.Bytes(); !bytes.Equal(want, got) {
			t.Errorf("unexpected encoding of %v with 0, wanted %x, got %x", op, want, got)
		}

		if n == 0 {
			continue
		}

		minusOne, err := Encode(op, -1)
		if err != nil {
			t.Errorf("failed to encode %v with -1: %v", op, err)
		} else if want, got := append([]byte{byte(op)}, bytes.Repeat([]byte{0xff}, n)...), minusOne.Bytes(); !bytes.Equal(want, got) {
			t.Errorf("unexpected encoding of %v with -1, wanted %x, got %x", op, want, got)
		}

		limit := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
		for _, value := range []*big.Int{
			big.NewInt(1),
			new(big.Int).Rsh(limit, 1),
			new(big.Int).Sub(limit, big.NewInt(1)),
		} {
			code, err := Encode(op, value)
			if err != nil {
				t.Errorf("failed to encode %v with %v: %v", op, value, err)
				continue
			}
			if want, got := 1+n, code.Len(); want != got {
				t.Errorf("unexpected length of %v with %v, wanted %d, got %d", op, value, want, got)
			}
		}
		if _, err := Encode(op, limit); !errors.Is(err, ErrDataOverflow) {
			t.Errorf("expected overflow encoding %v with %v, got %v", op, limit, err)
		}
	}
}

func TestEncodeUnchecked_TruncatesData(t *testing.T) {
	tests := []struct {
		op   vm.OpCode
		data any
		want string
	}{
		{vm.PUSH1, 0x1234, "0x6034"},
		{vm.PUSH1, -129, "0x607f"},
		{vm.PUSH2, 0x123456, "0x613456"},
		{vm.PUSH2, []byte{1, 2, 3}, "0x610203"},
		{vm.PUSH2, []byte{1}, "0x610100"},
		{vm.PUSH1, 0x12, "0x6012"},
		{vm.PUSH32, new(big.Int).Lsh(big.NewInt(1), 256), "0x7f" + strings.Repeat("00", 32)},
		{vm.PUSH32, new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(5)), "0x7f" + strings.Repeat("00", 31) + "05"},
	}

	for _, test := range tests {
		code, err := EncodeUnchecked(test.op, test.data)
		if err != nil {
			t.Errorf("failed to encode %v with %v: %v", test.op, test.data, err)
			continue
		}
		if want, got := test.want, code.Hex(); want != got {
			t.Errorf("unexpected encoding of %v with %v, wanted %s, got %s", test.op, test.data, want, got)
		}
	}
}

func TestEncode_ResultHasStackEffectOfInstruction(t *testing.T) {
	code := MustEncode(vm.PUSH3, 0x010203)
	if want, got := 4, code.Len(); want != got {
		t.Errorf("unexpected length, wanted %d, got %d", want, got)
	}
	if want, got := 1, code.Pushed(); want != got {
		t.Errorf("unexpected pushed elements, wanted %d, got %d", want, got)
	}
	if want, got := 1, code.MaxStackHeight(); want != got {
		t.Errorf("unexpected max stack height, wanted %d, got %d", want, got)
	}
}

func TestMustEncode_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("invalid encoding should panic")
		}
	}()
	MustEncode(vm.PUSH1, 256)
}

func TestPush_UsesSmallestWidth(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{0, "0x6000"},
		{1, "0x6001"},
		{0xFF, "0x60ff"},
		{0x100, "0x610100"},
		{0x1234, "0x611234"},
		{uint64(1) << 63, "0x678000000000000000"},
		{-1, "0x7f" + ff32},
		{-2, "0x7f" + strings.Repeat("ff", 31) + "fe"},
		{common.MaxU256(), "0x7f" + ff32},
		{[]byte{0}, "0x6000"},
		{[]byte{0, 0}, "0x610000"},
		{tosca.Address{}, "0x73" + strings.Repeat("00", 20)},
		{tosca.Word{31: 1}, "0x7f" + strings.Repeat("00", 31) + "01"},
	}

	for _, test := range tests {
		code, err := Push(test.value)
		if err != nil {
			t.Errorf("failed to push %v: %v", test.value, err)
			continue
		}
		if want, got := test.want, code.Hex(); want != got {
			t.Errorf("unexpected code pushing %v, wanted %s, got %s", test.value, want, got)
		}
	}
}

func TestPush_ReportsInvalidValues(t *testing.T) {
	tests := map[string]struct {
		value any
		want  error
	}{
		"too large":        {new(big.Int).Lsh(big.NewInt(1), 256), ErrDataOverflow},
		"too small":        {new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 256)), ErrDataOverflow},
		"long byte string": {make([]byte, 33), ErrDataOverflow},
		"empty bytes":      {[]byte{}, ErrMissingData},
		"unsupported":      {"0x01", ErrUnsupportedOperand},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Push(test.value); !errors.Is(err, test.want) {
				t.Errorf("unexpected error, wanted %v, got %v", test.want, err)
			}
		})
	}
}

func TestCall_ProducesExampleProgram(t *testing.T) {
	code, err := Call(vm.SSTORE,
		-1,
		MustCall(vm.CALL, vm.GAS, vm.ADDRESS, MustEncode(vm.PUSH1, 0x20), 0, 0, 0x20, 0x1234),
	)
	if err != nil {
		t.Fatalf("failed to produce program: %v", err)
	}
	want := "0x6112346020600060006020305af17f" + ff32 + "55"
	if got := code.Hex(); want != got {
		t.Errorf("unexpected program, wanted %s, got %s", want, got)
	}
	if want, got := 0, code.Popped(); want != got {
		t.Errorf("unexpected popped elements, wanted %d, got %d", want, got)
	}
	if want, got := 0, code.Pushed(); want != got {
		t.Errorf("unexpected pushed elements, wanted %d, got %d", want, got)
	}
	if want, got := 7, code.MaxStackHeight(); want != got {
		t.Errorf("unexpected max stack height, wanted %d, got %d", want, got)
	}
}

func TestCall_EmitsArgumentsInReverseOrder(t *testing.T) {
	code := MustCall(vm.SUB, 1, 2)
	if want, got := "0x6002600103", code.Hex(); want != got {
		t.Errorf("unexpected code, wanted %s, got %s", want, got)
	}
}

func TestCall_AcceptsPartialArguments(t *testing.T) {
	code := MustCall(vm.ADD, 1)
	if want, got := "0x600101", code.Hex(); want != got {
		t.Errorf("unexpected code, wanted %s, got %s", want, got)
	}
	if want, got := 1, code.Popped(); want != got {
		t.Errorf("unexpected popped elements, wanted %d, got %d", want, got)
	}
}

func TestCall_RejectsTooManyArguments(t *testing.T) {
	if _, err := Call(vm.ADD, 1, 2, 3); !errors.Is(err, ErrTooManyArguments) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrTooManyArguments, err)
	}
	if _, err := Call(vm.DUP1, 1); !errors.Is(err, ErrTooManyArguments) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrTooManyArguments, err)
	}
}

func TestCall_ReportsInvalidArguments(t *testing.T) {
	if _, err := Call(vm.ADD, 1, "2"); !errors.Is(err, ErrUnsupportedOperand) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrUnsupportedOperand, err)
	}
	if _, err := Call(vm.PUSH1); !errors.Is(err, ErrMissingData) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrMissingData, err)
	}
}

func TestCall_InlinesOperands(t *testing.T) {
	ctrl := gomock.NewController(t)
	operand := NewMockOperand(ctrl)
	operand.EXPECT().Bytecode().Return(Raw([]byte{0xaa, 0xbb}))

	code := MustCall(vm.POP, operand)
	if want, got := "0xaabb50", code.Hex(); want != got {
		t.Errorf("unexpected code, wanted %s, got %s", want, got)
	}
}

func TestCallWithData_EncodesImmediate(t *testing.T) {
	code := MustCallWithData(vm.RJUMPI, 5, 1)
	if want, got := "0x6001e10005", code.Hex(); want != got {
		t.Errorf("unexpected code, wanted %s, got %s", want, got)
	}
	if _, err := CallWithData(vm.RJUMPI, 0x10000, 1); !errors.Is(err, ErrDataOverflow) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrDataOverflow, err)
	}
}
