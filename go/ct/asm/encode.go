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
	"math/big"

	"github.com/Fantom-foundation/tosca-tests/go/ct/common"
	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// Encode produces the instruction op with the given immediate data.
//
// For instructions without a data portion, data must be nil, an integer
// zero or an empty byte string. For all other instructions data may be
//   - an integer, encoded big-endian with negative values in two's
//     complement; it must be in the range [-2^(8n-1), 2^(8n)) for a data
//     portion of n bytes,
//   - a byte string, used as-is if it has exactly n bytes and right-padded
//     with zeros if it is shorter,
//   - an Operand, whose code is used as a byte string.
func Encode(op vm.OpCode, data any) (Bytecode, error) {
	return encode(op, data, false)
}

// EncodeUnchecked is like Encode but truncates data exceeding the data
// portion instead of failing. Integers keep their low-order bytes, byte
// strings their trailing bytes.
func EncodeUnchecked(op vm.OpCode, data any) (Bytecode, error) {
	return encode(op, data, true)
}

// MustEncode is like Encode but panics on errors.
func MustEncode(op vm.OpCode, data any) Bytecode {
	return must(Encode(op, data))
}

func encode(op vm.OpCode, data any, unchecked bool) (Bytecode, error) {
	width := op.Info().DataPortionLength
	if width == 0 {
		if isEmptyData(data) {
			return Op(op), nil
		}
		return Bytecode{}, fmt.Errorf("%w, %v got %v", ErrNoDataPortion, op, data)
	}
	if data == nil {
		return Bytecode{}, fmt.Errorf("%w, %v requires %d bytes", ErrMissingData, op, width)
	}
	immediate, err := encodeData(data, width, unchecked)
	if err != nil {
		return Bytecode{}, fmt.Errorf("failed to encode data of %v: %w", op, err)
	}
	return Op(op).Concat(Raw(immediate)), nil
}

func isEmptyData(data any) bool {
	if data == nil {
		return true
	}
	if value, ok := toBigInt(data); ok {
		return value.Sign() == 0
	}
	if raw, ok := toByteString(data); ok {
		return len(raw) == 0
	}
	if operand, ok := data.(Operand); ok {
		return operand.Bytecode().Len() == 0
	}
	return false
}

func encodeData(data any, width int, unchecked bool) ([]byte, error) {
	if value, ok := toBigInt(data); ok {
		return encodeInt(value, width, unchecked)
	}
	if raw, ok := toByteString(data); ok {
		return encodeBytes(raw, width, unchecked)
	}
	if operand, ok := data.(Operand); ok {
		return encodeBytes(operand.Bytecode().Bytes(), width, unchecked)
	}
	return nil, fmt.Errorf("%w, %T", ErrUnsupportedOperand, data)
}

func encodeInt(value *big.Int, width int, unchecked bool) ([]byte, error) {
	bits := 8 * width
	if !unchecked && !fitsInto(value, bits) {
		return nil, fmt.Errorf("%w, %v exceeds %d bytes", ErrDataOverflow, value, width)
	}
	if width == 32 {
		word, _ := common.U256FromBig(value)
		res := word.Bytes32be()
		return res[:], nil
	}
	one := big.NewInt(1)
	mask := new(big.Int).Sub(new(big.Int).Lsh(one, uint(bits)), one)
	return common.LeftPadSlice(new(big.Int).And(value, mask).Bytes(), width), nil
}

// fitsInto reports whether value is in the range [-2^(bits-1), 2^bits).
func fitsInto(value *big.Int, bits int) bool {
	if value.Sign() >= 0 {
		return value.BitLen() <= bits
	}
	// ^value = -value-1 is non-negative for negative values
	return new(big.Int).Not(value).BitLen() <= bits-1
}

func encodeBytes(raw []byte, width int, unchecked bool) ([]byte, error) {
	if len(raw) > width {
		if !unchecked {
			return nil, fmt.Errorf("%w, got %d bytes for %d byte data portion", ErrDataOverflow, len(raw), width)
		}
		raw = raw[len(raw)-width:]
	}
	return common.RightPadSlice(raw, width), nil
}

// Push produces a push instruction for the given value using the smallest
// PUSHn able to hold it. Zero is pushed using PUSH1, negative integers using
// PUSH32 in two's complement. Byte strings of n bytes are pushed using PUSHn,
// preserving leading zeros.
func Push(value any) (Bytecode, error) {
	if v, ok := toBigInt(value); ok {
		word, overflow := common.U256FromBig(v)
		if overflow {
			return Bytecode{}, fmt.Errorf("%w, %v exceeds 32 bytes", ErrDataOverflow, v)
		}
		width := 32
		if v.Sign() >= 0 {
			width = max(1, word.ByteLen())
		}
		return Encode(pushOp(width), v)
	}
	if raw, ok := toByteString(value); ok {
		if len(raw) == 0 {
			return Bytecode{}, fmt.Errorf("%w, empty byte string", ErrMissingData)
		}
		if len(raw) > 32 {
			return Bytecode{}, fmt.Errorf("%w, %d bytes exceed 32 bytes", ErrDataOverflow, len(raw))
		}
		return Encode(pushOp(len(raw)), raw)
	}
	return Bytecode{}, fmt.Errorf("%w, %T", ErrUnsupportedOperand, value)
}

// MustPush is like Push but panics on errors.
func MustPush(value any) Bytecode {
	return must(Push(value))
}

func pushOp(width int) vm.OpCode {
	return vm.PUSH1 + vm.OpCode(width-1)
}

// Call produces the instruction op preceded by the code computing its stack
// arguments. Arguments are listed top of stack first, as in the textual form
// OP(a, b, c), and are thus emitted in reverse order. OpCode arguments are
// emitted as bare instructions, Operands are inlined, and every other value
// is pushed using Push. Fewer arguments than consumed by op are permitted,
// leaving the remaining operands to the surrounding code.
func Call(op vm.OpCode, args ...any) (Bytecode, error) {
	return CallWithData(op, nil, args...)
}

// CallWithData is like Call for instructions with immediate data.
func CallWithData(op vm.OpCode, data any, args ...any) (Bytecode, error) {
	if popped := op.Info().Popped; len(args) > popped {
		return Bytecode{}, fmt.Errorf("%w, %v consumes %d elements, got %d", ErrTooManyArguments, op, popped, len(args))
	}
	parts := make([]Bytecode, 0, len(args)+1)
	for i := len(args) - 1; i >= 0; i-- {
		arg, err := toStackArgument(args[i])
		if err != nil {
			return Bytecode{}, fmt.Errorf("invalid argument %d of %v: %w", i, op, err)
		}
		parts = append(parts, arg)
	}
	instruction, err := Encode(op, data)
	if err != nil {
		return Bytecode{}, err
	}
	return Concat(append(parts, instruction)...), nil
}

// MustCall is like Call but panics on errors.
func MustCall(op vm.OpCode, args ...any) Bytecode {
	return must(Call(op, args...))
}

// MustCallWithData is like CallWithData but panics on errors.
func MustCallWithData(op vm.OpCode, data any, args ...any) Bytecode {
	return must(CallWithData(op, data, args...))
}

func toStackArgument(arg any) (Bytecode, error) {
	switch a := arg.(type) {
	case vm.OpCode:
		return Op(a), nil
	case Operand:
		return a.Bytecode(), nil
	}
	return Push(arg)
}

func must(code Bytecode, err error) Bytecode {
	if err != nil {
		panic(err)
	}
	return code
}
