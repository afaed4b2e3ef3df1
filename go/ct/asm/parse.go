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
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// Parse assembles code from its textual form. The input is a whitespace
// separated sequence of
//   - opcode names, including aliases and OPCODE_XX names of undefined
//     opcodes, each followed by an integer immediate if the opcode has a
//     data portion,
//   - 0x-prefixed hex literals, inserted as raw bytes.
//
// Integer immediates are decimal or 0x-prefixed hex, and may be negative.
// The immediate of RJUMPV is taken as the raw jump table if given in hex.
// Text following a ';' up to the end of the line is ignored.
func Parse(src string) (Bytecode, error) {
	tokens := tokenize(src)
	parts := make([]Bytecode, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if isHex(token) {
			raw, err := hexutil.Decode(token)
			if err != nil {
				return Bytecode{}, fmt.Errorf("%w, invalid hex literal %q: %v", ErrInvalidSyntax, token, err)
			}
			parts = append(parts, Raw(raw))
			continue
		}

		op, err := parseOpCode(token)
		if err != nil {
			return Bytecode{}, err
		}
		if op.Info().DataPortionLength == 0 {
			parts = append(parts, Op(op))
			continue
		}

		if i+1 >= len(tokens) {
			return Bytecode{}, fmt.Errorf("%w, %v at end of input", ErrMissingData, op)
		}
		i++
		code, err := parseImmediate(op, tokens[i])
		if err != nil {
			return Bytecode{}, err
		}
		parts = append(parts, code)
	}
	return Concat(parts...), nil
}

// MustParse is like Parse but panics on errors.
func MustParse(src string) Bytecode {
	return must(Parse(src))
}

func tokenize(src string) []string {
	res := []string{}
	for _, line := range strings.Split(src, "\n") {
		if comment := strings.IndexByte(line, ';'); comment >= 0 {
			line = line[:comment]
		}
		res = append(res, strings.Fields(line)...)
	}
	return res
}

func isHex(token string) bool {
	return strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X")
}

func parseOpCode(token string) (vm.OpCode, error) {
	name := strings.ToUpper(token)
	if info, err := vm.ByName(name); err == nil {
		return info.OpCode, nil
	}
	if value, found := strings.CutPrefix(name, "OPCODE_"); found && len(value) == 2 {
		if b, err := strconv.ParseUint(value, 16, 8); err == nil && !vm.IsDefined(vm.OpCode(b)) {
			return vm.OpCode(b), nil
		}
	}
	return 0, fmt.Errorf("%w, unknown opcode %q", ErrInvalidSyntax, token)
}

func parseImmediate(op vm.OpCode, token string) (Bytecode, error) {
	if op == vm.RJUMPV && isHex(token) {
		table, err := hexutil.Decode(token)
		if err != nil || len(table) == 0 {
			return Bytecode{}, fmt.Errorf("%w, invalid jump table %q", ErrInvalidSyntax, token)
		}
		if want := 1 + 2*(int(table[0])+1); len(table) != want {
			return Bytecode{}, fmt.Errorf("%w, jump table %q has %d bytes, expected %d", ErrInvalidSyntax, token, len(table), want)
		}
		return Op(op).Concat(Raw(table)), nil
	}
	value, ok := new(big.Int).SetString(token, 0)
	if !ok {
		return Bytecode{}, fmt.Errorf("%w, invalid immediate %q of %v", ErrInvalidSyntax, token, op)
	}
	return Encode(op, value)
}
