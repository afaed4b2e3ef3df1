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
	"math/big"

	"github.com/holiman/uint256"

	"github.com/Fantom-foundation/tosca-tests/go/ct/common"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
)

//go:generate mockgen -source operand.go -destination operand_mock.go -package asm

// Operand is implemented by values which are inlined unchanged when used as
// stack arguments of an instruction. Bytecode is the canonical Operand.
type Operand interface {
	Bytecode() Bytecode
}

// toBigInt converts the supported integer kinds into a big integer. The
// second result is false if value is not an integer.
func toBigInt(value any) (*big.Int, bool) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case big.Int:
		return new(big.Int).Set(&v), true
	case uint256.Int:
		return v.ToBig(), true
	case *uint256.Int:
		if v == nil {
			return nil, false
		}
		return v.ToBig(), true
	case common.U256:
		return v.ToBig(), true
	case tosca.Value:
		return v.ToBig(), true
	}
	return nil, false
}

// toByteString converts the supported byte string kinds into a byte slice.
// Fixed size types keep their full width, including leading zeros.
func toByteString(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case common.Bytes:
		return v.ToBytes(), true
	case tosca.Address:
		return v[:], true
	case tosca.Key:
		return v[:], true
	case tosca.Word:
		return v[:], true
	case tosca.Hash:
		return v[:], true
	}
	return nil, false
}
