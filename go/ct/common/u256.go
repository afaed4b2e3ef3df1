// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// U256 is a 256-bit integer type. Contrary to holiman/uint256.Int the API
// operates on values rather than pointers.
type U256 struct {
	internal uint256.Int
}

// NewU256 creates a new U256 instance from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in a value of zero.
func NewU256(args ...uint64) (result U256) {
	if len(args) > 4 {
		panic("Too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args) && i < len(result.internal); i++ {
		result.internal[3-i-offset] = args[i]
	}
	return
}

func MaxU256() (result U256) {
	result.internal.SetAllOne()
	return
}

// Bytes32be returns the big-endian representation of i.
func (i U256) Bytes32be() [32]byte {
	return i.internal.Bytes32()
}

// ByteLen returns the number of bytes required to represent the value, zero
// for zero.
func (i U256) ByteLen() int {
	return i.internal.ByteLen()
}

// Neg returns the two's complement of a modulo 2^256.
func (a U256) Neg() (z U256) {
	z.internal.Neg(&a.internal)
	return
}

func (i U256) String() string {
	return fmt.Sprintf("%016x %016x %016x %016x", i.internal[3], i.internal[2], i.internal[1], i.internal[0])
}

// ToBig returns a bigInt version of i
func (i U256) ToBig() *big.Int {
	return i.internal.ToBig()
}

// U256FromBig returns a U256 version of b. Negative values are mapped to
// their two's complement representation. The second result is true if b
// does not fit into 256 bits, in which case the low-order bits are retained.
func U256FromBig(b *big.Int) (U256, bool) {
	var res U256
	abs := new(big.Int).Abs(b)
	overflow := res.internal.SetFromBig(abs)
	if b.Sign() < 0 {
		// The two's complement of values below -2^255 does not fit.
		overflow = overflow || abs.Cmp(new(big.Int).Lsh(big.NewInt(1), 255)) > 0
		res = res.Neg()
	}
	return res, overflow
}
