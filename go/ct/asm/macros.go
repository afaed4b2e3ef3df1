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
	"encoding/binary"
	"fmt"

	"github.com/Fantom-foundation/tosca-tests/go/tosca/vm"
)

// OOG consumes more gas than any realistic gas limit provides by hashing a
// huge memory region.
var OOG = MustCall(vm.SHA3, 0, 100_000_000_000)

// RJumpV produces an RJUMPV instruction with the given jump table. The table
// must have between 1 and 256 entries. The immediate data consists of the
// maximum table index followed by the big-endian relative offsets.
func RJumpV(offsets ...int16) (Bytecode, error) {
	if len(offsets) == 0 || len(offsets) > 256 {
		return Bytecode{}, fmt.Errorf("%w, jump table needs 1 to 256 entries, got %d", ErrDataOverflow, len(offsets))
	}
	table := make([]byte, 1, 1+2*len(offsets))
	table[0] = byte(len(offsets) - 1)
	for _, offset := range offsets {
		table = binary.BigEndian.AppendUint16(table, uint16(offset))
	}
	return Op(vm.RJUMPV).Concat(Raw(table)), nil
}

// Initcode produces contract creation code deploying the given code. The
// optional prefix is executed before the deployment code copies the code to
// be deployed into memory and returns it.
func Initcode(deploy Bytecode, prefix Bytecode) Bytecode {
	size := deploy.Len()
	offset := prefix.Len()
	for {
		header := Concat(
			prefix,
			MustCall(vm.CODECOPY, 0, offset, size),
			MustCall(vm.RETURN, 0, size),
		)
		if header.Len() == offset {
			return header.Concat(deploy)
		}
		offset = header.Len()
	}
}
