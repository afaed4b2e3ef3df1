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

import "github.com/Fantom-foundation/tosca-tests/go/ct/common"

const (
	// ErrNoDataPortion is produced when passing data to an instruction
	// without immediate data.
	ErrNoDataPortion = common.ConstErr("opcode does not accept data")
	// ErrMissingData is produced when no data is provided for an instruction
	// requiring immediate data.
	ErrMissingData = common.ConstErr("opcode requires data")
	// ErrDataOverflow is produced when data does not fit into the data portion
	// of an instruction.
	ErrDataOverflow = common.ConstErr("data does not fit data portion")
	// ErrUnsupportedOperand is produced for operands of unsupported types.
	ErrUnsupportedOperand = common.ConstErr("unsupported operand")
	// ErrTooManyArguments is produced when passing more stack arguments to an
	// instruction than it consumes.
	ErrTooManyArguments = common.ConstErr("too many stack arguments")
	// ErrInvalidSyntax is produced for malformed assembler input.
	ErrInvalidSyntax = common.ConstErr("invalid syntax")
)
