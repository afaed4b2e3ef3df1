// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Fantom-foundation/tosca-tests/go/tosca"
)

// ErrUnknownOpCode is returned when looking up an instruction name which is
// not part of the catalog.
const ErrUnknownOpCode = tosca.ConstError("unknown opcode")

// Info summarizes the static properties of an instruction. The stack effect
// is advisory metadata used to size the stack preparation around an
// instruction; it is not derived from any execution.
type Info struct {
	Name   string
	OpCode OpCode
	// Popped is the number of stack elements consumed by the instruction.
	Popped int
	// Pushed is the number of stack elements produced by the instruction.
	Pushed int
	// MinStackHeight is the stack depth required before the instruction can
	// be executed. It exceeds Popped for instructions reading deeper stack
	// positions without consuming them, e.g. DUP and SWAP.
	MinStackHeight int
	// DataPortionLength is the number of immediate bytes following the
	// instruction in the code.
	DataPortionLength int
	// Since is the first revision defining the instruction.
	Since tosca.Revision
	// Undefined marks the sentinel describing a byte without meaning.
	Undefined bool
}

// Width returns the encoded size of the instruction in bytes.
func (i Info) Width() int {
	return 1 + i.DataPortionLength
}

func (i Info) String() string {
	return i.Name
}

var (
	// infos is indexed by the instruction's byte value; nil for undefined bytes.
	infos [256]*Info
	// names maps canonical names and aliases to catalog entries.
	names = map[string]*Info{}
)

// aliases lists alternative names of catalog entries. Byte lookups always
// produce the canonical entry.
var aliases = map[string]OpCode{
	"KECCAK256":  SHA3,
	"DIFFICULTY": PREVRANDAO,
	"SENDALL":    SELFDESTRUCT,
}

func init() {
	for _, info := range catalogEntries() {
		info := info
		if infos[info.OpCode] != nil {
			panic(fmt.Sprintf("duplicate catalog entry for 0x%02x", byte(info.OpCode)))
		}
		infos[info.OpCode] = &info
		names[info.Name] = &info
	}
	for alias, op := range aliases {
		names[alias] = infos[op]
	}
}

func catalogEntries() []Info {
	const (
		frontier       = tosca.R00_Frontier
		homestead      = tosca.R01_Homestead
		byzantium      = tosca.R04_Byzantium
		constantinople = tosca.R05_Constantinople
		istanbul       = tosca.R07_Istanbul
		london         = tosca.R10_London
		shanghai       = tosca.R12_Shanghai
		cancun         = tosca.R13_Cancun
		osaka          = tosca.R15_Osaka
		eof            = tosca.R99_UnknownNextRevision
	)

	def := func(name string, op OpCode, popped, pushed int, since tosca.Revision) Info {
		return Info{
			Name:           name,
			OpCode:         op,
			Popped:         popped,
			Pushed:         pushed,
			MinStackHeight: popped,
			Since:          since,
		}
	}

	// Shorthands following the shape of the stack effect.
	op := func(name string, code OpCode, popped int) Info {
		return def(name, code, popped, 1, frontier)
	}
	consume := func(name string, code OpCode, popped int) Info {
		return def(name, code, popped, 0, frontier)
	}
	withData := func(info Info, length int) Info {
		info.DataPortionLength = length
		return info
	}
	withMinStackHeight := func(info Info, height int) Info {
		info.MinStackHeight = height
		return info
	}
	since := func(info Info, revision tosca.Revision) Info {
		info.Since = revision
		return info
	}

	res := []Info{
		consume("STOP", STOP, 0),
		op("ADD", ADD, 2),
		op("MUL", MUL, 2),
		op("SUB", SUB, 2),
		op("DIV", DIV, 2),
		op("SDIV", SDIV, 2),
		op("MOD", MOD, 2),
		op("SMOD", SMOD, 2),
		op("ADDMOD", ADDMOD, 3),
		op("MULMOD", MULMOD, 3),
		op("EXP", EXP, 2),
		op("SIGNEXTEND", SIGNEXTEND, 2),

		op("LT", LT, 2),
		op("GT", GT, 2),
		op("SLT", SLT, 2),
		op("SGT", SGT, 2),
		op("EQ", EQ, 2),
		op("ISZERO", ISZERO, 1),
		op("AND", AND, 2),
		op("OR", OR, 2),
		op("XOR", XOR, 2),
		op("NOT", NOT, 1),
		op("BYTE", BYTE, 2),
		since(op("SHL", SHL, 2), constantinople),
		since(op("SHR", SHR, 2), constantinople),
		since(op("SAR", SAR, 2), constantinople),
		since(op("CLZ", CLZ, 1), osaka),

		op("SHA3", SHA3, 2),

		op("ADDRESS", ADDRESS, 0),
		op("BALANCE", BALANCE, 1),
		op("ORIGIN", ORIGIN, 0),
		op("CALLER", CALLER, 0),
		op("CALLVALUE", CALLVALUE, 0),
		op("CALLDATALOAD", CALLDATALOAD, 1),
		op("CALLDATASIZE", CALLDATASIZE, 0),
		consume("CALLDATACOPY", CALLDATACOPY, 3),
		op("CODESIZE", CODESIZE, 0),
		consume("CODECOPY", CODECOPY, 3),
		op("GASPRICE", GASPRICE, 0),
		op("EXTCODESIZE", EXTCODESIZE, 1),
		consume("EXTCODECOPY", EXTCODECOPY, 4),
		since(op("RETURNDATASIZE", RETURNDATASIZE, 0), byzantium),
		since(consume("RETURNDATACOPY", RETURNDATACOPY, 3), byzantium),
		since(op("EXTCODEHASH", EXTCODEHASH, 1), constantinople),

		op("BLOCKHASH", BLOCKHASH, 1),
		op("COINBASE", COINBASE, 0),
		op("TIMESTAMP", TIMESTAMP, 0),
		op("NUMBER", NUMBER, 0),
		op("PREVRANDAO", PREVRANDAO, 0),
		op("GASLIMIT", GASLIMIT, 0),
		since(op("CHAINID", CHAINID, 0), istanbul),
		since(op("SELFBALANCE", SELFBALANCE, 0), istanbul),
		since(op("BASEFEE", BASEFEE, 0), london),
		since(op("BLOBHASH", BLOBHASH, 1), cancun),
		since(op("BLOBBASEFEE", BLOBBASEFEE, 0), cancun),

		consume("POP", POP, 1),
		op("MLOAD", MLOAD, 1),
		consume("MSTORE", MSTORE, 2),
		consume("MSTORE8", MSTORE8, 2),
		op("SLOAD", SLOAD, 1),
		consume("SSTORE", SSTORE, 2),
		consume("JUMP", JUMP, 1),
		consume("JUMPI", JUMPI, 2),
		op("PC", PC, 0),
		op("MSIZE", MSIZE, 0),
		op("GAS", GAS, 0),
		consume("JUMPDEST", JUMPDEST, 0),
		since(op("TLOAD", TLOAD, 1), cancun),
		since(consume("TSTORE", TSTORE, 2), cancun),
		since(consume("MCOPY", MCOPY, 3), cancun),
		since(op("PUSH0", PUSH0, 0), shanghai),
	}

	for i := 1; i <= 32; i++ {
		push := PUSH1 + OpCode(i-1)
		res = append(res, withData(op(fmt.Sprintf("PUSH%d", i), push, 0), i))
	}
	for i := 1; i <= 16; i++ {
		dup := DUP1 + OpCode(i-1)
		res = append(res, withMinStackHeight(op(fmt.Sprintf("DUP%d", i), dup, 0), i))
	}
	for i := 1; i <= 16; i++ {
		swap := SWAP1 + OpCode(i-1)
		res = append(res, withMinStackHeight(consume(fmt.Sprintf("SWAP%d", i), swap, 0), i+1))
	}
	for i := 0; i <= 4; i++ {
		log := LOG0 + OpCode(i)
		res = append(res, consume(fmt.Sprintf("LOG%d", i), log, i+2))
	}

	res = append(res,
		since(op("DATALOAD", DATALOAD, 1), eof),
		since(withData(op("DATALOADN", DATALOADN, 0), 2), eof),
		since(op("DATASIZE", DATASIZE, 0), eof),
		since(consume("DATACOPY", DATACOPY, 3), eof),

		since(withData(consume("RJUMP", RJUMP, 0), 2), eof),
		since(withData(consume("RJUMPI", RJUMPI, 1), 2), eof),
		// RJUMPV carries a variable sized jump table; the catalog lists the
		// size of a table with a single entry.
		since(withData(consume("RJUMPV", RJUMPV, 1), 3), eof),
		since(withData(consume("CALLF", CALLF, 0), 2), eof),
		since(consume("RETF", RETF, 0), eof),
		since(withData(consume("JUMPF", JUMPF, 0), 2), eof),
		since(withMinStackHeight(withData(op("DUPN", DUPN, 0), 1), 1), eof),
		since(withMinStackHeight(withData(consume("SWAPN", SWAPN, 0), 1), 2), eof),
		since(withMinStackHeight(withData(consume("EXCHANGE", EXCHANGE, 0), 1), 3), eof),
		since(withData(op("EOFCREATE", EOFCREATE, 4), 1), eof),
		since(withData(consume("RETURNCONTRACT", RETURNCONTRACT, 2), 1), eof),

		op("CREATE", CREATE, 3),
		op("CALL", CALL, 7),
		op("CALLCODE", CALLCODE, 7),
		consume("RETURN", RETURN, 2),
		since(op("DELEGATECALL", DELEGATECALL, 6), homestead),
		since(op("CREATE2", CREATE2, 4), constantinople),
		since(op("RETURNDATALOAD", RETURNDATALOAD, 1), eof),
		since(op("EXTCALL", EXTCALL, 4), eof),
		since(op("EXTDELEGATECALL", EXTDELEGATECALL, 3), eof),
		since(op("STATICCALL", STATICCALL, 6), byzantium),
		since(op("EXTSTATICCALL", EXTSTATICCALL, 3), eof),
		since(consume("REVERT", REVERT, 2), byzantium),
		consume("INVALID", INVALID, 0),
		consume("SELFDESTRUCT", SELFDESTRUCT, 1),
	)
	return res
}

// Info returns the catalog entry of the given instruction. Bytes without a
// definition produce an entry flagged as Undefined and named OPCODE_XX,
// such that code containing them can still be built and printed.
func (op OpCode) Info() Info {
	if info := infos[op]; info != nil {
		return *info
	}
	return Info{
		Name:      fmt.Sprintf("OPCODE_%02X", byte(op)),
		OpCode:    op,
		Since:     tosca.R00_Frontier,
		Undefined: true,
	}
}

// IsDefined reports whether the catalog contains an entry for op.
func IsDefined(op OpCode) bool {
	return infos[op] != nil
}

// ByName looks up an instruction by its name or one of its aliases.
func ByName(name string) (Info, error) {
	info, found := names[name]
	if !found {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownOpCode, name)
	}
	return *info, nil
}

// ByValue looks up the instruction identified by the given byte. The result
// is false if no instruction is defined for it.
func ByValue(b byte) (Info, bool) {
	info := infos[b]
	if info == nil {
		return Info{}, false
	}
	return *info, true
}

// Catalog returns all defined instructions ordered by their byte value.
func Catalog() []Info {
	res := make([]Info, 0, len(infos))
	for _, info := range infos {
		if info != nil {
			res = append(res, *info)
		}
	}
	return res
}

// Names returns the sorted list of all instruction names, including aliases.
func Names() []string {
	res := maps.Keys(names)
	slices.Sort(res)
	return res
}

// UndefinedOpCodes returns all byte values without an instruction definition.
func UndefinedOpCodes() []OpCode {
	res := []OpCode{}
	for i := 0; i < 256; i++ {
		if infos[i] == nil {
			res = append(res, OpCode(i))
		}
	}
	return res
}
