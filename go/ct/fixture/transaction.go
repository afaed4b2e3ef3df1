// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fixture

import (
	"encoding/json"
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Fantom-foundation/tosca-tests/go/ct/asm"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
)

// Transaction is a message call or, if To is nil, a contract creation whose
// Data holds the init code.
type Transaction struct {
	Nonce    uint64
	To       *tosca.Address
	Value    tosca.Value
	GasLimit uint64
	Data     asm.Bytecode
}

type transactionJSON struct {
	Nonce    hexutil.Uint64 `json:"nonce"`
	To       *tosca.Address `json:"to"`
	Value    *hexutil.Big   `json:"value"`
	GasLimit hexutil.Uint64 `json:"gasLimit"`
	Data     asm.Bytecode   `json:"data"`
}

// IsCreation reports whether the transaction creates a contract.
func (t Transaction) IsCreation() bool {
	return t.To == nil
}

// CreatedAddress returns the address of the contract created by this
// transaction if sent by the given sender.
func (t Transaction) CreatedAddress(sender tosca.Address) tosca.Address {
	return CreateAddress(sender, t.Nonce)
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		Nonce:    hexutil.Uint64(t.Nonce),
		To:       t.To,
		Value:    (*hexutil.Big)(t.Value.ToBig()),
		GasLimit: hexutil.Uint64(t.GasLimit),
		Data:     t.Data,
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var decoded transactionJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	value, err := toValue((*big.Int)(decoded.Value))
	if err != nil {
		return err
	}
	*t = Transaction{
		Nonce:    uint64(decoded.Nonce),
		To:       decoded.To,
		Value:    value,
		GasLimit: uint64(decoded.GasLimit),
		Data:     decoded.Data,
	}
	return nil
}

// CreateAddress computes the address of a contract created by the given
// sender using CREATE or a creation transaction with the given nonce.
func CreateAddress(sender tosca.Address, nonce uint64) tosca.Address {
	return tosca.Address(crypto.CreateAddress(gethcommon.Address(sender), nonce))
}

// Create2Address computes the address of a contract created by the given
// sender using CREATE2 with the given salt and init code.
func Create2Address(sender tosca.Address, salt tosca.Hash, initcode asm.Bytecode) tosca.Address {
	hash := initcode.Hash()
	return tosca.Address(crypto.CreateAddress2(gethcommon.Address(sender), salt, hash[:]))
}
