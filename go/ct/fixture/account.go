// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package fixture provides the account and transaction layout used to embed
// assembled code into state test fixtures.
package fixture

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/Fantom-foundation/tosca-tests/go/ct/asm"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
)

// Account is the pre- or post-state of a single account.
type Account struct {
	Nonce   uint64
	Balance tosca.Value
	Code    asm.Bytecode
	Storage map[tosca.Key]tosca.Word
}

type accountJSON struct {
	Nonce   hexutil.Uint64           `json:"nonce"`
	Balance *hexutil.Big             `json:"balance"`
	Code    asm.Bytecode             `json:"code"`
	Storage map[tosca.Key]tosca.Word `json:"storage"`
}

func (a Account) MarshalJSON() ([]byte, error) {
	storage := a.Storage
	if storage == nil {
		storage = map[tosca.Key]tosca.Word{}
	}
	return json.Marshal(accountJSON{
		Nonce:   hexutil.Uint64(a.Nonce),
		Balance: (*hexutil.Big)(a.Balance.ToBig()),
		Code:    a.Code,
		Storage: storage,
	})
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var decoded accountJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	balance, err := toValue((*big.Int)(decoded.Balance))
	if err != nil {
		return err
	}
	*a = Account{
		Nonce:   uint64(decoded.Nonce),
		Balance: balance,
		Code:    decoded.Code,
		Storage: decoded.Storage,
	}
	return nil
}

func toValue(value *big.Int) (tosca.Value, error) {
	if value == nil {
		return tosca.Value{}, nil
	}
	res, overflow := uint256.FromBig(value)
	if overflow || value.Sign() < 0 {
		return tosca.Value{}, fmt.Errorf("value %v out of range", value)
	}
	return tosca.ValueFromUint256(res), nil
}

// Alloc maps addresses to their account states.
type Alloc map[tosca.Address]Account

// Deploy places the given code at the given address. The resulting account
// has a nonce of 1, as produced by contract creations since EIP-161.
func (a Alloc) Deploy(address tosca.Address, code asm.Bytecode) {
	account := a[address]
	account.Nonce = max(account.Nonce, 1)
	account.Code = code
	a[address] = account
}

// Fund sets the balance of the given address.
func (a Alloc) Fund(address tosca.Address, balance tosca.Value) {
	account := a[address]
	account.Balance = balance
	a[address] = account
}
