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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes is an immutable slice of bytes that can be trivially cloned.
type Bytes struct {
	data string
}

func NewBytes(data []byte) Bytes {
	return Bytes{data: string(data)}
}

// ToBytes returns a copy of the contained bytes.
func (b Bytes) ToBytes() []byte {
	return []byte(b.data)
}

func (b Bytes) String() string {
	return fmt.Sprintf("0x%x", b.data)
}

// MarshalJSON encodes the bytes as 0x-prefixed hex string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexutil.Encode(b.ToBytes()))
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return err
	}
	b.data = string(data)
	return nil
}

func (b Bytes) Length() int {
	return len(b.data)
}

// Append returns the concatenation of b and the given byte sequences. None of
// the inputs is modified.
func (b Bytes) Append(others ...Bytes) Bytes {
	if len(others) == 0 {
		return b
	}
	var builder strings.Builder
	size := len(b.data)
	for _, other := range others {
		size += len(other.data)
	}
	builder.Grow(size)
	builder.WriteString(b.data)
	for _, other := range others {
		builder.WriteString(other.data)
	}
	return Bytes{data: builder.String()}
}

// Repeat returns n concatenated copies of b. It panics if n is negative.
func (b Bytes) Repeat(n int) Bytes {
	return Bytes{data: strings.Repeat(b.data, n)}
}
