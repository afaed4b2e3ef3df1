// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package st

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Fantom-foundation/tosca-tests/go/ct/common"
	"github.com/Fantom-foundation/tosca-tests/go/tosca"
)

// CacheConfig contains the configuration options of a CodeCache.
type CacheConfig struct {
	// Size is the maximum size of the cached codes in bytes. If set to 0, a
	// default size is used. If negative, no cache is used. Positive values
	// less than MaxCodeSize are reported as invalid.
	Size int
}

// ErrInvalidCacheSize is produced for cache sizes unable to hold a single code.
const ErrInvalidCacheSize = common.ConstErr("invalid cache size")

// CodeCache retains the analysis of recently used codes keyed by their hash.
// It is safe for concurrent use.
type CodeCache struct {
	cache *lru.Cache[tosca.Hash, *Code]
}

// NewCodeCache creates a cache with the given configuration.
func NewCodeCache(config CacheConfig) (*CodeCache, error) {
	if config.Size == 0 {
		config.Size = 1 << 28 // = 256 MiB
	}
	if config.Size < 0 {
		return &CodeCache{}, nil
	}
	capacity := config.Size / MaxCodeSize
	if capacity == 0 {
		return nil, fmt.Errorf("%w, %d bytes is less than the maximum code size of %d bytes", ErrInvalidCacheSize, config.Size, MaxCodeSize)
	}
	cache, err := lru.New[tosca.Hash, *Code](capacity)
	if err != nil {
		return nil, err
	}
	return &CodeCache{cache: cache}, nil
}

// Get returns the analysis of the given code. If the code hash is not nil, it
// is assumed to be the valid hash of the code and is used to look up or retain
// the analysis. Codes longer than MaxCodeSize are never cached.
func (c *CodeCache) Get(code []byte, codeHash *tosca.Hash) *Code {
	if c.cache == nil || codeHash == nil {
		return NewCode(code)
	}
	if res, found := c.cache.Get(*codeHash); found {
		return res
	}
	res := NewCode(code)
	if len(code) <= MaxCodeSize {
		c.cache.Add(*codeHash, res)
	}
	return res
}

// Len returns the number of cached codes.
func (c *CodeCache) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
