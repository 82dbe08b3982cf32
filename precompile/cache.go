// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package precompile

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/ubershader"
	"github.com/gogpu/ubershader/vertex"
)

// Key identifies a compiled program.
type Key struct {
	Uid vertex.Uid
	// HostBits is host.Config.Bits of the target.
	HostBits uint32
}

// Hash returns the FNV-1a hash of the key.
func (k Key) Hash() uint64 {
	return ubershader.KeyHash(k.Uid, k.HostBits)
}

// Cache holds compiled programs by key.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	programs map[Key][]byte

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{programs: make(map[Key][]byte, vertex.NumUids)}
}

// Get returns the program stored under k.
func (c *Cache) Get(k Key) ([]byte, bool) {
	c.mu.RLock()
	b, ok := c.programs[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return b, ok
}

// Put stores b under k, replacing any earlier program.
func (c *Cache) Put(k Key, b []byte) {
	c.mu.Lock()
	c.programs[k] = b
	c.mu.Unlock()
}

// Len returns the number of stored programs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.programs)
}

// Stats returns the hit and miss counts of Get.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
