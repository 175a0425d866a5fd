package cache

import (
	"sync"
	"sync/atomic"

	"bond-pricer-sol/internal/pkg/types"
)

// AccountCache 单次运行内的账户数据缓存，进程退出即丢弃
type AccountCache struct {
	mu      sync.RWMutex
	entries map[types.Pubkey][]byte

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewAccountCache() *AccountCache {
	return &AccountCache{
		entries: make(map[types.Pubkey][]byte),
	}
}

// Get 返回数据副本，调用方可随意修改
func (c *AccountCache) Get(addr types.Pubkey) ([]byte, bool) {
	c.mu.RLock()
	data, ok := c.entries[addr]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return append([]byte(nil), data...), true
}

func (c *AccountCache) Put(addr types.Pubkey, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[addr] = append([]byte(nil), data...)
}

func (c *AccountCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats 返回命中 / 未命中次数
func (c *AccountCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
