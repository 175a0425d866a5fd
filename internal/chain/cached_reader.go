package chain

import (
	"context"

	"bond-pricer-sol/internal/cache"
	"bond-pricer-sol/internal/pkg/types"
)

// CachedReader 在单次运行内复用已读取的账户，读取失败不缓存
type CachedReader struct {
	inner AccountReader
	cache *cache.AccountCache
}

func NewCachedReader(inner AccountReader, c *cache.AccountCache) *CachedReader {
	return &CachedReader{inner: inner, cache: c}
}

func (r *CachedReader) ReadAccount(ctx context.Context, addr types.Pubkey) ([]byte, error) {
	if data, ok := r.cache.Get(addr); ok {
		return data, nil
	}
	data, err := r.inner.ReadAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	r.cache.Put(addr, data)
	return data, nil
}
