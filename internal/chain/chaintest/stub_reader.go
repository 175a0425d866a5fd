// Package chaintest 提供内存版 AccountReader，供单元测试使用
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bond-pricer-sol/internal/chain"
	"bond-pricer-sol/internal/pkg/types"
)

type StubReader struct {
	mu       sync.Mutex
	accounts map[types.Pubkey][]byte
	errs     map[types.Pubkey]error
	calls    []types.Pubkey
}

func NewStubReader() *StubReader {
	return &StubReader{
		accounts: make(map[types.Pubkey][]byte),
		errs:     make(map[types.Pubkey]error),
	}
}

func (s *StubReader) Set(addr types.Pubkey, data []byte) *StubReader {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[addr] = data
	return s
}

// Fail 使该地址的读取返回 err
func (s *StubReader) Fail(addr types.Pubkey, err error) *StubReader {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[addr] = err
	return s
}

func (s *StubReader) ReadAccount(ctx context.Context, addr types.Pubkey) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, addr)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", chain.ErrTimeout, err)
	}
	if err, ok := s.errs[addr]; ok {
		return nil, err
	}
	data, ok := s.accounts[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", chain.ErrAccountNotFound, addr)
	}
	return append([]byte(nil), data...), nil
}

// Calls 按顺序返回被读取过的地址
func (s *StubReader) Calls() []types.Pubkey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Pubkey(nil), s.calls...)
}

func (s *StubReader) CallCount(addr types.Pubkey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == addr {
			n++
		}
	}
	return n
}
