package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bond-pricer-sol/internal/pkg/logger"
	"bond-pricer-sol/internal/pkg/types"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
)

const defaultReadTimeout = 5 * time.Second

// AccountReader 读取账户原始数据
type AccountReader interface {
	ReadAccount(ctx context.Context, addr types.Pubkey) ([]byte, error)
}

type RpcReaderOption struct {
	Endpoint    string
	Commitment  string // processed / confirmed / finalized
	ReadTimeout time.Duration
}

// RpcAccountReader 基于 Solana JSON-RPC 的 AccountReader
type RpcAccountReader struct {
	client     *client.Client
	commitment rpc.Commitment
	timeout    time.Duration
}

func NewRpcAccountReader(opt RpcReaderOption) (*RpcAccountReader, error) {
	commitment, err := ParseCommitment(opt.Commitment)
	if err != nil {
		return nil, err
	}
	c := client.NewClient(opt.Endpoint)
	if c == nil {
		return nil, errors.New("rpc client init failed")
	}

	timeout := opt.ReadTimeout
	if timeout <= 0 {
		timeout = defaultReadTimeout
	}
	return &RpcAccountReader{
		client:     c,
		commitment: commitment,
		timeout:    timeout,
	}, nil
}

func (r *RpcAccountReader) ReadAccount(ctx context.Context, addr types.Pubkey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	info, err := r.client.GetAccountInfoWithConfig(ctx, addr.String(), client.GetAccountInfoConfig{
		Commitment: r.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("GetAccountInfo %s failed: %w", addr, classifyRpcError(err))
	}

	// 账户不存在时 SDK 返回零值
	if info.Lamports == 0 && len(info.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	logger.Debugf("[AccountReader] GetAccountInfo 成功: account=%s, size=%d, owner=%s, 耗时: %v",
		addr, len(info.Data), info.Owner.ToBase58(), time.Since(start))
	return info.Data, nil
}

func ParseCommitment(s string) (rpc.Commitment, error) {
	switch s {
	case "", "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unsupported commitment %q", s)
	}
}
