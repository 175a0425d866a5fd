package chain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNetwork         = errors.New("network error")
	ErrTimeout         = errors.New("request timeout")
)

// IsFetchError 是否为账户读取阶段的错误（节点不可用、超时或账户不存在）
func IsFetchError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrTimeout)
}

// classifyRpcError 将 RPC 调用错误归类为 ErrTimeout 或 ErrNetwork，保留原始错误。
// 调用方主动取消（context.Canceled）不属于节点故障，原样返回
func classifyRpcError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
