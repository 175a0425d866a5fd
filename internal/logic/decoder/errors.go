package decoder

import (
	"errors"
	"fmt"
)

// AccountKind 标识解析失败的账户类型，便于定位问题
type AccountKind string

const (
	KindBond                  AccountKind = "bond"
	KindPaymentFeed           AccountKind = "payment_feed"
	KindOracle                AccountKind = "oracle"
	KindMint                  AccountKind = "mint"
	KindInterestBearingConfig AccountKind = "interest_bearing_config"
)

// ErrExtensionNotFound mint 上没有 InterestBearingConfig 扩展，该 instrument 无法定价
var ErrExtensionNotFound = errors.New("interest-bearing extension not found")

// DecodeError 账户数据格式错误（长度不足、类型不符、未初始化等），重试无意义
type DecodeError struct {
	Kind   AccountKind
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Kind, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(kind AccountKind, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// IsDecodeError 判断 err 链中是否包含 DecodeError
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
