package pricing

import (
	"context"
	"errors"
	"fmt"

	"bond-pricer-sol/internal/chain"
	"bond-pricer-sol/internal/logic/decoder"
)

var (
	// ErrInvalidPrice 市场价为 0 或负数
	ErrInvalidPrice = errors.New("invalid market price")
	// ErrAccrual 计息计算失败（时间跨度溢出等）
	ErrAccrual = errors.New("interest accrual failed")
)

// Step 定价流程中的步骤
type Step string

const (
	StepBond        Step = "bond"
	StepPaymentFeed Step = "payment_feed"
	StepBaseOracle  Step = "base_oracle"
	StepQuoteOracle Step = "quote_oracle"
	StepMint        Step = "mint"
	StepAccrual     Step = "accrual"
	StepCost        Step = "cost"
)

// StepError 记录失败的标的与步骤
type StepError struct {
	Instrument Instrument
	Step       Step
	Err        error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("instrument %s: step %s: %v", e.Instrument, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ErrorClass 面向报告的错误分类
type ErrorClass string

const (
	ClassLedgerUnavailable     ErrorClass = "ledger_unavailable"
	ClassBadData               ErrorClass = "bad_data"
	ClassUnsupportedInstrument ErrorClass = "unsupported_instrument"
	ClassInvalidPrice          ErrorClass = "invalid_price"
	ClassCanceled              ErrorClass = "canceled"
	ClassUnknown               ErrorClass = "unknown"
)

// Classify 区分“节点不可用”、“链上数据异常”与“标的不支持”
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ClassCanceled
	case errors.Is(err, decoder.ErrExtensionNotFound):
		return ClassUnsupportedInstrument
	case decoder.IsDecodeError(err), errors.Is(err, ErrAccrual):
		return ClassBadData
	case chain.IsFetchError(err):
		return ClassLedgerUnavailable
	case errors.Is(err, ErrInvalidPrice):
		return ClassInvalidPrice
	default:
		return ClassUnknown
	}
}

// FailedStep 返回失败步骤，非 StepError 时返回空
func FailedStep(err error) Step {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}
