package report

import (
	"context"

	"bond-pricer-sol/internal/pkg/logger"
	"bond-pricer-sol/internal/service"
)

// LogReporter 将结果写入日志
type LogReporter struct{}

func (LogReporter) Report(_ context.Context, o service.Outcome) error {
	rec := NewPriceRecord(o)
	if rec.Status != StatusOK {
		logger.Errorf("[report] %s (%s) 定价失败: class=%s, step=%s, err=%s",
			rec.Instrument, rec.Mint, rec.ErrorClass, rec.FailedStep, rec.Error)
		return nil
	}
	logger.Infof("[report] %s market=%s accrued=%s cost_usdc=%s (feed=%s, slot=%d, oracle_age=%ds, 耗时: %dms)",
		rec.Instrument, rec.MarketPrice, rec.AccruedValue, rec.Cost, rec.PaymentFeed, rec.OracleSlot, rec.OracleAgeS, rec.ElapsedMs)
	return nil
}
