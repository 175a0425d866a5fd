package report

import (
	"time"

	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// PriceRecord 定价结果的对外展示形式，价格均为十进制字符串
type PriceRecord struct {
	Instrument   string `yaml:"instrument"`
	Mint         string `yaml:"mint"`
	Status       string `yaml:"status"`
	ErrorClass   string `yaml:"error_class,omitempty"`
	FailedStep   string `yaml:"failed_step,omitempty"`
	Error        string `yaml:"error,omitempty"`
	Bond         string `yaml:"bond,omitempty"`
	PaymentFeed  string `yaml:"payment_feed,omitempty"`
	BaseOracle   string `yaml:"base_oracle,omitempty"`
	QuoteOracle  string `yaml:"quote_oracle,omitempty"`
	BasePrice    string `yaml:"base_price,omitempty"`
	QuotePrice   string `yaml:"quote_price,omitempty"`
	MarketPrice  string `yaml:"market_price,omitempty"`
	AccruedValue string `yaml:"accrued_value,omitempty"`
	Cost         string `yaml:"cost_usdc,omitempty"`
	OracleSlot   uint64 `yaml:"oracle_slot,omitempty"`
	OracleStdDev string `yaml:"oracle_std_dev,omitempty"`
	OracleCount  uint8  `yaml:"oracle_samples,omitempty"`
	OracleUpdate int64  `yaml:"oracle_updated_at,omitempty"`
	OracleAgeS   int64  `yaml:"oracle_age_s,omitempty"` // 计息时刻距 base oracle 最近更新的秒数
	Timestamp    int64  `yaml:"timestamp,omitempty"`
	ElapsedMs    int64  `yaml:"elapsed_ms"`
}

func NewPriceRecord(o service.Outcome) PriceRecord {
	rec := PriceRecord{
		Instrument: o.Instrument.String(),
		Mint:       o.Instrument.Mint.String(),
		ElapsedMs:  o.Elapsed.Milliseconds(),
	}
	if !o.OK() {
		rec.Status = StatusError
		rec.ErrorClass = string(o.Class)
		rec.FailedStep = string(o.Step)
		rec.Error = o.Err.Error()
		return rec
	}

	r := o.Result
	rec.Status = StatusOK
	rec.Bond = r.BondAddress.String()
	rec.PaymentFeed = consts.PaymentFeedName(r.PaymentFeedType)
	rec.BaseOracle = r.BaseOracle.String()
	rec.BasePrice = r.BasePrice.String()
	if r.QuoteOracle != nil {
		rec.QuoteOracle = r.QuoteOracle.String()
	}
	if r.QuotePrice != nil {
		rec.QuotePrice = r.QuotePrice.String()
	}
	rec.MarketPrice = r.MarketPrice.String()
	rec.AccruedValue = r.AccruedValue.String()
	rec.Cost = r.Cost.String()
	rec.OracleSlot = r.OracleSlot
	rec.OracleStdDev = r.OracleStdDev.String()
	rec.OracleCount = r.OracleSamples
	if r.OracleUpdatedAt != 0 {
		rec.OracleUpdate = r.OracleUpdatedAt
		rec.OracleAgeS = r.Timestamp - r.OracleUpdatedAt
	}
	rec.Timestamp = r.Timestamp
	return rec
}

// ToStruct 转为 protobuf Struct，空字段不输出
func (r PriceRecord) ToStruct() (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"instrument": r.Instrument,
		"mint":       r.Mint,
		"status":     r.Status,
		"elapsed_ms": r.ElapsedMs,
	}
	optional := map[string]string{
		"error_class":    r.ErrorClass,
		"failed_step":    r.FailedStep,
		"error":          r.Error,
		"bond":           r.Bond,
		"payment_feed":   r.PaymentFeed,
		"base_oracle":    r.BaseOracle,
		"quote_oracle":   r.QuoteOracle,
		"base_price":     r.BasePrice,
		"quote_price":    r.QuotePrice,
		"market_price":   r.MarketPrice,
		"accrued_value":  r.AccruedValue,
		"cost_usdc":      r.Cost,
		"oracle_std_dev": r.OracleStdDev,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	if r.Timestamp != 0 {
		fields["timestamp"] = time.Unix(r.Timestamp, 0).UTC().Format(time.RFC3339)
		fields["oracle_slot"] = r.OracleSlot
		fields["oracle_samples"] = r.OracleCount
	}
	if r.OracleUpdate != 0 {
		fields["oracle_updated_at"] = time.Unix(r.OracleUpdate, 0).UTC().Format(time.RFC3339)
		fields["oracle_age_s"] = r.OracleAgeS
	}
	return structpb.NewStruct(fields)
}
