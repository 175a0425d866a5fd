package pricing

import (
	"bond-pricer-sol/internal/pkg/types"

	"github.com/shopspring/decimal"
)

// Instrument 待定价的 stablebond
type Instrument struct {
	Name string
	Mint types.Pubkey
}

func (i Instrument) String() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Mint.String()
}

// AccrualOption 计算“1 个代币”价值时使用的原始数量与精度
type AccrualOption struct {
	RawAmount uint64
	Decimals  uint8
}

type PriceResult struct {
	Instrument      Instrument
	BondAddress     types.Pubkey
	PaymentFeedType uint8
	BaseOracle      types.Pubkey
	QuoteOracle     *types.Pubkey // 无 quote 时为 nil

	BasePrice    decimal.Decimal
	QuotePrice   *decimal.Decimal
	MarketPrice  decimal.Decimal
	AccruedValue decimal.Decimal
	Cost         decimal.Decimal

	OracleSlot      uint64 // base oracle 最近一次结果所在 slot
	OracleStdDev    decimal.Decimal
	OracleSamples   uint8
	OracleUpdatedAt int64 // base oracle 最近一次更新的 unix 秒
	MintDecimals    uint8
	Timestamp       int64 // 计息使用的 unix 秒
}
