package pricing

import (
	"fmt"

	"bond-pricer-sol/internal/logic/decoder"

	"github.com/shopspring/decimal"
)

// MarketPrice 无 quote 时直接返回 base，有 quote 时返回 base × quote（十进制精确乘法）
func MarketPrice(base, quote *decoder.OracleValueRecord) decimal.Decimal {
	if quote == nil {
		return base.Value
	}
	return base.Value.Mul(quote.Value)
}

// CostInReference 以参考币计价的成本 = accrued ÷ market
func CostInReference(accrued, market decimal.Decimal) (decimal.Decimal, error) {
	if !market.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, market)
	}
	return accrued.Div(market), nil
}
