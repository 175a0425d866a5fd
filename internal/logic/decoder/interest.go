package decoder

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"bond-pricer-sol/internal/pkg/types"

	"github.com/shopspring/decimal"
)

// InterestBearingConfigSize 计息扩展固定长度
const InterestBearingConfigSize = 52

const (
	oneInBasisPoints = 10_000.0
	secondsPerYear   = 60 * 60 * 24 * 365.24
)

var errTimespanOverflow = errors.New("timespan overflow")

// InterestBearingConfig Token-2022 计息扩展
// 参考: https://github.com/solana-program/token-2022/blob/main/program/src/extension/interest_bearing_mint/mod.rs
type InterestBearingConfig struct {
	RateAuthority           types.Pubkey // 全 0 表示无权限方
	InitializationTimestamp int64
	PreUpdateAverageRate    int16 // 基点
	LastUpdateTimestamp     int64
	CurrentRate             int16 // 基点
}

func decodeInterestBearingConfig(data []byte) (*InterestBearingConfig, error) {
	if len(data) != InterestBearingConfigSize {
		return nil, newDecodeError(KindInterestBearingConfig, "invalid length: got %d, want %d", len(data), InterestBearingConfigSize)
	}
	var cfg InterestBearingConfig
	if err := borshDecode(KindInterestBearingConfig, data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AmountToUiAmount 计算 amount 在 unixTimestamp 时刻含利息的 UI 数量
//
// ui = amount × e^(preRate·preSpan / 年 / 10⁴) × e^(curRate·(ts − lastUpdate) / 年 / 10⁴) / 10^decimals
// 输出保留 decimals 位小数，并去掉末尾的 0 与小数点。
func (c *InterestBearingConfig) AmountToUiAmount(amount uint64, decimals uint8, unixTimestamp int64) (string, error) {
	preSpan, ok := checkedSub(c.LastUpdateTimestamp, c.InitializationTimestamp)
	if !ok {
		return "", fmt.Errorf("pre-update %w", errTimespanOverflow)
	}
	postSpan, ok := checkedSub(unixTimestamp, c.LastUpdateTimestamp)
	if !ok {
		return "", fmt.Errorf("post-update %w", errTimespanOverflow)
	}

	totalScale := accrualExp(c.PreUpdateAverageRate, preSpan) *
		accrualExp(c.CurrentRate, postSpan) /
		math.Pow10(int(decimals))
	scaled := float64(amount) * totalScale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return "", fmt.Errorf("ui amount is not finite: %v", scaled)
	}

	uiAmount := strconv.FormatFloat(scaled, 'f', int(decimals), 64)
	if decimals > 0 {
		uiAmount = strings.TrimRight(uiAmount, "0")
		uiAmount = strings.TrimRight(uiAmount, ".")
	}
	return uiAmount, nil
}

// AccruedValue 与 AmountToUiAmount 相同，结果转为 decimal
func (c *InterestBearingConfig) AccruedValue(amount uint64, decimals uint8, unixTimestamp int64) (decimal.Decimal, error) {
	ui, err := c.AmountToUiAmount(amount, decimals, unixTimestamp)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(ui)
}

// accrualExp 计算 e^(rate × span / 年 / 10⁴)，乘积先按整数精确计算再转 float64
func accrualExp(rate int16, span int64) float64 {
	product := new(big.Int).Mul(big.NewInt(int64(rate)), big.NewInt(span))
	numerator, _ := new(big.Float).SetInt(product).Float64()
	return math.Exp(numerator / secondsPerYear / oneInBasisPoints)
}

func checkedSub(a, b int64) (int64, bool) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, false
	}
	return d, true
}
