package pricing

import (
	"context"
	"fmt"
	"time"

	"bond-pricer-sol/internal/chain"
	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/logic/decoder"
	"bond-pricer-sol/internal/logic/resolver"
	"bond-pricer-sol/internal/pkg/logger"
	"bond-pricer-sol/internal/pkg/types"
)

// Assembler 对单个标的串行执行：bond → payment feed → oracle → mint → 计息 → 成本
type Assembler struct {
	reader   chain.AccountReader
	resolver *resolver.Resolver
	accrual  AccrualOption
	now      func() time.Time
}

func NewAssembler(reader chain.AccountReader, r *resolver.Resolver, accrual AccrualOption, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	if accrual.RawAmount == 0 {
		accrual.RawAmount = consts.OneTokenRawAmount
		accrual.Decimals = consts.StablebondDecimals
	}
	return &Assembler{
		reader:   reader,
		resolver: r,
		accrual:  accrual,
		now:      now,
	}
}

func (a *Assembler) Price(ctx context.Context, inst Instrument) (*PriceResult, error) {
	fail := func(step Step, err error) (*PriceResult, error) {
		return nil, &StepError{Instrument: inst, Step: step, Err: err}
	}

	// 1. bond
	bondAddr := a.resolver.BondAddress(inst.Mint)
	bond, err := readAndDecode(ctx, a.reader, bondAddr, decoder.DecodeBond)
	if err != nil {
		return fail(StepBond, err)
	}
	if !bond.Mint.Equals(inst.Mint) {
		logger.Warnf("[PriceAssembler] bond mint 与标的不一致: instrument=%s, bond=%s, bond.mint=%s", inst, bondAddr, bond.Mint)
	}

	// 2. payment feed
	feedAddr := a.resolver.PaymentFeedAddress(bond.PaymentFeedType)
	feed, err := readAndDecode(ctx, a.reader, feedAddr, decoder.DecodePaymentFeed)
	if err != nil {
		return fail(StepPaymentFeed, err)
	}

	// 3. base oracle
	base, err := readAndDecode(ctx, a.reader, feed.BasePriceFeed, decoder.DecodeOracleValue)
	if err != nil {
		return fail(StepBaseOracle, err)
	}
	logger.Infof("[PriceAssembler] %s base price: %s (feed=%s, slot=%d, std_dev=%s, samples=%d, updated_at=%d)",
		inst, base.Value, feed.BasePriceFeed, base.Slot, base.StdDev, base.NumSamples, base.LastUpdateTimestamp)

	// 4. quote oracle（可选）
	var quote *decoder.OracleValueRecord
	if feed.HasQuote() {
		quote, err = readAndDecode(ctx, a.reader, feed.QuotePriceFeed, decoder.DecodeOracleValue)
		if err != nil {
			return fail(StepQuoteOracle, err)
		}
		logger.Infof("[PriceAssembler] %s quote price: %s (feed=%s, slot=%d)", inst, quote.Value, feed.QuotePriceFeed, quote.Slot)
	}
	market := MarketPrice(base, quote)
	logger.Infof("[PriceAssembler] %s market price: %s", inst, market)

	// 5. mint + 计息扩展
	mint, interest, err := readAndDecodeMint(ctx, a.reader, inst.Mint)
	if err != nil {
		return fail(StepMint, err)
	}
	if mint.Decimals != a.accrual.Decimals {
		logger.Warnf("[PriceAssembler] %s mint decimals=%d 与配置 accrual.decimals=%d 不一致", inst, mint.Decimals, a.accrual.Decimals)
	}

	// 6. 计息
	ts := a.now().Unix()
	accrued, err := interest.AccruedValue(a.accrual.RawAmount, a.accrual.Decimals, ts)
	if err != nil {
		return fail(StepAccrual, fmt.Errorf("%w: %w", ErrAccrual, err))
	}
	logger.Infof("[PriceAssembler] %s ui bond value: %s", inst, accrued)

	// 7. 成本
	cost, err := CostInReference(accrued, market)
	if err != nil {
		return fail(StepCost, err)
	}
	logger.Infof("[PriceAssembler] %s cost in USDC: %s", inst, cost)

	result := &PriceResult{
		Instrument:      inst,
		BondAddress:     bondAddr,
		PaymentFeedType: bond.PaymentFeedType,
		BaseOracle:      feed.BasePriceFeed,
		BasePrice:       base.Value,
		MarketPrice:     market,
		AccruedValue:    accrued,
		Cost:            cost,
		OracleSlot:      base.Slot,
		OracleStdDev:    base.StdDev,
		OracleSamples:   base.NumSamples,
		OracleUpdatedAt: base.LastUpdateTimestamp,
		MintDecimals:    mint.Decimals,
		Timestamp:       ts,
	}
	if quote != nil {
		addr := feed.QuotePriceFeed
		qv := quote.Value
		result.QuoteOracle = &addr
		result.QuotePrice = &qv
	}
	return result, nil
}

func readAndDecode[T any](ctx context.Context, r chain.AccountReader, addr types.Pubkey, decode func([]byte) (*T, error)) (*T, error) {
	data, err := r.ReadAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	v, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", addr, err)
	}
	return v, nil
}

func readAndDecodeMint(ctx context.Context, r chain.AccountReader, addr types.Pubkey) (*decoder.MintRecord, *decoder.InterestBearingConfig, error) {
	data, err := r.ReadAccount(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	mint, cfg, err := decoder.DecodeInterestBearingMint(data)
	if err != nil {
		return nil, nil, fmt.Errorf("mint %s: %w", addr, err)
	}
	return mint, cfg, nil
}
