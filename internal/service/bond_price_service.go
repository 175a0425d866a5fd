package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"bond-pricer-sol/internal/logic/pricing"
	"bond-pricer-sol/internal/pkg/logger"
)

// Pricer 对单个标的定价
type Pricer interface {
	Price(ctx context.Context, inst pricing.Instrument) (*pricing.PriceResult, error)
}

// Reporter 接收每个标的的定价结果
type Reporter interface {
	Report(ctx context.Context, outcome Outcome) error
}

// Outcome 单个标的的定价结果，Result 与 Err 二选一
type Outcome struct {
	Instrument pricing.Instrument
	Result     *pricing.PriceResult
	Err        error
	Class      pricing.ErrorClass
	Step       pricing.Step
	Elapsed    time.Duration
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

type BondPriceServiceOption struct {
	Instruments []pricing.Instrument
	FailFast    bool // true: 首个失败即停止；false: 记录失败并继续下一个标的
}

// BondPriceService 按配置顺序逐个定价，不并发
type BondPriceService struct {
	pricer      Pricer
	reporter    Reporter
	instruments []pricing.Instrument
	failFast    bool
}

func NewBondPriceService(pricer Pricer, reporter Reporter, opt BondPriceServiceOption) (*BondPriceService, error) {
	if pricer == nil {
		return nil, errors.New("pricer is nil")
	}
	if len(opt.Instruments) == 0 {
		return nil, errors.New("no instruments configured")
	}
	return &BondPriceService{
		pricer:      pricer,
		reporter:    reporter,
		instruments: append([]pricing.Instrument(nil), opt.Instruments...),
		failFast:    opt.FailFast,
	}, nil
}

// Run 执行一轮定价。fail-fast 模式下返回首个失败；隔离模式下仅在 ctx 取消时返回错误
func (s *BondPriceService) Run(ctx context.Context) ([]Outcome, error) {
	start := time.Now()
	outcomes := make([]Outcome, 0, len(s.instruments))

	for _, inst := range s.instruments {
		if err := ctx.Err(); err != nil {
			logger.Warnf("[BondPriceService] 定价中断: 已完成 %d/%d, err=%v", len(outcomes), len(s.instruments), err)
			return outcomes, err
		}

		outcome := s.priceOne(ctx, inst)
		outcomes = append(outcomes, outcome)
		s.report(ctx, outcome)

		if !outcome.OK() && s.failFast {
			logger.Errorf("[BondPriceService] fail-fast 已开启，停止后续定价: instrument=%s", inst)
			return outcomes, outcome.Err
		}
	}

	ok := CountSucceeded(outcomes)
	logger.Infof("[BondPriceService] 定价完成: 成功 %d, 失败 %d, 耗时: %v", ok, len(outcomes)-ok, time.Since(start))
	return outcomes, nil
}

func (s *BondPriceService) priceOne(ctx context.Context, inst pricing.Instrument) (outcome Outcome) {
	start := time.Now()
	outcome.Instrument = inst
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[BondPriceService] price panic: instrument=%s, %v\n%s", inst, r, debug.Stack())
			outcome.Result = nil
			outcome.Err = fmt.Errorf("price panic: %v", r)
		}
		outcome.Elapsed = time.Since(start)
		outcome.Class = pricing.Classify(outcome.Err)
		outcome.Step = pricing.FailedStep(outcome.Err)
	}()

	res, err := s.pricer.Price(ctx, inst)
	if err != nil {
		logger.Warnf("[BondPriceService] 定价失败: instrument=%s, err=%v", inst, err)
		outcome.Err = err
		return outcome
	}
	outcome.Result = res
	return outcome
}

func (s *BondPriceService) report(ctx context.Context, outcome Outcome) {
	if s.reporter == nil {
		return
	}
	if err := s.reporter.Report(ctx, outcome); err != nil {
		logger.Warnf("[BondPriceService] 结果上报失败: instrument=%s, err=%v", outcome.Instrument, err)
	}
}

func CountSucceeded(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}
