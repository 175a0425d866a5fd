package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bond-pricer-sol/internal/chain"
	"bond-pricer-sol/internal/logic/decoder"
	"bond-pricer-sol/internal/logic/pricing"
	"bond-pricer-sol/internal/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePricer struct {
	errs   map[string]error
	panics map[string]bool
	calls  []string
	cancel context.CancelFunc // 非 nil 时，在第一次调用后取消 ctx
}

func (f *fakePricer) Price(ctx context.Context, inst pricing.Instrument) (*pricing.PriceResult, error) {
	f.calls = append(f.calls, inst.Name)
	if f.cancel != nil {
		f.cancel()
	}
	if f.panics[inst.Name] {
		panic("index out of range")
	}
	if err, ok := f.errs[inst.Name]; ok {
		return nil, &pricing.StepError{Instrument: inst, Step: pricing.StepMint, Err: err}
	}
	return &pricing.PriceResult{Instrument: inst, Cost: decimal.NewFromInt(1)}, nil
}

type recordingReporter struct {
	outcomes []Outcome
	err      error
}

func (r *recordingReporter) Report(_ context.Context, o Outcome) error {
	r.outcomes = append(r.outcomes, o)
	return r.err
}

func instruments(names ...string) []pricing.Instrument {
	out := make([]pricing.Instrument, len(names))
	for i, n := range names {
		out[i] = pricing.Instrument{Name: n, Mint: types.Pubkey{byte(i + 1)}}
	}
	return out
}

func TestRun_IsolatesFailures(t *testing.T) {
	pricer := &fakePricer{errs: map[string]error{"USTRY": decoder.ErrExtensionNotFound}}
	rep := &recordingReporter{}
	s, err := NewBondPriceService(pricer, rep, BondPriceServiceOption{Instruments: instruments("CETES", "USTRY", "EUROB")})
	require.NoError(t, err)

	outcomes, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, []string{"CETES", "USTRY", "EUROB"}, pricer.calls)
	assert.True(t, outcomes[0].OK())
	assert.False(t, outcomes[1].OK())
	assert.Equal(t, pricing.ClassUnsupportedInstrument, outcomes[1].Class)
	assert.Equal(t, pricing.StepMint, outcomes[1].Step)
	assert.True(t, outcomes[2].OK())
	assert.Equal(t, 2, CountSucceeded(outcomes))
	assert.Equal(t, outcomes, rep.outcomes)
}

func TestRun_FailFast(t *testing.T) {
	netErr := fmt.Errorf("%w: refused", chain.ErrNetwork)
	pricer := &fakePricer{errs: map[string]error{"USTRY": netErr}}
	rep := &recordingReporter{}
	s, err := NewBondPriceService(pricer, rep, BondPriceServiceOption{
		Instruments: instruments("CETES", "USTRY", "EUROB"),
		FailFast:    true,
	})
	require.NoError(t, err)

	outcomes, err := s.Run(context.Background())
	assert.ErrorIs(t, err, chain.ErrNetwork)
	require.Len(t, outcomes, 2)
	assert.Equal(t, []string{"CETES", "USTRY"}, pricer.calls)
	assert.Equal(t, pricing.ClassLedgerUnavailable, outcomes[1].Class)
	assert.Len(t, rep.outcomes, 2, "失败的标的也要上报")
}

func TestRun_PanicBecomesOutcome(t *testing.T) {
	pricer := &fakePricer{panics: map[string]bool{"CETES": true}}
	s, err := NewBondPriceService(pricer, nil, BondPriceServiceOption{Instruments: instruments("CETES", "GILTS")})
	require.NoError(t, err)

	outcomes, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Error(t, outcomes[0].Err)
	assert.Nil(t, outcomes[0].Result)
	assert.Equal(t, pricing.ClassUnknown, outcomes[0].Class)
	assert.True(t, outcomes[1].OK())
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pricer := &fakePricer{cancel: cancel}
	s, err := NewBondPriceService(pricer, nil, BondPriceServiceOption{Instruments: instruments("CETES", "USTRY")})
	require.NoError(t, err)

	outcomes, err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, outcomes, 1)
	assert.Equal(t, []string{"CETES"}, pricer.calls)
}

func TestRun_ReporterErrorIgnored(t *testing.T) {
	rep := &recordingReporter{err: errors.New("kafka down")}
	s, err := NewBondPriceService(&fakePricer{}, rep, BondPriceServiceOption{Instruments: instruments("CETES")})
	require.NoError(t, err)

	outcomes, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, CountSucceeded(outcomes))
}

func TestNewBondPriceService_Invalid(t *testing.T) {
	_, err := NewBondPriceService(nil, nil, BondPriceServiceOption{Instruments: instruments("CETES")})
	assert.Error(t, err)

	_, err = NewBondPriceService(&fakePricer{}, nil, BondPriceServiceOption{})
	assert.Error(t, err)
}
