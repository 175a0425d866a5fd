package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bond-pricer-sol/internal/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
)

func load(t *testing.T, content string) PricerConfig {
	t.Helper()
	var c PricerConfig
	require.NoError(t, conf.LoadFromYamlBytes([]byte(content), &c))
	return c
}

func TestLoad_Minimal(t *testing.T) {
	c := load(t, `
fail_fast: true
instruments:
  - name: CETES
    mint: CETES7CKqqKQizuSN6iWQwmTeFRjbJR6Vw2XRKfEDR8f
`)
	require.NoError(t, c.Validate())

	assert.True(t, c.FailFast)
	assert.Equal(t, consts.DefaultRpcEndpoint, c.Rpc.Endpoint)
	assert.Equal(t, "processed", c.Rpc.Commitment)
	assert.Equal(t, consts.StablebondProgram, c.ProgramID())
	assert.Equal(t, uint64(1_000_000), c.Accrual.RawAmount)
	assert.Equal(t, uint8(6), c.Accrual.Decimals)
	assert.Equal(t, []string{SinkLog}, c.Report.Sinks)

	instruments, err := c.ToInstruments()
	require.NoError(t, err)
	require.Len(t, instruments, 1)
	assert.Equal(t, "CETES", instruments[0].Name)
	assert.Equal(t, consts.CETESMint, instruments[0].Mint)
}

func TestValidate_NoInstruments(t *testing.T) {
	c := load(t, "fail_fast: true\n")
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruments is empty")

	_, err = c.ToInstruments()
	assert.Error(t, err)
}

func TestLoad_RepoConfig(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "etc", "pricer.yaml"))
	require.NoError(t, err)

	c := load(t, string(data))
	require.NoError(t, c.Validate())
	assert.True(t, c.CacheAccounts)
	assert.Equal(t, 5*time.Second, c.Rpc.ToReaderOption().ReadTimeout)

	instruments, err := c.ToInstruments()
	require.NoError(t, err)
	names := make([]string, len(instruments))
	for i, inst := range instruments {
		names[i] = inst.Name
	}
	assert.Equal(t, []string{"CETES", "USTRY", "EUROB", "TESOURO", "GILTS"}, names)
	assert.Equal(t, consts.GILTSMint, instruments[4].Mint)
}

func TestLoad_Custom(t *testing.T) {
	c := load(t, `
rpc:
  endpoint: http://127.0.0.1:8899
  commitment: finalized
  timeout_ms: 1500
instruments:
  - mint: CETES7CKqqKQizuSN6iWQwmTeFRjbJR6Vw2XRKfEDR8f
accrual:
  raw_amount: 100000000
  decimals: 8
report:
  sinks: [yaml, kafka]
  kafka:
    brokers: 127.0.0.1:9092
    partitions: 3
`)
	require.NoError(t, c.Validate())

	assert.Equal(t, 1500*time.Millisecond, c.Rpc.ToReaderOption().ReadTimeout)
	assert.Equal(t, uint8(8), c.ToAccrualOption().Decimals)
	assert.True(t, c.Report.HasSink(SinkKafka))
	assert.False(t, c.Report.HasSink(SinkLog))
	assert.Equal(t, "bond_pricer_sol_price", c.Report.Kafka.Topic)

	opt := c.Report.Kafka.ToKafkaOption()
	require.Len(t, opt.Topics, 1)
	assert.Equal(t, 3, opt.Topics[0].Partitions)

	instruments, err := c.ToInstruments()
	require.NoError(t, err)
	require.Len(t, instruments, 1)
	assert.Equal(t, consts.CETESMintStr, instruments[0].String())
}

func TestValidate_Invalid(t *testing.T) {
	cetes := []InstrumentConfig{{Name: "CETES", Mint: consts.CETESMintStr}}
	tests := []struct {
		name string
		cfg  PricerConfig
	}{
		{"bad commitment", PricerConfig{Rpc: RpcConfig{Commitment: "recent"}}},
		{"bad program", PricerConfig{StablebondProgram: "not-base58!"}},
		{"bad mint", PricerConfig{Instruments: []InstrumentConfig{{Name: "X", Mint: "xyz"}}}},
		{"duplicated mint", PricerConfig{Instruments: []InstrumentConfig{
			{Mint: consts.CETESMintStr}, {Mint: consts.CETESMintStr},
		}}},
		{"no instruments", PricerConfig{}},
		{"unknown sink", PricerConfig{Instruments: cetes, Report: ReportConfig{Sinks: []string{"stdout"}}}},
		{"kafka without brokers", PricerConfig{Instruments: cetes, Report: ReportConfig{Sinks: []string{SinkKafka}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestLogConfig_ToLogOption(t *testing.T) {
	c := LogConfig{Format: "json", LogDir: "logs", Level: "debug", Compress: true}
	opt := c.ToLogOption()
	assert.Equal(t, "json", opt.Format)
	assert.Equal(t, "logs", opt.LogDir)
	assert.True(t, opt.Compress)
}
