package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bond-pricer-sol/internal/chain"
	"bond-pricer-sol/internal/consts"
	"bond-pricer-sol/internal/logic/pricing"
	"bond-pricer-sol/internal/pkg/logger"
	"bond-pricer-sol/internal/pkg/mq"
	"bond-pricer-sol/internal/pkg/types"
)

const (
	SinkLog   = "log"
	SinkYaml  = "yaml"
	SinkKafka = "kafka"
)

type LogConfig struct {
	Format   string `json:"format,default=console"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional"`       // 日志目录（可为相对路径或绝对路径），为空只输出到 stderr
	Level    string `json:"level,default=info"`     // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional"`      // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig Solana JSON-RPC 节点配置
type RpcConfig struct {
	Endpoint   string `json:"endpoint,default=https://rpc.etherfuse.com"` // RPC 地址
	Commitment string `json:"commitment,default=processed"`              // processed / confirmed / finalized
	TimeoutMs  int    `json:"timeout_ms,default=5000"`                   // 单次账户读取超时（毫秒）
}

func (c *RpcConfig) ToReaderOption() chain.RpcReaderOption {
	return chain.RpcReaderOption{
		Endpoint:    c.Endpoint,
		Commitment:  c.Commitment,
		ReadTimeout: time.Duration(c.TimeoutMs) * time.Millisecond,
	}
}

// InstrumentConfig 一个待定价的 stablebond
type InstrumentConfig struct {
	Name string `json:"name,optional"` // 展示名，如 CETES
	Mint string `json:"mint"`          // Token-2022 mint 地址（base58）
}

// AccrualConfig 计算“1 个代币”价值时使用的原始数量与精度
type AccrualConfig struct {
	RawAmount uint64 `json:"raw_amount,default=1000000"`
	Decimals  uint8  `json:"decimals,default=6"`
}

// KafkaReportConfig 定价结果写入 Kafka 的配置
type KafkaReportConfig struct {
	Brokers       string `json:"brokers,optional"`                    // Kafka broker 地址，多个用英文逗号分隔
	Topic         string `json:"topic,default=bond_pricer_sol_price"` // 定价事件 topic
	Partitions    int    `json:"partitions,default=1"`                // topic 分区数
	BatchSize     int    `json:"batch_size,optional"`                 // 批处理大小（单位字节）
	LingerMs      int    `json:"linger_ms,optional"`                  // 批处理最大延迟（毫秒）
	SendTimeoutMs int    `json:"send_timeout_ms,default=5000"`        // 单条事件发送并等待 ack 的超时（毫秒）
}

func (c *KafkaReportConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:   c.Brokers,
		BatchSize: c.BatchSize,
		LingerMs:  c.LingerMs,
		Topics: []mq.TopicOption{
			{Topic: c.Topic, Partitions: c.Partitions},
		},
	}
}

type ReportConfig struct {
	Sinks []string          `json:"sinks,optional"` // log / yaml / kafka，为空时只输出日志
	Kafka KafkaReportConfig `json:"kafka,optional"`
}

func (c *ReportConfig) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// PricerConfig 是主配置结构体，用于驱动定价服务
type PricerConfig struct {
	LogConf           LogConfig          `json:"logger,optional"`
	Rpc               RpcConfig          `json:"rpc,optional"`
	StablebondProgram string             `json:"stablebond_program,default=SBondMDrcV3K4kxZR1HNVT7osZxAHVHgYXL5Ze1oMUv"`
	Instruments       []InstrumentConfig `json:"instruments,optional"` // 不能为空，Validate 检查
	Accrual           AccrualConfig      `json:"accrual,optional"`
	FailFast          bool               `json:"fail_fast,optional"`      // 首个标的失败即停止
	CacheAccounts     bool               `json:"cache_accounts,optional"` // 单次运行内复用已读取的账户
	Report            ReportConfig       `json:"report,optional"`
}

// Validate 补齐缺省值并校验，conf.MustLoad 之后调用
func (c *PricerConfig) Validate() error {
	c.applyDefaults()

	if c.Rpc.Endpoint == "" {
		return errors.New("rpc.endpoint is empty")
	}
	if _, err := chain.ParseCommitment(c.Rpc.Commitment); err != nil {
		return fmt.Errorf("rpc.commitment: %w", err)
	}
	if _, err := types.TryPubkeyFromBase58(c.StablebondProgram); err != nil {
		return fmt.Errorf("stablebond_program: %w", err)
	}
	if _, err := c.ToInstruments(); err != nil {
		return err
	}
	for _, s := range c.Report.Sinks {
		switch strings.ToLower(s) {
		case SinkLog, SinkYaml:
		case SinkKafka:
			if c.Report.Kafka.Brokers == "" {
				return errors.New("report.kafka.brokers is empty")
			}
		default:
			return fmt.Errorf("report.sinks: unsupported sink %q", s)
		}
	}
	return nil
}

func (c *PricerConfig) applyDefaults() {
	if c.Rpc.Endpoint == "" {
		c.Rpc.Endpoint = consts.DefaultRpcEndpoint
	}
	if c.Rpc.Commitment == "" {
		c.Rpc.Commitment = "processed"
	}
	if c.Rpc.TimeoutMs <= 0 {
		c.Rpc.TimeoutMs = 5000
	}
	if c.StablebondProgram == "" {
		c.StablebondProgram = consts.StablebondProgramStr
	}
	if c.Accrual.RawAmount == 0 {
		c.Accrual.RawAmount = consts.OneTokenRawAmount
		c.Accrual.Decimals = consts.StablebondDecimals
	}
	if len(c.Report.Sinks) == 0 {
		c.Report.Sinks = []string{SinkLog}
	}
	if c.Report.Kafka.Topic == "" {
		c.Report.Kafka.Topic = "bond_pricer_sol_price"
	}
	if c.Report.Kafka.Partitions <= 0 {
		c.Report.Kafka.Partitions = 1
	}
	if c.Report.Kafka.SendTimeoutMs <= 0 {
		c.Report.Kafka.SendTimeoutMs = 5000
	}
}

func (c *PricerConfig) ProgramID() types.Pubkey {
	return types.PubkeyFromBase58(c.StablebondProgram)
}

// ToInstruments 按配置顺序返回标的，列表不能为空
func (c *PricerConfig) ToInstruments() ([]pricing.Instrument, error) {
	if len(c.Instruments) == 0 {
		return nil, errors.New("instruments is empty")
	}

	seen := make(map[types.Pubkey]struct{}, len(c.Instruments))
	out := make([]pricing.Instrument, 0, len(c.Instruments))
	for i, ic := range c.Instruments {
		mint, err := types.TryPubkeyFromBase58(ic.Mint)
		if err != nil {
			return nil, fmt.Errorf("instruments[%d].mint: %w", i, err)
		}
		if _, dup := seen[mint]; dup {
			return nil, fmt.Errorf("instruments[%d].mint: duplicated %s", i, ic.Mint)
		}
		seen[mint] = struct{}{}
		out = append(out, pricing.Instrument{Name: ic.Name, Mint: mint})
	}
	return out, nil
}

func (c *PricerConfig) ToAccrualOption() pricing.AccrualOption {
	return pricing.AccrualOption{
		RawAmount: c.Accrual.RawAmount,
		Decimals:  c.Accrual.Decimals,
	}
}
