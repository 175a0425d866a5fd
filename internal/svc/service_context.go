package svc

import (
	"os"
	"time"

	"bond-pricer-sol/internal/cache"
	"bond-pricer-sol/internal/chain"
	"bond-pricer-sol/internal/config"
	"bond-pricer-sol/internal/logic/pricing"
	"bond-pricer-sol/internal/logic/resolver"
	"bond-pricer-sol/internal/pkg/logger"
	"bond-pricer-sol/internal/pkg/mq"
	"bond-pricer-sol/internal/report"
	"bond-pricer-sol/internal/service"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const producerFlushTimeoutMs = 5000

// ServiceContext 包含定价服务所需的资源
type ServiceContext struct {
	Config       config.PricerConfig
	Reader       chain.AccountReader
	AccountCache *cache.AccountCache // cache_accounts 关闭时为 nil
	Resolver     *resolver.Resolver
	Assembler    *pricing.Assembler
	Reporter     service.Reporter
	Producer     *kafka.Producer

	yaml *report.YamlReporter
}

// NewServiceContext 创建定价服务上下文，c 需已通过 Validate
func NewServiceContext(c config.PricerConfig) (*ServiceContext, error) {
	ctx := &ServiceContext{Config: c}

	// 1. RPC 账户读取
	rpcReader, err := chain.NewRpcAccountReader(c.Rpc.ToReaderOption())
	if err != nil {
		logger.Errorf("RPC reader 初始化失败: %v", err)
		return nil, err
	}
	ctx.Reader = rpcReader
	if c.CacheAccounts {
		ctx.AccountCache = cache.NewAccountCache()
		ctx.Reader = chain.NewCachedReader(rpcReader, ctx.AccountCache)
	}

	// 2. 定价
	ctx.Resolver = resolver.NewResolver(c.ProgramID())
	ctx.Assembler = pricing.NewAssembler(ctx.Reader, ctx.Resolver, c.ToAccrualOption(), time.Now)

	// 3. 结果输出
	var sinks report.MultiReporter
	if c.Report.HasSink(config.SinkLog) {
		sinks = append(sinks, report.LogReporter{})
	}
	if c.Report.HasSink(config.SinkYaml) {
		ctx.yaml = report.NewYamlReporter(os.Stdout)
		sinks = append(sinks, ctx.yaml)
	}
	if c.Report.HasSink(config.SinkKafka) {
		producer, err := mq.NewKafkaProducer(c.Report.Kafka.ToKafkaOption())
		if err != nil {
			logger.Errorf("Kafka producer 初始化失败: %v", err)
			return nil, err
		}
		ctx.Producer = producer
		sinks = append(sinks, report.NewKafkaReporter(producer, report.KafkaReporterOption{
			Topic:       c.Report.Kafka.Topic,
			Partitions:  c.Report.Kafka.Partitions,
			SendTimeout: time.Duration(c.Report.Kafka.SendTimeoutMs) * time.Millisecond,
		}))
	}
	ctx.Reporter = sinks

	logger.Infof("定价服务上下文初始化完成: endpoint=%s, program=%s, sinks=%v, cache_accounts=%v",
		c.Rpc.Endpoint, c.StablebondProgram, c.Report.Sinks, c.CacheAccounts)
	return ctx, nil
}

// Close 关闭服务上下文中的资源
func (ctx *ServiceContext) Close() {
	if ctx.yaml != nil {
		if err := ctx.yaml.Close(); err != nil {
			logger.Warnf("yaml 输出关闭失败: %v", err)
		}
	}
	if ctx.Producer != nil {
		if remaining := ctx.Producer.Flush(producerFlushTimeoutMs); remaining > 0 {
			logger.Warnf("Kafka producer 关闭时仍有 %d 条消息未投递", remaining)
		}
		ctx.Producer.Close()
	}
	if ctx.AccountCache != nil {
		hits, misses := ctx.AccountCache.Stats()
		logger.Debugf("账户缓存统计: hits=%d, misses=%d, size=%d", hits, misses, ctx.AccountCache.Len())
	}
}
