package mq

import (
	"context"
	"fmt"
	"os"
	"time"

	"bond-pricer-sol/internal/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const (
	defaultBatchSize    = 32 * 1024
	defaultLingerMs     = 5
	adminRequestTimeout = 10 * time.Second
)

type KafkaProducerOption struct {
	Brokers   string // Kafka broker 地址，多个用英文逗号分隔（如 "localhost:9092,localhost:9093"）
	BatchSize int    // 批处理大小（单位字节），如 32768 = 32KB
	LingerMs  int    // 批处理最大延迟（毫秒），建议 5~20ms 之间

	Topics []TopicOption
}

// TopicOption 启动时确保存在的 topic
type TopicOption struct {
	Topic      string // topic名称
	Partitions int    // 分区数
}

// NewKafkaProducer 确保 topic 存在后创建 Kafka 生产者
func NewKafkaProducer(cfg KafkaProducerOption) (*kafka.Producer, error) {
	if err := ensureTopics(cfg); err != nil {
		return nil, err
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	lingerMs := cfg.LingerMs
	if lingerMs <= 0 {
		lingerMs = defaultLingerMs
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
		"client.id":         fmt.Sprintf("bond-pricer-sol-%s", hostname),

		// 可靠性保障
		"acks":                                  "all",
		"enable.idempotence":                    true,
		"max.in.flight.requests.per.connection": 5, // 幂等场景下最大值为 5

		// 超时与重试
		"delivery.timeout.ms": 30000,
		"request.timeout.ms":  30000,
		"retries":             5,
		"retry.backoff.ms":    100,

		// 定价事件量很小，批处理参数保持默认即可
		"batch.size":       batchSize,
		"linger.ms":        lingerMs,
		"compression.type": "none",

		"message.max.bytes": 1024 * 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, nil
}

func ensureTopics(cfg KafkaProducerOption) error {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	meta, err := adminClient.GetMetadata(nil, true, int(adminRequestTimeout/time.Millisecond))
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}

	// 单 broker 只能 1 副本
	replicationFactor := 1
	if len(meta.Brokers) > 1 {
		replicationFactor = 2
	}

	var specs []kafka.TopicSpecification
	for _, topic := range cfg.Topics {
		if topic.Topic == "" {
			continue
		}
		if _, ok := meta.Topics[topic.Topic]; ok {
			continue
		}
		specs = append(specs, kafka.TopicSpecification{
			Topic:             topic.Topic,
			NumPartitions:     max(topic.Partitions, 1),
			ReplicationFactor: replicationFactor,
		})
		logger.Infof("[mq] 创建 topic: %s, partitions=%d, replication=%d", topic.Topic, max(topic.Partitions, 1), replicationFactor)
	}
	if len(specs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), adminRequestTimeout)
	defer cancel()

	results, err := adminClient.CreateTopics(ctx, specs)
	if err != nil {
		return fmt.Errorf("failed to create topics: %w", err)
	}
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %w", result.Topic, result.Error)
		}
	}
	return nil
}
