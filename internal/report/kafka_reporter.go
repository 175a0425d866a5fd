package report

import (
	"context"
	"fmt"
	"time"

	"bond-pricer-sol/internal/pkg/mq"
	"bond-pricer-sol/internal/service"
	"bond-pricer-sol/internal/utils"
)

// 定价事件类型，写在消息前 4 字节
const (
	EventTypePrice       uint32 = 1
	EventTypePriceFailed uint32 = 2
)

type KafkaReporterOption struct {
	Topic       string
	Partitions  int
	SendTimeout time.Duration
}

// KafkaReporter 每个标的发送一条事件，按 mint 选择分区，并等待投递结果
type KafkaReporter struct {
	producer mq.Producer
	opt      KafkaReporterOption
}

func NewKafkaReporter(producer mq.Producer, opt KafkaReporterOption) *KafkaReporter {
	if opt.SendTimeout <= 0 {
		opt.SendTimeout = 5 * time.Second
	}
	if opt.Partitions <= 0 {
		opt.Partitions = 1
	}
	return &KafkaReporter{producer: producer, opt: opt}
}

func (r *KafkaReporter) Report(ctx context.Context, o service.Outcome) error {
	job, err := r.buildJob(o)
	if err != nil {
		return err
	}
	_, failed := mq.SendKafkaJobs(ctx, r.producer, []*mq.KafkaJob{job}, r.opt.SendTimeout)
	if len(failed) > 0 {
		return fmt.Errorf("kafka send %s: %w", o.Instrument, failed[0].Err)
	}
	return nil
}

func (r *KafkaReporter) buildJob(o service.Outcome) (*mq.KafkaJob, error) {
	msg, err := NewPriceRecord(o).ToStruct()
	if err != nil {
		return nil, fmt.Errorf("build price event %s: %w", o.Instrument, err)
	}
	eventType := EventTypePrice
	if !o.OK() {
		eventType = EventTypePriceFailed
	}
	value, err := utils.EncodeEvent(eventType, msg)
	if err != nil {
		return nil, err
	}

	mint := o.Instrument.Mint
	return &mq.KafkaJob{
		Topic:     r.opt.Topic,
		Partition: int32(utils.PartitionHashBytes(mint[:], uint32(r.opt.Partitions))),
		Key:       append([]byte(nil), mint[:]...),
		Value:     value,
	}, nil
}
