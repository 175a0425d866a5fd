package report

import (
	"context"
	"fmt"
	"io"
	"sync"

	"bond-pricer-sol/internal/service"

	"gopkg.in/yaml.v3"
)

// YamlReporter 每个标的输出一个 YAML 文档（以 --- 分隔）
type YamlReporter struct {
	mu  sync.Mutex
	enc *yaml.Encoder
}

func NewYamlReporter(w io.Writer) *YamlReporter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YamlReporter{enc: enc}
}

func (r *YamlReporter) Report(_ context.Context, o service.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Encode(NewPriceRecord(o)); err != nil {
		return fmt.Errorf("yaml encode %s: %w", o.Instrument, err)
	}
	return nil
}

func (r *YamlReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Close()
}
