package report

import (
	"context"
	"errors"

	"bond-pricer-sol/internal/service"
)

// MultiReporter 依次交给每个 sink，单个 sink 失败不影响其它 sink
type MultiReporter []service.Reporter

func (m MultiReporter) Report(ctx context.Context, o service.Outcome) error {
	var errs []error
	for _, r := range m {
		if err := r.Report(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
