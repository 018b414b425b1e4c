package cpu

import (
	"context"
	"time"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

// Reporter periodically samples the shared counter and hands throughput
// to a sink. It never writes to the state.
type Reporter struct {
	state    *State
	interval time.Duration
	sink     func(generator.Sample)
}

// NewReporter creates a reporter emitting every interval.
func NewReporter(state *State, interval time.Duration, sink func(generator.Sample)) *Reporter {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &Reporter{
		state:    state,
		interval: interval,
		sink:     sink,
	}
}

// Run emits samples until ctx is cancelled or the search stops. No report
// is emitted after either is observed, and Run does not emit a final report.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick and a cancel can be ready together; cancel wins.
			// A stopped search reports nothing more either.
			if ctx.Err() != nil || r.state.Stopped() {
				return
			}
			sample := r.state.Sample()
			if sample.Elapsed <= 0 {
				continue
			}
			r.sink(sample)
		}
	}
}
