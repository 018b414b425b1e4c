package cpu

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
	"github.com/Amr-9/SegwitHunter/pkg/generator/bitcoin"
)

// DefaultStatsInterval is used when a config does not set one.
const DefaultStatsInterval = 5 * time.Second

// CPUGenerator implements the Generator interface using CPU-based goroutines.
type CPUGenerator struct {
	workers int                    // Number of concurrent workers
	logger  *zap.Logger            // Never nil
	sink    func(generator.Sample) // Progress channel; nil logs samples
	entropy io.Reader              // nil selects crypto/rand

	state atomic.Pointer[State] // Current or last run

	mu      sync.Mutex
	lastErr error
}

// Option configures a CPUGenerator.
type Option func(*CPUGenerator)

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *CPUGenerator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSink receives every progress sample.
func WithSink(sink func(generator.Sample)) Option {
	return func(g *CPUGenerator) {
		g.sink = sink
	}
}

// WithEntropy replaces the random source shared by all workers.
// The reader must be safe for concurrent use.
func WithEntropy(r io.Reader) Option {
	return func(g *CPUGenerator) {
		g.entropy = r
	}
}

// NewCPUGenerator creates a new CPU-based generator.
// If workers is 0, it defaults to the number of CPU cores.
func NewCPUGenerator(workers int, opts ...Option) *CPUGenerator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g := &CPUGenerator{
		workers: workers,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	state := g.state.Load()
	if state == nil {
		return generator.Stats{}
	}
	return state.Stats()
}

// Err returns the error that ended the last run started with Start, if any.
func (g *CPUGenerator) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// Start begins the vanity address search in the background.
// The returned channel receives the single result and is then closed; it is
// closed without a value if the search is cancelled or fails (see Err).
func (g *CPUGenerator) Start(ctx context.Context, config *generator.Config) (<-chan generator.Result, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil config", generator.ErrConfig)
	}
	state := g.begin()

	resultChan := make(chan generator.Result, 1)
	go func() {
		defer close(resultChan)
		result, err := g.run(ctx, config, state)
		if err != nil {
			g.mu.Lock()
			g.lastErr = err
			g.mu.Unlock()
			return
		}
		resultChan <- *result
	}()
	return resultChan, nil
}

// Search runs a vanity address search and blocks until a match is claimed,
// ctx is cancelled, or a worker fails fatally. A claimed match is returned
// even if cancellation races with it.
func (g *CPUGenerator) Search(ctx context.Context, config *generator.Config) (*generator.Result, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: nil config", generator.ErrConfig)
	}
	return g.run(ctx, config, g.begin())
}

func (g *CPUGenerator) begin() *State {
	state := NewState()
	g.state.Store(state)

	g.mu.Lock()
	g.lastErr = nil
	g.mu.Unlock()
	return state
}

func (g *CPUGenerator) run(ctx context.Context, config *generator.Config, state *State) (*generator.Result, error) {
	workers := g.workers
	if config.Workers > 0 {
		workers = config.Workers
	}
	interval := config.StatsInterval
	if interval <= 0 {
		interval = DefaultStatsInterval
	}

	logger := g.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("search started",
		zap.String("prefix", config.Prefix),
		zap.String("suffix", config.Suffix),
		zap.Int("workers", workers),
		zap.Duration("stats_interval", interval))

	// Patterns are pre-processed once and shared read-only.
	matcher := bitcoin.NewSegwitMatcher(config.Prefix, config.Suffix)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		w := &worker{
			id:      i,
			state:   state,
			keys:    bitcoin.NewKeyGenerator(g.entropy),
			matcher: matcher,
			logger:  logger,
		}
		group.Go(w.run)
	}

	reporterCtx, stopReporter := context.WithCancel(context.Background())
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		NewReporter(state, interval, g.sampleSink(logger)).Run(reporterCtx)
	}()

	// groupCtx ends on a worker error or caller cancellation.
	select {
	case <-state.Found():
	case <-groupCtx.Done():
	}

	state.Stop()
	stopReporter()
	err := group.Wait()
	<-reporterDone

	if result := state.Result(); result != nil {
		logger.Info("search finished",
			zap.String("address", result.Address),
			zap.Uint64("attempts", result.Attempts),
			zap.Duration("elapsed", result.Elapsed))
		return result, nil
	}

	if err == nil {
		err = ctx.Err()
	}
	logger.Warn("search aborted",
		zap.Error(err),
		zap.Uint64("attempts", state.Attempts()),
		zap.Duration("elapsed", state.Elapsed()))
	return nil, err
}

// sampleSink returns the configured sink, or one that logs samples.
func (g *CPUGenerator) sampleSink(logger *zap.Logger) func(generator.Sample) {
	if g.sink != nil {
		return g.sink
	}
	return func(s generator.Sample) {
		logger.Info("progress",
			zap.Uint64("attempts", s.Attempts),
			zap.Duration("elapsed", s.Elapsed),
			zap.Float64("rate", s.Rate))
	}
}
