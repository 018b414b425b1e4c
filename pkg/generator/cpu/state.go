package cpu

import (
	"sync/atomic"
	"time"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

// State is the shared state of one search run. Workers only touch it
// through atomics; no lock is taken on the per-candidate path.
type State struct {
	attempts atomic.Uint64
	stopped  atomic.Bool
	result   atomic.Pointer[generator.Result]
	found    chan struct{} // closed by the claim winner
	start    time.Time
}

// NewState creates the state for a run starting now.
func NewState() *State {
	return &State{
		found: make(chan struct{}),
		start: time.Now(),
	}
}

// AddAttempt counts one derived candidate and returns the new total.
func (s *State) AddAttempt() uint64 {
	return s.attempts.Add(1)
}

// Attempts returns the approximate number of candidates derived so far.
func (s *State) Attempts() uint64 {
	return s.attempts.Load()
}

// Stopped reports whether workers should exit.
func (s *State) Stopped() bool {
	return s.stopped.Load()
}

// Stop asks all workers to exit after their current candidate.
func (s *State) Stop() {
	s.stopped.Store(true)
}

// Elapsed returns the time since the run started.
func (s *State) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Claim publishes result if no other worker has. Only the first caller
// wins; it also raises the stop flag and wakes the coordinator. Later
// callers get false and their result is discarded.
func (s *State) Claim(result *generator.Result) bool {
	if !s.result.CompareAndSwap(nil, result) {
		return false
	}
	s.stopped.Store(true)
	close(s.found)
	return true
}

// Found is closed once a result has been claimed.
func (s *State) Found() <-chan struct{} {
	return s.found
}

// Result returns the claimed result, or nil.
func (s *State) Result() *generator.Result {
	return s.result.Load()
}

// Sample takes a throughput observation.
func (s *State) Sample() generator.Sample {
	attempts := s.Attempts()
	elapsed := s.Elapsed()

	var rate float64
	if elapsed > 0 {
		rate = float64(attempts) / elapsed.Seconds()
	}
	return generator.Sample{
		Attempts: attempts,
		Elapsed:  elapsed,
		Rate:     rate,
	}
}

// Stats converts a sample into the generator.Stats view.
func (s *State) Stats() generator.Stats {
	sample := s.Sample()
	return generator.Stats{
		Attempts:    sample.Attempts,
		HashRate:    sample.Rate,
		ElapsedSecs: sample.Elapsed.Seconds(),
	}
}
