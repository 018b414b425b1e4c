package cpu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
	"github.com/Amr-9/SegwitHunter/pkg/generator/bitcoin"
)

// worker runs the generate -> derive -> count -> match loop on one goroutine.
type worker struct {
	id      int
	state   *State
	keys    *bitcoin.KeyGenerator
	matcher *bitcoin.SegwitMatcher
	logger  *zap.Logger
}

// run loops until the stop flag is raised, a match is claimed or the
// entropy source fails. The stop flag is polled once per candidate.
func (w *worker) run() error {
	var attempts uint64
	defer func() {
		w.logger.Debug("worker stopped", zap.Int("worker", w.id), zap.Uint64("attempts", attempts))
	}()

	for !w.state.Stopped() {
		privKey, err := w.keys.Next()
		if err != nil {
			return fmt.Errorf("worker %d: %w", w.id, err)
		}

		address := bitcoin.DeriveAddress(privKey)
		w.state.AddAttempt()
		attempts++

		if !w.matcher.Matches(address) {
			continue
		}

		result := &generator.Result{
			Address:    address,
			PrivateKey: bitcoin.PrivateKeyHex(privKey),
			WIF:        bitcoin.PrivateKeyToWIF(privKey),
			Attempts:   w.state.Attempts(),
			Elapsed:    w.state.Elapsed(),
		}
		if w.state.Claim(result) {
			w.logger.Info("match found",
				zap.Int("worker", w.id),
				zap.String("address", address),
				zap.Uint64("attempts", result.Attempts),
				zap.Duration("elapsed", result.Elapsed))
		} else {
			// Lost the race to another worker; first claim wins.
			w.logger.Debug("match discarded", zap.Int("worker", w.id), zap.String("address", address))
		}
		return nil
	}
	return nil
}
