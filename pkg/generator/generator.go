// Package generator defines the types shared by the segwit vanity search.
// The search backend implements Generator; the CLI only sees Config,
// Result, Stats and Sample.
package generator

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConfig marks a configuration that must be rejected before a search starts.
	ErrConfig = errors.New("invalid configuration")

	// ErrEntropy marks a failure of the secure random source. It is fatal.
	ErrEntropy = errors.New("entropy source failure")

	// ErrInvalidAddress marks a string that is not a mainnet P2WPKH address.
	ErrInvalidAddress = errors.New("invalid p2wpkh address")
)

// Config holds the configuration for one vanity address search.
type Config struct {
	Prefix        string        // Pattern required right after "bc1q"
	Suffix        string        // Pattern the address must end with (empty = none)
	Workers       int           // Number of concurrent workers
	StatsInterval time.Duration // Cadence of progress samples
}

// HasSuffix reports whether a suffix pattern is configured.
func (c *Config) HasSuffix() bool {
	return c.Suffix != ""
}

// Result contains a successfully found vanity address and its private key.
type Result struct {
	Address    string        // bc1q... address
	PrivateKey string        // 64-char lowercase hex
	WIF        string        // Compressed mainnet WIF
	Attempts   uint64        // Attempts counted when the match was claimed
	Elapsed    time.Duration // Time from search start to the claim
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of addresses generated
	HashRate    float64 // Current hashes per second
	ElapsedSecs float64 // Time elapsed since start
}

// Sample is one periodic throughput observation.
type Sample struct {
	Attempts uint64
	Elapsed  time.Duration
	Rate     float64 // attempts per second
}

// Generator defines the contract for address search backends.
type Generator interface {
	// Search blocks until a match is found, the context is cancelled or a
	// worker fails fatally.
	Search(ctx context.Context, config *Config) (*Result, error)

	// Start runs Search in the background and delivers the result on the
	// returned channel. The channel is closed without a value if the search
	// ends without a match.
	Start(ctx context.Context, config *Config) (<-chan Result, error)

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name.
	Name() string
}
