package cpu

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

func TestState_NoLostUpdates(t *testing.T) {
	const (
		workers    = 16
		iterations = 10000
	)
	state := NewState()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				state.AddAttempt()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(workers*iterations), state.Attempts())
}

func TestState_SinglePublish(t *testing.T) {
	const contenders = 32
	state := NewState()

	results := make([]*generator.Result, contenders)
	for i := range results {
		results[i] = &generator.Result{Address: "bc1q" + strconv.Itoa(i)}
	}

	start := make(chan struct{})
	wins := make([]bool, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			wins[i] = state.Claim(results[i])
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	var winner *generator.Result
	for i, won := range wins {
		if won {
			winners++
			winner = results[i]
		}
	}
	require.Equal(t, 1, winners)
	assert.Same(t, winner, state.Result())
	assert.True(t, state.Stopped())

	select {
	case <-state.Found():
	default:
		t.Fatal("found channel not closed")
	}

	// Late claims are still rejected.
	assert.False(t, state.Claim(&generator.Result{Address: "late"}))
	assert.Same(t, winner, state.Result())
}

func TestState_StopWithoutResult(t *testing.T) {
	state := NewState()
	assert.False(t, state.Stopped())
	assert.Nil(t, state.Result())

	state.Stop()
	assert.True(t, state.Stopped())
	assert.Nil(t, state.Result())

	select {
	case <-state.Found():
		t.Fatal("found closed without a claim")
	default:
	}
}

func TestState_Sample(t *testing.T) {
	state := NewState()
	for i := 0; i < 10; i++ {
		state.AddAttempt()
	}

	sample := state.Sample()
	assert.Equal(t, uint64(10), sample.Attempts)
	assert.Positive(t, sample.Elapsed)
	assert.InDelta(t, float64(10)/sample.Elapsed.Seconds(), sample.Rate, 1e-6)

	stats := state.Stats()
	assert.Equal(t, uint64(10), stats.Attempts)
	assert.Positive(t, stats.ElapsedSecs)
}
