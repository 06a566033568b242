// Package metrics periodically reports mining throughput: the
// iteration/score counters the mining supervisor keeps are read out at a
// fixed tick and logged, with hashrate derived from the delta over the
// tick interval. This is the "display/metrics task" the distilled core
// specification marks as an external collaborator, not core scope.
package metrics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Counters is the minimal surface this package needs from a mining.Miner,
// kept narrow so metrics does not import the mining package just to read
// two counters.
type Counters interface {
	Score() uint64
	Iterations() uint64
}

// Reporter periodically logs hashrate derived from a Counters source.
type Reporter struct {
	counters Counters
	log      zerolog.Logger
	interval time.Duration
}

// NewReporter returns a Reporter that logs every interval.
func NewReporter(counters Counters, log zerolog.Logger, interval time.Duration) *Reporter {
	return &Reporter{counters: counters, log: log, interval: interval}
}

// Run logs a hashrate/score snapshot every tick until ctx is done.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	lastIterations := r.counters.Iterations()
	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			iterations := r.counters.Iterations()
			score := r.counters.Score()

			elapsed := now.Sub(lastTick).Seconds()
			var rate float64
			if elapsed > 0 {
				rate = float64(iterations-lastIterations) / elapsed
			}

			r.log.Info().
				Float64("hashrate", rate).
				Uint64("iterations", iterations).
				Uint64("score", score).
				Msg("mining progress")

			lastIterations = iterations
			lastTick = now
		}
	}
}
