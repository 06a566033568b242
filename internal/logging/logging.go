// Package logging configures the single process-wide zerolog.Logger every
// other package in this module logs through, and names the structured
// fields they share: nonce, score, and friends.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Field names shared across packages, kept here so callers never
// hand-type a field key that drifts from what another package uses.
const (
	FieldNonce     = "nonce"
	FieldScore     = "score"
	FieldIteration = "iteration"
	FieldAddr      = "addr"
	FieldWorker    = "worker"
)

// New builds a console-formatted zerolog.Logger at the given level,
// writing to w (os.Stderr in production). levelName is parsed with
// zerolog.ParseLevel; an empty or invalid name falls back to "info".
func New(w io.Writer, levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || levelName == "" {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Default builds a New logger writing to os.Stderr at "info" level.
func Default() zerolog.Logger {
	return New(os.Stderr, "info")
}
