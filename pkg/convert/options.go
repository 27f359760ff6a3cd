package convert

import (
	"io"
	"log/slog"

	"github.com/aretw0/strata/pkg/ports"
)

// Outcome describes what a conversion did to the target fields.
type Outcome string

const (
	OutcomeApplied    Outcome = "applied"    // Result written to the target
	OutcomeCleared    Outcome = "cleared"    // Input not computable, target emptied
	OutcomeStale      Outcome = "stale"      // Superseded by a newer write, result dropped
	OutcomeFailed     Outcome = "failed"     // External service failed, target untouched
	OutcomeRejected   Outcome = "rejected"   // Input outside the valid bounds, no call made
	OutcomeIncomplete Outcome = "incomplete" // Not enough input to convert, no call made
)

type options struct {
	logger   *slog.Logger
	recorder ports.Recorder
}

// Option configures the converters of this package.
type Option func(*options)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecorder sets a metrics recorder.
func WithRecorder(r ports.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: ports.NopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// field is a value with a generation counter. It is guarded by its owner's mutex.
type field struct {
	value string
	gen   uint64
}

func (f *field) set(v string) {
	f.value = v
	f.gen++
}
