package ports

import "time"

// Recorder receives metrics from the converters and the column builder.
type Recorder interface {
	// ObserveConversion records one conversion attempt ("depth" or "coordinate") and its outcome.
	ObserveConversion(kind, outcome string, elapsed time.Duration)
	// ObserveColumn records one completed column: real layers, synthesized gaps and flagged bounds.
	ObserveColumn(kind string, layers, gaps, flagged int)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) ObserveConversion(string, string, time.Duration) {}
func (NopRecorder) ObserveColumn(string, int, int, int)             {}
