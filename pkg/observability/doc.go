/*
Package observability exposes the engine's conversion and column activity as
Prometheus metrics.

Metrics implements ports.Recorder and can be handed to the converters and the
column engine through their WithRecorder options.
*/
package observability
