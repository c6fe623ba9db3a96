// Package metrics records build metrics.
//
// Components take a Recorder. NoopRecorder is the default; the Prometheus
// implementation is wired in when the CLI is asked to write a textfile or the
// preview server exposes /metrics.
package metrics
