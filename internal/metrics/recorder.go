package metrics

import "time"

// Outcome is the final status of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder receives build and stage observations.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	AddPosts(published, drafts int)
	AddSkippedDocuments(n int)
	IncBuildOutcome(outcome Outcome)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) AddPosts(int, int)                          {}
func (NoopRecorder) AddSkippedDocuments(int)                    {}
func (NoopRecorder) IncBuildOutcome(Outcome)                    {}
