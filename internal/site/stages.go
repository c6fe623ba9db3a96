package site

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// StageName identifies a build stage in logs and metrics.
type StageName string

const (
	StagePrepare   StageName = "prepare"
	StageLoad      StageName = "load"
	StageIndex     StageName = "index"
	StageOutput    StageName = "output"
	StageRender    StageName = "render"
	StageAssets    StageName = "assets"
	StageFeeds     StageName = "feeds"
	StageAnalytics StageName = "analytics"
	StageReport    StageName = "report"
	StageArchive   StageName = "archive"
)

// StageDef pairs a stage with its implementation.
type StageDef struct {
	Name StageName
	Fn   func(ctx context.Context, bs *buildState) error
}

func defaultStages() []StageDef {
	return []StageDef{
		{StagePrepare, stagePrepare},
		{StageLoad, stageLoad},
		{StageIndex, stageIndex},
		{StageOutput, stageOutput},
		{StageRender, stageRender},
		{StageAssets, stageAssets},
		{StageFeeds, stageFeeds},
		{StageAnalytics, stageAnalytics},
		{StageReport, stageReport},
		{StageArchive, stageArchive},
	}
}

// runStages executes stages in order, timing each and stopping on the first error.
func runStages(ctx context.Context, bs *buildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			return canceled(st.Name, ctx.Err())
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.gen.recorder.ObserveStageDuration(string(st.Name), dur)

		if err != nil {
			slog.Debug("Stage failed", logfields.Stage(string(st.Name)), logfields.Error(err))
			return err
		}
		slog.Debug("Stage completed", logfields.Stage(string(st.Name)), logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
