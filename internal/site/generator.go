package site

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/notify"
)

// HistoryStore receives one record per finished build.
type HistoryStore interface {
	Append(ctx context.Context, r history.Record) error
}

// Notifier announces finished builds.
type Notifier interface {
	BuildCompleted(ctx context.Context, ev notify.BuildCompleted) error
}

// Generator builds one blog directory.
type Generator struct {
	cfg      *config.Config
	blogDir  string
	recorder metrics.Recorder
	history  HistoryStore
	notifier Notifier
	now      func() time.Time
}

type Option func(*Generator)

func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

func WithHistory(h HistoryStore) Option { return func(g *Generator) { g.history = h } }

func WithNotifier(n Notifier) Option { return func(g *Generator) { g.notifier = n } }

// WithClock fixes the build start time, the report date and the feed timestamps.
func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }

func NewGenerator(cfg *config.Config, blogDir string, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, blogDir: blogDir, recorder: metrics.NoopRecorder{}, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result describes a successful build.
type Result struct {
	BuildID    string
	OutputDir  string
	Archive    string
	Commit     string
	Posts      int
	Drafts     int
	Categories int
	Tags       int
	Skipped    []string
	Duration   time.Duration
	Report     *BuildReport
}

// Generate runs every stage. On failure the partially written build
// directory is left in place for inspection.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	bs := newBuildState(g, uuid.NewString())
	slog.Info("Starting build", logfields.BuildID(bs.id), logfields.Path(g.blogDir))

	err := runStages(ctx, bs, defaultStages())
	duration := g.now().Sub(bs.start)
	g.recorder.ObserveBuildDuration(duration)
	g.recorder.AddSkippedDocuments(len(bs.skipped))

	res := bs.result(duration)
	switch {
	case err == nil:
		g.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
		slog.Info("Build completed",
			logfields.BuildID(bs.id),
			logfields.Count(res.Posts),
			slog.Int("skipped", len(res.Skipped)),
			logfields.DurationMS(float64(duration.Milliseconds())),
			logfields.Path(res.OutputDir))
	case ctx.Err() != nil:
		g.recorder.IncBuildOutcome(metrics.OutcomeCanceled)
	default:
		g.recorder.IncBuildOutcome(metrics.OutcomeFailed)
	}

	// A build rejected before writing output leaves no trace in history.
	if bs.outDir != "" {
		g.record(context.WithoutCancel(ctx), res, err)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (g *Generator) record(ctx context.Context, res *Result, buildErr error) {
	status, errText := history.StatusSuccess, ""
	if buildErr != nil {
		status, errText = history.StatusFailed, buildErr.Error()
	}
	if g.history != nil {
		rec := history.Record{
			BuildID:    res.BuildID,
			StartedAt:  g.now().Add(-res.Duration),
			Duration:   res.Duration,
			Posts:      res.Posts,
			Categories: res.Categories,
			Tags:       res.Tags,
			Skipped:    len(res.Skipped),
			OutputDir:  res.OutputDir,
			Archive:    res.Archive,
			Commit:     res.Commit,
			Status:     status,
			Error:      errText,
		}
		if err := g.history.Append(ctx, rec); err != nil {
			slog.Warn("Failed to record build history", logfields.BuildID(res.BuildID), logfields.Error(err))
		}
	}
	if g.notifier != nil {
		ev := notify.BuildCompleted{
			BuildID:    res.BuildID,
			Site:       g.cfg.Site.Title,
			Status:     string(status),
			Posts:      res.Posts,
			Categories: res.Categories,
			Tags:       res.Tags,
			Skipped:    len(res.Skipped),
			OutputDir:  res.OutputDir,
			Archive:    res.Archive,
			Commit:     res.Commit,
			DurationMS: res.Duration.Milliseconds(),
			Error:      errText,
		}
		if err := g.notifier.BuildCompleted(ctx, ev); err != nil {
			slog.Warn("Failed to publish build event", logfields.BuildID(res.BuildID), logfields.Error(err))
		}
	}
}

func canceled(stage StageName, err error) error {
	return foundation.WrapError(err, foundation.CategoryBuild, "build canceled").
		WithContext("stage", string(stage)).Build()
}
