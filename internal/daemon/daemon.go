// Package daemon rebuilds the blog on a fixed interval, optionally pulling the
// posts repository before each build.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Builder runs one full build.
type Builder interface {
	Generate(ctx context.Context) (*site.Result, error)
}

// Syncer updates the posts checkout and returns its head commit.
type Syncer interface {
	Sync(ctx context.Context, dest string) (string, error)
}

// Daemon owns the scheduler and the build job.
type Daemon struct {
	builder  Builder
	syncer   Syncer
	postsDir string
	interval time.Duration

	runs     atomic.Int64
	failures atomic.Int64
}

// New prepares a daemon. syncer may be nil when posts are not sourced from git.
func New(b Builder, syncer Syncer, postsDir string, interval time.Duration) (*Daemon, error) {
	if interval <= 0 {
		return nil, foundation.ConfigError("daemon interval must be positive").
			WithContext("interval", interval.String()).Build()
	}
	return &Daemon{builder: b, syncer: syncer, postsDir: postsDir, interval: interval}, nil
}

// Runs reports how many builds were attempted and how many failed.
func (d *Daemon) Runs() (total, failed int64) { return d.runs.Load(), d.failures.Load() }

// RunOnce syncs the source, when configured, and builds.
func (d *Daemon) RunOnce(ctx context.Context) error {
	d.runs.Add(1)
	if d.syncer != nil {
		commit, err := d.syncer.Sync(ctx, d.postsDir)
		if err != nil {
			d.failures.Add(1)
			return err
		}
		slog.Debug("Posts source synced", slog.String("commit", commit))
	}
	if _, err := d.builder.Generate(ctx); err != nil {
		d.failures.Add(1)
		return err
	}
	return nil
}

// Run builds immediately and then every interval until ctx is done. Builds
// never overlap; a tick that fires during a build is rescheduled.
func (d *Daemon) Run(ctx context.Context) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(d.interval),
		gocron.NewTask(func() {
			if err := d.RunOnce(ctx); err != nil {
				slog.Error("Scheduled build failed", logfields.Error(err))
			}
		}),
		gocron.WithName("blog-build"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to create periodic build job: %w", err)
	}

	slog.Info("Starting scheduler", slog.String("interval", d.interval.String()))
	s.Start()
	<-ctx.Done()
	slog.Info("Stopping scheduler")
	return s.Shutdown()
}
