package config

import "fmt"

// DefaultApplier fills in defaults for one configuration section.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type BuildDefaultApplier struct{}

func (BuildDefaultApplier) Domain() string { return "build" }

func (BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	b := &cfg.Build
	if b.PostsDir == "" {
		b.PostsDir = "posts"
	}
	if b.Theme == "" {
		b.Theme = "default"
	}
	if b.OutputDirFormat == "" {
		b.OutputDirFormat = "20060102_150405"
	}
	if b.PostsPerPage == 0 {
		b.PostsPerPage = 5
	}
	if b.RecentPosts == 0 {
		b.RecentPosts = 5
	}
	if b.TopCategories == 0 {
		b.TopCategories = 5
	}
	return nil
}

type SourceDefaultApplier struct{}

func (SourceDefaultApplier) Domain() string { return "source" }

func (SourceDefaultApplier) ApplyDefaults(cfg *Config) error {
	if !cfg.Source.Enabled() {
		return nil
	}
	if cfg.Source.Branch == "" {
		cfg.Source.Branch = "main"
	}
	if cfg.Source.Depth == 0 {
		cfg.Source.Depth = 1
	}
	r := &cfg.Source.Retry
	if *r == (RetryConfig{}) {
		r.MaxRetries = 2
	}
	if r.Backoff == "" {
		r.Backoff = RetryBackoffLinear
	}
	if r.Initial == "" {
		r.Initial = "1s"
	}
	if r.Max == "" {
		r.Max = "30s"
	}
	return nil
}

// RuntimeDefaultApplier covers notify, preview and daemon settings.
type RuntimeDefaultApplier struct{}

func (RuntimeDefaultApplier) Domain() string { return "runtime" }

func (RuntimeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "blogbuilder.builds"
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = 1316
	}
	if cfg.Daemon.Interval == "" {
		cfg.Daemon.Interval = "1h"
	}
	return nil
}

// Appliers returns the default appliers in the order they run.
func Appliers() []DefaultApplier {
	return []DefaultApplier{BuildDefaultApplier{}, SourceDefaultApplier{}, RuntimeDefaultApplier{}}
}

// ApplyDefaults runs every applier against cfg.
func ApplyDefaults(cfg *Config) error {
	for _, a := range Appliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}
