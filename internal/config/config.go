// Package config loads and validates the blogbuilder YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// DefaultFileName is looked up inside the blog directory when no config path is given.
const DefaultFileName = "blogbuilder.yaml"

// Config is the complete build-time configuration. It is read once and passed
// explicitly to every component; nothing mutates it during a build.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Build     BuildConfig     `yaml:"build"`
	Analytics AnalyticsConfig `yaml:"analytics,omitempty"`
	Source    SourceConfig    `yaml:"source,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Notify    NotifyConfig    `yaml:"notify,omitempty"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Preview   PreviewConfig   `yaml:"preview,omitempty"`
	Daemon    DaemonConfig    `yaml:"daemon,omitempty"`
}

// SiteConfig describes the published blog.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
}

// BuildConfig controls the content pipeline and output layout.
type BuildConfig struct {
	PostsDir string `yaml:"posts_dir"`
	Theme    string `yaml:"theme"`
	// OutputDirFormat is a Go time layout naming each build directory under dist/.
	OutputDirFormat string `yaml:"output_dir_format"`
	PostsPerPage    int    `yaml:"posts_per_page"`
	RecentPosts     int    `yaml:"recent_posts"`
	TopCategories   int    `yaml:"top_categories"`
	Archive         *bool  `yaml:"archive,omitempty"`
}

// ArchiveEnabled reports whether the output tree is zipped after a build.
func (b BuildConfig) ArchiveEnabled() bool {
	return b.Archive == nil || *b.Archive
}

// AnalyticsConfig enables tracking snippet injection when TrackingID is set.
type AnalyticsConfig struct {
	TrackingID string `yaml:"tracking_id,omitempty"`
}

// SourceConfig points at a git repository holding the posts directory.
type SourceConfig struct {
	Repository string      `yaml:"repository,omitempty"`
	Branch     string      `yaml:"branch,omitempty"`
	Depth      int         `yaml:"depth,omitempty"`
	Retry      RetryConfig `yaml:"retry,omitempty"`
}

// RetryBackoffMode selects how the delay between sync attempts grows.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// RetryConfig bounds retries of transient git failures.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff,omitempty"`
	Initial    string           `yaml:"initial,omitempty"`
	Max        string           `yaml:"max,omitempty"`
	MaxRetries int              `yaml:"max_retries,omitempty"`
}

// InitialDuration parses Initial. Call after Validate.
func (r RetryConfig) InitialDuration() time.Duration {
	v, _ := time.ParseDuration(r.Initial)
	return v
}

// MaxDuration parses Max. Call after Validate.
func (r RetryConfig) MaxDuration() time.Duration {
	v, _ := time.ParseDuration(r.Max)
	return v
}

// Enabled reports whether posts are fetched from git before building.
func (s SourceConfig) Enabled() bool { return s.Repository != "" }

// HistoryConfig names the sqlite database of build reports. Empty disables history.
type HistoryConfig struct {
	Database string `yaml:"database,omitempty"`
}

// NotifyConfig publishes build events to NATS when URL is set.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig writes Prometheus metrics to a textfile collector file when set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

type PreviewConfig struct {
	Port int `yaml:"port,omitempty"`
}

type DaemonConfig struct {
	Interval string `yaml:"interval,omitempty"`
}

// IntervalDuration parses Interval. Call after Validate.
func (d DaemonConfig) IntervalDuration() time.Duration {
	v, _ := time.ParseDuration(d.Interval)
	return v
}

// Load reads path, loads .env files next to it, expands ${VAR} references,
// applies defaults and validates the result.
func Load(path string) (*Config, error) {
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, foundation.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, foundation.WrapError(err, foundation.CategoryConfig, "read configuration").Fatal().Build()
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryConfig, "parse configuration").Fatal().UserAction().Build()
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolvePath interprets p relative to base unless it is absolute or empty.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Example returns the configuration written by Init.
func Example(title string) *Config {
	cfg := &Config{
		Site: SiteConfig{
			Title:       title,
			Author:      "Your Name",
			URL:         "https://example.com",
			Description: "Notes and articles",
		},
		History: HistoryConfig{Database: "dist/history.db"},
	}
	// The appliers only fill zero values and never return an error.
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init writes an example configuration to path. An existing file is kept unless force is set.
func Init(path, title string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return foundation.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	data, err := yaml.Marshal(Example(title))
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "create config directory").Fatal().Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "write config").Fatal().Build()
	}
	return nil
}
