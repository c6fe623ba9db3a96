package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/notify"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

var nowFunc = time.Now

// Global is shared state handed to every subcommand.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: <blog>/blogbuilder.yaml)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Generate the blog into a timestamped directory under dist/"`
	Init    InitCmd    `cmd:"" help:"Scaffold a new blog directory"`
	Preview PreviewCmd `cmd:"" help:"Serve the latest build and rebuild on changes"`
	Daemon  DaemonCmd  `cmd:"" help:"Rebuild periodically, pulling posts from git when configured"`
	History HistoryCmd `cmd:"" help:"Show recent builds"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// configPath returns the explicit --config or the default file inside blogDir.
func (c *CLI) configPath(blogDir string) (path string, explicit bool) {
	if c.Config != "" {
		return c.Config, true
	}
	return filepath.Join(blogDir, config.DefaultFileName), false
}

// loadConfig reads the blog configuration. Without --config, a blog with no
// config file builds with the example settings titled after its directory.
func loadConfig(root *CLI, blogDir, theme string) (*config.Config, error) {
	path, explicit := root.configPath(blogDir)
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(path); statErr != nil && !explicit && os.IsNotExist(statErr) {
		slog.Warn("No configuration file found, using defaults", logfields.Path(path))
		cfg = config.Example(filepath.Base(filepath.Clean(blogDir)))
		cfg.History.Database = ""
	} else if cfg, err = config.Load(path); err != nil {
		return nil, err
	}
	if theme != "" {
		cfg.Build.Theme = theme
	}
	return cfg, nil
}

// buildEnv bundles the optional collaborators of a generator so they can be closed together.
type buildEnv struct {
	gen      *site.Generator
	recorder *metrics.PrometheusRecorder
	textfile string
	closers  []func() error
}

func (r *buildEnv) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			slog.Warn("Close failed", logfields.Error(err))
		}
	}
}

// Generate builds and refreshes the metrics textfile when one is configured.
func (r *buildEnv) Generate(ctx context.Context) (*site.Result, error) {
	res, err := r.gen.Generate(ctx)
	if r.textfile != "" {
		if werr := r.recorder.WriteTextfile(r.textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(r.textfile), logfields.Error(werr))
		}
	}
	return res, err
}

func newBuildEnv(ctx context.Context, cfg *config.Config, blogDir string) (*buildEnv, error) {
	rt := &buildEnv{
		recorder: metrics.NewPrometheusRecorder(nil),
		textfile: config.ResolvePath(blogDir, cfg.Metrics.Textfile),
	}
	opts := []site.Option{site.WithRecorder(rt.recorder)}

	if cfg.History.Database != "" {
		store, err := history.Open(config.ResolvePath(blogDir, cfg.History.Database))
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, store.Close)
		opts = append(opts, site.WithHistory(store))
	}
	if cfg.Notify.NATSURL != "" {
		pub, err := notify.Connect(ctx, cfg.Notify.NATSURL, cfg.Notify.Subject)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, pub.Close)
		opts = append(opts, site.WithNotifier(notify.NewNotifier(pub, cfg.Notify.Subject)))
	}

	rt.gen = site.NewGenerator(cfg, blogDir, opts...)
	return rt, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
