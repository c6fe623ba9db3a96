// Package preview serves the latest build over HTTP and rebuilds when sources change.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Builder runs one full build.
type Builder interface {
	Generate(ctx context.Context) (*site.Result, error)
}

// Options configures a Server.
type Options struct {
	Addr string
	// WatchDirs are watched recursively; missing directories are skipped.
	WatchDirs []string
	// Metrics, when set, is served at /metrics.
	Metrics  http.Handler
	Debounce time.Duration
	// Initial is served until the first rebuild succeeds.
	Initial string
}

// Status is the JSON body of /_preview/status.
type Status struct {
	OutputDir string    `json:"output_dir,omitempty"`
	BuildID   string    `json:"build_id,omitempty"`
	BuiltAt   time.Time `json:"built_at,omitzero"`
	LastError string    `json:"last_error,omitempty"`
}

// Server is the preview HTTP server.
type Server struct {
	e       *echo.Echo
	builder Builder
	opts    Options
	errs    *foundation.HTTPErrorAdapter

	buildMu sync.Mutex
	current atomic.Pointer[Status]
}

func New(b Builder, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	s := &Server{builder: b, opts: opts, errs: foundation.NewHTTPErrorAdapter(nil)}
	s.current.Store(&Status{OutputDir: opts.Initial})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Debug("request",
				logfields.Method(v.Method),
				logfields.Path(v.URI),
				logfields.Status(v.Status),
				logfields.DurationMS(float64(v.Latency.Microseconds())/1000))
			return nil
		},
	}))
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}
	e.GET("/_preview/status", s.handleStatus)
	e.GET("/*", s.handleSite)
	e.HEAD("/*", s.handleSite)
	s.e = e
	return s
}

// Handler exposes the routes for embedding or testing.
func (s *Server) Handler() http.Handler { return s.e }

// Current returns the state of the build being served.
func (s *Server) Current() Status { return *s.current.Load() }

// Rebuild runs a build and, on success, switches to serving its output.
// Concurrent calls are serialized.
func (s *Server) Rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	res, err := s.builder.Generate(ctx)
	prev := s.current.Load()
	if err != nil {
		next := *prev
		next.LastError = err.Error()
		s.current.Store(&next)
		return err
	}
	s.current.Store(&Status{OutputDir: res.OutputDir, BuildID: res.BuildID, BuiltAt: time.Now()})
	slog.Info("Preview updated", logfields.BuildID(res.BuildID), logfields.Path(res.OutputDir))
	return nil
}

// Run builds once, serves on opts.Addr and rebuilds on changes until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	w, err := newWatcher(s.opts.WatchDirs, s.opts.Debounce)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	serveErr := make(chan error, 1)
	go func() {
		if err := s.e.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	slog.Info("Preview server listening", slog.String("addr", s.opts.Addr))

	go w.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			slog.Info("Shutting down preview server")
			return s.e.Shutdown(shutdownCtx)
		case err, ok := <-serveErr:
			if ok && err != nil {
				return foundation.WrapError(err, foundation.CategoryNetwork, "preview server").
					WithContext("addr", s.opts.Addr).Fatal().Build()
			}
			return nil
		case <-w.Rebuilds():
			if err := s.Rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Current())
}

func (s *Server) handleSite(c echo.Context) error {
	dir := s.current.Load().OutputDir
	if dir == "" {
		return foundation.NewError(foundation.CategoryNotFound, "no build available yet").Build()
	}

	rel := path.Clean("/" + c.Param("*"))
	if strings.HasSuffix(c.Request().URL.Path, "/") || rel == "/" {
		rel = path.Join(rel, "index.html")
	}
	file := filepath.Join(dir, filepath.FromSlash(rel))
	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, "index.html")
		info, err = os.Stat(file)
	}
	if err != nil || info.IsDir() {
		return s.notFound(c, dir)
	}
	return c.File(file)
}

func (s *Server) notFound(c echo.Context, dir string) error {
	page, err := os.ReadFile(filepath.Join(dir, "404.html"))
	if err != nil {
		return echo.ErrNotFound
	}
	return c.HTMLBlob(http.StatusNotFound, page)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, foundation.HTTPErrorResponse{Error: msg})
		return
	}
	_ = c.JSON(s.errs.StatusCodeFor(err), s.errs.Response(c.Request(), err))
}
