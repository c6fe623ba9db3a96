package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// ErrNoBuilds is returned by Latest when dist/ holds no build directory.
var ErrNoBuilds = errors.New("workspace: no builds found")

// Manager creates and locates build directories inside a dist directory.
type Manager struct {
	distDir string
	layout  string
}

func NewManager(distDir, layout string) *Manager {
	if layout == "" {
		layout = "20060102_150405"
	}
	return &Manager{distDir: distDir, layout: layout}
}

// DistDir returns the directory holding all builds.
func (m *Manager) DistDir() string { return m.distDir }

// Create makes the build directory for a build started at now.
func (m *Manager) Create(now time.Time) (string, error) {
	if err := os.MkdirAll(m.distDir, 0o755); err != nil {
		return "", foundation.WrapError(err, foundation.CategoryFileSystem, "create dist directory").
			WithContext("path", m.distDir).Fatal().Build()
	}
	name := now.Format(m.layout)
	dir := filepath.Join(m.distDir, name)
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", foundation.WrapError(err, foundation.CategoryFileSystem, "create build directory").
				WithContext("path", dir).Fatal().Build()
		}
		dir = filepath.Join(m.distDir, fmt.Sprintf("%s_%d", name, i))
	}
	slog.Debug("Created build directory", logfields.Path(dir))
	return dir, nil
}

// Latest returns the most recently modified build directory.
func (m *Manager) Latest() (string, error) {
	entries, err := os.ReadDir(m.distDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoBuilds
		}
		return "", fmt.Errorf("read dist directory: %w", err)
	}
	var (
		latest   string
		latestAt time.Time
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestAt) || (info.ModTime().Equal(latestAt) && e.Name() > filepath.Base(latest)) {
			latest = filepath.Join(m.distDir, e.Name())
			latestAt = info.ModTime()
		}
	}
	if latest == "" {
		return "", ErrNoBuilds
	}
	return latest, nil
}
