package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

type fakeBuilder struct {
	dirs  []string
	err   error
	calls int
}

func (f *fakeBuilder) Generate(context.Context) (*site.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	dir := f.dirs[(f.calls-1)%len(f.dirs)]
	return &site.Result{BuildID: filepath.Base(dir), OutputDir: dir}, nil
}

func buildDir(t *testing.T, index string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "404.html"), []byte("custom not found"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tags", "go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags", "go", "index.html"), []byte("tag go"), 0o644))
	return dir
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServesCurrentBuild(t *testing.T) {
	dir := buildDir(t, "home page")
	s := New(&fakeBuilder{dirs: []string{dir}}, Options{})
	require.NoError(t, s.Rebuild(context.Background()))

	rec := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home page", rec.Body.String())

	assert.Equal(t, "tag go", get(t, s.Handler(), "/tags/go/").Body.String())
	assert.Equal(t, "tag go", get(t, s.Handler(), "/tags/go").Body.String())
}

func TestMissingPageServes404Template(t *testing.T) {
	s := New(&fakeBuilder{dirs: []string{buildDir(t, "x")}}, Options{})
	require.NoError(t, s.Rebuild(context.Background()))

	rec := get(t, s.Handler(), "/nope.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "custom not found", rec.Body.String())
}

func TestPathTraversalStaysInBuild(t *testing.T) {
	dir := buildDir(t, "x")
	s := New(&fakeBuilder{dirs: []string{dir}}, Options{})
	require.NoError(t, s.Rebuild(context.Background()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/../../etc/passwd"
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoBuildYetIsClassifiedNotFound(t *testing.T) {
	s := New(&fakeBuilder{err: errors.New("boom")}, Options{})

	rec := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body foundation.HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(foundation.CategoryNotFound), body.Code)
}

func TestRebuildSwapsAndKeepsLastGoodOnFailure(t *testing.T) {
	first := buildDir(t, "first")
	second := buildDir(t, "second")
	b := &fakeBuilder{dirs: []string{first, second}}
	s := New(b, Options{})

	require.NoError(t, s.Rebuild(context.Background()))
	assert.Equal(t, "first", get(t, s.Handler(), "/").Body.String())
	require.NoError(t, s.Rebuild(context.Background()))
	assert.Equal(t, "second", get(t, s.Handler(), "/").Body.String())

	b.err = foundation.RenderError("template broke").Build()
	require.Error(t, s.Rebuild(context.Background()))
	assert.Equal(t, "second", get(t, s.Handler(), "/").Body.String())

	var st Status
	require.NoError(t, json.Unmarshal(get(t, s.Handler(), "/_preview/status").Body.Bytes(), &st))
	assert.Equal(t, second, st.OutputDir)
	assert.Contains(t, st.LastError, "template broke")
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("blogbuilder_build_outcomes_total 1"))
	})
	s := New(&fakeBuilder{dirs: []string{buildDir(t, "x")}}, Options{Metrics: metrics})

	rec := get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blogbuilder_build_outcomes_total")
}

func TestWatcherDebouncesBursts(t *testing.T) {
	w, err := newWatcher(nil, 20*time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	for i := 0; i < 5; i++ {
		w.handle(fsnotify.Event{Name: "/blog/posts/a.md", Op: fsnotify.Write})
	}

	select {
	case <-w.Rebuilds():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a rebuild signal")
	}
	select {
	case <-w.Rebuilds():
		t.Fatal("expected a single rebuild signal for one burst")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestIgnored(t *testing.T) {
	for path, want := range map[string]bool{
		"posts/a.md":      false,
		"posts/.a.md.swp": true,
		"posts/a.md~":     true,
		"posts/#a.md#":    true,
		"posts/.DS_Store": true,
	} {
		assert.Equal(t, want, ignored(path), path)
	}
}
