package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	cause := stderrors.New("disk full")
	err := WrapError(cause, CategoryFileSystem, "write page").
		WithContext("path", "posts/a.html").
		Fatal().
		Build()

	assert.Equal(t, CategoryFileSystem, err.Category())
	assert.True(t, err.IsFatal())
	assert.False(t, err.CanRetry())
	assert.ErrorIs(t, err, cause)

	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "posts/a.html", path)
	assert.Equal(t, "[filesystem:fatal] write page: disk full", err.Error())
}

func TestBuildCopiesContext(t *testing.T) {
	b := NewError(CategoryBuild, "stage failed").WithContext("stage", "render")
	first := b.Build()
	b.WithContext("stage", "archive")
	second := b.Build()

	s, _ := first.Context().GetString("stage")
	assert.Equal(t, "render", s)
	s, _ = second.Context().GetString("stage")
	assert.Equal(t, "archive", s)
}

func TestWithContextDoesNotMutate(t *testing.T) {
	base := BuildError("boom").Build()
	derived := base.WithContext("k", "v")

	_, ok := base.Context().GetString("k")
	assert.False(t, ok)
	_, ok = derived.Context().GetString("k")
	assert.True(t, ok)
}

func TestAsClassifiedWalksChain(t *testing.T) {
	inner := ValidationError("posts directory not found").Build()
	wrapped := fmt.Errorf("build: %w", inner)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, HasCategory(wrapped, CategoryValidation))
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestConvenienceConstructors(t *testing.T) {
	assert.True(t, GitError("clone").Build().CanRetry())
	assert.True(t, NetworkError("publish").Build().CanRetry())
	assert.False(t, ConfigError("bad").Build().CanRetry())
	assert.True(t, RenderError("tpl").Build().IsFatal())
}

func TestCLIExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", ValidationError("x").Build(), 2},
		{"config", ConfigError("x").Build(), 7},
		{"git", GitError("x").Build(), 8},
		{"render", RenderError("x").Build(), 11},
		{"filesystem", FileSystemError("x").Build(), 11},
		{"internal", InternalError("x").Build(), 10},
		{"plain", stderrors.New("x"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIFormatAndHandle(t *testing.T) {
	var out strings.Builder
	code := -1
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.out = &out
	a.exit = func(c int) { code = c }

	a.HandleError(WrapError(stderrors.New("no such dir"), CategoryValidation, "posts directory not found").Build())

	assert.Equal(t, 2, code)
	assert.Equal(t, "Error: posts directory not found: no such dir\n", out.String())
	assert.Equal(t, "Internal error occurred (use -v for details)", a.FormatError(InternalError("bug").Build()))
}

func TestHTTPStatus(t *testing.T) {
	a := NewHTTPErrorAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, http.StatusOK, a.StatusCodeFor(nil))
	assert.Equal(t, http.StatusNotFound, a.StatusCodeFor(NewError(CategoryNotFound, "missing").Build()))
	assert.Equal(t, http.StatusUnprocessableEntity, a.StatusCodeFor(RenderError("tpl").Build()))
	assert.Equal(t, http.StatusInternalServerError, a.StatusCodeFor(stderrors.New("x")))

	req := httptest.NewRequest(http.MethodGet, "/posts/a.html", nil)
	resp := a.Response(req, GitError("pull failed").WithContext("branch", "main").Build())
	assert.Equal(t, "git", resp.Code)
	assert.True(t, resp.Retryable)
	assert.Equal(t, "main", resp.Details["branch"])
}
