package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, s.Append(ctx, Record{
			BuildID:   id,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  1500 * time.Millisecond,
			Posts:     i + 1,
			Status:    StatusSuccess,
		}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].BuildID)
	assert.Equal(t, "first", all[2].BuildID)
	assert.Equal(t, 1500*time.Millisecond, all[0].Duration)
	assert.True(t, all[0].StartedAt.Equal(base.Add(2*time.Minute)))

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Latest(ctx)
	require.ErrorIs(t, err, ErrNoRecords)

	require.NoError(t, s.Append(ctx, Record{
		BuildID:   "b1",
		StartedAt: time.Now(),
		Status:    StatusFailed,
		Error:     "render failed",
	}))
	r, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "render failed", r.Error)
}

func TestDuplicateBuildIDIsHistoryError(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	r := Record{BuildID: "same", StartedAt: time.Now(), Status: StatusSuccess}
	require.NoError(t, s.Append(ctx, r))

	err := s.Append(ctx, r)
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryHistory))
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, Record{BuildID: "kept", StartedAt: time.Now(), Status: StatusSuccess}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	r, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kept", r.BuildID)
}
