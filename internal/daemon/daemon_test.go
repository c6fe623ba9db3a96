package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

type countingBuilder struct {
	calls   atomic.Int32
	active  atomic.Int32
	overlap atomic.Bool
	delay   time.Duration
	err     error
}

func (b *countingBuilder) Generate(context.Context) (*site.Result, error) {
	if b.active.Add(1) > 1 {
		b.overlap.Store(true)
	}
	defer b.active.Add(-1)
	b.calls.Add(1)
	time.Sleep(b.delay)
	if b.err != nil {
		return nil, b.err
	}
	return &site.Result{BuildID: "x"}, nil
}

type fakeSyncer struct {
	dest string
	err  error
}

func (s *fakeSyncer) Sync(_ context.Context, dest string) (string, error) {
	s.dest = dest
	return "abc", s.err
}

func TestNewRejectsNonPositiveInterval(t *testing.T) {
	_, err := New(&countingBuilder{}, nil, "posts", 0)
	require.Error(t, err)
}

func TestRunOnceSyncsBeforeBuilding(t *testing.T) {
	b := &countingBuilder{}
	s := &fakeSyncer{}
	d, err := New(b, s, "/blog/posts", time.Hour)
	require.NoError(t, err)

	require.NoError(t, d.RunOnce(context.Background()))
	assert.Equal(t, "/blog/posts", s.dest)
	assert.Equal(t, int32(1), b.calls.Load())
}

func TestRunOnceSkipsBuildWhenSyncFails(t *testing.T) {
	b := &countingBuilder{}
	d, err := New(b, &fakeSyncer{err: errors.New("unreachable")}, "posts", time.Hour)
	require.NoError(t, err)

	require.Error(t, d.RunOnce(context.Background()))
	assert.Equal(t, int32(0), b.calls.Load())
	total, failed := d.Runs()
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), failed)
}

func TestRunBuildsImmediatelyAndRepeats(t *testing.T) {
	b := &countingBuilder{}
	d, err := New(b, nil, "posts", 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return b.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestRunNeverOverlapsBuilds(t *testing.T) {
	b := &countingBuilder{delay: 30 * time.Millisecond}
	d, err := New(b, nil, "posts", 5*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return b.calls.Load() >= 3 }, 3*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.False(t, b.overlap.Load())
}
