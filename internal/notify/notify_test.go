package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.subject = subject
	f.data = data
	return f.err
}

func TestBuildCompletedPublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, "blogbuilder.builds")
	n.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	err := n.BuildCompleted(context.Background(), BuildCompleted{
		BuildID: "abc",
		Site:    "My Blog",
		Status:  "success",
		Posts:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "blogbuilder.builds", pub.subject)

	var got map[string]any
	require.NoError(t, json.Unmarshal(pub.data, &got))
	assert.Equal(t, EventBuildCompleted, got["type"])
	assert.Equal(t, "abc", got["build_id"])
	assert.Equal(t, 2.0, got["posts"])
	assert.Equal(t, "2024-03-01T12:00:00Z", got["timestamp"])
	assert.NotContains(t, got, "error")
}

func TestBuildCompletedWrapsPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("no responders")}
	err := NewNotifier(pub, "s").BuildCompleted(context.Background(), BuildCompleted{BuildID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
}

func TestStreamName(t *testing.T) {
	assert.Equal(t, "BLOGBUILDER_BUILDS", streamName("blogbuilder.builds"))
	assert.Equal(t, "EVENTS_ALL", streamName("events.>"))
}
