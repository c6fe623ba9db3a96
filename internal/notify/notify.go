// Package notify publishes build events to NATS JetStream.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// EventBuildCompleted is the Type of every event emitted after a build.
const EventBuildCompleted = "build.completed"

const publishTimeout = 5 * time.Second

// BuildCompleted describes a finished build.
type BuildCompleted struct {
	Type       string    `json:"type"`
	BuildID    string    `json:"build_id"`
	Site       string    `json:"site"`
	Status     string    `json:"status"`
	Posts      int       `json:"posts"`
	Categories int       `json:"categories"`
	Tags       int       `json:"tags"`
	Skipped    int       `json:"skipped"`
	OutputDir  string    `json:"output_dir,omitempty"`
	Archive    string    `json:"archive,omitempty"`
	Commit     string    `json:"commit,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher sends a payload on a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Notifier encodes events and hands them to a Publisher.
type Notifier struct {
	pub     Publisher
	subject string
	now     func() time.Time
}

func NewNotifier(pub Publisher, subject string) *Notifier {
	return &Notifier{pub: pub, subject: subject, now: time.Now}
}

// BuildCompleted publishes ev. Type and Timestamp are filled in when empty.
func (n *Notifier) BuildCompleted(ctx context.Context, ev BuildCompleted) error {
	if ev.Type == "" {
		ev.Type = EventBuildCompleted
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = n.now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := n.pub.Publish(ctx, n.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	slog.Debug("Published build event", logfields.BuildID(ev.BuildID), slog.String("subject", n.subject))
	return nil
}
