package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// NATSPublisher publishes through JetStream onto a stream that captures its subject.
type NATSPublisher struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// Connect dials url and makes sure a stream exists for subject.
func Connect(ctx context.Context, url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("blogbuilder"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryNetwork, "connect to NATS").
			WithContext("url", url).Retryable().Build()
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, foundation.WrapError(err, foundation.CategoryNetwork, "create JetStream context").Build()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName(subject),
		Description: "blogbuilder build events",
		Subjects:    []string{subject},
		MaxMsgs:     10000,
	}); err != nil {
		conn.Close()
		return nil, foundation.WrapError(err, foundation.CategoryNetwork, "ensure JetStream stream").
			WithContext("subject", subject).Build()
	}

	slog.Info("NATS publisher connected", slog.String("url", url), slog.String("subject", subject))
	return &NATSPublisher{conn: conn, js: js}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("jetstream publish: %w", err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// streamName derives a valid stream name from a subject such as "blogbuilder.builds".
func streamName(subject string) string {
	r := strings.NewReplacer(".", "_", "*", "ANY", ">", "ALL", " ", "_")
	return strings.ToUpper(r.Replace(subject))
}
