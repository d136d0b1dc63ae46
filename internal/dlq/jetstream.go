// Package dlq captures events whose terminal upsert failed, so operators
// can inspect and replay them by hand. It records failures only; retrying
// the outbound call stays with the caller/platform.
package dlq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName    = "CONTACT_SYNC_DLQ"
	subjectPrefix = "contactsync.dlq."
)

// Writer records a failed event. A nil Writer is a valid no-op.
type Writer interface {
	Write(ctx context.Context, payload []byte, cause error, reason string) error
}

// FailedEvent is the DLQ record for one event that could not be delivered to
// the contact store.
type FailedEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
	Error     string          `json:"error"`
	Reason    string          `json:"reason"`
}

// JetStreamQueue writes failed events to NATS JetStream. Safe for use across
// multiple service instances.
type JetStreamQueue struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	stream  jetstream.Stream
	written uint64
}

// NewJetStreamQueue connects to NATS and ensures the DLQ stream exists.
func NewJetStreamQueue(ctx context.Context, natsURL string) (*JetStreamQueue, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("contact-sync"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  []string{subjectPrefix + ">"},
		MaxAge:    7 * 24 * time.Hour,
		MaxBytes:  100 * 1024 * 1024,
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create dlq stream: %w", err)
	}

	slog.Info("DLQ: JetStream stream ready", slog.String("stream", streamName))

	return &JetStreamQueue{
		conn:   conn,
		js:     js,
		stream: stream,
	}, nil
}

// Write records a failed event under contactsync.dlq.<reason>.
func (q *JetStreamQueue) Write(ctx context.Context, payload []byte, cause error, reason string) error {
	if q == nil {
		return nil
	}

	failed := FailedEvent{
		Timestamp: time.Now().UTC(),
		Payload:   payload,
		Error:     cause.Error(),
		Reason:    reason,
	}

	data, err := json.Marshal(failed)
	if err != nil {
		return fmt.Errorf("marshal dlq entry: %w", err)
	}

	if _, err := q.js.Publish(ctx, subjectPrefix+reason, data); err != nil {
		return fmt.Errorf("publish dlq entry: %w", err)
	}

	atomic.AddUint64(&q.written, 1)
	slog.Info("DLQ: captured failed event", slog.String("reason", reason))

	return nil
}

// Stats returns DLQ state from JetStream.
func (q *JetStreamQueue) Stats(ctx context.Context) map[string]any {
	if q == nil {
		return map[string]any{"enabled": false}
	}

	info, err := q.stream.Info(ctx)
	if err != nil {
		return map[string]any{
			"enabled":       true,
			"written_local": atomic.LoadUint64(&q.written),
			"error":         err.Error(),
		}
	}

	return map[string]any{
		"enabled":        true,
		"written_local":  atomic.LoadUint64(&q.written),
		"total_messages": info.State.Msgs,
		"total_bytes":    info.State.Bytes,
	}
}

// List returns up to limit failed events from the stream.
func (q *JetStreamQueue) List(ctx context.Context, limit int) ([]FailedEvent, error) {
	if q == nil {
		return nil, fmt.Errorf("dlq not enabled")
	}

	if limit <= 0 {
		limit = 100
	}

	consumer, err := q.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: subjectPrefix + ">",
		AckPolicy:     jetstream.AckNonePolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		MaxDeliver:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("create list consumer: %w", err)
	}

	msgs, err := consumer.Fetch(limit, jetstream.FetchMaxWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	var events []FailedEvent
	for msg := range msgs.Messages() {
		var failed FailedEvent
		if err := json.Unmarshal(msg.Data(), &failed); err != nil {
			slog.Warn("DLQ: skipping unparseable entry", slog.String("error", err.Error()))
			continue
		}
		events = append(events, failed)
	}

	return events, nil
}

// Close releases the NATS connection.
func (q *JetStreamQueue) Close() {
	if q != nil && q.conn != nil {
		q.conn.Close()
	}
}
