package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"board/internal/middleware"
	"board/internal/observability"

	natspkg "github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "board"

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Status() natspkg.Status
}

// NATSPublisher publishes events as JSON to NATS subjects.
type NATSPublisher struct {
	nc     conn
	prefix string
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := natspkg.Connect(url,
		natspkg.Name("board-api"),
		natspkg.MaxReconnects(-1),
		natspkg.DisconnectErrHandler(func(_ *natspkg.Conn, err error) {
			if err != nil {
				middleware.Logger.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		natspkg.ReconnectHandler(func(c *natspkg.Conn) {
			middleware.Logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return newNATSPublisher(nc, prefix), nil
}

func newNATSPublisher(nc conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{nc: nc, prefix: prefix}
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	subject := Subject(p.prefix, event.Type)
	ctx, span := observability.GetTraceLayer().TracePublish(ctx, subject)
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		observability.RecordErrorInContext(ctx, err)
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// IsConnected reports whether the connection is currently up.
func (p *NATSPublisher) IsConnected() bool {
	return p.nc != nil && p.nc.Status() == natspkg.CONNECTED
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}

// PublishAfterCommit publishes event and only logs a failure. Callers use it
// once their transaction has committed, so the operation result never
// depends on the broker.
func PublishAfterCommit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		observability.EventsPublished.WithLabelValues(string(event.Type), "error").Inc()
		middleware.Logger.WarnContext(ctx, "event publish failed",
			slog.String("type", string(event.Type)),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	observability.EventsPublished.WithLabelValues(string(event.Type), "success").Inc()
}
