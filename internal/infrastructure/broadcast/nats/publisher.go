// Package nats publishes evaluation broadcasts over a NATS connection.
// Delivery is best effort: the durable notification rows written by the
// broadcast layer are the recovery path for anything lost in transit.
package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/movearena/team-league/internal/platform/logging"
)

const (
	maxReconnects = 10
	reconnectWait = 2 * time.Second
)

type Publisher struct {
	conn   *nats.Conn
	logger *logging.Logger
}

func Connect(url string, logger *logging.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logging.Default()
	}

	opts := []nats.Option{
		nats.Name("team-league"),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &Publisher{conn: conn, logger: logger}, nil
}

func (p *Publisher) Publish(_ context.Context, subject string, payload []byte) error {
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains in-flight messages before shutting the connection down.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("drain nats connection failed", "error", err)
		p.conn.Close()
	}
}
