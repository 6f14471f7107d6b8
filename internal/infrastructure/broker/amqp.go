package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"groweasy/internal/config"
	"groweasy/internal/logger"
)

// Publisher emits domain events to a topic exchange. A nil publisher drops events.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	log      *zap.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

func NewPublisher(cfg config.BrokerConfig, log *zap.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("broker url is empty")
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange, log: logger.Named(log, "broker")}, nil
}

// Publish is fire-and-forget from the caller's point of view; failures are logged.
func (p *Publisher) Publish(ctx context.Context, key string, payload any) {
	if p == nil {
		return
	}
	if err := ctx.Err(); err != nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn("event marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}
