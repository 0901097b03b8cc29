package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/time-tracker-api/internal/config"
)

// Publisher writes audit events to the broker. It never panics and
// never fails the request that triggered the event: publish errors are
// logged and swallowed, trading delivery guarantees for availability
// of the API itself.
type Publisher struct {
	url   string
	queue string
	log   *zap.Logger
}

// NewPublisher builds a publisher from the audit configuration.
func NewPublisher(cfg config.AuditConfig, log *zap.Logger) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.Queue, log: log}
}

// Record publishes an AuditEvent describing one successful mutation.
func (p *Publisher) Record(ctx context.Context, entity, action string, id uint64, actor string) {
	ev := AuditEvent{
		Entity:     entity,
		Action:     action,
		EntityID:   id,
		Actor:      actor,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.publish(ctx, ev); err != nil {
		p.log.Warn("audit publish failed",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Uint64("entity_id", id),
			zap.Error(err),
		)
	}
}

// publish dials the broker, declares the durable queue (idempotent)
// and sends one persistent message. A fresh connection per event keeps
// the publisher stateless; audit volume is one message per mutation,
// which stays well below where connection reuse would matter.
func (p *Publisher) publish(ctx context.Context, ev AuditEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
