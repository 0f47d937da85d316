// Package mq publishes ontology mutations and workflow log events to
// RabbitMQ. The Publisher satisfies the same submit surface as the HTTP
// client, so an edit session can flush over either transport.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/graphio/graphio-go/config"
	"github.com/graphio/graphio-go/errors"
	"github.com/graphio/graphio-go/ontology"
)

// Queue and routing key layout of the ontology workflow broker
const (
	MutationQueue = "ontology.workflow.objects.queue"

	KeyObjectInsert = "objects.insert"
	KeyObjectUpdate = "objects.update"
	KeyObjectDelete = "objects.delete"

	AutomationQueue = "automation.executed.queue"
	KeyAutomation   = "automation"

	ObservationQueue = "observation.queue"
	KeyObservation   = "observation"
)

// Publisher owns one AMQP connection and channel. Unlike a package-level
// singleton, each Publisher is independent; Close releases its resources.
//
// Safe for concurrent use; publishes are serialized on the channel.
type Publisher struct {
	cfg config.MQConfig
	log *zap.SugaredLogger

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// Dial connects to the broker described by cfg
func Dial(cfg config.MQConfig, log *zap.SugaredLogger) (*Publisher, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	conn, err := amqp.Dial(brokerURL(cfg))
	if err != nil {
		return nil, errors.Wrapf(err, "dial broker %s:%d", cfg.Host, cfg.Port)
	}

	p := &Publisher{
		cfg:  cfg,
		log:  log.Named("mq"),
		conn: conn,
	}
	if _, err := p.channel(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func brokerURL(cfg config.MQConfig) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port)
}

// Close shuts down the channel and connection. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var chErr, connErr error
	if p.ch != nil && !p.ch.IsClosed() {
		chErr = p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		connErr = p.conn.Close()
	}
	return errors.CombineErrors(chErr, connErr)
}

// channel returns the live channel, reopening it if the broker closed it.
// Caller must not hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, errors.WithStack(errors.ErrClientClosed)
	}
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}
	p.ch = ch
	return ch, nil
}

// publishJSON declares the durable queue, binds it to the configured
// exchange under the routing key, and publishes the body as a persistent
// JSON message
func (p *Publisher) publishJSON(ctx context.Context, queue, key string, body any) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare queue %s", queue)
	}
	if p.cfg.Exchange != "" {
		if err := ch.QueueBind(queue, key, p.cfg.Exchange, false, nil); err != nil {
			return errors.Wrapf(err, "bind queue %s to %s", queue, p.cfg.Exchange)
		}
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode message")
	}

	exchange := p.cfg.Exchange
	routingKey := key
	if exchange == "" {
		// Default exchange routes on queue name
		routingKey = queue
	}

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         encoded,
	})
	if err != nil {
		return errors.Wrapf(err, "publish to %s", queue)
	}

	p.log.Debugw("published message", "queue", queue, "key", routingKey, "bytes", len(encoded))
	return nil
}

// submit publishes one mutation envelope and reports how many messages it
// carried
func (p *Publisher) submit(ctx context.Context, key, eventType string, messages []ontology.ObjectMessage) (map[string]any, error) {
	env := ontology.NewMutationEnvelope(eventType, messages)
	if err := p.publishJSON(ctx, MutationQueue, key, env); err != nil {
		return nil, err
	}
	return map[string]any{"published": len(messages)}, nil
}

// SubmitCreate publishes a batched insert event
func (p *Publisher) SubmitCreate(ctx context.Context, messages []ontology.ObjectMessage) (map[string]any, error) {
	return p.submit(ctx, KeyObjectInsert, ontology.EventInsert, messages)
}

// SubmitUpdate publishes a batched update event
func (p *Publisher) SubmitUpdate(ctx context.Context, messages []ontology.ObjectMessage) (map[string]any, error) {
	return p.submit(ctx, KeyObjectUpdate, ontology.EventUpdate, messages)
}

// SubmitDelete publishes a batched delete event
func (p *Publisher) SubmitDelete(ctx context.Context, messages []ontology.ObjectMessage) (map[string]any, error) {
	return p.submit(ctx, KeyObjectDelete, ontology.EventDelete, messages)
}

var _ ontology.SubmitTransport = (*Publisher)(nil)
