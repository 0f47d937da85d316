package codegen

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/graphio/graphio-go/errors"
)

// Schema change event types carried on the broker
const (
	ObjectTypeCreated = "OBJECT_TYPE_CREATED"
	ObjectTypeUpdated = "OBJECT_TYPE_UPDATED"
	ObjectTypeDeleted = "OBJECT_TYPE_DELETED"
	LinkTypeCreated   = "LINK_TYPE_CREATED"
	LinkTypeUpdated   = "LINK_TYPE_UPDATED"
	LinkTypeDeleted   = "LINK_TYPE_DELETED"
)

// ChangeEvent is one schema change notification
type ChangeEvent struct {
	EventType    string `json:"eventType"`
	ObjectTypeID string `json:"objectTypeId,omitempty"`
	LinkTypeID   string `json:"linkTypeId,omitempty"`
}

// DecodeChangeEvent parses a broker message body
func DecodeChangeEvent(body []byte) (ChangeEvent, error) {
	var event ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return ChangeEvent{}, errors.Wrap(err, "decode change event")
	}
	if event.EventType == "" {
		return ChangeEvent{}, errors.NewInvalidRequestError("change event has no eventType")
	}
	return event, nil
}

// Watcher regenerates source files as schema change events arrive
type Watcher struct {
	fetcher   *SchemaFetcher
	generator *Generator
	log       *zap.SugaredLogger
}

// NewWatcher wires a fetcher and generator together
func NewWatcher(fetcher *SchemaFetcher, generator *Generator, log *zap.SugaredLogger) *Watcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Watcher{fetcher: fetcher, generator: generator, log: log.Named("codegen")}
}

// Handle applies one change event. The schema is always re-fetched from the
// service; the event only says which type moved.
func (w *Watcher) Handle(ctx context.Context, event ChangeEvent) error {
	switch event.EventType {
	case ObjectTypeCreated, ObjectTypeUpdated:
		if event.ObjectTypeID == "" {
			return errors.NewInvalidRequestError("object type event has no objectTypeId")
		}
		schema, err := w.fetcher.FetchObjectType(ctx, event.ObjectTypeID)
		if err != nil {
			return err
		}
		path, err := w.generator.Generate(schema)
		if err != nil {
			return err
		}
		w.log.Infow("regenerated type", "objectTypeId", event.ObjectTypeID, "file", path)
		return nil

	case ObjectTypeDeleted:
		if event.ObjectTypeID == "" {
			return errors.NewInvalidRequestError("object type event has no objectTypeId")
		}
		if err := w.generator.Remove(event.ObjectTypeID); err != nil {
			return err
		}
		w.log.Infow("removed type", "objectTypeId", event.ObjectTypeID)
		return nil

	case LinkTypeCreated, LinkTypeUpdated, LinkTypeDeleted:
		w.log.Debugw("ignoring link type event", "eventType", event.EventType)
		return nil

	default:
		return errors.Newf("unknown change event type %q", event.EventType)
	}
}

// Run consumes deliveries until the channel closes or the context is done.
// Messages that fail to decode or apply are rejected without requeue.
func (w *Watcher) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			event, err := DecodeChangeEvent(delivery.Body)
			if err != nil {
				w.log.Warnw("dropping malformed change event", "error", err)
				_ = delivery.Reject(false)
				continue
			}
			if err := w.Handle(ctx, event); err != nil {
				w.log.Errorw("change event failed", "eventType", event.EventType, "error", err)
				_ = delivery.Reject(false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}
