// Package events publishes order lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/pgnum"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderEvent is emitted after an order is created or its status changes.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uuid.UUID `json:"order_id"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	Final      bool      `json:"final"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderEvent builds an event of the given type from a persisted order.
func NewOrderEvent(eventType string, o database.Order) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    o.ID,
		Code:       o.Code,
		Status:     o.Status,
		Total:      pgnum.MoneyString(o.Total),
		Final:      enum.IsTerminalOrderStatus(o.Status),
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers order events somewhere.
type Notifier interface {
	Notify(ctx context.Context, e OrderEvent) error
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter creates a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// KafkaPublisher writes events as JSON keyed by order code, so every event
// of one order lands on the same partition.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher creates a KafkaPublisher.
func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Notify publishes e.
func (p *KafkaPublisher) Notify(ctx context.Context, e OrderEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Code),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Fanout sends each event to every notifier. One failing notifier does not
// stop the others.
type Fanout struct {
	notifiers []Notifier
	logger    *zap.Logger
}

// NewFanout creates a Fanout.
func NewFanout(logger *zap.Logger, notifiers ...Notifier) *Fanout {
	return &Fanout{notifiers: notifiers, logger: logger}
}

// Notify delivers e to all notifiers and joins their errors.
func (f *Fanout) Notify(ctx context.Context, e OrderEvent) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, e); err != nil {
			f.logger.Warn("order event delivery failed",
				zap.String("type", e.Type),
				zap.String("code", e.Code),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
