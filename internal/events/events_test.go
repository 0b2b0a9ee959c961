package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/enum"
	"github.com/delivra/api/internal/pgnum"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type recordingNotifier struct {
	got []OrderEvent
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, e OrderEvent) error {
	n.got = append(n.got, e)
	return n.err
}

func testOrder(status string) database.Order {
	return database.Order{
		ID:     uuid.New(),
		Code:   "AB12CD34",
		Status: status,
		Total:  pgnum.Money(decimal.RequireFromString("28.5")),
	}
}

func TestNewOrderEvent(t *testing.T) {
	e := NewOrderEvent(enum.EventOrderCreated, testOrder(enum.OrderStatusPending))
	assert.Equal(t, "28.50", e.Total)
	assert.Equal(t, "AB12CD34", e.Code)
	assert.False(t, e.Final)

	e = NewOrderEvent(enum.EventOrderStatusChanged, testOrder(enum.OrderStatusDelivered))
	assert.True(t, e.Final)
}

func TestKafkaPublisher_Notify(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)
	e := NewOrderEvent(enum.EventOrderCreated, testOrder(enum.OrderStatusPending))

	require.NoError(t, p.Notify(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "AB12CD34", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, enum.EventOrderCreated, string(msg.Headers[0].Value))

	var decoded OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, e.OrderID, decoded.OrderID)
	assert.Equal(t, enum.OrderStatusPending, decoded.Status)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")})
	err := p.Notify(context.Background(), NewOrderEvent(enum.EventOrderCreated, testOrder(enum.OrderStatusPending)))
	assert.ErrorContains(t, err, "broker down")
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("socket closed")}
	ok := &recordingNotifier{}
	f := NewFanout(zap.NewNop(), failing, ok)

	err := f.Notify(context.Background(), NewOrderEvent(enum.EventOrderCreated, testOrder(enum.OrderStatusPending)))
	assert.ErrorContains(t, err, "socket closed")
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1)
}
