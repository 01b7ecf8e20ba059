package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/M4Y-RentalService/internal/domain"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
}

func (c *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, c.declareErr
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	channel := &fakeChannel{}
	publisher, err := NewPublisher(channel, ReservationEventsQueue)
	require.NoError(t, err)
	assert.Equal(t, []string{ReservationEventsQueue}, channel.declared)

	penalty := &domain.Penalty{
		ID:            5,
		ReservationID: 42,
		EventType:     domain.EventCancellation,
		Amount:        decimal.RequireFromString("90.75"),
		AppliedAt:     time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	event := NewPenaltyApplied(penalty)

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, channel.published, 1)

	msg := channel.published[0]
	assert.Equal(t, ReservationEventsQueue, channel.keys[0])
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, event.ID, msg.MessageId)
	_, err = uuid.Parse(msg.MessageId)
	assert.NoError(t, err)

	var decoded struct {
		Type    string                `json:"event_type"`
		Payload PenaltyAppliedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "penalty_applied", decoded.Type)
	assert.Equal(t, "90.75", decoded.Payload.Amount)
	assert.Equal(t, "cancellation", decoded.Payload.EventType)
}

func TestNewPublisher_DeclareFails(t *testing.T) {
	_, err := NewPublisher(&fakeChannel{declareErr: errors.New("channel closed")}, ReservationEventsQueue)
	assert.Error(t, err)
}

func TestPublisher_PublishError(t *testing.T) {
	publisher, err := NewPublisher(&fakeChannel{publishErr: errors.New("broken pipe")}, ReservationEventsQueue)
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), NewReservationCancelled(&domain.Reservation{ID: 1}, nil, time.Now()))
	assert.Error(t, err)
}

func TestNewReservationCancelled_WithPenalty(t *testing.T) {
	event := NewReservationCancelled(
		&domain.Reservation{ID: 42, UserID: 7},
		&domain.Penalty{Amount: decimal.RequireFromString("90.75")},
		time.Now(),
	)

	payload, ok := event.Payload.(ReservationCancelledPayload)
	require.True(t, ok)
	require.NotNil(t, payload.PenaltyAmount)
	assert.Equal(t, "90.75", *payload.PenaltyAmount)
	assert.NotEqual(t, event.ID, NewReservationCancelled(&domain.Reservation{ID: 42}, nil, time.Now()).ID)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), Event{}))
}
