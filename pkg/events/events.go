package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/grovebook/mentor-sessions/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSBus struct {
	conn *nats.Conn
}

func NewNATSBus(url string) (*NATSBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSBus{conn: conn}, nil
}

func (n *NATSBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSBus) Close() error {
	n.conn.Close()
	return nil
}

// Noop drops every event; used when no NATS url is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
func (Noop) Close() error                                       { return nil }

// Subjects
const (
	BookingCreated = "booking.created"
	SlotCreated    = "slot.created"
	SlotCancelled  = "slot.cancelled"
	UserRegistered = "user.registered"
)

type BookingCreatedEvent struct {
	BookingID string    `json:"booking_id"`
	SlotID    string    `json:"slot_id"`
	MentorID  string    `json:"mentor_id"`
	UserID    string    `json:"user_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	CreatedAt time.Time `json:"created_at"`
}

type SlotCreatedEvent struct {
	SlotID   string    `json:"slot_id"`
	MentorID string    `json:"mentor_id"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
}

type SlotCancelledEvent struct {
	SlotID      string    `json:"slot_id"`
	MentorID    string    `json:"mentor_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type UserRegisteredEvent struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
