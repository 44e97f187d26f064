package reservation

import (
	"context"
	"time"
)

const (
	EventProductImported  = "product.imported"
	EventProductWithdrawn = "product.withdrawn"
)

type ReservationEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserEmail string    `json:"user_email"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher is satisfied by pkg/broker. Publishing is best-effort; a
// failed publish never fails the reservation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
}
