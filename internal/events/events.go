// AngelaMos | 2026
// events.go

package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	CompanyCreated       Type = "company.created"
	CompanyVerified      Type = "company.verification_changed"
	OrderCreated         Type = "order.created"
	OrderResponseCreated Type = "order_response.created"
	OrderResponseStatus  Type = "order_response.status_changed"
	ReviewCreated        Type = "review.created"
)

// Event is the envelope written to the event stream. Key decides the
// partition, so all events for one aggregate stay ordered.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func New(t Type, key string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher hands events off after a mutation commits. Publish never
// blocks the caller and never fails the mutation.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close(ctx context.Context) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}

func (NopPublisher) Close(context.Context) error { return nil }
