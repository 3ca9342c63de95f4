// Package events carries booking and review notifications to the parties of
// a stay. Delivery is best effort: a failed publish never undoes the write
// that produced the event.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	BookingCreated  Type = "booking.created"
	BookingUpdated  Type = "booking.updated"
	ReviewPosted    Type = "review.posted"
	ReviewResponded Type = "review.responded"
	ReviewApproved  Type = "review.approved"
)

// Data references the records an event is about. Zero ids are omitted.
type Data struct {
	BookingID int64  `json:"booking_id,omitempty"`
	ListingID int64  `json:"listing_id,omitempty"`
	ReviewID  int64  `json:"review_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	RecipientID int64     `json:"recipient_id"`
	Data        Data      `json:"data"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func New(t Type, recipientID int64, data Data) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        t,
		RecipientID: recipientID,
		Data:        data,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
