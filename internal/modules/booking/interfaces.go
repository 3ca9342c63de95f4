package booking

import (
	"context"

	"staybnb/internal/domain"
	"staybnb/internal/events"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type ReviewReader interface {
	ApprovedByListings(ctx context.Context, ids []int64) (map[int64][]domain.Review, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}
