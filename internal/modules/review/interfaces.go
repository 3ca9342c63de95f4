package review

import (
	"context"

	"staybnb/internal/domain"
	"staybnb/internal/events"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID, guestID int64) (bool, error)
	ListByListing(ctx context.Context, listingID int64, approvedOnly bool) ([]domain.Review, error)
	SetHostResponse(ctx context.Context, id int64, response string) (*domain.Review, error)
	SetApproved(ctx context.Context, id int64, approved bool) (*domain.Review, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}
