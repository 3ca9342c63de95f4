package review

import (
	"context"
	"errors"
	"log"

	"staybnb/internal/domain"
	"staybnb/internal/events"
	"staybnb/internal/pkg/validator"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingRepository
	listings ListingRepository
	events   EventPublisher
}

func NewService(reviews ReviewRepository, bookings BookingRepository, listings ListingRepository, publisher EventPublisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		reviews:  reviews,
		bookings: bookings,
		listings: listings,
		events:   publisher,
	}
}

// Create records callerID's review of one of their bookings. The booking's
// status is not checked. A second review of the same booking fails either
// here or, when two requests race, on the store's unique index.
func (s *Service) Create(ctx context.Context, callerID int64, req CreateReviewRequest) (*ReviewResponse, error) {
	v := domain.NewValidationError()
	v.Merge(validator.Validate(req))
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, *req.Booking)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.FieldError("booking", "Booking not found.")
		}
		return nil, err
	}
	if b.GuestID != callerID {
		return nil, domain.ErrForbidden
	}

	rv := &domain.Review{
		BookingID: b.ID,
		GuestID:   b.GuestID,
		ListingID: b.ListingID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
	}
	if err := rv.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForBooking(ctx, b.ID, b.GuestID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.FieldError("non_field_errors", duplicateReviewMessage)
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}

	if b.Listing != nil {
		s.publish(ctx, events.New(events.ReviewPosted, b.Listing.HostID, events.Data{
			BookingID: b.ID,
			ListingID: b.ListingID,
			ReviewID:  rv.ID,
		}))
	}

	return s.get(ctx, rv.ID)
}

// Respond stores the listing host's public answer to a review.
func (s *Service) Respond(ctx context.Context, callerID, reviewID int64, req HostResponseRequest) (*ReviewResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		v := domain.NewValidationError()
		v.Merge(errs)
		return nil, v
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	l, err := s.listings.GetByID(ctx, rv.ListingID)
	if err != nil {
		return nil, err
	}
	if l.HostID != callerID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.reviews.SetHostResponse(ctx, reviewID, req.HostResponse)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.ReviewResponded, updated.GuestID, events.Data{
		BookingID: updated.BookingID,
		ListingID: updated.ListingID,
		ReviewID:  updated.ID,
	}))

	out := NewReviewResponse(updated)
	return &out, nil
}

// Approve publishes a review. Only approved reviews are listed and counted
// in a listing's rating.
func (s *Service) Approve(ctx context.Context, reviewID int64) (*ReviewResponse, error) {
	updated, err := s.reviews.SetApproved(ctx, reviewID, true)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.ReviewApproved, updated.GuestID, events.Data{
		BookingID: updated.BookingID,
		ListingID: updated.ListingID,
		ReviewID:  updated.ID,
	}))

	out := NewReviewResponse(updated)
	return &out, nil
}

// ListForListing returns the listing's approved reviews, newest first.
func (s *Service) ListForListing(ctx context.Context, listingID int64) ([]ReviewResponse, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	items, err := s.reviews.ListByListing(ctx, listingID, true)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewResponse, 0, len(items))
	for i := range items {
		out = append(out, NewReviewResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) get(ctx context.Context, id int64) (*ReviewResponse, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := NewReviewResponse(rv)
	return &out, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("event_publish_failed type=%s recipient_id=%d error=%v", e.Type, e.RecipientID, err)
	}
}
