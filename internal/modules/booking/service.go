package booking

import (
	"context"
	"errors"
	"log"

	"staybnb/internal/domain"
	"staybnb/internal/events"
	"staybnb/internal/modules/listing"
	"staybnb/internal/pkg/validator"
)

type Service struct {
	bookings BookingRepository
	listings ListingRepository
	reviews  ReviewReader
	events   EventPublisher
}

func NewService(bookings BookingRepository, listings ListingRepository, reviews ReviewReader, publisher EventPublisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		bookings: bookings,
		listings: listings,
		reviews:  reviews,
		events:   publisher,
	}
}

// Create books a listing for guestID. The price is the listing's current
// nightly price times the number of nights, fixed at this point.
func (s *Service) Create(ctx context.Context, guestID int64, req CreateBookingRequest) (*BookingResponse, error) {
	v := domain.NewValidationError()
	v.Merge(validator.Validate(req))
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	l, err := s.listings.GetByID(ctx, *req.Listing)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.FieldError("listing", "Listing not found.")
		}
		return nil, err
	}

	b := &domain.Booking{
		ListingID:       l.ID,
		GuestID:         guestID,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		NumGuests:       *req.NumGuests,
		Status:          domain.BookingPending,
		SpecialRequests: req.SpecialRequests,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.TotalPrice = domain.StayPrice(l.PricePerNight, b.CheckInDate, b.CheckOutDate)

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.BookingCreated, l.HostID, events.Data{
		BookingID: b.ID,
		ListingID: l.ID,
		Status:    string(b.Status),
	}))

	return s.get(ctx, b.ID)
}

// Get returns the booking if the caller is its guest or the listing's host.
func (s *Service) Get(ctx context.Context, callerID, id int64) (*BookingResponse, error) {
	b, err := s.participant(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	out, err := s.project(ctx, []domain.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) ListForGuest(ctx context.Context, guestID int64) ([]BookingResponse, error) {
	items, err := s.bookings.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, items)
}

func (s *Service) ListForHost(ctx context.Context, hostID int64) ([]BookingResponse, error) {
	items, err := s.bookings.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, items)
}

// Update changes dates, guests, requests or status. Status may be set to any
// valid value and total_price is not recalculated.
func (s *Service) Update(ctx context.Context, callerID, id int64, req UpdateBookingRequest) (*BookingResponse, error) {
	b, err := s.participant(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	req.apply(b)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	recipient := b.GuestID
	if callerID == b.GuestID && b.Listing != nil {
		recipient = b.Listing.HostID
	}
	s.publish(ctx, events.New(events.BookingUpdated, recipient, events.Data{
		BookingID: b.ID,
		ListingID: b.ListingID,
		Status:    string(b.Status),
	}))

	return s.get(ctx, id)
}

func (s *Service) participant(ctx context.Context, callerID, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID == callerID {
		return b, nil
	}
	if b.Listing != nil && b.Listing.HostID == callerID {
		return b, nil
	}
	return nil, domain.ErrForbidden
}

func (s *Service) get(ctx context.Context, id int64) (*BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.project(ctx, []domain.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) project(ctx context.Context, items []domain.Booking) ([]BookingResponse, error) {
	seen := make(map[int64]bool)
	var listings []domain.Listing
	for _, b := range items {
		if b.Listing != nil && !seen[b.ListingID] {
			seen[b.ListingID] = true
			listings = append(listings, *b.Listing)
		}
	}
	projected, err := listing.Project(ctx, s.reviews, listings)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]listing.ListingResponse, len(projected))
	for _, p := range projected {
		byID[p.ID] = p
	}

	out := make([]BookingResponse, 0, len(items))
	for i := range items {
		out = append(out, NewBookingResponse(&items[i], byID[items[i].ListingID]))
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("event_publish_failed type=%s recipient_id=%d error=%v", e.Type, e.RecipientID, err)
	}
}
