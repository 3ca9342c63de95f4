package listing

import (
	"context"

	"staybnb/internal/domain"
	"staybnb/internal/pkg/validator"
)

type Service struct {
	listings ListingRepository
	reviews  ReviewReader
}

func NewService(listings ListingRepository, reviews ReviewReader) *Service {
	return &Service{listings: listings, reviews: reviews}
}

// Create stores a new active listing owned by hostID.
func (s *Service) Create(ctx context.Context, hostID int64, req CreateListingRequest) (*ListingResponse, error) {
	if errs := validator.Validate(req); errs != nil {
		v := domain.NewValidationError()
		v.Merge(errs)
		return nil, v
	}

	l := req.toDomain(hostID)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return s.Get(ctx, l.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*ListingResponse, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.project(ctx, []domain.Listing{*l})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List returns the active listings, newest first.
func (s *Service) List(ctx context.Context) ([]ListingResponse, error) {
	items, err := s.listings.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, items)
}

// ListByHost includes the host's inactive listings.
func (s *Service) ListByHost(ctx context.Context, hostID int64) ([]ListingResponse, error) {
	items, err := s.listings.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, items)
}

func (s *Service) Update(ctx context.Context, callerID, id int64, req UpdateListingRequest) (*ListingResponse, error) {
	l, err := s.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	req.apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the listing together with its bookings and reviews.
func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.owned(ctx, callerID, id); err != nil {
		return err
	}
	return s.listings.Delete(ctx, id)
}

func (s *Service) owned(ctx context.Context, callerID, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.HostID != callerID {
		return nil, domain.ErrForbidden
	}
	return l, nil
}

func (s *Service) project(ctx context.Context, items []domain.Listing) ([]ListingResponse, error) {
	return Project(ctx, s.reviews, items)
}

// Project renders listings with their rating summaries, loading the approved
// reviews of all of them in one query.
func Project(ctx context.Context, reviews ReviewReader, items []domain.Listing) ([]ListingResponse, error) {
	ids := make([]int64, 0, len(items))
	for _, l := range items {
		ids = append(ids, l.ID)
	}
	byListing, err := reviews.ApprovedByListings(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ListingResponse, 0, len(items))
	for i := range items {
		out = append(out, NewListingResponse(&items[i], domain.SummarizeRatings(byListing[items[i].ID])))
	}
	return out, nil
}
