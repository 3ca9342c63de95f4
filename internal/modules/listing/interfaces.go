package listing

import (
	"context"

	"staybnb/internal/domain"
)

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	Update(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Listing, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Listing, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewReader supplies the approved reviews behind a listing's rating.
type ReviewReader interface {
	ApprovedByListings(ctx context.Context, ids []int64) (map[int64][]domain.Review, error)
}
