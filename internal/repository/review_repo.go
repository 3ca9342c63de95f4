package repository

import (
	"context"
	"time"

	"staybnb/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// One review per booking, and (booking, guest) unique on top of that.
type reviewModel struct {
	ID           int64         `gorm:"column:id;primaryKey"`
	BookingID    int64         `gorm:"column:booking_id;not null;uniqueIndex:idx_reviews_booking;uniqueIndex:idx_reviews_booking_guest,priority:1"`
	Booking      *bookingModel `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	GuestID      int64         `gorm:"column:guest_id;not null;index;uniqueIndex:idx_reviews_booking_guest,priority:2"`
	Guest        *userModel    `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE"`
	ListingID    int64         `gorm:"column:listing_id;not null;index"`
	Listing      *listingModel `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	Rating       int           `gorm:"column:rating;not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment      string        `gorm:"column:comment;type:text;not null"`
	HostResponse string        `gorm:"column:host_response;type:text"`
	IsApproved   bool          `gorm:"column:is_approved;not null"`
	CreatedAt    time.Time     `gorm:"column:created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	rv := &domain.Review{
		ID:           m.ID,
		BookingID:    m.BookingID,
		GuestID:      m.GuestID,
		ListingID:    m.ListingID,
		Rating:       m.Rating,
		Comment:      m.Comment,
		HostResponse: m.HostResponse,
		IsApproved:   m.IsApproved,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Guest != nil {
		rv.Guest = toDomainUser(*m.Guest)
	}
	return rv
}

func toReviewModel(rv *domain.Review) reviewModel {
	return reviewModel{
		ID:           rv.ID,
		BookingID:    rv.BookingID,
		GuestID:      rv.GuestID,
		ListingID:    rv.ListingID,
		Rating:       rv.Rating,
		Comment:      rv.Comment,
		HostResponse: rv.HostResponse,
		IsApproved:   rv.IsApproved,
		CreatedAt:    rv.CreatedAt,
		UpdatedAt:    rv.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	guest := rv.Guest
	*rv = *toDomainReview(m)
	rv.Guest = guest
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	if err := r.db.WithContext(ctx).Preload("Guest").First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID, guestID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("booking_id = ? AND guest_id = ?", bookingID, guestID).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListByListing returns the listing's reviews newest first. approvedOnly
// hides reviews that staff has not approved yet.
func (r *ReviewRepository) ListByListing(ctx context.Context, listingID int64, approvedOnly bool) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).
		Preload("Guest").
		Where("listing_id = ?", listingID).
		Order("created_at DESC, id DESC")
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}

	var rows []reviewModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

// ApprovedByListings loads the approved reviews of every listing in ids,
// keyed by listing id.
func (r *ReviewRepository) ApprovedByListings(ctx context.Context, ids []int64) (map[int64][]domain.Review, error) {
	out := make(map[int64][]domain.Review, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []reviewModel
	err := r.db.WithContext(ctx).
		Where("listing_id IN ? AND is_approved = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ListingID] = append(out[m.ListingID], *toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) SetHostResponse(ctx context.Context, id int64, response string) (*domain.Review, error) {
	return r.update(ctx, id, map[string]any{"host_response": response})
}

func (r *ReviewRepository) SetApproved(ctx context.Context, id int64, approved bool) (*domain.Review, error) {
	return r.update(ctx, id, map[string]any{"is_approved": approved})
}

func (r *ReviewRepository) update(ctx context.Context, id int64, fields map[string]any) (*domain.Review, error) {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&reviewModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&reviewModel{}).Count(&cnt).Error
	return cnt, err
}
