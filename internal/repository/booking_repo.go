package repository

import (
	"context"
	"time"

	"staybnb/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64           `gorm:"column:id;primaryKey"`
	ListingID       int64           `gorm:"column:listing_id;not null;index"`
	Listing         *listingModel   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	GuestID         int64           `gorm:"column:guest_id;not null;index"`
	Guest           *userModel      `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE"`
	CheckInDate     datatypes.Date  `gorm:"column:check_in_date;type:date;not null"`
	CheckOutDate    datatypes.Date  `gorm:"column:check_out_date;type:date;not null;check:check_out_after_check_in,check_out_date > check_in_date"`
	NumGuests       int             `gorm:"column:num_guests;not null;check:chk_bookings_num_guests,num_guests >= 1"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null"`
	Status          string          `gorm:"column:status;size:20;not null"`
	SpecialRequests string          `gorm:"column:special_requests;type:text"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:              m.ID,
		ListingID:       m.ListingID,
		GuestID:         m.GuestID,
		CheckInDate:     domain.DateOf(time.Time(m.CheckInDate)),
		CheckOutDate:    domain.DateOf(time.Time(m.CheckOutDate)),
		NumGuests:       m.NumGuests,
		TotalPrice:      m.TotalPrice,
		Status:          domain.BookingStatus(m.Status),
		SpecialRequests: m.SpecialRequests,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Listing != nil {
		b.Listing = toDomainListing(*m.Listing)
	}
	if m.Guest != nil {
		b.Guest = toDomainUser(*m.Guest)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		ListingID:       b.ListingID,
		GuestID:         b.GuestID,
		CheckInDate:     datatypes.Date(b.CheckInDate.Time()),
		CheckOutDate:    datatypes.Date(b.CheckOutDate.Time()),
		NumGuests:       b.NumGuests,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Host").
		Preload("Guest")
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	listing, guest := b.Listing, b.Guest
	*b = *toDomainBooking(m)
	b.Listing, b.Guest = listing, guest
	return nil
}

// Update rewrites the mutable columns of b. The check-out-after-check-in
// constraint is enforced by the store on this path as well.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	m.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&bookingModel{ID: b.ID}).
		Select("check_in_date", "check_out_date", "num_guests", "status", "special_requests", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	b.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.preloaded(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainBooking(m), nil
}

// ListByGuest returns the guest's bookings newest first.
func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.preloaded(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

// ListByHost returns bookings made on any listing the host owns, newest first.
func (r *BookingRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.preloaded(ctx).
		Where("listing_id IN (?)", r.db.Model(&listingModel{}).Select("id").Where("host_id = ?", hostID)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt).Error
	return cnt, err
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
