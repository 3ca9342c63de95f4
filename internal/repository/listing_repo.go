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

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

type listingModel struct {
	ID            int64                       `gorm:"column:id;primaryKey"`
	HostID        int64                       `gorm:"column:host_id;not null;index"`
	Host          *userModel                  `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	Title         string                      `gorm:"column:title;size:200;not null"`
	Description   string                      `gorm:"column:description;type:text;not null"`
	PropertyType  string                      `gorm:"column:property_type;size:20;not null"`
	PricePerNight decimal.Decimal             `gorm:"column:price_per_night;type:decimal(10,2);not null;index;check:chk_listings_price_min,price_per_night >= 10"`
	MaxGuests     int                         `gorm:"column:max_guests;not null;check:chk_listings_max_guests,max_guests >= 1"`
	NumBedrooms   int                         `gorm:"column:num_bedrooms;not null;check:chk_listings_num_bedrooms,num_bedrooms >= 0"`
	NumBeds       int                         `gorm:"column:num_beds;not null;check:chk_listings_num_beds,num_beds >= 1"`
	NumBathrooms  int                         `gorm:"column:num_bathrooms;not null;check:chk_listings_num_bathrooms,num_bathrooms >= 0"`
	Address       string                      `gorm:"column:address;size:255;not null"`
	City          string                      `gorm:"column:city;size:100;not null;index"`
	State         string                      `gorm:"column:state;size:100;not null"`
	Country       string                      `gorm:"column:country;size:100;not null"`
	Latitude      decimal.NullDecimal         `gorm:"column:latitude;type:decimal(9,6)"`
	Longitude     decimal.NullDecimal         `gorm:"column:longitude;type:decimal(9,6)"`
	Amenities     datatypes.JSONSlice[string] `gorm:"column:amenities"`
	IsActive      bool                        `gorm:"column:is_active;not null;index"`
	CreatedAt     time.Time                   `gorm:"column:created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at"`
}

func (listingModel) TableName() string { return "listings" }

func toDomainListing(m listingModel) *domain.Listing {
	l := &domain.Listing{
		ID:            m.ID,
		HostID:        m.HostID,
		Title:         m.Title,
		Description:   m.Description,
		PropertyType:  domain.PropertyType(m.PropertyType),
		PricePerNight: m.PricePerNight,
		MaxGuests:     m.MaxGuests,
		NumBedrooms:   m.NumBedrooms,
		NumBeds:       m.NumBeds,
		NumBathrooms:  m.NumBathrooms,
		Address:       m.Address,
		City:          m.City,
		State:         m.State,
		Country:       m.Country,
		Latitude:      fromNullDecimal(m.Latitude),
		Longitude:     fromNullDecimal(m.Longitude),
		Amenities:     []string(m.Amenities),
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if m.Host != nil {
		l.Host = toDomainUser(*m.Host)
	}
	return l
}

func toListingModel(l *domain.Listing) listingModel {
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return listingModel{
		ID:            l.ID,
		HostID:        l.HostID,
		Title:         l.Title,
		Description:   l.Description,
		PropertyType:  string(l.PropertyType),
		PricePerNight: l.PricePerNight,
		MaxGuests:     l.MaxGuests,
		NumBedrooms:   l.NumBedrooms,
		NumBeds:       l.NumBeds,
		NumBathrooms:  l.NumBathrooms,
		Address:       l.Address,
		City:          l.City,
		State:         l.State,
		Country:       l.Country,
		Latitude:      toNullDecimal(l.Latitude),
		Longitude:     toNullDecimal(l.Longitude),
		Amenities:     datatypes.JSONSlice[string](amenities),
		IsActive:      l.IsActive,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	host := l.Host
	*l = *toDomainListing(m)
	l.Host = host
	return nil
}

// Update writes every column of l. created_at and host are never rewritten.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	m.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&listingModel{ID: l.ID}).
		Select("*").
		Omit(clause.Associations, "id", "host_id", "created_at").
		Updates(&m)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	l.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var m listingModel
	if err := r.db.WithContext(ctx).Preload("Host").First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainListing(m), nil
}

// List returns listings newest first. activeOnly hides deactivated listings.
func (r *ListingRepository) List(ctx context.Context, activeOnly bool) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Preload("Host").Order("created_at DESC, id DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []listingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}

func (r *ListingRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Listing, error) {
	var rows []listingModel
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("host_id = ?", hostID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}

func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&listingModel{}).Count(&cnt).Error
	return cnt, err
}

// Delete removes the listing with its bookings and their reviews.
func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&reviewModel{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Delete(&listingModel{}, id)
		if res.Error != nil {
			return translateError(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
