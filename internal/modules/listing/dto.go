package listing

import (
	"time"

	"staybnb/internal/domain"

	"github.com/shopspring/decimal"
)

// CreateListingRequest is the host-supplied subset of a listing. The host
// itself always comes from the authenticated caller.
type CreateListingRequest struct {
	Title         string              `json:"title" validate:"required,max=200"`
	Description   string              `json:"description" validate:"required"`
	PropertyType  domain.PropertyType `json:"property_type" validate:"required,oneof=apartment house villa condo cabin cottage"`
	PricePerNight *decimal.Decimal    `json:"price_per_night" validate:"required"`
	MaxGuests     *int                `json:"max_guests" validate:"required"`
	NumBedrooms   *int                `json:"num_bedrooms" validate:"required"`
	NumBeds       *int                `json:"num_beds" validate:"required"`
	NumBathrooms  *int                `json:"num_bathrooms" validate:"required"`
	Address       string              `json:"address" validate:"required,max=255"`
	City          string              `json:"city" validate:"required,max=100"`
	State         string              `json:"state" validate:"required,max=100"`
	Country       string              `json:"country" validate:"required,max=100"`
	Latitude      *decimal.Decimal    `json:"latitude"`
	Longitude     *decimal.Decimal    `json:"longitude"`
	Amenities     []string            `json:"amenities"`
}

func (r CreateListingRequest) toDomain(hostID int64) *domain.Listing {
	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &domain.Listing{
		HostID:        hostID,
		Title:         r.Title,
		Description:   r.Description,
		PropertyType:  r.PropertyType,
		PricePerNight: *r.PricePerNight,
		MaxGuests:     *r.MaxGuests,
		NumBedrooms:   *r.NumBedrooms,
		NumBeds:       *r.NumBeds,
		NumBathrooms:  *r.NumBathrooms,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Country:       r.Country,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Amenities:     amenities,
		IsActive:      true,
	}
}

// UpdateListingRequest is a partial update. Absent fields keep their value.
// Coordinates cannot be cleared through it.
type UpdateListingRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	PropertyType  *domain.PropertyType `json:"property_type"`
	PricePerNight *decimal.Decimal     `json:"price_per_night"`
	MaxGuests     *int                 `json:"max_guests"`
	NumBedrooms   *int                 `json:"num_bedrooms"`
	NumBeds       *int                 `json:"num_beds"`
	NumBathrooms  *int                 `json:"num_bathrooms"`
	Address       *string              `json:"address"`
	City          *string              `json:"city"`
	State         *string              `json:"state"`
	Country       *string              `json:"country"`
	Latitude      *decimal.Decimal     `json:"latitude"`
	Longitude     *decimal.Decimal     `json:"longitude"`
	Amenities     []string             `json:"amenities"`
	IsActive      *bool                `json:"is_active"`
}

func (r UpdateListingRequest) apply(l *domain.Listing) {
	setIf(&l.Title, r.Title)
	setIf(&l.Description, r.Description)
	setIf(&l.PropertyType, r.PropertyType)
	setIf(&l.PricePerNight, r.PricePerNight)
	setIf(&l.MaxGuests, r.MaxGuests)
	setIf(&l.NumBedrooms, r.NumBedrooms)
	setIf(&l.NumBeds, r.NumBeds)
	setIf(&l.NumBathrooms, r.NumBathrooms)
	setIf(&l.Address, r.Address)
	setIf(&l.City, r.City)
	setIf(&l.State, r.State)
	setIf(&l.Country, r.Country)
	setIf(&l.IsActive, r.IsActive)
	if r.Latitude != nil {
		l.Latitude = r.Latitude
	}
	if r.Longitude != nil {
		l.Longitude = r.Longitude
	}
	if r.Amenities != nil {
		l.Amenities = r.Amenities
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ListingResponse is the public projection of a listing. Decimals are
// rendered at their stored precision.
type ListingResponse struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	PropertyType  domain.PropertyType `json:"property_type"`
	PricePerNight string              `json:"price_per_night"`
	MaxGuests     int                 `json:"max_guests"`
	NumBedrooms   int                 `json:"num_bedrooms"`
	NumBeds       int                 `json:"num_beds"`
	NumBathrooms  int                 `json:"num_bathrooms"`
	Address       string              `json:"address"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	Country       string              `json:"country"`
	Latitude      *string             `json:"latitude"`
	Longitude     *string             `json:"longitude"`
	Amenities     []string            `json:"amenities"`
	IsActive      bool                `json:"is_active"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Host          *domain.User        `json:"host"`
	AverageRating *string             `json:"average_rating"`
	ReviewCount   int                 `json:"review_count"`
}

func NewListingResponse(l *domain.Listing, rating domain.RatingSummary) ListingResponse {
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PropertyType:  l.PropertyType,
		PricePerNight: l.PricePerNight.StringFixed(domain.PriceScale),
		MaxGuests:     l.MaxGuests,
		NumBedrooms:   l.NumBedrooms,
		NumBeds:       l.NumBeds,
		NumBathrooms:  l.NumBathrooms,
		Address:       l.Address,
		City:          l.City,
		State:         l.State,
		Country:       l.Country,
		Latitude:      fixed(l.Latitude, domain.CoordinateScale),
		Longitude:     fixed(l.Longitude, domain.CoordinateScale),
		Amenities:     amenities,
		IsActive:      l.IsActive,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		Host:          l.Host,
		AverageRating: fixed(rating.Average, 2),
		ReviewCount:   rating.Count,
	}
}

func fixed(d *decimal.Decimal, places int32) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(places)
	return &s
}
