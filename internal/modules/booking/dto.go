package booking

import (
	"time"

	"staybnb/internal/domain"
	"staybnb/internal/modules/listing"
)

// CreateBookingRequest never carries total_price or status. Both are set by
// the server.
type CreateBookingRequest struct {
	Listing         *int64      `json:"listing" validate:"required"`
	CheckInDate     domain.Date `json:"check_in_date"`
	CheckOutDate    domain.Date `json:"check_out_date"`
	NumGuests       *int        `json:"num_guests" validate:"required"`
	SpecialRequests string      `json:"special_requests"`
}

// UpdateBookingRequest changes the stay or moves the status. total_price is
// kept from creation.
type UpdateBookingRequest struct {
	CheckInDate     *domain.Date          `json:"check_in_date"`
	CheckOutDate    *domain.Date          `json:"check_out_date"`
	NumGuests       *int                  `json:"num_guests"`
	SpecialRequests *string               `json:"special_requests"`
	Status          *domain.BookingStatus `json:"status"`
}

func (r UpdateBookingRequest) apply(b *domain.Booking) {
	if r.CheckInDate != nil {
		b.CheckInDate = *r.CheckInDate
	}
	if r.CheckOutDate != nil {
		b.CheckOutDate = *r.CheckOutDate
	}
	if r.NumGuests != nil {
		b.NumGuests = *r.NumGuests
	}
	if r.SpecialRequests != nil {
		b.SpecialRequests = *r.SpecialRequests
	}
	if r.Status != nil {
		b.Status = *r.Status
	}
}

type BookingResponse struct {
	ID              int64                   `json:"id"`
	Listing         listing.ListingResponse `json:"listing"`
	Guest           *domain.User            `json:"guest"`
	CheckInDate     domain.Date             `json:"check_in_date"`
	CheckOutDate    domain.Date             `json:"check_out_date"`
	NumGuests       int                     `json:"num_guests"`
	TotalPrice      string                  `json:"total_price"`
	Status          domain.BookingStatus    `json:"status"`
	SpecialRequests string                  `json:"special_requests"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	TotalNights     int                     `json:"total_nights"`
}

func NewBookingResponse(b *domain.Booking, l listing.ListingResponse) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		Listing:         l,
		Guest:           b.Guest,
		CheckInDate:     b.CheckInDate,
		CheckOutDate:    b.CheckOutDate,
		NumGuests:       b.NumGuests,
		TotalPrice:      b.TotalPrice.StringFixed(domain.PriceScale),
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		TotalNights:     b.TotalNights(),
	}
}
