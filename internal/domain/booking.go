package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func ValidBookingStatuses() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}
}

// Valid reports enum membership only. Any status may follow any other.
func (s BookingStatus) Valid() bool {
	for _, v := range ValidBookingStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              int64
	ListingID       int64
	GuestID         int64
	CheckInDate     Date
	CheckOutDate    Date
	NumGuests       int
	TotalPrice      decimal.Decimal
	Status          BookingStatus
	SpecialRequests string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Listing *Listing
	Guest   *User
}

// TotalNights is the length of the stay in nights.
func (b *Booking) TotalNights() int {
	return b.CheckInDate.DaysUntil(b.CheckOutDate)
}

func (b *Booking) Validate() error {
	v := NewValidationError()
	if b.CheckInDate.IsZero() {
		v.Add("check_in_date", "This field is required.")
	}
	if b.CheckOutDate.IsZero() {
		v.Add("check_out_date", "This field is required.")
	}
	if !b.CheckInDate.IsZero() && !b.CheckOutDate.IsZero() && !b.CheckOutDate.After(b.CheckInDate) {
		v.Add("check_out_date", "Check-out date must be after check-in date.")
	}
	if b.NumGuests < 1 {
		v.Add("num_guests", "Ensure this value is greater than or equal to 1.")
	}
	if !b.Status.Valid() {
		v.Add("status", fmt.Sprintf("%q is not a valid choice.", b.Status))
	}
	return v.OrNil()
}

// StayPrice is the nightly price multiplied by the number of nights between
// checkIn and checkOut.
func StayPrice(pricePerNight decimal.Decimal, checkIn, checkOut Date) decimal.Decimal {
	nights := checkIn.DaysUntil(checkOut)
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(PriceScale)
}
