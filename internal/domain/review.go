package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID           int64
	BookingID    int64
	GuestID      int64
	ListingID    int64
	Rating       int
	Comment      string
	HostResponse string
	IsApproved   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Guest *User
}

func (r *Review) Validate() error {
	v := NewValidationError()
	if r.BookingID <= 0 {
		v.Add("booking", "This field is required.")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		v.Add("rating", "Ensure this value is between 1 and 5.")
	}
	if r.Comment == "" {
		v.Add("comment", "This field is required.")
	}
	return v.OrNil()
}

// RatingSummary is the read-time aggregate shown on a listing.
type RatingSummary struct {
	Average *decimal.Decimal
	Count   int
}

// SummarizeRatings averages the approved reviews in reviews. Average is nil
// when there is nothing to average.
func SummarizeRatings(reviews []Review) RatingSummary {
	var sum int64
	count := 0
	for _, r := range reviews {
		if !r.IsApproved {
			continue
		}
		sum += int64(r.Rating)
		count++
	}
	if count == 0 {
		return RatingSummary{}
	}
	// Half-even, as a two-place decimal quantizes: 4.125 renders as 4.12.
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count))).RoundBank(2)
	return RatingSummary{Average: &avg, Count: count}
}
