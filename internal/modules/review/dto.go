package review

import (
	"time"

	"staybnb/internal/domain"
)

// CreateReviewRequest names the booking being reviewed. Guest and listing
// are taken from the booking.
type CreateReviewRequest struct {
	Booking *int64 `json:"booking" validate:"required"`
	Rating  *int   `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type HostResponseRequest struct {
	HostResponse string `json:"host_response" validate:"required"`
}

type ReviewResponse struct {
	ID           int64        `json:"id"`
	Booking      int64        `json:"booking"`
	Guest        *domain.User `json:"guest"`
	Listing      int64        `json:"listing"`
	Rating       int          `json:"rating"`
	Comment      string       `json:"comment"`
	HostResponse string       `json:"host_response"`
	IsApproved   bool         `json:"is_approved"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func NewReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		Booking:      r.BookingID,
		Guest:        r.Guest,
		Listing:      r.ListingID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		HostResponse: r.HostResponse,
		IsApproved:   r.IsApproved,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
