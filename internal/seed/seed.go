// Package seed fills a database with demo users, listings, bookings and
// reviews.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"staybnb/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	bookingsPerRun  = 10
	earlyCheckIn    = "Early check-in requested"
	reviewCommentFm = "Great stay at %s! Would recommend."
)

var passwordCost = bcrypt.DefaultCost

type UserStore interface {
	GetOrCreate(ctx context.Context, u *domain.User) (*domain.User, bool, error)
	Count(ctx context.Context) (int64, error)
}

type ListingStore interface {
	Create(ctx context.Context, l *domain.Listing) error
	Count(ctx context.Context) (int64, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	Count(ctx context.Context) (int64, error)
}

type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	Count(ctx context.Context) (int64, error)
}

type Store struct {
	Users    UserStore
	Listings ListingStore
	Bookings BookingStore
	Reviews  ReviewStore
}

// Summary holds table totals after a run.
type Summary struct {
	Users    int64
	Listings int64
	Bookings int64
	Reviews  int64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d users, %d listings, %d bookings, %d reviews", s.Users, s.Listings, s.Bookings, s.Reviews)
}

// Run seeds the store. Users are looked up by username and reused; listings,
// bookings and reviews are added again on every run. All random choices
// come from rng and check-in dates are relative to now.
func Run(ctx context.Context, store Store, rng *rand.Rand, now time.Time, logger *log.Logger) (Summary, error) {
	logger.Println("Seeding database...")

	admin, err := seedUser(ctx, store.Users, &domain.User{
		Username:    "admin",
		Email:       "admin@alxtravel.com",
		FirstName:   "Admin",
		LastName:    "User",
		IsStaff:     true,
		IsSuperuser: true,
	}, "admin123")
	if err != nil {
		return Summary{}, err
	}
	logger.Printf("Admin user: %s", admin.Username)

	hosts, err := seedGroup(ctx, store.Users, "host", "Host", "Smith", 3, "host123")
	if err != nil {
		return Summary{}, err
	}
	for _, h := range hosts {
		logger.Printf("Created host: %s", h.Username)
	}

	guests, err := seedGroup(ctx, store.Users, "guest", "Guest", "Johnson", 5, "guest123")
	if err != nil {
		return Summary{}, err
	}
	for _, g := range guests {
		logger.Printf("Created guest: %s", g.Username)
	}

	listings := make([]*domain.Listing, 0, len(sampleListings))
	for i, sample := range sampleListings {
		l := sample.listing(hosts[i%len(hosts)].ID)
		if err := l.Validate(); err != nil {
			return Summary{}, fmt.Errorf("listing %q: %w", l.Title, err)
		}
		if err := store.Listings.Create(ctx, l); err != nil {
			return Summary{}, fmt.Errorf("create listing %q: %w", l.Title, err)
		}
		listings = append(listings, l)
		logger.Printf("Created listing: %s", l.Title)
	}

	statuses := []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted, domain.BookingPending}
	today := domain.DateOf(now)

	bookings := make([]*domain.Booking, 0, bookingsPerRun)
	for i := 0; i < bookingsPerRun; i++ {
		l := listings[rng.Intn(len(listings))]
		guest := guests[rng.Intn(len(guests))]

		checkIn := today.AddDays(randInt(rng, 1, 30))
		checkOut := checkIn.AddDays(randInt(rng, 2, 7))

		b := &domain.Booking{
			ListingID:    l.ID,
			GuestID:      guest.ID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			NumGuests:    randInt(rng, 1, l.MaxGuests),
			TotalPrice:   domain.StayPrice(l.PricePerNight, checkIn, checkOut),
			Status:       statuses[rng.Intn(len(statuses))],
			Listing:      l,
		}
		if rng.Intn(2) == 0 {
			b.SpecialRequests = earlyCheckIn
		}
		if err := b.Validate(); err != nil {
			return Summary{}, fmt.Errorf("booking for %q: %w", l.Title, err)
		}
		if err := store.Bookings.Create(ctx, b); err != nil {
			return Summary{}, fmt.Errorf("create booking for %q: %w", l.Title, err)
		}
		bookings = append(bookings, b)
		logger.Printf("Created booking for %s", l.Title)
	}

	for _, b := range bookings {
		if b.Status != domain.BookingCompleted || rng.Intn(2) != 0 {
			continue
		}
		rv := &domain.Review{
			BookingID:  b.ID,
			GuestID:    b.GuestID,
			ListingID:  b.ListingID,
			Rating:     randInt(rng, 4, 5),
			Comment:    fmt.Sprintf(reviewCommentFm, b.Listing.Title),
			IsApproved: true,
		}
		if err := store.Reviews.Create(ctx, rv); err != nil {
			return Summary{}, fmt.Errorf("create review for booking %d: %w", b.ID, err)
		}
		logger.Printf("Created review for %s", b.Listing.Title)
	}

	summary, err := count(ctx, store)
	if err != nil {
		return Summary{}, err
	}
	logger.Println("Successfully seeded database with sample data!")
	logger.Printf("Created: %s", summary)
	return summary, nil
}

func seedGroup(ctx context.Context, users UserStore, prefix, firstPrefix, lastName string, n int, password string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, n)
	for i := 1; i <= n; i++ {
		u, err := seedUser(ctx, users, &domain.User{
			Username:  fmt.Sprintf("%s%d", prefix, i),
			Email:     fmt.Sprintf("%s%d@alxtravel.com", prefix, i),
			FirstName: fmt.Sprintf("%s%d", firstPrefix, i),
			LastName:  lastName,
		}, password)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func seedUser(ctx context.Context, users UserStore, u *domain.User, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = string(hash)

	stored, _, err := users.GetOrCreate(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.Username, err)
	}
	return stored, nil
}

func count(ctx context.Context, store Store) (Summary, error) {
	var (
		s   Summary
		err error
	)
	if s.Users, err = store.Users.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Listings, err = store.Listings.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Bookings, err = store.Bookings.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Reviews, err = store.Reviews.Count(ctx); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
