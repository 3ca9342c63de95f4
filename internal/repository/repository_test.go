package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"staybnb/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open sqlite db")
	require.NoError(t, Migrate(context.Background(), db), "failed to migrate db")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	users    *UserRepository
	listings *ListingRepository
	bookings *BookingRepository
	reviews  *ReviewRepository
}

func newFixture(t *testing.T) fixture {
	db := newTestDB(t)
	return fixture{
		users:    NewUserRepository(db),
		listings: NewListingRepository(db),
		bookings: NewBookingRepository(db),
		reviews:  NewReviewRepository(db),
	}
}

func (f fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", FirstName: "Test"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f fixture) listing(t *testing.T, hostID int64) *domain.Listing {
	t.Helper()
	lat := decimal.RequireFromString("39.191100")
	lng := decimal.RequireFromString("-106.817500")
	l := &domain.Listing{
		HostID:        hostID,
		Title:         "Mountain Cabin Retreat",
		Description:   "Peaceful cabin surrounded by nature.",
		PropertyType:  domain.PropertyCabin,
		PricePerNight: decimal.RequireFromString("95.00"),
		MaxGuests:     6,
		NumBedrooms:   3,
		NumBeds:       4,
		NumBathrooms:  2,
		Address:       "789 Forest Road",
		City:          "Aspen",
		State:         "Colorado",
		Country:       "USA",
		Latitude:      &lat,
		Longitude:     &lng,
		Amenities:     []string{"wifi", "fireplace", "kitchen", "hiking_trails"},
		IsActive:      true,
	}
	require.NoError(t, f.listings.Create(context.Background(), l))
	return l
}

func (f fixture) booking(t *testing.T, listingID, guestID int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ListingID:    listingID,
		GuestID:      guestID,
		CheckInDate:  domain.NewDate(2024, time.June, 1),
		CheckOutDate: domain.NewDate(2024, time.June, 5),
		NumGuests:    4,
		TotalPrice:   decimal.RequireFromString("380.00"),
		Status:       status,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func TestListingRepository_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := f.user(t, "host1")
	created := f.listing(t, host.ID)

	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := f.listings.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "95.00", got.PricePerNight.StringFixed(domain.PriceScale))
	require.NotNil(t, got.Latitude)
	require.NotNil(t, got.Longitude)
	assert.Equal(t, "39.191100", got.Latitude.StringFixed(domain.CoordinateScale))
	assert.Equal(t, "-106.817500", got.Longitude.StringFixed(domain.CoordinateScale))
	assert.Equal(t, []string{"wifi", "fireplace", "kitchen", "hiking_trails"}, got.Amenities)
	assert.Equal(t, domain.PropertyCabin, got.PropertyType)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.Host)
	assert.Equal(t, "host1", got.Host.Username)
}

func TestListingRepository_NullCoordinates(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	l := f.listing(t, host.ID)
	l.Latitude, l.Longitude = nil, nil
	require.NoError(t, f.listings.Update(context.Background(), l))

	got, err := f.listings.GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
}

func TestListingRepository_PriceBelowMinimumRejectedByStore(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	l := f.listing(t, host.ID)

	l.PricePerNight = decimal.RequireFromString("9.99")
	err := f.listings.Update(context.Background(), l)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}

func TestListingRepository_UpdateCanDeactivate(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	l := f.listing(t, host.ID)

	l.IsActive = false
	l.Title = "Renamed"
	require.NoError(t, f.listings.Update(context.Background(), l))

	active, err := f.listings.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.listings.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Title)
	assert.False(t, all[0].IsActive)
}

func TestListingRepository_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	first := f.listing(t, host.ID)
	second := f.listing(t, host.ID)

	items, err := f.listings.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestListingRepository_GetMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.listings.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_RoundTrip(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingPending)

	got, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.CheckInDate.String())
	assert.Equal(t, "2024-06-05", got.CheckOutDate.String())
	assert.Equal(t, 4, got.TotalNights())
	assert.Equal(t, "380.00", got.TotalPrice.StringFixed(2))
	assert.Equal(t, domain.BookingPending, got.Status)
	require.NotNil(t, got.Listing)
	require.NotNil(t, got.Listing.Host)
	assert.Equal(t, host.ID, got.Listing.Host.ID)
	require.NotNil(t, got.Guest)
	assert.Equal(t, "guest1", got.Guest.Username)
}

func TestBookingRepository_CheckOutMustFollowCheckIn(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)

	b := &domain.Booking{
		ListingID:    l.ID,
		GuestID:      guest.ID,
		CheckInDate:  domain.NewDate(2024, time.June, 1),
		CheckOutDate: domain.NewDate(2024, time.June, 1),
		NumGuests:    1,
		TotalPrice:   decimal.Zero,
		Status:       domain.BookingPending,
	}
	err := f.bookings.Create(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrIntegrity)

	var ie *domain.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), "check_out_after_check_in")
}

func TestBookingRepository_UpdateCannotInvertDates(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingConfirmed)

	b.CheckOutDate = domain.NewDate(2024, time.May, 30)
	err := f.bookings.Update(context.Background(), b)
	assert.ErrorIs(t, err, domain.ErrIntegrity)

	got, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", got.CheckOutDate.String())
}

func TestBookingRepository_ListByGuestAndHost(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	otherHost := f.user(t, "host2")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	other := f.listing(t, otherHost.ID)
	b1 := f.booking(t, l.ID, guest.ID, domain.BookingPending)
	b2 := f.booking(t, other.ID, guest.ID, domain.BookingPending)

	mine, err := f.bookings.ListByGuest(context.Background(), guest.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, b2.ID, mine[0].ID)
	assert.Equal(t, b1.ID, mine[1].ID)

	hosted, err := f.bookings.ListByHost(context.Background(), host.ID)
	require.NoError(t, err)
	require.Len(t, hosted, 1)
	assert.Equal(t, b1.ID, hosted[0].ID)
}

func TestReviewRepository_OnePerBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingCompleted)

	first := &domain.Review{BookingID: b.ID, GuestID: guest.ID, ListingID: l.ID, Rating: 5, Comment: "Lovely"}
	require.NoError(t, f.reviews.Create(ctx, first))

	exists, err := f.reviews.ExistsForBooking(ctx, b.ID, guest.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	second := &domain.Review{BookingID: b.ID, GuestID: guest.ID, ListingID: l.ID, Rating: 4, Comment: "Again"}
	err = f.reviews.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}

func TestReviewRepository_RatingRangeEnforcedByStore(t *testing.T) {
	f := newFixture(t)
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingCompleted)

	rv := &domain.Review{BookingID: b.ID, GuestID: guest.ID, ListingID: l.ID, Rating: 6, Comment: "Too good"}
	err := f.reviews.Create(context.Background(), rv)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}

func TestReviewRepository_ApprovalAndResponse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingCompleted)
	rv := &domain.Review{BookingID: b.ID, GuestID: guest.ID, ListingID: l.ID, Rating: 4, Comment: "Nice"}
	require.NoError(t, f.reviews.Create(ctx, rv))
	assert.False(t, rv.IsApproved)

	approved, err := f.reviews.ApprovedByListings(ctx, []int64{l.ID})
	require.NoError(t, err)
	assert.Empty(t, approved[l.ID])

	updated, err := f.reviews.SetApproved(ctx, rv.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsApproved)

	updated, err = f.reviews.SetHostResponse(ctx, rv.ID, "Thanks for staying!")
	require.NoError(t, err)
	assert.Equal(t, "Thanks for staying!", updated.HostResponse)
	require.NotNil(t, updated.Guest)
	assert.Equal(t, guest.ID, updated.Guest.ID)

	approved, err = f.reviews.ApprovedByListings(ctx, []int64{l.ID})
	require.NoError(t, err)
	assert.Len(t, approved[l.ID], 1)

	_, err = f.reviews.SetApproved(ctx, 9999, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_GetOrCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, created, err := f.users.GetOrCreate(ctx, &domain.User{Username: "admin", Email: "admin@example.com", IsStaff: true})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, u.IsStaff)

	again, created, err := f.users.GetOrCreate(ctx, &domain.User{Username: "admin", Email: "changed@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "admin@example.com", again.Email)

	cnt, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.user(t, "host1")

	err := f.users.Create(context.Background(), &domain.User{Username: "host1"})
	assert.ErrorIs(t, err, domain.ErrIntegrity)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingCompleted)
	require.NoError(t, f.reviews.Create(ctx, &domain.Review{BookingID: b.ID, GuestID: guest.ID, ListingID: l.ID, Rating: 5, Comment: "Great"}))

	require.NoError(t, f.users.Delete(ctx, host.ID))

	listings, _ := f.listings.Count(ctx)
	bookings, _ := f.bookings.Count(ctx)
	reviews, _ := f.reviews.Count(ctx)
	users, _ := f.users.Count(ctx)
	assert.Equal(t, int64(0), listings)
	assert.Equal(t, int64(0), bookings)
	assert.Equal(t, int64(0), reviews)
	assert.Equal(t, int64(1), users)

	assert.ErrorIs(t, f.users.Delete(ctx, host.ID), domain.ErrNotFound)
}

func TestListingRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := f.user(t, "host1")
	guest := f.user(t, "guest1")
	l := f.listing(t, host.ID)
	keep := f.listing(t, host.ID)
	b := f.booking(t, l.ID, guest.ID, domain.BookingCompleted)
	f.booking(t, keep.ID, guest.ID, domain.BookingPending)
	require.NoError(t, f.reviews.Create(ctx, &domain.Review{BookingID: b.ID, GuestID: guest.ID, ListingID: l.ID, Rating: 5, Comment: "Great"}))

	require.NoError(t, f.listings.Delete(ctx, l.ID))

	bookings, _ := f.bookings.Count(ctx)
	reviews, _ := f.reviews.Count(ctx)
	assert.Equal(t, int64(1), bookings)
	assert.Equal(t, int64(0), reviews)

	_, err := f.listings.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
