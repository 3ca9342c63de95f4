package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyVilla     PropertyType = "villa"
	PropertyCondo     PropertyType = "condo"
	PropertyCabin     PropertyType = "cabin"
	PropertyCottage   PropertyType = "cottage"
)

func ValidPropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyApartment,
		PropertyHouse,
		PropertyVilla,
		PropertyCondo,
		PropertyCabin,
		PropertyCottage,
	}
}

func (p PropertyType) Valid() bool {
	for _, v := range ValidPropertyTypes() {
		if p == v {
			return true
		}
	}
	return false
}

const (
	PriceScale      = 2
	CoordinateScale = 6
)

// MinPricePerNight is the lowest nightly price a listing may carry.
var MinPricePerNight = decimal.RequireFromString("10.00")

type Listing struct {
	ID            int64
	HostID        int64
	Title         string
	Description   string
	PropertyType  PropertyType
	PricePerNight decimal.Decimal
	MaxGuests     int
	NumBedrooms   int
	NumBeds       int
	NumBathrooms  int
	Address       string
	City          string
	State         string
	Country       string
	Latitude      *decimal.Decimal
	Longitude     *decimal.Decimal
	Amenities     []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Host *User
}

// Validate checks the invariants every stored listing must satisfy.
func (l *Listing) Validate() error {
	v := NewValidationError()
	requireText(v, "title", l.Title, 200)
	if l.Description == "" {
		v.Add("description", "This field is required.")
	}
	if !l.PropertyType.Valid() {
		v.Add("property_type", fmt.Sprintf("%q is not a valid choice.", l.PropertyType))
	}
	checkDecimal(v, "price_per_night", l.PricePerNight, 10, PriceScale)
	if l.PricePerNight.LessThan(MinPricePerNight) {
		v.Add("price_per_night", "Ensure this value is greater than or equal to 10.00.")
	}
	if l.MaxGuests < 1 {
		v.Add("max_guests", "Ensure this value is greater than or equal to 1.")
	}
	if l.NumBedrooms < 0 {
		v.Add("num_bedrooms", "Ensure this value is greater than or equal to 0.")
	}
	if l.NumBeds < 1 {
		v.Add("num_beds", "Ensure this value is greater than or equal to 1.")
	}
	if l.NumBathrooms < 0 {
		v.Add("num_bathrooms", "Ensure this value is greater than or equal to 0.")
	}
	requireText(v, "address", l.Address, 255)
	requireText(v, "city", l.City, 100)
	requireText(v, "state", l.State, 100)
	requireText(v, "country", l.Country, 100)
	if l.Latitude != nil {
		checkDecimal(v, "latitude", *l.Latitude, 9, CoordinateScale)
	}
	if l.Longitude != nil {
		checkDecimal(v, "longitude", *l.Longitude, 9, CoordinateScale)
	}
	return v.OrNil()
}

// checkDecimal enforces a decimal(maxDigits, scale) column shape.
func checkDecimal(v *ValidationError, field string, d decimal.Decimal, maxDigits int, scale int32) {
	if -d.Exponent() > scale && !d.Equal(d.Truncate(scale)) {
		v.Add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", scale))
		return
	}
	limit := decimal.New(1, int32(maxDigits)-scale)
	if d.Abs().GreaterThanOrEqual(limit) {
		v.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits))
	}
}

func requireText(v *ValidationError, field, value string, maxLen int) {
	switch {
	case value == "":
		v.Add(field, "This field is required.")
	case maxLen > 0 && len([]rune(value)) > maxLen:
		v.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
	}
}
