package seed

import (
	"staybnb/internal/domain"

	"github.com/shopspring/decimal"
)

type sampleListing struct {
	title, description string
	propertyType       domain.PropertyType
	price              string
	maxGuests          int
	bedrooms, beds     int
	bathrooms          int
	address, city      string
	state, country     string
	lat, lng           string
	amenities          []string
}

func (s sampleListing) listing(hostID int64) *domain.Listing {
	lat, lng := mustDecimal(s.lat), mustDecimal(s.lng)
	return &domain.Listing{
		HostID:        hostID,
		Title:         s.title,
		Description:   s.description,
		PropertyType:  s.propertyType,
		PricePerNight: mustDecimal(s.price),
		MaxGuests:     s.maxGuests,
		NumBedrooms:   s.bedrooms,
		NumBeds:       s.beds,
		NumBathrooms:  s.bathrooms,
		Address:       s.address,
		City:          s.city,
		State:         s.state,
		Country:       s.country,
		Latitude:      &lat,
		Longitude:     &lng,
		Amenities:     append([]string(nil), s.amenities...),
		IsActive:      true,
	}
}

var sampleListings = []sampleListing{
	{
		title:        "Beautiful Beach House in Miami",
		description:  "Stunning beachfront property with panoramic ocean views. Perfect for families and groups.",
		propertyType: domain.PropertyHouse,
		price:        "250.00",
		maxGuests:    8,
		bedrooms:     4,
		beds:         6,
		bathrooms:    3,
		address:      "123 Ocean Drive",
		city:         "Miami",
		state:        "Florida",
		country:      "USA",
		lat:          "25.761700",
		lng:          "-80.191800",
		amenities:    []string{"wifi", "pool", "air_conditioning", "kitchen", "tv", "parking"},
	},
	{
		title:        "Cozy Downtown Apartment",
		description:  "Modern apartment in the heart of the city. Close to restaurants and attractions.",
		propertyType: domain.PropertyApartment,
		price:        "120.00",
		maxGuests:    4,
		bedrooms:     2,
		beds:         2,
		bathrooms:    1,
		address:      "456 Main Street",
		city:         "New York",
		state:        "New York",
		country:      "USA",
		lat:          "40.712800",
		lng:          "-74.006000",
		amenities:    []string{"wifi", "kitchen", "tv", "elevator"},
	},
	{
		title:        "Mountain Cabin Retreat",
		description:  "Peaceful cabin surrounded by nature. Perfect for hiking and relaxation.",
		propertyType: domain.PropertyCabin,
		price:        "95.00",
		maxGuests:    6,
		bedrooms:     3,
		beds:         4,
		bathrooms:    2,
		address:      "789 Forest Road",
		city:         "Aspen",
		state:        "Colorado",
		country:      "USA",
		lat:          "39.191100",
		lng:          "-106.817500",
		amenities:    []string{"wifi", "fireplace", "kitchen", "hiking_trails"},
	},
	{
		title:        "Luxury Villa with Private Pool",
		description:  "Exclusive villa with private pool and stunning garden views.",
		propertyType: domain.PropertyVilla,
		price:        "450.00",
		maxGuests:    10,
		bedrooms:     5,
		beds:         7,
		bathrooms:    4,
		address:      "101 Luxury Lane",
		city:         "Los Angeles",
		state:        "California",
		country:      "USA",
		lat:          "34.052200",
		lng:          "-118.243700",
		amenities:    []string{"wifi", "pool", "air_conditioning", "kitchen", "tv", "parking", "garden"},
	},
	{
		title:        "Modern City Condo",
		description:  "Sleek condo with city views and modern amenities.",
		propertyType: domain.PropertyCondo,
		price:        "180.00",
		maxGuests:    4,
		bedrooms:     2,
		beds:         2,
		bathrooms:    2,
		address:      "222 Urban Avenue",
		city:         "Chicago",
		state:        "Illinois",
		country:      "USA",
		lat:          "41.878100",
		lng:          "-87.629800",
		amenities:    []string{"wifi", "gym", "pool", "concierge", "parking"},
	},
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
