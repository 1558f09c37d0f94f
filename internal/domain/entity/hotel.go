package entity

import "time"

// HotelPrice is one observed hotel rate for a city stay. Stored
// alongside flight data but not consulted by the flight
// recommendation logic.
type HotelPrice struct {
	ID            uint
	City          string
	CheckInDate   string
	CheckOutDate  string
	HotelName     string
	PricePerNight float64
	TotalPrice    float64
	Currency      string
	CheckedDate   string
	CreatedAt     time.Time
}

// HotelStay is a check-in/check-out range derived from the day split
type HotelStay struct {
	City         string
	CheckInDate  string
	CheckOutDate string
	Nights       int
}
