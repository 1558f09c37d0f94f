package entity

import (
	"time"
)

// Segment is a single flight segment with wall-clock local times at
// the departure and arrival airports
type Segment struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
}

// LegOffer is one priced one-way result from the search collaborator
type LegOffer struct {
	Origin      string
	Destination string
	Segments    []Segment
	Price       float64
	Currency    string
	Payload     []byte // raw provider offer, kept opaque
}

// Offer is a candidate round trip: an outbound and a return leg offer
// combined over a specific route option
type Offer struct {
	Route      RouteOption
	Outbound   *LegOffer
	Return     *LegOffer
	TotalPrice float64
	Currency   string
}

// Rejection reasons produced by classification
const (
	ReasonMultiSegment    = "multi-segment"
	ReasonRedEyeDeparture = "red-eye-departure"
	ReasonRedEyeArrival   = "red-eye-arrival"
)

// ComplianceResult is the outcome of classifying an offer against the
// nonstop and no-red-eye rules. Non-compliance is a classification
// outcome, not an error: callers must be able to tell "rejected by
// rule" from "never searched".
type ComplianceResult struct {
	Compliant bool
	Nonstop   bool
	NoRedEye  bool
	Reason    string // empty when compliant
}

// FlightObservation is one priced search result after classification.
// Append-only: created once per sweep and never mutated.
type FlightObservation struct {
	ID              uint
	DepartureDate   string
	ReturnDate      string
	Direction       string
	InboundAirport  string
	OutboundAirport string
	TotalPrice      float64
	Currency        string
	Nonstop         bool
	NoRedEye        bool
	Compliant       bool
	RejectReason    string
	PayloadRef      string // offer archive document id
	ObservedAt      time.Time
	CreatedAt       time.Time
}

// DailyBestPrice is the minimum compliant price observed to date for a
// departure/return date pair. The only derived row updated in place.
type DailyBestPrice struct {
	ID              uint
	DepartureDate   string
	ReturnDate      string
	BestPrice       float64
	Currency        string
	Direction       string
	InboundAirport  string
	OutboundAirport string
	ObservationID   uint
	UpdatedAt       time.Time
}

// OfferPayload is the raw provider data archived for one observation
type OfferPayload struct {
	ID              string
	DepartureDate   string
	ReturnDate      string
	Direction       string
	InboundAirport  string
	OutboundAirport string
	Outbound        []byte
	Return          []byte
	ArchivedAt      time.Time
}
