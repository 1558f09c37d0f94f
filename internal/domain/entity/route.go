package entity

// CityGroup is a destination city with its candidate airports
type CityGroup struct {
	Code     string
	Airports []string
}

// RouteOption identifies one open-jaw routing: the direction plus the
// specific airport pair chosen for it. Immutable once an observation
// is recorded against it.
type RouteOption struct {
	Direction       string
	InboundCity     string // city flown into from home
	OutboundCity    string // city flown home from
	InboundAirport  string
	OutboundAirport string
}

// Description renders the routing in a human-readable form,
// e.g. "SAN -> IAD / JFK -> SAN"
func (r RouteOption) Description(homeAirport string) string {
	return homeAirport + " -> " + r.InboundAirport + " / " + r.OutboundAirport + " -> " + homeAirport
}

// DirectionCode names the routing direction that flies into the given
// city first, e.g. "WAS_FIRST"
func DirectionCode(cityCode string) string {
	return cityCode + "_FIRST"
}

// TripWindow is a departure/return date pair (YYYY-MM-DD)
type TripWindow struct {
	DepartureDate string
	ReturnDate    string
}

// FestivalWindow is the statically configured festival period for one
// of the two destination cities, with its narrower peak sub-window
type FestivalWindow struct {
	City      string
	Start     string
	End       string
	PeakStart string
	PeakEnd   string
}

// FestivalOverlap reports how a trip window intersects the festival period
type FestivalOverlap struct {
	OverlapsFestival bool
	OverlapsPeak     bool
}
