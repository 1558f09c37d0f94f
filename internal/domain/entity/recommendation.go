package entity

// Recommendation is the routing and day-split suggestion derived from
// the best price per direction. Recomputed on demand, never stored.
type Recommendation struct {
	Suggested  bool
	Message    string
	Direction  string
	FirstCity  string // city visited first under the recommended routing
	SecondCity string
	Savings    float64
	Currency   string
	Split      map[string]int // city code -> days
	TotalDays  int
	Festival   FestivalOverlap
}

// PriceDropEvent is emitted when the current price for a date pair
// dropped below the previous observation by more than the threshold
type PriceDropEvent struct {
	DepartureDate   string
	ReturnDate      string
	PreviousPrice   float64
	CurrentPrice    float64
	Drop            float64
	Currency        string
	InboundAirport  string
	OutboundAirport string
	Routing         string
}

// DailyReport summarizes one sweep for a date pair
type DailyReport struct {
	DepartureDate  string
	ReturnDate     string
	Best           *DailyBestPrice
	Recommendation *Recommendation
}
