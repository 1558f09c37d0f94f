package usecase

import (
	"math"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/utils"
)

// RecommendationEngine turns per-direction best prices into a routing
// recommendation and a day split between the two destination cities.
// Recomputed on demand; nothing here is persisted.
type RecommendationEngine struct {
	firstCity      string
	secondCity     string
	tripLengthDays int
	festival       entity.FestivalWindow
}

// NewRecommendationEngine creates an engine for the configured city
// pair and festival window. firstCity is the primary city: it wins
// price ties and takes the odd day of an uneven trip length.
func NewRecommendationEngine(firstCity, secondCity string, tripLengthDays int, festival entity.FestivalWindow) *RecommendationEngine {
	return &RecommendationEngine{
		firstCity:      firstCity,
		secondCity:     secondCity,
		tripLengthDays: tripLengthDays,
		festival:       festival,
	}
}

// FestivalOverlap reports whether the trip window intersects the
// festival period and its peak sub-window. Both range checks are
// inclusive on both ends.
func (e *RecommendationEngine) FestivalOverlap(window entity.TripWindow) entity.FestivalOverlap {
	return entity.FestivalOverlap{
		OverlapsFestival: rangesOverlap(window.DepartureDate, window.ReturnDate, e.festival.Start, e.festival.End),
		OverlapsPeak:     rangesOverlap(window.DepartureDate, window.ReturnDate, e.festival.PeakStart, e.festival.PeakEnd),
	}
}

// Recommend picks the cheaper routing direction and the day split for
// the trip window. A direction without any priced routing is never
// recommended; with no priced routing at all the recommendation is
// marked not suggested. Equal prices fall back to the first-city-first
// direction.
func (e *RecommendationEngine) Recommend(firstCityBest, secondCityBest *float64, currency string, window entity.TripWindow) *entity.Recommendation {
	if firstCityBest == nil && secondCityBest == nil {
		return &entity.Recommendation{
			Suggested: false,
			Message:   "no priced routings for this window",
		}
	}

	firstVisited := e.firstCity
	savings := 0.0
	switch {
	case firstCityBest == nil:
		firstVisited = e.secondCity
	case secondCityBest == nil:
		firstVisited = e.firstCity
	case *secondCityBest < *firstCityBest:
		firstVisited = e.secondCity
		savings = math.Abs(*firstCityBest - *secondCityBest)
	default:
		// cheaper or tied: the primary city goes first
		firstVisited = e.firstCity
		savings = math.Abs(*firstCityBest - *secondCityBest)
	}

	secondVisited := e.secondCity
	if firstVisited == e.secondCity {
		secondVisited = e.firstCity
	}

	overlap := e.FestivalOverlap(window)
	split := e.daySplit(firstVisited, secondVisited, overlap)

	return &entity.Recommendation{
		Suggested:  true,
		Direction:  entity.DirectionCode(firstVisited),
		FirstCity:  firstVisited,
		SecondCity: secondVisited,
		Savings:    savings,
		Currency:   currency,
		Split:      split,
		TotalDays:  e.tripLengthDays,
		Festival:   overlap,
	}
}

// daySplit divides the trip length between the two cities. Default is
// an even split with the odd day going to the first-visited city.
// When the window overlaps the festival, exactly one day shifts toward
// the festival city, but the other city always keeps at least one day.
func (e *RecommendationEngine) daySplit(firstVisited, secondVisited string, overlap entity.FestivalOverlap) map[string]int {
	firstDays := e.tripLengthDays/2 + e.tripLengthDays%2
	secondDays := e.tripLengthDays - firstDays

	split := map[string]int{
		firstVisited:  firstDays,
		secondVisited: secondDays,
	}

	if overlap.OverlapsFestival {
		festivalCity := e.festival.City
		otherCity := e.firstCity
		if festivalCity == e.firstCity {
			otherCity = e.secondCity
		}
		if split[otherCity]-1 >= 1 {
			split[otherCity]--
			split[festivalCity]++
		}
	}

	return split
}

// rangesOverlap checks two inclusive YYYY-MM-DD date ranges for
// intersection. Malformed dates never overlap.
func rangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, err1 := time.Parse(utils.DATE_LAYOUT, aStart)
	ae, err2 := time.Parse(utils.DATE_LAYOUT, aEnd)
	bs, err3 := time.Parse(utils.DATE_LAYOUT, bStart)
	be, err4 := time.Parse(utils.DATE_LAYOUT, bEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return !as.After(be) && !bs.After(ae)
}
