package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// PriceRepository defines the interface for the flight price store.
// Observations are an append-only log; daily best rows are the only
// derived state updated in place.
type PriceRepository interface {
	// RecordSweep appends all of one sweep's observations and
	// recomputes the daily best row for every touched date pair in a
	// single transaction. A partial sweep never commits.
	RecordSweep(ctx context.Context, observations []*entity.FlightObservation) ([]*entity.DailyBestPrice, error)

	// BestPriceFor returns the minimum compliant price recorded for a
	// date pair, or nil when no compliant observation exists yet.
	BestPriceFor(ctx context.Context, departureDate, returnDate string) (*entity.DailyBestPrice, error)

	// LastObservedPrice returns the previous check's representative
	// price for a date pair, or nil: the cheapest compliant
	// observation of the most recent sweep (observed_at group).
	// Distinct from BestPriceFor: drop detection compares against the
	// immediately preceding check, not the historical minimum.
	LastObservedPrice(ctx context.Context, departureDate, returnDate string) (*entity.FlightObservation, error)

	// BestByDirection returns the minimum compliant price per routing
	// direction for a date pair. Directions with no compliant
	// observation are absent from the map.
	BestByDirection(ctx context.Context, departureDate, returnDate string) (map[string]float64, error)

	// RecentObservations returns the newest observations across all
	// date pairs, for inspection.
	RecentObservations(ctx context.Context, limit int) ([]*entity.FlightObservation, error)
}
