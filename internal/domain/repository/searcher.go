package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// OfferSearcher is the external flight search collaborator. Retry and
// backoff live behind this interface; the core does not retry. Zero
// offers is an empty result, not an error.
type OfferSearcher interface {
	Search(ctx context.Context, origin, destination, departureDate string) ([]*entity.LegOffer, error)
}

// HotelSearcher is the external hotel search collaborator
type HotelSearcher interface {
	SearchHotels(ctx context.Context, city, checkInDate, checkOutDate string) ([]*entity.HotelPrice, error)
}
