package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// HotelPriceRepository defines the interface for the hotel price table
type HotelPriceRepository interface {
	Save(ctx context.Context, price *entity.HotelPrice) error
	CheapestFor(ctx context.Context, city, checkInDate, checkOutDate string) (*entity.HotelPrice, error)
}
