package usecase

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/utils"
)

// HotelTracker records hotel rates for the two city stays implied by a
// day split. Hotel data is stored next to the flight data but never
// feeds back into the flight recommendation.
type HotelTracker struct {
	searcher repository.HotelSearcher
	repo     repository.HotelPriceRepository
	logger   logger.Logger
}

// NewHotelTracker creates a hotel tracker
func NewHotelTracker(searcher repository.HotelSearcher, repo repository.HotelPriceRepository, logger logger.Logger) *HotelTracker {
	return &HotelTracker{
		searcher: searcher,
		repo:     repo,
		logger:   logger,
	}
}

// StayPlan derives back-to-back check-in/check-out ranges from the
// departure date and the recommended day split: the first city covers
// the start of the trip, the second city the remainder.
func (t *HotelTracker) StayPlan(departureDate string, recommendation *entity.Recommendation) ([]entity.HotelStay, error) {
	firstNights := recommendation.Split[recommendation.FirstCity]
	secondNights := recommendation.Split[recommendation.SecondCity]

	handoverDate, err := utils.AddDays(departureDate, firstNights)
	if err != nil {
		return nil, err
	}
	checkoutDate, err := utils.AddDays(handoverDate, secondNights)
	if err != nil {
		return nil, err
	}

	return []entity.HotelStay{
		{
			City:         recommendation.FirstCity,
			CheckInDate:  departureDate,
			CheckOutDate: handoverDate,
			Nights:       firstNights,
		},
		{
			City:         recommendation.SecondCity,
			CheckInDate:  handoverDate,
			CheckOutDate: checkoutDate,
			Nights:       secondNights,
		},
	}, nil
}

// TrackStays searches and records hotel rates for each stay. A failed
// city search skips that stay; the other stay is still recorded.
func (t *HotelTracker) TrackStays(ctx context.Context, stays []entity.HotelStay) error {
	checkedDate := time.Now().Format(utils.DATE_LAYOUT)

	for _, stay := range stays {
		offers, err := t.searcher.SearchHotels(ctx, stay.City, stay.CheckInDate, stay.CheckOutDate)
		if err != nil {
			t.logger.Error("Hotel search failed", "city", stay.City, "error", err)
			continue
		}
		for _, offer := range offers {
			offer.CheckedDate = checkedDate
			if err := t.repo.Save(ctx, offer); err != nil {
				return err
			}
		}
		t.logger.Info("Recorded hotel prices",
			"city", stay.City, "checkIn", stay.CheckInDate, "offers", len(offers))
	}
	return nil
}
