package repository

import (
	"context"
	"errors"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPriceRepository implements the PriceRepository interface
type GormPriceRepository struct {
	db *gorm.DB
}

// FlightObservations GORM model for the append-only observations log
type FlightObservations struct {
	ID              uint   `gorm:"primaryKey"`
	DepartureDate   string `gorm:"column:departure_date;index:idx_flight_dates"`
	ReturnDate      string `gorm:"column:return_date;index:idx_flight_dates"`
	Direction       string `gorm:"column:direction"`
	InboundAirport  string `gorm:"column:inbound_airport"`
	OutboundAirport string `gorm:"column:outbound_airport"`
	TotalPrice      float64
	Currency        string
	Nonstop         bool
	NoRedEye        bool `gorm:"column:no_red_eye"`
	Compliant       bool
	RejectReason    string
	PayloadRef      string
	ObservedAt      time.Time `gorm:"index"`
	CreatedAt       time.Time
}

// TableName overrides the default table name
func (FlightObservations) TableName() string {
	return "flight_observations"
}

// DailyBestPrices GORM model, one row per date pair
type DailyBestPrices struct {
	ID              uint   `gorm:"primaryKey"`
	DepartureDate   string `gorm:"column:departure_date;uniqueIndex:idx_daily_best_dates"`
	ReturnDate      string `gorm:"column:return_date;uniqueIndex:idx_daily_best_dates"`
	BestPrice       float64
	Currency        string
	Direction       string
	InboundAirport  string
	OutboundAirport string
	ObservationID   uint
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (DailyBestPrices) TableName() string {
	return "daily_best_prices"
}

// NewGormPriceRepository creates a new GORM price repository
func NewGormPriceRepository(db *gorm.DB) (repository.PriceRepository, error) {
	if err := db.AutoMigrate(&FlightObservations{}, &DailyBestPrices{}); err != nil {
		return nil, &entity.PersistenceError{Op: "migrate", Err: err}
	}
	return &GormPriceRepository{db: db}, nil
}

// RecordSweep appends all observations and recomputes the daily best
// row for every touched date pair inside one transaction. The best
// price is derived from MIN over all compliant observations, so the
// lower price wins regardless of insert order and a partial sweep
// never commits.
func (r *GormPriceRepository) RecordSweep(ctx context.Context, observations []*entity.FlightObservation) ([]*entity.DailyBestPrice, error) {
	if len(observations) == 0 {
		return nil, nil
	}

	var bests []*entity.DailyBestPrice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]*FlightObservations, len(observations))
		for i, obs := range observations {
			rows[i] = observationToModel(obs)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		for i := range rows {
			observations[i].ID = rows[i].ID
			observations[i].CreatedAt = rows[i].CreatedAt
		}

		for _, pair := range touchedDatePairs(observations) {
			best, err := recomputeDailyBest(tx, pair.departureDate, pair.returnDate)
			if err != nil {
				return err
			}
			if best != nil {
				bests = append(bests, best)
			}
		}
		return nil
	})
	if err != nil {
		return nil, &entity.PersistenceError{Op: "RecordSweep", Err: err}
	}
	return bests, nil
}

// recomputeDailyBest recomputes and upserts the best-price row for one
// date pair from the full observation log. Idempotent: re-running over
// the same log yields the same row. Ties resolve to the oldest
// observation so the winner is stable.
func recomputeDailyBest(tx *gorm.DB, departureDate, returnDate string) (*entity.DailyBestPrice, error) {
	var winner FlightObservations
	err := tx.Where("departure_date = ? AND return_date = ? AND compliant = ?", departureDate, returnDate, true).
		Order("total_price ASC, id ASC").
		First(&winner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	row := DailyBestPrices{
		DepartureDate:   winner.DepartureDate,
		ReturnDate:      winner.ReturnDate,
		BestPrice:       winner.TotalPrice,
		Currency:        winner.Currency,
		Direction:       winner.Direction,
		InboundAirport:  winner.InboundAirport,
		OutboundAirport: winner.OutboundAirport,
		ObservationID:   winner.ID,
		UpdatedAt:       time.Now(),
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "departure_date"}, {Name: "return_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"best_price", "currency", "direction", "inbound_airport",
			"outbound_airport", "observation_id", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var stored DailyBestPrices
	err = tx.Where("departure_date = ? AND return_date = ?", departureDate, returnDate).First(&stored).Error
	if err != nil {
		return nil, err
	}
	return dailyBestToEntity(&stored), nil
}

// BestPriceFor returns the minimum compliant price for a date pair, or
// nil when no compliant observation exists yet
func (r *GormPriceRepository) BestPriceFor(ctx context.Context, departureDate, returnDate string) (*entity.DailyBestPrice, error) {
	var row DailyBestPrices
	err := r.db.WithContext(ctx).
		Where("departure_date = ? AND return_date = ?", departureDate, returnDate).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &entity.PersistenceError{Op: "BestPriceFor", Err: err}
	}
	return dailyBestToEntity(&row), nil
}

// LastObservedPrice returns the previous check's representative price
// for a date pair: the cheapest compliant observation within the most
// recent observed_at group, or nil. A sweep records one observation
// per route option and they all share one observed_at, so the group
// minimum is the price the previous check would have reported. Used
// for drop detection against the immediately preceding check, not the
// historical minimum.
func (r *GormPriceRepository) LastObservedPrice(ctx context.Context, departureDate, returnDate string) (*entity.FlightObservation, error) {
	var latest FlightObservations
	err := r.db.WithContext(ctx).
		Where("departure_date = ? AND return_date = ? AND compliant = ?", departureDate, returnDate, true).
		Order("observed_at DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &entity.PersistenceError{Op: "LastObservedPrice", Err: err}
	}

	var row FlightObservations
	err = r.db.WithContext(ctx).
		Where("departure_date = ? AND return_date = ? AND compliant = ? AND observed_at = ?",
			departureDate, returnDate, true, latest.ObservedAt).
		Order("total_price ASC, id ASC").
		First(&row).Error
	if err != nil {
		return nil, &entity.PersistenceError{Op: "LastObservedPrice", Err: err}
	}
	return observationToEntity(&row), nil
}

// BestByDirection returns the minimum compliant price per routing
// direction for a date pair
func (r *GormPriceRepository) BestByDirection(ctx context.Context, departureDate, returnDate string) (map[string]float64, error) {
	var rows []struct {
		Direction string
		BestPrice float64
	}
	err := r.db.WithContext(ctx).
		Model(&FlightObservations{}).
		Select("direction, MIN(total_price) AS best_price").
		Where("departure_date = ? AND return_date = ? AND compliant = ?", departureDate, returnDate, true).
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return nil, &entity.PersistenceError{Op: "BestByDirection", Err: err}
	}

	result := make(map[string]float64, len(rows))
	for _, row := range rows {
		result[row.Direction] = row.BestPrice
	}
	return result, nil
}

// RecentObservations returns the newest observations across all date pairs
func (r *GormPriceRepository) RecentObservations(ctx context.Context, limit int) ([]*entity.FlightObservation, error) {
	var rows []FlightObservations
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, &entity.PersistenceError{Op: "RecentObservations", Err: err}
	}

	observations := make([]*entity.FlightObservation, len(rows))
	for i := range rows {
		observations[i] = observationToEntity(&rows[i])
	}
	return observations, nil
}

type datePair struct {
	departureDate string
	returnDate    string
}

func touchedDatePairs(observations []*entity.FlightObservation) []datePair {
	seen := make(map[datePair]bool)
	var pairs []datePair
	for _, obs := range observations {
		pair := datePair{obs.DepartureDate, obs.ReturnDate}
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func observationToModel(obs *entity.FlightObservation) *FlightObservations {
	return &FlightObservations{
		DepartureDate:   obs.DepartureDate,
		ReturnDate:      obs.ReturnDate,
		Direction:       obs.Direction,
		InboundAirport:  obs.InboundAirport,
		OutboundAirport: obs.OutboundAirport,
		TotalPrice:      obs.TotalPrice,
		Currency:        obs.Currency,
		Nonstop:         obs.Nonstop,
		NoRedEye:        obs.NoRedEye,
		Compliant:       obs.Compliant,
		RejectReason:    obs.RejectReason,
		PayloadRef:      obs.PayloadRef,
		ObservedAt:      obs.ObservedAt,
	}
}

func observationToEntity(row *FlightObservations) *entity.FlightObservation {
	return &entity.FlightObservation{
		ID:              row.ID,
		DepartureDate:   row.DepartureDate,
		ReturnDate:      row.ReturnDate,
		Direction:       row.Direction,
		InboundAirport:  row.InboundAirport,
		OutboundAirport: row.OutboundAirport,
		TotalPrice:      row.TotalPrice,
		Currency:        row.Currency,
		Nonstop:         row.Nonstop,
		NoRedEye:        row.NoRedEye,
		Compliant:       row.Compliant,
		RejectReason:    row.RejectReason,
		PayloadRef:      row.PayloadRef,
		ObservedAt:      row.ObservedAt,
		CreatedAt:       row.CreatedAt,
	}
}

func dailyBestToEntity(row *DailyBestPrices) *entity.DailyBestPrice {
	return &entity.DailyBestPrice{
		ID:              row.ID,
		DepartureDate:   row.DepartureDate,
		ReturnDate:      row.ReturnDate,
		BestPrice:       row.BestPrice,
		Currency:        row.Currency,
		Direction:       row.Direction,
		InboundAirport:  row.InboundAirport,
		OutboundAirport: row.OutboundAirport,
		ObservationID:   row.ObservationID,
		UpdatedAt:       row.UpdatedAt,
	}
}
