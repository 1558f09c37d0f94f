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

// GormHotelRepository implements the HotelPriceRepository interface
type GormHotelRepository struct {
	db *gorm.DB
}

// HotelPrices GORM model for database mapping
type HotelPrices struct {
	ID            uint   `gorm:"primaryKey"`
	City          string `gorm:"column:city;uniqueIndex:idx_hotel_stay"`
	CheckInDate   string `gorm:"column:check_in_date;uniqueIndex:idx_hotel_stay"`
	CheckOutDate  string `gorm:"column:check_out_date;uniqueIndex:idx_hotel_stay"`
	HotelName     string `gorm:"column:hotel_name;uniqueIndex:idx_hotel_stay"`
	PricePerNight float64
	TotalPrice    float64
	Currency      string
	CheckedDate   string
	CreatedAt     time.Time
}

// TableName overrides the default table name
func (HotelPrices) TableName() string {
	return "hotel_prices"
}

// NewGormHotelRepository creates a new GORM hotel price repository
func NewGormHotelRepository(db *gorm.DB) (repository.HotelPriceRepository, error) {
	if err := db.AutoMigrate(&HotelPrices{}); err != nil {
		return nil, &entity.PersistenceError{Op: "migrate", Err: err}
	}
	return &GormHotelRepository{db: db}, nil
}

// Save upserts a hotel rate; the same hotel and stay is replaced by
// the latest check
func (r *GormHotelRepository) Save(ctx context.Context, price *entity.HotelPrice) error {
	row := HotelPrices{
		City:          price.City,
		CheckInDate:   price.CheckInDate,
		CheckOutDate:  price.CheckOutDate,
		HotelName:     price.HotelName,
		PricePerNight: price.PricePerNight,
		TotalPrice:    price.TotalPrice,
		Currency:      price.Currency,
		CheckedDate:   price.CheckedDate,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "city"}, {Name: "check_in_date"},
			{Name: "check_out_date"}, {Name: "hotel_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"price_per_night", "total_price", "currency", "checked_date",
		}),
	}).Create(&row).Error
	if err != nil {
		return &entity.PersistenceError{Op: "SaveHotelPrice", Err: err}
	}
	price.ID = row.ID
	return nil
}

// CheapestFor returns the lowest-priced hotel recorded for a city and
// stay, or nil when none exists
func (r *GormHotelRepository) CheapestFor(ctx context.Context, city, checkInDate, checkOutDate string) (*entity.HotelPrice, error) {
	var row HotelPrices
	err := r.db.WithContext(ctx).
		Where("city = ? AND check_in_date = ? AND check_out_date = ?", city, checkInDate, checkOutDate).
		Order("total_price ASC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &entity.PersistenceError{Op: "CheapestHotelFor", Err: err}
	}
	return &entity.HotelPrice{
		ID:            row.ID,
		City:          row.City,
		CheckInDate:   row.CheckInDate,
		CheckOutDate:  row.CheckOutDate,
		HotelName:     row.HotelName,
		PricePerNight: row.PricePerNight,
		TotalPrice:    row.TotalPrice,
		Currency:      row.Currency,
		CheckedDate:   row.CheckedDate,
		CreatedAt:     row.CreatedAt,
	}, nil
}
