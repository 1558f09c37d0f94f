// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/utils"

	"github.com/joho/godotenv"
)

// TripConfig holds the static trip parameters: the fixed open-jaw
// itinerary, the filtering cutoffs, the alert threshold and the
// festival window. Immutable after load.
type TripConfig struct {
	HomeAirport        string
	FirstCityCode      string
	FirstCityAirports  []string
	SecondCityCode     string
	SecondCityAirports []string
	TripLengthDays     int
	WindowStart        string // first candidate departure date
	WindowEnd          string // last candidate departure date
	DepartureCutoff    string // no departures from home before this local time
	ArrivalCutoff      string // no arrivals at destination region after this local time
	AlertThreshold     float64
	Festival           entity.FestivalWindow
}

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresDSN string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Amadeus
	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	AlertSender       string
	AlertRecipient    string

	// Sweep
	SweepInterval time.Duration

	Trip TripConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=tripwatch dbname=tripwatch port=5432 sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "tripwatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusClientID:     getEnv("AMADEUS_API_KEY", ""),
		AmadeusClientSecret: getEnv("AMADEUS_API_SECRET", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		AlertSender:       getEnv("ALERT_SENDER", ""),
		AlertRecipient:    getEnv("ALERT_RECIPIENT", ""),

		SweepInterval: time.Duration(getEnvAsInt("SWEEP_INTERVAL_HOURS", 24)) * time.Hour,

		Trip: TripConfig{
			HomeAirport:        getEnv("TRIP_HOME_AIRPORT", "SAN"),
			FirstCityCode:      getEnv("TRIP_FIRST_CITY", "WAS"),
			FirstCityAirports:  getEnvAsList("TRIP_FIRST_CITY_AIRPORTS", "IAD,DCA"),
			SecondCityCode:     getEnv("TRIP_SECOND_CITY", "NYC"),
			SecondCityAirports: getEnvAsList("TRIP_SECOND_CITY_AIRPORTS", "JFK,LGA,EWR"),
			TripLengthDays:     getEnvAsInt("TRIP_LENGTH_DAYS", 6),
			WindowStart:        getEnv("TRIP_WINDOW_START", "2026-04-03"),
			WindowEnd:          getEnv("TRIP_WINDOW_END", "2026-04-06"),
			DepartureCutoff:    getEnv("TRIP_DEPARTURE_CUTOFF", "07:00"),
			ArrivalCutoff:      getEnv("TRIP_ARRIVAL_CUTOFF", "22:00"),
			AlertThreshold:     getEnvAsFloat("TRIP_ALERT_THRESHOLD", 10.0),
			Festival: entity.FestivalWindow{
				City:      getEnv("FESTIVAL_CITY", "WAS"),
				Start:     getEnv("FESTIVAL_START", "2026-03-20"),
				End:       getEnv("FESTIVAL_END", "2026-04-12"),
				PeakStart: getEnv("FESTIVAL_PEAK_START", "2026-04-01"),
				PeakEnd:   getEnv("FESTIVAL_PEAK_END", "2026-04-05"),
			},
		},
	}

	return config, nil
}

// Validate checks the static trip configuration. Returns a
// ConfigurationError on the first problem found; the caller should
// treat it as fatal at startup.
func (c *Config) Validate() error {
	t := &c.Trip

	airports := append([]string{t.HomeAirport}, t.FirstCityAirports...)
	airports = append(airports, t.SecondCityAirports...)
	for _, code := range airports {
		if _, err := utils.ValidateAirportCode(code); err != nil {
			return &entity.ConfigurationError{Msg: err.Error()}
		}
	}
	if len(t.FirstCityAirports) == 0 || len(t.SecondCityAirports) == 0 {
		return &entity.ConfigurationError{Msg: "each destination city needs at least one candidate airport"}
	}
	if t.FirstCityCode == "" || t.SecondCityCode == "" || t.FirstCityCode == t.SecondCityCode {
		return &entity.ConfigurationError{Msg: "two distinct destination city codes are required"}
	}
	if t.TripLengthDays < 2 {
		return &entity.ConfigurationError{Msg: fmt.Sprintf("trip length must allow at least one day per city, got %d", t.TripLengthDays)}
	}

	for _, date := range []string{t.WindowStart, t.WindowEnd, t.Festival.Start, t.Festival.End, t.Festival.PeakStart, t.Festival.PeakEnd} {
		if _, err := utils.ValidateDate(date); err != nil {
			return &entity.ConfigurationError{Msg: err.Error()}
		}
	}
	if err := utils.ValidateDateOrder(t.WindowStart, t.WindowEnd); err != nil {
		return &entity.ConfigurationError{Msg: err.Error()}
	}
	if err := utils.ValidateDateOrder(t.Festival.Start, t.Festival.End); err != nil {
		return &entity.ConfigurationError{Msg: err.Error()}
	}
	if err := utils.ValidateDateOrder(t.Festival.PeakStart, t.Festival.PeakEnd); err != nil {
		return &entity.ConfigurationError{Msg: err.Error()}
	}
	if t.Festival.City != t.FirstCityCode && t.Festival.City != t.SecondCityCode {
		return &entity.ConfigurationError{Msg: fmt.Sprintf("festival city %q is not one of the destination cities", t.Festival.City)}
	}

	for _, cutoff := range []string{t.DepartureCutoff, t.ArrivalCutoff} {
		if _, err := utils.ParseClock(cutoff); err != nil {
			return &entity.ConfigurationError{Msg: err.Error()}
		}
	}
	if t.AlertThreshold < 0 {
		return &entity.ConfigurationError{Msg: fmt.Sprintf("alert threshold must be >= 0, got %.2f", t.AlertThreshold)}
	}

	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
