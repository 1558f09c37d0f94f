package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
)

var airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateAirportCode validates and normalizes an IATA airport code
func ValidateAirportCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !airportCodePattern.MatchString(normalized) {
		return "", &entity.ValidationError{
			Field: "airport code",
			Msg:   fmt.Sprintf("must be 3 letters, got %q", code),
		}
	}
	return normalized, nil
}

// ValidateDate validates and normalizes a YYYY-MM-DD date string
func ValidateDate(dateStr string) (string, error) {
	parsed, err := time.Parse(DATE_LAYOUT, strings.TrimSpace(dateStr))
	if err != nil {
		return "", &entity.ValidationError{
			Field: "date",
			Msg:   fmt.Sprintf("expected YYYY-MM-DD, got %q", dateStr),
		}
	}
	return parsed.Format(DATE_LAYOUT), nil
}

// ValidateDateOrder checks that from does not come after to
func ValidateDateOrder(from, to string) error {
	start, err := time.Parse(DATE_LAYOUT, from)
	if err != nil {
		return &entity.ValidationError{Field: "date", Msg: fmt.Sprintf("expected YYYY-MM-DD, got %q", from)}
	}
	end, err := time.Parse(DATE_LAYOUT, to)
	if err != nil {
		return &entity.ValidationError{Field: "date", Msg: fmt.Sprintf("expected YYYY-MM-DD, got %q", to)}
	}
	if start.After(end) {
		return &entity.ValidationError{
			Field: "date range",
			Msg:   fmt.Sprintf("%s is after %s", from, to),
		}
	}
	return nil
}

// ValidatePrice checks that a price is a sensible non-negative amount
func ValidatePrice(price float64) error {
	if price < 0 {
		return &entity.ValidationError{
			Field: "price",
			Msg:   fmt.Sprintf("must be >= 0, got %.2f", price),
		}
	}
	return nil
}

// AddDays returns the YYYY-MM-DD date n days after the given date
func AddDays(dateStr string, n int) (string, error) {
	parsed, err := time.Parse(DATE_LAYOUT, dateStr)
	if err != nil {
		return "", &entity.ValidationError{
			Field: "date",
			Msg:   fmt.Sprintf("expected YYYY-MM-DD, got %q", dateStr),
		}
	}
	return parsed.AddDate(0, 0, n).Format(DATE_LAYOUT), nil
}
