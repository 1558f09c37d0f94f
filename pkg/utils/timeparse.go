package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// ParseClock converts an HH:MM cutoff string to minutes past midnight
func ParseClock(clock string) (int, error) {
	parsed, err := time.Parse(CLOCK_LAYOUT, strings.TrimSpace(clock))
	if err != nil {
		return 0, &entity.ValidationError{
			Field: "clock",
			Msg:   fmt.Sprintf("expected HH:MM, got %q", clock),
		}
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// MinutesOfDay returns the wall-clock minutes past midnight of a local timestamp
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseLocalTime parses a provider timestamp without timezone
// conversion. Offers carry local wall-clock times and the red-eye
// cutoffs are defined in local time, so any offset suffix is dropped.
func ParseLocalTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > 19 {
		trimmed = trimmed[:19]
	}
	trimmed = strings.TrimSuffix(trimmed, "Z")
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, &entity.ValidationError{
		Field: "timestamp",
		Msg:   fmt.Sprintf("expected ISO local time, got %q", value),
	}
}

// ParseISODuration converts an ISO 8601 duration like "PT2H30M" to minutes
func ParseISODuration(duration string) int {
	if !strings.HasPrefix(duration, "PT") {
		return 0
	}
	rest := duration[2:]
	minutes := 0
	if idx := strings.Index(rest, "H"); idx >= 0 {
		if hours, err := strconv.Atoi(rest[:idx]); err == nil {
			minutes += hours * 60
		}
		rest = rest[idx+1:]
	}
	if idx := strings.Index(rest, "M"); idx >= 0 {
		if mins, err := strconv.Atoi(rest[:idx]); err == nil {
			minutes += mins
		}
	}
	return minutes
}
