package utils

// Constants
const (
	DATE_LAYOUT  = "2006-01-02"
	CLOCK_LAYOUT = "15:04"
)
