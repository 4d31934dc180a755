package domain

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrNonPositiveRate is returned for a zero or negative hourly rate.
	ErrNonPositiveRate = errors.New("domain: hourly rate must be positive")

	// ErrNonPositiveDuration is returned when end is not after start.
	ErrNonPositiveDuration = errors.New("domain: reservation duration must be positive")
)

// ComputeTotal calculates the price for [start, end) at the given hourly
// rate. The exact duration is charged (no rounding up to whole hours); the
// result is rounded half-up to two decimals for currency display.
func ComputeTotal(pricePerHour float64, start, end time.Time) (float64, error) {
	if pricePerHour <= 0 {
		return 0, ErrNonPositiveRate
	}
	if !end.After(start) {
		return 0, ErrNonPositiveDuration
	}

	minutes := end.Sub(start).Minutes()
	total := minutes / 60.0 * pricePerHour
	return math.Round(total*100) / 100, nil
}
