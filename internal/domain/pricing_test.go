package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal_ExactDuration(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rate     float64
		duration time.Duration
		want     float64
	}{
		{"whole hour", 10, time.Hour, 10},
		{"ninety minutes charges one and a half hours", 10, 90 * time.Minute, 15},
		{"one minute is not rounded up to an hour", 60, time.Minute, 1},
		{"two hours", 7.5, 2 * time.Hour, 15},
		{"uneven rate rounds to cents", 9.99, 100 * time.Minute, 16.65},
		{"half a cent rounds up", 0.15, 10 * time.Minute, 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(tt.rate, start, start.Add(tt.duration))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeTotal_Errors(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	_, err := ComputeTotal(0, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNonPositiveRate)

	_, err = ComputeTotal(-5, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNonPositiveRate)

	_, err = ComputeTotal(10, start, start)
	assert.ErrorIs(t, err, ErrNonPositiveDuration)

	_, err = ComputeTotal(10, start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrNonPositiveDuration)
}
