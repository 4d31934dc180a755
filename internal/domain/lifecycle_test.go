package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	t.Run("pending can be approved", func(t *testing.T) {
		r := &Reservation{Status: StatusPending}
		require.NoError(t, r.Decide(StatusApproved))
		assert.Equal(t, StatusApproved, r.Status)
	})

	t.Run("pending can be rejected", func(t *testing.T) {
		r := &Reservation{Status: StatusPending}
		require.NoError(t, r.Decide(StatusRejected))
		assert.Equal(t, StatusRejected, r.Status)
	})

	t.Run("only decision statuses are accepted", func(t *testing.T) {
		r := &Reservation{Status: StatusPending}
		assert.ErrorIs(t, r.Decide(StatusCancelled), ErrInvalidTransition)
		assert.ErrorIs(t, r.Decide(StatusPending), ErrInvalidTransition)
	})

	t.Run("non-pending reservations cannot be decided", func(t *testing.T) {
		for _, status := range []ReservationStatus{StatusApproved, StatusRejected, StatusCancelled} {
			r := &Reservation{Status: status}
			assert.ErrorIs(t, r.Decide(StatusApproved), ErrNotDecidable, "from %s", status)
		}
	})
}

func TestCancelAt(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("pending cancels before start", func(t *testing.T) {
		r := &Reservation{Status: StatusPending, StartTime: start}
		changed, err := r.CancelAt(start.Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusCancelled, r.Status)
	})

	t.Run("approved cancels before start", func(t *testing.T) {
		r := &Reservation{Status: StatusApproved, StartTime: start}
		changed, err := r.CancelAt(start.Add(-time.Minute))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusCancelled, r.Status)
	})

	t.Run("cancel at start time fails", func(t *testing.T) {
		r := &Reservation{Status: StatusApproved, StartTime: start}
		_, err := r.CancelAt(start)
		assert.ErrorIs(t, err, ErrCancelAfterStart)
		assert.Equal(t, StatusApproved, r.Status)
	})

	t.Run("cancel after start fails", func(t *testing.T) {
		r := &Reservation{Status: StatusPending, StartTime: start}
		_, err := r.CancelAt(start.Add(time.Hour))
		assert.ErrorIs(t, err, ErrCancelAfterStart)
	})

	t.Run("cancelling a cancelled reservation is a no-op", func(t *testing.T) {
		r := &Reservation{Status: StatusCancelled, StartTime: start}
		changed, err := r.CancelAt(start.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, StatusCancelled, r.Status)
	})

	t.Run("cancelling a rejected reservation is a no-op", func(t *testing.T) {
		r := &Reservation{Status: StatusRejected, StartTime: start}
		changed, err := r.CancelAt(start.Add(-time.Hour))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, StatusRejected, r.Status)
	})
}

func TestParseReservationStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "APPROVED", "REJECTED", "CANCELLED"} {
		status, ok := ParseReservationStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, ReservationStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "DONE", "APPROVE"} {
		_, ok := ParseReservationStatus(invalid)
		assert.False(t, ok, "%q should not parse", invalid)
	}
}
