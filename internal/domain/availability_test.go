package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeenKassem/EasyPark/pkg/types"
)

func mustTimeOfDay(t *testing.T, s string) types.TimeOfDay {
	t.Helper()
	tod, err := types.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestCheckAvailability_NilIsClosed(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	err := CheckAvailability(nil, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestCheckAvailability_EmptyDeclarationsAreClosed(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	assert.ErrorIs(t, CheckAvailability(Specific{}, start, end), ErrNoAvailability)
	assert.ErrorIs(t, CheckAvailability(Recurring{}, start, end), ErrNoAvailability)
}

func TestCheckAvailability_SpecificContainment(t *testing.T) {
	slotStart := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	slotEnd := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	av := Specific{Slots: []SpecificSlot{{Start: slotStart, End: slotEnd}}}

	// Fully inside.
	assert.NoError(t, CheckAvailability(av, slotStart.Add(time.Hour), slotEnd.Add(-time.Hour)))

	// Exactly the slot boundaries.
	assert.NoError(t, CheckAvailability(av, slotStart, slotEnd))

	// Starts before the slot.
	err := CheckAvailability(av, slotStart.Add(-time.Minute), slotEnd)
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	// Ends after the slot.
	err = CheckAvailability(av, slotStart, slotEnd.Add(time.Minute))
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestCheckAvailability_SpecificNoUnionAcrossSlots(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	av := Specific{Slots: []SpecificSlot{
		{Start: day.Add(8 * time.Hour), End: day.Add(12 * time.Hour)},
		{Start: day.Add(12 * time.Hour), End: day.Add(18 * time.Hour)},
	}}

	// A range straddling two adjacent slots is rejected even though the
	// union covers it.
	err := CheckAvailability(av, day.Add(10*time.Hour), day.Add(14*time.Hour))
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	// Each half alone is fine.
	assert.NoError(t, CheckAvailability(av, day.Add(10*time.Hour), day.Add(12*time.Hour)))
	assert.NoError(t, CheckAvailability(av, day.Add(12*time.Hour), day.Add(14*time.Hour)))
}

func TestCheckAvailability_RecurringWeekdayWindow(t *testing.T) {
	av := Recurring{Entries: []RecurringEntry{
		{Weekday: time.Monday, Start: mustTimeOfDay(t, "08:00"), End: mustTimeOfDay(t, "18:00")},
	}}

	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckAvailability(av, monday.Add(9*time.Hour), monday.Add(11*time.Hour)))

	// Exact window boundaries.
	assert.NoError(t, CheckAvailability(av, monday.Add(8*time.Hour), monday.Add(18*time.Hour)))

	// Outside the window.
	err := CheckAvailability(av, monday.Add(7*time.Hour), monday.Add(9*time.Hour))
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	// Wrong weekday: Tuesday has no window.
	tuesday := monday.AddDate(0, 0, 1)
	err = CheckAvailability(av, tuesday.Add(9*time.Hour), tuesday.Add(11*time.Hour))
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestCheckAvailability_RecurringCrossMidnight(t *testing.T) {
	av := Recurring{Entries: []RecurringEntry{
		{Weekday: time.Monday, Start: mustTimeOfDay(t, "00:00"), End: mustTimeOfDay(t, "23:59")},
	}}

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	err := CheckAvailability(av, monday.Add(22*time.Hour), monday.Add(26*time.Hour))
	assert.ErrorIs(t, err, ErrCrossMidnight)
}

type bogusAvailability struct{}

func (bogusAvailability) Kind() AvailabilityKind { return "SOMETHING_ELSE" }

func TestCheckAvailability_UnknownKind(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	err := CheckAvailability(bogusAvailability{}, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnknownAvailabilityKind)
}

func TestOverlaps_HalfOpenRanges(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	// Touching endpoints do not overlap.
	assert.False(t, Overlaps(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))

	// One minute of intersection does.
	assert.True(t, Overlaps(base, base.Add(time.Hour), base.Add(59*time.Minute), base.Add(2*time.Hour)))

	// Containment overlaps.
	assert.True(t, Overlaps(base, base.Add(3*time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
}
