package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/AmeenKassem/EasyPark/pkg/types"
)

// AvailabilityKind discriminates the two availability models.
type AvailabilityKind string

const (
	// AvailabilitySpecific declares explicit absolute [start, end) slots.
	AvailabilitySpecific AvailabilityKind = "SPECIFIC"
	// AvailabilityRecurring declares weekly windows per day of week.
	AvailabilityRecurring AvailabilityKind = "RECURRING"
)

var (
	// ErrNoAvailability is returned for spots with no declared availability.
	// A spot without availability entries is closed, never "open always".
	ErrNoAvailability = errors.New("domain: parking spot has no availability defined")

	// ErrOutsideAvailability is returned when the requested range is not
	// fully contained in a declared window.
	ErrOutsideAvailability = errors.New("domain: requested time is outside the spot availability")

	// ErrCrossMidnight is returned for recurring spots when a request does
	// not start and end on the same calendar day.
	ErrCrossMidnight = errors.New("domain: recurring availability requests cannot span across midnight")

	// ErrUnknownAvailabilityKind indicates corrupted spot data, not a bad
	// request. Callers must treat it as an internal failure.
	ErrUnknownAvailabilityKind = errors.New("domain: unknown availability kind")
)

// Availability is the owner-declared availability of a spot: either a set
// of explicit date-time slots or a weekly recurring schedule. Modelled as a
// closed sum type so a spot cannot carry both shapes at once.
type Availability interface {
	Kind() AvailabilityKind
}

// SpecificSlot is one absolute [Start, End) window.
type SpecificSlot struct {
	Start time.Time
	End   time.Time
}

// Specific is an availability made of explicit date-time slots.
type Specific struct {
	Slots []SpecificSlot
}

// Kind implements Availability.
func (Specific) Kind() AvailabilityKind { return AvailabilitySpecific }

// RecurringEntry is one weekly window. Weekday follows time.Weekday
// (0=Sunday .. 6=Saturday), which matches the stored encoding.
type RecurringEntry struct {
	Weekday time.Weekday
	Start   types.TimeOfDay
	End     types.TimeOfDay
}

// Recurring is an availability made of weekly windows.
type Recurring struct {
	Entries []RecurringEntry
}

// Kind implements Availability.
func (Recurring) Kind() AvailabilityKind { return AvailabilityRecurring }

// CheckAvailability reports whether [start, end) is fully contained in the
// declared availability. It is a pure predicate: no defaulting, no side
// effects. Returns nil when the range is covered and a descriptive error
// otherwise.
func CheckAvailability(a Availability, start, end time.Time) error {
	switch av := a.(type) {
	case Specific:
		return checkSpecific(av, start, end)
	case Recurring:
		return checkRecurring(av, start, end)
	case nil:
		return ErrNoAvailability
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAvailabilityKind, a)
	}
}

// checkSpecific requires full containment in exactly one slot. Slots are
// never unioned across boundaries: a request straddling two adjacent slots
// is rejected.
func checkSpecific(av Specific, start, end time.Time) error {
	if len(av.Slots) == 0 {
		return ErrNoAvailability
	}
	for _, slot := range av.Slots {
		if !start.Before(slot.Start) && !end.After(slot.End) {
			return nil
		}
	}
	return fmt.Errorf("%w: no specific slot contains [%s, %s)",
		ErrOutsideAvailability, start.Format(time.RFC3339), end.Format(time.RFC3339))
}

func checkRecurring(av Recurring, start, end time.Time) error {
	if len(av.Entries) == 0 {
		return ErrNoAvailability
	}

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return ErrCrossMidnight
	}

	weekday := start.Weekday()
	reqStart := types.NewTimeOfDay(start)
	reqEnd := types.NewTimeOfDay(end)

	for _, entry := range av.Entries {
		if entry.Weekday != weekday {
			continue
		}
		if !entry.Start.After(reqStart) && !reqEnd.After(entry.End) {
			return nil
		}
	}
	return fmt.Errorf("%w: no recurring window on %s contains [%s, %s)",
		ErrOutsideAvailability, weekday, reqStart, reqEnd)
}
