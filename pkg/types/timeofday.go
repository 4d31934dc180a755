package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, stored as "HH:MM".
// Used for recurring availability windows (e.g. "08:00".."20:00").
type TimeOfDay string

var (
	// ErrInvalidTimeOfDay is returned when a value does not parse as HH:MM.
	ErrInvalidTimeOfDay = errors.New("types: invalid time of day, expected HH:MM")
)

const timeOfDayLayout = "15:04"

// NewTimeOfDay extracts the wall-clock part of t.
func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Format(timeOfDayLayout))
}

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if _, err := time.Parse(timeOfDayLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay(s), nil
}

// String returns the canonical "HH:MM" representation.
func (t TimeOfDay) String() string {
	return string(t)
}

// IsZero reports whether the value is unset.
func (t TimeOfDay) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM format.
func (t TimeOfDay) Validate() error {
	_, err := time.Parse(timeOfDayLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, string(t))
	}
	return nil
}

// Minutes returns the number of minutes since midnight.
// The value must be valid; invalid values return 0.
func (t TimeOfDay) Minutes() int {
	parsed, err := time.Parse(timeOfDayLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// MarshalJSON implements json.Marshaler.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON implements json.Unmarshaler with format validation.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer for TIME columns.
func (t TimeOfDay) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive either as a
// string ("08:00:00") or as a time.Time depending on the driver path.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeOfDay(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported source %T", ErrInvalidTimeOfDay, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// Accept both HH:MM and HH:MM:SS.
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
