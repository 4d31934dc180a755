package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	"github.com/AmeenKassem/EasyPark/pkg/types"
)

var (
	// ErrInvalidAvailability is returned for malformed availability payloads.
	ErrInvalidAvailability = errors.New("invalid availability declaration")
)

// Request models

// SlotRequest is one absolute availability window.
type SlotRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// RecurringEntryRequest is one weekly availability window. DayOfWeek uses
// 0=Sunday .. 6=Saturday; times are "HH:MM".
type RecurringEntryRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityRequest declares a spot's availability. Type selects the
// shape; exactly the matching list is read.
type AvailabilityRequest struct {
	Type    string                  `json:"type"`
	Slots   []SlotRequest           `json:"slots,omitempty"`
	Entries []RecurringEntryRequest `json:"entries,omitempty"`
}

// CreateSpotRequest publishes a new spot.
type CreateSpotRequest struct {
	OwnerID      int64                `json:"-"`
	Location     string               `json:"location"`
	Lat          *float64             `json:"lat,omitempty"`
	Lng          *float64             `json:"lng,omitempty"`
	PricePerHour float64              `json:"pricePerHour"`
	Covered      bool                 `json:"covered"`
	Active       bool                 `json:"active"`
	Availability *AvailabilityRequest `json:"availability,omitempty"`
}

// UpdateSpotRequest edits an existing spot. Availability, when present,
// replaces the previous declaration entirely.
type UpdateSpotRequest struct {
	SpotID       int64                `json:"-"`
	OwnerID      int64                `json:"-"`
	Location     string               `json:"location"`
	Lat          *float64             `json:"lat,omitempty"`
	Lng          *float64             `json:"lng,omitempty"`
	PricePerHour float64              `json:"pricePerHour"`
	Covered      bool                 `json:"covered"`
	Active       bool                 `json:"active"`
	Availability *AvailabilityRequest `json:"availability,omitempty"`
}

// SearchSpotsRequest filters the public search. Nil fields are ignored.
type SearchSpotsRequest struct {
	Covered  *bool
	MinPrice *float64
	MaxPrice *float64
}

// ToDomainFilter converts the search request.
func (r *SearchSpotsRequest) ToDomainFilter() domain.SpotSearchFilter {
	return domain.SpotSearchFilter{
		Covered:  r.Covered,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
	}
}

// ToDomainAvailability validates and converts an availability payload. An
// unknown type, an empty window list, a window with start not before end,
// or a recurring entry with a bad weekday all fail with
// ErrInvalidAvailability.
func (a *AvailabilityRequest) ToDomainAvailability() (domain.Availability, error) {
	switch domain.AvailabilityKind(a.Type) {
	case domain.AvailabilitySpecific:
		if len(a.Slots) == 0 {
			return nil, fmt.Errorf("%w: specific availability needs at least one slot", ErrInvalidAvailability)
		}
		slots := make([]domain.SpecificSlot, 0, len(a.Slots))
		for _, slot := range a.Slots {
			if !slot.StartTime.Before(slot.EndTime) {
				return nil, fmt.Errorf("%w: slot start must be before end", ErrInvalidAvailability)
			}
			slots = append(slots, domain.SpecificSlot{Start: slot.StartTime, End: slot.EndTime})
		}
		return domain.Specific{Slots: slots}, nil

	case domain.AvailabilityRecurring:
		if len(a.Entries) == 0 {
			return nil, fmt.Errorf("%w: recurring availability needs at least one entry", ErrInvalidAvailability)
		}
		entries := make([]domain.RecurringEntry, 0, len(a.Entries))
		for _, entry := range a.Entries {
			if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
				return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidAvailability)
			}
			start, err := types.ParseTimeOfDay(entry.StartTime)
			if err != nil {
				return nil, fmt.Errorf("%w: bad start time %q", ErrInvalidAvailability, entry.StartTime)
			}
			end, err := types.ParseTimeOfDay(entry.EndTime)
			if err != nil {
				return nil, fmt.Errorf("%w: bad end time %q", ErrInvalidAvailability, entry.EndTime)
			}
			if !start.Before(end) {
				return nil, fmt.Errorf("%w: recurring windows cannot span midnight", ErrInvalidAvailability)
			}
			entries = append(entries, domain.RecurringEntry{
				Weekday: time.Weekday(entry.DayOfWeek),
				Start:   start,
				End:     end,
			})
		}
		return domain.Recurring{Entries: entries}, nil

	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAvailability, a.Type)
	}
}

// Response models

// AvailabilityResponse mirrors the declared availability.
type AvailabilityResponse struct {
	Type    string                  `json:"type"`
	Slots   []SlotRequest           `json:"slots,omitempty"`
	Entries []RecurringEntryRequest `json:"entries,omitempty"`
}

// SpotResponse is a spot as shown to clients.
type SpotResponse struct {
	ID           int64                 `json:"id"`
	OwnerID      int64                 `json:"ownerId"`
	Location     string                `json:"location"`
	Lat          *float64              `json:"lat,omitempty"`
	Lng          *float64              `json:"lng,omitempty"`
	PricePerHour float64               `json:"pricePerHour"`
	Covered      bool                  `json:"covered"`
	Active       bool                  `json:"active"`
	Availability *AvailabilityResponse `json:"availability,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// SpotListResponse wraps a spot listing.
type SpotListResponse struct {
	Spots []SpotResponse `json:"spots"`
}

// FromDomainSpot converts a domain spot to a response.
func FromDomainSpot(s *domain.Spot) *SpotResponse {
	return &SpotResponse{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Location:     s.Location,
		Lat:          s.Lat,
		Lng:          s.Lng,
		PricePerHour: s.PricePerHour,
		Covered:      s.Covered,
		Active:       s.Active,
		Availability: fromDomainAvailability(s.Availability),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FromDomainSpots converts a listing.
func FromDomainSpots(spots []*domain.Spot) *SpotListResponse {
	out := make([]SpotResponse, 0, len(spots))
	for _, s := range spots {
		out = append(out, *FromDomainSpot(s))
	}
	return &SpotListResponse{Spots: out}
}

func fromDomainAvailability(a domain.Availability) *AvailabilityResponse {
	switch av := a.(type) {
	case domain.Specific:
		slots := make([]SlotRequest, 0, len(av.Slots))
		for _, slot := range av.Slots {
			slots = append(slots, SlotRequest{StartTime: slot.Start, EndTime: slot.End})
		}
		return &AvailabilityResponse{Type: string(domain.AvailabilitySpecific), Slots: slots}
	case domain.Recurring:
		entries := make([]RecurringEntryRequest, 0, len(av.Entries))
		for _, entry := range av.Entries {
			entries = append(entries, RecurringEntryRequest{
				DayOfWeek: int(entry.Weekday),
				StartTime: entry.Start.String(),
				EndTime:   entry.End.String(),
			})
		}
		return &AvailabilityResponse{Type: string(domain.AvailabilityRecurring), Entries: entries}
	default:
		return nil
	}
}
