package domain

import "time"

// Spot is a parking spot published by an owner.
type Spot struct {
	ID           int64
	OwnerID      int64
	Location     string
	Lat          *float64
	Lng          *float64
	PricePerHour float64
	Covered      bool
	Active       bool
	Availability Availability

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether userID owns the spot.
func (s *Spot) IsOwnedBy(userID int64) bool {
	return s.OwnerID == userID
}

// SpotSearchFilter narrows the public spot search. Nil fields are ignored.
type SpotSearchFilter struct {
	Covered  *bool
	MinPrice *float64
	MaxPrice *float64
}
