package models

// StatusCounts breaks reservations down by lifecycle state.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

// Total sums all states.
func (c StatusCounts) Total() int64 {
	return c.Pending + c.Approved + c.Rejected + c.Cancelled
}

// OwnerReportResponse is the owner's dashboard.
type OwnerReportResponse struct {
	OwnerID           int64        `json:"ownerId"`
	SpotCount         int64        `json:"spotCount"`
	Reservations      StatusCounts `json:"reservations"`
	TotalReservations int64        `json:"totalReservations"`
	ApprovedRevenue   float64      `json:"approvedRevenue"`
	Currency          string       `json:"currency"`
}

// DriverReportResponse is the driver's activity summary.
type DriverReportResponse struct {
	DriverID          int64        `json:"driverId"`
	Reservations      StatusCounts `json:"reservations"`
	TotalReservations int64        `json:"totalReservations"`
	ApprovedSpend     float64      `json:"approvedSpend"`
	Currency          string       `json:"currency"`
}
