package create_reservation

import "time"

// Request is a driver's request to reserve a spot for [StartTime, EndTime).
type Request struct {
	DriverID  int64
	SpotID    int64
	StartTime time.Time
	EndTime   time.Time
}

// Response is the created reservation.
type Response struct {
	ID           int64
	SpotID       int64
	SpotLocation string
	DriverID     int64
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	TotalPrice   float64
	CreatedAt    time.Time
}
