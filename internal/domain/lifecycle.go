package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow from the current state.
	ErrInvalidTransition = errors.New("domain: invalid reservation status transition")

	// ErrNotDecidable is returned when an owner decision is attempted on a
	// reservation that is no longer PENDING.
	ErrNotDecidable = errors.New("domain: only pending reservations can be approved or rejected")

	// ErrCancelAfterStart is returned when a driver cancels a reservation
	// whose start time has already passed.
	ErrCancelAfterStart = errors.New("domain: cannot cancel after the reservation has started")
)

// allowedTransitions is the reservation state machine. Owner decisions move
// PENDING to APPROVED or REJECTED; drivers may cancel PENDING or APPROVED
// reservations before they start.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Decide applies an owner decision. Only PENDING reservations can be
// decided, and only to APPROVED or REJECTED. Ownership is checked by the
// caller before reaching the state machine.
func (r *Reservation) Decide(to ReservationStatus) error {
	if to != StatusApproved && to != StatusRejected {
		return ErrInvalidTransition
	}
	if r.Status != StatusPending {
		return ErrNotDecidable
	}
	r.Status = to
	return nil
}

// CancelAt applies a driver cancellation as of now. Cancelling an already
// CANCELLED or REJECTED reservation is an idempotent no-op; the returned
// bool reports whether the status actually changed. Active reservations can
// only be cancelled strictly before their start time.
func (r *Reservation) CancelAt(now time.Time) (bool, error) {
	if r.IsTerminal() {
		return false, nil
	}
	if !now.Before(r.StartTime) {
		return false, ErrCancelAfterStart
	}
	if !CanTransition(r.Status, StatusCancelled) {
		return false, ErrInvalidTransition
	}
	r.Status = StatusCancelled
	return true, nil
}
