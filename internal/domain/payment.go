package domain

import "time"

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Defaults for the current phase: payments are recorded against the BIT
// provider as an immediate success marker, without an external rail.
const (
	DefaultCurrency = "ILS"
	DefaultProvider = "BIT"
)

// Payment settles a single reservation. At most one payment exists per
// reservation, enforced by a unique constraint.
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Currency      string
	Provider      string
	Status        PaymentStatus
	ProviderTxnID *string
	PaidAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
