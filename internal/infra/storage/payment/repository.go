package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	"github.com/AmeenKassem/EasyPark/pkg/dbmetrics"
	"github.com/AmeenKassem/EasyPark/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// WithReservation is a payment joined with reservation and spot context for
// listings.
type WithReservation struct {
	domain.Payment
	SpotID       int64
	SpotLocation string
	DriverID     int64
}

// Repository persists payments.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a payment for a reservation. The unique constraint on
// reservation_id rejects a second payment; that surfaces as ErrAlreadyPaid.
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("reservation_id", "amount", "currency", "provider", "status", "provider_txn_id", "paid_at").
		Values(p.ReservationID, p.Amount, p.Currency, p.Provider, p.Status, p.ProviderTxnID, p.PaidAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrAlreadyPaid
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByReservation loads the payment recorded for a reservation, if any.
func (r *Repository) GetByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "reservation_id", "amount", "currency", "provider", "status",
		"provider_txn_id", "paid_at", "created_at", "updated_at",
	).
		From("payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p         domain.Payment
		status    string
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.ReservationID, &p.Amount, &p.Currency, &p.Provider,
		&status, &p.ProviderTxnID, &p.PaidAt, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservation - scan payment: %v", ErrScanRow, err)
	}
	p.Status = domain.PaymentStatus(status)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// ListByDriver returns payments for the driver's reservations, newest first.
func (r *Repository) ListByDriver(ctx context.Context, driverID int64) ([]*WithReservation, error) {
	return r.list(ctx, squirrel.Eq{"r.driver_id": driverID}, "ListByDriver")
}

// ListByOwner returns payments received on the owner's spots, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*WithReservation, error) {
	return r.list(ctx, squirrel.Eq{"s.owner_id": ownerID}, "ListByOwner")
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, op string) ([]*WithReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id", "p.reservation_id", "p.amount", "p.currency", "p.provider",
		"p.status", "p.provider_txn_id", "p.paid_at", "p.created_at", "p.updated_at",
		"r.spot_id", "s.location", "r.driver_id",
	).
		From("payments p").
		Join("reservations r ON r.id = p.reservation_id").
		Join("spots s ON s.id = r.spot_id").
		Where(where).
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	out := make([]*WithReservation, 0)
	for rows.Next() {
		var (
			p         WithReservation
			status    string
			createdAt sql.NullTime
			updatedAt sql.NullTime
		)
		err := rows.Scan(
			&p.ID, &p.ReservationID, &p.Amount, &p.Currency, &p.Provider,
			&status, &p.ProviderTxnID, &p.PaidAt, &createdAt, &updatedAt,
			&p.SpotID, &p.SpotLocation, &p.DriverID,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		p.Status = domain.PaymentStatus(status)
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return out, nil
}
