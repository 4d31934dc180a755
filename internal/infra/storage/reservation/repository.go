package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	"github.com/AmeenKassem/EasyPark/pkg/dbmetrics"
	"github.com/AmeenKassem/EasyPark/pkg/psqlbuilder"
)

const pgExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"spot_id",
	"driver_id",
	"start_time",
	"end_time",
	"status",
	"total_price",
	"created_at",
	"updated_at",
}

// WithSpot is a reservation joined with the spot it books, for listings.
type WithSpot struct {
	domain.Reservation
	SpotLocation string
	SpotOwnerID  int64
}

// Interval is a busy time range of a spot.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Repository persists reservations.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new reservation. The exclusion constraint on blocking
// reservations is the last line of defense against concurrent overlapping
// inserts; a violation surfaces as ErrOverlapConflict.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("spot_id", "driver_id", "start_time", "end_time", "status", "total_price").
		Values(res.SpotID, res.DriverID, res.StartTime, res.EndTime, res.Status, res.TotalPrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, ErrOverlapConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return res, nil
}

// GetByID loads a single reservation together with the booked spot's owner,
// so callers can authorize owner-side operations without a second query.
func (r *Repository) GetByID(ctx context.Context, id int64) (*WithSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id", "r.spot_id", "r.driver_id", "r.start_time", "r.end_time",
		"r.status", "r.total_price", "r.created_at", "r.updated_at",
		"s.location", "s.owner_id",
	).
		From("reservations r").
		Join("spots s ON s.id = r.spot_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanWithSpot(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// ListByDriver returns a driver's reservations, newest start first.
func (r *Repository) ListByDriver(ctx context.Context, driverID int64) ([]*WithSpot, error) {
	return r.list(ctx, squirrel.Eq{"r.driver_id": driverID}, "ListByDriver")
}

// ListByOwner returns reservations on all spots owned by the given owner,
// newest start first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*WithSpot, error) {
	return r.list(ctx, squirrel.Eq{"s.owner_id": ownerID}, "ListByOwner")
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, op string) ([]*WithSpot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id", "r.spot_id", "r.driver_id", "r.start_time", "r.end_time",
		"r.status", "r.total_price", "r.created_at", "r.updated_at",
		"s.location", "s.owner_id",
	).
		From("reservations r").
		Join("spots s ON s.id = r.spot_id").
		Where(where).
		OrderBy("r.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	out := make([]*WithSpot, 0)
	for rows.Next() {
		res, err := scanWithSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return out, nil
}

// CountBlockingOverlaps counts PENDING and APPROVED reservations on a spot
// intersecting the half-open range [start, end). Touching endpoints do not
// count.
func (r *Repository) CountBlockingOverlaps(ctx context.Context, spotID int64, start, end time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"spot_id": spotID}).
		Where(squirrel.Eq{"status": statusStrings(domain.BlockingStatuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBlockingOverlaps - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBlockingOverlaps - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// FindBlockingIntervals returns the busy ranges of a spot within [from, to),
// ordered by start ascending.
func (r *Repository) FindBlockingIntervals(ctx context.Context, spotID int64, from, to time.Time) ([]Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time", "end_time").
		From("reservations").
		Where(squirrel.Eq{"spot_id": spotID}).
		Where(squirrel.Eq{"status": statusStrings(domain.BlockingStatuses)}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBlockingIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]Interval, 0)
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("%w: FindBlockingIntervals - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindBlockingIntervals - rows error: %v", ErrScanRow, err)
	}
	return intervals, nil
}

// UpdateStatusFrom transitions a reservation's status with an optimistic
// guard on the expected current status. ErrStatusChanged means another
// writer won the race; callers re-read and re-evaluate.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// ExistsApprovedNotEnded reports whether a spot has an APPROVED reservation
// whose end time is still in the future. Such spots refuse structural edits.
func (r *Repository) ExistsApprovedNotEnded(ctx context.Context, spotID int64, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"spot_id": spotID, "status": domain.StatusApproved}).
		Where(squirrel.Gt{"end_time": now}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsApprovedNotEnded - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsApprovedNotEnded - scan row: %v", ErrScanRow, err)
	}
	return true, nil
}

// CountByStatusForOwner aggregates reservation counts per status across an
// owner's spots.
func (r *Repository) CountByStatusForOwner(ctx context.Context, ownerID int64) (map[domain.ReservationStatus]int64, error) {
	return r.countByStatus(ctx, squirrel.Eq{"s.owner_id": ownerID}, "CountByStatusForOwner")
}

func (r *Repository) CountByStatusForDriver(ctx context.Context, driverID int64) (map[domain.ReservationStatus]int64, error) {
	return r.countByStatus(ctx, squirrel.Eq{"r.driver_id": driverID}, "CountByStatusForDriver")
}

func (r *Repository) countByStatus(ctx context.Context, where squirrel.Eq, op string) (map[domain.ReservationStatus]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("r.status", "COUNT(*)").
		From("reservations r").
		Join("spots s ON s.id = r.spot_id").
		Where(where).
		GroupBy("r.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	counts := make(map[domain.ReservationStatus]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		counts[domain.ReservationStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return counts, nil
}

// SumApprovedTotalForOwner totals the price of APPROVED reservations on an
// owner's spots.
func (r *Repository) SumApprovedTotalForOwner(ctx context.Context, ownerID int64) (float64, error) {
	return r.sumApproved(ctx, squirrel.Eq{"s.owner_id": ownerID}, "SumApprovedTotalForOwner")
}

// SumApprovedTotalForDriver totals the price of a driver's APPROVED
// reservations.
func (r *Repository) SumApprovedTotalForDriver(ctx context.Context, driverID int64) (float64, error) {
	return r.sumApproved(ctx, squirrel.Eq{"r.driver_id": driverID}, "SumApprovedTotalForDriver")
}

func (r *Repository) sumApproved(ctx context.Context, where squirrel.Eq, op string) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(r.total_price), 0)").
		From("reservations r").
		Join("spots s ON s.id = r.spot_id").
		Where(where).
		Where(squirrel.Eq{"r.status": domain.StatusApproved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var sum float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: %s - scan sum: %v", ErrScanRow, op, err)
	}
	return sum, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWithSpot(row rowScanner) (*WithSpot, error) {
	var (
		res       WithSpot
		status    string
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&res.ID,
		&res.SpotID,
		&res.DriverID,
		&res.StartTime,
		&res.EndTime,
		&status,
		&res.TotalPrice,
		&createdAt,
		&updatedAt,
		&res.SpotLocation,
		&res.SpotOwnerID,
	)
	if err != nil {
		return nil, err
	}
	res.Status = domain.ReservationStatus(status)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
