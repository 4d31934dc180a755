package spot

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
	"github.com/AmeenKassem/EasyPark/pkg/types"
)

var spotColumns = []string{
	"id",
	"owner_id",
	"location",
	"lat",
	"lng",
	"price_per_hour",
	"covered",
	"active",
	"availability_type",
	"created_at",
	"updated_at",
}

// Postgres SQLSTATE for a foreign key violation.
const pgForeignKeyViolation = "23503"

// Repository persists parking spots and their availability declarations.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a spot repository over the given executor.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a spot together with its availability rows. The two
// inserts belong to the same unit of work; callers that need atomicity run
// this inside a transaction manager.
func (r *Repository) Create(ctx context.Context, s *domain.Spot) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("spots").
		Columns("owner_id", "location", "lat", "lng", "price_per_hour", "covered", "active", "availability_type").
		Values(s.OwnerID, s.Location, s.Lat, s.Lng, s.PricePerHour, s.Covered, s.Active, availabilityKind(s.Availability)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	if err := r.insertAvailability(ctx, executor, s.ID, s.Availability); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID loads a spot with its availability declaration. Inside a
// transaction the spot row is locked with FOR UPDATE, which serializes
// check-then-insert sequences per spot without blocking other spots.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(spotColumns...).
		From("spots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, kind, err := scanSpotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan spot: %v", ErrScanRow, err)
	}

	availability, err := r.loadAvailability(ctx, executor, []int64{s.ID}, map[int64]string{s.ID: kind})
	if err != nil {
		return nil, err
	}
	s.Availability = availability[s.ID]
	return s, nil
}

// Update rewrites the mutable spot fields. When replaceAvailability is set
// the previous availability rows are deleted and the new declaration is
// written; otherwise the declaration is left untouched.
func (r *Repository) Update(ctx context.Context, s *domain.Spot, replaceAvailability bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("spots").
		Set("location", s.Location).
		Set("lat", s.Lat).
		Set("lng", s.Lng).
		Set("price_per_hour", s.PricePerHour).
		Set("covered", s.Covered).
		Set("active", s.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID})

	if replaceAvailability {
		updateBuilder = updateBuilder.Set("availability_type", availabilityKind(s.Availability))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSpotNotFound
	}

	if !replaceAvailability {
		return nil
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("spot_availabilities").
		Where(squirrel.Eq{"spot_id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build availability delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Update - delete availability: %v", ErrExecQuery, err)
	}

	return r.insertAvailability(ctx, executor, s.ID, s.Availability)
}

// Delete removes a spot. Availability rows go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("spots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return fmt.Errorf("%w: spot=%d", ErrSpotHasReservations, id)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSpotNotFound
	}
	return nil
}

// ListByOwner returns all spots belonging to an owner, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Spot, error) {
	selectBuilder := psqlbuilder.Select(spotColumns...).
		From("spots").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC")
	return r.querySpots(ctx, selectBuilder, "ListByOwner")
}

// Search returns active spots matching the public search filter.
func (r *Repository) Search(ctx context.Context, filter domain.SpotSearchFilter) ([]*domain.Spot, error) {
	selectBuilder := psqlbuilder.Select(spotColumns...).
		From("spots").
		Where(squirrel.Eq{"active": true})

	if filter.Covered != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"covered": *filter.Covered})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price_per_hour": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_per_hour": *filter.MaxPrice})
	}

	return r.querySpots(ctx, selectBuilder.OrderBy("price_per_hour ASC, id ASC"), "Search")
}

func (r *Repository) querySpots(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Spot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	spots := make([]*domain.Spot, 0)
	kinds := make(map[int64]string)
	ids := make([]int64, 0)

	for rows.Next() {
		s, kind, err := scanSpotRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan spot: %v", ErrScanRow, op, err)
		}
		spots = append(spots, s)
		kinds[s.ID] = kind
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	availability, err := r.loadAvailability(ctx, executor, ids, kinds)
	if err != nil {
		return nil, err
	}
	for _, s := range spots {
		s.Availability = availability[s.ID]
	}
	return spots, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpotRow(row rowScanner) (*domain.Spot, string, error) {
	var (
		s         domain.Spot
		kind      sql.NullString
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.Location,
		&s.Lat,
		&s.Lng,
		&s.PricePerHour,
		&s.Covered,
		&s.Active,
		&kind,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, "", err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, kind.String, nil
}

func availabilityKind(a domain.Availability) *string {
	if a == nil {
		return nil
	}
	kind := string(a.Kind())
	return &kind
}

func (r *Repository) insertAvailability(ctx context.Context, executor DBExecutor, spotID int64, a domain.Availability) error {
	switch av := a.(type) {
	case nil:
		return nil
	case domain.Specific:
		if len(av.Slots) == 0 {
			return nil
		}
		insertBuilder := psqlbuilder.Insert("spot_availabilities").
			Columns("spot_id", "start_datetime", "end_datetime")
		for _, slot := range av.Slots {
			insertBuilder = insertBuilder.Values(spotID, slot.Start, slot.End)
		}
		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: insertAvailability - build insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insertAvailability - execute insert: %v", ErrExecQuery, err)
		}
		return nil
	case domain.Recurring:
		if len(av.Entries) == 0 {
			return nil
		}
		insertBuilder := psqlbuilder.Insert("spot_availabilities").
			Columns("spot_id", "day_of_week", "start_time", "end_time")
		for _, entry := range av.Entries {
			insertBuilder = insertBuilder.Values(spotID, int(entry.Weekday), entry.Start, entry.End)
		}
		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: insertAvailability - build insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: insertAvailability - execute insert: %v", ErrExecQuery, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: insertAvailability - unsupported availability %T", ErrExecQuery, a)
	}
}

// loadAvailability fetches availability rows for the given spots in one
// query and assembles the declared sum type per spot.
func (r *Repository) loadAvailability(ctx context.Context, executor DBExecutor, spotIDs []int64, kinds map[int64]string) (map[int64]domain.Availability, error) {
	out := make(map[int64]domain.Availability, len(spotIDs))
	if len(spotIDs) == 0 {
		return out, nil
	}

	query, args, err := psqlbuilder.Select("spot_id", "day_of_week", "start_time", "end_time", "start_datetime", "end_datetime").
		From("spot_availabilities").
		Where(squirrel.Expr("spot_id = ANY(?)", pq.Array(spotIDs))).
		OrderBy("spot_id ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	specific := make(map[int64][]domain.SpecificSlot)
	recurring := make(map[int64][]domain.RecurringEntry)

	for rows.Next() {
		var (
			spotID        int64
			dayOfWeek     sql.NullInt64
			startTime     types.TimeOfDay
			endTime       types.TimeOfDay
			startDateTime sql.NullTime
			endDateTime   sql.NullTime
		)
		if err := rows.Scan(&spotID, &dayOfWeek, &startTime, &endTime, &startDateTime, &endDateTime); err != nil {
			return nil, fmt.Errorf("%w: loadAvailability - scan row: %v", ErrScanRow, err)
		}

		if startDateTime.Valid && endDateTime.Valid {
			specific[spotID] = append(specific[spotID], domain.SpecificSlot{
				Start: startDateTime.Time,
				End:   endDateTime.Time,
			})
		} else if dayOfWeek.Valid {
			recurring[spotID] = append(recurring[spotID], domain.RecurringEntry{
				Weekday: time.Weekday(dayOfWeek.Int64),
				Start:   startTime,
				End:     endTime,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadAvailability - rows error: %v", ErrScanRow, err)
	}

	for _, id := range spotIDs {
		switch domain.AvailabilityKind(kinds[id]) {
		case domain.AvailabilitySpecific:
			out[id] = domain.Specific{Slots: specific[id]}
		case domain.AvailabilityRecurring:
			out[id] = domain.Recurring{Entries: recurring[id]}
		}
	}
	return out, nil
}
