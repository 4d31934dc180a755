package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	spotRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/spot"
	"github.com/AmeenKassem/EasyPark/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeSpotRepo struct {
	spots map[int64]*domain.Spot
}

func (f *fakeSpotRepo) GetByID(_ context.Context, id int64) (*domain.Spot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, spotRepo.ErrSpotNotFound
	}
	return spot, nil
}

type fakeReservationRepo struct {
	overlaps  int64
	created   *domain.Reservation
	createErr error
}

func (f *fakeReservationRepo) CountBlockingOverlaps(context.Context, int64, time.Time, time.Time) (int64, error) {
	return f.overlaps, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	res.ID = 1
	res.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	f.created = res
	return res, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func mustTimeOfDay(t *testing.T, s string) types.TimeOfDay {
	t.Helper()
	tod, err := types.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

// 2025-06-02 is a Monday.
var (
	testNow   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reqStart  = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	reqEnd    = time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC)
	slotStart = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	slotEnd   = time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
)

func newTestUseCase(spots *fakeSpotRepo, reservations *fakeReservationRepo) *UseCase {
	uc := NewUseCase(reservations, spots, fakeTxManager{}, stubLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return uc
}

func activeSpot(availability domain.Availability) *domain.Spot {
	return &domain.Spot{
		ID:           7,
		OwnerID:      100,
		Location:     "Herzl 12, Tel Aviv",
		PricePerHour: 10,
		Active:       true,
		Availability: availability,
	}
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Specific{Slots: []domain.SpecificSlot{{Start: slotStart, End: slotEnd}}}),
	}}
	reservations := &fakeReservationRepo{}
	uc := newTestUseCase(spots, reservations)

	resp, err := uc.Execute(context.Background(), &Request{
		DriverID:  42,
		SpotID:    7,
		StartTime: reqStart,
		EndTime:   reqEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Herzl 12, Tel Aviv", resp.SpotLocation)
	// 2.5 hours at 10/hour.
	assert.InDelta(t, 25.0, resp.TotalPrice, 1e-9)

	require.NotNil(t, reservations.created)
	assert.Equal(t, domain.StatusPending, reservations.created.Status)
	assert.Equal(t, int64(42), reservations.created.DriverID)
}

func TestExecute_RecurringAvailability(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Recurring{Entries: []domain.RecurringEntry{
			{Weekday: time.Monday, Start: mustTimeOfDay(t, "08:00"), End: mustTimeOfDay(t, "18:00")},
		}}),
	}}
	uc := newTestUseCase(spots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DriverID:  42,
		SpotID:    7,
		StartTime: reqStart,
		EndTime:   reqEnd,
	})
	assert.NoError(t, err)
}

func TestExecute_SpotNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSpotRepo{spots: map[int64]*domain.Spot{}}, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 42, SpotID: 99, StartTime: reqStart, EndTime: reqEnd,
	})
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestExecute_InactiveSpot(t *testing.T) {
	spot := activeSpot(domain.Specific{Slots: []domain.SpecificSlot{{Start: slotStart, End: slotEnd}}})
	spot.Active = false
	uc := newTestUseCase(&fakeSpotRepo{spots: map[int64]*domain.Spot{7: spot}}, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 42, SpotID: 7, StartTime: reqStart, EndTime: reqEnd,
	})
	assert.ErrorIs(t, err, ErrSpotInactive)
}

func TestExecute_OwnSpot(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Specific{Slots: []domain.SpecificSlot{{Start: slotStart, End: slotEnd}}}),
	}}
	uc := newTestUseCase(spots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 100, SpotID: 7, StartTime: reqStart, EndTime: reqEnd,
	})
	assert.ErrorIs(t, err, ErrOwnSpot)
}

func TestExecute_SpotWithoutAvailabilityIsClosed(t *testing.T) {
	uc := newTestUseCase(&fakeSpotRepo{spots: map[int64]*domain.Spot{7: activeSpot(nil)}}, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 42, SpotID: 7, StartTime: reqStart, EndTime: reqEnd,
	})
	assert.ErrorIs(t, err, ErrSpotClosed)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Specific{Slots: []domain.SpecificSlot{{Start: slotStart, End: slotEnd}}}),
	}}
	uc := newTestUseCase(spots, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DriverID:  42,
		SpotID:    7,
		StartTime: slotEnd.Add(-time.Hour),
		EndTime:   slotEnd.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_CrossMidnightOnRecurringSpot(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Recurring{Entries: []domain.RecurringEntry{
			{Weekday: time.Monday, Start: mustTimeOfDay(t, "00:00"), End: mustTimeOfDay(t, "23:59")},
		}}),
	}}
	uc := newTestUseCase(spots, &fakeReservationRepo{})

	monday := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 42, SpotID: 7, StartTime: monday, EndTime: monday.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrCrossMidnight)
}

func TestExecute_OverlapConflict(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Specific{Slots: []domain.SpecificSlot{{Start: slotStart, End: slotEnd}}}),
	}}
	reservations := &fakeReservationRepo{overlaps: 1}
	uc := newTestUseCase(spots, reservations)

	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 42, SpotID: 7, StartTime: reqStart, EndTime: reqEnd,
	})
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Nil(t, reservations.created)
}

func TestExecute_ExclusionConstraintBackstop(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{
		7: activeSpot(domain.Specific{Slots: []domain.SpecificSlot{{Start: slotStart, End: slotEnd}}}),
	}}
	// The overlap count sees nothing, but the insert loses the race and the
	// database constraint rejects it.
	reservations := &fakeReservationRepo{createErr: reservationRepo.ErrOverlapConflict}
	uc := newTestUseCase(spots, reservations)

	_, err := uc.Execute(context.Background(), &Request{
		DriverID: 42, SpotID: 7, StartTime: reqStart, EndTime: reqEnd,
	})
	assert.ErrorIs(t, err, ErrOverlap)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(&fakeSpotRepo{spots: map[int64]*domain.Spot{}}, &fakeReservationRepo{})

	t.Run("start must be before end", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			DriverID: 42, SpotID: 7, StartTime: reqEnd, EndTime: reqStart,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("start cannot be in the past", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			DriverID:  42,
			SpotID:    7,
			StartTime: testNow.Add(-time.Hour),
			EndTime:   testNow.Add(time.Hour),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ids must be positive", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			DriverID: 0, SpotID: 7, StartTime: reqStart, EndTime: reqEnd,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
