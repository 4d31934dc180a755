package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	spotRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/spot"
	"github.com/AmeenKassem/EasyPark/internal/integrations/userservice"
	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
	"github.com/AmeenKassem/EasyPark/pkg/ptr"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	byID          map[int64]*reservationRepo.WithSpot
	statusUpdates []string
	updateErr     error
	intervals     []reservationRepo.Interval
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*reservationRepo.WithSpot, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeReservationRepo) ListByDriver(context.Context, int64) ([]*reservationRepo.WithSpot, error) {
	return nil, nil
}

func (f *fakeReservationRepo) ListByOwner(context.Context, int64) ([]*reservationRepo.WithSpot, error) {
	return nil, nil
}

func (f *fakeReservationRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.ReservationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, string(from)+"->"+string(to))
	if res, ok := f.byID[id]; ok {
		res.Status = to
	}
	return nil
}

func (f *fakeReservationRepo) FindBlockingIntervals(context.Context, int64, time.Time, time.Time) ([]reservationRepo.Interval, error) {
	return f.intervals, nil
}

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

type fakeUserClient struct {
	users map[int64]*userservice.User
	err   error
}

func (f *fakeUserClient) GetUserWithGracefulDegradation(_ context.Context, id int64) (*userservice.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, userservice.ErrServiceDegraded
}

type fakeMailer struct {
	sent   []string
	bodies []string
}

func (f *fakeMailer) Send(_, toAddr, _, plainText, _ string) error {
	f.sent = append(f.sent, toAddr)
	f.bodies = append(f.bodies, plainText)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func pendingReservation() *reservationRepo.WithSpot {
	return &reservationRepo.WithSpot{
		Reservation: domain.Reservation{
			ID:         1,
			SpotID:     7,
			DriverID:   42,
			StartTime:  testNow.Add(24 * time.Hour),
			EndTime:    testNow.Add(26 * time.Hour),
			Status:     domain.StatusPending,
			TotalPrice: 20,
		},
		SpotLocation: "Herzl 12, Tel Aviv",
		SpotOwnerID:  100,
	}
}

func newTestService(repo *fakeReservationRepo, spots *fakeSpotRepo, mail *fakeMailer) *Service {
	return NewService(
		repo,
		spots,
		&fakeUserClient{err: userservice.ErrServiceDegraded},
		mail,
		fixedClock{now: testNow},
		stubLogger{},
	)
}

func TestUpdateStatus_ApprovesPending(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: pendingReservation()}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 100, Status: "APPROVED",
	})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	assert.Equal(t, []string{"PENDING->APPROVED"}, repo.statusUpdates)
}

func TestUpdateStatus_RejectsPending(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: pendingReservation()}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 100, Status: "REJECTED",
	})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.Status)
}

func TestUpdateStatus_OnlyDecisionStatuses(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: pendingReservation()}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 100, Status: "CANCELLED",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 100, Status: "DONE",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_OwnershipRequired(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: pendingReservation()}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 999, Status: "APPROVED",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpdateStatus_NonPendingNotDecidable(t *testing.T) {
	res := pendingReservation()
	res.Status = domain.StatusApproved
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: res}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 100, Status: "REJECTED",
	})
	assert.ErrorIs(t, err, ErrNotDecidable)
}

func TestUpdateStatus_ConcurrentWriterLoses(t *testing.T) {
	repo := &fakeReservationRepo{
		byID:      map[int64]*reservationRepo.WithSpot{1: pendingReservation()},
		updateErr: reservationRepo.ErrStatusChanged,
	}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 1, OwnerID: 100, Status: "APPROVED",
	})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}}, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
		ReservationID: 5, OwnerID: 100, Status: "APPROVED",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_DriverCancelsBeforeStart(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: pendingReservation()}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	resp, err := svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 1, DriverID: 42})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, []string{"PENDING->CANCELLED"}, repo.statusUpdates)
}

func TestCancel_IdempotentOnTerminalStates(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusRejected} {
		res := pendingReservation()
		res.Status = status
		repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: res}}
		svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

		resp, err := svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 1, DriverID: 42})
		require.NoError(t, err, "from %s", status)
		assert.Equal(t, string(status), resp.Status)
		assert.Empty(t, repo.statusUpdates, "no write expected from %s", status)
	}
}

func TestCancel_AfterStartFails(t *testing.T) {
	res := pendingReservation()
	res.StartTime = testNow.Add(-time.Hour)
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: res}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 1, DriverID: 42})
	assert.ErrorIs(t, err, ErrCancelAfterStart)
}

func TestCancel_OnlyDriverMayCancel(t *testing.T) {
	repo := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: pendingReservation()}}
	svc := newTestService(repo, &fakeSpotRepo{}, &fakeMailer{})

	_, err := svc.Cancel(context.Background(), &models.CancelRequest{ReservationID: 1, DriverID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestBusyIntervals_DefaultsToOneYearWindow(t *testing.T) {
	repo := &fakeReservationRepo{
		byID: map[int64]*reservationRepo.WithSpot{},
		intervals: []reservationRepo.Interval{
			{Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)},
		},
	}
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{7: {ID: 7, Active: true}}}
	svc := newTestService(repo, spots, &fakeMailer{})

	resp, err := svc.BusyIntervals(context.Background(), &models.BusyIntervalsRequest{SpotID: 7})
	require.NoError(t, err)

	assert.Equal(t, testNow.Add(-defaultBusyWindow), resp.From)
	assert.Equal(t, testNow.Add(defaultBusyWindow), resp.To)
	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, testNow.Add(time.Hour), resp.Intervals[0].StartTime)
}

func TestBusyIntervals_InvalidRange(t *testing.T) {
	spots := &fakeSpotRepo{spots: map[int64]*domain.Spot{7: {ID: 7}}}
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}}, spots, &fakeMailer{})

	from := testNow.Add(time.Hour)
	to := testNow
	_, err := svc.BusyIntervals(context.Background(), &models.BusyIntervalsRequest{
		SpotID: 7,
		From:   ptr.Ptr(from),
		To:     ptr.Ptr(to),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBusyIntervals_SpotMustExist(t *testing.T) {
	svc := newTestService(&fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}}, &fakeSpotRepo{spots: map[int64]*domain.Spot{}}, &fakeMailer{})

	_, err := svc.BusyIntervals(context.Background(), &models.BusyIntervalsRequest{SpotID: 99})
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestNotifyApproval_SendsEmail(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(
		&fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}},
		&fakeSpotRepo{},
		&fakeUserClient{users: map[int64]*userservice.User{
			42:  {ID: 42, Name: "Dana", Email: "dana@example.com"},
			100: {ID: 100, Name: "Yossi"},
		}},
		mail,
		fixedClock{now: testNow},
		stubLogger{},
	)

	svc.notifyApproval(pendingReservation())
	assert.Equal(t, []string{"dana@example.com"}, mail.sent)
	require.Len(t, mail.bodies, 1)
	assert.Contains(t, mail.bodies[0], "approved by Yossi")
}

func TestNotifyApproval_OwnerLookupFailureStillSends(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(
		&fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}},
		&fakeSpotRepo{},
		&fakeUserClient{users: map[int64]*userservice.User{
			42: {ID: 42, Name: "Dana", Email: "dana@example.com"},
		}},
		mail,
		fixedClock{now: testNow},
		stubLogger{},
	)

	svc.notifyApproval(pendingReservation())
	assert.Equal(t, []string{"dana@example.com"}, mail.sent)
	require.Len(t, mail.bodies, 1)
	assert.Contains(t, mail.bodies[0], "approved by the owner")
}

func TestNotifyApproval_SkipsWithoutEmail(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(
		&fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}},
		&fakeSpotRepo{},
		&fakeUserClient{users: map[int64]*userservice.User{
			42: {ID: 42, Name: "Dana"},
		}},
		mail,
		fixedClock{now: testNow},
		stubLogger{},
	)

	svc.notifyApproval(pendingReservation())
	assert.Empty(t, mail.sent)
}
