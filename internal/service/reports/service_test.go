package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeenKassem/EasyPark/internal/domain"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fakeReservationRepo struct {
	ownerCounts  map[domain.ReservationStatus]int64
	driverCounts map[domain.ReservationStatus]int64
	ownerSum     float64
	driverSum    float64
	countErr     error
}

func (f *fakeReservationRepo) CountByStatusForOwner(ctx context.Context, ownerID int64) (map[domain.ReservationStatus]int64, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.ownerCounts, nil
}

func (f *fakeReservationRepo) CountByStatusForDriver(ctx context.Context, driverID int64) (map[domain.ReservationStatus]int64, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.driverCounts, nil
}

func (f *fakeReservationRepo) SumApprovedTotalForOwner(ctx context.Context, ownerID int64) (float64, error) {
	return f.ownerSum, nil
}

func (f *fakeReservationRepo) SumApprovedTotalForDriver(ctx context.Context, driverID int64) (float64, error) {
	return f.driverSum, nil
}

type fakeSpotRepo struct {
	spots []*domain.Spot
}

func (f *fakeSpotRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Spot, error) {
	return f.spots, nil
}

func TestOwnerReport(t *testing.T) {
	resRepo := &fakeReservationRepo{
		ownerCounts: map[domain.ReservationStatus]int64{
			domain.StatusPending:   2,
			domain.StatusApproved:  5,
			domain.StatusRejected:  1,
			domain.StatusCancelled: 3,
		},
		ownerSum: 412.50,
	}
	spotRepo := &fakeSpotRepo{spots: []*domain.Spot{{ID: 1}, {ID: 2}}}
	svc := NewService(resRepo, spotRepo, stubLogger{})

	report, err := svc.OwnerReport(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, int64(100), report.OwnerID)
	assert.Equal(t, int64(2), report.SpotCount)
	assert.Equal(t, int64(2), report.Reservations.Pending)
	assert.Equal(t, int64(5), report.Reservations.Approved)
	assert.Equal(t, int64(1), report.Reservations.Rejected)
	assert.Equal(t, int64(3), report.Reservations.Cancelled)
	assert.Equal(t, int64(11), report.TotalReservations)
	assert.Equal(t, 412.50, report.ApprovedRevenue)
	assert.Equal(t, domain.DefaultCurrency, report.Currency)
}

func TestOwnerReport_EmptyActivity(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, &fakeSpotRepo{}, stubLogger{})

	report, err := svc.OwnerReport(context.Background(), 100)
	require.NoError(t, err)

	assert.Zero(t, report.SpotCount)
	assert.Zero(t, report.TotalReservations)
	assert.Zero(t, report.ApprovedRevenue)
}

func TestDriverReport(t *testing.T) {
	resRepo := &fakeReservationRepo{
		driverCounts: map[domain.ReservationStatus]int64{
			domain.StatusApproved:  3,
			domain.StatusCancelled: 1,
		},
		driverSum: 75.25,
	}
	svc := NewService(resRepo, &fakeSpotRepo{}, stubLogger{})

	report, err := svc.DriverReport(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), report.DriverID)
	assert.Equal(t, int64(3), report.Reservations.Approved)
	assert.Equal(t, int64(1), report.Reservations.Cancelled)
	assert.Equal(t, int64(4), report.TotalReservations)
	assert.Equal(t, 75.25, report.ApprovedSpend)
}

func TestReports_RepositoryFailure(t *testing.T) {
	resRepo := &fakeReservationRepo{countErr: errors.New("connection reset")}
	svc := NewService(resRepo, &fakeSpotRepo{}, stubLogger{})

	_, err := svc.OwnerReport(context.Background(), 100)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.DriverReport(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInternal)
}
