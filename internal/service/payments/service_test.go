package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	paymentRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/payment"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	"github.com/AmeenKassem/EasyPark/internal/service/payments/models"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakePaymentRepo struct {
	created *domain.Payment
	err     error
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.ID = 1
	p.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.created = p
	return p, nil
}

func (f *fakePaymentRepo) ListByDriver(context.Context, int64) ([]*paymentRepo.WithReservation, error) {
	return nil, nil
}

func (f *fakePaymentRepo) ListByOwner(context.Context, int64) ([]*paymentRepo.WithReservation, error) {
	return nil, nil
}

type fakeReservationRepo struct {
	byID map[int64]*reservationRepo.WithSpot
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*reservationRepo.WithSpot, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func approvedReservation() *reservationRepo.WithSpot {
	return &reservationRepo.WithSpot{
		Reservation: domain.Reservation{
			ID:         1,
			SpotID:     7,
			DriverID:   42,
			Status:     domain.StatusApproved,
			TotalPrice: 25.50,
		},
		SpotLocation: "Herzl 12, Tel Aviv",
		SpotOwnerID:  100,
	}
}

func newTestService(payments *fakePaymentRepo, reservations *fakeReservationRepo) *Service {
	return NewService(payments, reservations, fixedClock{now: testNow}, stubLogger{})
}

func TestPay_SettlesApprovedReservation(t *testing.T) {
	payments := &fakePaymentRepo{}
	reservations := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: approvedReservation()}}
	svc := newTestService(payments, reservations)

	resp, err := svc.Pay(context.Background(), &models.PayRequest{ReservationID: 1, DriverID: 42})
	require.NoError(t, err)

	assert.Equal(t, "PAID", resp.Status)
	assert.InDelta(t, 25.50, resp.Amount, 1e-9)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, testNow, *resp.PaidAt)

	require.NotNil(t, payments.created)
	assert.Equal(t, domain.DefaultProvider, payments.created.Provider)
}

func TestPay_OnlyDriverMayPay(t *testing.T) {
	reservations := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: approvedReservation()}}
	svc := newTestService(&fakePaymentRepo{}, reservations)

	_, err := svc.Pay(context.Background(), &models.PayRequest{ReservationID: 1, DriverID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestPay_OnlyApprovedIsPayable(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusPending, domain.StatusRejected, domain.StatusCancelled} {
		res := approvedReservation()
		res.Status = status
		reservations := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: res}}
		svc := newTestService(&fakePaymentRepo{}, reservations)

		_, err := svc.Pay(context.Background(), &models.PayRequest{ReservationID: 1, DriverID: 42})
		assert.ErrorIs(t, err, ErrNotApproved, "status %s", status)
	}
}

func TestPay_DoublePaymentConflicts(t *testing.T) {
	payments := &fakePaymentRepo{err: paymentRepo.ErrAlreadyPaid}
	reservations := &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{1: approvedReservation()}}
	svc := newTestService(payments, reservations)

	_, err := svc.Pay(context.Background(), &models.PayRequest{ReservationID: 1, DriverID: 42})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestPay_ReservationNotFound(t *testing.T) {
	svc := newTestService(&fakePaymentRepo{}, &fakeReservationRepo{byID: map[int64]*reservationRepo.WithSpot{}})

	_, err := svc.Pay(context.Background(), &models.PayRequest{ReservationID: 9, DriverID: 42})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
