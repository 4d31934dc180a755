package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	paymentRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/payment"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	"github.com/AmeenKassem/EasyPark/internal/service/payments/models"
	"github.com/AmeenKassem/EasyPark/pkg/ptr"
)

// Service records payments against approved reservations. Settlement is
// immediate: payments are written as PAID without an external rail.
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates a payments service.
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Pay settles an approved reservation for its computed total. Only the
// reservation's driver may pay, and only once; the unique constraint on the
// payments table backs the only-once rule under concurrency.
func (s *Service) Pay(ctx context.Context, req *models.PayRequest) (*models.PaymentResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Pay: repository error for reservation=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	if res.DriverID != req.DriverID {
		s.logger.Warn("Pay: user=%d is not the driver of reservation=%d", req.DriverID, req.ReservationID)
		return nil, ErrAccessDenied
	}
	if res.Status != domain.StatusApproved {
		s.logger.Warn("Pay: reservation=%d is %s, only approved reservations are payable", res.ID, res.Status)
		return nil, ErrNotApproved
	}

	now := s.timeProvider.Now()
	payment := &domain.Payment{
		ReservationID: res.ID,
		Amount:        res.TotalPrice,
		Currency:      domain.DefaultCurrency,
		Provider:      domain.DefaultProvider,
		Status:        domain.PaymentPaid,
		PaidAt:        ptr.Ptr(now),
	}

	if _, err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, paymentRepo.ErrAlreadyPaid) {
			s.logger.Warn("Pay: reservation=%d already paid", res.ID)
			return nil, ErrAlreadyPaid
		}
		s.logger.Error("Pay: repository error creating payment for reservation=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: Pay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Pay: reservation=%d settled for %.2f %s by driver=%d",
		res.ID, payment.Amount, payment.Currency, req.DriverID)
	return models.FromDomainPayment(payment), nil
}

// ListForDriver returns the driver's payments, newest first.
func (s *Service) ListForDriver(ctx context.Context, driverID int64) (*models.PaymentListResponse, error) {
	rows, err := s.paymentRepo.ListByDriver(ctx, driverID)
	if err != nil {
		s.logger.Error("ListForDriver: repository error for driver=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: ListForDriver - repository error: %v", ErrInternal, err)
	}
	return models.FromRepoPayments(rows), nil
}

// ListForOwner returns payments received on the owner's spots.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64) (*models.PaymentListResponse, error) {
	rows, err := s.paymentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}
	return models.FromRepoPayments(rows), nil
}
