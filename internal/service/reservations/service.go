package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	spotRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/spot"
	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

// defaultBusyWindow bounds the busy-intervals query when the caller omits
// the range: one year back and one year forward from now.
const defaultBusyWindow = 365 * 24 * time.Hour

// notifyTimeout bounds the background approval notification.
const notifyTimeout = 10 * time.Second

// Service handles reservation listings and lifecycle transitions.
type Service struct {
	reservationRepo ReservationRepository
	spotRepo        SpotRepository
	userClient      UserServiceClient
	mailer          Mailer
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates a reservations service.
func NewService(
	reservationRepo ReservationRepository,
	spotRepo SpotRepository,
	userClient UserServiceClient,
	mailer Mailer,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		userClient:      userClient,
		mailer:          mailer,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// ListForDriver returns the driver's reservations, newest start first.
func (s *Service) ListForDriver(ctx context.Context, driverID int64) (*models.ReservationListResponse, error) {
	rows, err := s.reservationRepo.ListByDriver(ctx, driverID)
	if err != nil {
		s.logger.Error("ListForDriver: repository error for driver=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: ListForDriver - repository error: %v", ErrInternal, err)
	}
	return models.FromRepoReservations(rows), nil
}

// ListForOwner returns reservations on all of the owner's spots.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64) (*models.ReservationListResponse, error) {
	rows, err := s.reservationRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}
	return models.FromRepoReservations(rows), nil
}

// UpdateStatus applies the owner's decision on a pending reservation. The
// caller must own the booked spot, the target must be APPROVED or REJECTED,
// and the reservation must still be PENDING. An approval triggers a
// best-effort email to the driver; notification failures never fail the
// decision.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	target, ok := domain.ParseReservationStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status=%q for reservation=%d", req.Status, req.ReservationID)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if target != domain.StatusApproved && target != domain.StatusRejected {
		s.logger.Warn("UpdateStatus: status=%s is not a decision for reservation=%d", target, req.ReservationID)
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", ErrInvalidStatus)
	}

	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if res.SpotOwnerID != req.OwnerID {
		s.logger.Warn("UpdateStatus: user=%d does not own spot of reservation=%d", req.OwnerID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if err := res.Decide(target); err != nil {
		s.logger.Warn("UpdateStatus: reservation=%d is %s, cannot decide", req.ReservationID, res.Status)
		return nil, ErrNotDecidable
	}

	if err := s.reservationRepo.UpdateStatusFrom(ctx, res.ID, domain.StatusPending, target); err != nil {
		if errors.Is(err, reservationRepo.ErrStatusChanged) {
			s.logger.Warn("UpdateStatus: lost status race for reservation=%d", res.ID)
			return nil, ErrStatusConflict
		}
		s.logger.Error("UpdateStatus: update error for reservation=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - update error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: reservation=%d decided %s by owner=%d", res.ID, target, req.OwnerID)

	if target == domain.StatusApproved {
		go s.notifyApproval(res)
	}

	response := models.FromRepoReservation(res)
	return &response, nil
}

// Cancel applies the driver's cancellation. Cancelling an already CANCELLED
// or REJECTED reservation is an idempotent success; active reservations can
// only be cancelled strictly before their start time.
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if res.DriverID != req.DriverID {
		s.logger.Warn("Cancel: user=%d is not the driver of reservation=%d", req.DriverID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	previous := res.Status
	changed, err := res.CancelAt(s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("Cancel: reservation=%d cannot be cancelled: %v", res.ID, err)
		return nil, ErrCancelAfterStart
	}

	if changed {
		if err := s.reservationRepo.UpdateStatusFrom(ctx, res.ID, previous, domain.StatusCancelled); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) {
				s.logger.Warn("Cancel: lost status race for reservation=%d", res.ID)
				return nil, ErrStatusConflict
			}
			s.logger.Error("Cancel: update error for reservation=%d: %v", res.ID, err)
			return nil, fmt.Errorf("%w: Cancel - update error: %v", ErrInternal, err)
		}
		s.logger.Info("Cancel: reservation=%d cancelled by driver=%d", res.ID, req.DriverID)
	} else {
		s.logger.Info("Cancel: reservation=%d already %s, idempotent no-op", res.ID, previous)
	}

	response := models.FromRepoReservation(res)
	return &response, nil
}

// BusyIntervals returns the occupied ranges of a spot within the requested
// window, ordered by start time.
func (s *Service) BusyIntervals(ctx context.Context, req *models.BusyIntervalsRequest) (*models.BusyIntervalsResponse, error) {
	now := s.timeProvider.Now()
	from := now.Add(-defaultBusyWindow)
	to := now.Add(defaultBusyWindow)
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	if !from.Before(to) {
		s.logger.Warn("BusyIntervals: from=%v is not before to=%v for spot=%d", from, to, req.SpotID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if _, err := s.spotRepo.GetByID(ctx, req.SpotID); err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			return nil, ErrSpotNotFound
		}
		s.logger.Error("BusyIntervals: spot repository error for spot=%d: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: BusyIntervals - repository error: %v", ErrInternal, err)
	}

	intervals, err := s.reservationRepo.FindBlockingIntervals(ctx, req.SpotID, from, to)
	if err != nil {
		s.logger.Error("BusyIntervals: repository error for spot=%d: %v", req.SpotID, err)
		return nil, fmt.Errorf("%w: BusyIntervals - repository error: %v", ErrInternal, err)
	}

	out := make([]models.IntervalResponse, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, models.IntervalResponse{StartTime: iv.Start, EndTime: iv.End})
	}
	return &models.BusyIntervalsResponse{
		SpotID:    req.SpotID,
		From:      from,
		To:        to,
		Intervals: out,
	}, nil
}

// notifyApproval emails the driver about an approved reservation. It runs
// in the background with its own context and swallows all failures.
func (s *Service) notifyApproval(res *reservationRepo.WithSpot) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	user, err := s.userClient.GetUserWithGracefulDegradation(ctx, res.DriverID)
	if err != nil {
		s.logger.Warn("notifyApproval: skipping email for reservation=%d: %v", res.ID, err)
		return
	}
	if user.Email == "" {
		s.logger.Info("notifyApproval: driver=%d has no email, skipping", res.DriverID)
		return
	}

	// The owner profile is optional context; the email goes out either way.
	ownerName := "the owner"
	if owner, err := s.userClient.GetUserWithGracefulDegradation(ctx, res.SpotOwnerID); err != nil {
		s.logger.Warn("notifyApproval: owner=%d lookup failed for reservation=%d: %v", res.SpotOwnerID, res.ID, err)
	} else if owner.Name != "" {
		ownerName = owner.Name
	}

	subject := "Your parking reservation was approved"
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour reservation at %s from %s to %s was approved by %s.\n\nTotal: %.2f %s.\n",
		user.Name, res.SpotLocation,
		res.StartTime.Format(time.RFC1123), res.EndTime.Format(time.RFC1123),
		ownerName, res.TotalPrice, domain.DefaultCurrency,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your reservation at <strong>%s</strong> from %s to %s was approved by %s.</p><p>Total: %.2f %s.</p>",
		user.Name, res.SpotLocation,
		res.StartTime.Format(time.RFC1123), res.EndTime.Format(time.RFC1123),
		ownerName, res.TotalPrice, domain.DefaultCurrency,
	)

	if err := s.mailer.Send(user.Name, user.Email, subject, plain, html); err != nil {
		s.logger.Warn("notifyApproval: email failed for reservation=%d: %v", res.ID, err)
		return
	}
	s.logger.Info("notifyApproval: approval email sent for reservation=%d", res.ID)
}
