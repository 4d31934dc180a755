package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	spotRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/spot"
)

// UseCase creates a reservation: availability check, overlap check, price
// computation, insert. The checks and the insert run in one serializable
// transaction with the spot row locked, so two requests for the same spot
// cannot both pass the overlap check.
type UseCase struct {
	reservationRepo ReservationRepository
	spotRepo        SpotRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case with the production clock.
func NewUseCase(
	reservationRepo ReservationRepository,
	spotRepo SpotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute creates a PENDING reservation for the driver.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: driver=%d, spot=%d, range=[%s, %s)",
		req.DriverID, req.SpotID,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	if req.StartTime.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateReservation: startTime is in the past for driver=%d", req.DriverID)
		return nil, fmt.Errorf("%w: startTime must not be in the past", ErrInvalidInput)
	}

	var (
		result       *domain.Reservation
		spotLocation string
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		spot, err := uc.spotRepo.GetByID(txCtx, req.SpotID)
		if err != nil {
			if errors.Is(err, spotRepo.ErrSpotNotFound) {
				uc.logger.Warn("CreateReservation: spot=%d not found", req.SpotID)
				return ErrSpotNotFound
			}
			uc.logger.Error("CreateReservation: failed to get spot=%d: %v", req.SpotID, err)
			return fmt.Errorf("%w: failed to get spot: %v", ErrInternal, err)
		}

		if !spot.Active {
			uc.logger.Warn("CreateReservation: spot=%d is inactive", spot.ID)
			return ErrSpotInactive
		}
		if spot.IsOwnedBy(req.DriverID) {
			uc.logger.Warn("CreateReservation: driver=%d owns spot=%d", req.DriverID, spot.ID)
			return ErrOwnSpot
		}

		if err := domain.CheckAvailability(spot.Availability, req.StartTime, req.EndTime); err != nil {
			uc.logger.Warn("CreateReservation: spot=%d availability check failed: %v", spot.ID, err)
			return mapAvailabilityError(err)
		}

		overlaps, err := uc.reservationRepo.CountBlockingOverlaps(txCtx, spot.ID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateReservation: overlap check failed for spot=%d: %v", spot.ID, err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if overlaps > 0 {
			uc.logger.Warn("CreateReservation: spot=%d has %d blocking reservations in range", spot.ID, overlaps)
			return ErrOverlap
		}

		total, err := domain.ComputeTotal(spot.PricePerHour, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateReservation: price computation failed for spot=%d: %v", spot.ID, err)
			return fmt.Errorf("%w: price computation failed: %v", ErrInternal, err)
		}

		reservation := &domain.Reservation{
			SpotID:     spot.ID,
			DriverID:   req.DriverID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Status:     domain.StatusPending,
			TotalPrice: total,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// The exclusion constraint is the backstop when a competing
			// transaction slips past the overlap count.
			if errors.Is(err, reservationRepo.ErrOverlapConflict) {
				uc.logger.Warn("CreateReservation: spot=%d insert hit a blocking reservation: %v", spot.ID, err)
				return ErrOverlap
			}
			uc.logger.Error("CreateReservation: insert failed for spot=%d: %v", spot.ID, err)
			return fmt.Errorf("%w: insert failed: %v", ErrInternal, err)
		}

		result = created
		spotLocation = spot.Location
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: reservation=%d created, total=%.2f", result.ID, result.TotalPrice)
	return &Response{
		ID:           result.ID,
		SpotID:       result.SpotID,
		SpotLocation: spotLocation,
		DriverID:     result.DriverID,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		TotalPrice:   result.TotalPrice,
		CreatedAt:    result.CreatedAt,
	}, nil
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoAvailability):
		return ErrSpotClosed
	case errors.Is(err, domain.ErrCrossMidnight):
		return ErrCrossMidnight
	case errors.Is(err, domain.ErrOutsideAvailability):
		return ErrOutsideAvailability
	default:
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}
