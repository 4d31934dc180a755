package reports

import (
	"context"
	"fmt"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	"github.com/AmeenKassem/EasyPark/internal/service/reports/models"
)

// Service aggregates reservation activity into owner and driver reports.
type Service struct {
	reservationRepo ReservationRepository
	spotRepo        SpotRepository
	logger          Logger
}

// NewService creates a reports service.
func NewService(reservationRepo ReservationRepository, spotRepo SpotRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		logger:          logger,
	}
}

// OwnerReport summarizes activity across all of the owner's spots.
func (s *Service) OwnerReport(ctx context.Context, ownerID int64) (*models.OwnerReportResponse, error) {
	counts, err := s.reservationRepo.CountByStatusForOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("OwnerReport: count error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: OwnerReport - repository error: %v", ErrInternal, err)
	}

	revenue, err := s.reservationRepo.SumApprovedTotalForOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("OwnerReport: revenue error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: OwnerReport - repository error: %v", ErrInternal, err)
	}

	spots, err := s.spotRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("OwnerReport: spot listing error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: OwnerReport - repository error: %v", ErrInternal, err)
	}

	statusCounts := toStatusCounts(counts)
	return &models.OwnerReportResponse{
		OwnerID:           ownerID,
		SpotCount:         int64(len(spots)),
		Reservations:      statusCounts,
		TotalReservations: statusCounts.Total(),
		ApprovedRevenue:   revenue,
		Currency:          domain.DefaultCurrency,
	}, nil
}

// DriverReport summarizes the driver's reservation activity.
func (s *Service) DriverReport(ctx context.Context, driverID int64) (*models.DriverReportResponse, error) {
	counts, err := s.reservationRepo.CountByStatusForDriver(ctx, driverID)
	if err != nil {
		s.logger.Error("DriverReport: count error for driver=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: DriverReport - repository error: %v", ErrInternal, err)
	}

	spend, err := s.reservationRepo.SumApprovedTotalForDriver(ctx, driverID)
	if err != nil {
		s.logger.Error("DriverReport: spend error for driver=%d: %v", driverID, err)
		return nil, fmt.Errorf("%w: DriverReport - repository error: %v", ErrInternal, err)
	}

	statusCounts := toStatusCounts(counts)
	return &models.DriverReportResponse{
		DriverID:          driverID,
		Reservations:      statusCounts,
		TotalReservations: statusCounts.Total(),
		ApprovedSpend:     spend,
		Currency:          domain.DefaultCurrency,
	}, nil
}

func toStatusCounts(counts map[domain.ReservationStatus]int64) models.StatusCounts {
	return models.StatusCounts{
		Pending:   counts[domain.StatusPending],
		Approved:  counts[domain.StatusApproved],
		Rejected:  counts[domain.StatusRejected],
		Cancelled: counts[domain.StatusCancelled],
	}
}
