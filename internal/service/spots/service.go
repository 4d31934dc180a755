package spots

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	spotRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/spot"
	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

// Service handles spot publication, edits, and search.
type Service struct {
	spotRepo        SpotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService creates a spots service.
func NewService(
	spotRepo SpotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		spotRepo:        spotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Create publishes a new spot for the owner.
func (s *Service) Create(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error) {
	if req.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if req.PricePerHour <= 0 {
		return nil, fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}

	availability, err := s.convertAvailability(req.Availability)
	if err != nil {
		return nil, err
	}

	spot := &domain.Spot{
		OwnerID:      req.OwnerID,
		Location:     req.Location,
		Lat:          req.Lat,
		Lng:          req.Lng,
		PricePerHour: req.PricePerHour,
		Covered:      req.Covered,
		Active:       req.Active,
		Availability: availability,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		_, err := s.spotRepo.Create(ctx, spot)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: spot=%d published by owner=%d", spot.ID, req.OwnerID)
	return models.FromDomainSpot(spot), nil
}

// Update edits a spot. Only the owner may edit, and edits are refused while
// an APPROVED reservation on the spot has not yet ended.
func (s *Service) Update(ctx context.Context, req *models.UpdateSpotRequest) (*models.SpotResponse, error) {
	if req.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if req.PricePerHour <= 0 {
		return nil, fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}

	availability, err := s.convertAvailability(req.Availability)
	if err != nil {
		return nil, err
	}

	var updated *domain.Spot
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		spot, err := s.spotRepo.GetByID(ctx, req.SpotID)
		if err != nil {
			return err
		}
		if !spot.IsOwnedBy(req.OwnerID) {
			return ErrAccessDenied
		}

		inUse, err := s.reservationRepo.ExistsApprovedNotEnded(ctx, spot.ID, s.timeProvider.Now())
		if err != nil {
			return err
		}
		if inUse {
			return ErrSpotInUse
		}

		spot.Location = req.Location
		spot.Lat = req.Lat
		spot.Lng = req.Lng
		spot.PricePerHour = req.PricePerHour
		spot.Covered = req.Covered
		spot.Active = req.Active

		replaceAvailability := req.Availability != nil
		if replaceAvailability {
			spot.Availability = availability
		}

		if err := s.spotRepo.Update(ctx, spot, replaceAvailability); err != nil {
			return err
		}
		updated = spot
		return nil
	})
	if err != nil {
		return nil, s.mapWriteError(err, "Update", req.SpotID, req.OwnerID)
	}

	s.logger.Info("Update: spot=%d updated by owner=%d", req.SpotID, req.OwnerID)
	return models.FromDomainSpot(updated), nil
}

// Delete removes a spot. Only the owner may delete, and deletion is refused
// while an APPROVED reservation on the spot has not yet ended.
func (s *Service) Delete(ctx context.Context, spotID, ownerID int64) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		spot, err := s.spotRepo.GetByID(ctx, spotID)
		if err != nil {
			return err
		}
		if !spot.IsOwnedBy(ownerID) {
			return ErrAccessDenied
		}

		inUse, err := s.reservationRepo.ExistsApprovedNotEnded(ctx, spot.ID, s.timeProvider.Now())
		if err != nil {
			return err
		}
		if inUse {
			return ErrSpotInUse
		}

		return s.spotRepo.Delete(ctx, spotID)
	})
	if err != nil {
		return s.mapWriteError(err, "Delete", spotID, ownerID)
	}

	s.logger.Info("Delete: spot=%d removed by owner=%d", spotID, ownerID)
	return nil
}

// GetByID returns a single spot.
func (s *Service) GetByID(ctx context.Context, spotID int64) (*models.SpotResponse, error) {
	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			return nil, ErrSpotNotFound
		}
		s.logger.Error("GetByID: repository error for spot=%d: %v", spotID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpot(spot), nil
}

// ListMine returns all spots owned by the caller.
func (s *Service) ListMine(ctx context.Context, ownerID int64) (*models.SpotListResponse, error) {
	spots, err := s.spotRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListMine: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpots(spots), nil
}

// Search returns active spots matching the public filter.
func (s *Service) Search(ctx context.Context, req *models.SearchSpotsRequest) (*models.SpotListResponse, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, fmt.Errorf("%w: minPrice must not exceed maxPrice", ErrInvalidInput)
	}

	spots, err := s.spotRepo.Search(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpots(spots), nil
}

func (s *Service) convertAvailability(req *models.AvailabilityRequest) (domain.Availability, error) {
	if req == nil {
		return nil, nil
	}
	availability, err := req.ToDomainAvailability()
	if err != nil {
		s.logger.Warn("convertAvailability: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return availability, nil
}

func (s *Service) mapWriteError(err error, op string, spotID, ownerID int64) error {
	switch {
	case errors.Is(err, spotRepo.ErrSpotNotFound):
		return ErrSpotNotFound
	case errors.Is(err, ErrAccessDenied):
		s.logger.Warn("%s: user=%d does not own spot=%d", op, ownerID, spotID)
		return ErrAccessDenied
	case errors.Is(err, ErrSpotInUse):
		s.logger.Warn("%s: spot=%d has an active approved reservation", op, spotID)
		return ErrSpotInUse
	case errors.Is(err, spotRepo.ErrSpotHasReservations):
		s.logger.Warn("%s: spot=%d has reservation history", op, spotID)
		return ErrSpotHasReservations
	default:
		s.logger.Error("%s: repository error for spot=%d: %v", op, spotID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
