package services

import (
	"context"
	"errors"

	"github.com/gapfarm/portal/api/internal/logger"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/repository"
	"github.com/gapfarm/portal/api/internal/validation"
)

// Farm service errors.
var (
	ErrFarmNotFound     = errors.New("farm not found")
	ErrDetailNotFound   = errors.New("planting detail not found")
	ErrFarmerNotFound   = errors.New("farmer profile not found")
	ErrNotFarmOwner     = errors.New("farm does not belong to this farmer")
	ErrNoCompleteDetail = errors.New("at least one complete planting detail is required")
	ErrMooOutOfRange    = errors.New("moo must be between 0 and 1000")
	ErrLastDetail       = errors.New("a farm must keep at least one planting detail")
)

// FarmService defines the interface for rubber farm business logic. All
// farmer-scoped calls take the caller's user id and enforce ownership; edits
// carry the version the caller loaded and fail with ConflictError when the
// stored record has moved on.
type FarmService interface {
	// CreateFarm registers a farm with its planting details for the farmer
	// owned by userID.
	CreateFarm(ctx context.Context, userID uint, farm *models.RubberFarm) (*models.RubberFarm, error)

	// GetFarm returns one farm with details and the owning farmer attached.
	GetFarm(ctx context.Context, id uint) (*models.RubberFarm, error)

	// ListFarms returns the farms of the farmer owned by userID.
	ListFarms(ctx context.Context, userID uint) ([]models.RubberFarm, error)

	// UpdateFarm applies an edit guarded by the version the caller loaded.
	UpdateFarm(ctx context.Context, userID uint, farm *models.RubberFarm) (*models.RubberFarm, error)

	// AddDetail appends a planting detail to an owned farm.
	AddDetail(ctx context.Context, userID uint, detail *models.PlantingDetail) (*models.PlantingDetail, error)

	// UpdateDetail applies a version-guarded edit to a planting detail.
	UpdateDetail(ctx context.Context, userID uint, detail *models.PlantingDetail) (*models.PlantingDetail, error)

	// DeleteDetail removes a planting detail, never the last one.
	DeleteDetail(ctx context.Context, userID, detailID uint) error
}

type farmService struct {
	farms   repository.FarmRepository
	farmers repository.FarmerRepository
	log     *logger.Logger
}

// NewFarmService creates a new instance of FarmService.
func NewFarmService(farms repository.FarmRepository, farmers repository.FarmerRepository, log *logger.Logger) FarmService {
	return &farmService{farms: farms, farmers: farmers, log: log}
}

func (s *farmService) ownerFarmer(ctx context.Context, userID uint) (*models.Farmer, error) {
	farmer, err := s.farmers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}

// ownedFarm loads a farm and verifies it belongs to the caller's farmer
// profile.
func (s *farmService) ownedFarm(ctx context.Context, userID, farmID uint) (*models.RubberFarm, *models.Farmer, error) {
	farmer, err := s.ownerFarmer(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	farm, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		return nil, nil, err
	}
	if farm == nil {
		return nil, nil, ErrFarmNotFound
	}
	if farm.FarmerID != farmer.ID {
		return nil, nil, ErrNotFarmOwner
	}
	return farm, farmer, nil
}

func validateFarm(farm *models.RubberFarm) error {
	if !validation.IsMoo(farm.Moo) {
		return ErrMooOutOfRange
	}

	complete := 0
	for _, d := range farm.PlantingDetails {
		if d.IsComplete() {
			complete++
		}
	}
	if complete == 0 {
		return ErrNoCompleteDetail
	}
	return nil
}

func (s *farmService) CreateFarm(ctx context.Context, userID uint, farm *models.RubberFarm) (*models.RubberFarm, error) {
	farmer, err := s.ownerFarmer(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validateFarm(farm); err != nil {
		return nil, err
	}

	// Incomplete extra rows are dropped rather than rejected; only the
	// complete details are persisted.
	kept := farm.PlantingDetails[:0]
	for _, d := range farm.PlantingDetails {
		if d.IsComplete() {
			kept = append(kept, d)
		}
	}
	farm.PlantingDetails = kept
	farm.FarmerID = farmer.ID

	if err := s.farms.Create(ctx, farm); err != nil {
		s.log.Error("Failed to create farm", err, map[string]interface{}{"farmer_id": farmer.ID})
		return nil, err
	}

	s.log.Info("Farm registered", map[string]interface{}{
		"farm_id":   farm.ID,
		"farmer_id": farmer.ID,
		"details":   len(farm.PlantingDetails),
	})
	return farm, nil
}

func (s *farmService) GetFarm(ctx context.Context, id uint) (*models.RubberFarm, error) {
	farm, err := s.farms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, ErrFarmNotFound
	}

	// The owning farmer is an enrichment only; a lookup failure degrades to
	// a farm without the embedded profile.
	farmer, err := s.farmers.FindByID(ctx, farm.FarmerID)
	if err != nil {
		s.log.Warn("Failed to load farmer for farm", map[string]interface{}{
			"farm_id":   farm.ID,
			"farmer_id": farm.FarmerID,
			"error":     err.Error(),
		})
	} else {
		farm.Farmer = farmer
	}
	return farm, nil
}

func (s *farmService) ListFarms(ctx context.Context, userID uint) ([]models.RubberFarm, error) {
	farmer, err := s.ownerFarmer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.farms.ListByFarmer(ctx, farmer.ID)
}

func (s *farmService) UpdateFarm(ctx context.Context, userID uint, farm *models.RubberFarm) (*models.RubberFarm, error) {
	current, _, err := s.ownedFarm(ctx, userID, farm.ID)
	if err != nil {
		return nil, err
	}

	if !validation.IsMoo(farm.Moo) {
		return nil, ErrMooOutOfRange
	}

	farm.FarmerID = current.FarmerID
	ok, err := s.farms.Update(ctx, farm, farm.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.farmConflict(ctx, farm.ID)
	}

	s.log.Info("Farm updated", map[string]interface{}{
		"farm_id": farm.ID,
		"version": farm.Version,
	})
	farm.PlantingDetails = current.PlantingDetails
	return farm, nil
}

// farmConflict distinguishes a stale version from a deleted farm by
// re-fetching and, in the conflict case, hands back the current record.
func (s *farmService) farmConflict(ctx context.Context, farmID uint) error {
	current, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrFarmNotFound
	}

	s.log.Warn("Farm edit rejected on stale version", map[string]interface{}{
		"farm_id":         farmID,
		"current_version": current.Version,
	})
	return &ConflictError{Current: current}
}

func (s *farmService) AddDetail(ctx context.Context, userID uint, detail *models.PlantingDetail) (*models.PlantingDetail, error) {
	if _, _, err := s.ownedFarm(ctx, userID, detail.RubberFarmID); err != nil {
		return nil, err
	}
	if !detail.IsComplete() {
		return nil, ErrNoCompleteDetail
	}

	if err := s.farms.CreateDetail(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *farmService) UpdateDetail(ctx context.Context, userID uint, detail *models.PlantingDetail) (*models.PlantingDetail, error) {
	current, err := s.farms.FindDetailByID(ctx, detail.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrDetailNotFound
	}
	if _, _, err := s.ownedFarm(ctx, userID, current.RubberFarmID); err != nil {
		return nil, err
	}
	if !detail.IsComplete() {
		return nil, ErrNoCompleteDetail
	}

	detail.RubberFarmID = current.RubberFarmID
	ok, err := s.farms.UpdateDetail(ctx, detail, detail.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := s.farms.FindDetailByID(ctx, detail.ID)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, ErrDetailNotFound
		}
		s.log.Warn("Planting detail edit rejected on stale version", map[string]interface{}{
			"detail_id":       detail.ID,
			"current_version": fresh.Version,
		})
		return nil, &ConflictError{Current: fresh}
	}
	return detail, nil
}

func (s *farmService) DeleteDetail(ctx context.Context, userID, detailID uint) error {
	current, err := s.farms.FindDetailByID(ctx, detailID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrDetailNotFound
	}

	farm, _, err := s.ownedFarm(ctx, userID, current.RubberFarmID)
	if err != nil {
		return err
	}
	if len(farm.PlantingDetails) <= 1 {
		return ErrLastDetail
	}

	return s.farms.DeleteDetail(ctx, detailID)
}
