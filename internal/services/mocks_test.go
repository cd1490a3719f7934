package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/repository"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	args := m.Called(ctx, role)
	if users := args.Get(0); users != nil {
		return users.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type mockFarmerRepository struct {
	mock.Mock
}

func (m *mockFarmerRepository) FindByID(ctx context.Context, id uint) (*models.Farmer, error) {
	args := m.Called(ctx, id)
	if farmer := args.Get(0); farmer != nil {
		return farmer.(*models.Farmer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFarmerRepository) FindByUserID(ctx context.Context, userID uint) (*models.Farmer, error) {
	args := m.Called(ctx, userID)
	if farmer := args.Get(0); farmer != nil {
		return farmer.(*models.Farmer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFarmerRepository) ExistsByCitizenID(ctx context.Context, citizenID string) (bool, error) {
	args := m.Called(ctx, citizenID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFarmerRepository) Create(ctx context.Context, user *models.User, farmer *models.Farmer) error {
	args := m.Called(ctx, user, farmer)
	return args.Error(0)
}

type mockFarmRepository struct {
	mock.Mock
}

func (m *mockFarmRepository) FindByID(ctx context.Context, id uint) (*models.RubberFarm, error) {
	args := m.Called(ctx, id)
	if farm := args.Get(0); farm != nil {
		return farm.(*models.RubberFarm), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFarmRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]models.RubberFarm, error) {
	args := m.Called(ctx, farmerID)
	if farms := args.Get(0); farms != nil {
		return farms.([]models.RubberFarm), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFarmRepository) ListAvailableForInspection(ctx context.Context) ([]models.RubberFarm, error) {
	args := m.Called(ctx)
	if farms := args.Get(0); farms != nil {
		return farms.([]models.RubberFarm), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFarmRepository) Create(ctx context.Context, farm *models.RubberFarm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *mockFarmRepository) Update(ctx context.Context, farm *models.RubberFarm, expectedVersion int) (bool, error) {
	args := m.Called(ctx, farm, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *mockFarmRepository) CreateDetail(ctx context.Context, detail *models.PlantingDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *mockFarmRepository) FindDetailByID(ctx context.Context, id uint) (*models.PlantingDetail, error) {
	args := m.Called(ctx, id)
	if detail := args.Get(0); detail != nil {
		return detail.(*models.PlantingDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFarmRepository) UpdateDetail(ctx context.Context, detail *models.PlantingDetail, expectedVersion int) (bool, error) {
	args := m.Called(ctx, detail, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *mockFarmRepository) DeleteDetail(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockInspectionRepository struct {
	mock.Mock
}

func (m *mockInspectionRepository) ListTypes(ctx context.Context) ([]models.InspectionType, error) {
	args := m.Called(ctx)
	if types := args.Get(0); types != nil {
		return types.([]models.InspectionType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInspectionRepository) FindTypeByID(ctx context.Context, id uint) (*models.InspectionType, error) {
	args := m.Called(ctx, id)
	if insType := args.Get(0); insType != nil {
		return insType.(*models.InspectionType), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInspectionRepository) FindByID(ctx context.Context, id uint) (*models.Inspection, error) {
	args := m.Called(ctx, id)
	if inspection := args.Get(0); inspection != nil {
		return inspection.(*models.Inspection), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInspectionRepository) CreateWithChecklist(ctx context.Context, inspection *models.Inspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *mockInspectionRepository) ListItems(ctx context.Context, inspectionID uint) ([]models.InspectionItem, error) {
	args := m.Called(ctx, inspectionID)
	if items := args.Get(0); items != nil {
		return items.([]models.InspectionItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInspectionRepository) UpdateRequirementResult(ctx context.Context, requirementID uint, evaluationResult string, comment *string) error {
	args := m.Called(ctx, requirementID, evaluationResult, comment)
	return args.Error(0)
}

func (m *mockInspectionRepository) UpdateSummary(ctx context.Context, inspection *models.Inspection, expectedVersion int) (bool, error) {
	args := m.Called(ctx, inspection, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *mockInspectionRepository) ListResults(ctx context.Context) ([]repository.InspectionResultRow, error) {
	args := m.Called(ctx)
	if rows := args.Get(0); rows != nil {
		return rows.([]repository.InspectionResultRow), args.Error(1)
	}
	return nil, args.Error(1)
}
