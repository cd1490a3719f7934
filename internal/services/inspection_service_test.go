package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gapfarm/portal/api/internal/auth"
	"github.com/gapfarm/portal/api/internal/models"
)

func newTestInspectionService(
	inspections *mockInspectionRepository,
	farms *mockFarmRepository,
	farmers *mockFarmerRepository,
	users *mockUserRepository,
) InspectionService {
	return NewInspectionService(inspections, farms, farmers, users, testLogger())
}

func requirementItem(level string, answers ...string) models.InspectionItem {
	item := models.InspectionItem{ID: 1}
	for i, answer := range answers {
		item.Requirements = append(item.Requirements, models.Requirement{
			ID:               uint(i + 1),
			EvaluationResult: answer,
			RequirementMaster: &models.RequirementMaster{
				RequirementNo:    i + 1,
				RequirementLevel: level,
			},
		})
	}
	return item
}

func TestSchedule_DeduplicatesLeadAuditor(t *testing.T) {
	inspections := new(mockInspectionRepository)
	farms := new(mockFarmRepository)

	farms.On("FindByID", mock.Anything, uint(5)).Return(&models.RubberFarm{ID: 5, FarmerID: 20}, nil)
	inspections.On("FindTypeByID", mock.Anything, uint(2)).Return(&models.InspectionType{ID: 2, TypeName: "ตรวจรับรองครั้งแรก"}, nil)
	inspections.On("CreateWithChecklist", mock.Anything, mock.AnythingOfType("*models.Inspection")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Inspection).ID = 33
		}).
		Return(nil)

	svc := newTestInspectionService(inspections, farms, new(mockFarmerRepository), new(mockUserRepository))

	appointment := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	inspection, err := svc.Schedule(context.Background(), 7, ScheduleInspectionInput{
		AppointmentDate:  appointment,
		AuditorIDs:       []uint{7, 8, 9},
		RubberFarmID:     5,
		InspectionTypeID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), inspection.LeadAuditorID)
	assert.Equal(t, []uint{7, 8, 9}, inspection.AuditorIDs)
	assert.Equal(t, models.InspectionStatusPending, inspection.InspectionStatus)
	assert.True(t, strings.HasPrefix(inspection.InspectionNo, "INS-20260315-"))
}

func TestSchedule_UnknownFarm(t *testing.T) {
	inspections := new(mockInspectionRepository)
	farms := new(mockFarmRepository)
	farms.On("FindByID", mock.Anything, uint(5)).Return(nil, nil)

	svc := newTestInspectionService(inspections, farms, new(mockFarmerRepository), new(mockUserRepository))

	_, err := svc.Schedule(context.Background(), 7, ScheduleInspectionInput{
		AppointmentDate:  time.Now(),
		RubberFarmID:     5,
		InspectionTypeID: 2,
	})
	assert.ErrorIs(t, err, ErrFarmNotFound)
}

func TestGetInspection_EnrichmentDegradesGracefully(t *testing.T) {
	inspections := new(mockInspectionRepository)
	farms := new(mockFarmRepository)
	farmers := new(mockFarmerRepository)

	inspections.On("FindByID", mock.Anything, uint(33)).Return(&models.Inspection{
		ID:               33,
		RubberFarmID:     5,
		InspectionTypeID: 2,
	}, nil)
	// Every enrichment lookup fails; the inspection itself still comes back.
	inspections.On("FindTypeByID", mock.Anything, uint(2)).Return(nil, assert.AnError)
	farms.On("FindByID", mock.Anything, uint(5)).Return(nil, assert.AnError)

	svc := newTestInspectionService(inspections, farms, farmers, new(mockUserRepository))

	inspection, err := svc.GetInspection(context.Background(), 33)
	require.NoError(t, err)
	assert.Equal(t, uint(33), inspection.ID)
	assert.Nil(t, inspection.InspectionType)
	assert.Nil(t, inspection.RubberFarm)
}

func TestSubmitSummary_RecomputesResultFromStoredAnswers(t *testing.T) {
	inspections := new(mockInspectionRepository)

	pending := &models.Inspection{
		ID:               33,
		LeadAuditorID:    7,
		InspectionStatus: models.InspectionStatusPending,
		Version:          1,
	}
	inspections.On("FindByID", mock.Anything, uint(33)).Return(pending, nil)
	// All primary compliant, 3 of 4 secondary compliant: 75% passes.
	inspections.On("ListItems", mock.Anything, uint(33)).Return([]models.InspectionItem{
		requirementItem(models.LevelPrimary, "ใช่", "ใช่"),
		requirementItem(models.LevelSecondary, "ใช่", "ใช่", "ใช่", "ไม่ใช่"),
	}, nil)
	inspections.On("UpdateSummary", mock.Anything, mock.AnythingOfType("*models.Inspection"), 1).Return(true, nil)

	svc := newTestInspectionService(inspections, new(mockFarmRepository), new(mockFarmerRepository), new(mockUserRepository))

	inspection, err := svc.SubmitSummary(context.Background(), 7, 33, "ok overall", 1)
	require.NoError(t, err)

	assert.Equal(t, models.InspectionResultPassed, inspection.InspectionResult)
	assert.Equal(t, models.InspectionStatusEvaluated, inspection.InspectionStatus)
	assert.Equal(t, "ok overall", inspection.SummaryComments)
}

func TestSubmitSummary_PrimaryFailureFailsRegardlessOfComments(t *testing.T) {
	inspections := new(mockInspectionRepository)

	pending := &models.Inspection{
		ID:               33,
		LeadAuditorID:    7,
		InspectionStatus: models.InspectionStatusPending,
		Version:          1,
	}
	inspections.On("FindByID", mock.Anything, uint(33)).Return(pending, nil)
	inspections.On("ListItems", mock.Anything, uint(33)).Return([]models.InspectionItem{
		requirementItem(models.LevelPrimary, "ใช่", "ไม่ใช่"),
		requirementItem(models.LevelSecondary, "ใช่", "ใช่"),
	}, nil)
	inspections.On("UpdateSummary", mock.Anything, mock.AnythingOfType("*models.Inspection"), 1).Return(true, nil)

	svc := newTestInspectionService(inspections, new(mockFarmRepository), new(mockFarmerRepository), new(mockUserRepository))

	inspection, err := svc.SubmitSummary(context.Background(), 7, 33, "looks great", 1)
	require.NoError(t, err)
	assert.Equal(t, models.InspectionResultFailed, inspection.InspectionResult)
}

func TestSubmitSummary_OnlyLeadAuditor(t *testing.T) {
	inspections := new(mockInspectionRepository)
	inspections.On("FindByID", mock.Anything, uint(33)).Return(&models.Inspection{
		ID:            33,
		LeadAuditorID: 7,
	}, nil)

	svc := newTestInspectionService(inspections, new(mockFarmRepository), new(mockFarmerRepository), new(mockUserRepository))

	_, err := svc.SubmitSummary(context.Background(), 8, 33, "", 1)
	assert.ErrorIs(t, err, ErrNotLeadAuditor)
}

func TestSubmitSummary_AlreadyEvaluated(t *testing.T) {
	inspections := new(mockInspectionRepository)
	inspections.On("FindByID", mock.Anything, uint(33)).Return(&models.Inspection{
		ID:               33,
		LeadAuditorID:    7,
		InspectionStatus: models.InspectionStatusEvaluated,
	}, nil)

	svc := newTestInspectionService(inspections, new(mockFarmRepository), new(mockFarmerRepository), new(mockUserRepository))

	_, err := svc.SubmitSummary(context.Background(), 7, 33, "", 1)
	assert.ErrorIs(t, err, ErrAlreadyEvaluated)
}

func TestSubmitSummary_StaleVersionConflict(t *testing.T) {
	inspections := new(mockInspectionRepository)

	pending := &models.Inspection{
		ID:               33,
		LeadAuditorID:    7,
		InspectionStatus: models.InspectionStatusPending,
		Version:          1,
	}
	fresh := &models.Inspection{
		ID:               33,
		LeadAuditorID:    7,
		InspectionStatus: models.InspectionStatusPending,
		Version:          2,
	}
	inspections.On("FindByID", mock.Anything, uint(33)).Return(pending, nil).Once()
	inspections.On("ListItems", mock.Anything, uint(33)).Return([]models.InspectionItem{
		requirementItem(models.LevelSecondary, "ใช่", "ใช่"),
	}, nil)
	inspections.On("UpdateSummary", mock.Anything, mock.Anything, 1).Return(false, nil)
	inspections.On("FindByID", mock.Anything, uint(33)).Return(fresh, nil).Once()

	svc := newTestInspectionService(inspections, new(mockFarmRepository), new(mockFarmerRepository), new(mockUserRepository))

	_, err := svc.SubmitSummary(context.Background(), 7, 33, "", 1)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	got, ok := conflict.Current.(*models.Inspection)
	require.True(t, ok)
	assert.Equal(t, 2, got.Version)
}

func TestPreview_ScoresCurrentAnswers(t *testing.T) {
	inspections := new(mockInspectionRepository)
	inspections.On("FindByID", mock.Anything, uint(33)).Return(&models.Inspection{ID: 33}, nil)
	// 3 of 5 secondary compliant: 60% exactly, which passes.
	inspections.On("ListItems", mock.Anything, uint(33)).Return([]models.InspectionItem{
		requirementItem(models.LevelSecondary, "ใช่", "ใช่", "ใช่", "ไม่ใช่", ""),
	}, nil)

	svc := newTestInspectionService(inspections, new(mockFarmRepository), new(mockFarmerRepository), new(mockUserRepository))

	summary, err := svc.Preview(context.Background(), 33)
	require.NoError(t, err)
	assert.True(t, summary.IsPassed)
	assert.Equal(t, 60, summary.SecondaryCompliancePercentage)
	assert.Equal(t, models.InspectionResultPassed, summary.Result)
}

func TestOtherAuditors_ExcludesCaller(t *testing.T) {
	users := new(mockUserRepository)
	users.On("ListByRole", mock.Anything, auth.RoleAuditor).Return([]models.User{
		{ID: 7, FirstName: "A"},
		{ID: 8, FirstName: "B"},
		{ID: 9, FirstName: "C"},
	}, nil)

	svc := newTestInspectionService(new(mockInspectionRepository), new(mockFarmRepository), new(mockFarmerRepository), users)

	others, err := svc.OtherAuditors(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, uint(7), others[0].ID)
	assert.Equal(t, uint(9), others[1].ID)
}
