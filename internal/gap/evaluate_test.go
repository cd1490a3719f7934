package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gapfarm/portal/api/internal/models"
)

func makeRequirements(level string, compliant, nonCompliant int) []models.Requirement {
	reqs := make([]models.Requirement, 0, compliant+nonCompliant)
	for i := 0; i < compliant; i++ {
		reqs = append(reqs, models.Requirement{
			EvaluationResult:  models.AnswerCompliant,
			RequirementMaster: &models.RequirementMaster{RequirementLevel: level},
		})
	}
	for i := 0; i < nonCompliant; i++ {
		reqs = append(reqs, models.Requirement{
			EvaluationResult:  "ไม่ใช่",
			RequirementMaster: &models.RequirementMaster{RequirementLevel: level},
		})
	}
	return reqs
}

func TestEvaluate_AllPrimaryCompliant_SecondaryAtThreshold_Passes(t *testing.T) {
	reqs := append(
		makeRequirements(models.LevelPrimary, 3, 0),
		makeRequirements(models.LevelSecondary, 6, 4)...,
	)

	res := Evaluate(reqs)

	assert.True(t, res.IsPassed)
	assert.Equal(t, 0, res.PrimaryFailed)
	assert.Equal(t, 60, res.SecondaryCompliancePercentage)
	assert.Equal(t, 10, res.SecondaryTotal)
	assert.Equal(t, models.InspectionResultPassed, res.ResultValue())
}

func TestEvaluate_SecondaryBelowThreshold_Fails(t *testing.T) {
	reqs := append(
		makeRequirements(models.LevelPrimary, 3, 0),
		makeRequirements(models.LevelSecondary, 5, 5)...,
	)

	res := Evaluate(reqs)

	assert.False(t, res.IsPassed)
	assert.Equal(t, 50, res.SecondaryCompliancePercentage)
	assert.Equal(t, models.InspectionResultFailed, res.ResultValue())
}

func TestEvaluate_SinglePrimaryFailure_FailsRegardlessOfSecondary(t *testing.T) {
	reqs := append(
		makeRequirements(models.LevelPrimary, 2, 1),
		makeRequirements(models.LevelSecondary, 10, 0)...,
	)

	res := Evaluate(reqs)

	assert.False(t, res.IsPassed)
	assert.Equal(t, 1, res.PrimaryFailed)
	assert.Equal(t, 100, res.SecondaryCompliancePercentage)
}

func TestEvaluate_ZeroSecondaryRequirements_FailsSecondaryTier(t *testing.T) {
	// 0 secondary requirements yields 0%, which is below the threshold even
	// when every primary requirement is compliant.
	reqs := makeRequirements(models.LevelPrimary, 5, 0)

	res := Evaluate(reqs)

	assert.False(t, res.IsPassed)
	assert.Equal(t, 0, res.PrimaryFailed)
	assert.Equal(t, 0, res.SecondaryTotal)
	assert.Equal(t, 0, res.SecondaryCompliancePercentage)
}

func TestEvaluate_ZeroPrimaryRequirements_PrimaryTierTriviallyPasses(t *testing.T) {
	reqs := makeRequirements(models.LevelSecondary, 7, 3)

	res := Evaluate(reqs)

	assert.True(t, res.IsPassed)
	assert.Equal(t, 0, res.PrimaryTotal)
	assert.Equal(t, 70, res.SecondaryCompliancePercentage)
}

func TestEvaluate_AdvisoryLevelExcludedFromScoring(t *testing.T) {
	reqs := append(
		makeRequirements(models.LevelPrimary, 1, 0),
		makeRequirements(models.LevelSecondary, 2, 1)...,
	)
	// Non-compliant advisory entries must not affect either tier.
	reqs = append(reqs, makeRequirements(models.LevelAdvisory, 0, 4)...)

	res := Evaluate(reqs)

	assert.True(t, res.IsPassed)
	assert.Equal(t, 1, res.PrimaryTotal)
	assert.Equal(t, 3, res.SecondaryTotal)
	assert.Equal(t, 67, res.SecondaryCompliancePercentage)
}

func TestEvaluate_RoundingIsHalfUp(t *testing.T) {
	// 5 of 8 = 62.5% rounds up to 63.
	reqs := makeRequirements(models.LevelSecondary, 5, 3)

	res := Evaluate(reqs)

	assert.Equal(t, 63, res.SecondaryCompliancePercentage)
	assert.True(t, res.IsPassed)
}

func TestEvaluate_EmptyAnswerIsNonCompliant(t *testing.T) {
	reqs := []models.Requirement{
		{
			EvaluationResult:  "",
			RequirementMaster: &models.RequirementMaster{RequirementLevel: models.LevelPrimary},
		},
	}

	res := Evaluate(reqs)

	assert.False(t, res.IsPassed)
	assert.Equal(t, 1, res.PrimaryFailed)
}

func TestEvaluate_Deterministic(t *testing.T) {
	reqs := append(
		makeRequirements(models.LevelPrimary, 3, 0),
		makeRequirements(models.LevelSecondary, 6, 4)...,
	)

	first := Evaluate(reqs)
	second := Evaluate(reqs)

	assert.Equal(t, first, second)
}

func TestFlattenItems(t *testing.T) {
	items := []models.InspectionItem{
		{Requirements: makeRequirements(models.LevelPrimary, 2, 0)},
		{Requirements: makeRequirements(models.LevelSecondary, 1, 1)},
		{Requirements: nil},
	}

	all := FlattenItems(items)

	assert.Len(t, all, 4)
}
