// Package gap implements the GAP certification pass/fail determination rule.
package gap

import (
	"math"

	"github.com/gapfarm/portal/api/internal/models"
)

// SecondaryPassThreshold is the minimum secondary-tier compliance percentage
// required for certification.
const SecondaryPassThreshold = 60

// Result holds the pass/fail determination together with the numbers a
// reviewer needs to audit it.
type Result struct {
	IsPassed                      bool `json:"isPassed"`
	PrimaryTotal                  int  `json:"primaryTotal"`
	PrimaryFailed                 int  `json:"primaryFailed"`
	SecondaryTotal                int  `json:"secondaryTotal"`
	SecondaryPassed               int  `json:"secondaryPassed"`
	SecondaryCompliancePercentage int  `json:"secondaryCompliancePercentage"`
}

// Evaluate decides pass/fail over the full set of requirements associated
// with an inspection's items. The two scoring tiers are asymmetric:
//
//   - every primary requirement (ข้อกำหนดหลัก) must be compliant, zero tolerance;
//   - secondary requirements (ข้อกำหนดรอง) pass as a tier when at least 60% are
//     compliant, rounded half-up to the nearest integer percent.
//
// Any other requirement level is informational and excluded from scoring.
// With zero secondary requirements the percentage is 0 and the secondary
// tier fails, so the overall result fails even when every primary
// requirement is compliant. With zero primary requirements the primary tier
// trivially passes. Evaluate is a pure function with no side effects.
func Evaluate(requirements []models.Requirement) Result {
	var res Result

	for _, req := range requirements {
		if req.RequirementMaster == nil {
			continue
		}
		switch req.RequirementMaster.RequirementLevel {
		case models.LevelPrimary:
			res.PrimaryTotal++
			if req.EvaluationResult != models.AnswerCompliant {
				res.PrimaryFailed++
			}
		case models.LevelSecondary:
			res.SecondaryTotal++
			if req.EvaluationResult == models.AnswerCompliant {
				res.SecondaryPassed++
			}
		}
	}

	if res.SecondaryTotal > 0 {
		pct := float64(res.SecondaryPassed) * 100 / float64(res.SecondaryTotal)
		res.SecondaryCompliancePercentage = int(math.Floor(pct + 0.5))
	}

	primaryPassed := res.PrimaryFailed == 0
	secondaryPassed := res.SecondaryCompliancePercentage >= SecondaryPassThreshold
	res.IsPassed = primaryPassed && secondaryPassed

	return res
}

// ResultValue maps the boolean determination onto the persisted
// inspectionResult domain value.
func (r Result) ResultValue() string {
	if r.IsPassed {
		return models.InspectionResultPassed
	}
	return models.InspectionResultFailed
}

// FlattenItems collects the requirements of every inspection item into one
// slice for evaluation.
func FlattenItems(items []models.InspectionItem) []models.Requirement {
	var all []models.Requirement
	for _, item := range items {
		all = append(all, item.Requirements...)
	}
	return all
}
