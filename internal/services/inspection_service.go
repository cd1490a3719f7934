package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gapfarm/portal/api/internal/auth"
	"github.com/gapfarm/portal/api/internal/gap"
	"github.com/gapfarm/portal/api/internal/logger"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/repository"
)

// Inspection service errors.
var (
	ErrInspectionNotFound     = errors.New("inspection not found")
	ErrInspectionTypeNotFound = errors.New("inspection type not found")
	ErrNotLeadAuditor         = errors.New("only the lead auditor may submit the summary")
	ErrAlreadyEvaluated       = errors.New("inspection has already been evaluated")
)

// ScheduleInspectionInput carries the auditor's scheduling form: the farm,
// the inspection type, the appointment date and the co-auditors joining the
// lead.
type ScheduleInspectionInput struct {
	AppointmentDate  time.Time `json:"appointmentDate"`
	AuditorIDs       []uint    `json:"auditorIds"`
	RubberFarmID     uint      `json:"rubberFarmId"`
	InspectionTypeID uint      `json:"inspectionTypeId"`
}

// EvaluationSummary is the computed outcome attached to the inspection
// detail for the auditor's review screen.
type EvaluationSummary struct {
	Result                        string `json:"result"`
	PrimaryTotal                  int    `json:"primaryTotal"`
	PrimaryFailed                 int    `json:"primaryFailed"`
	SecondaryTotal                int    `json:"secondaryTotal"`
	SecondaryPassed               int    `json:"secondaryPassed"`
	SecondaryCompliancePercentage int    `json:"secondaryCompliancePercentage"`
	IsPassed                      bool   `json:"isPassed"`
}

// InspectionService defines the interface for the inspection workflow:
// scheduling, checklist evaluation and summary submission.
type InspectionService interface {
	// ListTypes returns the inspection types for the scheduling form.
	ListTypes(ctx context.Context) ([]models.InspectionType, error)

	// Schedule creates a pending inspection with its checklist instantiated
	// from the chosen type. leadAuditorID is the scheduling auditor.
	Schedule(ctx context.Context, leadAuditorID uint, input ScheduleInspectionInput) (*models.Inspection, error)

	// GetInspection returns one inspection enriched with its type and farm.
	GetInspection(ctx context.Context, id uint) (*models.Inspection, error)

	// ListItems returns the inspection's checklist with requirements.
	ListItems(ctx context.Context, inspectionID uint) ([]models.InspectionItem, error)

	// Preview evaluates the current checklist answers without persisting.
	Preview(ctx context.Context, inspectionID uint) (*EvaluationSummary, error)

	// RecordEvaluation writes one requirement's answer and comment.
	RecordEvaluation(ctx context.Context, requirementID uint, evaluationResult string, comment *string) error

	// SubmitSummary recomputes the pass/fail result from the stored answers,
	// then persists result, summary comments and the evaluated status guarded
	// by the version the caller loaded.
	SubmitSummary(ctx context.Context, auditorID, inspectionID uint, summaryComments string, expectedVersion int) (*models.Inspection, error)

	// AvailableFarms lists farms without a pending inspection.
	AvailableFarms(ctx context.Context) ([]models.RubberFarm, error)

	// OtherAuditors lists auditor accounts excluding the caller, for the
	// co-auditor picker.
	OtherAuditors(ctx context.Context, currentAuditorID uint) ([]models.User, error)

	// CurrentAuditor returns the calling auditor's account.
	CurrentAuditor(ctx context.Context, auditorID uint) (*models.User, error)

	// ListResults returns the committee results report rows.
	ListResults(ctx context.Context) ([]repository.InspectionResultRow, error)
}

type inspectionService struct {
	inspections repository.InspectionRepository
	farms       repository.FarmRepository
	farmers     repository.FarmerRepository
	users       repository.UserRepository
	log         *logger.Logger
}

// NewInspectionService creates a new instance of InspectionService.
func NewInspectionService(
	inspections repository.InspectionRepository,
	farms repository.FarmRepository,
	farmers repository.FarmerRepository,
	users repository.UserRepository,
	log *logger.Logger,
) InspectionService {
	return &inspectionService{
		inspections: inspections,
		farms:       farms,
		farmers:     farmers,
		users:       users,
		log:         log,
	}
}

func (s *inspectionService) ListTypes(ctx context.Context) ([]models.InspectionType, error) {
	return s.inspections.ListTypes(ctx)
}

// newInspectionNo builds a unique, human-readable inspection number:
// INS-<appointment date>-<random fragment>.
func newInspectionNo(appointment time.Time) string {
	fragment := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INS-%s-%s", appointment.Format("20060102"), fragment)
}

func (s *inspectionService) Schedule(ctx context.Context, leadAuditorID uint, input ScheduleInspectionInput) (*models.Inspection, error) {
	farm, err := s.farms.FindByID(ctx, input.RubberFarmID)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, ErrFarmNotFound
	}

	insType, err := s.inspections.FindTypeByID(ctx, input.InspectionTypeID)
	if err != nil {
		return nil, err
	}
	if insType == nil {
		return nil, ErrInspectionTypeNotFound
	}

	// The lead always audits; deduplicate against the picked co-auditors.
	auditorIDs := []uint{leadAuditorID}
	for _, id := range input.AuditorIDs {
		if id != leadAuditorID {
			auditorIDs = append(auditorIDs, id)
		}
	}

	inspection := &models.Inspection{
		InspectionNo:     newInspectionNo(input.AppointmentDate),
		AppointmentDate:  input.AppointmentDate,
		InspectionStatus: models.InspectionStatusPending,
		RubberFarmID:     input.RubberFarmID,
		InspectionTypeID: input.InspectionTypeID,
		LeadAuditorID:    leadAuditorID,
		AuditorIDs:       auditorIDs,
	}

	if err := s.inspections.CreateWithChecklist(ctx, inspection); err != nil {
		s.log.Error("Failed to schedule inspection", err, map[string]interface{}{
			"rubber_farm_id":     input.RubberFarmID,
			"inspection_type_id": input.InspectionTypeID,
		})
		return nil, err
	}

	inspection.InspectionType = insType
	inspection.RubberFarm = farm

	s.log.Info("Inspection scheduled", map[string]interface{}{
		"inspection_id": inspection.ID,
		"inspection_no": inspection.InspectionNo,
		"lead_auditor":  leadAuditorID,
	})
	return inspection, nil
}

func (s *inspectionService) GetInspection(ctx context.Context, id uint) (*models.Inspection, error) {
	inspection, err := s.inspections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inspection == nil {
		return nil, ErrInspectionNotFound
	}

	// Type, farm and farmer are enrichments; each lookup failure degrades to
	// a partially populated response instead of failing the request.
	if insType, err := s.inspections.FindTypeByID(ctx, inspection.InspectionTypeID); err != nil {
		s.log.Warn("Failed to load inspection type", map[string]interface{}{
			"inspection_id": id,
			"error":         err.Error(),
		})
	} else {
		inspection.InspectionType = insType
	}

	farm, err := s.farms.FindByID(ctx, inspection.RubberFarmID)
	if err != nil {
		s.log.Warn("Failed to load farm for inspection", map[string]interface{}{
			"inspection_id": id,
			"error":         err.Error(),
		})
		return inspection, nil
	}
	if farm == nil {
		return inspection, nil
	}

	if farmer, err := s.farmers.FindByID(ctx, farm.FarmerID); err != nil {
		s.log.Warn("Failed to load farmer for inspection", map[string]interface{}{
			"inspection_id": id,
			"error":         err.Error(),
		})
	} else {
		farm.Farmer = farmer
	}
	inspection.RubberFarm = farm
	return inspection, nil
}

func (s *inspectionService) ListItems(ctx context.Context, inspectionID uint) ([]models.InspectionItem, error) {
	inspection, err := s.inspections.FindByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if inspection == nil {
		return nil, ErrInspectionNotFound
	}
	return s.inspections.ListItems(ctx, inspectionID)
}

func summaryFromResult(res gap.Result) *EvaluationSummary {
	return &EvaluationSummary{
		Result:                        res.ResultValue(),
		PrimaryTotal:                  res.PrimaryTotal,
		PrimaryFailed:                 res.PrimaryFailed,
		SecondaryTotal:                res.SecondaryTotal,
		SecondaryPassed:               res.SecondaryPassed,
		SecondaryCompliancePercentage: res.SecondaryCompliancePercentage,
		IsPassed:                      res.IsPassed,
	}
}

func (s *inspectionService) Preview(ctx context.Context, inspectionID uint) (*EvaluationSummary, error) {
	items, err := s.ListItems(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return summaryFromResult(gap.Evaluate(gap.FlattenItems(items))), nil
}

func (s *inspectionService) RecordEvaluation(ctx context.Context, requirementID uint, evaluationResult string, comment *string) error {
	return s.inspections.UpdateRequirementResult(ctx, requirementID, evaluationResult, comment)
}

func (s *inspectionService) SubmitSummary(ctx context.Context, auditorID, inspectionID uint, summaryComments string, expectedVersion int) (*models.Inspection, error) {
	inspection, err := s.inspections.FindByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if inspection == nil {
		return nil, ErrInspectionNotFound
	}
	if inspection.LeadAuditorID != auditorID {
		return nil, ErrNotLeadAuditor
	}
	if inspection.InspectionStatus == models.InspectionStatusEvaluated {
		return nil, ErrAlreadyEvaluated
	}

	// The result always comes from the stored requirement answers; the
	// submission only contributes the summary comments.
	items, err := s.inspections.ListItems(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	res := gap.Evaluate(gap.FlattenItems(items))

	inspection.InspectionResult = res.ResultValue()
	inspection.SummaryComments = summaryComments
	inspection.InspectionStatus = models.InspectionStatusEvaluated

	ok, err := s.inspections.UpdateSummary(ctx, inspection, expectedVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := s.inspections.FindByID(ctx, inspectionID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrInspectionNotFound
		}
		s.log.Warn("Summary submission rejected on stale version", map[string]interface{}{
			"inspection_id":   inspectionID,
			"current_version": current.Version,
		})
		return nil, &ConflictError{Current: current}
	}

	s.log.Info("Inspection evaluated", map[string]interface{}{
		"inspection_id":        inspectionID,
		"result":               inspection.InspectionResult,
		"primary_failed":       res.PrimaryFailed,
		"secondary_percentage": res.SecondaryCompliancePercentage,
	})
	return inspection, nil
}

func (s *inspectionService) AvailableFarms(ctx context.Context) ([]models.RubberFarm, error) {
	return s.farms.ListAvailableForInspection(ctx)
}

func (s *inspectionService) OtherAuditors(ctx context.Context, currentAuditorID uint) ([]models.User, error) {
	auditors, err := s.users.ListByRole(ctx, auth.RoleAuditor)
	if err != nil {
		return nil, err
	}

	others := make([]models.User, 0, len(auditors))
	for _, a := range auditors {
		if a.ID != currentAuditorID {
			others = append(others, a)
		}
	}
	return others, nil
}

func (s *inspectionService) CurrentAuditor(ctx context.Context, auditorID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, auditorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("auditor account not found")
	}
	return user, nil
}

func (s *inspectionService) ListResults(ctx context.Context) ([]repository.InspectionResultRow, error) {
	return s.inspections.ListResults(ctx)
}
