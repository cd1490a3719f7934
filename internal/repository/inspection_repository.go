package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gapfarm/portal/api/internal/database"
	"github.com/gapfarm/portal/api/internal/models"
)

// InspectionResultRow is one row of the committee results report: the
// inspection joined with its farm and farmer.
type InspectionResultRow struct {
	InspectionNo     string
	InspectionStatus string
	InspectionResult string
	TypeName         string
	FarmerName       string
	Province         string
	District         string
	AppointmentDate  string
	InspectionID     uint
	RubberFarmID     uint
}

// InspectionRepository defines the interface for inspection workflow data
// access: types and checklist masters, scheduled inspections with their
// items and requirements, and the committee results view.
type InspectionRepository interface {
	// ListTypes returns every inspection type.
	ListTypes(ctx context.Context) ([]models.InspectionType, error)

	// FindTypeByID finds an inspection type.
	// Returns nil, nil if not found (not an error).
	FindTypeByID(ctx context.Context, id uint) (*models.InspectionType, error)

	// FindByID finds an inspection.
	// Returns nil, nil if not found (not an error).
	FindByID(ctx context.Context, id uint) (*models.Inspection, error)

	// CreateWithChecklist inserts a pending inspection and instantiates its
	// checklist (items + requirements) from the type's masters, all in one
	// transaction.
	CreateWithChecklist(ctx context.Context, inspection *models.Inspection) error

	// ListItems returns an inspection's items in order, each with its
	// requirements and their masters.
	ListItems(ctx context.Context, inspectionID uint) ([]models.InspectionItem, error)

	// UpdateRequirementResult writes an auditor's evaluation of one
	// requirement.
	UpdateRequirementResult(ctx context.Context, requirementID uint, evaluationResult string, comment *string) error

	// UpdateSummary persists the computed result, summary comments and
	// evaluated status, guarded by the expected version.
	UpdateSummary(ctx context.Context, inspection *models.Inspection, expectedVersion int) (bool, error)

	// ListResults returns the joined rows for the committee results report.
	ListResults(ctx context.Context) ([]InspectionResultRow, error)
}

type inspectionRepository struct {
	db *database.Database
}

// NewInspectionRepository creates a new instance of InspectionRepository.
func NewInspectionRepository(db *database.Database) InspectionRepository {
	return &inspectionRepository{db: db}
}

const inspectionColumns = `
	id, inspection_no, rubber_farm_id, inspection_type_id, lead_auditor_id,
	appointment_date, inspection_status, inspection_result, summary_comments,
	version, created_at, updated_at`

func scanInspection(row pgx.Row) (*models.Inspection, error) {
	var ins models.Inspection
	err := row.Scan(
		&ins.ID,
		&ins.InspectionNo,
		&ins.RubberFarmID,
		&ins.InspectionTypeID,
		&ins.LeadAuditorID,
		&ins.AppointmentDate,
		&ins.InspectionStatus,
		&ins.InspectionResult,
		&ins.SummaryComments,
		&ins.Version,
		&ins.CreatedAt,
		&ins.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *inspectionRepository) ListTypes(ctx context.Context) ([]models.InspectionType, error) {
	query := `SELECT id, type_name, created_at, updated_at FROM inspection_types ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspection types: %w", err)
	}
	defer rows.Close()

	types := []models.InspectionType{}
	for rows.Next() {
		var t models.InspectionType
		if err := rows.Scan(&t.ID, &t.TypeName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inspection type row: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspection type rows: %w", err)
	}
	return types, nil
}

func (r *inspectionRepository) FindTypeByID(ctx context.Context, id uint) (*models.InspectionType, error) {
	query := `SELECT id, type_name, created_at, updated_at FROM inspection_types WHERE id = $1`

	var t models.InspectionType
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.TypeName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query inspection type %d: %w", id, err)
	}
	return &t, nil
}

func (r *inspectionRepository) FindByID(ctx context.Context, id uint) (*models.Inspection, error) {
	query := `SELECT` + inspectionColumns + ` FROM inspections WHERE id = $1`

	inspection, err := scanInspection(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query inspection %d: %w", id, err)
	}

	auditorIDs, err := r.listAuditorIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	inspection.AuditorIDs = auditorIDs
	return inspection, nil
}

func (r *inspectionRepository) listAuditorIDs(ctx context.Context, inspectionID uint) ([]uint, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT auditor_id FROM inspection_auditors WHERE inspection_id = $1 ORDER BY auditor_id`,
		inspectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspection auditors: %w", err)
	}
	defer rows.Close()

	ids := []uint{}
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan auditor id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating auditor ids: %w", err)
	}
	return ids, nil
}

func (r *inspectionRepository) CreateWithChecklist(ctx context.Context, inspection *models.Inspection) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		insQuery := `
			INSERT INTO inspections (
				inspection_no, rubber_farm_id, inspection_type_id,
				lead_auditor_id, appointment_date, inspection_status,
				inspection_result, summary_comments, version, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, '', '', 1, now(), now())
			RETURNING id, version, created_at, updated_at
		`
		err := tx.QueryRow(ctx, insQuery,
			inspection.InspectionNo,
			inspection.RubberFarmID,
			inspection.InspectionTypeID,
			inspection.LeadAuditorID,
			inspection.AppointmentDate,
			inspection.InspectionStatus,
		).Scan(&inspection.ID, &inspection.Version, &inspection.CreatedAt, &inspection.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert inspection: %w", err)
		}

		for _, auditorID := range inspection.AuditorIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO inspection_auditors (inspection_id, auditor_id) VALUES ($1, $2)`,
				inspection.ID, auditorID)
			if err != nil {
				return fmt.Errorf("failed to insert inspection auditor: %w", err)
			}
		}

		// Instantiate the checklist from the type's masters. Requirements
		// start with an empty evaluation result, which counts as
		// non-compliant until the auditor records an answer.
		itemQuery := `
			INSERT INTO inspection_items (inspection_id, item_master_id, item_no, item_name, created_at, updated_at)
			SELECT $1, id, item_no, item_name, now(), now()
			FROM item_masters
			WHERE inspection_type_id = $2
		`
		if _, err := tx.Exec(ctx, itemQuery, inspection.ID, inspection.InspectionTypeID); err != nil {
			return fmt.Errorf("failed to instantiate inspection items: %w", err)
		}

		reqQuery := `
			INSERT INTO requirements (inspection_item_id, requirement_master_id, evaluation_result, created_at, updated_at)
			SELECT items.id, masters.id, '', now(), now()
			FROM inspection_items items
			JOIN requirement_masters masters ON masters.item_master_id = items.item_master_id
			WHERE items.inspection_id = $1
		`
		if _, err := tx.Exec(ctx, reqQuery, inspection.ID); err != nil {
			return fmt.Errorf("failed to instantiate requirements: %w", err)
		}
		return nil
	})
}

func (r *inspectionRepository) ListItems(ctx context.Context, inspectionID uint) ([]models.InspectionItem, error) {
	itemQuery := `
		SELECT id, inspection_id, item_master_id, item_no, item_name, created_at, updated_at
		FROM inspection_items
		WHERE inspection_id = $1
		ORDER BY item_no
	`

	rows, err := r.db.Pool.Query(ctx, itemQuery, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspection items: %w", err)
	}
	defer rows.Close()

	items := []models.InspectionItem{}
	for rows.Next() {
		var item models.InspectionItem
		err := rows.Scan(
			&item.ID,
			&item.InspectionID,
			&item.ItemMasterID,
			&item.ItemNo,
			&item.ItemName,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inspection item row: %w", err)
		}
		item.Requirements = []models.Requirement{}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspection item rows: %w", err)
	}

	reqQuery := `
		SELECT reqs.id, reqs.inspection_item_id, reqs.requirement_master_id,
		       reqs.evaluation_result, reqs.evaluation_comment,
		       reqs.created_at, reqs.updated_at,
		       masters.id, masters.item_master_id, masters.requirement_no,
		       masters.requirement_name, masters.requirement_level,
		       masters.created_at, masters.updated_at
		FROM requirements reqs
		JOIN requirement_masters masters ON masters.id = reqs.requirement_master_id
		JOIN inspection_items items ON items.id = reqs.inspection_item_id
		WHERE items.inspection_id = $1
		ORDER BY masters.requirement_no
	`

	reqRows, err := r.db.Pool.Query(ctx, reqQuery, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer reqRows.Close()

	byItem := make(map[uint]int, len(items))
	for i := range items {
		byItem[items[i].ID] = i
	}

	for reqRows.Next() {
		var req models.Requirement
		var master models.RequirementMaster
		err := reqRows.Scan(
			&req.ID,
			&req.InspectionItemID,
			&req.RequirementMasterID,
			&req.EvaluationResult,
			&req.EvaluationComment,
			&req.CreatedAt,
			&req.UpdatedAt,
			&master.ID,
			&master.ItemMasterID,
			&master.RequirementNo,
			&master.RequirementName,
			&master.RequirementLevel,
			&master.CreatedAt,
			&master.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requirement row: %w", err)
		}
		req.RequirementMaster = &master
		if i, ok := byItem[req.InspectionItemID]; ok {
			items[i].Requirements = append(items[i].Requirements, req)
		}
	}
	if err := reqRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requirement rows: %w", err)
	}
	return items, nil
}

func (r *inspectionRepository) UpdateRequirementResult(ctx context.Context, requirementID uint, evaluationResult string, comment *string) error {
	query := `
		UPDATE requirements
		SET evaluation_result = $2, evaluation_comment = $3, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, requirementID, evaluationResult, comment)
	if err != nil {
		return fmt.Errorf("failed to update requirement %d: %w", requirementID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("requirement %d not found", requirementID)
	}
	return nil
}

func (r *inspectionRepository) UpdateSummary(ctx context.Context, inspection *models.Inspection, expectedVersion int) (bool, error) {
	query := `
		UPDATE inspections
		SET inspection_result = $3, summary_comments = $4, inspection_status = $5,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		inspection.ID,
		expectedVersion,
		inspection.InspectionResult,
		inspection.SummaryComments,
		inspection.InspectionStatus,
	).Scan(&inspection.Version, &inspection.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update inspection %d: %w", inspection.ID, err)
	}
	return true, nil
}

func (r *inspectionRepository) ListResults(ctx context.Context) ([]InspectionResultRow, error) {
	query := `
		SELECT ins.id, ins.inspection_no, ins.inspection_status, ins.inspection_result,
		       to_char(ins.appointment_date, 'YYYY-MM-DD'),
		       types.type_name,
		       farms.id, farms.province, farms.district,
		       farmers.first_name || ' ' || farmers.last_name
		FROM inspections ins
		JOIN inspection_types types ON types.id = ins.inspection_type_id
		JOIN rubber_farms farms ON farms.id = ins.rubber_farm_id
		JOIN farmers ON farmers.id = farms.farmer_id
		ORDER BY ins.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspection results: %w", err)
	}
	defer rows.Close()

	results := []InspectionResultRow{}
	for rows.Next() {
		var row InspectionResultRow
		err := rows.Scan(
			&row.InspectionID,
			&row.InspectionNo,
			&row.InspectionStatus,
			&row.InspectionResult,
			&row.AppointmentDate,
			&row.TypeName,
			&row.RubberFarmID,
			&row.Province,
			&row.District,
			&row.FarmerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inspection result row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspection result rows: %w", err)
	}
	return results, nil
}
