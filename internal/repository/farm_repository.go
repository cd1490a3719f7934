package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gapfarm/portal/api/internal/database"
	"github.com/gapfarm/portal/api/internal/models"
)

// FarmRepository defines the interface for rubber farm and planting detail
// data access. Updates are guarded by the version column: an UPDATE matching
// id but not version affects zero rows, which the service layer surfaces as
// an optimistic-lock conflict.
type FarmRepository interface {
	// FindByID finds a farm with its planting details.
	// Returns nil, nil if no farm is found (not an error).
	FindByID(ctx context.Context, id uint) (*models.RubberFarm, error)

	// ListByFarmer returns all farms of one farmer, details included.
	ListByFarmer(ctx context.Context, farmerID uint) ([]models.RubberFarm, error)

	// ListAvailableForInspection returns farms with no pending inspection,
	// for the auditor scheduling dropdown.
	ListAvailableForInspection(ctx context.Context) ([]models.RubberFarm, error)

	// Create inserts a farm and its planting details in one transaction.
	Create(ctx context.Context, farm *models.RubberFarm) error

	// Update writes the farm row guarded by the expected version. Returns
	// false with a nil error when the version did not match (or the farm is
	// gone); the caller distinguishes the two by re-fetching.
	Update(ctx context.Context, farm *models.RubberFarm, expectedVersion int) (bool, error)

	// CreateDetail inserts one planting detail.
	CreateDetail(ctx context.Context, detail *models.PlantingDetail) error

	// FindDetailByID finds one planting detail.
	// Returns nil, nil if not found (not an error).
	FindDetailByID(ctx context.Context, id uint) (*models.PlantingDetail, error)

	// UpdateDetail writes a planting detail guarded by the expected version.
	UpdateDetail(ctx context.Context, detail *models.PlantingDetail, expectedVersion int) (bool, error)

	// DeleteDetail removes one planting detail.
	DeleteDetail(ctx context.Context, id uint) error
}

type farmRepository struct {
	db *database.Database
}

// NewFarmRepository creates a new instance of FarmRepository.
func NewFarmRepository(db *database.Database) FarmRepository {
	return &farmRepository{db: db}
}

const farmColumns = `
	id, farmer_id, village_name, moo, road, alley, province, district,
	subdistrict, zip_code, ST_AsGeoJSON(location) as location, version,
	created_at, updated_at`

const detailColumns = `
	id, rubber_farm_id, specie, area_of_plot, number_of_rubber, age_of_rubber,
	year_of_tapping, total_production, version, created_at, updated_at`

func scanFarm(row pgx.Row) (*models.RubberFarm, error) {
	var farm models.RubberFarm
	var geomJSON []byte

	err := row.Scan(
		&farm.ID,
		&farm.FarmerID,
		&farm.VillageName,
		&farm.Moo,
		&farm.Road,
		&farm.Alley,
		&farm.Province,
		&farm.District,
		&farm.Subdistrict,
		&farm.ZipCode,
		&geomJSON,
		&farm.Version,
		&farm.CreatedAt,
		&farm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if geomJSON != nil {
		if err := farm.Location.Scan(geomJSON); err != nil {
			return nil, fmt.Errorf("failed to parse location for farm %d: %w", farm.ID, err)
		}
	}
	return &farm, nil
}

func scanDetail(row pgx.Row) (*models.PlantingDetail, error) {
	var d models.PlantingDetail
	err := row.Scan(
		&d.ID,
		&d.RubberFarmID,
		&d.Specie,
		&d.AreaOfPlot,
		&d.NumberOfRubber,
		&d.AgeOfRubber,
		&d.YearOfTapping,
		&d.TotalProduction,
		&d.Version,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *farmRepository) FindByID(ctx context.Context, id uint) (*models.RubberFarm, error) {
	query := `SELECT` + farmColumns + ` FROM rubber_farms WHERE id = $1`

	farm, err := scanFarm(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query farm %d: %w", id, err)
	}

	details, err := r.listDetails(ctx, farm.ID)
	if err != nil {
		return nil, err
	}
	farm.PlantingDetails = details
	return farm, nil
}

func (r *farmRepository) ListByFarmer(ctx context.Context, farmerID uint) ([]models.RubberFarm, error) {
	query := `SELECT` + farmColumns + ` FROM rubber_farms WHERE farmer_id = $1 ORDER BY id`

	farms, err := r.queryFarms(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query farms for farmer %d: %w", farmerID, err)
	}

	for i := range farms {
		details, err := r.listDetails(ctx, farms[i].ID)
		if err != nil {
			return nil, err
		}
		farms[i].PlantingDetails = details
	}
	return farms, nil
}

func (r *farmRepository) ListAvailableForInspection(ctx context.Context) ([]models.RubberFarm, error) {
	query := `
		SELECT` + farmColumns + `
		FROM rubber_farms
		WHERE NOT EXISTS (
			SELECT 1 FROM inspections
			WHERE inspections.rubber_farm_id = rubber_farms.id
			  AND inspections.inspection_status = 'pending'
		)
		ORDER BY id
	`

	farms, err := r.queryFarms(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query available farms: %w", err)
	}
	return farms, nil
}

func (r *farmRepository) queryFarms(ctx context.Context, query string, args ...interface{}) ([]models.RubberFarm, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	farms := []models.RubberFarm{}
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farm row: %w", err)
		}
		farms = append(farms, *farm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating farm rows: %w", err)
	}
	return farms, nil
}

func (r *farmRepository) listDetails(ctx context.Context, farmID uint) ([]models.PlantingDetail, error) {
	query := `SELECT` + detailColumns + ` FROM planting_details WHERE rubber_farm_id = $1 ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query planting details for farm %d: %w", farmID, err)
	}
	defer rows.Close()

	details := []models.PlantingDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planting detail row: %w", err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating planting detail rows: %w", err)
	}
	return details, nil
}

func (r *farmRepository) Create(ctx context.Context, farm *models.RubberFarm) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		farmQuery := `
			INSERT INTO rubber_farms (
				farmer_id, village_name, moo, road, alley, province, district,
				subdistrict, zip_code, location, version, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, ST_GeomFromGeoJSON($10), 1, now(), now())
			RETURNING id, version, created_at, updated_at
		`

		location, err := farm.Location.Value()
		if err != nil {
			return fmt.Errorf("failed to encode farm location: %w", err)
		}

		err = tx.QueryRow(ctx, farmQuery,
			farm.FarmerID,
			farm.VillageName,
			farm.Moo,
			farm.Road,
			farm.Alley,
			farm.Province,
			farm.District,
			farm.Subdistrict,
			farm.ZipCode,
			location,
		).Scan(&farm.ID, &farm.Version, &farm.CreatedAt, &farm.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert farm: %w", err)
		}

		for i := range farm.PlantingDetails {
			farm.PlantingDetails[i].RubberFarmID = farm.ID
			if err := insertDetail(ctx, tx, &farm.PlantingDetails[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *farmRepository) Update(ctx context.Context, farm *models.RubberFarm, expectedVersion int) (bool, error) {
	query := `
		UPDATE rubber_farms
		SET village_name = $3, moo = $4, road = $5, alley = $6, province = $7,
		    district = $8, subdistrict = $9, zip_code = $10,
		    location = ST_GeomFromGeoJSON($11),
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	location, err := farm.Location.Value()
	if err != nil {
		return false, fmt.Errorf("failed to encode farm location: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, query,
		farm.ID,
		expectedVersion,
		farm.VillageName,
		farm.Moo,
		farm.Road,
		farm.Alley,
		farm.Province,
		farm.District,
		farm.Subdistrict,
		farm.ZipCode,
		location,
	).Scan(&farm.Version, &farm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update farm %d: %w", farm.ID, err)
	}
	return true, nil
}

func insertDetail(ctx context.Context, tx pgx.Tx, detail *models.PlantingDetail) error {
	query := `
		INSERT INTO planting_details (
			rubber_farm_id, specie, area_of_plot, number_of_rubber,
			age_of_rubber, year_of_tapping, total_production, version,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, now(), now())
		RETURNING id, version, created_at, updated_at
	`
	err := tx.QueryRow(ctx, query,
		detail.RubberFarmID,
		detail.Specie,
		detail.AreaOfPlot,
		detail.NumberOfRubber,
		detail.AgeOfRubber,
		detail.YearOfTapping,
		detail.TotalProduction,
	).Scan(&detail.ID, &detail.Version, &detail.CreatedAt, &detail.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert planting detail: %w", err)
	}
	return nil
}

func (r *farmRepository) CreateDetail(ctx context.Context, detail *models.PlantingDetail) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return insertDetail(ctx, tx, detail)
	})
}

func (r *farmRepository) FindDetailByID(ctx context.Context, id uint) (*models.PlantingDetail, error) {
	query := `SELECT` + detailColumns + ` FROM planting_details WHERE id = $1`

	detail, err := scanDetail(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query planting detail %d: %w", id, err)
	}
	return detail, nil
}

func (r *farmRepository) UpdateDetail(ctx context.Context, detail *models.PlantingDetail, expectedVersion int) (bool, error) {
	query := `
		UPDATE planting_details
		SET specie = $3, area_of_plot = $4, number_of_rubber = $5,
		    age_of_rubber = $6, year_of_tapping = $7, total_production = $8,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING version, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		detail.ID,
		expectedVersion,
		detail.Specie,
		detail.AreaOfPlot,
		detail.NumberOfRubber,
		detail.AgeOfRubber,
		detail.YearOfTapping,
		detail.TotalProduction,
	).Scan(&detail.Version, &detail.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update planting detail %d: %w", detail.ID, err)
	}
	return true, nil
}

func (r *farmRepository) DeleteDetail(ctx context.Context, id uint) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM planting_details WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete planting detail %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("planting detail %d not found", id)
	}
	return nil
}
