package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gapfarm/portal/api/internal/database"
	"github.com/gapfarm/portal/api/internal/models"
)

// FarmerRepository defines the interface for farmer profile data access.
type FarmerRepository interface {
	// FindByID finds a farmer by id.
	// Returns nil, nil if no farmer is found (not an error).
	FindByID(ctx context.Context, id uint) (*models.Farmer, error)

	// FindByUserID finds the farmer profile attached to an account.
	// Returns nil, nil if no farmer is found (not an error).
	FindByUserID(ctx context.Context, userID uint) (*models.Farmer, error)

	// ExistsByCitizenID reports whether a farmer with the citizen ID exists.
	ExistsByCitizenID(ctx context.Context, citizenID string) (bool, error)

	// Create inserts the farmer profile and its user account in one
	// transaction. Both IDs are populated on return.
	Create(ctx context.Context, user *models.User, farmer *models.Farmer) error
}

type farmerRepository struct {
	db *database.Database
}

// NewFarmerRepository creates a new instance of FarmerRepository.
func NewFarmerRepository(db *database.Database) FarmerRepository {
	return &farmerRepository{db: db}
}

const farmerColumns = `
	id, user_id, name_prefix, first_name, last_name, email, citizen_id,
	house_no, moo, road, alley, province, district, subdistrict, zip_code,
	mobile, phone, created_at, updated_at`

func scanFarmer(row pgx.Row) (*models.Farmer, error) {
	var f models.Farmer
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.NamePrefix,
		&f.FirstName,
		&f.LastName,
		&f.Email,
		&f.CitizenID,
		&f.HouseNo,
		&f.Moo,
		&f.Road,
		&f.Alley,
		&f.Province,
		&f.District,
		&f.Subdistrict,
		&f.ZipCode,
		&f.Mobile,
		&f.Phone,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepository) FindByID(ctx context.Context, id uint) (*models.Farmer, error) {
	query := `SELECT` + farmerColumns + ` FROM farmers WHERE id = $1`

	farmer, err := scanFarmer(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query farmer %d: %w", id, err)
	}
	return farmer, nil
}

func (r *farmerRepository) FindByUserID(ctx context.Context, userID uint) (*models.Farmer, error) {
	query := `SELECT` + farmerColumns + ` FROM farmers WHERE user_id = $1`

	farmer, err := scanFarmer(r.db.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query farmer for user %d: %w", userID, err)
	}
	return farmer, nil
}

func (r *farmerRepository) ExistsByCitizenID(ctx context.Context, citizenID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM farmers WHERE citizen_id = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, citizenID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check citizen id: %w", err)
	}
	return exists, nil
}

func (r *farmerRepository) Create(ctx context.Context, user *models.User, farmer *models.Farmer) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		userQuery := `
			INSERT INTO users (email, password_hash, first_name, last_name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, userQuery,
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.Role,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert farmer account: %w", err)
		}

		farmer.UserID = user.ID

		farmerQuery := `
			INSERT INTO farmers (
				user_id, name_prefix, first_name, last_name, email, citizen_id,
				house_no, moo, road, alley, province, district, subdistrict,
				zip_code, mobile, phone, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())
			RETURNING id, created_at, updated_at
		`
		err = tx.QueryRow(ctx, farmerQuery,
			farmer.UserID,
			farmer.NamePrefix,
			farmer.FirstName,
			farmer.LastName,
			farmer.Email,
			farmer.CitizenID,
			farmer.HouseNo,
			farmer.Moo,
			farmer.Road,
			farmer.Alley,
			farmer.Province,
			farmer.District,
			farmer.Subdistrict,
			farmer.ZipCode,
			farmer.Mobile,
			farmer.Phone,
		).Scan(&farmer.ID, &farmer.CreatedAt, &farmer.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert farmer profile: %w", err)
		}
		return nil
	})
}
