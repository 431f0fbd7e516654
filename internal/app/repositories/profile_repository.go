package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
	"github.com/campusgate/gatepass/internal/pkg/dberrors"
)

// ProfileRepository handles database operations for identity profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// Create inserts a new profile. The id is generated here when the caller
// leaves it empty. Unique violations are translated to domain errors so the
// provisioning log can name the reason.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	query := `
		INSERT INTO profiles (id, email, password, name, roll, department, role, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.Email,
		profile.Password,
		profile.Name,
		profile.Roll,
		profile.Department,
		string(profile.Role),
		profile.Year,
	).Scan(&profile.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "profiles_roll_department_key") {
			return apperrors.ErrRollAlreadyExists
		}
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, email, password, name, roll, department, role, year, created_at
		FROM profiles
		WHERE id = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Password,
		&profile.Name,
		&profile.Roll,
		&profile.Department,
		&profile.Role,
		&profile.Year,
		&profile.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &profile, nil
}

// GetByEmail retrieves a profile by email address
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, email, password, name, roll, department, role, year, created_at
		FROM profiles
		WHERE email = $1
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, email).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Password,
		&profile.Name,
		&profile.Roll,
		&profile.Department,
		&profile.Role,
		&profile.Year,
		&profile.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile by email: %w", err)
	}

	return &profile, nil
}

// ListStudentsByDepartment retrieves all student profiles of a department,
// senior years first, then by roll number.
func (r *ProfileRepository) ListStudentsByDepartment(ctx context.Context, department string) ([]*models.Profile, error) {
	query := `
		SELECT id, email, password, name, roll, department, role, year, created_at
		FROM profiles
		WHERE department = $1 AND role = $2
		ORDER BY year DESC, roll ASC
	`

	rows, err := r.db.Query(ctx, query, department, string(models.RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("error listing department students: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.Email,
			&profile.Password,
			&profile.Name,
			&profile.Roll,
			&profile.Department,
			&profile.Role,
			&profile.Year,
			&profile.CreatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// StudentIDsByDepartment resolves the ids of all students in a department.
// Used by the fallback tier of the department pass query.
func (r *ProfileRepository) StudentIDsByDepartment(ctx context.Context, department string) ([]string, error) {
	query := `
		SELECT id
		FROM profiles
		WHERE department = $1 AND role = $2
	`

	rows, err := r.db.Query(ctx, query, department, string(models.RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("error resolving department student ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// UpdateYear sets the textual year value of a student profile. A store-side
// check violation on profiles_year_check is translated to the same domain
// error the ledger raises itself.
func (r *ProfileRepository) UpdateYear(ctx context.Context, id string, year string) error {
	query := `
		UPDATE profiles
		SET year = $1
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, year, id)
	if err != nil {
		if dberrors.IsCheckViolation(err, "profiles_year_check") {
			return apperrors.ErrYearOutOfBounds
		}
		return fmt.Errorf("error updating student year: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}
