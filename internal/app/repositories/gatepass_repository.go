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
)

// GatePassRepository handles database operations for gate passes
type GatePassRepository struct {
	db *pgxpool.Pool
}

// NewGatePassRepository creates a new gate pass repository
func NewGatePassRepository(db *pgxpool.Pool) *GatePassRepository {
	return &GatePassRepository{
		db: db,
	}
}

const gatePassWithStudentColumns = `
	g.id, g.student_id, g.reason, g.date, g.status, g.qr_url, g.hod_id, g.created_at,
	p.id, p.email, p.name, p.roll, p.department, p.role, p.year, p.created_at
`

// scanPassWithStudent reads one joined gatepass+profile row.
func scanPassWithStudent(row pgx.Row) (*models.GatePass, error) {
	var pass models.GatePass
	var student models.Profile

	err := row.Scan(
		&pass.ID,
		&pass.StudentID,
		&pass.Reason,
		&pass.Date,
		&pass.Status,
		&pass.QRURL,
		&pass.HODID,
		&pass.CreatedAt,
		&student.ID,
		&student.Email,
		&student.Name,
		&student.Roll,
		&student.Department,
		&student.Role,
		&student.Year,
		&student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	pass.Student = &student
	return &pass, nil
}

// Create inserts a new pending gate pass for a student.
func (r *GatePassRepository) Create(ctx context.Context, pass *models.GatePass) error {
	if pass.ID == "" {
		pass.ID = uuid.New().String()
	}
	if pass.Status == "" {
		pass.Status = models.StatusPending
	}

	query := `
		INSERT INTO gatepasses (id, student_id, reason, date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		pass.ID,
		pass.StudentID,
		pass.Reason,
		pass.Date,
		string(pass.Status),
	).Scan(&pass.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating gate pass: %w", err)
	}

	return nil
}

// GetByID retrieves a gate pass with its owning student attached.
func (r *GatePassRepository) GetByID(ctx context.Context, id string) (*models.GatePass, error) {
	query := `
		SELECT ` + gatePassWithStudentColumns + `
		FROM gatepasses g
		JOIN profiles p ON p.id = g.student_id
		WHERE g.id = $1
	`

	pass, err := scanPassWithStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPassNotFound
		}
		return nil, fmt.Errorf("error retrieving gate pass: %w", err)
	}

	return pass, nil
}

// ListByStudent retrieves all passes of one student, newest first.
func (r *GatePassRepository) ListByStudent(ctx context.Context, studentID string) ([]*models.GatePass, error) {
	query := `
		SELECT ` + gatePassWithStudentColumns + `
		FROM gatepasses g
		JOIN profiles p ON p.id = g.student_id
		WHERE g.student_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student gate passes: %w", err)
	}
	defer rows.Close()

	return collectPasses(rows)
}

// ListByDepartmentJoined is the primary department query: one statement
// joining gatepasses to profiles with the department filter inside the join
// predicate.
func (r *GatePassRepository) ListByDepartmentJoined(ctx context.Context, department string) ([]*models.GatePass, error) {
	query := `
		SELECT ` + gatePassWithStudentColumns + `
		FROM gatepasses g
		JOIN profiles p ON p.id = g.student_id AND p.department = $1 AND p.role = $2
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, department, string(models.RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("error listing department gate passes: %w", err)
	}
	defer rows.Close()

	return collectPasses(rows)
}

// ListByStudentIDs retrieves passes belonging to any of the given students,
// newest first. Serves the fallback tier when the joined filter fails.
func (r *GatePassRepository) ListByStudentIDs(ctx context.Context, studentIDs []string) ([]*models.GatePass, error) {
	query := `
		SELECT ` + gatePassWithStudentColumns + `
		FROM gatepasses g
		JOIN profiles p ON p.id = g.student_id
		WHERE g.student_id = ANY($1)
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing gate passes by student ids: %w", err)
	}
	defer rows.Close()

	return collectPasses(rows)
}

// UpdateState applies a pass state as one atomic overwrite of the three
// mutable fields. There is no status precondition: transitions are full
// overwrites and the last writer wins.
func (r *GatePassRepository) UpdateState(ctx context.Context, id string, state models.PassState) error {
	query := `
		UPDATE gatepasses
		SET status = $1, qr_url = $2, hod_id = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		string(state.Status()),
		state.QRURL(),
		state.HODID(),
		id,
	)

	if err != nil {
		return fmt.Errorf("error updating gate pass state: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPassNotFound
	}

	return nil
}

// collectPasses drains a joined result set. The password column is not part
// of the projection, so attached student profiles carry no hash.
func collectPasses(rows pgx.Rows) ([]*models.GatePass, error) {
	var passes []*models.GatePass
	for rows.Next() {
		pass, err := scanPassWithStudent(rows)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return passes, nil
}
