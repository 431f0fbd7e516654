package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
)

// Boundary warning messages. These are deliberate no-ops, not faults.
const (
	warnAlreadyFinalYear = "student is already in the final year (Year 4) and cannot be promoted further"
	warnAlreadyFirstYear = "student is already in Year 1 and cannot be demoted further"
)

// StudentStore is the persistence surface the year ledger needs.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	ListStudentsByDepartment(ctx context.Context, department string) ([]*models.Profile, error)
	UpdateYear(ctx context.Context, id string, year string) error
}

// YearChange reports the outcome of a promote or demote. Warning is set for
// boundary no-ops; Year always carries the resulting numeric year so callers
// can update cached views without a re-fetch.
type YearChange struct {
	StudentID string
	Year      int
	Changed   bool
	Warning   string
}

// StudentService is the bounded year ledger for student records. The store
// persists the year textually; this service owns the numeric⇄textual
// conversion and enforces the [1,4] range in addition to the database
// constraint.
type StudentService struct {
	profiles StudentStore
	logger   zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(profiles StudentStore, logger zerolog.Logger) *StudentService {
	return &StudentService{
		profiles: profiles,
		logger:   logger,
	}
}

// Promote advances a student one year. At year 4 the operation is a no-op
// carrying a warning rather than an error.
func (s *StudentService) Promote(ctx context.Context, studentID string, currentYear int) (*YearChange, error) {
	if currentYear >= models.MaxYear {
		return &YearChange{
			StudentID: studentID,
			Year:      currentYear,
			Warning:   warnAlreadyFinalYear,
		}, nil
	}

	return s.setYear(ctx, studentID, currentYear+1)
}

// Demote moves a student back one year. At year 1 the operation is a no-op
// carrying a warning rather than an error.
func (s *StudentService) Demote(ctx context.Context, studentID string, currentYear int) (*YearChange, error) {
	if currentYear <= models.MinYear {
		return &YearChange{
			StudentID: studentID,
			Year:      currentYear,
			Warning:   warnAlreadyFirstYear,
		}, nil
	}

	return s.setYear(ctx, studentID, currentYear-1)
}

// setYear writes the new year after the range check. The same bound is
// enforced again by profiles_year_check in the store; the repository
// translates that violation to the identical domain error.
func (s *StudentService) setYear(ctx context.Context, studentID string, newYear int) (*YearChange, error) {
	if newYear < models.MinYear || newYear > models.MaxYear {
		return nil, apperrors.ErrYearOutOfBounds
	}

	if err := s.profiles.UpdateYear(ctx, studentID, strconv.Itoa(newYear)); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentId", studentID).Int("year", newYear).Msg("Student year updated")
	return &YearChange{
		StudentID: studentID,
		Year:      newYear,
		Changed:   true,
	}, nil
}

// ListStudents retrieves the department's students for the HOD roster view.
func (s *StudentService) ListStudents(ctx context.Context, department string) ([]*models.Profile, error) {
	students, err := s.profiles.ListStudentsByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*models.Profile{}
	}
	return students, nil
}

// NumericYear converts a profile's textual year to its numeric form,
// defaulting to 1 when unset or malformed.
func NumericYear(profile *models.Profile) int {
	if profile.Year == nil {
		return models.MinYear
	}
	year, err := strconv.Atoi(*profile.Year)
	if err != nil || year < models.MinYear || year > models.MaxYear {
		return models.MinYear
	}
	return year
}
