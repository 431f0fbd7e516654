package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/app/repositories"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
)

// TeacherService handles the staff directory maintained by administration.
type TeacherService struct {
	teachers *repositories.TeacherRepository
}

// NewTeacherService creates a new teacher service
func NewTeacherService(teachers *repositories.TeacherRepository) *TeacherService {
	return &TeacherService{
		teachers: teachers,
	}
}

// validateTeacher checks directory entry fields before any write.
func (s *TeacherService) validateTeacher(teacher *models.Teacher) error {
	if strings.TrimSpace(teacher.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(teacher.CabinNumber) == "" {
		return fmt.Errorf("%w: cabin number cannot be empty", apperrors.ErrValidationFailed)
	}
	if !models.IsValidDepartment(teacher.Department) {
		return apperrors.ErrInvalidDepartment
	}
	return nil
}

// CreateTeacher adds a directory entry
func (s *TeacherService) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(teacher); err != nil {
		return err
	}
	return s.teachers.Create(ctx, teacher)
}

// GetAllTeachers lists the directory
func (s *TeacherService) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teachers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if teachers == nil {
		teachers = []*models.Teacher{}
	}
	return teachers, nil
}

// UpdateTeacher updates a directory entry
func (s *TeacherService) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if err := s.validateTeacher(teacher); err != nil {
		return err
	}
	return s.teachers.Update(ctx, teacher)
}

// DeleteTeacher removes a directory entry
func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	return s.teachers.Delete(ctx, id)
}
