package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
	"github.com/campusgate/gatepass/internal/pkg/blobstore"
	"github.com/campusgate/gatepass/internal/pkg/credential"
)

// PassStore is the persistence surface the gate pass lifecycle engine needs.
type PassStore interface {
	Create(ctx context.Context, pass *models.GatePass) error
	GetByID(ctx context.Context, id string) (*models.GatePass, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.GatePass, error)
	ListByDepartmentJoined(ctx context.Context, department string) ([]*models.GatePass, error)
	ListByStudentIDs(ctx context.Context, studentIDs []string) ([]*models.GatePass, error)
	UpdateState(ctx context.Context, id string, state models.PassState) error
}

// StudentDirectory resolves department membership for the fallback query tier.
type StudentDirectory interface {
	StudentIDsByDepartment(ctx context.Context, department string) ([]string, error)
}

// GatePassService drives the pass lifecycle: creation, the three status
// transitions, and the department-scoped retrieval with its fallback chain.
type GatePassService struct {
	passes   PassStore
	students StudentDirectory
	encoder  *credential.Encoder
	blobs    blobstore.Store
	logger   zerolog.Logger
}

// NewGatePassService creates a new gate pass service
func NewGatePassService(passes PassStore, students StudentDirectory, encoder *credential.Encoder, blobs blobstore.Store, logger zerolog.Logger) *GatePassService {
	return &GatePassService{
		passes:   passes,
		students: students,
		encoder:  encoder,
		blobs:    blobs,
		logger:   logger,
	}
}

// RequestPass creates a new pending pass for a student.
func (s *GatePassService) RequestPass(ctx context.Context, studentID, reason string, date time.Time) (*models.GatePass, error) {
	pass := &models.GatePass{
		StudentID: studentID,
		Reason:    reason,
		Date:      date,
		Status:    models.StatusPending,
	}

	if err := s.passes.Create(ctx, pass); err != nil {
		return nil, err
	}

	s.logger.Info().Str("passId", pass.ID).Str("studentId", studentID).Msg("Gate pass requested")
	return pass, nil
}

// GetPass retrieves a single pass with its owning student.
func (s *GatePassService) GetPass(ctx context.Context, passID string) (*models.GatePass, error) {
	return s.passes.GetByID(ctx, passID)
}

// ListForStudent retrieves one student's passes, newest first.
func (s *GatePassService) ListForStudent(ctx context.Context, studentID string) ([]*models.GatePass, error) {
	passes, err := s.passes.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if passes == nil {
		passes = []*models.GatePass{}
	}
	return passes, nil
}

// Approve mints a fresh credential for the pass and records the decision.
// The credential is encoded and uploaded before the record is touched, so a
// failed encoding or upload leaves the pass exactly as it was. Re-approving
// an already approved pass is legal and simply mints a new credential.
func (s *GatePassService) Approve(ctx context.Context, passID, hodID string) (*models.GatePass, error) {
	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}

	department := ""
	if pass.Student != nil {
		department = pass.Student.Department
	}

	payload := credential.Payload{
		PassID:     pass.ID,
		StudentID:  pass.StudentID,
		Timestamp:  time.Now().UTC(),
		Department: department,
	}

	png, err := s.encoder.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCredentialGeneration, err)
	}

	key := pass.ID + ".png"
	opts := blobstore.PutOptions{CacheControl: "3600", Upsert: true}
	if err := s.blobs.Put(ctx, key, png, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCredentialGeneration, err)
	}

	state := models.ApprovedState(s.blobs.PublicURL(key), hodID)
	if err := s.passes.UpdateState(ctx, pass.ID, state); err != nil {
		return nil, err
	}

	state.Apply(pass)
	s.logger.Info().Str("passId", pass.ID).Str("hodId", hodID).Msg("Gate pass approved")
	return pass, nil
}

// Reject records a rejection. No credential is produced; an existing
// credential reference is cleared by the overwrite.
func (s *GatePassService) Reject(ctx context.Context, passID, hodID string) (*models.GatePass, error) {
	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}

	state := models.RejectedState(hodID)
	if err := s.passes.UpdateState(ctx, pass.ID, state); err != nil {
		return nil, err
	}

	state.Apply(pass)
	s.logger.Info().Str("passId", pass.ID).Str("hodId", hodID).Msg("Gate pass rejected")
	return pass, nil
}

// Undo returns a decided pass to pending, clearing both the credential
// reference and the recorded approver. This is a compensating transition:
// a previously uploaded credential image stays behind in the content store
// as an orphan and is not collected here.
func (s *GatePassService) Undo(ctx context.Context, passID string) (*models.GatePass, error) {
	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}

	state := models.PendingState()
	if err := s.passes.UpdateState(ctx, pass.ID, state); err != nil {
		return nil, err
	}

	state.Apply(pass)
	s.logger.Info().Str("passId", pass.ID).Msg("Gate pass decision undone")
	return pass, nil
}

// passQueryStage is one tier of the department retrieval strategy chain.
type passQueryStage struct {
	name  string
	fetch func(ctx context.Context, department string) ([]*models.GatePass, error)
}

// ListByDepartment returns every pass owned by a student of the department,
// newest first. Retrieval is an ordered strategy chain: the joined filter
// first, then the two-step student-id resolution. The next tier runs only
// when the previous one errors; an empty result is a success and stops the
// chain. This is a resilience policy against join-predicate support varying
// by store capability, not an optimization.
func (s *GatePassService) ListByDepartment(ctx context.Context, department string) ([]*models.GatePass, error) {
	stages := []passQueryStage{
		{name: "joined-filter", fetch: s.passes.ListByDepartmentJoined},
		{name: "student-id-fallback", fetch: s.listViaStudentIDs},
	}

	var tierErrs []error
	for _, stage := range stages {
		passes, err := stage.fetch(ctx, department)
		if err == nil {
			if passes == nil {
				passes = []*models.GatePass{}
			}
			return passes, nil
		}

		s.logger.Warn().Err(err).
			Str("stage", stage.name).
			Str("department", department).
			Msg("Department pass query tier failed")
		tierErrs = append(tierErrs, fmt.Errorf("%s: %w", stage.name, err))
	}

	lastStage := stages[len(stages)-1].name
	return nil, apperrors.NewQueryError(lastStage, errors.Join(tierErrs...))
}

// listViaStudentIDs resolves the department's student ids first and then
// fetches their passes. A department with zero students yields an empty
// result, which is a valid outcome and not an error.
func (s *GatePassService) listViaStudentIDs(ctx context.Context, department string) ([]*models.GatePass, error) {
	ids, err := s.students.StudentIDsByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*models.GatePass{}, nil
	}

	return s.passes.ListByStudentIDs(ctx, ids)
}
