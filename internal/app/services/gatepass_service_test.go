package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models"
	"github.com/campusgate/gatepass/internal/pkg/apperrors"
	"github.com/campusgate/gatepass/internal/pkg/blobstore"
	"github.com/campusgate/gatepass/internal/pkg/credential"
)

// fakePassStore is an in-memory PassStore with per-method error injection.
type fakePassStore struct {
	passes    map[string]*models.GatePass
	joined    []*models.GatePass
	joinedErr error
	byIDs     []*models.GatePass
	byIDsErr  error
	updateErr error
	updates   int
}

func newFakePassStore(passes ...*models.GatePass) *fakePassStore {
	store := &fakePassStore{passes: make(map[string]*models.GatePass)}
	for _, p := range passes {
		store.passes[p.ID] = p
	}
	return store
}

func (f *fakePassStore) Create(ctx context.Context, pass *models.GatePass) error {
	if pass.ID == "" {
		pass.ID = "generated-id"
	}
	pass.CreatedAt = time.Now()
	f.passes[pass.ID] = pass
	return nil
}

func (f *fakePassStore) GetByID(ctx context.Context, id string) (*models.GatePass, error) {
	pass, ok := f.passes[id]
	if !ok {
		return nil, apperrors.ErrPassNotFound
	}
	copied := *pass
	return &copied, nil
}

func (f *fakePassStore) ListByStudent(ctx context.Context, studentID string) ([]*models.GatePass, error) {
	var out []*models.GatePass
	for _, p := range f.passes {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePassStore) ListByDepartmentJoined(ctx context.Context, department string) ([]*models.GatePass, error) {
	if f.joinedErr != nil {
		return nil, f.joinedErr
	}
	return f.joined, nil
}

func (f *fakePassStore) ListByStudentIDs(ctx context.Context, studentIDs []string) ([]*models.GatePass, error) {
	if f.byIDsErr != nil {
		return nil, f.byIDsErr
	}
	return f.byIDs, nil
}

func (f *fakePassStore) UpdateState(ctx context.Context, id string, state models.PassState) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	pass, ok := f.passes[id]
	if !ok {
		return apperrors.ErrPassNotFound
	}
	f.updates++
	state.Apply(pass)
	return nil
}

// fakeDirectory answers department membership lookups.
type fakeDirectory struct {
	ids []string
	err error
}

func (f *fakeDirectory) StudentIDsByDepartment(ctx context.Context, department string) ([]string, error) {
	return f.ids, f.err
}

// fakeBlobStore records uploads and can be made to fail.
type fakeBlobStore struct {
	puts    []string
	lastOpt blobstore.PutOptions
	err     error
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, data []byte, opts blobstore.PutOptions) error {
	if f.err != nil {
		return f.err
	}
	f.puts = append(f.puts, key)
	f.lastOpt = opts
	return nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "http://blobs.local/" + key
}

func newTestService(store *fakePassStore, dir *fakeDirectory, blobs *fakeBlobStore) *GatePassService {
	return NewGatePassService(store, dir, credential.NewEncoder(), blobs, zerolog.Nop())
}

func pendingPass(id, studentID string) *models.GatePass {
	return &models.GatePass{
		ID:        id,
		StudentID: studentID,
		Reason:    "medical appointment",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:    models.StatusPending,
		Student:   &models.Profile{ID: studentID, Name: "Jo Doe", Department: "Computer Science"},
	}
}

func TestApproveMintsCredential(t *testing.T) {
	store := newFakePassStore(pendingPass("p1", "s1"))
	blobs := &fakeBlobStore{}
	svc := newTestService(store, &fakeDirectory{}, blobs)

	pass, err := svc.Approve(context.Background(), "p1", "hod-1")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if pass.Status != models.StatusApproved {
		t.Errorf("Status = %v, want approved", pass.Status)
	}
	if pass.QRURL == nil || *pass.QRURL != "http://blobs.local/p1.png" {
		t.Errorf("QRURL = %v, want http://blobs.local/p1.png", pass.QRURL)
	}
	if pass.HODID == nil || *pass.HODID != "hod-1" {
		t.Errorf("HODID = %v, want hod-1", pass.HODID)
	}

	if len(blobs.puts) != 1 || blobs.puts[0] != "p1.png" {
		t.Errorf("uploads = %v, want [p1.png]", blobs.puts)
	}
	if !blobs.lastOpt.Upsert || blobs.lastOpt.CacheControl != "3600" {
		t.Errorf("upload options = %+v, want upsert with 3600 cache control", blobs.lastOpt)
	}
}

func TestApproveUploadFailureLeavesPassUntouched(t *testing.T) {
	store := newFakePassStore(pendingPass("p1", "s1"))
	blobs := &fakeBlobStore{err: errors.New("bucket unavailable")}
	svc := newTestService(store, &fakeDirectory{}, blobs)

	_, err := svc.Approve(context.Background(), "p1", "hod-1")
	if !errors.Is(err, apperrors.ErrCredentialGeneration) {
		t.Fatalf("Approve() error = %v, want ErrCredentialGeneration", err)
	}

	stored := store.passes["p1"]
	if stored.Status != models.StatusPending || stored.QRURL != nil || stored.HODID != nil {
		t.Errorf("pass was modified despite upload failure: %+v", stored)
	}
	if store.updates != 0 {
		t.Errorf("UpdateState called %d times, want 0", store.updates)
	}
}

func TestReApproveMintsFreshCredential(t *testing.T) {
	store := newFakePassStore(pendingPass("p1", "s1"))
	blobs := &fakeBlobStore{}
	svc := newTestService(store, &fakeDirectory{}, blobs)

	if _, err := svc.Approve(context.Background(), "p1", "hod-1"); err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}
	pass, err := svc.Approve(context.Background(), "p1", "hod-1")
	if err != nil {
		t.Fatalf("second Approve() error = %v", err)
	}

	if pass.Status != models.StatusApproved {
		t.Errorf("Status = %v, want approved", pass.Status)
	}
	if len(blobs.puts) != 2 {
		t.Errorf("uploads = %d, want 2 (each approval mints a fresh credential)", len(blobs.puts))
	}
}

func TestRejectRecordsApproverWithoutCredential(t *testing.T) {
	store := newFakePassStore(pendingPass("p1", "s1"))
	blobs := &fakeBlobStore{}
	svc := newTestService(store, &fakeDirectory{}, blobs)

	pass, err := svc.Reject(context.Background(), "p1", "hod-2")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	if pass.Status != models.StatusRejected {
		t.Errorf("Status = %v, want rejected", pass.Status)
	}
	if pass.QRURL != nil {
		t.Errorf("QRURL = %v, want nil", *pass.QRURL)
	}
	if pass.HODID == nil || *pass.HODID != "hod-2" {
		t.Errorf("HODID = %v, want hod-2", pass.HODID)
	}
	if len(blobs.puts) != 0 {
		t.Errorf("uploads = %v, want none for a rejection", blobs.puts)
	}
}

func TestUndoResetsDecidedPass(t *testing.T) {
	store := newFakePassStore(pendingPass("p1", "s1"))
	svc := newTestService(store, &fakeDirectory{}, &fakeBlobStore{})

	if _, err := svc.Approve(context.Background(), "p1", "hod-1"); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	pass, err := svc.Undo(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}

	if pass.Status != models.StatusPending {
		t.Errorf("Status = %v, want pending", pass.Status)
	}
	if pass.QRURL != nil || pass.HODID != nil {
		t.Errorf("credential or approver survived undo: qr=%v hod=%v", pass.QRURL, pass.HODID)
	}
}

func TestListByDepartmentUsesJoinedTierFirst(t *testing.T) {
	newer := pendingPass("p2", "s2")
	older := pendingPass("p1", "s1")
	store := newFakePassStore()
	store.joined = []*models.GatePass{newer, older}
	svc := newTestService(store, &fakeDirectory{err: errors.New("directory must not be consulted")}, &fakeBlobStore{})

	passes, err := svc.ListByDepartment(context.Background(), "Computer Science")
	if err != nil {
		t.Fatalf("ListByDepartment() error = %v", err)
	}
	if len(passes) != 2 || passes[0].ID != "p2" || passes[1].ID != "p1" {
		t.Errorf("passes = %v, want [p2 p1] newest first", passes)
	}
}

func TestListByDepartmentFallsBackOnJoinError(t *testing.T) {
	store := newFakePassStore()
	store.joinedErr = errors.New("join predicate not supported")
	store.byIDs = []*models.GatePass{pendingPass("p1", "s1")}
	dir := &fakeDirectory{ids: []string{"s1"}}
	svc := newTestService(store, dir, &fakeBlobStore{})

	passes, err := svc.ListByDepartment(context.Background(), "Computer Science")
	if err != nil {
		t.Fatalf("ListByDepartment() error = %v", err)
	}
	if len(passes) != 1 || passes[0].ID != "p1" {
		t.Errorf("passes = %v, want [p1] via fallback tier", passes)
	}
}

func TestListByDepartmentZeroStudentsIsEmptySuccess(t *testing.T) {
	store := newFakePassStore()
	store.joinedErr = errors.New("join predicate not supported")
	svc := newTestService(store, &fakeDirectory{ids: nil}, &fakeBlobStore{})

	passes, err := svc.ListByDepartment(context.Background(), "PCRC")
	if err != nil {
		t.Fatalf("ListByDepartment() error = %v, want empty success", err)
	}
	if passes == nil || len(passes) != 0 {
		t.Errorf("passes = %v, want empty non-nil slice", passes)
	}
}

func TestListByDepartmentSurfacesQueryErrorAfterAllTiers(t *testing.T) {
	store := newFakePassStore()
	store.joinedErr = errors.New("join predicate not supported")
	dir := &fakeDirectory{err: errors.New("directory offline")}
	svc := newTestService(store, dir, &fakeBlobStore{})

	_, err := svc.ListByDepartment(context.Background(), "Computer Science")
	var queryErr *apperrors.QueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("ListByDepartment() error = %v, want *apperrors.QueryError", err)
	}
	if queryErr.Stage != "student-id-fallback" {
		t.Errorf("Stage = %q, want student-id-fallback", queryErr.Stage)
	}
}

func TestRequestPassStartsPending(t *testing.T) {
	store := newFakePassStore()
	svc := newTestService(store, &fakeDirectory{}, &fakeBlobStore{})

	pass, err := svc.RequestPass(context.Background(), "s1", "library visit", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RequestPass() error = %v", err)
	}
	if pass.Status != models.StatusPending {
		t.Errorf("Status = %v, want pending", pass.Status)
	}
	if pass.QRURL != nil || pass.HODID != nil {
		t.Errorf("new pass carries decision fields: %+v", pass)
	}
}
