package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusgate/gatepass/internal/app/models"
)

// fakeIdentity fails account creation for the configured emails.
type fakeIdentity struct {
	failing map[string]error
	created []string
	meta    []AccountMetadata
}

func (f *fakeIdentity) CreateAccount(ctx context.Context, email, password string, meta AccountMetadata) error {
	if err, ok := f.failing[email]; ok {
		return err
	}
	f.created = append(f.created, email)
	f.meta = append(f.meta, meta)
	return nil
}

func TestProvisionStudentsPartialFailure(t *testing.T) {
	identity := &fakeIdentity{
		failing: map[string]error{"bad": errors.New("invalid email address")},
	}
	svc := NewProvisionService(identity, zerolog.Nop())

	logs := svc.ProvisionStudents(context.Background(), []AccountRequest{
		{Email: "a@x.edu", Password: "password-1", Name: "A", Roll: "R1", Department: "Computer Science"},
		{Email: "bad", Password: "password-2", Name: "B", Roll: "R2", Department: "Computer Science"},
		{Email: "c@x.edu", Password: "password-3", Name: "C", Roll: "R3", Department: "Computer Science"},
	})

	want := []string{
		"Created: a@x.edu",
		"bad: invalid email address",
		"Created: c@x.edu",
	}
	if len(logs) != len(want) {
		t.Fatalf("logs = %v, want %v", logs, want)
	}
	for i := range want {
		if logs[i] != want[i] {
			t.Errorf("logs[%d] = %q, want %q", i, logs[i], want[i])
		}
	}

	// The failing middle entry never aborts the rest of the batch.
	if len(identity.created) != 2 || identity.created[0] != "a@x.edu" || identity.created[1] != "c@x.edu" {
		t.Errorf("created = %v, want [a@x.edu c@x.edu] in input order", identity.created)
	}
}

func TestProvisionStudentsForcesFirstYearStudentRole(t *testing.T) {
	identity := &fakeIdentity{}
	svc := NewProvisionService(identity, zerolog.Nop())

	svc.ProvisionStudents(context.Background(), []AccountRequest{
		{Email: "a@x.edu", Password: "password-1", Name: "A", Roll: "R1", Department: "Computer Science"},
	})

	if len(identity.meta) != 1 {
		t.Fatalf("meta entries = %d, want 1", len(identity.meta))
	}
	meta := identity.meta[0]
	if meta.Role != models.RoleStudent {
		t.Errorf("Role = %v, want student", meta.Role)
	}
	if meta.Year != 1 {
		t.Errorf("Year = %d, want 1 (provisioned students always start in year 1)", meta.Year)
	}
}

func TestProvisionStudentsEmptyBatch(t *testing.T) {
	svc := NewProvisionService(&fakeIdentity{}, zerolog.Nop())

	logs := svc.ProvisionStudents(context.Background(), nil)
	if logs == nil || len(logs) != 0 {
		t.Errorf("logs = %v, want empty non-nil slice", logs)
	}
}
