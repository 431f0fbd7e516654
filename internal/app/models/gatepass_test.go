package models

import (
	"testing"
)

func TestPassStateInvariants(t *testing.T) {
	tests := []struct {
		name       string
		state      PassState
		wantStatus PassStatus
		wantQR     bool
		wantHOD    bool
	}{
		{name: "pending clears everything", state: PendingState(), wantStatus: StatusPending},
		{name: "approved carries credential and approver", state: ApprovedState("http://x/1.png", "hod-1"), wantStatus: StatusApproved, wantQR: true, wantHOD: true},
		{name: "rejected carries approver only", state: RejectedState("hod-1"), wantStatus: StatusRejected, wantHOD: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Status(); got != tt.wantStatus {
				t.Errorf("Status() = %v, want %v", got, tt.wantStatus)
			}
			if got := tt.state.QRURL() != nil; got != tt.wantQR {
				t.Errorf("QRURL() presence = %v, want %v", got, tt.wantQR)
			}
			if got := tt.state.HODID() != nil; got != tt.wantHOD {
				t.Errorf("HODID() presence = %v, want %v", got, tt.wantHOD)
			}

			// The record invariant: a credential exists exactly for
			// approved passes.
			if (tt.state.QRURL() != nil) != (tt.state.Status() == StatusApproved) {
				t.Errorf("credential presence does not match approved status")
			}
		})
	}
}

func TestPassStateApplyOverwritesAllFields(t *testing.T) {
	pass := &GatePass{ID: "p1", StudentID: "s1"}

	ApprovedState("http://x/p1.png", "hod-1").Apply(pass)
	if pass.Status != StatusApproved || pass.QRURL == nil || pass.HODID == nil {
		t.Fatalf("approved apply incomplete: %+v", pass)
	}

	PendingState().Apply(pass)
	if pass.Status != StatusPending {
		t.Errorf("Status = %v, want pending", pass.Status)
	}
	if pass.QRURL != nil {
		t.Errorf("QRURL = %v, want nil after reset", *pass.QRURL)
	}
	if pass.HODID != nil {
		t.Errorf("HODID = %v, want nil after reset", *pass.HODID)
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range []Role{RoleStudent, RoleHOD, RoleGuard} {
		if !role.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", role)
		}
	}
	if Role("admin").IsValid() {
		t.Error("IsValid(admin) = true, want false")
	}
}

func TestIsValidDepartment(t *testing.T) {
	if !IsValidDepartment("Computer Science") {
		t.Error("Computer Science should be in the catalog")
	}
	if IsValidDepartment("Underwater Basket Weaving") {
		t.Error("unknown department accepted")
	}
}
