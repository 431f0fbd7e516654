package models

import (
	"time"
)

// GatePass defines the gate pass record based on the 'gatepasses' table
type GatePass struct {
	ID        string     `json:"id" db:"id"`
	StudentID string     `json:"studentId" db:"student_id"`
	Reason    string     `json:"reason" db:"reason"`
	Date      time.Time  `json:"date" db:"date"`               // Requested date of travel
	Status    PassStatus `json:"status" db:"status"`           // pending, approved or rejected
	QRURL     *string    `json:"qrUrl,omitempty" db:"qr_url"`  // Credential reference, set only when approved
	HODID     *string    `json:"hodId,omitempty" db:"hod_id"`  // Acting approver, set only when decided
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	Student   *Profile   `json:"student,omitempty"` // Relation, no db tag
}

// PassState groups the three mutable gate pass fields so that the record
// invariants hold by construction: a qr_url exists exactly for approved
// passes, and an approver is recorded exactly for decided passes. Every
// transition fully overwrites all three fields, which is what makes
// concurrent decisions safe without locking (last writer wins).
type PassState struct {
	status PassStatus
	qrURL  *string
	hodID  *string
}

// PendingState returns the state of a pass awaiting a decision. Both the
// credential reference and the approver are cleared.
func PendingState() PassState {
	return PassState{status: StatusPending}
}

// ApprovedState returns the state of an approved pass carrying its freshly
// minted credential reference and the acting approver.
func ApprovedState(qrURL, hodID string) PassState {
	return PassState{status: StatusApproved, qrURL: &qrURL, hodID: &hodID}
}

// RejectedState returns the state of a rejected pass recording the acting
// approver. A rejected pass never carries a credential.
func RejectedState(hodID string) PassState {
	return PassState{status: StatusRejected, hodID: &hodID}
}

// Status returns the lifecycle status of the state.
func (s PassState) Status() PassStatus { return s.status }

// QRURL returns the credential reference, nil unless approved.
func (s PassState) QRURL() *string { return s.qrURL }

// HODID returns the acting approver, nil while pending.
func (s PassState) HODID() *string { return s.hodID }

// Apply writes the state onto a gate pass record.
func (s PassState) Apply(pass *GatePass) {
	pass.Status = s.status
	pass.QRURL = s.qrURL
	pass.HODID = s.hodID
}
