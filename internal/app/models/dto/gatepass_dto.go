package dto

// CreatePassRequest is a student's request for a new gate pass.
type CreatePassRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500" example:"Medical appointment in town"`
	Date   string `json:"date" binding:"required" example:"2026-03-02"` // Requested travel date, YYYY-MM-DD
}

// PassDecisionResponse reports the record after a lifecycle transition.
type PassDecisionResponse struct {
	ID     string  `json:"id"`
	Status string  `json:"status" example:"approved"`
	QRURL  *string `json:"qrUrl,omitempty"`
	HODID  *string `json:"hodId,omitempty"`
}

// VerifyPassResponse is the guard-facing view of a pass at the gate.
type VerifyPassResponse struct {
	ID          string  `json:"id"`
	StudentName string  `json:"studentName"`
	Roll        string  `json:"roll"`
	Department  string  `json:"department"`
	Reason      string  `json:"reason"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	QRURL       *string `json:"qrUrl,omitempty"` // Present only for approved passes
}
