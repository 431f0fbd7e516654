package dto

// LoginRequest is the credential payload for session issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jdoe@campus.edu"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"` // Seconds until expiry
	Role      string `json:"role" example:"hod"`
}

// StudentResponse is the HOD-facing listing entry for a department student.
// The year is numeric here regardless of its textual persistence.
type StudentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Roll       string `json:"roll"`
	Department string `json:"department"`
	Year       int    `json:"year" example:"2"`
}

// YearChangeRequest carries the caller's view of the current year for a
// promote/demote operation.
type YearChangeRequest struct {
	CurrentYear int `json:"currentYear" binding:"required,min=1,max=4" example:"2"`
}

// YearChangeResponse reports the outcome of a promote/demote. Warning is set
// when the operation was a deliberate boundary no-op.
type YearChangeResponse struct {
	StudentID string `json:"studentId"`
	Year      int    `json:"year" example:"3"`
	Changed   bool   `json:"changed"`
	Warning   string `json:"warning,omitempty"`
}

// TeacherRequest creates or updates a staff directory entry.
type TeacherRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	CabinNumber string `json:"cabinNumber" binding:"required,max=20"`
	Department  string `json:"department" binding:"required"`
}

// ProvisionLogResponse is the batch provisioning outcome: one line per input
// tuple in input order.
type ProvisionLogResponse struct {
	Logs []string `json:"logs"`
}

// ProvisionErrorResponse reports an unparseable provisioning envelope.
type ProvisionErrorResponse struct {
	Error string `json:"error"`
}
