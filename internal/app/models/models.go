package models

// Role defines the profile role type
type Role string

const (
	RoleStudent Role = "student" // Requests gate passes
	RoleHOD     Role = "hod"     // Approves or rejects passes for their department
	RoleGuard   Role = "guard"   // Verifies credentials at the gate
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleHOD, RoleGuard:
		return true
	}
	return false
}

// PassStatus defines the gate pass lifecycle status
type PassStatus string

// Gate pass statuses. A pass starts as pending; approve and reject are
// reversible through an explicit undo.
const (
	StatusPending  PassStatus = "pending"
	StatusApproved PassStatus = "approved"
	StatusRejected PassStatus = "rejected"
)

// Departments is the fixed institutional department catalog. Profiles and
// teachers must reference one of these entries.
var Departments = []string{
	"Electrical and Electronics",
	"Electronics and Communication",
	"HRM Office",
	"Library",
	"Mechanical Engineering",
	"Registrar Office",
	"Technology Department",
	"Training and Placement",
	"Computer Application",
	"Biotechnology",
	"Business Administration",
	"Applied Science and Humanities",
	"Admission Cell",
	"Computer Science",
	"Administration",
	"Physics Department",
	"Mathematics Department",
	"Microbiology Department",
	"Chemistry Department",
	"Psychology Department",
	"PCRC",
	"SDC",
}

// IsValidDepartment reports whether name belongs to the department catalog.
func IsValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// Enrollment year bounds for students. Both the application and the
// profiles_year_check database constraint enforce this range.
const (
	MinYear = 1
	MaxYear = 4
)
