package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository  *ProfileRepository
	GatePassRepository *GatePassRepository
	TeacherRepository  *TeacherRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:  NewProfileRepository(db),
		GatePassRepository: NewGatePassRepository(db),
		TeacherRepository:  NewTeacherRepository(db),
	}
}
