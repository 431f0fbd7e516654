package models

import (
	"time"
)

// Profile defines the identity record based on the 'profiles' table.
// The year column is stored as text in the database; the student year
// ledger converts between the numeric and textual representation at its
// boundary.
type Profile struct {
	ID         string    `json:"id" db:"id" example:"6f1b0a9e-6f0d-4a3c-9a93-1f6f5a2f7d10"` // Opaque stable identifier
	Email      string    `json:"email" db:"email" example:"jdoe@campus.edu"`                // Login email
	Password   string    `json:"-" db:"password"`                                           // Hashed password (excluded from JSON)
	Name       string    `json:"name" db:"name" example:"John Doe"`                         // Display name
	Roll       string    `json:"roll" db:"roll" example:"21CS045"`                          // Institutional identifier, unique within department
	Department string    `json:"department" db:"department" example:"Computer Science"`     // Entry from the fixed department catalog
	Role       Role      `json:"role" db:"role" example:"student"`                          // student, hod or guard
	Year       *string   `json:"year,omitempty" db:"year" example:"2"`                      // Enrollment year, textual, students only
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`                                 // Timestamp when the profile was created
}

// Teacher defines the staff directory record based on the 'teachers' table.
// Maintained through the admin directory endpoints; not part of the pass
// workflow itself.
type Teacher struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CabinNumber string    `json:"cabinNumber" db:"cabin_number"`
	Department  string    `json:"department" db:"department"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
