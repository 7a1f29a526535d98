package models

import "time"

// User represents a user account record in the database
type User struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key, assigned by storage
	Email     string    `json:"email" db:"email"`           // Unique user email
	FirstName string    `json:"first_name" db:"first_name"` // First name
	LastName  string    `json:"last_name" db:"last_name"`   // Last name
	Password  string    `json:"password" db:"password"`     // Password, stored as provided
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
