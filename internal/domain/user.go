package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to users. There is no self-service promotion path;
// admin accounts are created out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account.
// PasswordHash is the bcrypt digest of the password and is never serialized;
// the json:"-" tag keeps it out of every response even if a handler returns
// the struct directly.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	Surname      string    `json:"surname,omitempty"`
	Email        string    `json:"email"`
	Address      string    `json:"address,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
