package users

import (
	"time"

	"github.com/google/uuid"
)

// Role of a dashboard user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// OTPState is the currently pending password-reset code for a user.
// It exists as a whole or not at all: a user either has a code with its
// issuance time, or neither (enforced by a DB CHECK as well).
type OTPState struct {
	Code     string
	IssuedAt time.Time
}

// User is a credential subject (dashboard login).
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	IsActive     bool
	OTP          *OTPState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
