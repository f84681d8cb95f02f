package domain

import (
	"errors"
	"time"
)

const (
	RoleClient     = "client"
	RoleTechnician = "technician"
)

var ErrEmailTaken = errors.New("email already in use")
var ErrInvalidRole = errors.New("invalid role")
var ErrWeakPassword = errors.New("password must be at least 6 characters")
var ErrMissingCredentials = errors.New("email and password are required")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether role is one of the two marketplace roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleTechnician
}

// User models an account in the marketplace. Role is fixed at registration;
// Profession is only meaningful for technicians and always reads back as a
// list, even for documents written before the list migration.
type User struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         string         `json:"role"`
	Profession   ProfessionList `json:"profession"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
