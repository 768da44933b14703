// Package model defines the core domain types shared across the application.
package model

import "time"

// Role determines what a user account may do.
type Role string

// Supported roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an operator account. The username is the primary key.
type User struct {
	CreatedAt    time.Time
	Username     string
	PasswordHash string
	FullName     string
	CreatedBy    string
	Role         Role
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
