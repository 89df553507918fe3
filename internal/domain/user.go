package domain

import "time"

// Role enumerates operator roles.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleSeller  Role = "SELLER"
	RoleScanner Role = "SCANNER"
)

// User is a staff operator: sells at a terminal, scans at the door, or
// administers the event.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}
