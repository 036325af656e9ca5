package domain

import "time"

// Role enumerates the two account roles.
type Role string

const (
	RoleManager Role = "manager"
	RoleWorker  Role = "worker"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleManager, RoleWorker:
		return true
	default:
		return false
	}
}

// User is an account that can sign in to the dashboard.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
}
