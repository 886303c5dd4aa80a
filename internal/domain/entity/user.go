package entity

import "time"

// Valid User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User an account that can sign in to StockMaster.
type User struct {
	ID           string
	FullName     string
	Email        string // always stored lowercased
	PasswordHash string // bcrypt hash, never the plain password
	Role         string // admin, manager, user
	IsActive     bool
	LastLogin    *time.Time
	Phone        string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole reports whether r is one of the known roles.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}
