package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access, the only role issued by registration
	RoleSupervisor Role = "supervisor" // Can review attendance but not salaries
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
