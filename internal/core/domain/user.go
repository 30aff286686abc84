package domain

import (
	"errors"
	"time"
)

// Role is a closed enumeration of access tags a user may hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleSuperUser Role = "super-user"
)

// ValidRoles lists every role the system recognises.
var ValidRoles = []Role{RoleUser, RoleAdmin, RoleSuperUser}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInactiveUser = errors.New("user is inactive, check with the administrator")
var ErrNoRolesAssigned = errors.New("user has no roles assigned")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid token")

// User models an identity principal. PasswordHash is write-only from the
// API's perspective and must never appear in a response body.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasAnyRole reports whether the user holds at least one of the required
// roles. An empty required set matches nothing; callers decide what an
// empty requirement means before asking.
func (u *User) HasAnyRole(required []Role) bool {
	for _, have := range u.Roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsValidRole reports whether r belongs to the closed role set.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}
