package handler

import (
	"time"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6,max=50,password"`
	FullName string `json:"full_name" validate:"required,min=3"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the outward user projection. The password hash is
// excluded by construction, not by serialisation tags.
type userResponse struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	FullName  string        `json:"full_name"`
	IsActive  bool          `json:"is_active"`
	Roles     []domain.Role `json:"roles"`
	CreatedAt time.Time     `json:"created_at"`
}

type registerResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type loginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type checkStatusResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}
