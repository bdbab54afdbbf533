package auth

import (
	"github.com/RamirezDiego7/ligatec/internal/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"`
}

type CompleteProfileRequest struct {
	Matricula string `json:"matricula" binding:"required"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Matricula       string `json:"matricula"`
	Role            string `json:"role"`
	TeamName        string `json:"team_name,omitempty"`
	ProfileComplete bool   `json:"profile_complete"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// FilterUserRecord strips credentials and internal fields from a user.
func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Matricula:       u.Matricula,
		Role:            u.EffectiveRole(),
		TeamName:        u.TeamName,
		ProfileComplete: u.ProfileComplete(),
	}
}
