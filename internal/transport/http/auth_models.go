package http

import (
	"time"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error  string            `json:"error" example:"invalid email or password"`
	Code   string            `json:"code" example:"INVALID_CREDENTIALS"`
	Fields map[string]string `json:"fields,omitempty"`
}

// AuthUser is the public view of an account.
type AuthUser struct {
	ID             string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Name           string    `json:"name" example:"Ada Lovelace"`
	Email          string    `json:"email" example:"user@example.com"`
	ProfilePicture *string   `json:"profile_picture,omitempty" example:"https://cdn.example.com/avatar.png"`
	AuthProvider   string    `json:"auth_provider" example:"local"`
	Role           string    `json:"role" example:"user"`
	IsActive       bool      `json:"is_active" example:"true"`
	HasPassword    bool      `json:"has_password" example:"true"`
	CreatedAt      time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt      time.Time `json:"updated_at" example:"2024-01-02T09:30:00Z"`
}

func newAuthUser(u *domain.User) AuthUser {
	return AuthUser{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		AuthProvider:   string(u.Provider),
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		HasPassword:    u.HasPassword(),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// AuthTokenResponse is returned by endpoints that issue session tokens.
type AuthTokenResponse struct {
	Message   string   `json:"message" example:"login successful"`
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expires_at" example:"2024-01-08T09:30:00Z"`
	User      AuthUser `json:"user"`
}

type AuthUserResponse struct {
	User AuthUser `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message" example:"password updated"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100" example:"Ada Lovelace"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"StrongPass!23"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"StrongPass!23"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=100" example:"Ada L."`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url" example:"https://cdn.example.com/avatar.png"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"OldPass!23"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72" example:"NewPass!45"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"user@example.com"`
}

// ForgotPasswordResponse only carries OTP, ResetToken and Note when the email
// could not be sent and secret exposure is enabled.
type ForgotPasswordResponse struct {
	Message    string `json:"message" example:"password reset instructions sent"`
	Email      string `json:"email" example:"user@example.com"`
	OTP        string `json:"otp,omitempty" example:"482913"`
	ResetToken string `json:"reset_token,omitempty"`
	Note       string `json:"note,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email" example:"user@example.com"`
	OTP   string `json:"otp" validate:"required,numeric" example:"482913"`
}

type VerifyOTPResponse struct {
	Message   string `json:"message" example:"code verified"`
	TempToken string `json:"temp_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Email     string `json:"email" example:"user@example.com"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72" example:"NewPass!45"`
}
