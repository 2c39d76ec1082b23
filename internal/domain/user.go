package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle:
		return true
	default:
		return false
	}
}

// ResetState is the in-flight password reset attached to a user. A nil
// *ResetState means no reset is in progress; the three fields are always
// persisted and cleared together.
type ResetState struct {
	OTPHash   string
	TokenID   string
	ExpiresAt time.Time
}

// Expired reports whether the shared reset window has elapsed at now.
func (r *ResetState) Expired(now time.Time) bool {
	return r != nil && now.After(r.ExpiresAt)
}

type User struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Email          string      `db:"email" json:"email"`
	ProfilePicture *string     `db:"profile_picture" json:"profile_picture,omitempty"`
	PasswordHash   *string     `db:"password_hash" json:"-"`
	Provider       Provider    `db:"auth_provider" json:"auth_provider"`
	OAuthID        *string     `db:"oauth_id" json:"-"`
	Role           Role        `db:"role" json:"role"`
	IsActive       bool        `db:"is_active" json:"is_active"`
	Reset          *ResetState `db:"-" json:"-"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != nil && *u.PasswordHash != ""
}

// UserAccountUpdate carries the admin-editable fields; nil means unchanged.
type UserAccountUpdate struct {
	Name     *string
	Email    *string
	Role     *Role
	IsActive *bool
}

// NormalizeEmail lower-cases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
