package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrOAuthAccount       = errors.New("account uses Google sign-in")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrPasswordTooWeak    = errors.New("password must be between 6 and 72 characters")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrValidation         = errors.New("validation failed")

	ErrNoResetInProgress = errors.New("no password reset in progress")
	ErrResetExpired      = errors.New("password reset has expired")
	ErrResetOTPInvalid   = errors.New("invalid verification code")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	// ErrNotificationDelivery is logged by RequestReset and never returned.
	ErrNotificationDelivery = errors.New("password reset notification not delivered")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin role required")
	ErrSelfProtection  = errors.New("admins cannot deactivate, demote or delete their own account")

	ErrWardrobeNotFound = errors.New("wardrobe not found")
	ErrItemNotFound     = errors.New("item not found")
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
