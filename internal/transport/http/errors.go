package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

const (
	codeInvalidBody       = "INVALID_BODY"
	codeValidation        = "VALIDATION_FAILED"
	codeDuplicateEmail    = "DUPLICATE_EMAIL"
	codeOAuthAccount      = "OAUTH_ACCOUNT"
	codeInvalidCreds      = "INVALID_CREDENTIALS"
	codeAccountInactive   = "ACCOUNT_INACTIVE"
	codeWeakPassword      = "WEAK_PASSWORD"
	codePasswordMismatch  = "PASSWORD_MISMATCH"
	codeUserNotFound      = "USER_NOT_FOUND"
	codeNoResetInProgress = "NO_RESET_IN_PROGRESS"
	codeResetExpired      = "RESET_EXPIRED"
	codeInvalidOTP        = "INVALID_OTP"
	codeInvalidToken      = "INVALID_OR_EXPIRED_TOKEN"
	codeUnauthenticated   = "UNAUTHENTICATED"
	codeForbidden         = "FORBIDDEN"
	codeSelfProtection    = "SELF_PROTECTION_VIOLATION"
	codeWardrobeNotFound  = "WARDROBE_NOT_FOUND"
	codeItemNotFound      = "ITEM_NOT_FOUND"
	codeInternal          = "INTERNAL_ERROR"
)

var errInvalidBody = errors.New("invalid request body")

// bindRequest decodes the JSON body into dst and runs the struct validator.
func bindRequest(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return errInvalidBody
	}
	return c.Validate(dst)
}

// respondError maps service errors onto status codes and stable reason codes.
// Unknown errors are logged and hidden behind a generic 500.
func respondError(c echo.Context, err error) error {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, util.Envelope{
			"error":  "validation failed",
			"code":   codeValidation,
			"fields": validationErr.Fields(),
		})
	case errors.Is(err, errInvalidBody):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeInvalidBody, "invalid request body"))
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeValidation, err.Error()))
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeDuplicateEmail, "email already registered"))
	case errors.Is(err, service.ErrOAuthAccount):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeOAuthAccount, "this account signs in with Google"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeInvalidCreds, "invalid email or password"))
	case errors.Is(err, service.ErrAccountInactive):
		return c.JSON(http.StatusForbidden, util.ErrorCode(codeAccountInactive, "account is deactivated"))
	case errors.Is(err, service.ErrPasswordTooWeak):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeWeakPassword, "password must be between 6 and 72 characters"))
	case errors.Is(err, service.ErrPasswordMismatch):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codePasswordMismatch, "current password is incorrect"))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.ErrorCode(codeUserNotFound, "user not found"))
	case errors.Is(err, service.ErrNoResetInProgress):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeNoResetInProgress, "no password reset in progress"))
	case errors.Is(err, service.ErrResetExpired):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeResetExpired, "password reset has expired, request a new one"))
	case errors.Is(err, service.ErrResetOTPInvalid):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeInvalidOTP, "invalid verification code"))
	case errors.Is(err, service.ErrResetTokenInvalid):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeInvalidToken, "invalid or expired reset token"))
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, util.ErrorCode(codeUnauthenticated, "authentication required"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.ErrorCode(codeForbidden, "admin privileges required"))
	case errors.Is(err, service.ErrSelfProtection):
		return c.JSON(http.StatusBadRequest, util.ErrorCode(codeSelfProtection, "admins cannot deactivate, demote or delete their own account"))
	case errors.Is(err, service.ErrWardrobeNotFound):
		return c.JSON(http.StatusNotFound, util.ErrorCode(codeWardrobeNotFound, "wardrobe not found"))
	case errors.Is(err, service.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, util.ErrorCode(codeItemNotFound, "item not found"))
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, util.ErrorCode(codeInternal, "internal server error"))
	}
}
