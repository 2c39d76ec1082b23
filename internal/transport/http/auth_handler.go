package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/service"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

type AuthHandler struct {
	auth   *service.AuthService
	resets *service.PasswordResetService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, resets *service.PasswordResetService) {
	h := &AuthHandler{auth: auth, resets: resets}

	g := e.Group("/api/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/google", h.google)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/verify-otp", h.verifyOTP)
	g.POST("/reset-password", h.resetPassword)

	// Per-route so unmatched /api/auth paths still reach 404/405.
	requireAuth := RequireAuth(auth)
	g.GET("/profile", h.profile, requireAuth)
	g.PUT("/profile", h.updateProfile, requireAuth)
	g.PUT("/password", h.changePassword, requireAuth)
}

func tokenResponse(message string, result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		Message:   message,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      newAuthUser(result.User),
	}
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, tokenResponse("registration successful", result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse("login successful", result))
}

func (h *AuthHandler) google(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.ErrorCode(codeInvalidCreds, "invalid Google token"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse("login successful", result))
}

func (h *AuthHandler) profile(c echo.Context) error {
	user, _ := CurrentUser(c)
	return c.JSON(http.StatusOK, AuthUserResponse{User: newAuthUser(user)})
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	user, _ := CurrentUser(c)
	var req UpdateProfileRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	updated, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, req.Name, req.ProfilePicture)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, AuthUserResponse{User: newAuthUser(updated)})
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	user, _ := CurrentUser(c)
	var req ChangePasswordRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	result, err := h.resets.RequestReset(c.Request().Context(), req.Email)
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	resp := ForgotPasswordResponse{
		Message: "password reset instructions sent to your email",
		Email:   result.Email,
	}
	if !result.Delivered {
		resp.Message = "password reset created but the email could not be sent"
		if result.OTP != "" {
			resp.OTP = result.OTP
			resp.ResetToken = result.Token
			resp.Note = "email delivery failed; reset secrets are returned because secret exposure is enabled outside production"
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) verifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	verified, err := h.resets.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, VerifyOTPResponse{
		Message:   "code verified",
		TempToken: verified.Token,
		Email:     verified.Email,
	})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindRequest(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.resets.CompleteReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "password has been reset"})
}
