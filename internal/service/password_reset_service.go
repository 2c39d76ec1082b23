package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/metrics"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

// PasswordResetNotifier delivers the reset link token and code to the user.
type PasswordResetNotifier interface {
	SendPasswordReset(ctx context.Context, to, rawToken, rawOTP, name string) error
}

type PasswordResetConfig struct {
	LinkTTL       time.Duration
	VerifiedTTL   time.Duration
	OTPLength     int
	NotifyTimeout time.Duration
	// ExposeSecrets returns the raw code and link token in the response when
	// the notification could not be delivered. Never enabled in production.
	ExposeSecrets bool
}

func (c PasswordResetConfig) withDefaults() PasswordResetConfig {
	if c.LinkTTL <= 0 {
		c.LinkTTL = time.Hour
	}
	if c.VerifiedTTL <= 0 {
		c.VerifiedTTL = 15 * time.Minute
	}
	if c.OTPLength <= 0 {
		c.OTPLength = util.DefaultOTPLength
	}
	if c.NotifyTimeout <= 0 {
		c.NotifyTimeout = 10 * time.Second
	}
	return c
}

type PasswordResetService struct {
	users    ports.UserRepository
	tokens   *util.JWTManager
	notifier PasswordResetNotifier
	cfg      PasswordResetConfig
	now      func() time.Time
}

// ResetRequestResult describes an accepted reset request. OTP and Token are
// only filled when delivery failed and secrets may be exposed.
type ResetRequestResult struct {
	Email     string
	Delivered bool
	OTP       string
	Token     string
}

type VerifiedReset struct {
	Email     string
	Token     string
	ExpiresAt time.Time
}

func NewPasswordResetService(users ports.UserRepository, tokens *util.JWTManager, notifier PasswordResetNotifier, cfg PasswordResetConfig) *PasswordResetService {
	return &PasswordResetService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
}

// RequestReset starts a reset for email, replacing any reset already in
// flight for that user.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) (*ResetRequestResult, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			metrics.ObserveReset(metrics.StageRequest, metrics.OutcomeRejected)
			return nil, ErrUserNotFound
		}
		metrics.ObserveReset(metrics.StageRequest, metrics.OutcomeError)
		return nil, err
	}
	if user.Provider != domain.ProviderLocal {
		metrics.ObserveReset(metrics.StageRequest, metrics.OutcomeRejected)
		return nil, ErrOAuthAccount
	}

	otp, err := util.GenerateNumericOTP(s.cfg.OTPLength)
	if err != nil {
		return nil, err
	}
	otpHash, err := util.HashSecret(otp)
	if err != nil {
		return nil, err
	}
	linkClaims := util.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Purpose: util.PurposeResetLink,
	}
	linkClaims.ID = uuid.NewString()
	token, _, err := s.tokens.Issue(linkClaims, s.cfg.LinkTTL)
	if err != nil {
		return nil, err
	}

	state := domain.ResetState{
		OTPHash:   otpHash,
		TokenID:   linkClaims.ID,
		ExpiresAt: s.now().Add(s.cfg.LinkTTL),
	}
	if err := s.users.SaveResetState(ctx, user.ID, state); err != nil {
		metrics.ObserveReset(metrics.StageRequest, metrics.OutcomeError)
		return nil, err
	}

	result := &ResetRequestResult{Email: user.Email, Delivered: true}
	if err := s.notify(ctx, user, token, otp); err != nil {
		log.Printf("password reset for user %s: %v", user.ID, err)
		result.Delivered = false
		if s.cfg.ExposeSecrets {
			result.OTP = otp
			result.Token = token
		}
		metrics.ObserveReset(metrics.StageRequest, metrics.OutcomeDegraded)
		return result, nil
	}
	metrics.ObserveReset(metrics.StageRequest, metrics.OutcomeSuccess)
	return result, nil
}

func (s *PasswordResetService) notify(ctx context.Context, user *domain.User, token, otp string) error {
	if s.notifier == nil {
		return fmt.Errorf("%w: no notifier configured", ErrNotificationDelivery)
	}
	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()
	if err := s.notifier.SendPasswordReset(sendCtx, user.Email, token, otp, user.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationDelivery, err)
	}
	return nil
}

// VerifyOTP exchanges a correct code for a short-lived verified token. The
// stored reset is left in place so the link path keeps working.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, otp string) (*VerifiedReset, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			metrics.ObserveReset(metrics.StageVerify, metrics.OutcomeRejected)
			return nil, ErrUserNotFound
		}
		metrics.ObserveReset(metrics.StageVerify, metrics.OutcomeError)
		return nil, err
	}
	if err := s.checkInFlight(user); err != nil {
		metrics.ObserveReset(metrics.StageVerify, metrics.OutcomeRejected)
		return nil, err
	}
	if !util.IsNumericOTP(otp, s.cfg.OTPLength) || !util.VerifySecret(otp, user.Reset.OTPHash) {
		metrics.ObserveReset(metrics.StageVerify, metrics.OutcomeRejected)
		return nil, ErrResetOTPInvalid
	}

	token, expiresAt, err := s.tokens.Issue(util.Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Purpose:  util.PurposeResetVerified,
		Verified: true,
	}, s.cfg.VerifiedTTL)
	if err != nil {
		return nil, err
	}
	metrics.ObserveReset(metrics.StageVerify, metrics.OutcomeSuccess)
	return &VerifiedReset{Email: user.Email, Token: token, ExpiresAt: expiresAt}, nil
}

// CompleteReset sets a new password using either the emailed link token or a
// verified token from VerifyOTP. The stored reset window is checked as well
// as the token's own expiry, and the reset is cleared with the new hash.
func (s *PasswordResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return ErrPasswordTooWeak
	}
	claims, err := s.tokens.Parse(token)
	if err != nil || !resetPurpose(claims) {
		metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeRejected)
		return ErrResetTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeRejected)
			return ErrUserNotFound
		}
		metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeError)
		return err
	}
	if err := s.checkInFlight(user); err != nil {
		metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeRejected)
		return err
	}

	hash, err := util.HashSecret(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.CompletePasswordReset(ctx, user.ID, hash, s.now()); err != nil {
		// the reset was consumed or expired after checkInFlight read it
		if isNotFound(err) {
			metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeRejected)
			return ErrNoResetInProgress
		}
		metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeError)
		return err
	}
	metrics.ObserveReset(metrics.StageComplete, metrics.OutcomeSuccess)
	return nil
}

func (s *PasswordResetService) checkInFlight(user *domain.User) error {
	if user.Reset == nil {
		return ErrNoResetInProgress
	}
	if user.Reset.Expired(s.now()) {
		return ErrResetExpired
	}
	return nil
}

func resetPurpose(claims *util.Claims) bool {
	switch claims.Purpose {
	case util.PurposeResetLink:
		return true
	case util.PurposeResetVerified:
		return claims.Verified
	default:
		return false
	}
}
