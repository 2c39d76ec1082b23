package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/njprem/Glamoure_APP_BackEnd/internal/domain"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Glamoure_APP_BackEnd/internal/util"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

type idTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type AuthService struct {
	users          ports.UserRepository
	tokens         *util.JWTManager
	sessionTTL     time.Duration
	adminEmail     string
	googleAudience string

	validateIDToken idTokenValidator
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(users ports.UserRepository, tokens *util.JWTManager, sessionTTL time.Duration, adminEmail, googleAudience string) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		users:           users,
		tokens:          tokens,
		sessionTTL:      sessionTTL,
		adminEmail:      domain.NormalizeEmail(adminEmail),
		googleAudience:  googleAudience,
		validateIDToken: idtoken.Validate,
	}
}

// roleFor grants admin to the configured admin address at creation time.
func (s *AuthService) roleFor(email string) domain.Role {
	if s.adminEmail != "" && email == s.adminEmail {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, ErrPasswordTooWeak
	}

	hash, err := util.HashSecret(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateEmailUser(ctx, name, email, hash, s.roleFor(email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Provider != domain.ProviderLocal {
		return nil, ErrOAuthAccount
	}
	if !user.HasPassword() || !util.VerifySecret(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return s.issueSession(user)
}

// LoginWithGoogle signs in with a Google ID token. The identity is matched by
// OAuth subject first, then by email (linking the existing account), and a new
// account is created otherwise.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrInvalidCredentials
	}
	payload, err := s.validateIDToken(ctx, idToken, s.googleAudience)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	email, _ := payload.Claims["email"].(string)
	email = domain.NormalizeEmail(email)
	if payload.Subject == "" || email == "" {
		return nil, ErrInvalidCredentials
	}
	name, _ := payload.Claims["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	var picture *string
	if p, _ := payload.Claims["picture"].(string); strings.TrimSpace(p) != "" {
		picture = &p
	}

	user, err := s.users.FindByOAuthID(ctx, payload.Subject)
	switch {
	case err == nil:
	case isNotFound(err):
		user, err = s.linkOrCreateGoogleUser(ctx, name, email, payload.Subject, picture)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return s.issueSession(user)
}

func (s *AuthService) linkOrCreateGoogleUser(ctx context.Context, name, email, subject string, picture *string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return s.users.LinkOAuth(ctx, existing.ID, subject, picture)
	}
	if !isNotFound(err) {
		return nil, err
	}
	user, err := s.users.CreateOAuthUser(ctx, name, email, subject, picture, s.roleFor(email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a session token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil || claims.Purpose != util.PurposeSession {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, picture *string) (*domain.User, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		name = &trimmed
	}
	if picture != nil {
		trimmed := strings.TrimSpace(*picture)
		picture = &trimmed
	}
	user, err := s.users.UpdateProfile(ctx, userID, name, picture)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword is only available to local accounts, which must present
// their current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Provider != domain.ProviderLocal {
		return ErrOAuthAccount
	}
	if !user.HasPassword() || !util.VerifySecret(currentPassword, *user.PasswordHash) {
		return ErrPasswordMismatch
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return ErrPasswordTooWeak
	}
	hash, err := util.HashSecret(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueSession(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(util.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Purpose: util.PurposeSession,
	}, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

