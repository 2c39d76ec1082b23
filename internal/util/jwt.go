package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposeResetLink     TokenPurpose = "password-reset-link"
	PurposeResetVerified TokenPurpose = "password-reset-verified"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	UserID   uuid.UUID    `json:"uid"`
	Email    string       `json:"email,omitempty"`
	Purpose  TokenPurpose `json:"purpose"`
	Verified bool         `json:"verified,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager signs and parses HS256 tokens. It does not care which claim
// shape the caller uses; the purpose claim tells them apart.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), now: time.Now}
}

// NewJWTManagerWithClock is NewJWTManager with a replaceable time source.
func NewJWTManagerWithClock(secret string, now func() time.Time) *JWTManager {
	if now == nil {
		now = time.Now
	}
	return &JWTManager{secret: []byte(secret), now: now}
}

// Issue signs claims valid for ttl and returns the token with its expiry.
// Subject, issued-at and expiry are always set by the manager; a token id is
// generated unless claims.ID is already filled in.
func (m *JWTManager) Issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if claims.UserID == uuid.Nil {
		return "", time.Time{}, errors.New("token subject is required")
	}
	if claims.Purpose == "" {
		return "", time.Time{}, errors.New("token purpose is required")
	}
	tokenID := claims.ID
	if tokenID == "" {
		tokenID = uuid.NewString()
	}
	issuedAt := m.now()
	expiresAt := issuedAt.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        tokenID,
		Subject:   claims.UserID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry of tokenString. Failures are
// reported as ErrExpiredToken or ErrInvalidToken.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
