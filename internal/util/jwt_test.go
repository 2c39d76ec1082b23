package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestJWTManagerIssueAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret")

	userID := uuid.New()
	token, expiresAt, err := manager.Issue(Claims{UserID: userID, Email: "user@example.com", Purpose: PurposeResetVerified, Verified: true}, time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("expected subject to mirror user id, got %q", claims.Subject)
	}
	if claims.Purpose != PurposeResetVerified || !claims.Verified {
		t.Fatalf("expected verified reset claims, got %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id to be set")
	}
}

func TestJWTManagerIssueAssignsDistinctIDs(t *testing.T) {
	manager := NewJWTManager("secret")
	userID := uuid.New()
	first, _, _ := manager.Issue(Claims{UserID: userID, Purpose: PurposeSession}, time.Hour)
	second, _, _ := manager.Issue(Claims{UserID: userID, Purpose: PurposeSession}, time.Hour)

	a, err := manager.Parse(first)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	b, err := manager.Parse(second)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected unique token ids, both were %s", a.ID)
	}
}

func TestJWTManagerIssueRequiresSubjectAndPurpose(t *testing.T) {
	manager := NewJWTManager("secret")
	if _, _, err := manager.Issue(Claims{Purpose: PurposeSession}, time.Hour); err == nil {
		t.Fatalf("expected error without subject")
	}
	if _, _, err := manager.Issue(Claims{UserID: uuid.New()}, time.Hour); err == nil {
		t.Fatalf("expected error without purpose")
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := NewJWTManagerWithClock("secret", func() time.Time { return issuedAt })
	token, _, err := issuer.Issue(Claims{UserID: uuid.New(), Purpose: PurposeResetLink}, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = NewJWTManager("secret").Parse(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManagerParseRejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTManager("one").Issue(Claims{UserID: uuid.New(), Purpose: PurposeSession}, time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := NewJWTManager("two").Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := NewJWTManager("one").Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestJWTManagerParseRejectsMissingExpiry(t *testing.T) {
	claims := Claims{UserID: uuid.New(), Purpose: PurposeSession}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTManager("secret").Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
