package util

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SecretHashCost is the bcrypt cost used for passwords and reset codes.
const SecretHashCost = 10

const (
	MinPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordLength = 72
)

var ErrWeakPassword = errors.New("password must be between 6 and 72 characters")

func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" || len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// HashSecret returns a salted bcrypt hash of secret. It is used for account
// passwords and one-time reset codes alike.
func HashSecret(secret string) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("secret cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), SecretHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifySecret(secret, hash string) bool {
	if len(secret) == 0 || len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
