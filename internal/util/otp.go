package util

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
)

const DefaultOTPLength = 6

var otpSource io.Reader = rand.Reader

// GenerateNumericOTP returns a code of the given length where every digit is
// drawn uniformly from 0-9. Leading zeros are allowed.
func GenerateNumericOTP(digits int) (string, error) {
	if digits <= 0 {
		digits = DefaultOTPLength
	}
	var builder strings.Builder
	builder.Grow(digits)
	ten := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(otpSource, ten)
		if err != nil {
			return "", err
		}
		builder.WriteByte(byte('0' + n.Int64()))
	}
	return builder.String(), nil
}

// IsNumericOTP reports whether code is exactly digits ASCII digits.
func IsNumericOTP(code string, digits int) bool {
	if digits <= 0 {
		digits = DefaultOTPLength
	}
	if len(code) != digits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
