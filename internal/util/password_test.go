package util

import (
	"strings"
	"testing"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("s3cret-pass")
	if err != nil {
		t.Fatalf("HashSecret returned error: %v", err)
	}
	if hash == "" || hash == "s3cret-pass" {
		t.Fatalf("expected an opaque hash, got %q", hash)
	}
	if !VerifySecret("s3cret-pass", hash) {
		t.Fatalf("expected verification to succeed")
	}
	if VerifySecret("wrong-pass", hash) {
		t.Fatalf("expected verification to fail for wrong secret")
	}
}

func TestHashSecretIsSalted(t *testing.T) {
	a, _ := HashSecret("123456")
	b, _ := HashSecret("123456")
	if a == b {
		t.Fatalf("expected different hashes for the same code")
	}
	if !VerifySecret("123456", a) || !VerifySecret("123456", b) {
		t.Fatalf("expected both hashes to verify")
	}
}

func TestHashSecretEmptyInput(t *testing.T) {
	if _, err := HashSecret(""); err == nil {
		t.Fatalf("expected error when secret empty")
	}
	if VerifySecret("", "$2a$10$abc") || VerifySecret("x", "") {
		t.Fatalf("expected empty inputs to fail verification")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "ok", input: "newpass1"},
		{name: "minimum", input: "abcdef"},
		{name: "too short", input: "abc", wantErr: true},
		{name: "blank", input: "       ", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 73), wantErr: true},
	}
	for _, tc := range tests {
		err := ValidatePassword(tc.input)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: expected error=%v, got %v", tc.name, tc.wantErr, err)
		}
	}
}
