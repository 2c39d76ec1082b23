package http

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeBodyRedactsSecrets(t *testing.T) {
	body := []byte(`{"email":"a@x.com","password":"hunter22","otp":"123456","temp_token":"abc","nested":{"new_password":"x","footprint":"kept"}}`)

	got, ok := sanitizeBody(body, "application/json").(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", got["email"])
	assert.Equal(t, redactedValue, got["password"])
	assert.Equal(t, redactedValue, got["otp"])
	assert.Equal(t, redactedValue, got["temp_token"])

	nested, ok := got["nested"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, redactedValue, nested["new_password"])
	assert.Equal(t, "kept", nested["footprint"])
}

func TestSanitizeBodyKeepsUserFlags(t *testing.T) {
	body := []byte(`{"token":"jwt","user":{"email":"a@x.com","has_password":true,"is_active":true}}`)

	got, ok := sanitizeBody(body, "application/json").(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, redactedValue, got["token"])

	user, ok := got["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, user["has_password"])
	assert.Equal(t, true, user["is_active"])
}

func TestSanitizeBodyForms(t *testing.T) {
	got, ok := sanitizeBody([]byte("email=a%40x.com&token=secret"), "application/x-www-form-urlencoded").(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", got["email"])
	assert.Equal(t, redactedValue, got["token"])

	assert.Equal(t, binaryValue, sanitizeBody([]byte("--boundary"), "multipart/form-data; boundary=x"))
	assert.Nil(t, sanitizeBody(nil, "application/json"))
}

func TestIsSensitiveKey(t *testing.T) {
	for _, key := range []string{"password", "current_password", "new_password", "password_hash", "token", "id_token", "reset_token", "temp_token", "otp", "otp_code", "email_otp"} {
		assert.True(t, isSensitiveKey(key), key)
	}
	for _, key := range []string{"email", "name", "footprint", "hotpot", "has_password", "token_expires_at"} {
		assert.False(t, isSensitiveKey(key), key)
	}
}

func TestSanitizeBodyTruncatesLargeJSON(t *testing.T) {
	items := make([]string, 500)
	for i := range items {
		items[i] = "linen shirt"
	}
	body, err := json.Marshal(map[string]interface{}{"tags": items, "password": "x"})
	require.NoError(t, err)

	got, ok := sanitizeBody(body, "application/json").(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, got["_truncated"])
	assert.NotContains(t, fmt.Sprint(got), `password:x`)
}

func TestRedactQuery(t *testing.T) {
	assert.Equal(t, "/reset-password?"+redactedValue, redactQuery("/reset-password?token=abc"))
	assert.Equal(t, "/api/admin/users?limit=5", redactQuery("/api/admin/users?limit=5"))
	assert.Equal(t, "/health", redactQuery("/health"))
}
