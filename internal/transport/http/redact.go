package http

import (
	"encoding/json"
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

const (
	redactedValue = "[REDACTED]"
	binaryValue   = "[binary]"

	maxLoggedBody   = 2048
	maxPreviewDepth = 3
	maxPreviewKeys  = 8
	maxPreviewItems = 3
	maxPreviewText  = 256
)

// sanitizeBody turns a request or response body into something safe to log.
// Secrets are replaced, binary payloads are summarized and oversized JSON is
// reduced to a preview.
func sanitizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		return binaryValue
	case mediaType == echo.MIMEApplicationForm:
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			return capSize(redactForm(values))
		}
	case mediaType == echo.MIMEApplicationJSON || json.Valid(body):
		var doc interface{}
		if err := json.Unmarshal(body, &doc); err == nil {
			return capSize(redactValue(doc, false))
		}
	}

	if !utf8.Valid(body) || hasControlRunes(body) {
		return binaryValue
	}
	text := string(body)
	if mentionsSecret(strings.ToLower(text)) {
		return redactedValue
	}
	return truncate(text, maxLoggedBody)
}

// isSensitiveKey matches password fields, reset codes and every token field
// (token, temp_token, reset_token, id_token). Boolean flags such as
// has_password are left alone.
func isSensitiveKey(key string) bool {
	if strings.HasPrefix(key, "has_") || strings.HasPrefix(key, "is_") {
		return false
	}
	switch {
	case strings.HasSuffix(key, "password"), strings.HasPrefix(key, "password_"):
		return true
	case strings.HasSuffix(key, "token"):
		return true
	case key == "otp", strings.HasPrefix(key, "otp_"), strings.HasSuffix(key, "_otp"):
		return true
	}
	return false
}

// mentionsSecret is the coarse check for bodies that could not be parsed.
func mentionsSecret(text string) bool {
	return strings.Contains(text, "password") || strings.Contains(text, "token") || strings.Contains(text, `"otp"`)
}

func redactValue(v interface{}, sensitive bool) interface{} {
	if sensitive {
		return redactedValue
	}
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for key, val := range t {
			out[key] = redactValue(val, isSensitiveKey(strings.ToLower(key)))
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = redactValue(t[i], false)
		}
		return out
	case string:
		return truncate(t, maxLoggedBody)
	default:
		return t
	}
}

func redactForm(values url.Values) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if isSensitiveKey(strings.ToLower(key)) {
			out[key] = redactedValue
			continue
		}
		if len(vals) == 1 {
			out[key] = truncate(vals[0], maxLoggedBody)
			continue
		}
		list := make([]interface{}, len(vals))
		for i, v := range vals {
			list[i] = truncate(v, maxLoggedBody)
		}
		out[key] = list
	}
	return out
}

func capSize(v interface{}) interface{} {
	encoded, err := json.Marshal(v)
	if err != nil || len(encoded) <= maxLoggedBody {
		return v
	}
	return map[string]interface{}{
		"_truncated": true,
		"_bytes":     len(encoded),
		"_preview":   preview(v, 0),
	}
}

func preview(v interface{}, depth int) interface{} {
	if depth >= maxPreviewDepth {
		return "..."
	}
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make(map[string]interface{})
		for i, key := range keys {
			if i == maxPreviewKeys {
				out["_omitted_fields"] = len(keys) - i
				break
			}
			out[key] = preview(t[key], depth+1)
		}
		return out
	case []interface{}:
		n := len(t)
		if n > maxPreviewItems {
			n = maxPreviewItems
		}
		sample := make([]interface{}, n)
		for i := 0; i < n; i++ {
			sample[i] = preview(t[i], depth+1)
		}
		return map[string]interface{}{"_total_items": len(t), "_sample": sample}
	case string:
		return truncate(t, maxPreviewText)
	default:
		return t
	}
}

func hasControlRunes(data []byte) bool {
	for _, r := range string(data) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + "...(truncated)"
}
