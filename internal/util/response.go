package util

type Envelope map[string]any

// ErrorCode builds the error body with a stable machine-readable reason.
func ErrorCode(code, message string) Envelope {
	return Envelope{"error": message, "code": code}
}
