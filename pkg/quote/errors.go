package quote

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrMalformedQuote reports a response body that does not match the
	// backend contract.
	ErrMalformedQuote = errors.New("quote: malformed quote payload")
	// ErrInvalidBaseURL reports a base URL without scheme or host.
	ErrInvalidBaseURL = errors.New("quote: base url must be absolute")
)

// APIError captures non-2xx responses from the backend.
type APIError struct {
	StatusCode int
	// Message is taken from a JSON "detail", "message" or "error" field when
	// present, otherwise it is the trimmed body.
	Message string
	RawBody []byte
}

func (e *APIError) Error() string {
	b := strings.Builder{}
	b.WriteString("quote: backend error (status=")
	b.WriteString(strconv.Itoa(e.StatusCode))
	b.WriteString(")")
	if m := strings.TrimSpace(e.Message); m != "" {
		b.WriteString(": ")
		b.WriteString(m)
	}
	return b.String()
}

// IsNotFound reports whether err is an APIError with status 404, which the
// backend uses when no quote matches the tag.
func IsNotFound(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == 404
	}
	return false
}

func buildAPIError(status int, body []byte) error {
	trimmed := strings.TrimSpace(string(body))
	ae := &APIError{StatusCode: status, RawBody: body, Message: trimmed}
	if !strings.HasPrefix(trimmed, "{") {
		return ae
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return ae
	}
	for _, key := range []string{"detail", "message", "error"} {
		if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
			ae.Message = strings.TrimSpace(v)
			break
		}
	}
	return ae
}
