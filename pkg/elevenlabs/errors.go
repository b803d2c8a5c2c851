package elevenlabs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes as constants
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeAuthentication     = "AUTHENTICATION_FAILED"
	ErrCodePaymentRequired    = "PAYMENT_REQUIRED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeRequestTimeout     = "REQUEST_TIMEOUT"
	ErrCodeUnprocessable      = "UNPROCESSABLE_ENTITY"
	ErrCodeRateLimit          = "RATE_LIMITED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeAPI                = "API_ERROR"

	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeConnectionFailed = "CONNECTION_FAILED"
	ErrCodeJSON             = "JSON_ERROR"
	ErrCodeWebSocket        = "WEBSOCKET_ERROR"
)

// maxErrorBodyLen caps how much raw response text is carried into an error
// message when the body is not parseable JSON.
const maxErrorBodyLen = 200

// APIError is the error type surfaced for every failure detected by the
// Transport. Code identifies the failure kind, StatusCode carries the HTTP
// status when the failure came from a response (0 otherwise), and Message is
// the best-effort human-readable text extracted from the remote response.
type APIError struct {
	Code       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func newAPIError(message, code string) *APIError {
	return &APIError{Code: code, Message: message}
}

func newConfigError(message string) *APIError {
	return newAPIError(message, ErrCodeConfigInvalid)
}

func newConnectionError(message string) *APIError {
	return newAPIError(message, ErrCodeConnectionFailed)
}

func newJSONError(message string) *APIError {
	return newAPIError(message, ErrCodeJSON)
}

func newWebSocketError(message string) *APIError {
	return newAPIError(message, ErrCodeWebSocket)
}

// IsCode reports whether err is an *APIError carrying the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// errorCodeForStatus maps an HTTP status to an error code. Unlisted 4xx
// statuses become validation failures; anything else falls back to API_ERROR.
func errorCodeForStatus(status int) string {
	switch status {
	case 400:
		return ErrCodeBadRequest
	case 401:
		return ErrCodeAuthentication
	case 402:
		return ErrCodePaymentRequired
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeNotFound
	case 408:
		return ErrCodeRequestTimeout
	case 422:
		return ErrCodeUnprocessable
	case 429:
		return ErrCodeRateLimit
	case 503:
		return ErrCodeServiceUnavailable
	}
	if status >= 400 && status < 500 {
		return ErrCodeValidation
	}
	return ErrCodeAPI
}

var defaultStatusMessages = map[string]string{
	ErrCodeBadRequest:         "bad request",
	ErrCodeAuthentication:     "invalid or missing API key",
	ErrCodePaymentRequired:    "payment required",
	ErrCodeForbidden:          "access forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeRequestTimeout:     "request timed out",
	ErrCodeUnprocessable:      "unprocessable entity",
	ErrCodeRateLimit:          "rate limit exceeded",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeValidation:         "request validation failed",
	ErrCodeAPI:                "unexpected API response",
}

func newStatusError(status int, body []byte) *APIError {
	code := errorCodeForStatus(status)
	return &APIError{
		Code:       code,
		StatusCode: status,
		Message:    extractErrorMessage(body, code),
	}
}

// extractErrorMessage pulls a human-readable message out of an error response
// body. JSON bodies are searched for the first of detail/message/error/errors,
// recursing one level into nested objects and arrays. Non-JSON bodies are
// returned verbatim, truncated to maxErrorBodyLen. Empty bodies fall back to
// the per-status default.
func extractErrorMessage(body []byte, code string) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return defaultStatusMessages[code]
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := messageFromValue(parsed, 0); msg != "" {
			return msg
		}
	}

	if len(text) > maxErrorBodyLen {
		text = text[:maxErrorBodyLen]
	}
	return text
}

func messageFromValue(v any, depth int) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if depth > 1 {
			return ""
		}
		for _, key := range []string{"detail", "message", "error", "errors"} {
			if inner, ok := val[key]; ok {
				if msg := messageFromValue(inner, depth+1); msg != "" {
					return msg
				}
			}
		}
	case []any:
		if depth > 1 || len(val) == 0 {
			return ""
		}
		return messageFromValue(val[0], depth+1)
	}
	return ""
}
