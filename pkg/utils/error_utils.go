package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIError is the standardized error body returned under the "error" key.
type APIError struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code,omitempty"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

// WithMeta attaches machine readable diagnostics to the error.
func (e *APIError) WithMeta(meta map[string]interface{}) *APIError {
	e.Meta = meta
	return e
}

// RespondWithError sends a standardized JSON error response
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, gin.H{"error": err})
	c.Abort()
}

// Error codes shared by the order, tracking and lookup endpoints.
const (
	ErrCodeInvalidPayload       = "INVALID_PAYLOAD"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeDuplicateOrder       = "DUPLICATE_ORDER"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeSubscriptionInactive = "SUBSCRIPTION_INACTIVE"
	ErrCodeInvalidOTP           = "INVALID_OTP"
	ErrCodeOTPRequestInvalid    = "OTP_REQUEST_INVALID"
	ErrCodePhoneMismatch        = "PHONE_MISMATCH"
	ErrCodeOTPAttemptsExceeded  = "OTP_ATTEMPTS_EXCEEDED"
	ErrCodeInternalServerError  = "INTERNAL_SERVER_ERROR"
)

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RespondInvalidPayload is the shortcut for request bodies that fail to bind.
func RespondInvalidPayload(c *gin.Context, details string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid request payload", details))
}
