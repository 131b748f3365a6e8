package services

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors returned by the order, tracking and lookup services.
// Handlers map them to API error codes with errors.Is.
var (
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrDuplicateOrder       = errors.New("order already exists")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrSubscriptionInactive = errors.New("tenant subscription is not active")
	ErrInvalidOTP           = errors.New("invalid otp")
	ErrOTPRequestInvalid    = errors.New("otp request is invalid or expired")
	ErrPhoneMismatch        = errors.New("phone does not match otp request")
	ErrOTPAttemptsExceeded  = errors.New("otp attempts exceeded")
)

// SubscriptionInactiveError carries what the gate observed so clients can tell
// a paywalled tenant apart from a missing resource.
type SubscriptionInactiveError struct {
	TenantID         string
	Status           string
	CurrentPeriodEnd *time.Time
}

func (e *SubscriptionInactiveError) Error() string {
	return fmt.Sprintf("%s: tenant %s has subscription status %q", ErrSubscriptionInactive, e.TenantID, e.Status)
}

func (e *SubscriptionInactiveError) Is(target error) bool {
	return target == ErrSubscriptionInactive
}

// InvalidOTPError is returned for a wrong lookup code while attempts remain.
type InvalidOTPError struct {
	RemainingAttempts int
}

func (e *InvalidOTPError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrInvalidOTP, e.RemainingAttempts)
}

func (e *InvalidOTPError) Is(target error) bool {
	return target == ErrInvalidOTP
}

func invalidPayload(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}
