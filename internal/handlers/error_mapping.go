package handlers

import (
	"errors"
	"net/http"
	"time"

	"food_orders_backend/internal/services"
	"food_orders_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto the API error envelope.
// Unknown errors are logged and reported as 500 without details.
func respondServiceError(c *gin.Context, err error, operation string) {
	var inactive *services.SubscriptionInactiveError
	var invalidOTP *services.InvalidOTPError

	switch {
	case errors.As(err, &inactive):
		meta := map[string]interface{}{
			"tenantId": inactive.TenantID,
			"status":   inactive.Status,
		}
		if inactive.CurrentPeriodEnd != nil {
			meta["currentPeriodEnd"] = inactive.CurrentPeriodEnd.UTC().Format(time.RFC3339)
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusPaymentRequired, utils.ErrCodeSubscriptionInactive,
			"Tenant subscription is not active", err.Error()).WithMeta(meta))
	case errors.As(err, &invalidOTP):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeInvalidOTP,
			"Incorrect OTP", err.Error()).WithMeta(map[string]interface{}{"remainingAttempts": invalidOTP.RemainingAttempts}))
	case errors.Is(err, services.ErrInvalidOTP):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidOTP, "Delivery OTP does not match", ""))
	case errors.Is(err, services.ErrInvalidPayload):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", err.Error()))
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Forbidden", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Not found", ""))
	case errors.Is(err, services.ErrDuplicateOrder):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeDuplicateOrder, "Order already exists", err.Error()))
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInvalidTransition, "Status transition not allowed", err.Error()))
	case errors.Is(err, services.ErrOTPRequestInvalid):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusGone, utils.ErrCodeOTPRequestInvalid, "OTP request is invalid or expired", ""))
	case errors.Is(err, services.ErrPhoneMismatch):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodePhoneMismatch, "Phone number does not match the OTP request", ""))
	case errors.Is(err, services.ErrOTPAttemptsExceeded):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeOTPAttemptsExceeded, "Too many incorrect attempts; request a new OTP", ""))
	default:
		utils.LogError(err, operation+" failed", map[string]interface{}{"path": c.FullPath()})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error", ""))
	}
}
