package handlers

import (
	"net/http"

	"food_orders_backend/internal/middleware"
	"food_orders_backend/internal/models"
	"food_orders_backend/internal/services"
	"food_orders_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves the customer order-history lookup.
type LookupHandler struct {
	lookupService services.LookupOTPService
}

func NewLookupHandler(ls services.LookupOTPService) *LookupHandler {
	return &LookupHandler{lookupService: ls}
}

func (h *LookupHandler) RequestOTP(c *gin.Context) {
	var req services.RequestLookupOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalidPayload(c, err.Error())
		return
	}

	challenge, err := h.lookupService.RequestOTP(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		respondServiceError(c, err, "RequestLookupOTP")
		return
	}
	c.JSON(http.StatusOK, challenge)
}

func (h *LookupHandler) Verify(c *gin.Context) {
	var req services.VerifyLookupOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalidPayload(c, err.Error())
		return
	}

	orders, err := h.lookupService.VerifyAndLookup(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		respondServiceError(c, err, "VerifyLookupOTP")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "total": len(orders)})
}
