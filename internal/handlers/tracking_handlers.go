package handlers

import (
	"net/http"

	"food_orders_backend/internal/middleware"
	"food_orders_backend/internal/services"
	"food_orders_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	trackingService services.TrackingService
}

func NewTrackingHandler(ts services.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: ts}
}

func (h *TrackingHandler) GetTracking(c *gin.Context) {
	tracking, err := h.trackingService.GetTracking(c.Request.Context(), middleware.ActorFromContext(c), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err, "GetTracking")
		return
	}
	c.JSON(http.StatusOK, tracking)
}

// UpdateLocation accepts an operator location push.
func (h *TrackingHandler) UpdateLocation(c *gin.Context) {
	var req services.UpdateTrackingLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalidPayload(c, err.Error())
		return
	}

	tracking, err := h.trackingService.UpdateTrackingLocation(c.Request.Context(), middleware.ActorFromContext(c), c.Param("orderId"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateLocation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tracking": tracking})
}
