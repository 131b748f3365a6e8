package router

import (
	"food_orders_backend/internal/handlers"
	"food_orders_backend/internal/middleware"
	"food_orders_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func allowed(op services.Operation) gin.HandlerFunc {
	return middleware.RoleAuthMiddleware(services.OperationRoles[op]...)
}

// SetupOrderRoutes sets up the order routes. Creation and reads by id are
// open to anonymous storefront customers.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", allowed(services.OpListOrders), orderHandler.GetOrders)
		orderRoutes.GET("/:orderId", orderHandler.GetOrderByID)
		orderRoutes.PATCH("/:orderId/status", allowed(services.OpUpdateOrderStatus), orderHandler.UpdateOrderStatus)
		orderRoutes.POST("/:orderId/confirm-delivery", allowed(services.OpConfirmDelivery), orderHandler.ConfirmDelivery)
	}
}

// SetupTrackingRoutes sets up the delivery tracking routes.
func SetupTrackingRoutes(apiGroup *gin.RouterGroup, trackingHandler *handlers.TrackingHandler) {
	trackingRoutes := apiGroup.Group("/orders/:orderId/tracking")
	{
		trackingRoutes.GET("", trackingHandler.GetTracking)
		trackingRoutes.POST("/location", allowed(services.OpPushTracking), trackingHandler.UpdateLocation)
	}
}

// SetupCustomerLookupRoutes sets up the OTP gated order-history lookup.
func SetupCustomerLookupRoutes(apiGroup *gin.RouterGroup, lookupHandler *handlers.LookupHandler) {
	lookupRoutes := apiGroup.Group("/customer/lookup")
	{
		lookupRoutes.POST("/request-otp", lookupHandler.RequestOTP)
		lookupRoutes.POST("/verify", lookupHandler.Verify)
	}
}
