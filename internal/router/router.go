package router

import (
	"net/http"

	"food_orders_backend/internal/handlers"
	"food_orders_backend/internal/middleware"
	"food_orders_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svc *services.Container) {
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	trackingHandler := handlers.NewTrackingHandler(svc.Tracking)
	lookupHandler := handlers.NewLookupHandler(svc.Lookup)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware())
	{
		SetupOrderRoutes(apiV1, orderHandler)
		SetupTrackingRoutes(apiV1, trackingHandler)
		SetupCustomerLookupRoutes(apiV1, lookupHandler)
	}
}
