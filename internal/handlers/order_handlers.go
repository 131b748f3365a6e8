package handlers

import (
	"net/http"
	"strconv"

	"food_orders_backend/internal/middleware"
	"food_orders_backend/internal/models"
	"food_orders_backend/internal/services"
	"food_orders_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder places a new order. Anonymous storefront customers are allowed.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalidPayload(c, err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		respondServiceError(c, err, "CreateOrder")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func optionalInt64Query(c *gin.Context, key string) (*int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.RespondInvalidPayload(c, key+" must be an epoch millisecond integer")
		return nil, false
	}
	return &v, true
}

func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		utils.RespondInvalidPayload(c, key+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

// GetOrders lists orders visible to the actor.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	req := services.ListOrdersRequest{
		TenantID: c.Query("tenantId"),
		Status:   models.OrderStatus(c.Query("status")),
	}
	var ok bool
	if req.CreatedFrom, ok = optionalInt64Query(c, "from"); !ok {
		return
	}
	if req.CreatedTo, ok = optionalInt64Query(c, "to"); !ok {
		return
	}
	if req.Offset, ok = intQuery(c, "offset", 0); !ok {
		return
	}
	if req.Limit, ok = intQuery(c, "limit", services.DefaultListLimit); !ok {
		return
	}
	if req.Limit > services.MaxListLimit {
		req.Limit = services.MaxListLimit
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), middleware.ActorFromContext(c), req)
	if err != nil {
		respondServiceError(c, err, "GetOrders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":   orders,
		"total":  total,
		"offset": req.Offset,
		"limit":  req.Limit,
	})
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), middleware.ActorFromContext(c), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err, "GetOrderByID")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order along the kitchen workflow.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalidPayload(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), middleware.ActorFromContext(c), c.Param("orderId"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateOrderStatus")
		return
	}
	c.JSON(http.StatusOK, order)
}

// ConfirmDelivery completes an order at the customer's door.
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	var req services.ConfirmDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalidPayload(c, err.Error())
		return
	}

	order, err := h.orderService.ConfirmDelivery(c.Request.Context(), middleware.ActorFromContext(c), c.Param("orderId"), req)
	if err != nil {
		respondServiceError(c, err, "ConfirmDelivery")
		return
	}
	c.JSON(http.StatusOK, order)
}
