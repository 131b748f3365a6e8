package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
	"food_orders_backend/pkg/utils"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// allowedTransitions is the whitelist used by UpdateOrderStatus. Orders out
// for delivery are completed only through ConfirmDelivery.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusConfirmed:      {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery, models.OrderStatusCancelled},
	models.OrderStatusOutForDelivery: {},
}

// CanTransition reports whether UpdateOrderStatus may move an order from -> to.
func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CreateOrderConfirmation carries the optional delivery OTP set at checkout.
type CreateOrderConfirmation struct {
	ExpectedOTP string `json:"expectedOtp"`
}

// CreateOrderRequest is the order placement payload.
type CreateOrderRequest struct {
	OrderID                     string                   `json:"orderId"`
	TenantID                    string                   `json:"tenantId"`
	Customer                    models.Customer          `json:"customer"`
	Address                     models.Address           `json:"address"`
	Items                       []models.OrderItem       `json:"items"`
	Totals                      *models.Totals           `json:"totals"`
	PaymentMethod               models.PaymentMethod     `json:"paymentMethod"`
	PaymentReference            string                   `json:"paymentReference"`
	DeliveryFeeMode             models.DeliveryFeeMode   `json:"deliveryFeeMode"`
	DeliveryFeeSettlementStatus models.SettlementStatus  `json:"deliveryFeeSettlementStatus"`
	DeliveryConfirmation        *CreateOrderConfirmation `json:"deliveryConfirmation"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// ConfirmDeliveryRequest is submitted by the delivery agent at the door.
type ConfirmDeliveryRequest struct {
	OTPCode            string                  `json:"otpCode"`
	ConfirmedBy        string                  `json:"confirmedBy"`
	ProofNote          string                  `json:"proofNote"`
	CollectDeliveryFee bool                    `json:"collectDeliveryFee"`
	CollectionAmount   *float64                `json:"collectionAmount"`
	CollectionMethod   models.CollectionMethod `json:"collectionMethod"`
	CollectionNotes    string                  `json:"collectionNotes"`
}

// ListOrdersRequest filters an order listing. Zero values mean "no filter".
type ListOrdersRequest struct {
	TenantID    string
	Status      models.OrderStatus
	CreatedFrom *int64
	CreatedTo   *int64
	Offset      int
	Limit       int
}

type OrderService interface {
	CreateOrder(ctx context.Context, actor models.Actor, req CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context, actor models.Actor, req ListOrdersRequest) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID string, req UpdateOrderStatusRequest) (*models.Order, error)
	ConfirmDelivery(ctx context.Context, actor models.Actor, orderID string, req ConfirmDeliveryRequest) (*models.Order, error)
}

type orderService struct {
	orderRepo       repositories.OrderRepository
	tracking        *TrackingSync
	gate            *SubscriptionGate
	locks           *KeyedMutex
	auditor         Auditor
	defaultTenantID string
	now             func() time.Time
}

// NewOrderService wires the order lifecycle engine. locks must be shared with
// every other component that mutates orders or tracking.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	tracking *TrackingSync,
	gate *SubscriptionGate,
	locks *KeyedMutex,
	auditor Auditor,
	defaultTenantID string,
	now func() time.Time,
) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		orderRepo:       orderRepo,
		tracking:        tracking,
		gate:            gate,
		locks:           locks,
		auditor:         auditor,
		defaultTenantID: defaultTenantID,
		now:             now,
	}
}

func validateCreateOrder(req *CreateOrderRequest) error {
	switch {
	case utils.IsEmpty(req.OrderID):
		return invalidPayload("orderId is required")
	case utils.IsEmpty(req.Customer.Name):
		return invalidPayload("customer.name is required")
	case utils.IsEmpty(req.Customer.Phone):
		return invalidPayload("customer.phone is required")
	case utils.IsEmpty(req.Address.Line1):
		return invalidPayload("address.line1 is required")
	case utils.IsEmpty(req.Address.City):
		return invalidPayload("address.city is required")
	case len(req.Items) == 0:
		return invalidPayload("items must be a non-empty array")
	case req.Totals == nil:
		return invalidPayload("totals are required")
	case !req.PaymentMethod.Valid():
		return invalidPayload("paymentMethod must be razorpay or whatsapp")
	case utils.IsEmpty(req.PaymentReference):
		return invalidPayload("paymentReference is required")
	case req.DeliveryFeeMode != "" && !req.DeliveryFeeMode.Valid():
		return invalidPayload("unknown deliveryFeeMode %q", req.DeliveryFeeMode)
	case req.DeliveryFeeSettlementStatus != "" && !req.DeliveryFeeSettlementStatus.Valid():
		return invalidPayload("unknown deliveryFeeSettlementStatus %q", req.DeliveryFeeSettlementStatus)
	}

	for i, item := range req.Items {
		if item.Quantity < 1 {
			return invalidPayload("items[%d].quantity must be at least 1", i)
		}
		if item.Price < 0 {
			return invalidPayload("items[%d].price must not be negative", i)
		}
	}

	t := req.Totals
	if t.GrandTotal < 0 {
		return invalidPayload("totals.grandTotal must not be negative")
	}
	if t.Subtotal < 0 || t.DeliveryFee < 0 || t.Tax < 0 || t.PayableNow < 0 ||
		(t.DeliveryFeeDueAtDrop != nil && *t.DeliveryFeeDueAtDrop < 0) {
		return invalidPayload("totals must not be negative")
	}
	return nil
}

// redactFor hides the door OTP from staff roles that handle the order
// physically. Customers and tenant/platform admins keep seeing it.
func redactFor(actor models.Actor, order *models.Order) *models.Order {
	switch actor.Role {
	case models.RoleKitchenStaff, models.RoleDeliveryAgent:
		order.DeliveryConfirmation.ExpectedOTP = ""
	}
	return order
}

// resolveTenant picks the tenant an order is placed for.
func (s *orderService) resolveTenant(actor models.Actor, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	switch {
	case actor.IsPlatformAdmin():
		if requested != "" {
			return requested, nil
		}
		if actor.TenantID != "" {
			return actor.TenantID, nil
		}
		return s.defaultTenantID, nil
	case !actor.IsAnonymous() && actor.TenantID != "":
		if requested != "" && requested != actor.TenantID {
			return "", fmt.Errorf("%w: actor of tenant %s cannot place orders for tenant %s", ErrForbidden, actor.TenantID, requested)
		}
		return actor.TenantID, nil
	case requested != "":
		return requested, nil
	default:
		return s.defaultTenantID, nil
	}
}

func (s *orderService) CreateOrder(ctx context.Context, actor models.Actor, req CreateOrderRequest) (*models.Order, error) {
	if err := Authorize(actor, OpCreateOrder); err != nil {
		return nil, err
	}
	if err := validateCreateOrder(&req); err != nil {
		return nil, err
	}
	orderID := strings.TrimSpace(req.OrderID)

	unlock := s.locks.Lock(orderID)
	defer unlock()

	if _, err := s.orderRepo.GetOrderByID(ctx, orderID); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, orderID)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("checking order %s: %w", orderID, err)
	}

	tenantID, err := s.resolveTenant(actor, req.TenantID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Check(ctx, tenantID); err != nil {
		return nil, err
	}

	mode := req.DeliveryFeeMode
	if mode == "" {
		mode = models.DeliveryFeeModePrepaid
	}
	settlement := req.DeliveryFeeSettlementStatus
	if settlement == "" {
		settlement = models.SettlementForMode(mode)
	}
	var confirmation models.DeliveryConfirmation
	if req.DeliveryConfirmation != nil {
		confirmation.ExpectedOTP = strings.TrimSpace(req.DeliveryConfirmation.ExpectedOTP)
	}

	nowMs := s.now().UnixMilli()
	order := &models.Order{
		OrderID:                     orderID,
		TenantID:                    tenantID,
		Status:                      models.OrderStatusConfirmed,
		Customer:                    req.Customer,
		Address:                     req.Address,
		Items:                       req.Items,
		Totals:                      *req.Totals,
		PaymentMethod:               req.PaymentMethod,
		PaymentReference:            strings.TrimSpace(req.PaymentReference),
		DeliveryFeeMode:             mode,
		DeliveryFeeSettlementStatus: settlement,
		DeliveryConfirmation:        confirmation,
		CreatedAt:                   nowMs,
		UpdatedAt:                   nowMs,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, orderID)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if _, err := s.tracking.EnsureInitial(ctx, order); err != nil {
		utils.LogError(err, "Failed to create initial tracking", map[string]interface{}{"order_id": orderID})
	}

	s.auditor.Audit(auditEntry(AuditOrderCreate, actor, tenantID, orderID, nowMs, map[string]interface{}{
		"grandTotal":      order.Totals.GrandTotal,
		"paymentMethod":   order.PaymentMethod,
		"deliveryFeeMode": order.DeliveryFeeMode,
	}))
	return redactFor(actor, order), nil
}

func (s *orderService) GetOrder(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error) {
	if err := Authorize(actor, OpGetOrder); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if !canRead(actor, order.TenantID) {
		return nil, ErrNotFound
	}
	return redactFor(actor, order), nil
}

func (s *orderService) ListOrders(ctx context.Context, actor models.Actor, req ListOrdersRequest) ([]models.Order, int, error) {
	if err := Authorize(actor, OpListOrders); err != nil {
		return nil, 0, err
	}

	filters := models.OrderFilters{
		CreatedFrom: req.CreatedFrom,
		CreatedTo:   req.CreatedTo,
		Offset:      req.Offset,
		Limit:       req.Limit,
	}
	if actor.IsPlatformAdmin() {
		if req.TenantID != "" {
			tenantID := req.TenantID
			filters.TenantID = &tenantID
		}
	} else {
		if actor.TenantID == "" {
			return nil, 0, ErrForbidden
		}
		tenantID := actor.TenantID
		filters.TenantID = &tenantID
	}
	if req.Status != "" {
		status := req.Status
		filters.Status = &status
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}
	if filters.Limit > MaxListLimit {
		filters.Limit = MaxListLimit
	}

	orders, total, err := s.orderRepo.GetOrders(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	for i := range orders {
		redactFor(actor, &orders[i])
	}
	return orders, total, nil
}

// loadForWrite fetches an order the actor may mutate and checks its tenant's
// subscription. Cross-tenant orders look missing.
func (s *orderService) loadForWrite(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if !CanAccess(actor, order.TenantID) {
		return nil, ErrNotFound
	}
	if err := s.gate.Check(ctx, order.TenantID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID string, req UpdateOrderStatusRequest) (*models.Order, error) {
	if err := Authorize(actor, OpUpdateOrderStatus); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, err := s.loadForWrite(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if !req.Status.Valid() {
		return nil, invalidPayload("unknown status %q", req.Status)
	}
	if !CanTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, req.Status)
	}

	previous := order.Status
	nowMs := s.now().UnixMilli()
	order.Status = req.Status
	order.UpdatedAt = nowMs
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}

	if _, err := s.tracking.ApplyOrderStatus(ctx, order); err != nil {
		utils.LogError(err, "Failed to sync tracking after status update", map[string]interface{}{"order_id": orderID})
	}

	s.auditor.Audit(auditEntry(AuditOrderStatusUpdate, actor, order.TenantID, orderID, nowMs, map[string]interface{}{
		"from": previous,
		"to":   order.Status,
	}))
	return redactFor(actor, order), nil
}

func (s *orderService) ConfirmDelivery(ctx context.Context, actor models.Actor, orderID string, req ConfirmDeliveryRequest) (*models.Order, error) {
	if err := Authorize(actor, OpConfirmDelivery); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

	order, err := s.loadForWrite(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	otp := strings.TrimSpace(req.OTPCode)
	confirmedBy := strings.TrimSpace(req.ConfirmedBy)
	if otp == "" {
		return nil, invalidPayload("otpCode is required")
	}
	if confirmedBy == "" {
		return nil, invalidPayload("confirmedBy is required")
	}
	// Any non-terminal order may be confirmed, skipping intermediate statuses;
	// repeat confirmations report INVALID_TRANSITION.
	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.Status)
	}

	// An order placed without an expected OTP is treated as verified.
	expected := order.DeliveryConfirmation.ExpectedOTP
	if expected != "" && expected != otp {
		return nil, ErrInvalidOTP
	}

	nowMs := s.now().UnixMilli()
	settlement := models.SettlementNotApplicable
	var collection *models.DeliveryFeeCollection
	switch order.DeliveryFeeMode {
	case models.DeliveryFeeModeCollectAtDrop:
		settlement = models.SettlementPendingCollection
		if req.CollectDeliveryFee {
			if req.CollectionAmount == nil || *req.CollectionAmount < 0 {
				return nil, invalidPayload("collectionAmount must be a non-negative number")
			}
			if !req.CollectionMethod.Valid() {
				return nil, invalidPayload("collectionMethod must be cash or upi")
			}
			settlement = models.SettlementCollected
			collection = &models.DeliveryFeeCollection{
				AmountCollected: *req.CollectionAmount,
				Method:          req.CollectionMethod,
				CollectedAt:     nowMs,
				CollectedBy:     confirmedBy,
				Notes:           utils.NewNullString(req.CollectionNotes),
			}
		}
	case models.DeliveryFeeModeRestaurantSettled:
		settlement = models.SettlementRestaurantSettled
	}

	order.Status = models.OrderStatusDelivered
	order.DeliveryFeeSettlementStatus = settlement
	if collection != nil {
		order.DeliveryFeeCollection = collection
	}
	deliveredAt := nowMs
	order.DeliveryConfirmation.OTPVerified = true
	order.DeliveryConfirmation.ReceivedOTP = &otp
	order.DeliveryConfirmation.ProofNote = utils.NewNullString(req.ProofNote)
	order.DeliveryConfirmation.DeliveredAt = &deliveredAt
	order.DeliveryConfirmation.ConfirmedBy = &confirmedBy
	order.UpdatedAt = nowMs

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to confirm delivery of order %s: %w", orderID, err)
	}

	if _, err := s.tracking.ApplyOrderStatus(ctx, order); err != nil {
		utils.LogError(err, "Failed to sync tracking after delivery", map[string]interface{}{"order_id": orderID})
	}

	s.auditor.Audit(auditEntry(AuditOrderDeliveryConfirm, actor, order.TenantID, orderID, nowMs, map[string]interface{}{
		"settlement":         settlement,
		"collectDeliveryFee": req.CollectDeliveryFee,
	}))
	return redactFor(actor, order), nil
}
