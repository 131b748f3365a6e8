package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"food_orders_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderConfirmsAndCreatesTracking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-1001"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, "tenant-a", order.TenantID)
	assert.Equal(t, models.DeliveryFeeModePrepaid, order.DeliveryFeeMode)
	assert.Equal(t, models.SettlementNotApplicable, order.DeliveryFeeSettlementStatus)
	assert.Equal(t, f.clock.Now().UnixMilli(), order.CreatedAt)

	tr, err := f.tracking.GetTracking(ctx, "GS-1001")
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusAssigned, tr.Status)
	assert.Equal(t, 32, tr.EtaMinutes)
	assert.Equal(t, CityCentroid("bengaluru"), tr.Destination)
	assert.NotEmpty(t, tr.AgentName)
	require.Len(t, tr.Events, 1)
	assert.Equal(t, "Delivery partner assigned", tr.Events[0].Label)

	assert.Equal(t, []string{AuditOrderCreate}, f.auditor.actions())
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *CreateOrderRequest)
	}{
		{"missing order id", func(r *CreateOrderRequest) { r.OrderID = " " }},
		{"missing customer name", func(r *CreateOrderRequest) { r.Customer.Name = "" }},
		{"missing customer phone", func(r *CreateOrderRequest) { r.Customer.Phone = "" }},
		{"missing address line", func(r *CreateOrderRequest) { r.Address.Line1 = "" }},
		{"missing city", func(r *CreateOrderRequest) { r.Address.City = "" }},
		{"no items", func(r *CreateOrderRequest) { r.Items = nil }},
		{"no totals", func(r *CreateOrderRequest) { r.Totals = nil }},
		{"negative grand total", func(r *CreateOrderRequest) { r.Totals.GrandTotal = -1 }},
		{"unknown payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "cash" }},
		{"missing payment reference", func(r *CreateOrderRequest) { r.PaymentReference = "" }},
		{"unknown fee mode", func(r *CreateOrderRequest) { r.DeliveryFeeMode = "split" }},
		{"unknown settlement", func(r *CreateOrderRequest) { r.DeliveryFeeSettlementStatus = "waived" }},
		{"zero quantity", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := orderRequest("GS-V")
			tt.mutate(&req)
			_, err := f.orderSvc.CreateOrder(ctx, adminA, req)
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
	_, err := f.orders.GetOrderByID(ctx, "GS-V")
	assert.Error(t, err)
}

func TestCreateOrderDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-1"))
	require.NoError(t, err)
	_, err = f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-1"))
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestCreateOrderTenantResolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := orderRequest("GS-ADMIN")
	req.TenantID = "tenant-b"
	order, err := f.orderSvc.CreateOrder(ctx, platformAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, "tenant-b", order.TenantID)

	order, err = f.orderSvc.CreateOrder(ctx, anonymous, orderRequest("GS-ANON"))
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", order.TenantID)

	req = orderRequest("GS-ANON-B")
	req.TenantID = "tenant-b"
	order, err = f.orderSvc.CreateOrder(ctx, anonymous, req)
	require.NoError(t, err)
	assert.Equal(t, "tenant-b", order.TenantID)

	req = orderRequest("GS-CROSS")
	req.TenantID = "tenant-b"
	_, err = f.orderSvc.CreateOrder(ctx, adminA, req)
	assert.ErrorIs(t, err, ErrForbidden)

	req = orderRequest("GS-EXPIRED")
	req.TenantID = "tenant-expired"
	_, err = f.orderSvc.CreateOrder(ctx, platformAdmin, req)
	var inactive *SubscriptionInactiveError
	require.True(t, errors.As(err, &inactive))
	assert.Equal(t, "tenant-expired", inactive.TenantID)
}

func TestCreateOrderSettlementDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := orderRequest("GS-DROP")
	req.DeliveryFeeMode = models.DeliveryFeeModeCollectAtDrop
	order, err := f.orderSvc.CreateOrder(ctx, adminA, req)
	require.NoError(t, err)
	assert.Equal(t, models.SettlementPendingCollection, order.DeliveryFeeSettlementStatus)

	req = orderRequest("GS-REST")
	req.DeliveryFeeMode = models.DeliveryFeeModeRestaurantSettled
	order, err = f.orderSvc.CreateOrder(ctx, adminA, req)
	require.NoError(t, err)
	assert.Equal(t, models.SettlementRestaurantSettled, order.DeliveryFeeSettlementStatus)
}

func TestGoldenPathDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := orderRequest("GS-1001")
	req.DeliveryConfirmation = &CreateOrderConfirmation{ExpectedOTP: "4321"}
	_, err := f.orderSvc.CreateOrder(ctx, adminA, req)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	order, err := f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-1001", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, order.Status)

	f.clock.Advance(time.Minute)
	_, err = f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-1001", UpdateOrderStatusRequest{Status: models.OrderStatusOutForDelivery})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	order, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-1001", ConfirmDeliveryRequest{OTPCode: "4321", ConfirmedBy: "rider-a"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	assert.Equal(t, models.SettlementNotApplicable, order.DeliveryFeeSettlementStatus)
	assert.True(t, order.DeliveryConfirmation.OTPVerified)
	require.NotNil(t, order.DeliveryConfirmation.DeliveredAt)
	assert.Equal(t, f.clock.Now().UnixMilli(), *order.DeliveryConfirmation.DeliveredAt)

	tr, err := f.tracking.GetTracking(ctx, "GS-1001")
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusDelivered, tr.Status)
	assert.Equal(t, 0, tr.EtaMinutes)
	var statuses []models.DeliveryStatus
	for _, e := range tr.Events {
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []models.DeliveryStatus{
		models.DeliveryStatusAssigned, models.DeliveryStatusPickedUp,
		models.DeliveryStatusOnTheWay, models.DeliveryStatusDelivered,
	}, statuses)

	assert.Equal(t, []string{
		AuditOrderCreate, AuditOrderStatusUpdate, AuditOrderStatusUpdate, AuditOrderDeliveryConfirm,
	}, f.auditor.actions())
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{models.OrderStatusConfirmed, models.OrderStatusPreparing, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusOutForDelivery, false},
		{models.OrderStatusPreparing, models.OrderStatusOutForDelivery, true},
		{models.OrderStatusPreparing, models.OrderStatusCancelled, true},
		{models.OrderStatusOutForDelivery, models.OrderStatusDelivered, false},
		{models.OrderStatusOutForDelivery, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{models.OrderStatusCreated, models.OrderStatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestUpdateOrderStatusRejectsAndLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-2"))
	require.NoError(t, err)

	_, err = f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-2", UpdateOrderStatusRequest{Status: models.OrderStatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-2", UpdateOrderStatusRequest{Status: "teleported"})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	order, err := f.orders.GetOrderByID(ctx, "GS-2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	tr, err := f.tracking.GetTracking(ctx, "GS-2")
	require.NoError(t, err)
	assert.Len(t, tr.Events, 1)

	_, err = f.orderSvc.UpdateOrderStatus(ctx, adminB, "GS-2", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "missing", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.orderSvc.UpdateOrderStatus(ctx, riderA, "GS-2", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateOrderStatusCancelKeepsTracking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-3"))
	require.NoError(t, err)

	order, err := f.orderSvc.UpdateOrderStatus(ctx, adminA, "GS-3", UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	tr, err := f.tracking.GetTracking(ctx, "GS-3")
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusAssigned, tr.Status)

	_, err = f.orderSvc.UpdateOrderStatus(ctx, adminA, "GS-3", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateOrderStatusSubscriptionLapsed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-4"))
	require.NoError(t, err)

	f.tenants.PutSubscription(models.Subscription{
		TenantID: "tenant-a", Plan: "growth", Status: models.SubscriptionStatusPastDue, CurrentPeriodEnd: f.clock.Now().Add(time.Hour),
	})
	_, err = f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-4", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	var inactive *SubscriptionInactiveError
	require.True(t, errors.As(err, &inactive))
	assert.Equal(t, models.SubscriptionStatusPastDue, inactive.Status)

	_, err = f.orderSvc.GetOrder(ctx, kitchenA, "GS-4")
	assert.NoError(t, err)
}

func TestConcurrentStatusUpdatesOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-RACE"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, next := range []models.OrderStatus{models.OrderStatusPreparing, models.OrderStatusCancelled} {
		wg.Add(1)
		go func(s models.OrderStatus) {
			defer wg.Done()
			_, err := f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-RACE", UpdateOrderStatusRequest{Status: s})
			results <- err
		}(next)
	}
	wg.Wait()
	close(results)

	var okCount int
	for err := range results {
		if err == nil {
			okCount++
		}
	}
	order, err := f.orders.GetOrderByID(ctx, "GS-RACE")
	require.NoError(t, err)
	// preparing -> cancelled is also legal, so both may succeed in that order.
	if okCount == 1 {
		assert.Contains(t, []models.OrderStatus{models.OrderStatusPreparing, models.OrderStatusCancelled}, order.Status)
	} else {
		assert.Equal(t, 2, okCount)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	}
}

func TestConfirmDeliveryOTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := orderRequest("GS-OTP")
	req.DeliveryConfirmation = &CreateOrderConfirmation{ExpectedOTP: "1234"}
	_, err := f.orderSvc.CreateOrder(ctx, adminA, req)
	require.NoError(t, err)

	_, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-OTP", ConfirmDeliveryRequest{OTPCode: "9999", ConfirmedBy: "rider-a"})
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-OTP", ConfirmDeliveryRequest{ConfirmedBy: "rider-a"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-OTP", ConfirmDeliveryRequest{OTPCode: "1234"})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	order, err := f.orders.GetOrderByID(ctx, "GS-OTP")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	_, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-OTP", ConfirmDeliveryRequest{OTPCode: "1234", ConfirmedBy: "rider-a"})
	require.NoError(t, err)

	_, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-OTP", ConfirmDeliveryRequest{OTPCode: "1234", ConfirmedBy: "rider-a"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDoorOTPHiddenFromStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := orderRequest("GS-HIDE")
	req.DeliveryConfirmation = &CreateOrderConfirmation{ExpectedOTP: "4321"}
	created, err := f.orderSvc.CreateOrder(ctx, anonymous, req)
	require.NoError(t, err)
	assert.Equal(t, "4321", created.DeliveryConfirmation.ExpectedOTP)

	for _, actor := range []models.Actor{anonymous, adminA, platformAdmin} {
		order, err := f.orderSvc.GetOrder(ctx, actor, "GS-HIDE")
		require.NoError(t, err)
		assert.Equal(t, "4321", order.DeliveryConfirmation.ExpectedOTP, actor.Role)
	}
	for _, actor := range []models.Actor{kitchenA, riderA} {
		order, err := f.orderSvc.GetOrder(ctx, actor, "GS-HIDE")
		require.NoError(t, err)
		assert.Empty(t, order.DeliveryConfirmation.ExpectedOTP, actor.Role)

		orders, _, err := f.orderSvc.ListOrders(ctx, actor, ListOrdersRequest{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Empty(t, orders[0].DeliveryConfirmation.ExpectedOTP, actor.Role)
	}

	order, err := f.orderSvc.UpdateOrderStatus(ctx, kitchenA, "GS-HIDE", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	require.NoError(t, err)
	assert.Empty(t, order.DeliveryConfirmation.ExpectedOTP)

	// The stored order keeps the OTP, so confirmation still checks it.
	_, err = f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-HIDE", ConfirmDeliveryRequest{OTPCode: "0000", ConfirmedBy: "rider-a"})
	assert.ErrorIs(t, err, ErrInvalidOTP)
	stored, err := f.orders.GetOrderByID(ctx, "GS-HIDE")
	require.NoError(t, err)
	assert.Equal(t, "4321", stored.DeliveryConfirmation.ExpectedOTP)
}

func TestConfirmDeliveryWithoutExpectedOTPIsVerified(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-NOOTP"))
	require.NoError(t, err)

	order, err := f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-NOOTP", ConfirmDeliveryRequest{OTPCode: "anything", ConfirmedBy: "rider-a"})
	require.NoError(t, err)
	assert.True(t, order.DeliveryConfirmation.OTPVerified)
	require.NotNil(t, order.DeliveryConfirmation.ReceivedOTP)
	assert.Equal(t, "anything", *order.DeliveryConfirmation.ReceivedOTP)
}

func TestConfirmDeliverySettlement(t *testing.T) {
	amount := 39.0
	negative := -1.0
	tests := []struct {
		name       string
		mode       models.DeliveryFeeMode
		req        ConfirmDeliveryRequest
		settlement models.SettlementStatus
		collected  bool
		wantErr    error
	}{
		{
			name:       "collect at drop with cash",
			mode:       models.DeliveryFeeModeCollectAtDrop,
			req:        ConfirmDeliveryRequest{CollectDeliveryFee: true, CollectionAmount: &amount, CollectionMethod: models.CollectionMethodCash, CollectionNotes: "exact change"},
			settlement: models.SettlementCollected,
			collected:  true,
		},
		{
			name:       "collect at drop without collection",
			mode:       models.DeliveryFeeModeCollectAtDrop,
			settlement: models.SettlementPendingCollection,
		},
		{
			name:    "collect at drop missing amount",
			mode:    models.DeliveryFeeModeCollectAtDrop,
			req:     ConfirmDeliveryRequest{CollectDeliveryFee: true, CollectionMethod: models.CollectionMethodUPI},
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "collect at drop negative amount",
			mode:    models.DeliveryFeeModeCollectAtDrop,
			req:     ConfirmDeliveryRequest{CollectDeliveryFee: true, CollectionAmount: &negative, CollectionMethod: models.CollectionMethodUPI},
			wantErr: ErrInvalidPayload,
		},
		{
			name:    "collect at drop unknown method",
			mode:    models.DeliveryFeeModeCollectAtDrop,
			req:     ConfirmDeliveryRequest{CollectDeliveryFee: true, CollectionAmount: &amount, CollectionMethod: "card"},
			wantErr: ErrInvalidPayload,
		},
		{
			name:       "restaurant settled ignores collection flag",
			mode:       models.DeliveryFeeModeRestaurantSettled,
			req:        ConfirmDeliveryRequest{CollectDeliveryFee: true, CollectionAmount: &amount, CollectionMethod: models.CollectionMethodCash},
			settlement: models.SettlementRestaurantSettled,
		},
		{
			name:       "prepaid",
			mode:       models.DeliveryFeeModePrepaid,
			req:        ConfirmDeliveryRequest{CollectDeliveryFee: true},
			settlement: models.SettlementNotApplicable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			req := orderRequest("GS-FEE")
			req.DeliveryFeeMode = tt.mode
			_, err := f.orderSvc.CreateOrder(ctx, adminA, req)
			require.NoError(t, err)

			confirm := tt.req
			confirm.OTPCode = "0000"
			confirm.ConfirmedBy = "rider-a"
			order, err := f.orderSvc.ConfirmDelivery(ctx, riderA, "GS-FEE", confirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.settlement, order.DeliveryFeeSettlementStatus)
			if !tt.collected {
				assert.Nil(t, order.DeliveryFeeCollection)
				return
			}
			require.NotNil(t, order.DeliveryFeeCollection)
			assert.Equal(t, 39.0, order.DeliveryFeeCollection.AmountCollected)
			assert.Equal(t, models.CollectionMethodCash, order.DeliveryFeeCollection.Method)
			assert.Equal(t, "rider-a", order.DeliveryFeeCollection.CollectedBy)
			require.NotNil(t, order.DeliveryFeeCollection.Notes)
			assert.Equal(t, "exact change", *order.DeliveryFeeCollection.Notes)

			entry := f.auditor.last()
			assert.Equal(t, AuditOrderDeliveryConfirm, entry.Action)
			assert.Equal(t, models.SettlementCollected, entry.Details["settlement"])
			assert.Equal(t, true, entry.Details["collectDeliveryFee"])
		})
	}
}

func TestGetOrderTenantIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest("GS-5"))
	require.NoError(t, err)

	_, err = f.orderSvc.GetOrder(ctx, adminA, "GS-5")
	assert.NoError(t, err)
	_, err = f.orderSvc.GetOrder(ctx, anonymous, "GS-5")
	assert.NoError(t, err)
	_, err = f.orderSvc.GetOrder(ctx, platformAdmin, "GS-5")
	assert.NoError(t, err)
	_, err = f.orderSvc.GetOrder(ctx, adminB, "GS-5")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.orderSvc.GetOrder(ctx, adminA, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, id := range []string{"A-1", "A-2", "A-3"} {
		_, err := f.orderSvc.CreateOrder(ctx, adminA, orderRequest(id))
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}
	_, err := f.orderSvc.CreateOrder(ctx, adminB, orderRequest("B-1"))
	require.NoError(t, err)
	_, err = f.orderSvc.UpdateOrderStatus(ctx, adminA, "A-2", UpdateOrderStatusRequest{Status: models.OrderStatusPreparing})
	require.NoError(t, err)

	orders, total, err := f.orderSvc.ListOrders(ctx, kitchenA, ListOrdersRequest{TenantID: "tenant-b"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, orders, 3)
	assert.Equal(t, "A-3", orders[0].OrderID)

	_, total, err = f.orderSvc.ListOrders(ctx, platformAdmin, ListOrdersRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	orders, total, err = f.orderSvc.ListOrders(ctx, platformAdmin, ListOrdersRequest{TenantID: "tenant-b"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "B-1", orders[0].OrderID)

	orders, _, err = f.orderSvc.ListOrders(ctx, adminA, ListOrdersRequest{Status: models.OrderStatusPreparing})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "A-2", orders[0].OrderID)

	orders, total, err = f.orderSvc.ListOrders(ctx, adminA, ListOrdersRequest{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "A-2", orders[0].OrderID)

	_, _, err = f.orderSvc.ListOrders(ctx, anonymous, ListOrdersRequest{})
	assert.ErrorIs(t, err, ErrForbidden)
}
