package services

import (
	"context"
	"errors"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
	"food_orders_backend/pkg/utils"
)

const (
	simEtaStep        = 4
	simNearbyEta      = 8
	simApproachFactor = 0.22
)

var orderRank = map[models.OrderStatus]int{
	models.OrderStatusCreated:        0,
	models.OrderStatusConfirmed:      1,
	models.OrderStatusPreparing:      2,
	models.OrderStatusOutForDelivery: 3,
}

// TrackingSimulator moves every in-flight delivery toward its destination on
// a fixed interval. It never completes a delivery on its own.
type TrackingSimulator struct {
	orderRepo    repositories.OrderRepository
	trackingRepo repositories.TrackingRepository
	gate         *SubscriptionGate
	locks        *KeyedMutex
	interval     time.Duration
	now          func() time.Time
}

func NewTrackingSimulator(
	orderRepo repositories.OrderRepository,
	trackingRepo repositories.TrackingRepository,
	gate *SubscriptionGate,
	locks *KeyedMutex,
	interval time.Duration,
	now func() time.Time,
) *TrackingSimulator {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &TrackingSimulator{
		orderRepo:    orderRepo,
		trackingRepo: trackingRepo,
		gate:         gate,
		locks:        locks,
		interval:     interval,
		now:          now,
	}
}

// Run ticks until ctx is cancelled. Ticks never overlap.
func (s *TrackingSimulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	utils.LogInfo("Tracking simulator started", map[string]interface{}{"interval": s.interval.String()})
	for {
		select {
		case <-ctx.Done():
			utils.LogInfo("Tracking simulator stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick advances every non-delivered tracking record once.
func (s *TrackingSimulator) Tick(ctx context.Context) {
	active, err := s.trackingRepo.ListActiveTracking(ctx)
	if err != nil {
		utils.LogError(err, "Simulator failed to list active tracking")
		return
	}
	for _, t := range active {
		if ctx.Err() != nil {
			return
		}
		if err := s.step(ctx, t.OrderID); err != nil {
			utils.LogError(err, "Simulator step failed", map[string]interface{}{"order_id": t.OrderID})
		}
	}
}

func (s *TrackingSimulator) step(ctx context.Context, orderID string) error {
	unlock := s.locks.Lock(orderID)
	defer unlock()

	// Reload under the lock; the listing may be stale.
	t, err := s.trackingRepo.GetTracking(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if t.Status == models.DeliveryStatusDelivered {
		return nil
	}
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if order.Status.Terminal() {
		return nil
	}
	if ok, _, err := s.gate.IsOperational(ctx, order.TenantID); err != nil || !ok {
		return err
	}

	nowMs := s.now().UnixMilli()
	advanceTracking(t, nowMs)
	if err := s.trackingRepo.UpsertTracking(ctx, t); err != nil {
		return err
	}

	mirrored, ok := deliveryToOrder[t.Status]
	if !ok || orderRank[mirrored] <= orderRank[order.Status] {
		return nil
	}
	order.Status = mirrored
	order.UpdatedAt = nowMs
	return s.orderRepo.UpdateOrder(ctx, order)
}

// advanceTracking applies one simulator step to t.
func advanceTracking(t *models.Tracking, nowMs int64) {
	t.EtaMinutes -= simEtaStep
	if t.EtaMinutes < 0 {
		t.EtaMinutes = 0
	}

	next := t.Status
	switch t.Status {
	case models.DeliveryStatusAssigned:
		next = models.DeliveryStatusPickedUp
	case models.DeliveryStatusPickedUp:
		next = models.DeliveryStatusOnTheWay
	case models.DeliveryStatusOnTheWay:
		if t.EtaMinutes <= simNearbyEta {
			next = models.DeliveryStatusNearby
		}
	}
	t.AppendEvent(next, nowMs)
	t.Status = next

	t.Current.Lat += (t.Destination.Lat - t.Current.Lat) * simApproachFactor
	t.Current.Lng += (t.Destination.Lng - t.Current.Lng) * simApproachFactor
	t.UpdatedAt = nowMs
}
