package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
)

// UpdateTrackingLocationRequest is an operator-driven location push.
// Pointers distinguish absent fields from zero values.
type UpdateTrackingLocationRequest struct {
	Lat        *float64              `json:"lat"`
	Lng        *float64              `json:"lng"`
	Status     models.DeliveryStatus `json:"status"`
	EtaMinutes *int                  `json:"etaMinutes"`
}

type TrackingService interface {
	GetTracking(ctx context.Context, actor models.Actor, orderID string) (*models.Tracking, error)
	UpdateTrackingLocation(ctx context.Context, actor models.Actor, orderID string, req UpdateTrackingLocationRequest) (*models.Tracking, error)
}

type trackingService struct {
	orderRepo    repositories.OrderRepository
	trackingRepo repositories.TrackingRepository
	sync         *TrackingSync
	gate         *SubscriptionGate
	locks        *KeyedMutex
	auditor      Auditor
	now          func() time.Time
}

func NewTrackingService(
	orderRepo repositories.OrderRepository,
	trackingRepo repositories.TrackingRepository,
	sync *TrackingSync,
	gate *SubscriptionGate,
	locks *KeyedMutex,
	auditor Auditor,
	now func() time.Time,
) TrackingService {
	if now == nil {
		now = time.Now
	}
	return &trackingService{
		orderRepo:    orderRepo,
		trackingRepo: trackingRepo,
		sync:         sync,
		gate:         gate,
		locks:        locks,
		auditor:      auditor,
		now:          now,
	}
}

func (s *trackingService) GetTracking(ctx context.Context, actor models.Actor, orderID string) (*models.Tracking, error) {
	if err := Authorize(actor, OpGetTracking); err != nil {
		return nil, err
	}
	t, err := s.trackingRepo.GetTracking(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tracking for order %s: %w", orderID, err)
	}
	if !canRead(actor, t.TenantID) {
		return nil, ErrNotFound
	}
	return t, nil
}

func validateLocationPush(req *UpdateTrackingLocationRequest) error {
	switch {
	case req.Lat == nil || req.Lng == nil:
		return invalidPayload("lat and lng are required numbers")
	case *req.Lat < -90 || *req.Lat > 90 || *req.Lng < -180 || *req.Lng > 180:
		return invalidPayload("lat/lng out of range")
	case !req.Status.Valid():
		return invalidPayload("unknown delivery status %q", req.Status)
	case req.EtaMinutes == nil || *req.EtaMinutes < 0:
		return invalidPayload("etaMinutes must be a non-negative integer")
	}
	return nil
}

// UpdateTrackingLocation overwrites the current position. Any delivery status
// is accepted, including ones that move backwards; the order status is left alone.
func (s *trackingService) UpdateTrackingLocation(ctx context.Context, actor models.Actor, orderID string, req UpdateTrackingLocationRequest) (*models.Tracking, error) {
	if err := Authorize(actor, OpPushTracking); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(orderID)
	defer unlock()

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
	if err := validateLocationPush(&req); err != nil {
		return nil, err
	}

	t, _, err := s.sync.load(ctx, order)
	if err != nil {
		return nil, err
	}
	nowMs := s.now().UnixMilli()
	statusChanged := t.AppendEvent(req.Status, nowMs)
	t.Status = req.Status
	t.Current = models.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	t.EtaMinutes = *req.EtaMinutes
	t.UpdatedAt = nowMs
	if err := s.trackingRepo.UpsertTracking(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tracking for order %s: %w", orderID, err)
	}

	s.auditor.Audit(auditEntry(AuditTrackingLocation, actor, order.TenantID, orderID, nowMs, map[string]interface{}{
		"status":        t.Status,
		"statusChanged": statusChanged,
		"etaMinutes":    t.EtaMinutes,
	}))
	return t, nil
}
