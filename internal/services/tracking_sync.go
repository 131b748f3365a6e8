package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
)

const (
	initialEtaMinutes = 32
	startJitter       = 0.02
)

var cityCentroids = map[string]models.Coordinates{
	"bengaluru": {Lat: 12.9716, Lng: 77.5946},
	"mumbai":    {Lat: 19.0760, Lng: 72.8777},
	"delhi":     {Lat: 28.6139, Lng: 77.2090},
	"hyderabad": {Lat: 17.3850, Lng: 78.4867},
	"chennai":   {Lat: 13.0827, Lng: 80.2707},
	"pune":      {Lat: 18.5204, Lng: 73.8567},
	"kolkata":   {Lat: 22.5726, Lng: 88.3639},
}

var cityAliases = map[string]string{
	"bangalore": "bengaluru",
	"bombay":    "mumbai",
	"new delhi": "delhi",
	"calcutta":  "kolkata",
	"madras":    "chennai",
}

// Used when the city is unknown.
var defaultCentroid = cityCentroids["bengaluru"]

type deliveryAgent struct {
	Name  string
	Phone string
}

var agentRoster = []deliveryAgent{
	{Name: "Ravi Kumar", Phone: "+91 98450 11201"},
	{Name: "Anita Sharma", Phone: "+91 98450 11202"},
	{Name: "Suresh Patil", Phone: "+91 98450 11203"},
	{Name: "Meena Iyer", Phone: "+91 98450 11204"},
	{Name: "Arjun Reddy", Phone: "+91 98450 11205"},
	{Name: "Farhan Sheikh", Phone: "+91 98450 11206"},
}

var orderToDelivery = map[models.OrderStatus]models.DeliveryStatus{
	models.OrderStatusConfirmed:      models.DeliveryStatusAssigned,
	models.OrderStatusPreparing:      models.DeliveryStatusPickedUp,
	models.OrderStatusOutForDelivery: models.DeliveryStatusOnTheWay,
	models.OrderStatusDelivered:      models.DeliveryStatusDelivered,
}

var deliveryToOrder = map[models.DeliveryStatus]models.OrderStatus{
	models.DeliveryStatusAssigned:  models.OrderStatusConfirmed,
	models.DeliveryStatusPickedUp:  models.OrderStatusPreparing,
	models.DeliveryStatusOnTheWay:  models.OrderStatusOutForDelivery,
	models.DeliveryStatusNearby:    models.OrderStatusOutForDelivery,
	models.DeliveryStatusDelivered: models.OrderStatusDelivered,
}

// CityCentroid resolves a free-form city name to its centroid.
func CityCentroid(city string) models.Coordinates {
	key := strings.ToLower(strings.TrimSpace(city))
	if alias, ok := cityAliases[key]; ok {
		key = alias
	}
	if c, ok := cityCentroids[key]; ok {
		return c
	}
	return defaultCentroid
}

// agentFor picks a roster entry from the order id so the same order always
// gets the same agent.
func agentFor(orderID string) deliveryAgent {
	h := fnv.New32a()
	h.Write([]byte(orderID))
	return agentRoster[h.Sum32()%uint32(len(agentRoster))]
}

// TrackingSync keeps the derived tracking record of an order in step with
// the order's status. Callers hold the order's lock.
type TrackingSync struct {
	repo repositories.TrackingRepository
	now  func() time.Time
	rand func() float64
}

func NewTrackingSync(repo repositories.TrackingRepository, now func() time.Time, rnd func() float64) *TrackingSync {
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		rnd = rand.Float64
	}
	return &TrackingSync{repo: repo, now: now, rand: rnd}
}

func (s *TrackingSync) newTracking(order *models.Order) *models.Tracking {
	nowMs := s.now().UnixMilli()
	dest := CityCentroid(order.Address.City)
	agent := agentFor(order.OrderID)
	t := &models.Tracking{
		OrderID:     order.OrderID,
		TenantID:    order.TenantID,
		Status:      models.DeliveryStatusAssigned,
		AgentName:   agent.Name,
		AgentPhone:  agent.Phone,
		EtaMinutes:  initialEtaMinutes,
		Destination: dest,
		Current: models.Coordinates{
			Lat: dest.Lat + (s.rand()*2-1)*startJitter,
			Lng: dest.Lng + (s.rand()*2-1)*startJitter,
		},
		UpdatedAt: nowMs,
	}
	t.AppendEvent(models.DeliveryStatusAssigned, nowMs)
	return t
}

// load returns the order's tracking, building a fresh one when none exists.
func (s *TrackingSync) load(ctx context.Context, order *models.Order) (*models.Tracking, bool, error) {
	t, err := s.repo.GetTracking(ctx, order.OrderID)
	if err == nil {
		return t, false, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return s.newTracking(order), true, nil
	}
	return nil, false, fmt.Errorf("loading tracking for order %s: %w", order.OrderID, err)
}

// EnsureInitial creates the initial tracking record unless one already exists.
func (s *TrackingSync) EnsureInitial(ctx context.Context, order *models.Order) (*models.Tracking, error) {
	t, created, err := s.load(ctx, order)
	if err != nil || !created {
		return t, err
	}
	if err := s.repo.UpsertTracking(ctx, t); err != nil {
		return nil, fmt.Errorf("creating tracking for order %s: %w", order.OrderID, err)
	}
	return t, nil
}

// ApplyOrderStatus moves tracking to the delivery status mapped from the
// order's status. Order statuses without a mapping (created, cancelled)
// leave tracking untouched.
func (s *TrackingSync) ApplyOrderStatus(ctx context.Context, order *models.Order) (*models.Tracking, error) {
	next, ok := orderToDelivery[order.Status]
	if !ok {
		return nil, nil
	}
	t, _, err := s.load(ctx, order)
	if err != nil {
		return nil, err
	}
	nowMs := s.now().UnixMilli()
	t.AppendEvent(next, nowMs)
	t.Status = next
	if next == models.DeliveryStatusDelivered {
		t.EtaMinutes = 0
	}
	t.UpdatedAt = nowMs
	if err := s.repo.UpsertTracking(ctx, t); err != nil {
		return nil, fmt.Errorf("syncing tracking for order %s: %w", order.OrderID, err)
	}
	return t, nil
}
