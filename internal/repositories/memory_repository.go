package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"food_orders_backend/internal/models"
	"food_orders_backend/pkg/utils"
)

// The memory repositories implement the same interfaces as the Postgres ones
// for tests, demos and staging. Stored values are copied on the way in and out.

type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{orders: make(map[string]models.Order)}
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	if o.DeliveryFeeCollection != nil {
		c := *o.DeliveryFeeCollection
		o.DeliveryFeeCollection = &c
	}
	return o
}

func (r *memoryOrderRepository) CreateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.OrderID]; exists {
		return fmt.Errorf("%w: order %s", ErrDuplicateKey, order.OrderID)
	}
	r.orders[order.OrderID] = copyOrder(*order)
	return nil
}

func (r *memoryOrderRepository) GetOrderByID(_ context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *memoryOrderRepository) UpdateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.OrderID]; !ok {
		return ErrNotFound
	}
	r.orders[order.OrderID] = copyOrder(*order)
	return nil
}

func (r *memoryOrderRepository) GetOrders(_ context.Context, filters models.OrderFilters) ([]models.Order, int, error) {
	r.mu.RLock()
	matched := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filters.TenantID != nil && o.TenantID != *filters.TenantID {
			continue
		}
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		if filters.CreatedFrom != nil && o.CreatedAt < *filters.CreatedFrom {
			continue
		}
		if filters.CreatedTo != nil && o.CreatedAt > *filters.CreatedTo {
			continue
		}
		matched = append(matched, copyOrder(o))
	}
	r.mu.RUnlock()

	sortNewestFirst(matched)
	total := len(matched)

	start := filters.Offset
	if start > total {
		start = total
	}
	end := total
	if filters.Limit > 0 && start+filters.Limit < end {
		end = start + filters.Limit
	}
	return matched[start:end], total, nil
}

func (r *memoryOrderRepository) GetOrdersByPhone(_ context.Context, tenantID, phoneLast10 string) ([]models.Order, error) {
	r.mu.RLock()
	matched := []models.Order{}
	for _, o := range r.orders {
		if o.TenantID == tenantID && utils.PhoneLast10(o.Customer.Phone) == phoneLast10 {
			matched = append(matched, copyOrder(o))
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(matched)
	return matched, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt != orders[j].CreatedAt {
			return orders[i].CreatedAt > orders[j].CreatedAt
		}
		return orders[i].OrderID < orders[j].OrderID
	})
}

type memoryTrackingRepository struct {
	mu       sync.RWMutex
	tracking map[string]models.Tracking
}

func NewMemoryTrackingRepository() TrackingRepository {
	return &memoryTrackingRepository{tracking: make(map[string]models.Tracking)}
}

func copyTracking(t models.Tracking) models.Tracking {
	t.Events = append([]models.TrackingEvent(nil), t.Events...)
	return t
}

func (r *memoryTrackingRepository) GetTracking(_ context.Context, orderID string) (*models.Tracking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tracking[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	t = copyTracking(t)
	return &t, nil
}

func (r *memoryTrackingRepository) UpsertTracking(_ context.Context, tracking *models.Tracking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracking[tracking.OrderID] = copyTracking(*tracking)
	return nil
}

func (r *memoryTrackingRepository) ListActiveTracking(_ context.Context) ([]models.Tracking, error) {
	r.mu.RLock()
	list := []models.Tracking{}
	for _, t := range r.tracking {
		if t.Status != models.DeliveryStatusDelivered {
			list = append(list, copyTracking(t))
		}
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].OrderID < list[j].OrderID })
	return list, nil
}

type memoryLookupOTPRepository struct {
	mu   sync.Mutex
	otps map[string]models.LookupOTP
}

func NewMemoryLookupOTPRepository() LookupOTPRepository {
	return &memoryLookupOTPRepository{otps: make(map[string]models.LookupOTP)}
}

func (r *memoryLookupOTPRepository) CreateLookupOTP(_ context.Context, otp *models.LookupOTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.otps[otp.RequestID]; exists {
		return fmt.Errorf("%w: lookup otp %s", ErrDuplicateKey, otp.RequestID)
	}
	r.otps[otp.RequestID] = *otp
	return nil
}

func (r *memoryLookupOTPRepository) GetLookupOTP(_ context.Context, requestID string) (*models.LookupOTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	otp, ok := r.otps[requestID]
	if !ok {
		return nil, ErrNotFound
	}
	return &otp, nil
}

func (r *memoryLookupOTPRepository) UpdateLookupOTPAttempts(_ context.Context, requestID string, attempts int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	otp, ok := r.otps[requestID]
	if !ok {
		return ErrNotFound
	}
	otp.Attempts = attempts
	r.otps[requestID] = otp
	return nil
}

func (r *memoryLookupOTPRepository) DeleteLookupOTP(_ context.Context, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.otps, requestID)
	return nil
}

func (r *memoryLookupOTPRepository) DeleteExpiredLookupOTPs(_ context.Context, nowMs int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, otp := range r.otps {
		if otp.Expired(nowMs) {
			delete(r.otps, id)
			n++
		}
	}
	return n, nil
}
