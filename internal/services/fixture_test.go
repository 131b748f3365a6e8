package services

import (
	"sync"
	"testing"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (r *recordingAuditor) Audit(e models.AuditEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func (r *recordingAuditor) last() models.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[len(r.entries)-1]
}

type fixture struct {
	clock    *fakeClock
	orders   repositories.OrderRepository
	tracking repositories.TrackingRepository
	otps     repositories.LookupOTPRepository
	tenants  *repositories.MemoryTenantRepository
	auditor  *recordingAuditor
	locks    *KeyedMutex
	gate     *SubscriptionGate
	sync     *TrackingSync

	orderSvc    OrderService
	trackingSvc TrackingService
	lookupSvc   LookupOTPService
	sim         *TrackingSimulator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	f := &fixture{
		clock:    clock,
		orders:   repositories.NewMemoryOrderRepository(),
		tracking: repositories.NewMemoryTrackingRepository(),
		otps:     repositories.NewMemoryLookupOTPRepository(),
		tenants:  repositories.NewMemoryTenantRepository(repositories.DemoTenantSeed(clock.Now())),
		auditor:  &recordingAuditor{},
		locks:    NewKeyedMutex(),
	}
	f.gate = NewSubscriptionGate(f.tenants, clock.Now)
	f.sync = NewTrackingSync(f.tracking, clock.Now, func() float64 { return 0.5 })
	f.orderSvc = NewOrderService(f.orders, f.sync, f.gate, f.locks, f.auditor, "tenant-a", clock.Now)
	f.trackingSvc = NewTrackingService(f.orders, f.tracking, f.sync, f.gate, f.locks, f.auditor, clock.Now)
	f.lookupSvc = NewLookupOTPService(f.otps, f.orders, f.tenants, f.locks, f.auditor, LookupOTPConfig{
		Debug:           true,
		DefaultTenantID: "tenant-a",
		BcryptCost:      bcrypt.MinCost,
	}, clock.Now)
	f.sim = NewTrackingSimulator(f.orders, f.tracking, f.gate, f.locks, time.Second, clock.Now)
	return f
}

var (
	platformAdmin = models.Actor{UserID: "root", Role: models.RolePlatformAdmin}
	adminA        = models.Actor{UserID: "owner-a", TenantID: "tenant-a", Role: models.RoleTenantAdmin}
	kitchenA      = models.Actor{UserID: "cook-a", TenantID: "tenant-a", Role: models.RoleKitchenStaff}
	riderA        = models.Actor{UserID: "rider-a", TenantID: "tenant-a", Role: models.RoleDeliveryAgent}
	adminB        = models.Actor{UserID: "owner-b", TenantID: "tenant-b", Role: models.RoleTenantAdmin}
	anonymous     = models.AnonymousActor()
)

func orderRequest(id string) CreateOrderRequest {
	return CreateOrderRequest{
		OrderID:  id,
		Customer: models.Customer{Name: "Asha Rao", Phone: "+91 90000 10021"},
		Address:  models.Address{Line1: "12 MG Road", City: "Bengaluru"},
		Items: []models.OrderItem{
			{ID: "bowl-1", Name: "Paneer tikka bowl", Type: "veg", Price: 240, Calories: 540, Quantity: 1},
		},
		Totals:           &models.Totals{Subtotal: 240, DeliveryFee: 39, Tax: 0, GrandTotal: 279, PayableNow: 279},
		PaymentMethod:    models.PaymentMethodRazorpay,
		PaymentReference: "pay_" + id,
	}
}
