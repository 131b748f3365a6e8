package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"food_orders_backend/internal/models"

	"gopkg.in/yaml.v3"
)

// TenantSeed is the YAML document that populates the memory tenant directory.
//
//	tenants:
//	  - id: tenant-a
//	    name: Green Spoon
//	subscriptions:
//	  - tenantId: tenant-a
//	    plan: growth
//	    status: active
//	    currentPeriodEnd: 2027-01-01T00:00:00Z
type TenantSeed struct {
	Tenants       []models.Tenant       `yaml:"tenants"`
	Subscriptions []models.Subscription `yaml:"subscriptions"`
}

// LoadTenantSeed reads a TenantSeed from a YAML file.
func LoadTenantSeed(path string) (*TenantSeed, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read tenant seed %s: %w", path, err)
	}
	var seed TenantSeed
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, fmt.Errorf("could not parse tenant seed %s: %w", path, err)
	}
	for _, sub := range seed.Subscriptions {
		if sub.TenantID == "" {
			return nil, fmt.Errorf("tenant seed %s: subscription without tenantId", path)
		}
	}
	return &seed, nil
}

// DemoTenantSeed is used when no seed file is configured.
func DemoTenantSeed(now time.Time) *TenantSeed {
	return &TenantSeed{
		Tenants: []models.Tenant{
			{ID: "tenant-a", Name: "Green Spoon Kitchens"},
			{ID: "tenant-b", Name: "Tiffin Republic"},
			{ID: "tenant-expired", Name: "Closed Canteen"},
		},
		Subscriptions: []models.Subscription{
			{TenantID: "tenant-a", Plan: "growth", Status: models.SubscriptionStatusActive, CurrentPeriodEnd: now.AddDate(1, 0, 0)},
			{TenantID: "tenant-b", Plan: "starter", Status: models.SubscriptionStatusTrial, CurrentPeriodEnd: now.AddDate(0, 0, 14)},
			{TenantID: "tenant-expired", Plan: "starter", Status: models.SubscriptionStatusActive, CurrentPeriodEnd: now.AddDate(0, 0, -3)},
		},
	}
}

// MemoryTenantRepository is an in-process tenant directory.
type MemoryTenantRepository struct {
	mu            sync.RWMutex
	tenants       map[string]models.Tenant
	subscriptions map[string]models.Subscription
}

// NewMemoryTenantRepository builds a tenant directory from a seed.
func NewMemoryTenantRepository(seed *TenantSeed) *MemoryTenantRepository {
	r := &MemoryTenantRepository{
		tenants:       make(map[string]models.Tenant),
		subscriptions: make(map[string]models.Subscription),
	}
	if seed != nil {
		for _, t := range seed.Tenants {
			r.tenants[t.ID] = t
		}
		for _, s := range seed.Subscriptions {
			r.subscriptions[s.TenantID] = s
		}
	}
	return r
}

func (r *MemoryTenantRepository) TenantExists(_ context.Context, tenantID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tenants[tenantID]
	return ok, nil
}

func (r *MemoryTenantRepository) GetSubscription(_ context.Context, tenantID string) (*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subscriptions[tenantID]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// PutSubscription replaces a tenant's subscription. Billing lives outside
// this service; this exists for seeding and tests.
func (r *MemoryTenantRepository) PutSubscription(sub models.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscriptions[sub.TenantID] = sub
}
