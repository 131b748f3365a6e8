package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
)

// SubscriptionGate decides whether a tenant may mutate orders and tracking.
type SubscriptionGate struct {
	tenants repositories.TenantRepository
	now     func() time.Time
}

func NewSubscriptionGate(tenants repositories.TenantRepository, now func() time.Time) *SubscriptionGate {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionGate{tenants: tenants, now: now}
}

// IsOperational reports whether tenantID has a trial or active subscription
// whose period has not ended. A missing subscription is not operational.
func (g *SubscriptionGate) IsOperational(ctx context.Context, tenantID string) (bool, *models.Subscription, error) {
	sub, err := g.tenants.GetSubscription(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("loading subscription for tenant %s: %w", tenantID, err)
	}
	return sub.IsOperational(g.now()), sub, nil
}

// Check returns a *SubscriptionInactiveError when the tenant is not operational.
func (g *SubscriptionGate) Check(ctx context.Context, tenantID string) error {
	ok, sub, err := g.IsOperational(ctx, tenantID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	inactive := &SubscriptionInactiveError{TenantID: tenantID, Status: models.SubscriptionStatusNone}
	if sub != nil {
		end := sub.CurrentPeriodEnd
		inactive.Status = sub.Status
		inactive.CurrentPeriodEnd = &end
	}
	return inactive
}
