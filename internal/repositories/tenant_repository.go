package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food_orders_backend/internal/models"
)

// TenantRepository is the read-only view of tenants and their subscriptions.
type TenantRepository interface {
	TenantExists(ctx context.Context, tenantID string) (bool, error)
	GetSubscription(ctx context.Context, tenantID string) (*models.Subscription, error)
}

type tenantRepository struct {
	db SQLExecutor
}

func NewTenantRepository(db SQLExecutor) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) TenantExists(ctx context.Context, tenantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`, tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking tenant %s: %v", ErrDatabaseError, tenantID, err)
	}
	return exists, nil
}

func (r *tenantRepository) GetSubscription(ctx context.Context, tenantID string) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := r.db.QueryRowContext(ctx,
		`SELECT tenant_id, plan, status, current_period_end FROM subscriptions WHERE tenant_id = $1`,
		tenantID,
	).Scan(&sub.TenantID, &sub.Plan, &sub.Status, &sub.CurrentPeriodEnd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting subscription for tenant %s: %v", ErrDatabaseError, tenantID, err)
	}
	return sub, nil
}
