package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"food_orders_backend/internal/models"
)

// TrackingRepository stores the delivery tracking record of each order.
type TrackingRepository interface {
	GetTracking(ctx context.Context, orderID string) (*models.Tracking, error)
	UpsertTracking(ctx context.Context, tracking *models.Tracking) error
	// ListActiveTracking returns every record whose status is not delivered.
	ListActiveTracking(ctx context.Context) ([]models.Tracking, error)
}

type trackingRepository struct {
	db SQLExecutor
}

func NewTrackingRepository(db SQLExecutor) TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) GetTracking(ctx context.Context, orderID string) (*models.Tracking, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM order_tracking WHERE order_id = $1`, orderID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting tracking %s: %v", ErrDatabaseError, orderID, err)
	}
	var t models.Tracking
	if err := json.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("%w: decoding tracking %s: %v", ErrDatabaseError, orderID, err)
	}
	return &t, nil
}

func (r *trackingRepository) UpsertTracking(ctx context.Context, tracking *models.Tracking) error {
	doc, err := json.Marshal(tracking)
	if err != nil {
		return fmt.Errorf("encoding tracking %s: %w", tracking.OrderID, err)
	}
	query := `INSERT INTO order_tracking (order_id, tenant_id, status, updated_at, doc)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (order_id) DO UPDATE SET
	              status = EXCLUDED.status,
	              updated_at = EXCLUDED.updated_at,
	              doc = EXCLUDED.doc`
	_, err = r.db.ExecContext(ctx, query,
		tracking.OrderID, tracking.TenantID, string(tracking.Status), tracking.UpdatedAt, doc,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting tracking %s: %v", ErrDatabaseError, tracking.OrderID, err)
	}
	return nil
}

func (r *trackingRepository) ListActiveTracking(ctx context.Context) ([]models.Tracking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM order_tracking WHERE status <> $1 ORDER BY order_id`,
		string(models.DeliveryStatusDelivered),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active tracking: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	list := []models.Tracking{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("%w: scanning tracking: %v", ErrDatabaseError, err)
		}
		var t models.Tracking
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("%w: decoding tracking: %v", ErrDatabaseError, err)
		}
		list = append(list, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tracking rows: %v", ErrDatabaseError, err)
	}
	return list, nil
}
