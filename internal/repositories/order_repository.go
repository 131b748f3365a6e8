package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"food_orders_backend/internal/models"
	"food_orders_backend/pkg/utils"
)

// OrderRepository defines the storage operations for orders. Orders are never deleted.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int, error)
	GetOrdersByPhone(ctx context.Context, tenantID, phoneLast10 string) ([]models.Order, error)
}

type orderRepository struct {
	db SQLExecutor
}

// NewOrderRepository creates a Postgres backed OrderRepository.
// The full order document lives in a JSONB column; the filterable fields are
// duplicated into plain columns.
func NewOrderRepository(db SQLExecutor) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order %s: %w", order.OrderID, err)
	}
	query := `INSERT INTO orders (order_id, tenant_id, status, phone_last10, created_at, updated_at, doc)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query,
		order.OrderID, order.TenantID, string(order.Status), utils.PhoneLast10(order.Customer.Phone),
		order.CreatedAt, order.UpdatedAt, doc,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order %s", ErrDuplicateKey, order.OrderID)
		}
		return fmt.Errorf("%w: creating order %s: %v", ErrDatabaseError, order.OrderID, err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM orders WHERE order_id = $1`, orderID)
	order, err := scanOrderDoc(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order %s: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order %s: %w", order.OrderID, err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2, doc = $3 WHERE order_id = $4`,
		string(order.Status), order.UpdatedAt, doc, order.OrderID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order %s: %v", ErrDatabaseError, order.OrderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order %s: %v", ErrDatabaseError, order.OrderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT doc, COUNT(*) OVER() AS total_count FROM orders`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.TenantID != nil {
		conditions = append(conditions, fmt.Sprintf("tenant_id = $%d", argCounter))
		args = append(args, *filters.TenantID)
		argCounter++
	}
	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, string(*filters.Status))
		argCounter++
	}
	if filters.CreatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argCounter))
		args = append(args, *filters.CreatedFrom)
		argCounter++
	}
	if filters.CreatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argCounter))
		args = append(args, *filters.CreatedTo)
		argCounter++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	countArgs := append([]interface{}(nil), args...)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY created_at DESC, order_id")

	if filters.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.Limit)
		argCounter++
	}
	if filters.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
		args = append(args, filters.Offset)
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	totalCount := 0
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		var o models.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			return nil, 0, fmt.Errorf("%w: decoding order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}

	// The window count is absent when the page is past the end.
	if len(orders) == 0 && filters.Offset > 0 {
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, countArgs...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: counting orders: %v", ErrDatabaseError, err)
		}
	}
	return orders, totalCount, nil
}

func (r *orderRepository) GetOrdersByPhone(ctx context.Context, tenantID, phoneLast10 string) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM orders WHERE tenant_id = $1 AND phone_last10 = $2 ORDER BY created_at DESC, order_id`,
		tenantID, phoneLast10,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders by phone: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrderDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func scanOrderDoc(s scanner) (*models.Order, error) {
	var doc []byte
	if err := s.Scan(&doc); err != nil {
		return nil, err
	}
	var o models.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
