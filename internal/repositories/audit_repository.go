package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"food_orders_backend/internal/models"

	"github.com/rs/zerolog/log"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	InsertAuditEntry(ctx context.Context, entry *models.AuditEntry) error
}

type auditRepository struct {
	db SQLExecutor
}

func NewAuditRepository(db SQLExecutor) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) InsertAuditEntry(ctx context.Context, entry *models.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("encoding audit details: %w", err)
	}
	query := `INSERT INTO audit_log (id, action, actor_id, actor_role, tenant_id, order_id, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Action, entry.ActorID, string(entry.ActorRole), entry.TenantID, entry.OrderID, details, entry.At,
	)
	if err != nil {
		return fmt.Errorf("%w: inserting audit entry %s: %v", ErrDatabaseError, entry.Action, err)
	}
	return nil
}

type logAuditRepository struct{}

// NewLogAuditRepository writes audit entries to the structured log. Used when
// running without Postgres.
func NewLogAuditRepository() AuditRepository {
	return logAuditRepository{}
}

func (logAuditRepository) InsertAuditEntry(_ context.Context, entry *models.AuditEntry) error {
	log.Info().
		Str("audit_id", entry.ID).
		Str("action", entry.Action).
		Str("actor_id", entry.ActorID).
		Str("actor_role", string(entry.ActorRole)).
		Str("tenant_id", entry.TenantID).
		Str("order_id", entry.OrderID).
		Fields(entry.Details).
		Int64("at", entry.At).
		Msg("audit")
	return nil
}
