package services

import (
	"context"
	"sync"
	"time"

	"food_orders_backend/internal/models"
	"food_orders_backend/internal/repositories"
	"food_orders_backend/pkg/utils"

	"github.com/google/uuid"
)

// Audit actions.
const (
	AuditOrderCreate          = "order.create"
	AuditOrderStatusUpdate    = "order.status_update"
	AuditOrderDeliveryConfirm = "order.delivery_confirm"
	AuditTrackingLocation     = "tracking.location_update"
	AuditLookupOTPRequest     = "lookup.otp_request"
	AuditLookupOTPVerify      = "lookup.otp_verify"
)

// Auditor receives audit entries. Implementations must not block the caller
// and must never surface a failure to it.
type Auditor interface {
	Audit(entry models.AuditEntry)
}

const auditWriteTimeout = 5 * time.Second

// AsyncAuditor hands entries to a single background writer through a
// buffered channel. When the buffer is full the entry is dropped and logged.
type AsyncAuditor struct {
	repo    repositories.AuditRepository
	entries chan models.AuditEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsyncAuditor(repo repositories.AuditRepository, buffer int) *AsyncAuditor {
	if buffer <= 0 {
		buffer = 1
	}
	a := &AsyncAuditor{
		repo:    repo,
		entries: make(chan models.AuditEntry, buffer),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncAuditor) Audit(entry models.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At == 0 {
		entry.At = time.Now().UnixMilli()
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		utils.LogWarn("Audit entry dropped after shutdown", map[string]interface{}{"action": entry.Action})
		return
	}
	select {
	case a.entries <- entry:
	default:
		utils.LogWarn("Audit buffer full, entry dropped", map[string]interface{}{
			"action":   entry.Action,
			"order_id": entry.OrderID,
		})
	}
}

func (a *AsyncAuditor) run() {
	defer close(a.done)
	for entry := range a.entries {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		if err := a.repo.InsertAuditEntry(ctx, &entry); err != nil {
			utils.LogError(err, "Failed to write audit entry", map[string]interface{}{
				"action":   entry.Action,
				"audit_id": entry.ID,
			})
		}
		cancel()
	}
}

// Close stops accepting entries and waits until the buffered ones are written.
func (a *AsyncAuditor) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.entries)
	}
	a.mu.Unlock()
	<-a.done
}

func auditEntry(action string, actor models.Actor, tenantID, orderID string, at int64, details map[string]interface{}) models.AuditEntry {
	return models.AuditEntry{
		Action:    action,
		ActorID:   actor.UserID,
		ActorRole: roleOf(actor),
		TenantID:  tenantID,
		OrderID:   orderID,
		Details:   details,
		At:        at,
	}
}
