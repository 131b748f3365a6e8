package services

import (
	"context"
	"sync"
	"testing"

	"food_orders_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAuditRepository struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	block   chan struct{}
}

func (r *memoryAuditRepository) InsertAuditEntry(_ context.Context, entry *models.AuditEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.entries = append(r.entries, *entry)
	r.mu.Unlock()
	return nil
}

func TestAsyncAuditorDrainsOnClose(t *testing.T) {
	repo := &memoryAuditRepository{}
	a := NewAsyncAuditor(repo, 16)
	for i := 0; i < 10; i++ {
		a.Audit(models.AuditEntry{Action: AuditOrderCreate, OrderID: "GS-1"})
	}
	a.Close()

	require.Len(t, repo.entries, 10)
	for _, e := range repo.entries {
		assert.NotEmpty(t, e.ID)
		assert.NotZero(t, e.At)
	}

	// Entries after Close are dropped without panicking.
	a.Audit(models.AuditEntry{Action: AuditOrderCreate})
	a.Close()
	assert.Len(t, repo.entries, 10)
}

func TestAsyncAuditorDropsWhenFull(t *testing.T) {
	repo := &memoryAuditRepository{block: make(chan struct{})}
	a := NewAsyncAuditor(repo, 1)
	for i := 0; i < 20; i++ {
		a.Audit(models.AuditEntry{Action: AuditTrackingLocation})
	}
	close(repo.block)
	a.Close()

	assert.Less(t, len(repo.entries), 20)
	assert.NotEmpty(t, repo.entries)
}
