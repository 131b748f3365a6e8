package models

// AuditEntry is one best-effort audit record.
type AuditEntry struct {
	ID        string                 `json:"id"`
	Action    string                 `json:"action"`
	ActorID   string                 `json:"actorId,omitempty"`
	ActorRole Role                   `json:"actorRole"`
	TenantID  string                 `json:"tenantId,omitempty"`
	OrderID   string                 `json:"orderId,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	At        int64                  `json:"at"`
}
