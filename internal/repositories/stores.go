package repositories

// Stores bundles the repositories one store driver provides.
type Stores struct {
	Orders     OrderRepository
	Tracking   TrackingRepository
	LookupOTPs LookupOTPRepository
	Tenants    TenantRepository
	Audit      AuditRepository
}

// NewPostgresStores backs every repository with the given database.
func NewPostgresStores(db SQLExecutor) Stores {
	return Stores{
		Orders:     NewOrderRepository(db),
		Tracking:   NewTrackingRepository(db),
		LookupOTPs: NewLookupOTPRepository(db),
		Tenants:    NewTenantRepository(db),
		Audit:      NewAuditRepository(db),
	}
}

// NewMemoryStores keeps everything in process. Audit entries go to the log.
func NewMemoryStores(seed *TenantSeed) Stores {
	return Stores{
		Orders:     NewMemoryOrderRepository(),
		Tracking:   NewMemoryTrackingRepository(),
		LookupOTPs: NewMemoryLookupOTPRepository(),
		Tenants:    NewMemoryTenantRepository(seed),
		Audit:      NewLogAuditRepository(),
	}
}
