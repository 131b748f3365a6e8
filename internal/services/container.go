package services

import (
	"time"

	"food_orders_backend/internal/repositories"
)

// Config collects the knobs of the service layer.
type Config struct {
	DefaultTenantID   string
	LookupOTP         LookupOTPConfig
	SimulatorInterval time.Duration
	AuditBuffer       int
	Now               func() time.Time
	Rand              func() float64
}

// Container wires every service around one shared lock table and auditor.
type Container struct {
	Orders    OrderService
	Tracking  TrackingService
	Lookup    LookupOTPService
	Gate      *SubscriptionGate
	Simulator *TrackingSimulator
	Auditor   *AsyncAuditor
}

func NewContainer(stores repositories.Stores, cfg Config) *Container {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if cfg.LookupOTP.DefaultTenantID == "" {
		cfg.LookupOTP.DefaultTenantID = cfg.DefaultTenantID
	}

	locks := NewKeyedMutex()
	auditor := NewAsyncAuditor(stores.Audit, cfg.AuditBuffer)
	gate := NewSubscriptionGate(stores.Tenants, now)
	sync := NewTrackingSync(stores.Tracking, now, cfg.Rand)

	return &Container{
		Orders:    NewOrderService(stores.Orders, sync, gate, locks, auditor, cfg.DefaultTenantID, now),
		Tracking:  NewTrackingService(stores.Orders, stores.Tracking, sync, gate, locks, auditor, now),
		Lookup:    NewLookupOTPService(stores.LookupOTPs, stores.Orders, stores.Tenants, locks, auditor, cfg.LookupOTP, now),
		Gate:      gate,
		Simulator: NewTrackingSimulator(stores.Orders, stores.Tracking, gate, locks, cfg.SimulatorInterval, now),
		Auditor:   auditor,
	}
}

// Close drains pending audit entries.
func (c *Container) Close() {
	c.Auditor.Close()
}
