package models

import "time"

const (
	SubscriptionStatusTrial    = "trial"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
	// SubscriptionStatusNone is reported when a tenant has no subscription row.
	SubscriptionStatusNone = "none"
)

type Tenant struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// Subscription is the per-tenant plan state consulted by the subscription gate.
type Subscription struct {
	TenantID         string    `json:"tenantId" yaml:"tenantId"`
	Plan             string    `json:"plan" yaml:"plan"`
	Status           string    `json:"status" yaml:"status"`
	CurrentPeriodEnd time.Time `json:"currentPeriodEnd" yaml:"currentPeriodEnd"`
}

// IsOperational is true for trial/active subscriptions whose period has not ended.
func (s *Subscription) IsOperational(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != SubscriptionStatusTrial && s.Status != SubscriptionStatusActive {
		return false
	}
	return !s.CurrentPeriodEnd.Before(now)
}
