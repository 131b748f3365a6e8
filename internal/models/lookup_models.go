package models

// LookupOTP is a pending customer order-history lookup challenge.
// Only the bcrypt hash of the code is kept.
type LookupOTP struct {
	RequestID string `json:"requestId"`
	Phone     string `json:"phone"`
	TenantID  string `json:"tenantId"`
	OTPHash   string `json:"-"`
	Attempts  int    `json:"attempts"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Expired reports whether the challenge is past its expiry at nowMs.
func (o *LookupOTP) Expired(nowMs int64) bool {
	return nowMs > o.ExpiresAt
}
