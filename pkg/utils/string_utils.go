package utils

import "strings"

// NewNullString returns nil for blank strings so optional fields stay absent in JSON.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// DigitsOnly strips everything but ASCII digits from a phone number.
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneLast10 returns the last ten digits of a phone number, which is how
// numbers with and without a country code are matched.
func PhoneLast10(phone string) string {
	digits := DigitsOnly(phone)
	if len(digits) <= 10 {
		return digits
	}
	return digits[len(digits)-10:]
}
