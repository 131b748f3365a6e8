package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneLast10(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9000010021", "9000010021"},
		{"+91 90000-10021", "9000010021"},
		{"0091 9000010021", "9000010021"},
		{"12345", "12345"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhoneLast10(tt.in), "PhoneLast10(%q)", tt.in)
	}
}

func TestNewNullString(t *testing.T) {
	assert.Nil(t, NewNullString("   "))
	if got := NewNullString(" gate 2 "); assert.NotNil(t, got) {
		assert.Equal(t, "gate 2", *got)
	}
}
