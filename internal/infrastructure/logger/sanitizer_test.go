package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSanitizerPolicy(t *testing.T) {
	tests := []struct {
		raw  string
		want ContentPolicy
	}{
		{"none", ContentRedacted},
		{"HASHED", ContentHashed},
		{" full ", ContentFull},
		{"", ContentRedacted},
		{"verbose", ContentRedacted},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSanitizer(tt.raw, "salt").Policy())
		})
	}
}

func TestSanitizerContent(t *testing.T) {
	input := "mail jane@example.com or call 555-123-4567"

	assert.Equal(t, "[REDACTED]", NewSanitizer("none", "salt").Content(input))
	assert.Equal(t, input, NewSanitizer("full", "salt").Content(input))

	var nilSanitizer *Sanitizer
	assert.Equal(t, "[REDACTED]", nilSanitizer.Content(input))
}

func TestSanitizerHashesPersonalData(t *testing.T) {
	s := NewSanitizer("hashed", "salt")

	out := s.Content("mail jane@example.com, call 555-123-4567, card 4111 1111 1111 1111, host 10.0.0.1")

	assert.NotContains(t, out, "jane@example.com")
	assert.NotContains(t, out, "555-123-4567")
	assert.NotContains(t, out, "4111")
	assert.NotContains(t, out, "10.0.0.1")
	assert.Contains(t, out, "[EMAIL:")
	assert.Contains(t, out, "[PHONE:")
	assert.Contains(t, out, "[CC:REDACTED]")
	assert.Contains(t, out, "[IP:")
	assert.Contains(t, out, "mail ")
}

func TestSanitizerHashIsSaltedAndStable(t *testing.T) {
	a := NewSanitizer("hashed", "one")
	b := NewSanitizer("hashed", "two")

	assert.Equal(t, a.Content("x@y.io"), a.Content("x@y.io"))
	assert.NotEqual(t, a.Content("x@y.io"), b.Content("x@y.io"))
}
