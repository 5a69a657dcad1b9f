package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsWhitelisted(t *testing.T) {
	checker := NewChecker([]string{" Example.com ", "@trusted.org", ""}, zap.NewNop())

	tests := []struct {
		sender string
		want   bool
	}{
		{sender: "alice@example.com", want: true},
		{sender: "Alice <alice@EXAMPLE.com>", want: true},
		{sender: "Billing <billing@mail.trusted.org>", want: true},
		{sender: "<noreply@trusted.org>", want: true},
		{sender: "Mallory <mallory@example.com.evil.tk>", want: false},
		{sender: "someone@notexample.com", want: false},
		{sender: "Unknown Sender", want: false},
		{sender: "PayPal", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.sender, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.IsWhitelisted(tt.sender))
		})
	}
}

func TestIsWhitelisted_EmptyList(t *testing.T) {
	checker := NewChecker(nil, nil)

	assert.False(t, checker.IsWhitelisted("alice@example.com"))
}

func TestSenderDomain(t *testing.T) {
	assert.Equal(t, "example.com", SenderDomain("Alice Smith <alice@Example.com>"))
	assert.Equal(t, "example.com", SenderDomain("Smith, Alice <alice@example.com>"))
	assert.Equal(t, "", SenderDomain("trailing@"))
	assert.Equal(t, "", SenderDomain(""))
}
