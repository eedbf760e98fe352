package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"jane@example.com":     "Jane",
		"jane.doe@example.com": "Jane Doe",
		"john_q-public@x.org":  "John Q Public",
	}

	for email, want := range tests {
		assert.Equal(t, want, displayName(email), email)
	}
}
