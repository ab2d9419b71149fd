package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase unchanged", "user@example.com", "user@example.com"},
		{"uppercase folded", "USER@EXAMPLE.COM", "user@example.com"},
		{"mixed case folded", "User@Example.Com", "user@example.com"},
		{"whitespace trimmed", "  user@example.com \n", "user@example.com"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeEmail(tc.input))
		})
	}
}
