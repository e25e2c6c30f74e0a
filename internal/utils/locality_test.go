package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veloxline/reception_backend/internal/utils"
)

func TestExtractLocality(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"e164 with country code", "+17863337300", "786", true},
		{"parenthesized", "(305) 693-3949", "305", true},
		{"dashed", "786-333-7300", "786", true},
		{"bare digits", "7863337300", "786", true},
		{"dotted", "786.333.7300", "786", true},
		{"too short", "12345", "", false},
		{"empty", "", "", false},
		{"no digits at all", "call me maybe", "", false},
		{"eleven digits not led by one", "27863337300", "278", true},
		{"twelve digits", "447863337300", "447", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := utils.ExtractLocality(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
