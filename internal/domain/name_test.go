package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim", "  Alice  ", "Alice"},
		{"collapse whitespace", "Uncle \t  Bob", "Uncle Bob"},
		{"decomposed accent becomes precomposed", "Jose\u0301", "Jos\u00e9"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}
