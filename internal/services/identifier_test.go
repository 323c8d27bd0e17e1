package services_test

import (
	"testing"

	"tailorbook_backend/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestNextCustomerID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		lastID string
		want   string
	}{
		{"no existing customers", "AB", "", "AB001"},
		{"increments last number", "AB", "AB012", "AB013"},
		{"crosses two-digit boundary", "AB", "AB099", "AB100"},
		{"grows past padded width", "AB", "AB999", "AB1000"},
		{"keeps counting past padded width", "AB", "AB1000", "AB1001"},
		{"foreign prefix restarts sequence", "AB", "XY123", "AB001"},
		{"non-numeric suffix restarts sequence", "AB", "ABxyz", "AB001"},
		{"prefix only restarts sequence", "AB", "AB", "AB001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.NextCustomerID(tt.prefix, tt.lastID))
		})
	}
}

func TestNextCustomerIDStrictlySequential(t *testing.T) {
	last := ""
	want := []string{"AB001", "AB002", "AB003", "AB004", "AB005"}
	for _, expected := range want {
		next := services.NextCustomerID("AB", last)
		assert.Equal(t, expected, next)
		last = next
	}
}
