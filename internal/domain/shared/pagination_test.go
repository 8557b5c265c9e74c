package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero limit falls back to default", 0, 0, DefaultPageLimit, 0},
		{"negative limit falls back to default", -5, 10, DefaultPageLimit, 10},
		{"limit within bounds kept", 250, 500, 250, 500},
		{"limit at cap kept", MaxPageLimit, 0, MaxPageLimit, 0},
		{"limit above cap clamps to cap", 5000, 0, MaxPageLimit, 0},
		{"negative offset resets to zero", 50, -1, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}
