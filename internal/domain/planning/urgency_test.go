package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeUrgency(t *testing.T) {
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	days := func(n int) *time.Time {
		t := midnight.Add(time.Duration(n) * 24 * time.Hour)
		return &t
	}

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      int
	}{
		{"no expiration", nil, 0},
		{"expired yesterday", days(-1), UrgencyExpired},
		{"expires today", days(0), 5},
		{"expires in exactly 1 day", days(1), 5},
		{"expires in 2 days", days(2), 3},
		{"expires in exactly 3 days", days(3), 3},
		{"expires in 5 days", days(5), 1},
		{"expires in exactly 7 days", days(7), 1},
		{"expires in 8 days", days(8), 0},
		{"expires far in the future", days(30), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeUrgency(tt.expiresAt, midnight))
		})
	}
}

func TestComputeUrgencyPartialDays(t *testing.T) {
	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("expired a few hours before midnight counts as expired", func(t *testing.T) {
		expires := midnight.Add(-3 * time.Hour)
		assert.Equal(t, UrgencyExpired, ComputeUrgency(&expires, midnight))
	})

	t.Run("expires later today rounds down to zero days", func(t *testing.T) {
		expires := midnight.Add(18 * time.Hour)
		assert.Equal(t, 5, ComputeUrgency(&expires, midnight))
	})

	t.Run("expires in 36 hours rounds down to one day", func(t *testing.T) {
		expires := midnight.Add(36 * time.Hour)
		assert.Equal(t, 5, ComputeUrgency(&expires, midnight))
	})
}
