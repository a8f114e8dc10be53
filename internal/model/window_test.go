package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlignedWindow(t *testing.T) {
	tests := []struct {
		name        string
		now         time.Time
		expectedEnd time.Time
	}{
		{
			name:        "before anchor uses yesterday's boundary",
			now:         time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			expectedEnd: time.Date(2026, 8, 29, 17, 0, 0, 0, time.UTC),
		},
		{
			name:        "after anchor uses today's boundary",
			now:         time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC),
			expectedEnd: time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC),
		},
		{
			name:        "exactly at anchor",
			now:         time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC),
			expectedEnd: time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := AlignedWindow(tt.now, 17, time.UTC)

			assert.True(t, w.EndLocal.Equal(tt.expectedEnd))
			assert.Equal(t, 24*time.Hour, w.EndLocal.Sub(w.StartLocal))
			assert.False(t, w.EndLocal.After(tt.now), "window end must never be in the future")
			assert.Equal(t, w.StartLocal.UnixMilli(), w.StartUTCms)
			assert.Equal(t, w.EndLocal.UnixMilli(), w.EndUTCms)
		})
	}
}

func TestAlignedWindowSpanIsExactAcrossTimezones(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	now := time.Date(2026, 3, 9, 12, 0, 0, 0, loc) // day after a DST switch
	w := AlignedWindow(now, 17, loc)

	assert.Equal(t, 24*time.Hour, w.EndLocal.Sub(w.StartLocal))
	assert.False(t, w.EndLocal.After(now))
}
