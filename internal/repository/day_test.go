package repository

import (
	"testing"
	"time"
)

func TestStartOfDayUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midday utc",
			in:   time.Date(2026, 8, 24, 13, 45, 12, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just before midnight utc",
			in:   time.Date(2026, 8, 24, 23, 59, 59, 999999999, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly midnight utc",
			in:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "offset zone converts to utc first",
			in:   time.Date(2026, 8, 25, 2, 30, 0, 0, time.FixedZone("UTC+7", 7*3600)),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := startOfDayUTC(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("startOfDayUTC(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("location = %v, want UTC", got.Location())
			}
		})
	}
}
