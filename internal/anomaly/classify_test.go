package anomaly

import (
	"strings"
	"testing"

	"parkmonitor/internal/models"
)

func TestClassify(t *testing.T) {
	pm25 := &models.Indicator{
		ID:             "PM25",
		Name:           "PM2.5",
		UpperThreshold: 75,
		LowerThreshold: 0,
	}

	tests := []struct {
		name         string
		indicator    *models.Indicator
		value        float64
		wantAbnormal bool
		wantContains []string
	}{
		{
			name:         "above upper bound",
			indicator:    pm25,
			value:        120,
			wantAbnormal: true,
			wantContains: []string{"120", "75", "exceeds upper"},
		},
		{
			name:         "below lower bound",
			indicator:    pm25,
			value:        -3.5,
			wantAbnormal: true,
			wantContains: []string{"-3.5", "0", "below lower"},
		},
		{
			name:      "within bounds",
			indicator: pm25,
			value:     40,
		},
		{
			name:      "exactly at upper bound is normal",
			indicator: pm25,
			value:     75,
		},
		{
			name:      "exactly at lower bound is normal",
			indicator: pm25,
			value:     0,
		},
		{
			name:  "unknown indicator tolerated",
			value: 9999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abnormal, reason := Classify(tt.indicator, tt.value)
			if abnormal != tt.wantAbnormal {
				t.Fatalf("abnormal = %v, want %v", abnormal, tt.wantAbnormal)
			}
			if !tt.wantAbnormal && reason != "" {
				t.Fatalf("expected empty reason, got %q", reason)
			}
			for _, substr := range tt.wantContains {
				if !strings.Contains(reason, substr) {
					t.Fatalf("reason %q does not contain %q", reason, substr)
				}
			}
		})
	}
}
