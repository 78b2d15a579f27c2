// Package anomaly classifies readings against indicator thresholds.
package anomaly

import (
	"fmt"
	"strconv"

	"parkmonitor/internal/models"
)

// Classify compares value with the indicator's thresholds. A nil indicator
// (registry gap at ingest time) classifies as normal: best-effort ingestion
// is never blocked by missing indicator metadata.
func Classify(indicator *models.Indicator, value float64) (bool, string) {
	if indicator == nil {
		return false, ""
	}
	if value > indicator.UpperThreshold {
		return true, fmt.Sprintf("value %s exceeds upper threshold %s",
			formatValue(value), formatValue(indicator.UpperThreshold))
	}
	if value < indicator.LowerThreshold {
		return true, fmt.Sprintf("value %s is below lower threshold %s",
			formatValue(value), formatValue(indicator.LowerThreshold))
	}
	return false, ""
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
