package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newEntityID builds a caller-omitted identifier from a prefix, a second
// resolution timestamp and a short random suffix, e.g. ED_20240301153012_a1b2c3d4.
func newEntityID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", prefix, now.Format("20060102150405"), uuid.NewString()[:8])
}
