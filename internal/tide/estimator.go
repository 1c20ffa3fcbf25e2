package tide

import (
	"fmt"

	"github.com/tidewatch/tsu/internal/models"
)

// Placeholder is printed whenever a real status cannot be computed. A shell
// prompt must never see an error message or a stack trace.
const Placeholder = "n/a"

const (
	glyphRising  = "↑"
	glyphFalling = "↓"
)

// Interpolate estimates the water height at the given instant by linear
// interpolation between the latest point at or before now and the earliest
// point after it. With only one side available it returns that side's height
// unchanged; with an empty set it returns 0.
func Interpolate(set models.PredictionSet, now int64) float64 {
	var before, after *models.PredictionPoint
	for i := range set {
		p := &set[i]
		if p.Timestamp <= now {
			before = p
		} else if after == nil {
			after = p
		}
	}

	switch {
	case before != nil && after != nil:
		if after.Timestamp == before.Timestamp {
			return before.Height
		}
		ratio := float64(now-before.Timestamp) / float64(after.Timestamp-before.Timestamp)
		return before.Height + (after.Height-before.Height)*ratio
	case before != nil:
		return before.Height
	case after != nil:
		return after.Height
	default:
		return 0.0
	}
}

// Status renders the current estimated height with three decimals and a trend
// glyph. The trend compares the first future point against the interpolated
// height: strictly higher means rising, anything else (including exactly
// flat) means falling. Without a future point there is no trend to report and
// the placeholder is returned.
func Status(set models.PredictionSet, now int64) string {
	height := Interpolate(set, now)

	for _, p := range set {
		if p.Timestamp > now {
			glyph := glyphFalling
			if p.Height > height {
				glyph = glyphRising
			}
			return fmt.Sprintf("%.3f%s", height, glyph)
		}
	}

	return Placeholder
}
