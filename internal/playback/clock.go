package playback

import (
	"fmt"
	"time"
)

// DefaultDuration is the nominal track length used when the real duration is
// unknown.
const DefaultDuration = 3 * time.Minute

// FormatElapsed renders "m:ss / m:ss" for progress through a track of the
// given duration.
func FormatElapsed(progress float64, duration time.Duration) string {
	if duration <= 0 {
		duration = DefaultDuration
	}
	elapsed := time.Duration(clampProgress(progress) * float64(duration))
	return formatClock(elapsed) + " / " + formatClock(duration)
}

func formatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
