package playback

import (
	"context"
	"time"
)

// Run calls tick every interval until tick returns false or ctx is done.
// Ticks run one at a time on the calling goroutine, and no tick starts after
// ctx is done. Run returns ctx.Err() on cancellation and nil otherwise.
func Run(ctx context.Context, interval time.Duration, tick func() bool) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Both channels may be ready; cancellation wins.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !tick() {
				return nil
			}
		}
	}
}
