package util

import (
	"context"
	"time"
)

// Sleep waits for t or until ctx is done. It reports whether the full duration elapsed.
func Sleep(ctx context.Context, t time.Duration) bool {
	timer := time.NewTimer(t)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Plural picks the singular or plural noun for n.
func Plural(n int, one, many string) string {
	if n == 1 || n == -1 {
		return one
	}

	return many
}
