package port

import "context"

type RateLimiter interface {
	// Allow reports whether the caller identified by key may proceed within
	// the current window.
	Allow(ctx context.Context, key string) (bool, error)
}
