package client

import (
	"context"
	"errors"
	"time"

	"github.com/dpereira/storefront/internal/core/domain"
)

// Retry runs fn up to attempts times with exponential backoff, retrying only
// failures whose error kind is retryable (transport faults and timeouts).
// Business-rule rejections and not-found results return immediately.
//
// Callers opt in explicitly; the order placement workflow itself never
// retries.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func(context.Context) error) error {
	var err error
	delay := base
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		var derr *domain.Error
		if !errors.As(err, &derr) || !derr.Retryable() {
			return err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
