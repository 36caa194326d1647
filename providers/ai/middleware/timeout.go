package middleware

import (
	"context"
	"time"

	"schoolfinder/providers/ai"
)

// DefaultTimeout bounds a single provider call when no explicit duration is
// configured. Generative replies with dozens of entries can take a while.
const DefaultTimeout = 2 * time.Minute

// NewTimeout creates a Middleware that applies a context deadline to each
// provider call. A non-positive duration selects [DefaultTimeout]. The
// deadline covers exactly one call; there is no retry on expiry.
func NewTimeout(timeout time.Duration) Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, request)
		}
	}
}
