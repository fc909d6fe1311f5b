// Package util carries small ambient helpers shared across the inspector.
package util

import (
	"time"

	"github.com/go-kit/log"
	"golang.org/x/time/rate"
)

// RateLimitedLogger throttles a logger to at most logsPerSecond calls per
// second, dropping the rest. A corrupt file can make the page walker hit
// a decode error on every single page; without throttling, that turns
// into one log line per page and can dominate the inspector's own
// output.
type RateLimitedLogger struct {
	limiter *rate.Limiter
	logger  log.Logger
}

// NewRateLimitedLogger wraps logger so it logs at most logsPerSecond
// times per second.
func NewRateLimitedLogger(logsPerSecond int, logger log.Logger) *RateLimitedLogger {
	return &RateLimitedLogger{
		limiter: rate.NewLimiter(rate.Limit(logsPerSecond), 1),
		logger:  logger,
	}
}

// Log implements log.Logger, dropping calls once the rate limit is
// exceeded.
func (l *RateLimitedLogger) Log(keyvals ...interface{}) error {
	if !l.limiter.AllowN(time.Now(), 1) {
		return nil
	}
	return l.logger.Log(keyvals...)
}
