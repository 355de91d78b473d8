package http

import (
	"shortlink/internal/conf"

	"github.com/google/wire"
)

// ProviderSet is delivery providers.
var ProviderSet = wire.NewSet(NewHandler, NewRouter, ProvideRateLimiter)

// ProvideRateLimiter creates the per-IP rate limiter from configuration.
func ProvideRateLimiter(c *conf.Shortener) *RateLimiter {
	c.Normalize()
	return NewRateLimiter(c.RequestsPerMinute)
}
