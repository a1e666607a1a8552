package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than the TTL are evicted.
type IPRateLimiter struct {
	ips *cache.Cache
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int, ttl time.Duration) *IPRateLimiter {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &IPRateLimiter{
		ips: cache.New(ttl, 2*ttl),
		r:   r,
		b:   b,
	}
}

// GetLimiter returns the rate limiter for an IP address, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Get(ip); ok {
		limiter := v.(*rate.Limiter)
		i.ips.SetDefault(ip, limiter) // slide expiry
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	if err := i.ips.Add(ip, limiter, cache.DefaultExpiration); err != nil {
		// Lost the race with a concurrent request from the same IP.
		if v, ok := i.ips.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (h *Handler) rateLimitMiddleware(c *gin.Context) {
	if h.limiter == nil || h.limiter.r <= 0 {
		c.Next()
		return
	}
	if !h.limiter.GetLimiter(c.ClientIP()).Allow() {
		if h.log != nil {
			h.log.Infow("rate_limited", "ip", c.ClientIP(), "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
			Error: "too many requests",
			Code:  CodeRateLimit,
		})
		return
	}
	c.Next()
}
