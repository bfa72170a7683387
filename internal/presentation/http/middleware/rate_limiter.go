package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
	"golang.org/x/time/rate"
)

// CompanyRateLimiter provides per-company rate limiting so one busy mandi
// cannot starve the others
type CompanyRateLimiter struct {
	limiters    map[uuid.UUID]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// DefaultRateLimiterConfig returns the limits used when none are configured
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// RateLimiterConfigFrom converts RATE_LIMIT_REQUESTS per RATE_LIMIT_DURATION
// seconds into a token bucket. Non-positive values keep the defaults.
func RateLimiterConfigFrom(cfg *config.RateLimitConfig) RateLimiterConfig {
	out := DefaultRateLimiterConfig()
	if cfg == nil || cfg.Requests <= 0 || cfg.Duration <= 0 {
		return out
	}
	out.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
	out.BurstSize = cfg.Requests
	return out
}

// NewCompanyRateLimiter creates a new per-company rate limiter and starts its
// cleanup loop. Call Stop to end the loop.
func NewCompanyRateLimiter(cfg RateLimiterConfig) *CompanyRateLimiter {
	rl := &CompanyRateLimiter{
		limiters:    make(map[uuid.UUID]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop ends the background cleanup loop
func (rl *CompanyRateLimiter) Stop() {
	close(rl.stop)
}

func (rl *CompanyRateLimiter) getLimiter(companyID uuid.UUID) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, exists := rl.limiters[companyID]; exists {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[companyID] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}
	return limiter
}

func (rl *CompanyRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes entries that haven't been used since now - entryTTL
func (rl *CompanyRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.entryTTL)
	for companyID, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, companyID)
		}
	}
}

// Middleware returns a Gin middleware that applies per-company rate limiting.
// Requests without a company are not limited.
func (rl *CompanyRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := GetCompanyID(c)
		if companyID == uuid.Nil {
			c.Next()
			return
		}

		limiter := rl.getLimiter(companyID)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}

// ActiveCompanies returns how many companies currently hold a limiter
func (rl *CompanyRateLimiter) ActiveCompanies() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}
