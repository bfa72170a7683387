package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(&config.RateLimitConfig{Requests: 120, Duration: 60})
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(&config.RateLimitConfig{}))
	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(nil))
}

func TestCompanyRateLimiterIsPerCompany(t *testing.T) {
	rl := NewCompanyRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Hour,
	})
	defer rl.Stop()

	busy, quiet := uuid.New(), uuid.New()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		id, _ := uuid.Parse(c.GetHeader("X-Company"))
		c.Set("company_id", id)
	})
	r.Use(rl.Middleware())
	r.GET("/bills", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodGet, "/bills", map[string]string{"X-Company": busy.String()})
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := serve(r, http.MethodGet, "/bills", map[string]string{"X-Company": busy.String()})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = serve(r, http.MethodGet, "/bills", map[string]string{"X-Company": quiet.String()})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, rl.ActiveCompanies())

	// Requests without a company bypass the limiter
	w = serve(r, http.MethodGet, "/bills", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompanyRateLimiterCleanup(t *testing.T) {
	rl := NewCompanyRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	rl.getLimiter(uuid.New())
	rl.cleanup(time.Now())
	assert.Equal(t, 1, rl.ActiveCompanies())

	rl.cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, rl.ActiveCompanies())
}
