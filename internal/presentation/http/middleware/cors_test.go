package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCORSConfigDefaults(t *testing.T) {
	cfg := corsConfig(&config.CORSConfig{})

	assert.Equal(t, defaultOrigins, cfg.AllowOrigins)
	assert.Equal(t, defaultMethods, cfg.AllowMethods)
	assert.Contains(t, cfg.AllowHeaders, IdempotencyKeyHeader)
	assert.Contains(t, cfg.ExposeHeaders, "X-Idempotency-Replayed")
}

func TestCORSConfigAddsIdempotencyHeader(t *testing.T) {
	cfg := corsConfig(&config.CORSConfig{AllowedHeaders: []string{"Authorization"}})
	assert.Equal(t, []string{"Authorization", IdempotencyKeyHeader}, cfg.AllowHeaders)

	cfg = corsConfig(&config.CORSConfig{AllowedHeaders: []string{IdempotencyKeyHeader}})
	assert.Equal(t, []string{IdempotencyKeyHeader}, cfg.AllowHeaders)
}

func TestCORSMiddlewareAnswersPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"https://mandi.example"}}))
	r.POST("/bills", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := serve(r, http.MethodOptions, "/bills", map[string]string{
		"Origin":                        "https://mandi.example",
		"Access-Control-Request-Method": "POST",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://mandi.example", w.Header().Get("Access-Control-Allow-Origin"))
}
