package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/miracle7662/Miracle-Account-sub000/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// Headers the bill screens must always be able to send or read
	requiredHeaders = []string{IdempotencyKeyHeader}
	exposedHeaders  = []string{
		"Content-Length",
		"X-Request-ID",
		"X-Idempotency-Replayed",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware creates a CORS middleware from the configured origins,
// methods and headers, falling back to local development defaults
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowOrigins:     orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods:     orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders:     orDefault(cfg.AllowedHeaders, defaultHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, h := range requiredHeaders {
		if !contains(out.AllowHeaders, h) {
			out.AllowHeaders = append(out.AllowHeaders, h)
		}
	}
	return out
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), values...)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
