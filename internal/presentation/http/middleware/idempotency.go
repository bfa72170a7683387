package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"github.com/miracle7662/Miracle-Account-sub000/internal/presentation/http/dto/response"
	"github.com/sirupsen/logrus"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// DefaultIdempotencyTTL is used when no TTL is configured
	DefaultIdempotencyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	Log  logrus.FieldLogger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a bill submission is retried
// with the same Idempotency-Key within the same company. A key is bound to
// the method and path it was first used on; reusing it elsewhere is a 422.
// Only 2xx responses are stored, so a failed attempt can be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		companyID := GetCompanyID(c)
		userIDValue, _ := c.Get("user_id")
		userID, ok := userIDValue.(uuid.UUID)
		if companyID == uuid.Nil || !ok {
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.Request.URL.Path
		existing, err := cfg.Repo.Find(c.Request.Context(), companyID, key)
		if err != nil {
			if cfg.Log != nil {
				cfg.Log.WithError(err).WithField("idempotency_key", key).Warn("idempotency lookup failed")
			}
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired(time.Now()) {
			if existing.Endpoint != endpoint {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity,
					"Idempotency-Key was already used for a different request")
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          key,
			CompanyID:    companyID,
			UserID:       userID,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(ttl),
		}
		if err := cfg.Repo.Save(c.Request.Context(), ikey); err != nil && cfg.Log != nil {
			cfg.Log.WithError(err).WithField("idempotency_key", key).Warn("failed to store idempotency key")
		}
	}
}
