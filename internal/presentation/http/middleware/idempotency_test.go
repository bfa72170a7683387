package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memIdempotencyRepo) Find(_ context.Context, companyID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[companyID.String()+"/"+key], nil
}

func (r *memIdempotencyRepo) Save(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[ikey.CompanyID.String()+"/"+ikey.Key] = ikey
	return nil
}

func (r *memIdempotencyRepo) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func idempotentRouter(repo *memIdempotencyRepo, status int) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.Use(func(c *gin.Context) {
		id, _ := uuid.Parse(c.GetHeader("X-Company"))
		c.Set("company_id", id)
		c.Set("user_id", uuid.New())
	})
	r.POST("/bills", Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"bill_no": "CB-" + strings.Repeat("A", calls)})
	})
	return r, &calls
}

func post(r *gin.Engine, key string, companyID uuid.UUID) *httptest.ResponseRecorder {
	return serve(r, http.MethodPost, "/bills", map[string]string{
		IdempotencyKeyHeader: key,
		"X-Company":          companyID.String(),
	})
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	repo := newMemIdempotencyRepo()
	r, calls := idempotentRouter(repo, http.StatusCreated)
	companyID := uuid.New()

	first := post(r, "retry-1", companyID)
	second := post(r, "retry-1", companyID)

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, *calls)
}

func TestIdempotencyKeysAreScopedToCompany(t *testing.T) {
	repo := newMemIdempotencyRepo()
	r, calls := idempotentRouter(repo, http.StatusCreated)

	post(r, "retry-1", uuid.New())
	w := post(r, "retry-1", uuid.New())

	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, *calls)
}

func TestIdempotencySkipsFailedResponses(t *testing.T) {
	repo := newMemIdempotencyRepo()
	r, calls := idempotentRouter(repo, http.StatusConflict)
	companyID := uuid.New()

	post(r, "retry-1", companyID)
	post(r, "retry-1", companyID)

	assert.Equal(t, 2, *calls)
	assert.Empty(t, repo.keys)
}

func TestIdempotencyIgnoresExpiredKeys(t *testing.T) {
	repo := newMemIdempotencyRepo()
	r, calls := idempotentRouter(repo, http.StatusCreated)
	companyID := uuid.New()

	post(r, "retry-1", companyID)
	repo.keys[companyID.String()+"/retry-1"].ExpiresAt = time.Now().Add(-time.Minute)
	w := post(r, "retry-1", companyID)

	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, *calls)
}

func TestIdempotencyKeyIsBoundToItsEndpoint(t *testing.T) {
	repo := newMemIdempotencyRepo()
	calls := map[string]int{}
	companyID := uuid.New()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Set("user_id", uuid.New())
	})
	r.PUT("/bills/:id", Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}), func(c *gin.Context) {
		calls[c.Param("id")]++
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	put := func(id string) *httptest.ResponseRecorder {
		return serve(r, http.MethodPut, "/bills/"+id, map[string]string{IdempotencyKeyHeader: "k1"})
	}

	first := put("A")
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"id":"A"}`, first.Body.String())

	other := put("B")
	assert.Equal(t, http.StatusUnprocessableEntity, other.Code)
	assert.NotContains(t, other.Body.String(), `"id":"A"`)

	retry := put("A")
	assert.Equal(t, http.StatusOK, retry.Code)
	assert.Equal(t, "true", retry.Header().Get("X-Idempotency-Replayed"))

	assert.Equal(t, map[string]int{"A": 1}, calls)
}
