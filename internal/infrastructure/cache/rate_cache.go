package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/redis/go-redis/v9"
)

const rateKeyPrefix = "mandi:rates:"

// RateCache stores company billing rates in Redis. A nil *RateCache is a
// valid cache that never hits.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache instantiates the rate cache
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

// Get returns the cached rates for a company, or nil on a miss
func (c *RateCache) Get(ctx context.Context, companyID uuid.UUID) (*billing.Rates, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, rateKey(companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rates billing.Rates
	if err := json.Unmarshal(payload, &rates); err != nil {
		return nil, err
	}
	return &rates, nil
}

// Set stores the rates for a company
func (c *RateCache) Set(ctx context.Context, companyID uuid.UUID, rates billing.Rates) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(rates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rateKey(companyID), raw, c.ttl).Err()
}

// Invalidate drops the cached rates for a company
func (c *RateCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, rateKey(companyID)).Err()
}

func rateKey(companyID uuid.UUID) string {
	return rateKeyPrefix + companyID.String()
}
