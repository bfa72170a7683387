package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
)

// IdempotencyRepository stores the responses of bill submissions so a retry
// with the same key can be answered without writing the bill again. Keys are
// unique per company.
type IdempotencyRepository interface {
	// Find returns the key recorded for a company, or nil when none exists
	Find(ctx context.Context, companyID uuid.UUID, key string) (*entity.IdempotencyKey, error)
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// PurgeExpired deletes keys that expired before cutoff and reports how
	// many were removed
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
