package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	domainRepo "github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates the company-keyed idempotency store
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) Find(ctx context.Context, companyID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND key = ?", companyID, key).
		Take(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ikey, nil
}

// Save records a response. An expired row for the same key is overwritten;
// a live one stays, so the first of two concurrent requests wins.
func (r *idempotencyRepository) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}, {Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "endpoint", "response_code", "response_body", "created_at", "expires_at",
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Lt{Column: clause.Column{Table: "idempotency_keys", Name: "expires_at"}, Value: time.Now()},
			}},
		}).
		Create(ikey).Error
}

func (r *idempotencyRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&entity.IdempotencyKey{})
	return res.RowsAffected, res.Error
}
