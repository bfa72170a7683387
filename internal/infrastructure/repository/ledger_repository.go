package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	domainRepo "github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, ledger *entity.Ledger) error {
	return r.db.WithContext(ctx).Create(ledger).Error
}

func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ledger, error) {
	var ledger entity.Ledger
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&ledger, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ledger, err
}

func (r *ledgerRepository) Update(ctx context.Context, ledger *entity.Ledger) error {
	return r.db.WithContext(ctx).Save(ledger).Error
}

func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Ledger{}, "id = ?", id).Error
}

func (r *ledgerRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.Ledger, int64, error) {
	var ledgers []entity.Ledger
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ledger{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR city ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Type != nil {
		query = query.Where("ledger_type = ?", *params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&ledgers).Error

	return ledgers, total, err
}
