package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	domainRepo "github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"gorm.io/gorm"
)

type soudaRepository struct {
	db *gorm.DB
}

// NewSoudaRepository creates a new souda repository
func NewSoudaRepository(db *gorm.DB) domainRepo.SoudaRepository {
	return &soudaRepository{db: db}
}

func (r *soudaRepository) Create(ctx context.Context, souda *entity.Souda) error {
	return r.db.WithContext(ctx).Create(souda).Error
}

func (r *soudaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Souda, error) {
	var souda entity.Souda
	err := r.db.WithContext(ctx).
		Scopes(CompanyScope(ctx)).
		Preload("Farmer").Preload("Customer").
		First(&souda, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &souda, err
}

func (r *soudaRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Souda, error) {
	var soudas []entity.Souda
	if len(ids) == 0 {
		return soudas, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(CompanyScope(ctx)).
		Where("id IN ?", ids).
		Order("souda_date ASC, created_at ASC").
		Find(&soudas).Error
	return soudas, err
}

func (r *soudaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Souda{}, "id = ?", id).Error
}

func (r *soudaRepository) List(ctx context.Context, params *domainRepo.SoudaFilterParams) ([]entity.Souda, int64, error) {
	var soudas []entity.Souda
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Souda{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		query = query.Where("item_name ILIKE ?", "%"+params.Search+"%")
	}

	if params.FarmerID != nil {
		query = query.Where("farmer_id = ?", *params.FarmerID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("souda_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("souda_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Farmer").Preload("Customer").
		Order("souda_date DESC, created_at DESC").
		Find(&soudas).Error

	return soudas, total, err
}

func (r *soudaRepository) ListUnbilled(ctx context.Context, filter domainRepo.UnbilledFilter) ([]entity.Souda, error) {
	var soudas []entity.Souda

	partyColumn := "customer_id"
	if filter.BillType == enum.BillTypeFarmer {
		partyColumn = "farmer_id"
	}

	query := r.db.WithContext(ctx).Model(&entity.Souda{}).
		Scopes(CompanyScope(ctx)).
		Where(partyColumn+" = ?", filter.LedgerID).
		Where(billColumn(filter.BillType) + " IS NULL")

	if filter.StartDate != nil {
		query = query.Where("souda_date >= ?", *filter.StartDate)
	}

	if filter.EndDate != nil {
		query = query.Where("souda_date <= ?", *filter.EndDate)
	}

	err := query.Order("souda_date ASC, created_at ASC").Find(&soudas).Error
	return soudas, err
}

// billColumn returns the souda column that records a claim by billType
func billColumn(billType enum.BillType) string {
	if billType == enum.BillTypeFarmer {
		return "farmer_bill_id"
	}
	return "customer_bill_id"
}
