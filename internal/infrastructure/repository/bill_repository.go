package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	domainRepo "github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var billSortColumns = map[string]string{
	"bill_date":   "bill_date",
	"bill_no":     "bill_no",
	"grand_total": "grand_total",
	"created_at":  "created_at",
}

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		return claimSoudas(tx, bill)
	})
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(CompanyScope(ctx)).
		Preload("Ledger").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := releaseSoudas(tx, bill); err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&entity.BillLine{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(bill).Error; err != nil {
			return err
		}
		if len(bill.Lines) > 0 {
			if err := tx.Create(&bill.Lines).Error; err != nil {
				return err
			}
		}
		return claimSoudas(tx, bill)
	})
}

func (r *billRepository) Delete(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := releaseSoudas(tx, bill); err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).Delete(&entity.BillLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Bill{}, "id = ?", bill.ID).Error
	})
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).Scopes(CompanyScope(ctx))

	if params.Search != "" {
		query = query.Where("bill_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Type != nil {
		query = query.Where("bill_type = ?", *params.Type)
	}

	if params.LedgerID != nil {
		query = query.Where("ledger_id = ?", *params.LedgerID)
	}

	if params.StartDate != nil {
		query = query.Where("bill_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("bill_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "bill_date"
	sortOrder := "DESC"
	if col, ok := billSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Ledger").
		Order(sortBy + " " + sortOrder).
		Order("created_at " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) LatestForLedger(ctx context.Context, ledgerID uuid.UUID, billType enum.BillType) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(CompanyScope(ctx)).
		Where("ledger_id = ? AND bill_type = ?", ledgerID, billType).
		Order("bill_date DESC, created_at DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

// Outstanding returns, per ledger, the grand total of its latest bill of
// billType ordered by ledger name
func (r *billRepository) Outstanding(ctx context.Context, billType enum.BillType) ([]entity.OutstandingRow, error) {
	rows := []entity.OutstandingRow{}

	companyID, ok := GetCompanyID(ctx)
	if !ok {
		return rows, nil
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (b.ledger_id)
				b.ledger_id, l.name AS ledger_name, b.id AS bill_id,
				b.bill_no, b.bill_date, b.grand_total
			FROM bills b
			JOIN ledgers l ON l.id = b.ledger_id
			WHERE b.company_id = ? AND b.bill_type = ? AND b.deleted_at IS NULL
			ORDER BY b.ledger_id, b.bill_date DESC, b.created_at DESC
		) latest
		ORDER BY ledger_name ASC`, companyID, billType).
		Scan(&rows).Error

	return rows, err
}

// claimSoudas marks every souda referenced by the bill's lines as billed.
// A souda already held by another bill of the same type aborts the
// transaction.
func claimSoudas(tx *gorm.DB, bill *entity.Bill) error {
	column := billColumn(bill.BillType)
	for _, id := range bill.SoudaIDs() {
		result := tx.Model(&entity.Souda{}).
			Where("id = ? AND company_id = ? AND "+column+" IS NULL", id, bill.CompanyID).
			Update(column, bill.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrSoudaAlreadyBilled
		}
	}
	return nil
}

// releaseSoudas clears the claim the bill holds on its soudas
func releaseSoudas(tx *gorm.DB, bill *entity.Bill) error {
	column := billColumn(bill.BillType)
	return tx.Model(&entity.Souda{}).
		Where(column+" = ?", bill.ID).
		Update(column, nil).Error
}
