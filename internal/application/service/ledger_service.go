package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	infraRepo "github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/repository"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
	"github.com/shopspring/decimal"
)

// LedgerService handles ledger-related operations
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(ledgerRepo repository.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// LedgerInput represents input for creating or updating a ledger
type LedgerInput struct {
	Name           string
	LedgerType     enum.LedgerType
	Phone          *string
	City           *string
	Address        *string
	OpeningBalance decimal.Decimal
}

// CreateLedger creates a ledger in the active company
func (s *LedgerService) CreateLedger(ctx context.Context, input *LedgerInput) (*entity.Ledger, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.ErrCompanyMissing
	}
	if !input.LedgerType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid ledger type")
	}

	ledger := &entity.Ledger{
		CompanyID:      companyID,
		Name:           input.Name,
		LedgerType:     input.LedgerType,
		Phone:          input.Phone,
		City:           input.City,
		Address:        input.Address,
		OpeningBalance: input.OpeningBalance,
	}

	if err := s.ledgerRepo.Create(ctx, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

// GetLedger retrieves a ledger by ID
func (s *LedgerService) GetLedger(ctx context.Context, id uuid.UUID) (*entity.Ledger, error) {
	ledger, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, apperror.NewNotFoundError("Ledger")
	}
	return ledger, nil
}

// UpdateLedger updates a ledger. The ledger type cannot change once
// soudas or bills may reference it.
func (s *LedgerService) UpdateLedger(ctx context.Context, id uuid.UUID, input *LedgerInput) (*entity.Ledger, error) {
	ledger, err := s.GetLedger(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.LedgerType != ledger.LedgerType {
		return nil, apperror.NewBadRequestError("Ledger type cannot be changed")
	}

	ledger.Name = input.Name
	ledger.Phone = input.Phone
	ledger.City = input.City
	ledger.Address = input.Address
	ledger.OpeningBalance = input.OpeningBalance

	if err := s.ledgerRepo.Update(ctx, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

// DeleteLedger deletes a ledger
func (s *LedgerService) DeleteLedger(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetLedger(ctx, id); err != nil {
		return err
	}
	return s.ledgerRepo.Delete(ctx, id)
}

// ListLedgers lists ledgers with filtering
func (s *LedgerService) ListLedgers(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.Ledger], error) {
	ledgers, total, err := s.ledgerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(ledgers, pag), nil
}
