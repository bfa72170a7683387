package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	infraRepo "github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/repository"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SoudaService handles souda-related operations
type SoudaService struct {
	soudaRepo  repository.SoudaRepository
	ledgerRepo repository.LedgerRepository
}

// NewSoudaService creates a new souda service
func NewSoudaService(soudaRepo repository.SoudaRepository, ledgerRepo repository.LedgerRepository) *SoudaService {
	return &SoudaService{
		soudaRepo:  soudaRepo,
		ledgerRepo: ledgerRepo,
	}
}

// CreateSoudaInput represents input for recording a souda
type CreateSoudaInput struct {
	SoudaDate      time.Time
	FarmerID       uuid.UUID
	CustomerID     uuid.UUID
	ItemName       string
	Quantity       int
	CustomerAmount decimal.Decimal
	FarmerAmount   decimal.Decimal
	Katala         decimal.Decimal
	Commission     decimal.Decimal
}

// CreateSouda records a deal between a farmer and a customer ledger
func (s *SoudaService) CreateSouda(ctx context.Context, input *CreateSoudaInput) (*entity.Souda, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.ErrCompanyMissing
	}

	if err := s.requireLedger(ctx, input.FarmerID, enum.LedgerTypeFarmer, "Farmer"); err != nil {
		return nil, err
	}
	if err := s.requireLedger(ctx, input.CustomerID, enum.LedgerTypeCustomer, "Customer"); err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{
		{"customer_amount", input.CustomerAmount},
		{"farmer_amount", input.FarmerAmount},
		{"katala", input.Katala},
		{"commission", input.Commission},
	}
	for _, a := range amounts {
		if a.amount.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: a.field, Message: "must not be negative"})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	soudaDate := input.SoudaDate
	if soudaDate.IsZero() {
		soudaDate = time.Now()
	}

	souda := &entity.Souda{
		CompanyID:      companyID,
		SoudaDate:      soudaDate,
		FarmerID:       input.FarmerID,
		CustomerID:     input.CustomerID,
		ItemName:       input.ItemName,
		Quantity:       input.Quantity,
		CustomerAmount: input.CustomerAmount,
		FarmerAmount:   input.FarmerAmount,
		Katala:         input.Katala,
		Commission:     input.Commission,
	}

	if err := s.soudaRepo.Create(ctx, souda); err != nil {
		return nil, err
	}

	return souda, nil
}

func (s *SoudaService) requireLedger(ctx context.Context, id uuid.UUID, want enum.LedgerType, resource string) error {
	ledger, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ledger == nil {
		return apperror.NewNotFoundError(resource)
	}
	if ledger.LedgerType != want {
		return apperror.NewBadRequestError(resource + " ledger must be of type " + want.String())
	}
	return nil
}

// GetSouda retrieves a souda by ID
func (s *SoudaService) GetSouda(ctx context.Context, id uuid.UUID) (*entity.Souda, error) {
	souda, err := s.soudaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if souda == nil {
		return nil, apperror.NewNotFoundError("Souda")
	}
	return souda, nil
}

// DeleteSouda deletes a souda that no bill has claimed
func (s *SoudaService) DeleteSouda(ctx context.Context, id uuid.UUID) error {
	souda, err := s.GetSouda(ctx, id)
	if err != nil {
		return err
	}
	if souda.IsBilled() {
		return apperror.NewConflictError("Souda is already billed")
	}
	return s.soudaRepo.Delete(ctx, id)
}

// ListSoudas lists soudas with filtering
func (s *SoudaService) ListSoudas(ctx context.Context, params *repository.SoudaFilterParams) (*pagination.PaginatedResult[entity.Souda], error) {
	soudas, total, err := s.soudaRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(soudas, pag), nil
}

// UnbilledSoudas returns the soudas a new bill for the ledger would load
func (s *SoudaService) UnbilledSoudas(ctx context.Context, filter repository.UnbilledFilter) ([]entity.Souda, error) {
	if !filter.BillType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid bill type")
	}
	soudas, err := s.soudaRepo.ListUnbilled(ctx, filter)
	if err != nil {
		return nil, err
	}
	if soudas == nil {
		soudas = []entity.Souda{}
	}
	return soudas, nil
}
