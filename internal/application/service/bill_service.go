package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/repository"
	infraRepo "github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/repository"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/logger"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const soudaBilledMessage = "One or more soudas are already billed"

// BillService builds bill drafts, computes their totals and persists them
type BillService struct {
	billRepo   repository.BillRepository
	ledgerRepo repository.LedgerRepository
	soudaRepo  repository.SoudaRepository
	companies  *CompanyService
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	ledgerRepo repository.LedgerRepository,
	soudaRepo repository.SoudaRepository,
	companies *CompanyService,
	log logrus.FieldLogger,
) *BillService {
	return &BillService{
		billRepo:   billRepo,
		ledgerRepo: ledgerRepo,
		soudaRepo:  soudaRepo,
		companies:  companies,
		log:        log,
		now:        time.Now,
	}
}

// BillLineInput is one line of a bill. Lines that reference a souda take
// their values from the souda.
type BillLineInput struct {
	SoudaID *uuid.UUID
	billing.LineItem
}

// BillInput represents the editable state of a bill. Nil pointers fall back
// to the company rates, the ledger's running balance, or no discount.
type BillInput struct {
	UserID       uuid.UUID
	LedgerID     uuid.UUID
	BillType     enum.BillType
	BillDate     time.Time
	FromDate     *time.Time
	ToDate       *time.Time
	Notes        *string
	Lines        []BillLineInput
	LoadUnbilled bool

	TransportCharges decimal.Decimal
	DepositCash      decimal.Decimal
	PreviousAdvance  decimal.Decimal
	PreviousBalance  *decimal.Decimal
	DiscountPercent  *decimal.Decimal
	DiscountAmount   *decimal.Decimal
	Rates            *billing.Rates
}

// BillPreview is a computed draft that has not been saved
type BillPreview struct {
	Draft    billing.BillDraft  `json:"draft"`
	SoudaIDs []*uuid.UUID       `json:"souda_ids"`
	Totals   billing.BillTotals `json:"totals"`
}

// Preview computes the totals of a bill without persisting anything
func (s *BillService) Preview(ctx context.Context, input *BillInput) (*BillPreview, error) {
	if _, ok := infraRepo.GetCompanyID(ctx); !ok {
		return nil, apperror.ErrCompanyMissing
	}

	draft, soudaIDs, err := s.buildDraft(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	return &BillPreview{
		Draft:    draft,
		SoudaIDs: soudaIDs,
		Totals:   billing.ComputeBillTotals(draft),
	}, nil
}

// CreateBill computes and stores a new bill, claiming every souda it bills
func (s *BillService) CreateBill(ctx context.Context, input *BillInput) (*entity.Bill, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.ErrCompanyMissing
	}

	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	draft, soudaIDs, err := s.buildDraft(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	totals := billing.ComputeBillTotals(draft)

	bill := &entity.Bill{
		ID:        uuid.New(),
		CompanyID: companyID,
		UserID:    input.UserID,
		LedgerID:  input.LedgerID,
		BillNo:    utils.GenerateBillNo(billPrefix(company, input.BillType)),
		BillDate:  s.billDate(input.BillDate),
		FromDate:  input.FromDate,
		ToDate:    input.ToDate,
		Notes:     input.Notes,
	}
	bill.SetComputed(draft, totals, soudaIDs)

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, s.persistError("CreateBill", bill, err)
	}

	s.log.WithFields(logrus.Fields{
		"bill_id":     bill.ID,
		"bill_no":     bill.BillNo,
		"bill_type":   bill.BillType.String(),
		"grand_total": bill.GrandTotal.StringFixed(2),
	}).Info("bill created")

	return s.GetBill(ctx, bill.ID)
}

// UpdateBill recomputes a bill from new input. The bill type and ledger
// cannot change, and the stored previous balance and rates are kept unless
// overridden.
func (s *BillService) UpdateBill(ctx context.Context, id uuid.UUID, input *BillInput) (*entity.Bill, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.BillType != bill.BillType {
		return nil, apperror.NewBadRequestError("Bill type cannot be changed")
	}
	if input.LedgerID != bill.LedgerID {
		return nil, apperror.NewBadRequestError("Bill ledger cannot be changed")
	}

	in := *input
	if in.PreviousBalance == nil {
		previous := bill.PreviousBalance
		in.PreviousBalance = &previous
	}
	if in.Rates == nil {
		in.Rates = &billing.Rates{
			DalaliPercent: bill.DalaliPercent,
			HamaliRate:    bill.HamaliRate,
			VatavRate:     bill.VatavRate,
		}
	}

	draft, soudaIDs, err := s.buildDraft(ctx, &in, bill)
	if err != nil {
		return nil, err
	}
	totals := billing.ComputeBillTotals(draft)

	if !input.BillDate.IsZero() {
		bill.BillDate = input.BillDate
	}
	bill.FromDate = input.FromDate
	bill.ToDate = input.ToDate
	bill.Notes = input.Notes
	bill.Ledger = nil
	bill.SetComputed(draft, totals, soudaIDs)

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, s.persistError("UpdateBill", bill, err)
	}

	return s.GetBill(ctx, bill.ID)
}

// GetBill retrieves a bill with its lines
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filtering
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// DeleteBill deletes a bill and releases its soudas
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return err
	}
	if err := s.billRepo.Delete(ctx, bill); err != nil {
		logger.LogError(s.log, "billing", "DeleteBill", "delete bill", bill.ID, err)
		return err
	}
	return nil
}

// Outstanding returns the latest grand total of every ledger with bills of
// the given type
func (s *BillService) Outstanding(ctx context.Context, billType enum.BillType) ([]entity.OutstandingRow, error) {
	if !billType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid bill type")
	}
	return s.billRepo.Outstanding(ctx, billType)
}

// buildDraft resolves rates, the previous balance and the lines of input
// and folds them into a draft. existing is the bill being edited, if any;
// soudas it already holds may be billed again.
func (s *BillService) buildDraft(ctx context.Context, input *BillInput, existing *entity.Bill) (billing.BillDraft, []*uuid.UUID, error) {
	if !input.BillType.IsValid() {
		return billing.BillDraft{}, nil, apperror.NewBadRequestError("Invalid bill type")
	}
	if err := validateBillInput(input); err != nil {
		return billing.BillDraft{}, nil, err
	}

	ledger, err := s.ledgerRepo.GetByID(ctx, input.LedgerID)
	if err != nil {
		return billing.BillDraft{}, nil, err
	}
	if ledger == nil {
		return billing.BillDraft{}, nil, apperror.NewNotFoundError("Ledger")
	}
	if ledger.LedgerType != input.BillType.LedgerType() {
		return billing.BillDraft{}, nil, apperror.NewBadRequestError(
			fmt.Sprintf("%s bill requires a %s ledger", input.BillType, input.BillType.LedgerType()))
	}

	rates, err := s.resolveRates(ctx, input)
	if err != nil {
		return billing.BillDraft{}, nil, err
	}

	previousBalance, err := s.resolvePreviousBalance(ctx, input, ledger)
	if err != nil {
		return billing.BillDraft{}, nil, err
	}

	lines, soudaIDs, err := s.resolveLines(ctx, input, existing)
	if err != nil {
		return billing.BillDraft{}, nil, err
	}
	if input.DiscountAmount != nil {
		if base := billing.AggregateLines(lines).TotalLineAmount; input.DiscountAmount.GreaterThan(base) {
			return billing.BillDraft{}, nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   "discount_amount",
				Message: "must not exceed the line total of " + billing.Round2(base).StringFixed(2),
			}})
		}
	}

	actions := []billing.Action{
		billing.SetRates{Rates: rates},
		billing.SetPreviousBalance{Amount: previousBalance},
		billing.SetPreviousAdvance{Amount: input.PreviousAdvance},
		billing.SetTransport{Amount: input.TransportCharges},
		billing.SetDepositCash{Amount: input.DepositCash},
		billing.LoadLines{Lines: lines},
	}
	// Percent first so an explicit amount wins when both are sent
	if input.DiscountPercent != nil {
		actions = append(actions, billing.SetDiscountPercent{Percent: *input.DiscountPercent})
	}
	if input.DiscountAmount != nil {
		actions = append(actions, billing.SetDiscountAmount{Amount: *input.DiscountAmount})
	}

	return billing.Apply(billing.NewDraft(input.BillType), actions...), soudaIDs, nil
}

func (s *BillService) resolveRates(ctx context.Context, input *BillInput) (billing.Rates, error) {
	if input.Rates != nil {
		return *input.Rates, nil
	}
	companyID, _ := infraRepo.GetCompanyID(ctx)
	return s.companies.RatesFor(ctx, companyID)
}

// resolvePreviousBalance carries forward the grand total of the ledger's
// latest bill of the same type, or its opening balance before the first bill
func (s *BillService) resolvePreviousBalance(ctx context.Context, input *BillInput, ledger *entity.Ledger) (decimal.Decimal, error) {
	if input.PreviousBalance != nil {
		return *input.PreviousBalance, nil
	}

	latest, err := s.billRepo.LatestForLedger(ctx, ledger.ID, input.BillType)
	if err != nil {
		return decimal.Zero, err
	}
	if latest != nil {
		return latest.GrandTotal, nil
	}
	return ledger.OpeningBalance, nil
}

// resolveLines returns the explicit lines followed by any unbilled soudas
// loaded for the ledger, with the souda each line came from
func (s *BillService) resolveLines(ctx context.Context, input *BillInput, existing *entity.Bill) ([]billing.LineItem, []*uuid.UUID, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, l := range input.Lines {
		if l.SoudaID == nil {
			continue
		}
		if seen[*l.SoudaID] {
			return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("Souda %s appears more than once", *l.SoudaID))
		}
		seen[*l.SoudaID] = true
		ids = append(ids, *l.SoudaID)
	}

	soudaMap := make(map[uuid.UUID]*entity.Souda, len(ids))
	if len(ids) > 0 {
		soudas, err := s.soudaRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for i := range soudas {
			soudaMap[soudas[i].ID] = &soudas[i]
		}
	}

	lines := make([]billing.LineItem, 0, len(input.Lines))
	soudaIDs := make([]*uuid.UUID, 0, len(input.Lines))
	for _, l := range input.Lines {
		if l.SoudaID == nil {
			lines = append(lines, l.LineItem)
			soudaIDs = append(soudaIDs, nil)
			continue
		}

		souda, ok := soudaMap[*l.SoudaID]
		if !ok {
			return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("Souda %s", *l.SoudaID))
		}
		if err := checkSouda(souda, input, existing); err != nil {
			return nil, nil, err
		}
		lines = append(lines, souda.LineItem())
		soudaIDs = append(soudaIDs, &souda.ID)
	}

	if !input.LoadUnbilled {
		return lines, soudaIDs, nil
	}

	unbilled, err := s.soudaRepo.ListUnbilled(ctx, repository.UnbilledFilter{
		BillType:  input.BillType,
		LedgerID:  input.LedgerID,
		StartDate: input.FromDate,
		EndDate:   input.ToDate,
	})
	if err != nil {
		return nil, nil, err
	}
	for i := range unbilled {
		souda := &unbilled[i]
		if seen[souda.ID] {
			continue
		}
		seen[souda.ID] = true
		lines = append(lines, souda.LineItem())
		soudaIDs = append(soudaIDs, &souda.ID)
	}

	return lines, soudaIDs, nil
}

func checkSouda(souda *entity.Souda, input *BillInput, existing *entity.Bill) error {
	if souda.PartyFor(input.BillType) != input.LedgerID {
		return apperror.NewBadRequestError(fmt.Sprintf("Souda %s does not belong to this ledger", souda.ID))
	}
	claimed := souda.BilledOn(input.BillType)
	if claimed != nil && (existing == nil || *claimed != existing.ID) {
		return apperror.NewConflictError(soudaBilledMessage)
	}
	return nil
}

// validateBillInput rejects negative figures before they reach the engine
var hundredPercent = decimal.NewFromInt(100)

func validateBillInput(input *BillInput) error {
	var fieldErrors []apperror.FieldError
	negative := func(field string, d decimal.Decimal) {
		if d.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: "must not be negative"})
		}
	}

	negative("transport_charges", input.TransportCharges)
	negative("deposit_cash", input.DepositCash)
	negative("previous_advance", input.PreviousAdvance)
	if input.DiscountPercent != nil {
		negative("discount_percent", *input.DiscountPercent)
		if input.DiscountPercent.GreaterThan(hundredPercent) {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount_percent", Message: "must not exceed 100"})
		}
	}
	if input.DiscountAmount != nil {
		negative("discount_amount", *input.DiscountAmount)
	}
	if input.Rates != nil {
		negative("rates.dalali_percent", input.Rates.DalaliPercent)
		negative("rates.hamali_rate", input.Rates.HamaliRate)
		negative("rates.vatav_rate", input.Rates.VatavRate)
	}

	for i, l := range input.Lines {
		if l.SoudaID != nil {
			continue
		}
		prefix := fmt.Sprintf("lines[%d].", i)
		if l.Quantity < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: prefix + "quantity", Message: "must not be negative"})
		}
		negative(prefix+"unit_customer_amount", l.UnitCustomerAmount)
		negative(prefix+"unit_farmer_amount", l.UnitFarmerAmount)
		negative(prefix+"commission_per_unit", l.CommissionPerUnit)
		negative(prefix+"katala", l.Katala)
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func (s *BillService) persistError(funcName string, bill *entity.Bill, err error) error {
	if errors.Is(err, repository.ErrSoudaAlreadyBilled) {
		return apperror.NewConflictError(soudaBilledMessage)
	}
	logger.LogError(s.log, "billing", funcName, "persist bill", logrus.Fields{"bill_id": bill.ID, "bill_no": bill.BillNo}, err)
	return err
}

func (s *BillService) billDate(d time.Time) time.Time {
	if d.IsZero() {
		return s.now()
	}
	return d
}

func billPrefix(company *entity.Company, billType enum.BillType) string {
	if billType == enum.BillTypeFarmer {
		if company.Settings.FarmerBillPrefix != "" {
			return company.Settings.FarmerBillPrefix
		}
		return "FB-"
	}
	if company.Settings.CustomerBillPrefix != "" {
		return company.Settings.CustomerBillPrefix
	}
	return "CB-"
}
