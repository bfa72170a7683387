package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/entity"
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	infraRepo "github.com/miracle7662/Miracle-Account-sub000/internal/infrastructure/repository"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memStore
	cache     *mockRateCache
	ctx       context.Context
	company   *entity.Company
	customer  *entity.Ledger
	farmer    *entity.Ledger
	companies *CompanyService
	ledgers   *LedgerService
	soudas    *SoudaService
	bills     *BillService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, _ := logtest.NewNullLogger()

	store := newMemStore()
	cache := newMockRateCache()
	companyRepo := &mockCompanyRepo{s: store}
	ledgerRepo := &mockLedgerRepo{s: store}
	soudaRepo := &mockSoudaRepo{s: store}
	billRepo := &mockBillRepo{s: store}

	f := &fixture{store: store, cache: cache}
	f.companies = NewCompanyService(companyRepo, cache, billing.Rates{}, log)
	f.ledgers = NewLedgerService(ledgerRepo)
	f.soudas = NewSoudaService(soudaRepo, ledgerRepo)
	f.bills = NewBillService(billRepo, ledgerRepo, soudaRepo, f.companies, log)
	f.bills.now = func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) }

	company, err := f.companies.CreateCompany(context.Background(), &CreateCompanyInput{
		Name: "Shree Ganesh Traders",
		Settings: &entity.CompanySettings{
			DalaliPercent:      dec("2"),
			HamaliRate:         dec("3"),
			VatavRate:          dec("1"),
			CustomerBillPrefix: "CB-",
			FarmerBillPrefix:   "FB-",
		},
	})
	require.NoError(t, err)
	f.company = company
	f.ctx = infraRepo.WithCompany(context.Background(), company.ID)

	f.customer, err = f.ledgers.CreateLedger(f.ctx, &LedgerInput{
		Name:           "Ramesh Vegetables",
		LedgerType:     enum.LedgerTypeCustomer,
		OpeningBalance: dec("250"),
	})
	require.NoError(t, err)

	f.farmer, err = f.ledgers.CreateLedger(f.ctx, &LedgerInput{
		Name:       "Sunil Patil",
		LedgerType: enum.LedgerTypeFarmer,
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) addSouda(t *testing.T, day int, quantity int, customerAmount, farmerAmount, katala, commission string) *entity.Souda {
	t.Helper()
	souda, err := f.soudas.CreateSouda(f.ctx, &CreateSoudaInput{
		SoudaDate:      time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		FarmerID:       f.farmer.ID,
		CustomerID:     f.customer.ID,
		ItemName:       "Onion",
		Quantity:       quantity,
		CustomerAmount: dec(customerAmount),
		FarmerAmount:   dec(farmerAmount),
		Katala:         dec(katala),
		Commission:     dec(commission),
	})
	require.NoError(t, err)
	return souda
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got.String())
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func newUserID() uuid.UUID {
	return uuid.MustParse("6f1c2a52-8f0b-4c1e-9a55-0d4b2e7f9a10")
}
