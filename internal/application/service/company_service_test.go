package service

import (
	"net/http"
	"testing"

	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyDerivesSlugAndRejectsDuplicates(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "shree-ganesh-traders", f.company.Slug)

	_, err := f.companies.CreateCompany(f.ctx, &CreateCompanyInput{Name: "Shree Ganesh  Traders"})
	requireAppError(t, err, http.StatusConflict)
}

func TestCreateCompanySeedsDefaultRates(t *testing.T) {
	f := newFixture(t)
	f.companies.defaultRates = billing.Rates{DalaliPercent: dec("1.5"), HamaliRate: dec("2"), VatavRate: dec("0.5")}

	company, err := f.companies.CreateCompany(f.ctx, &CreateCompanyInput{Name: "Laxmi Mandi"})

	require.NoError(t, err)
	assertMoney(t, "1.5", company.Settings.DalaliPercent)
	assert.Equal(t, "FB-", company.Settings.FarmerBillPrefix)
	assert.Equal(t, "INR", company.Settings.Currency)
}

func TestRatesForUsesCache(t *testing.T) {
	f := newFixture(t)

	rates, err := f.companies.RatesFor(f.ctx, f.company.ID)
	require.NoError(t, err)
	assertMoney(t, "2", rates.DalaliPercent)
	assert.Equal(t, 0, f.cache.hits)

	_, err = f.companies.RatesFor(f.ctx, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
}

func TestUpdateCompanyInvalidatesRates(t *testing.T) {
	f := newFixture(t)
	_, err := f.companies.RatesFor(f.ctx, f.company.ID)
	require.NoError(t, err)

	prefix := "KB/"
	_, err = f.companies.UpdateCompany(f.ctx, &UpdateCompanyInput{
		ID:                 f.company.ID,
		Rates:              &billing.Rates{DalaliPercent: dec("4"), HamaliRate: dec("3"), VatavRate: dec("1")},
		CustomerBillPrefix: &prefix,
	})
	require.NoError(t, err)
	assert.NotContains(t, f.cache.rates, f.company.ID)

	rates, err := f.companies.RatesFor(f.ctx, f.company.ID)
	require.NoError(t, err)
	assertMoney(t, "4", rates.DalaliPercent)

	bill, err := f.bills.CreateBill(f.ctx, customerInput(f))
	require.NoError(t, err)
	assert.Contains(t, bill.BillNo, "KB/")
}

func TestGetCompanyNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.companies.RatesFor(f.ctx, newUserID())

	requireAppError(t, err, http.StatusNotFound)
}
