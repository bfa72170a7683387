package billing

import (
	"testing"

	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerDraft() BillDraft {
	return Apply(NewDraft(enum.BillTypeCustomer),
		AddLine{Line: LineItem{ItemName: "Onion", Quantity: 10, UnitCustomerAmount: d("100"), CommissionPerUnit: d("30")}},
		SetDiscountAmount{Amount: d("50")},
		SetTransport{Amount: d("20")},
		SetDepositCash{Amount: d("800")},
		SetPreviousBalance{Amount: d("200")},
	)
}

func TestComputeBillTotalsCustomer(t *testing.T) {
	totals := ComputeBillTotals(customerDraft())

	assert.Equal(t, 10, totals.TotalItems)
	assertDecimal(t, "1000", totals.TotalLineAmount)
	assertDecimal(t, "30", totals.TotalCommission)
	assertDecimal(t, "5", totals.DiscountPercent)
	assertDecimal(t, "50", totals.DiscountAmount)
	assertDecimal(t, "950", totals.TotalBill)
	assertDecimal(t, "50", totals.TotalExpense)
	assertDecimal(t, "200", totals.FinalBalance)
	assertDecimal(t, "400", totals.GrandTotal)
}

func TestComputeBillTotalsFarmer(t *testing.T) {
	draft := Apply(NewDraft(enum.BillTypeFarmer),
		LoadLines{Lines: []LineItem{
			{ItemName: "Onion", Quantity: 6, UnitCustomerAmount: d("100"), UnitFarmerAmount: d("95"), Katala: d("12")},
			{ItemName: "Onion", Quantity: 4, UnitCustomerAmount: d("100"), UnitFarmerAmount: d("95"), Katala: d("8")},
		}},
		SetRates{Rates: Rates{DalaliPercent: d("2"), HamaliRate: d("1.5"), VatavRate: d("0.5")}},
		SetTransport{Amount: d("50")},
		SetDepositCash{Amount: d("999")},
		SetPreviousAdvance{Amount: d("300")},
		SetPreviousBalance{Amount: d("100")},
	)

	totals := ComputeBillTotals(draft)

	assertDecimal(t, "950", totals.TotalFarmerAmount)
	assertDecimal(t, "20", totals.Dalali)
	assertDecimal(t, "15", totals.Hamali)
	assertDecimal(t, "5", totals.Vatav)
	assertDecimal(t, "20", totals.TotalKatala)
	assertDecimal(t, "110", totals.TotalExpense)
	assertDecimal(t, "840", totals.TotalBill)
	assertDecimal(t, "840", totals.FinalBalance)
	assertDecimal(t, "940", totals.GrandTotal)
}

func TestComputeBillTotalsIdempotent(t *testing.T) {
	draft := customerDraft()

	first := ComputeBillTotals(draft)
	second := ComputeBillTotals(draft)

	require.Equal(t, first, second)
}

func TestComputeBillTotalsRoundsToCents(t *testing.T) {
	draft := Apply(NewDraft(enum.BillTypeFarmer),
		AddLine{Line: LineItem{Quantity: 3, UnitCustomerAmount: d("33.333"), UnitFarmerAmount: d("30")}},
		SetRates{Rates: Rates{DalaliPercent: d("1.5")}},
	)

	totals := ComputeBillTotals(draft)

	assertDecimal(t, "100", totals.TotalLineAmount)
	assertDecimal(t, "1.5", totals.Dalali)
	assert.LessOrEqual(t, totals.TotalBill.Exponent(), int32(0))
	assert.GreaterOrEqual(t, totals.TotalBill.Exponent(), int32(-2))
}
