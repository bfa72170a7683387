package billing

import (
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// BillTotals is every derived figure on a bill, rounded to two places.
// It has no identity of its own; persist it verbatim alongside the draft.
type BillTotals struct {
	TotalItems        int             `json:"total_items"`
	TotalLineAmount   decimal.Decimal `json:"total_line_amount"`
	TotalFarmerAmount decimal.Decimal `json:"total_farmer_amount"`
	TotalCommission   decimal.Decimal `json:"total_commission"`
	TotalKatala       decimal.Decimal `json:"total_katala"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	Dalali            decimal.Decimal `json:"dalali"`
	Hamali            decimal.Decimal `json:"hamali"`
	Vatav             decimal.Decimal `json:"vatav"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	TotalBill         decimal.Decimal `json:"total_bill"`
	FinalBalance      decimal.Decimal `json:"final_balance"`
	PreviousBalance   decimal.Decimal `json:"previous_balance"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
}

// ComputeBillTotals derives the totals of d using the policy of its type
func ComputeBillTotals(d BillDraft) BillTotals {
	agg := AggregateLines(d.Lines)
	discount := d.Discount.Amount

	var expense Expense
	var balance Balance
	switch d.Type {
	case enum.BillTypeFarmer:
		expense = ComputeExpense(agg.TotalLineAmount, agg.TotalItems, d.Rates, FlatCharges{
			TransportCharges: d.TransportCharges,
			KatalaAmount:     agg.TotalKatala,
			DiscountAmount:   discount,
		})
		balance = FarmerBalance(agg.TotalFarmerAmount, expense.Total, d.PreviousBalance)
	default:
		expense = ComputeCustomerExpense(d.TransportCharges, agg.TotalCommission)
		balance = CustomerBalance(agg.TotalLineAmount, discount, expense.Total, d.DepositCash, d.PreviousBalance)
	}

	return BillTotals{
		TotalItems:        agg.TotalItems,
		TotalLineAmount:   Round2(agg.TotalLineAmount),
		TotalFarmerAmount: Round2(agg.TotalFarmerAmount),
		TotalCommission:   Round2(agg.TotalCommission),
		TotalKatala:       Round2(agg.TotalKatala),
		DiscountPercent:   Round2(d.Discount.Percent),
		DiscountAmount:    Round2(discount),
		Dalali:            Round2(expense.Dalali),
		Hamali:            Round2(expense.Hamali),
		Vatav:             Round2(expense.Vatav),
		TotalExpense:      Round2(expense.Total),
		TotalBill:         Round2(balance.TotalBill),
		FinalBalance:      Round2(balance.FinalBalance),
		PreviousBalance:   Round2(d.PreviousBalance),
		GrandTotal:        Round2(balance.GrandTotal),
	}
}
