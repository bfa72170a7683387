package billing

import "github.com/shopspring/decimal"

// Balance is the carry-forward result of a bill
type Balance struct {
	TotalBill    decimal.Decimal `json:"total_bill"`
	FinalBalance decimal.Decimal `json:"final_balance"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// CustomerBalance nets the discount and deposit against the line amount
// and carries the previous balance forward.
func CustomerBalance(totalLineAmount, discountAmount, totalExpense, depositCash, previousBalance decimal.Decimal) Balance {
	totalBill := totalLineAmount.Sub(discountAmount)
	final := totalBill.Add(totalExpense).Sub(depositCash)
	return Balance{
		TotalBill:    totalBill,
		FinalBalance: final,
		GrandTotal:   final.Add(previousBalance),
	}
}

// FarmerBalance deducts expenses from the farmer amount. Advances are not
// netted here; they travel with the bill as an informational figure.
func FarmerBalance(totalFarmerAmount, totalExpense, previousBalance decimal.Decimal) Balance {
	totalBill := totalFarmerAmount.Sub(totalExpense)
	return Balance{
		TotalBill:    totalBill,
		FinalBalance: totalBill,
		GrandTotal:   totalBill.Add(previousBalance),
	}
}
