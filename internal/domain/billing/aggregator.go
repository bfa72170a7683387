package billing

import "github.com/shopspring/decimal"

// LineItem is one unit of goods exchanged within a bill
type LineItem struct {
	ItemName           string          `json:"item_name"`
	Quantity           int             `json:"quantity"`
	UnitCustomerAmount decimal.Decimal `json:"unit_customer_amount"`
	UnitFarmerAmount   decimal.Decimal `json:"unit_farmer_amount"`
	CommissionPerUnit  decimal.Decimal `json:"commission_per_unit"`
	Katala             decimal.Decimal `json:"katala"`
}

// CustomerAmount is the line's charge to the buying party
func (l LineItem) CustomerAmount() decimal.Decimal {
	return l.UnitCustomerAmount.Mul(qty(l.Quantity))
}

// FarmerAmount is the line's amount owed to the supplying party
func (l LineItem) FarmerAmount() decimal.Decimal {
	return l.UnitFarmerAmount.Mul(qty(l.Quantity))
}

// Aggregate holds the line-level sums of a bill.
//
// Commission and katala are flat per-line fees and are summed without
// multiplying by quantity.
type Aggregate struct {
	TotalItems        int             `json:"total_items"`
	TotalLineAmount   decimal.Decimal `json:"total_line_amount"`
	TotalFarmerAmount decimal.Decimal `json:"total_farmer_amount"`
	TotalCommission   decimal.Decimal `json:"total_commission"`
	TotalKatala       decimal.Decimal `json:"total_katala"`
}

// AggregateLines sums the lines in order. An empty slice yields zeros.
func AggregateLines(lines []LineItem) Aggregate {
	agg := Aggregate{
		TotalLineAmount:   decimal.Zero,
		TotalFarmerAmount: decimal.Zero,
		TotalCommission:   decimal.Zero,
		TotalKatala:       decimal.Zero,
	}
	for _, l := range lines {
		agg.TotalItems += l.Quantity
		agg.TotalLineAmount = agg.TotalLineAmount.Add(l.CustomerAmount())
		agg.TotalFarmerAmount = agg.TotalFarmerAmount.Add(l.FarmerAmount())
		agg.TotalCommission = agg.TotalCommission.Add(l.CommissionPerUnit)
		agg.TotalKatala = agg.TotalKatala.Add(l.Katala)
	}
	return agg
}
