package billing

import "github.com/shopspring/decimal"

// Rates are the company-level charge rates, overridable per bill
type Rates struct {
	DalaliPercent decimal.Decimal `json:"dalali_percent"`
	HamaliRate    decimal.Decimal `json:"hamali_rate"`
	VatavRate     decimal.Decimal `json:"vatav_rate"`
}

// FlatCharges are charges that are not derived from a rate
type FlatCharges struct {
	TransportCharges decimal.Decimal `json:"transport_charges"`
	KatalaAmount     decimal.Decimal `json:"katala_amount"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
}

// Expense is the breakdown of a bill's total expense
type Expense struct {
	Dalali decimal.Decimal `json:"dalali"`
	Hamali decimal.Decimal `json:"hamali"`
	Vatav  decimal.Decimal `json:"vatav"`
	Total  decimal.Decimal `json:"total"`
}

// ComputeExpense applies the farmer bill expense policy:
// dalali is a percentage of the line amount, hamali and vatav are per-unit
// rates, and transport, katala and discount are added flat.
func ComputeExpense(totalLineAmount decimal.Decimal, totalQty int, rates Rates, flat FlatCharges) Expense {
	units := qty(totalQty)
	dalali := totalLineAmount.Mul(rates.DalaliPercent).Div(hundred)
	hamali := rates.HamaliRate.Mul(units)
	vatav := rates.VatavRate.Mul(units)

	total := dalali.Add(hamali).Add(vatav).
		Add(flat.KatalaAmount).
		Add(flat.TransportCharges).
		Add(flat.DiscountAmount)

	return Expense{Dalali: dalali, Hamali: hamali, Vatav: vatav, Total: total}
}

// ComputeCustomerExpense applies the customer bill policy: transport plus
// the flat per-line commission.
func ComputeCustomerExpense(transportCharges, totalCommission decimal.Decimal) Expense {
	return Expense{
		Dalali: decimal.Zero,
		Hamali: decimal.Zero,
		Vatav:  decimal.Zero,
		Total:  transportCharges.Add(totalCommission),
	}
}
