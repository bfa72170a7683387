package billing

import (
	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// BillDraft is the full editable state of one bill. It is never mutated in
// place: Apply returns a new draft for every action.
type BillDraft struct {
	Type             enum.BillType   `json:"bill_type"`
	Lines            []LineItem      `json:"lines"`
	PreviousBalance  decimal.Decimal `json:"previous_balance"`
	PreviousAdvance  decimal.Decimal `json:"previous_advance"`
	TransportCharges decimal.Decimal `json:"transport_charges"`
	DepositCash      decimal.Decimal `json:"deposit_cash"`
	Rates            Rates           `json:"rates"`
	Discount         Reconciler      `json:"discount"`
}

// NewDraft returns an empty draft of the given type
func NewDraft(billType enum.BillType) BillDraft {
	return BillDraft{
		Type:             billType,
		PreviousBalance:  decimal.Zero,
		PreviousAdvance:  decimal.Zero,
		TransportCharges: decimal.Zero,
		DepositCash:      decimal.Zero,
		Rates: Rates{
			DalaliPercent: decimal.Zero,
			HamaliRate:    decimal.Zero,
			VatavRate:     decimal.Zero,
		},
		Discount: NewReconciler(decimal.Zero),
	}
}

// DiscountBase is the total the discount percentage applies to
func (d BillDraft) DiscountBase() decimal.Decimal {
	return AggregateLines(d.Lines).TotalLineAmount
}

// Action is a single edit to a draft
type Action interface {
	apply(d BillDraft) BillDraft
}

// Apply folds actions over d in order
func Apply(d BillDraft, actions ...Action) BillDraft {
	for _, a := range actions {
		d = a.apply(d)
	}
	return d
}

// AddLine appends a line
type AddLine struct{ Line LineItem }

// LoadLines appends lines loaded in bulk from unbilled soudas
type LoadLines struct{ Lines []LineItem }

// ReplaceLine rewrites the line at Index
type ReplaceLine struct {
	Index int
	Line  LineItem
}

// RemoveLine drops the line at Index
type RemoveLine struct{ Index int }

type SetDiscountPercent struct{ Percent decimal.Decimal }

type SetDiscountAmount struct{ Amount decimal.Decimal }

type SetRates struct{ Rates Rates }

type SetTransport struct{ Amount decimal.Decimal }

type SetDepositCash struct{ Amount decimal.Decimal }

type SetPreviousAdvance struct{ Amount decimal.Decimal }

type SetPreviousBalance struct{ Amount decimal.Decimal }

func (a AddLine) apply(d BillDraft) BillDraft {
	lines := make([]LineItem, 0, len(d.Lines)+1)
	lines = append(lines, d.Lines...)
	return d.withLines(append(lines, a.Line))
}

func (a LoadLines) apply(d BillDraft) BillDraft {
	if len(a.Lines) == 0 {
		return d
	}
	lines := make([]LineItem, 0, len(d.Lines)+len(a.Lines))
	lines = append(lines, d.Lines...)
	return d.withLines(append(lines, a.Lines...))
}

func (a ReplaceLine) apply(d BillDraft) BillDraft {
	if a.Index < 0 || a.Index >= len(d.Lines) {
		return d
	}
	lines := append([]LineItem(nil), d.Lines...)
	lines[a.Index] = a.Line
	return d.withLines(lines)
}

func (a RemoveLine) apply(d BillDraft) BillDraft {
	if a.Index < 0 || a.Index >= len(d.Lines) {
		return d
	}
	lines := make([]LineItem, 0, len(d.Lines)-1)
	lines = append(lines, d.Lines[:a.Index]...)
	lines = append(lines, d.Lines[a.Index+1:]...)
	return d.withLines(lines)
}

func (a SetDiscountPercent) apply(d BillDraft) BillDraft {
	d.Discount = d.Discount.SetPercent(a.Percent)
	return d
}

func (a SetDiscountAmount) apply(d BillDraft) BillDraft {
	d.Discount = d.Discount.SetAmount(a.Amount)
	return d
}

func (a SetRates) apply(d BillDraft) BillDraft {
	d.Rates = a.Rates
	return d
}

func (a SetTransport) apply(d BillDraft) BillDraft {
	d.TransportCharges = a.Amount
	return d
}

func (a SetDepositCash) apply(d BillDraft) BillDraft {
	d.DepositCash = a.Amount
	return d
}

func (a SetPreviousAdvance) apply(d BillDraft) BillDraft {
	d.PreviousAdvance = a.Amount
	return d
}

func (a SetPreviousBalance) apply(d BillDraft) BillDraft {
	d.PreviousBalance = a.Amount
	return d
}

// withLines swaps in a new line slice and re-bases the discount
func (d BillDraft) withLines(lines []LineItem) BillDraft {
	d.Lines = lines
	d.Discount = d.Discount.OnBaseChanged(d.DiscountBase())
	return d
}
