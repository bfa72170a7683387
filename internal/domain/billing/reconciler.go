package billing

import "github.com/shopspring/decimal"

// Reconciler keeps a percentage and its absolute amount consistent against
// a base total. It is a value type: every transition returns a new
// Reconciler and leaves the receiver untouched.
//
// The field the operator edited last is authoritative for one pass. The
// other field is only rewritten when it would move by at least Tolerance,
// so driving both controls from one change event cannot loop.
type Reconciler struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
	Base    decimal.Decimal `json:"base"`
}

// NewReconciler returns a zero discount against base
func NewReconciler(base decimal.Decimal) Reconciler {
	return Reconciler{Percent: decimal.Zero, Amount: decimal.Zero, Base: base}
}

// SetPercent makes p authoritative and derives the amount from it
func (r Reconciler) SetPercent(p decimal.Decimal) Reconciler {
	if !r.Base.IsPositive() {
		return NewReconciler(r.Base)
	}
	r.Percent = p
	r.Amount = settle(r.Amount, r.amountFor(p))
	return r
}

// SetAmount makes a authoritative and derives the percentage from it.
// A percentage that already yields a is kept as is.
func (r Reconciler) SetAmount(a decimal.Decimal) Reconciler {
	if !r.Base.IsPositive() {
		return NewReconciler(r.Base)
	}
	r.Amount = a
	if withinTolerance(r.amountFor(r.Percent), a) {
		return r
	}
	r.Percent = settle(r.Percent, Round2(a.Mul(hundred).Div(r.Base)))
	return r
}

// OnBaseChanged re-derives the amount from the existing percentage, which
// stays authoritative while lines are being assembled.
func (r Reconciler) OnBaseChanged(base decimal.Decimal) Reconciler {
	if !base.IsPositive() {
		return NewReconciler(base)
	}
	r.Base = base
	r.Amount = settle(r.Amount, r.amountFor(r.Percent))
	return r
}

// Consistent reports whether the pair agrees within Tolerance
func (r Reconciler) Consistent() bool {
	if !r.Base.IsPositive() {
		return r.Percent.IsZero() && r.Amount.IsZero()
	}
	return withinTolerance(r.amountFor(r.Percent), r.Amount)
}

func (r Reconciler) amountFor(p decimal.Decimal) decimal.Decimal {
	return Round2(p.Mul(r.Base).Div(hundred))
}

func settle(current, next decimal.Decimal) decimal.Decimal {
	if withinTolerance(current, next) {
		return current
	}
	return next
}
