package billing

import (
	"testing"

	"github.com/miracle7662/Miracle-Account-sub000/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLineEditsRebaseDiscount(t *testing.T) {
	draft := Apply(NewDraft(enum.BillTypeCustomer),
		AddLine{Line: LineItem{Quantity: 10, UnitCustomerAmount: d("100")}},
		SetDiscountPercent{Percent: d("2")},
	)
	assertDecimal(t, "20", draft.Discount.Amount)

	draft = Apply(draft, AddLine{Line: LineItem{Quantity: 5, UnitCustomerAmount: d("200")}})
	assertDecimal(t, "2", draft.Discount.Percent)
	assertDecimal(t, "40", draft.Discount.Amount)

	draft = Apply(draft, ReplaceLine{Index: 1, Line: LineItem{Quantity: 5, UnitCustomerAmount: d("100")}})
	assertDecimal(t, "30", draft.Discount.Amount)

	draft = Apply(draft, RemoveLine{Index: 0})
	require.Len(t, draft.Lines, 1)
	assertDecimal(t, "10", draft.Discount.Amount)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := Apply(NewDraft(enum.BillTypeCustomer),
		AddLine{Line: LineItem{ItemName: "a", Quantity: 1, UnitCustomerAmount: d("10")}},
		AddLine{Line: LineItem{ItemName: "b", Quantity: 1, UnitCustomerAmount: d("20")}},
	)

	_ = Apply(base, ReplaceLine{Index: 0, Line: LineItem{ItemName: "z"}})
	_ = Apply(base, RemoveLine{Index: 1})
	_ = Apply(base, SetTransport{Amount: d("99")})

	require.Len(t, base.Lines, 2)
	assert.Equal(t, "a", base.Lines[0].ItemName)
	assertDecimal(t, "0", base.TransportCharges)
}

func TestApplyIgnoresOutOfRangeIndex(t *testing.T) {
	draft := Apply(NewDraft(enum.BillTypeFarmer), AddLine{Line: LineItem{Quantity: 1}})

	assert.Len(t, Apply(draft, RemoveLine{Index: 3}).Lines, 1)
	assert.Len(t, Apply(draft, RemoveLine{Index: -1}).Lines, 1)
	assert.Equal(t, 1, Apply(draft, ReplaceLine{Index: 1, Line: LineItem{Quantity: 9}}).Lines[0].Quantity)
}

func TestApplyRemovingLastLineClearsDiscount(t *testing.T) {
	draft := Apply(NewDraft(enum.BillTypeCustomer),
		AddLine{Line: LineItem{Quantity: 2, UnitCustomerAmount: d("50")}},
		SetDiscountPercent{Percent: d("10")},
		RemoveLine{Index: 0},
	)

	assertDecimal(t, "0", draft.Discount.Percent)
	assertDecimal(t, "0", draft.Discount.Amount)
}
