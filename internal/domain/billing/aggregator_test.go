package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleLines() []LineItem {
	return []LineItem{
		{ItemName: "Onion", Quantity: 10, UnitCustomerAmount: d("100"), UnitFarmerAmount: d("90"), CommissionPerUnit: d("30"), Katala: d("5")},
		{ItemName: "Potato", Quantity: 4, UnitCustomerAmount: d("62.5"), UnitFarmerAmount: d("55"), CommissionPerUnit: d("12"), Katala: d("2.5")},
		{ItemName: "Garlic", Quantity: 0, UnitCustomerAmount: d("300"), UnitFarmerAmount: d("250"), CommissionPerUnit: d("1"), Katala: d("0")},
	}
}

func TestAggregateLinesEmpty(t *testing.T) {
	agg := AggregateLines(nil)

	assert.Equal(t, 0, agg.TotalItems)
	assertDecimal(t, "0", agg.TotalLineAmount)
	assertDecimal(t, "0", agg.TotalFarmerAmount)
	assertDecimal(t, "0", agg.TotalCommission)
	assertDecimal(t, "0", agg.TotalKatala)
}

func TestAggregateLinesSums(t *testing.T) {
	agg := AggregateLines(sampleLines())

	assert.Equal(t, 14, agg.TotalItems)
	assertDecimal(t, "1250", agg.TotalLineAmount)
	assertDecimal(t, "1120", agg.TotalFarmerAmount)
	// commission and katala are flat per line
	assertDecimal(t, "43", agg.TotalCommission)
	assertDecimal(t, "7.5", agg.TotalKatala)
}

func TestAggregateLinesAdditivity(t *testing.T) {
	lines := sampleLines()
	full := AggregateLines(lines)

	var sum = AggregateLines(nil).TotalLineAmount
	for _, l := range lines {
		sum = sum.Add(l.CustomerAmount())
	}
	assertDecimal(t, sum.String(), full.TotalLineAmount)

	for i, l := range lines {
		rest := append(append([]LineItem(nil), lines[:i]...), lines[i+1:]...)
		without := AggregateLines(rest)
		assertDecimal(t, l.CustomerAmount().String(), full.TotalLineAmount.Sub(without.TotalLineAmount))
	}
}
