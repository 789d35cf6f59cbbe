package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const costBlock = "Gesamtkosten CHF 399,15\n" +
	"Transport 748,40 374,25 374,15\n" +
	"Treibstoffzuschlag 50,00 25,00\n" +
	"Rabatt 0,00 0,00\n" +
	"Anzahl Packages 2"

func TestCostRows(t *testing.T) {
	f := CostExtractor{}.Extract(blockOf(costBlock))
	require.Len(t, f.Costs, 3)

	assert.Equal(t, "Freight", f.Costs[0].Category)
	assert.Equal(t, "374,15", f.Costs[0].Amount) // right-most column is the net amount
	assert.Equal(t, "CHF", f.Costs[0].Currency)

	// wording outside the category table keeps its raw description
	assert.Equal(t, "Treibstoffzuschlag", f.Costs[1].Category)
	assert.Equal(t, "25,00", f.Costs[1].Amount)

	assert.Equal(t, "Discount", f.Costs[2].Category)
	assert.Equal(t, "0,00", f.Costs[2].Amount) // zero rows are data, not noise
}

func TestCostRowsSkipTotalsAndSummaries(t *testing.T) {
	f := CostExtractor{}.Extract(blockOf(costBlock))
	for _, c := range f.Costs {
		assert.NotContains(t, c.Mention, "Gesamtkosten")
		assert.NotContains(t, c.Mention, "Anzahl")
	}
}

func TestCostRowsDeduped(t *testing.T) {
	f := CostExtractor{}.Extract(blockOf(
		"Transport 748,40 374,25 374,15\nTransport 748,40 374,25 374,15"))
	require.Len(t, f.Costs, 1)
}

func TestCostInlineCurrencyOverride(t *testing.T) {
	f := CostExtractor{}.Extract(blockOf(
		"Gesamtkosten CHF 399,15\nVersicherung EUR 10,00 10,00"))
	require.Len(t, f.Costs, 1)
	assert.Equal(t, "Insurance", f.Costs[0].Category)
	assert.Equal(t, "EUR", f.Costs[0].Currency)
}

func TestCostRowWithoutCurrency(t *testing.T) {
	f := CostExtractor{}.Extract(blockOf("Maut 5,00 5,00"))
	require.Len(t, f.Costs, 1)
	assert.Equal(t, "Toll", f.Costs[0].Category)
	assert.Empty(t, f.Costs[0].Currency)
}

func TestCostRowsRequireTwoColumns(t *testing.T) {
	// a lone money column is not a charge row
	f := CostExtractor{}.Extract(blockOf("Transport 374,15\nBemerkung ohne Betrag"))
	assert.Empty(t, f.Costs)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Freight", normalizeCategory("Transport"))
	assert.Equal(t, "Freight", normalizeCategory("Dritte Partei Transport"))
	assert.Equal(t, "Fuel", normalizeCategory("Benzinzuschlag"))
	assert.Equal(t, "Customs", normalizeCategory("Verzollung"))
	assert.Equal(t, "Sperrgut", normalizeCategory("Sperrgut"))
}
