package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightPair(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("Gewicht/Container 6,0/5,5"))
	assert.Equal(t, "6,0", f.GrossWeight)
	assert.Equal(t, "5,5", f.ChargeableWeight)
}

func TestWeightPairTrailingUnitLetter(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("Gewicht/Container: 12,5/12,0 D"))
	assert.Equal(t, "12,5", f.GrossWeight)
	assert.Equal(t, "12,0", f.ChargeableWeight)
}

func TestWeightPairSingleScalar(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("Gewicht/Container 7,5"))
	assert.Equal(t, "7,5", f.GrossWeight)
	assert.Empty(t, f.ChargeableWeight)
}

func TestWeightLabelledLines(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("Bruttogewicht: 9,5\nRechnungsgewicht: 12,5"))
	assert.Equal(t, "9,5", f.GrossWeight)
	assert.Equal(t, "12,5", f.ChargeableWeight)
}

func TestWeightIgnoresCostRows(t *testing.T) {
	// tariff values must never read as weights
	f := WeightExtractor{}.Extract(blockOf(
		"Transport 748,40 374,25 374,15\nRechnungsgewicht: 9,5"))
	assert.Empty(t, f.GrossWeight)
	assert.Equal(t, "9,5", f.ChargeableWeight)
}

func TestWeightQuickParseOnTrackingLine(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("1Z999AA10123456784 1 9,5 N"))
	assert.Equal(t, "1", f.PackageCount)
	assert.Equal(t, "9,5", f.GrossWeight)
}

func TestPackageCountFromPKGSuffix(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("1Z999AA10123456784 2 PKG WW Express"))
	assert.Equal(t, "2", f.PackageCount)
}

func TestPackageCountKeywordWins(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("1Z999AA10123456784 1 9,5\nAnzahl Pakete: 3"))
	assert.Equal(t, "3", f.PackageCount)
}

func TestWeightAbsent(t *testing.T) {
	f := WeightExtractor{}.Extract(blockOf("Versender: HAMBURG"))
	assert.Empty(t, f.GrossWeight)
	assert.Empty(t, f.ChargeableWeight)
	assert.Empty(t, f.PackageCount)
}
