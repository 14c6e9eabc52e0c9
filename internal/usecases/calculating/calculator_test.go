package calculating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-report-api/internal/domain"
)

func TestNormalizeBudget(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		currency string
		want     float64
	}{
		{name: "TWD não tem centavos", raw: 15000, currency: "TWD", want: 15000},
		{name: "USD em centavos", raw: 15000, currency: "USD", want: 150},
		{name: "moeda em minúsculas", raw: 500, currency: "jpy", want: 500},
		{name: "moeda vazia usa centavos", raw: 1000, currency: "", want: 10},
		{name: "orçamento zerado", raw: 0, currency: "USD", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBudget(tt.raw, tt.currency))
		})
	}
}

func TestDerive(t *testing.T) {
	row := &domain.CanonicalRow{
		Impressions:       1000,
		Clicks:            50,
		LinkClicks:        40,
		Spend:             500,
		WebsitePurchases:  5,
		ConversionValue:   2000,
		Conversions:       5,
		CostPerResult:     100,
		PrimaryActionType: "offsite_conversion.fb_pixel_purchase",
	}

	Derive(row, Reported{})

	assert.InDelta(t, 5.0, row.CTR, 1e-9)
	assert.InDelta(t, 10.0, row.CPC, 1e-9)
	assert.InDelta(t, 4.0, row.LinkCTR, 1e-9)
	assert.InDelta(t, 12.5, row.LinkCPC, 1e-9)
	assert.InDelta(t, 500.0, row.CPM, 1e-9)
	assert.Equal(t, 1.0, row.Frequency)
	assert.InDelta(t, 4.0, row.ROAS, 1e-9)
	assert.InDelta(t, 100.0, row.CPA, 1e-9)
	assert.InDelta(t, 12.5, row.ConversionRate, 1e-9)
}

func TestDerive_PrefersReportedValues(t *testing.T) {
	row := &domain.CanonicalRow{Impressions: 1000, Spend: 10}

	Derive(row, Reported{CPM: 12.34, Frequency: 1.8})

	assert.Equal(t, 12.34, row.CPM)
	assert.Equal(t, 1.8, row.Frequency)
}

func TestDerive_ZeroDenominators(t *testing.T) {
	row := &domain.CanonicalRow{Spend: 100, Conversions: 0, CostPerResult: 7, WebsitePurchases: 3}

	Derive(row, Reported{})

	for name, value := range map[string]float64{
		"ctr":             row.CTR,
		"cpc":             row.CPC,
		"link_ctr":        row.LinkCTR,
		"link_cpc":        row.LinkCPC,
		"cpm":             row.CPM,
		"roas":            row.ROAS,
		"conversion_rate": row.ConversionRate,
		"cost_per_result": row.CostPerResult,
	} {
		assert.False(t, math.IsNaN(value) || math.IsInf(value, 0), name)
		assert.Zero(t, value, name)
	}
}

func TestDeriveResultRates_SoftResultUsesPurchases(t *testing.T) {
	row := &domain.CanonicalRow{
		Spend:             100,
		Clicks:            20,
		WebsitePurchases:  2,
		Conversions:       20,
		CostPerResult:     5,
		PrimaryActionType: "link_click",
	}

	DeriveResultRates(row)

	// sem cliques no link o denominador é o total de cliques
	assert.InDelta(t, 10.0, row.ConversionRate, 1e-9)
	assert.InDelta(t, 50.0, row.CPA, 1e-9)
}

func TestDeriveMessaging(t *testing.T) {
	row := &domain.CanonicalRow{Spend: 90, NewMessagingConnections: 3}

	DeriveMessaging(row, 0)

	assert.InDelta(t, 30.0, row.CostPerNewMessagingConnection, 1e-9)
	assert.Zero(t, row.CostPerPageEngagement)
}

func TestIsHardConversion(t *testing.T) {
	assert.True(t, IsHardConversion("purchase"))
	assert.True(t, IsHardConversion(" Lead "))
	assert.False(t, IsHardConversion("link_click"))
	assert.False(t, IsHardConversion(""))
}
