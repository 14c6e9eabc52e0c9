package normalizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-report-api/internal/domain"
)

func TestAggregateDemographics(t *testing.T) {
	rows := []*domain.CanonicalRow{
		{Level: domain.LevelAge, Name: "25-34", Impressions: 100, Clicks: 10, Spend: 100, LinkClicks: 5, Conversions: 1},
		{Level: domain.LevelAge, Name: "25-34", Impressions: 200, Clicks: 2, Spend: 50, LinkClicks: 5, WebsitePurchases: 3},
		{Level: domain.LevelAge, Name: "65+", Impressions: 50, Clicks: 1, Spend: 10},
		{Level: domain.LevelAge, Name: "18-24", Impressions: 10},
		{Level: domain.LevelGender, Name: "女性", Impressions: 999},
		nil,
	}

	report := AggregateDemographics(rows, domain.LevelAge)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, []string{"18-24", "25-34", "65+"}, []string{report.Rows[0].Name, report.Rows[1].Name, report.Rows[2].Name})

	group := report.Rows[1]
	assert.Equal(t, 300.0, group.Impressions)
	assert.Equal(t, 12.0, group.Clicks)
	// recalculado a partir das somas, não média dos CTRs (10% e 1%)
	assert.InDelta(t, 4.0, group.CTR, 1e-9)
	assert.InDelta(t, 150.0, group.CPA, 1e-9)
	assert.InDelta(t, 10.0, group.ConversionRate, 1e-9)

	require.NotNil(t, report.Total)
	assert.Equal(t, TotalRowName, report.Total.Name)
	assert.Equal(t, 360.0, report.Total.Impressions)
	assert.Equal(t, 160.0, report.Total.Spend)
	assert.InDelta(t, 13.0/360*100, report.Total.CTR, 1e-9)
}

func TestAggregateDemographics_SemLinhas(t *testing.T) {
	report := AggregateDemographics(nil, domain.LevelGender)

	assert.Empty(t, report.Rows)
	assert.Equal(t, TotalRowName, report.Total.Name)
	assert.Zero(t, report.Total.CTR)
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "18-24", b: "100+", want: true},
		{a: "55-64", b: "65+", want: true},
		{a: "65+", b: "55-64", want: false},
		{a: "Row 2", b: "Row 10", want: true},
		{a: "abc", b: "abd", want: true},
		{a: "ab", b: "abc", want: true},
		{a: "abc", b: "abc", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.a+" < "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, naturalLess(tt.a, tt.b))
		})
	}
}
