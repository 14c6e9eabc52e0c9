package normalizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-report-api/internal/domain"
)

func filterFixture() []*domain.CanonicalRow {
	return []*domain.CanonicalRow{
		{ID: "1", Level: domain.LevelCampaign, Name: "Verão", CampaignName: "Verão", Status: "進行中", Impressions: 100, Spend: 30, Reach: 50, Clicks: 10},
		{ID: "2", Level: domain.LevelCampaign, Name: "Inverno", CampaignName: "Inverno", Status: "已關閉", Impressions: 0, Spend: 0},
		{ID: "3", Level: domain.LevelAd, Name: "Anúncio A", CampaignName: "Verão", Status: "ACTIVE", Impressions: 300, Spend: 10, Reach: 150, Clicks: 5},
		{ID: "4", Level: domain.LevelCreative, Name: "Criativo", CampaignName: "Outono", AdGroupName: "Grupo X", Status: "paused", Impressions: 20, Spend: 20},
		{ID: "5", Level: domain.LevelAdSet, Name: "Conjunto", CampaignName: "Verão", Status: "active", Impressions: 5, Spend: 5},
	}
}

func ids(rows []*domain.CanonicalRow) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ID)
	}
	return out
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.RowFilters
		want    []string
	}{
		{
			name:    "aba criativo junta anúncio e criativo",
			filters: domain.RowFilters{Tab: TabCreative, SortKey: "spend"},
			want:    []string{"4", "3"},
		},
		{
			name:    "aba yangyu mostra campanhas",
			filters: domain.RowFilters{Tab: TabYangyu, SortKey: "name", SortAscending: true},
			want:    []string{"2", "1"},
		},
		{
			name:    "status ativo",
			filters: domain.RowFilters{Status: domain.StatusFilterActive, SortKey: "impressions", SortAscending: true},
			want:    []string{"5", "1", "3"},
		},
		{
			name:    "status veiculado",
			filters: domain.RowFilters{Tab: TabAll, Status: domain.StatusFilterDelivered, SortKey: "impressions"},
			want:    []string{"3", "1", "4", "5"},
		},
		{
			name:    "busca pelo nome do conjunto",
			filters: domain.RowFilters{Query: " grupo x "},
			want:    []string{"4"},
		},
		{
			name:    "ordenação padrão pela campanha",
			filters: domain.RowFilters{Tab: string(domain.LevelCampaign)},
			want:    []string{"2", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := filterFixture()
			got := FilterRows(rows, tt.filters)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(rows))
		})
	}
}

func TestIsSortKey(t *testing.T) {
	assert.True(t, IsSortKey("cost_per_result"))
	assert.True(t, IsSortKey("campaign_name"))
	assert.False(t, IsSortKey("drop table"))
}

func TestComputeTotals(t *testing.T) {
	assert.Nil(t, ComputeTotals(nil))

	totals := ComputeTotals(filterFixture()[:3])
	require.NotNil(t, totals)

	assert.Equal(t, 400.0, totals.Impressions)
	assert.Equal(t, 40.0, totals.Spend)
	assert.Equal(t, 200.0, totals.Reach)
	assert.InDelta(t, 2.0, totals.Frequency, 1e-9)
	assert.InDelta(t, 100.0, totals.CPM, 1e-9)
	assert.InDelta(t, 15.0/400*100, totals.CTR, 1e-9)
	assert.Nil(t, totals.Conversions)
	assert.Nil(t, totals.CostPerResult)
	assert.Nil(t, totals.CPA)
	assert.Nil(t, totals.ConversionRate)
}
