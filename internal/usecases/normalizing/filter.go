package normalizing

import (
	"sort"
	"strings"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

const (
	TabAll      = "all"
	TabCreative = "creative"
	TabYangyu   = "yangyu"
)

var numericSortKeys = map[string]func(*domain.CanonicalRow) float64{
	"impressions":                       func(r *domain.CanonicalRow) float64 { return r.Impressions },
	"clicks":                            func(r *domain.CanonicalRow) float64 { return r.Clicks },
	"link_clicks":                       func(r *domain.CanonicalRow) float64 { return r.LinkClicks },
	"reach":                             func(r *domain.CanonicalRow) float64 { return r.Reach },
	"spend":                             func(r *domain.CanonicalRow) float64 { return r.Spend },
	"video_views":                       func(r *domain.CanonicalRow) float64 { return r.VideoViews },
	"landing_page_views":                func(r *domain.CanonicalRow) float64 { return r.LandingPageViews },
	"website_purchases":                 func(r *domain.CanonicalRow) float64 { return r.WebsitePurchases },
	"conversion_value":                  func(r *domain.CanonicalRow) float64 { return r.ConversionValue },
	"conversions":                       func(r *domain.CanonicalRow) float64 { return r.Conversions },
	"cost_per_result":                   func(r *domain.CanonicalRow) float64 { return r.CostPerResult },
	"ctr":                               func(r *domain.CanonicalRow) float64 { return r.CTR },
	"cpc":                               func(r *domain.CanonicalRow) float64 { return r.CPC },
	"link_ctr":                          func(r *domain.CanonicalRow) float64 { return r.LinkCTR },
	"link_cpc":                          func(r *domain.CanonicalRow) float64 { return r.LinkCPC },
	"cpa":                               func(r *domain.CanonicalRow) float64 { return r.CPA },
	"conversion_rate":                   func(r *domain.CanonicalRow) float64 { return r.ConversionRate },
	"cpm":                               func(r *domain.CanonicalRow) float64 { return r.CPM },
	"frequency":                         func(r *domain.CanonicalRow) float64 { return r.Frequency },
	"roas":                              func(r *domain.CanonicalRow) float64 { return r.ROAS },
	"budget":                            func(r *domain.CanonicalRow) float64 { return r.Budget },
	"new_messaging_connections":         func(r *domain.CanonicalRow) float64 { return r.NewMessagingConnections },
	"cost_per_new_messaging_connection": func(r *domain.CanonicalRow) float64 { return r.CostPerNewMessagingConnection },
	"messaging_conversations_started":   func(r *domain.CanonicalRow) float64 { return r.MessagingConversationsStarted },
	"cost_per_page_engagement":          func(r *domain.CanonicalRow) float64 { return r.CostPerPageEngagement },
}

var textSortKeys = map[string]func(*domain.CanonicalRow) string{
	"name":          func(r *domain.CanonicalRow) string { return r.Name },
	"campaign_name": func(r *domain.CanonicalRow) string { return r.CampaignName },
	"ad_group_name": func(r *domain.CanonicalRow) string { return r.AdGroupName },
	"status":        func(r *domain.CanonicalRow) string { return r.Status },
	"result_type":   func(r *domain.CanonicalRow) string { return r.ResultType },
	"budget_type":   func(r *domain.CanonicalRow) string { return string(r.BudgetType) },
	"level":         func(r *domain.CanonicalRow) string { return string(r.Level) },
}

// IsSortKey indica se a chave pode ser usada em RowFilters.SortKey
func IsSortKey(key string) bool {
	_, numeric := numericSortKeys[key]
	_, textual := textSortKeys[key]
	return numeric || textual
}

// FilterRows aplica aba, status, busca e ordenação sem alterar a fatia de
// entrada. Abas demográficas não passam por aqui (ver AggregateDemographics).
func FilterRows(rows []*domain.CanonicalRow, filters domain.RowFilters) []*domain.CanonicalRow {
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	result := make([]*domain.CanonicalRow, 0, len(rows))

	for _, row := range rows {
		if row == nil || !matchesTab(row, filters.Tab) || !matchesStatus(row, filters.Status) {
			continue
		}
		if query != "" && !matchesQuery(row, query) {
			continue
		}
		result = append(result, row)
	}

	sortRows(result, filters.SortKey, filters.SortAscending)

	return result
}

func matchesTab(row *domain.CanonicalRow, tab string) bool {
	switch tab {
	case "", TabAll:
		return true
	case TabCreative:
		return row.Level == domain.LevelAd || row.Level == domain.LevelCreative
	case TabYangyu:
		return row.Level == domain.LevelCampaign
	default:
		return string(row.Level) == tab
	}
}

func matchesStatus(row *domain.CanonicalRow, status domain.StatusFilter) bool {
	switch status {
	case domain.StatusFilterActive:
		return IsActiveStatus(row.Status)
	case domain.StatusFilterDelivered:
		return row.Impressions > 0
	default:
		return true
	}
}

func matchesQuery(row *domain.CanonicalRow, query string) bool {
	for _, field := range []string{row.Name, row.Status, row.CampaignName, row.AdGroupName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortRows(rows []*domain.CanonicalRow, key string, ascending bool) {
	if numeric, ok := numericSortKeys[key]; ok {
		sort.SliceStable(rows, func(i, j int) bool {
			if ascending {
				return numeric(rows[i]) < numeric(rows[j])
			}
			return numeric(rows[i]) > numeric(rows[j])
		})
		return
	}

	if textual, ok := textSortKeys[key]; ok {
		sort.SliceStable(rows, func(i, j int) bool {
			if ascending {
				return textual(rows[i]) < textual(rows[j])
			}
			return textual(rows[i]) > textual(rows[j])
		})
		return
	}

	// padrão: agrupa pelo nome da campanha
	sort.SliceStable(rows, func(i, j int) bool {
		return groupingName(rows[i]) < groupingName(rows[j])
	})
}

func groupingName(row *domain.CanonicalRow) string {
	if row.CampaignName != "" {
		return row.CampaignName
	}
	return row.Name
}

// ComputeTotals soma as contagens das linhas filtradas e recalcula as taxas.
// Retorna nil para uma lista vazia.
func ComputeTotals(rows []*domain.CanonicalRow) *domain.RowTotals {
	if len(rows) == 0 {
		return nil
	}

	totals := &domain.RowTotals{}
	for _, row := range rows {
		totals.Impressions += row.Impressions
		totals.Clicks += row.Clicks
		totals.Spend += row.Spend
		totals.Reach += row.Reach
		totals.LinkClicks += row.LinkClicks
		totals.WebsitePurchases += row.WebsitePurchases
		totals.VideoViews += row.VideoViews
		totals.LandingPageViews += row.LandingPageViews
		totals.ConversionValue += row.ConversionValue
		totals.NewMessagingConnections += row.NewMessagingConnections
		totals.MessagingConversationsStarted += row.MessagingConversationsStarted
	}

	totals.CTR = utils.SafeDivide(totals.Clicks, totals.Impressions) * 100
	totals.CPC = utils.SafeDivide(totals.Spend, totals.Clicks)
	totals.LinkCTR = utils.SafeDivide(totals.LinkClicks, totals.Impressions) * 100
	totals.LinkCPC = utils.SafeDivide(totals.Spend, totals.LinkClicks)
	totals.CPM = utils.SafeDivide(totals.Spend, totals.Impressions) * 1000
	totals.Frequency = utils.SafeDivide(totals.Impressions, totals.Reach)
	totals.ROAS = utils.SafeDivide(totals.ConversionValue, totals.Spend)
	totals.CostPerNewMessagingConnection = utils.SafeDivide(totals.Spend, totals.NewMessagingConnections)

	return totals
}
