package reporting

import (
	"fmt"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/normalizing"
)

// Column é uma coluna exportável da tabela principal
type Column struct {
	ID    string
	Label string
	value func(*domain.CanonicalRow) any
}

var columns = []Column{
	{ID: "campaign_name", Label: "行銷活動名稱", value: func(r *domain.CanonicalRow) any { return r.CampaignName }},
	{ID: "image_url", Label: "素材預覽", value: func(r *domain.CanonicalRow) any { return r.ImageURL }},
	{ID: "name", Label: "名稱", value: func(r *domain.CanonicalRow) any { return r.Name }},
	{ID: "status", Label: "投遞狀態", value: func(r *domain.CanonicalRow) any { return r.Status }},
	{ID: "budget", Label: "預算", value: budgetValue},
	{ID: "impressions", Label: "曝光次數", value: func(r *domain.CanonicalRow) any { return r.Impressions }},
	{ID: "reach", Label: "觸及人數", value: func(r *domain.CanonicalRow) any { return r.Reach }},
	{ID: "clicks", Label: "點擊次數 (全部)", value: func(r *domain.CanonicalRow) any { return r.Clicks }},
	{ID: "ctr", Label: "CTR (全部)", value: func(r *domain.CanonicalRow) any { return r.CTR }},
	{ID: "cpc", Label: "CPC (全部)", value: func(r *domain.CanonicalRow) any { return r.CPC }},
	{ID: "link_clicks", Label: "連結點擊", value: func(r *domain.CanonicalRow) any { return r.LinkClicks }},
	{ID: "link_ctr", Label: "連結 CTR", value: func(r *domain.CanonicalRow) any { return r.LinkCTR }},
	{ID: "link_cpc", Label: "連結 CPC", value: func(r *domain.CanonicalRow) any { return r.LinkCPC }},
	{ID: "landing_page_views", Label: "頁面瀏覽", value: func(r *domain.CanonicalRow) any { return r.LandingPageViews }},
	{ID: "video_views", Label: "影片觀看(3秒)", value: func(r *domain.CanonicalRow) any { return r.VideoViews }},
	{ID: "spend", Label: "花費金額", value: func(r *domain.CanonicalRow) any { return r.Spend }},
	{ID: "conversions", Label: "成果", value: func(r *domain.CanonicalRow) any { return r.Conversions }},
	{ID: "result_type", Label: "成果類型", value: func(r *domain.CanonicalRow) any { return r.ResultType }},
	{ID: "cost_per_result", Label: "每次成果成本", value: func(r *domain.CanonicalRow) any { return r.CostPerResult }},
	{ID: "cpm", Label: "CPM", value: func(r *domain.CanonicalRow) any { return r.CPM }},
	{ID: "frequency", Label: "頻率", value: func(r *domain.CanonicalRow) any { return r.Frequency }},
	{ID: "cost_per_page_engagement", Label: "每次粉絲專頁互動成本", value: func(r *domain.CanonicalRow) any { return r.CostPerPageEngagement }},
	{ID: "new_messaging_connections", Label: "新的訊息聯繫對象", value: func(r *domain.CanonicalRow) any { return r.NewMessagingConnections }},
	{ID: "cost_per_new_messaging_connection", Label: "每位新訊息聯繫對象成本", value: func(r *domain.CanonicalRow) any { return r.CostPerNewMessagingConnection }},
	{ID: "messaging_conversations_started", Label: "訊息對話開始次數", value: func(r *domain.CanonicalRow) any { return r.MessagingConversationsStarted }},
	{ID: "website_purchases", Label: "網站購買", value: func(r *domain.CanonicalRow) any { return r.WebsitePurchases }},
	{ID: "cpa", Label: "CPA", value: func(r *domain.CanonicalRow) any { return r.CPA }},
	{ID: "conversion_rate", Label: "轉換率", value: func(r *domain.CanonicalRow) any { return r.ConversionRate }},
	{ID: "roas", Label: "ROAS", value: func(r *domain.CanonicalRow) any { return r.ROAS }},
}

var columnsByID = func() map[string]Column {
	byID := make(map[string]Column, len(columns))
	for _, c := range columns {
		byID[c.ID] = c
	}
	return byID
}()

func budgetValue(r *domain.CanonicalRow) any {
	if r.BudgetType == domain.BudgetNone {
		return r.Budget
	}
	return fmt.Sprintf("%v (%s)", r.Budget, r.BudgetType)
}

// demographicColumn é uma coluna das abas de idade e gênero
type demographicColumn struct {
	Label string
	value func(*domain.DemographicRow) any
}

var demographicColumns = []demographicColumn{
	{Label: "點擊次數", value: func(r *domain.DemographicRow) any { return r.Clicks }},
	{Label: "曝光次數", value: func(r *domain.DemographicRow) any { return r.Impressions }},
	{Label: "CTR", value: func(r *domain.DemographicRow) any { return r.CTR }},
	{Label: "CPC", value: func(r *domain.DemographicRow) any { return r.CPC }},
	{Label: "連結點擊", value: func(r *domain.DemographicRow) any { return r.LinkClicks }},
	{Label: "連結CTR", value: func(r *domain.DemographicRow) any { return r.LinkCTR }},
	{Label: "連結CPC", value: func(r *domain.DemographicRow) any { return r.LinkCPC }},
	{Label: "網站購買", value: func(r *domain.DemographicRow) any { return r.WebsitePurchases }},
	{Label: "CPA", value: func(r *domain.DemographicRow) any { return r.CPA }},
	{Label: "轉換率", value: func(r *domain.DemographicRow) any { return r.ConversionRate }},
	{Label: "花費金額", value: func(r *domain.DemographicRow) any { return r.Spend }},
}

// ReportType é uma aba do arquivo exportado
type ReportType struct {
	ID      string
	Label   string
	Tab     string
	Level   domain.Level
	Columns []string
}

func (r ReportType) IsDemographic() bool {
	return r.Level.IsDemographic()
}

var ReportTypes = []ReportType{
	{
		ID: "campaign", Label: "廣告活動", Tab: string(domain.LevelCampaign),
		Columns: []string{
			"name", "status", "reach", "clicks", "impressions", "ctr", "cpc",
			"link_clicks", "link_ctr", "link_cpc",
			"conversions", "cost_per_result", "cpa", "conversion_rate", "spend",
		},
	},
	{
		ID: "adset", Label: "廣告受眾", Tab: string(domain.LevelAdSet),
		Columns: []string{
			"campaign_name", "name", "status", "clicks", "impressions", "ctr", "cpc",
			"link_clicks", "link_ctr", "link_cpc",
			"website_purchases", "cpa", "conversion_rate", "spend",
		},
	},
	{
		ID: "creative", Label: "素材表現", Tab: normalizing.TabCreative,
		Columns: []string{
			"campaign_name", "image_url", "name", "clicks", "impressions", "ctr", "cpc",
			"link_clicks", "link_ctr", "link_cpc",
			"website_purchases", "cpa", "conversion_rate", "spend",
		},
	},
	{ID: "age", Label: "年齡", Level: domain.LevelAge},
	{ID: "gender", Label: "性別", Level: domain.LevelGender},
	{
		ID: "yangyu", Label: "秧語預設", Tab: normalizing.TabYangyu,
		Columns: []string{
			"name", "status", "budget", "impressions", "reach", "clicks", "ctr", "cpc",
			"link_clicks", "link_ctr", "link_cpc", "spend", "conversions", "cost_per_result",
			"cost_per_page_engagement", "cpm", "frequency",
			"new_messaging_connections", "cost_per_new_messaging_connection", "messaging_conversations_started",
		},
	},
}

// FindReportType aceita o id da aba
func FindReportType(id string) (ReportType, bool) {
	for _, r := range ReportTypes {
		if r.ID == id {
			return r, true
		}
	}
	return ReportType{}, false
}
