package normalizing

import "strings"

// Nomes de coluna aceitos para cada campo, nas duas línguas das exportações.
// A ordem define a prioridade.
var (
	ageAliases      = []string{"Age", "年齡"}
	genderAliases   = []string{"Gender", "性別"}
	creativeAliases = []string{"Creative Name", "素材名稱", "Headline", "標題"}
	adAliases       = []string{"Ad Name", "廣告名稱", "Ad", "廣告標題"}
	adSetAliases    = []string{"Ad Set Name", "廣告組合名稱", "Ad group", "廣告群組"}
	campaignAliases = []string{"Campaign Name", "行銷活動名稱", "Campaign", "廣告活動"}

	imageAliases = []string{
		"Image URL", "Ad Image URL", "Preview Link", "Thumbnail", "Image",
		"圖片連結", "影像連結", "預覽連結", "素材連結",
	}
	imageKeywords = []string{"image", "url", "link", "圖片"}

	bodyAliases = []string{"Body", "Primary Text", "內文", "主要文字"}

	indicatorAliases  = []string{"Result indicator", "Result Indicator", "Results indicator", "成果指標"}
	indicatorKeywords = []string{"result indicator", "成果指標"}
	objectiveAliases  = []string{"Objective", "目標", "行銷活動目標"}
	goalAliases       = []string{"Optimization goal", "Optimization Goal", "最佳化目標"}
)

// Colunas de exportações da Meta
var (
	metaStatusAliases       = []string{"Delivery Status", "Delivery", "行銷活動投遞", "廣告組合投遞", "投遞狀態", "投遞狀況"}
	metaCampaignNameAliases = []string{"Campaign Name", "行銷活動名稱"}
	metaAdSetNameAliases    = []string{"Ad Set Name", "廣告組合名稱"}

	metaImpressionsAliases = []string{"Impressions", "曝光次數"}
	metaClicksAliases      = []string{"Clicks (All)", "點擊次數（全部）", "Clicks", "點擊次數"}
	metaSpendAliases       = []string{"Amount Spent (TWD)", "Amount Spent", "Cost", "花費金額 (TWD)", "花費金額"}
	metaSpendKeywords      = []string{"amount spent", "花費金額"}
	metaResultsAliases     = []string{"Results", "成果"}
	metaValueAliases       = []string{"Purchase Conversion Value", "Website Purchase Conversion Value", "總轉換價值"}
	metaReachAliases       = []string{"Reach", "觸及人數"}
	metaLinkClicksAliases  = []string{"Link Clicks", "連結點擊次數"}
	metaPurchasesAliases   = []string{"Website Purchases", "網站購買", "Purchases"}
	metaCPMAliases         = []string{
		"CPM (Cost per 1,000 Impressions) (TWD)", "CPM（每千次廣告曝光成本） (TWD)",
		"CPM", "CPM (Cost per 1,000 Impressions)",
	}
	metaCPMKeywords           = []string{"cpm"}
	metaFrequencyAliases      = []string{"Frequency", "頻率"}
	metaCostPerResultAliases  = []string{"Cost per Result", "Cost per result", "每次成果成本", "CPR"}
	metaCostPerResultKeywords = []string{"cost per result", "每次成果成本"}
	metaBudgetAliases         = []string{"廣告組合預算", "Ad Set Budget", "Budget"}
	metaBudgetTypeAliases     = []string{"Ad Set Budget Type", "廣告組合預算類型", "Budget Type"}

	metaPageEngagementCostAliases = []string{"每次粉絲專頁互動成本 (TWD)", "Cost per Page Engagement"}
	metaNewConnectionsAliases     = []string{"新的訊息聯繫對象", "New Messaging Connections"}
	// " (TWD)" aparece em algumas exportações quando o cabeçalho original se perde
	metaNewConnectionCostAliases  = []string{"每位新訊息聯繫對象成本", "Cost per New Messaging Connection", " (TWD)"}
	metaNewConnectionCostKeywords = []string{"每位新訊息聯繫對象成本", "cost per new messaging connection"}
	metaConversationsAliases      = []string{"訊息對話開始次數", "Messaging Conversations Started"}
	metaLandingPageViewsAliases   = []string{"Landing Page Views", "連結頁面瀏覽次數"}
	metaThruPlaysAliases          = []string{"ThruPlays", "ThruPlay 次數"}
	metaLeadsAliases              = []string{"Leads", "潛在客戶"}
	metaPostEngagementAliases     = []string{"Post Engagements", "Post Engagement", "貼文互動"}
)

// Colunas de exportações do Google Ads
var (
	googleStatusAliases       = []string{"Campaign state", "Ad group state", "Status", "廣告活動狀態", "廣告群組狀態"}
	googleCampaignNameAliases = []string{"Campaign", "廣告活動"}
	googleAdGroupNameAliases  = []string{"Ad group", "廣告群組"}
	googleImpressionsAliases  = []string{"Impressions", "Impr.", "曝光"}
	googleClicksAliases       = []string{"Clicks", "點擊"}
	googleSpendAliases        = []string{"Cost", "費用"}
	googleConversionsAliases  = []string{"Conversions", "轉換"}
	googleValueAliases        = []string{"Total conv. value", "Conv. value", "總轉換價值"}
	googleBudgetAliases       = []string{"Budget", "預算"}
)

// knownHeaders reúne todos os nomes consumidos pela normalização. O restante
// vai para CanonicalRow.Extra.
var knownHeaders = func() map[string]struct{} {
	lists := [][]string{
		ageAliases, genderAliases, creativeAliases, adAliases, adSetAliases, campaignAliases,
		imageAliases, bodyAliases, indicatorAliases, objectiveAliases, goalAliases,
		metaStatusAliases, metaImpressionsAliases, metaClicksAliases, metaSpendAliases,
		metaResultsAliases, metaValueAliases, metaReachAliases, metaLinkClicksAliases,
		metaPurchasesAliases, metaCPMAliases, metaFrequencyAliases, metaCostPerResultAliases,
		metaBudgetAliases, metaBudgetTypeAliases, metaPageEngagementCostAliases,
		metaNewConnectionsAliases, metaNewConnectionCostAliases, metaConversationsAliases,
		metaLandingPageViewsAliases, metaThruPlaysAliases, metaLeadsAliases, metaPostEngagementAliases,
		googleStatusAliases, googleImpressionsAliases, googleClicksAliases, googleSpendAliases,
		googleConversionsAliases, googleValueAliases, googleBudgetAliases,
	}

	known := make(map[string]struct{})
	for _, list := range lists {
		for _, alias := range list {
			known[normalizeHeader(alias)] = struct{}{}
		}
	}
	return known
}()

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
