package attributing

import "strings"

// Tipos de ação da Meta usados na atribuição
const (
	ActionPurchase             = "purchase"
	ActionOmniPurchase         = "omni_purchase"
	ActionPixelPurchase        = "offsite_conversion.fb_pixel_purchase"
	ActionLead                 = "lead"
	ActionOnFacebookLead       = "on_facebook_lead"
	ActionLeadGrouped          = "onsite_conversion.lead_grouped"
	ActionPixelLead            = "offsite_conversion.fb_pixel_lead"
	ActionCompleteRegistration = "complete_registration"
	ActionPixelRegistration    = "offsite_conversion.fb_pixel_complete_registration"
	ActionAddToCart            = "add_to_cart"
	ActionMessagingStarted     = "onsite_conversion.messaging_conversation_started_7d"
	ActionMessagingFirstReply  = "onsite_conversion.messaging_first_reply"
	ActionMessagingConnection  = "onsite_conversion.messaging_connection"
	ActionThruPlay             = "video_thruplay_watched_actions"
	ActionVideoView            = "video_view"
	ActionLandingPageView      = "landing_page_view"
	ActionOmniLandingPageView  = "omni_landing_page_view"
	ActionLinkClick            = "link_click"
	ActionPostEngagement       = "post_engagement"
	ActionPageEngagement       = "page_engagement"
	ActionPostReaction         = "post_reaction"
	ActionLike                 = "like"
	ActionComment              = "comment"
	ActionAppInstall           = "mobile_app_install"
	ActionReach                = "reach"
	ActionImpressions          = "impressions"
)

// GenericLabel é o rótulo usado quando não há resultado identificável
const GenericLabel = "成果"

// actionLabels são os rótulos exibidos para cada tipo de resultado
var actionLabels = map[string]string{
	ActionPurchase:             "網站購買",
	ActionOmniPurchase:         "網站購買",
	ActionPixelPurchase:        "網站購買",
	ActionLead:                 "潛在客戶",
	ActionOnFacebookLead:       "潛在客戶",
	ActionLeadGrouped:          "潛在客戶",
	ActionPixelLead:            "潛在客戶",
	ActionCompleteRegistration: "完成註冊",
	ActionPixelRegistration:    "完成註冊",
	ActionAddToCart:            "加到購物車",
	ActionMessagingStarted:     "開始訊息對話",
	ActionMessagingFirstReply:  "訊息首次回覆",
	ActionMessagingConnection:  "新的訊息聯繫對象",
	ActionThruPlay:             "ThruPlay 次數",
	ActionVideoView:            "影片觀看次數",
	ActionLandingPageView:      "連結頁面瀏覽",
	ActionOmniLandingPageView:  "連結頁面瀏覽",
	ActionLinkClick:            "連結點擊",
	ActionPostEngagement:       "貼文互動",
	ActionPageEngagement:       "粉絲專頁互動",
	ActionPostReaction:         "貼文心情",
	ActionLike:                 "粉絲專頁讚",
	ActionComment:              "貼文留言",
	ActionAppInstall:           "應用程式安裝",
	ActionReach:                "觸及人數",
	ActionImpressions:          "曝光次數",
}

// actionWeights privilegia conversões de fato sobre engajamento leve. O score
// de cada candidato é contagem x peso.
var actionWeights = map[string]float64{
	ActionPurchase:             1000,
	ActionOmniPurchase:         1000,
	ActionPixelPurchase:        1000,
	ActionLead:                 800,
	ActionOnFacebookLead:       800,
	ActionLeadGrouped:          800,
	ActionPixelLead:            800,
	ActionCompleteRegistration: 500,
	ActionPixelRegistration:    500,
	ActionAppInstall:           400,
	ActionMessagingStarted:     300,
	ActionMessagingFirstReply:  250,
	ActionMessagingConnection:  200,
	ActionAddToCart:            100,
	ActionLandingPageView:      5,
	ActionOmniLandingPageView:  5,
	ActionThruPlay:             3,
	ActionLinkClick:            2,
	ActionVideoView:            1,
	ActionComment:              1,
	ActionLike:                 0.5,
	ActionPostEngagement:       0.2,
	ActionPageEngagement:       0.1,
	ActionPostReaction:         0.1,
}

// unknownActionWeight garante que ações fora da tabela só vencem quando não
// existe nenhuma conhecida
const unknownActionWeight = 0.001

// engagementCandidates são as ações consideradas para objetivos de engajamento
var engagementCandidates = []string{
	ActionMessagingStarted,
	ActionMessagingFirstReply,
	ActionMessagingConnection,
	ActionThruPlay,
	ActionVideoView,
	ActionPostEngagement,
	ActionPageEngagement,
	ActionPostReaction,
	ActionLike,
	ActionComment,
	ActionLinkClick,
	ActionLead,
	ActionOnFacebookLead,
}

var engagementObjectives = map[string]struct{}{
	"OUTCOME_ENGAGEMENT": {},
	"POST_ENGAGEMENT":    {},
	"PAGE_LIKES":         {},
	"MESSAGES":           {},
	"EVENT_RESPONSES":    {},
	"VIDEO_VIEWS":        {},
}

// goalActions define, por meta de otimização, as ações aceitas em ordem
var goalActions = map[string][]string{
	"OFFSITE_CONVERSIONS":               {ActionPixelPurchase, ActionPurchase, ActionOmniPurchase, ActionPixelLead, ActionPixelRegistration},
	"VALUE":                             {ActionPixelPurchase, ActionPurchase, ActionOmniPurchase},
	"CONVERSIONS":                       {ActionPixelPurchase, ActionPurchase, ActionOmniPurchase},
	"LEAD_GENERATION":                   {ActionLead, ActionOnFacebookLead, ActionLeadGrouped, ActionPixelLead},
	"QUALITY_LEAD":                      {ActionLead, ActionOnFacebookLead, ActionLeadGrouped},
	"CONVERSATIONS":                     {ActionMessagingStarted, ActionMessagingFirstReply, ActionMessagingConnection},
	"MESSAGES":                          {ActionMessagingStarted, ActionMessagingFirstReply, ActionMessagingConnection},
	"REPLIES":                           {ActionMessagingFirstReply, ActionMessagingStarted},
	"THRUPLAY":                          {ActionThruPlay},
	"VIDEO_VIEWS":                       {ActionVideoView, ActionThruPlay},
	"TWO_SECOND_CONTINUOUS_VIDEO_VIEWS": {ActionVideoView},
	"LANDING_PAGE_VIEWS":                {ActionLandingPageView, ActionOmniLandingPageView},
	"LINK_CLICKS":                       {ActionLinkClick},
	"POST_ENGAGEMENT":                   {ActionPostEngagement},
	"ENGAGED_USERS":                     {ActionPostEngagement},
	"PAGE_LIKES":                        {ActionLike},
	"APP_INSTALLS":                      {ActionAppInstall},
	"COMPLETE_REGISTRATION":             {ActionCompleteRegistration, ActionPixelRegistration},
}

// keywordGroup associa palavras no nome da entidade às ações plausíveis
type keywordGroup struct {
	keywords []string
	actions  []string
}

var nameKeywords = []keywordGroup{
	{
		keywords: []string{"影片", "觀影", "video", "thruplay"},
		actions:  []string{ActionThruPlay, ActionVideoView},
	},
	{
		keywords: []string{"訊息", "私訊", "message", "messenger"},
		actions:  []string{ActionMessagingStarted, ActionMessagingFirstReply, ActionMessagingConnection},
	},
	{
		keywords: []string{"名單", "潛客", "lead"},
		actions:  []string{ActionLead, ActionOnFacebookLead, ActionLeadGrouped, ActionPixelLead},
	},
	{
		keywords: []string{"購買", "轉換", "purchase", "sales"},
		actions:  []string{ActionPixelPurchase, ActionPurchase, ActionOmniPurchase},
	},
	{
		keywords: []string{"流量", "導流", "traffic"},
		actions:  []string{ActionLandingPageView, ActionOmniLandingPageView, ActionLinkClick},
	},
	{
		keywords: []string{"互動", "engagement"},
		actions:  []string{ActionPostEngagement, ActionPageEngagement},
	},
}

// indicatorActions traduz o texto do "Result indicator"/"成果指標" de uma
// exportação para o tipo de ação correspondente
var indicatorActions = map[string]string{
	"offsite_conversion.fb_pixel_purchase": ActionPixelPurchase,
	"purchase":                             ActionPurchase,
	"omni_purchase":                        ActionOmniPurchase,
	"website purchases":                    ActionPixelPurchase,
	"網站購買":                                 ActionPixelPurchase,
	"lead":                                 ActionLead,
	"leads":                                ActionLead,
	"offsite_conversion.fb_pixel_lead":     ActionPixelLead,
	"onsite_conversion.lead_grouped":       ActionLeadGrouped,
	"潛在客戶":                                 ActionLead,
	"onsite_conversion.messaging_conversation_started_7d": ActionMessagingStarted,
	"messaging conversations started":                     ActionMessagingStarted,
	"訊息對話開始次數":                                            ActionMessagingStarted,
	"onsite_conversion.messaging_first_reply":             ActionMessagingFirstReply,
	"video_thruplay_watched_actions":                      ActionThruPlay,
	"thruplays":                                           ActionThruPlay,
	"thruplay":                                            ActionThruPlay,
	"video_view":                                          ActionVideoView,
	"landing_page_view":                                   ActionLandingPageView,
	"omni_landing_page_view":                              ActionOmniLandingPageView,
	"landing page views":                                  ActionLandingPageView,
	"link_click":                                          ActionLinkClick,
	"link clicks":                                         ActionLinkClick,
	"連結點擊次數":                                              ActionLinkClick,
	"post_engagement":                                     ActionPostEngagement,
	"post engagements":                                    ActionPostEngagement,
	"page_engagement":                                     ActionPageEngagement,
	"like":                                                ActionLike,
	"page likes":                                          ActionLike,
	"complete_registration":                               ActionCompleteRegistration,
	"offsite_conversion.fb_pixel_complete_registration": ActionPixelRegistration,
	"mobile_app_install":                                ActionAppInstall,
	"reach":                                             ActionReach,
	"impressions":                                       ActionImpressions,
}

// LabelFor retorna o rótulo exibido de um tipo de ação. Tipos desconhecidos
// são exibidos como vieram.
func LabelFor(actionType string) string {
	if label, ok := actionLabels[actionType]; ok {
		return label
	}
	if actionType == "" {
		return GenericLabel
	}
	return actionType
}

func weightOf(actionType string) float64 {
	if w, ok := actionWeights[actionType]; ok {
		return w
	}
	return unknownActionWeight
}

// normalizeGoal aceita tanto "LANDING_PAGE_VIEWS" quanto "landing page views"
func normalizeGoal(goal string) string {
	goal = strings.ToUpper(strings.TrimSpace(goal))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(goal)
}

// normalizeIndicator remove o prefixo "actions:" usado nas exportações
func normalizeIndicator(indicator string) string {
	indicator = strings.ToLower(strings.TrimSpace(indicator))
	for _, prefix := range []string{"actions:", "conversions:"} {
		indicator = strings.TrimPrefix(indicator, prefix)
	}
	return indicator
}
