package domain

// RawRecord representa uma linha crua vinda de um CSV ou de um item da API,
// indexada pelo nome nativo da coluna/campo
type RawRecord map[string]any

type Platform string

const (
	PlatformMeta    Platform = "meta"
	PlatformGoogle  Platform = "google"
	PlatformUnknown Platform = "unknown"
)

type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "adset"
	LevelAd       Level = "ad"
	LevelCreative Level = "creative"
	LevelAge      Level = "age"
	LevelGender   Level = "gender"
)

// IsDemographic indica se o nível é um recorte demográfico
func (l Level) IsDemographic() bool {
	return l == LevelAge || l == LevelGender
}

type BudgetType string

const (
	BudgetDaily    BudgetType = "Daily"
	BudgetLifetime BudgetType = "Lifetime"
	BudgetABO      BudgetType = "ABO"
	BudgetNone     BudgetType = ""
)

// ActionValue é o par {action_type, value} já convertido para número
type ActionValue struct {
	ActionType string  `json:"action_type"`
	Value      float64 `json:"value"`
}

type CreativeDetails struct {
	Title           string `json:"title,omitempty"`
	Body            string `json:"body,omitempty"`
	LinkDescription string `json:"link_description,omitempty"`
	DisplayLink     string `json:"display_link,omitempty"`
	CallToAction    string `json:"call_to_action,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	PageID          string `json:"page_id,omitempty"`
}

// CanonicalRow é a linha normalizada, igual para o caminho de arquivo e o da API
type CanonicalRow struct {
	ID         string   `json:"id"`
	OriginalID string   `json:"original_id,omitempty"`
	Platform   Platform `json:"platform"`
	Level      Level    `json:"level"`

	Name         string `json:"name"`
	CampaignName string `json:"campaign_name"`
	AdGroupName  string `json:"ad_group_name"`
	Status       string `json:"status"`

	Impressions      float64 `json:"impressions"`
	Clicks           float64 `json:"clicks"`
	LinkClicks       float64 `json:"link_clicks"`
	Reach            float64 `json:"reach"`
	Spend            float64 `json:"spend"`
	VideoViews       float64 `json:"video_views"`
	LandingPageViews float64 `json:"landing_page_views"`
	WebsitePurchases float64 `json:"website_purchases"`
	ConversionValue  float64 `json:"conversion_value"`

	Conversions       float64 `json:"conversions"`
	ResultType        string  `json:"result_type"`
	CostPerResult     float64 `json:"cost_per_result"`
	PrimaryActionType string  `json:"primary_action_type,omitempty"`
	Objective         string  `json:"objective,omitempty"`
	OptimizationGoal  string  `json:"optimization_goal,omitempty"`
	ResultOverride    string  `json:"result_override,omitempty"`

	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	LinkCTR        float64 `json:"link_ctr"`
	LinkCPC        float64 `json:"link_cpc"`
	CPA            float64 `json:"cpa"`
	ConversionRate float64 `json:"conversion_rate"`
	CPM            float64 `json:"cpm"`
	Frequency      float64 `json:"frequency"`
	ROAS           float64 `json:"roas"`

	Budget     float64    `json:"budget"`
	BudgetType BudgetType `json:"budget_type"`

	NewMessagingConnections       float64 `json:"new_messaging_connections"`
	CostPerNewMessagingConnection float64 `json:"cost_per_new_messaging_connection"`
	MessagingConversationsStarted float64 `json:"messaging_conversations_started"`
	CostPerPageEngagement         float64 `json:"cost_per_page_engagement"`

	ImageURL string           `json:"image_url,omitempty"`
	Creative *CreativeDetails `json:"creative,omitempty"`

	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`

	// Dados de origem preservados para depuração
	Actions        []ActionValue     `json:"actions,omitempty"`
	CostPerActions []ActionValue     `json:"cost_per_actions,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// ActionCount retorna a contagem de uma ação crua, ou 0
func (r *CanonicalRow) ActionCount(actionType string) float64 {
	for _, a := range r.Actions {
		if a.ActionType == actionType {
			return a.Value
		}
	}
	return 0
}

// ActionCost retorna o custo por ação informado pela plataforma, ou 0
func (r *CanonicalRow) ActionCost(actionType string) float64 {
	for _, a := range r.CostPerActions {
		if a.ActionType == actionType {
			return a.Value
		}
	}
	return 0
}
