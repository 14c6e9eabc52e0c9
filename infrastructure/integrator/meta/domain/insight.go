package metadomain

// Action é o par {action_type, value} como vem da Graph API (valor em texto)
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging.Next é a URL completa da próxima página, vazia na última
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// InsightItem é uma linha de /insights em qualquer nível (campanha, conjunto,
// anúncio ou quebra demográfica)
type InsightItem struct {
	AccountID        string   `json:"account_id,omitempty"`
	CampaignID       string   `json:"campaign_id,omitempty"`
	CampaignName     string   `json:"campaign_name,omitempty"`
	AdSetID          string   `json:"adset_id,omitempty"`
	AdSetName        string   `json:"adset_name,omitempty"`
	AdID             string   `json:"ad_id,omitempty"`
	AdName           string   `json:"ad_name,omitempty"`
	Objective        string   `json:"objective,omitempty"`
	OptimizationGoal string   `json:"optimization_goal,omitempty"`
	Impressions      string   `json:"impressions,omitempty"`
	Clicks           string   `json:"clicks,omitempty"`
	Spend            string   `json:"spend,omitempty"`
	Reach            string   `json:"reach,omitempty"`
	InlineLinkClicks string   `json:"inline_link_clicks,omitempty"`
	CPM              string   `json:"cpm,omitempty"`
	Frequency        string   `json:"frequency,omitempty"`
	Actions          []Action `json:"actions,omitempty"`
	ActionValues     []Action `json:"action_values,omitempty"`
	CostPerActions   []Action `json:"cost_per_action_type,omitempty"`
	VideoThruPlays   []Action `json:"video_thruplay_watched_actions,omitempty"`
	Age              string   `json:"age,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	DateStart        string   `json:"date_start,omitempty"`
	DateStop         string   `json:"date_stop,omitempty"`
}
