package metadomain

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	EffectiveStatus string `json:"effective_status"`
	Objective       string `json:"objective"`
	StopTime        string `json:"stop_time,omitempty"`
	DailyBudget     string `json:"daily_budget,omitempty"`
	LifetimeBudget  string `json:"lifetime_budget,omitempty"`
}

type AdSet struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	EffectiveStatus  string `json:"effective_status"`
	CampaignID       string `json:"campaign_id"`
	OptimizationGoal string `json:"optimization_goal,omitempty"`
	EndTime          string `json:"end_time,omitempty"`
	DailyBudget      string `json:"daily_budget,omitempty"`
	LifetimeBudget   string `json:"lifetime_budget,omitempty"`
}

type Ad struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	EffectiveStatus string    `json:"effective_status"`
	AdSetID         string    `json:"adset_id"`
	CampaignID      string    `json:"campaign_id,omitempty"`
	Creative        *Creative `json:"creative,omitempty"`
}

type Creative struct {
	ID              string           `json:"id,omitempty"`
	Title           string           `json:"title,omitempty"`
	Body            string           `json:"body,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	ThumbnailURL    string           `json:"thumbnail_url,omitempty"`
	ObjectStorySpec *ObjectStorySpec `json:"object_story_spec,omitempty"`
	AssetFeedSpec   *AssetFeedSpec   `json:"asset_feed_spec,omitempty"`
}

type ObjectStorySpec struct {
	PageID    string     `json:"page_id,omitempty"`
	LinkData  *LinkData  `json:"link_data,omitempty"`
	VideoData *VideoData `json:"video_data,omitempty"`
}

type CallToAction struct {
	Type  string `json:"type,omitempty"`
	Value struct {
		Link string `json:"link,omitempty"`
	} `json:"value,omitempty"`
}

type LinkData struct {
	Message          string            `json:"message,omitempty"`
	Name             string            `json:"name,omitempty"`
	Description      string            `json:"description,omitempty"`
	Link             string            `json:"link,omitempty"`
	Caption          string            `json:"caption,omitempty"`
	Picture          string            `json:"picture,omitempty"`
	CallToAction     *CallToAction     `json:"call_to_action,omitempty"`
	ChildAttachments []ChildAttachment `json:"child_attachments,omitempty"`
}

// ChildAttachment é um cartão de carrossel
type ChildAttachment struct {
	Name         string        `json:"name,omitempty"`
	Description  string        `json:"description,omitempty"`
	Link         string        `json:"link,omitempty"`
	Picture      string        `json:"picture,omitempty"`
	ImageURL     string        `json:"image_url,omitempty"`
	CallToAction *CallToAction `json:"call_to_action,omitempty"`
}

type VideoData struct {
	Message         string        `json:"message,omitempty"`
	Title           string        `json:"title,omitempty"`
	LinkDescription string        `json:"link_description,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	VideoID         string        `json:"video_id,omitempty"`
	CallToAction    *CallToAction `json:"call_to_action,omitempty"`
}

type AssetText struct {
	Text string `json:"text"`
}

type AssetImage struct {
	URL  string `json:"url,omitempty"`
	Hash string `json:"hash,omitempty"`
}

type AssetVideo struct {
	VideoID      string `json:"video_id,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type AssetLink struct {
	WebsiteURL string `json:"website_url,omitempty"`
	DisplayURL string `json:"display_url,omitempty"`
}

// AssetFeedSpec descreve criativos dinâmicos (vários textos e imagens)
type AssetFeedSpec struct {
	Images            []AssetImage `json:"images,omitempty"`
	Videos            []AssetVideo `json:"videos,omitempty"`
	Bodies            []AssetText  `json:"bodies,omitempty"`
	Titles            []AssetText  `json:"titles,omitempty"`
	Descriptions      []AssetText  `json:"descriptions,omitempty"`
	LinkURLs          []AssetLink  `json:"link_urls,omitempty"`
	CallToActionTypes []string     `json:"call_to_action_types,omitempty"`
}

type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
}
