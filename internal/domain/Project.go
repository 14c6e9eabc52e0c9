package domain

import "time"

// Project agrupa as linhas normalizadas de uma importação ou de uma conta Meta
type Project struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Currency        string    `json:"currency"`
	MetaAccountID   string    `json:"meta_account_id,omitempty"`
	MetaAccountName string    `json:"meta_account_name,omitempty"`
	SyncGeneration  int64     `json:"sync_generation"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NormalizedBatch é o resultado de uma importação de arquivo ou sincronização
type NormalizedBatch struct {
	Rows     []*CanonicalRow `json:"rows"`
	Currency string          `json:"currency"`
	Platform Platform        `json:"platform"`
}

type CreateProjectRequest struct {
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	MetaAccountID   string `json:"meta_account_id"`
	MetaAccountName string `json:"meta_account_name"`
}

type SyncRequest struct {
	AccountID string
	Currency  string
	StartDate *time.Time
	EndDate   *time.Time
}

// SyncResult descreve uma importação ou sincronização. Applied é false quando
// outra sincronização mais recente do mesmo projeto já gravou suas linhas.
type SyncResult struct {
	SyncID     string   `json:"sync_id"`
	Generation int64    `json:"generation"`
	Applied    bool     `json:"applied"`
	Platform   Platform `json:"platform"`
	Currency   string   `json:"currency"`
	Rows       int      `json:"rows"`
}

type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterActive    StatusFilter = "active"
	StatusFilterDelivered StatusFilter = "delivered"
)

// RowFilters espelha os filtros da tabela: aba, status, busca e ordenação
type RowFilters struct {
	Tab           string
	Status        StatusFilter
	Query         string
	SortKey       string
	SortAscending bool
}

// RowTotals é a linha de totais da tabela filtrada. Campos de atribuição não
// somam entre entidades com resultados diferentes e ficam nil.
type RowTotals struct {
	Impressions                   float64  `json:"impressions"`
	Clicks                        float64  `json:"clicks"`
	Spend                         float64  `json:"spend"`
	Reach                         float64  `json:"reach"`
	LinkClicks                    float64  `json:"link_clicks"`
	WebsitePurchases              float64  `json:"website_purchases"`
	VideoViews                    float64  `json:"video_views"`
	LandingPageViews              float64  `json:"landing_page_views"`
	ConversionValue               float64  `json:"conversion_value"`
	NewMessagingConnections       float64  `json:"new_messaging_connections"`
	MessagingConversationsStarted float64  `json:"messaging_conversations_started"`
	CTR                           float64  `json:"ctr"`
	CPC                           float64  `json:"cpc"`
	LinkCTR                       float64  `json:"link_ctr"`
	LinkCPC                       float64  `json:"link_cpc"`
	CPM                           float64  `json:"cpm"`
	Frequency                     float64  `json:"frequency"`
	ROAS                          float64  `json:"roas"`
	CostPerNewMessagingConnection float64  `json:"cost_per_new_messaging_connection"`
	Conversions                   *float64 `json:"conversions"`
	CostPerResult                 *float64 `json:"cost_per_result"`
	CPA                           *float64 `json:"cpa"`
	ConversionRate                *float64 `json:"conversion_rate"`
}

type RowTable struct {
	Rows   []*CanonicalRow `json:"rows"`
	Totals *RowTotals      `json:"totals,omitempty"`
}

// DemographicRow é uma faixa (idade ou gênero) com as contagens somadas
type DemographicRow struct {
	Name             string  `json:"name"`
	Impressions      float64 `json:"impressions"`
	Clicks           float64 `json:"clicks"`
	Spend            float64 `json:"spend"`
	LinkClicks       float64 `json:"link_clicks"`
	WebsitePurchases float64 `json:"website_purchases"`
	Conversions      float64 `json:"conversions"`
	ConversionValue  float64 `json:"conversion_value"`
	CTR              float64 `json:"ctr"`
	CPC              float64 `json:"cpc"`
	LinkCTR          float64 `json:"link_ctr"`
	LinkCPC          float64 `json:"link_cpc"`
	CPA              float64 `json:"cpa"`
	ConversionRate   float64 `json:"conversion_rate"`
}

type DemographicReport struct {
	Level Level             `json:"level"`
	Rows  []*DemographicRow `json:"rows"`
	Total *DemographicRow   `json:"total"`
}
