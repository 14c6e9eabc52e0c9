package attributing

import (
	"errors"
	"strings"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/calculating"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

var ErrUnknownResultCategory = errors.New("unknown result category")

// ResultCategory é um dos tipos de resultado que o usuário pode escolher
// manualmente para uma linha
type ResultCategory struct {
	ActionType string `json:"action_type"`
	Label      string `json:"label"`
	// fallback lê uma métrica já normalizada quando a ação não existe na linha
	fallback func(row *domain.CanonicalRow) float64
}

// ResultCategories é a lista fechada de opções de troca manual
var ResultCategories = []ResultCategory{
	{
		ActionType: ActionPurchase,
		Label:      "網站購買",
		fallback:   func(row *domain.CanonicalRow) float64 { return row.WebsitePurchases },
	},
	{
		ActionType: ActionOnFacebookLead,
		Label:      "潛在客戶",
	},
	{
		ActionType: ActionLinkClick,
		Label:      "連結點擊",
		fallback:   func(row *domain.CanonicalRow) float64 { return row.LinkClicks },
	},
	{
		ActionType: ActionOmniLandingPageView,
		Label:      "頁面瀏覽",
		fallback:   func(row *domain.CanonicalRow) float64 { return row.LandingPageViews },
	},
	{
		ActionType: ActionThruPlay,
		Label:      "ThruPlay",
		fallback:   func(row *domain.CanonicalRow) float64 { return row.VideoViews },
	},
	{
		ActionType: ActionMessagingStarted,
		Label:      "開始訊息對話",
		fallback:   func(row *domain.CanonicalRow) float64 { return row.MessagingConversationsStarted },
	},
	{
		ActionType: ActionPostEngagement,
		Label:      "貼文互動",
	},
}

// FindResultCategory aceita o tipo de ação ou o próprio rótulo
func FindResultCategory(value string) (ResultCategory, bool) {
	value = strings.TrimSpace(value)
	for _, category := range ResultCategories {
		if strings.EqualFold(category.ActionType, value) || category.Label == value {
			return category, true
		}
	}
	return ResultCategory{}, false
}

// Override troca o resultado da linha pelo tipo escolhido. A contagem vem das
// ações cruas e, na falta delas, da métrica conhecida equivalente.
func Override(row *domain.CanonicalRow, target string) error {
	category, ok := FindResultCategory(target)
	if !ok {
		return ErrUnknownResultCategory
	}

	value := row.ActionCount(category.ActionType)
	if value <= 0 && category.fallback != nil {
		value = category.fallback(row)
	}

	cost := row.ActionCost(category.ActionType)
	if cost <= 0 {
		cost = utils.SafeDivide(row.Spend, value)
	}

	row.Conversions = value
	row.CostPerResult = cost
	row.ResultType = category.Label
	row.PrimaryActionType = category.ActionType
	row.OptimizationGoal = "MANUAL_" + strings.ToUpper(category.ActionType)
	row.ResultOverride = category.ActionType

	calculating.DeriveResultRates(row)

	return nil
}
