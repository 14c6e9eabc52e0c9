package calculating

import (
	"strings"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

// Reported contém os valores que a plataforma já entrega calculados. Zero
// significa "não informado".
type Reported struct {
	CPM       float64
	Frequency float64
}

// zeroDecimalCurrencies lista moedas cujos campos monetários inteiros da API
// já vêm na unidade principal (sem centavos)
var zeroDecimalCurrencies = newSet(
	"BIF", "CLP", "DJF", "GNF", "ISK", "JPY", "KMF", "KRW", "MGA", "PYG",
	"RWF", "UGX", "VND", "VUV", "XAF", "XOF", "XPF", "TWD", "HUF",
)

// hardConversionTypes são as ações que contam como conversão para o CVR
var hardConversionTypes = newSet(
	"purchase",
	"omni_purchase",
	"offsite_conversion.fb_pixel_purchase",
	"onsite_web_purchase",
	"lead",
	"on_facebook_lead",
	"onsite_conversion.lead_grouped",
	"offsite_conversion.fb_pixel_lead",
	"complete_registration",
	"offsite_conversion.fb_pixel_complete_registration",
	"onsite_conversion.messaging_conversation_started_7d",
	"onsite_conversion.messaging_first_reply",
	"onsite_conversion.messaging_connection",
	"messaging_connection",
	"add_to_cart",
	"offsite_conversion.fb_pixel_add_to_cart",
)

func newSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// IsHardConversion indica se o tipo de ação pertence à família de conversões
// (compra, cadastro, lead, mensagem)
func IsHardConversion(actionType string) bool {
	_, ok := hardConversionTypes[strings.ToLower(strings.TrimSpace(actionType))]
	return ok
}

// BudgetDivider retorna 1 para moedas sem casas decimais e 100 para as demais
func BudgetDivider(currency string) float64 {
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return 1
	}
	return 100
}

// NormalizeBudget converte um inteiro de orçamento da API para a unidade da moeda
func NormalizeBudget(raw float64, currency string) float64 {
	if raw <= 0 {
		return 0
	}
	return raw / BudgetDivider(currency)
}

// Derive preenche todas as taxas da linha a partir das contagens base e do
// resultado já atribuído. Toda divisão por zero resulta em 0.
func Derive(row *domain.CanonicalRow, reported Reported) {
	row.CTR = utils.SafeDivide(row.Clicks, row.Impressions) * 100
	row.CPC = utils.SafeDivide(row.Spend, row.Clicks)
	row.LinkCTR = utils.SafeDivide(row.LinkClicks, row.Impressions) * 100
	row.LinkCPC = utils.SafeDivide(row.Spend, row.LinkClicks)

	row.CPM = reported.CPM
	if row.CPM <= 0 {
		row.CPM = utils.SafeDivide(row.Spend, row.Impressions) * 1000
	}

	row.Frequency = reported.Frequency
	if row.Frequency <= 0 {
		row.Frequency = 1
	}

	row.ROAS = utils.SafeDivide(row.ConversionValue, row.Spend)

	DeriveResultRates(row)
}

// DeriveResultRates recalcula apenas o que depende do resultado atribuído
// (CPA e taxa de conversão). Usado também após a troca manual do resultado.
func DeriveResultRates(row *domain.CanonicalRow) {
	if row.Conversions <= 0 {
		row.Conversions = 0
		row.CostPerResult = 0
	}

	if row.WebsitePurchases > 0 {
		row.CPA = utils.SafeDivide(row.Spend, row.WebsitePurchases)
	} else {
		row.CPA = row.CostPerResult
	}

	if row.Conversions == 0 {
		row.ConversionRate = 0
		return
	}

	numerator := row.WebsitePurchases
	if IsHardConversion(row.PrimaryActionType) {
		numerator = row.Conversions
	}

	denominator := row.LinkClicks
	if denominator <= 0 {
		denominator = row.Clicks
	}

	row.ConversionRate = utils.SafeDivide(numerator, denominator) * 100
}

// DeriveMessaging calcula os custos das métricas de mensagem e engajamento
func DeriveMessaging(row *domain.CanonicalRow, postEngagement float64) {
	row.CostPerNewMessagingConnection = utils.SafeDivide(row.Spend, row.NewMessagingConnections)
	row.CostPerPageEngagement = utils.SafeDivide(row.Spend, postEngagement)
}
