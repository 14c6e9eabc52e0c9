package normalizing

import (
	"regexp"
	"strings"

	"github.com/vfg2006/ad-report-api/internal/domain"
)

var (
	metaHeaderMarkers   = []string{"ad set name", "delivery status", "廣告組合名稱", "行銷活動投遞", "age", "gender", "年齡", "性別", "result indicator", "成果指標"}
	googleHeaderMarkers = []string{"ad group", "interaction rate", "廣告群組"}

	isoCurrencyPattern = regexp.MustCompile(`\(([A-Za-z]{3})\)`)

	// códigos aceitos entre parênteses; "(All)" de "Clicks (All)" não é moeda
	knownCurrencies = map[string]struct{}{
		"TWD": {}, "USD": {}, "HKD": {}, "JPY": {}, "KRW": {}, "CNY": {}, "EUR": {},
		"GBP": {}, "SGD": {}, "MYR": {}, "THB": {}, "PHP": {}, "IDR": {}, "VND": {},
		"INR": {}, "AUD": {}, "NZD": {}, "CAD": {}, "CHF": {}, "SEK": {}, "NOK": {},
		"DKK": {}, "PLN": {}, "CZK": {}, "HUF": {}, "TRY": {}, "ILS": {}, "AED": {},
		"SAR": {}, "ZAR": {}, "BRL": {}, "MXN": {}, "ARS": {}, "CLP": {}, "COP": {},
		"PEN": {}, "PYG": {}, "ISK": {}, "MOP": {}, "BIF": {}, "DJF": {}, "GNF": {},
		"KMF": {}, "MGA": {}, "RWF": {}, "UGX": {}, "VUV": {}, "XAF": {}, "XOF": {},
		"XPF": {},
	}

	moneyHeaderKeywords = []string{"spent", "spend", "cost", "cpm", "cpc", "budget", "value", "amount", "花費", "費用", "成本", "金額", "預算", "價值"}

	// a ordem importa: "NT$" e "US$" antes de "$"
	currencySymbols = []struct {
		symbol   string
		currency string
	}{
		{"NT$", "TWD"},
		{"US$", "USD"},
		{"HK$", "HKD"},
		{"¥", "JPY"},
		{"€", "EUR"},
		{"£", "GBP"},
		{"₩", "KRW"},
		{"$", "USD"},
	}
)

// DetectPlatform identifica a plataforma pelos cabeçalhos. A regra da Meta é
// avaliada primeiro.
func DetectPlatform(headers []string) domain.Platform {
	normalized := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		normalized[normalizeHeader(header)] = struct{}{}
	}

	if hasAnyHeader(normalized, metaHeaderMarkers) {
		return domain.PlatformMeta
	}
	if hasAnyHeader(normalized, googleHeaderMarkers) {
		return domain.PlatformGoogle
	}
	return domain.PlatformUnknown
}

func hasAnyHeader(headers map[string]struct{}, markers []string) bool {
	for _, marker := range markers {
		if _, ok := headers[marker]; ok {
			return true
		}
	}
	return false
}

// DetectCurrency procura um código ISO conhecido entre parênteses, primeiro nas
// colunas monetárias e depois nas demais, em seguida símbolos de moeda, e por
// último usa a moeda padrão
func DetectCurrency(headers []string, defaultCurrency string) string {
	if currency, ok := findISOCurrency(headers, true); ok {
		return currency
	}
	if currency, ok := findISOCurrency(headers, false); ok {
		return currency
	}

	for _, candidate := range currencySymbols {
		for _, header := range headers {
			if strings.Contains(header, candidate.symbol) {
				return candidate.currency
			}
		}
	}

	return strings.ToUpper(defaultCurrency)
}

func findISOCurrency(headers []string, moneyOnly bool) (string, bool) {
	for _, header := range headers {
		if moneyOnly && !isMoneyHeader(header) {
			continue
		}
		for _, match := range isoCurrencyPattern.FindAllStringSubmatch(header, -1) {
			code := strings.ToUpper(match[1])
			if _, ok := knownCurrencies[code]; ok {
				return code, true
			}
		}
	}
	return "", false
}

func isMoneyHeader(header string) bool {
	lower := strings.ToLower(header)
	for _, keyword := range moneyHeaderKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
