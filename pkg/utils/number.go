package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundWithTwoDecimalPlace arredonda para centavos. Valores não finitos viram 0.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide retorna 0 quando o denominador é 0 ou o resultado não é finito
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}

	return result
}

// ParseNumeric converte valores como "NT$1,234.56" ou "12%" em número.
// Remove tudo que não for dígito, sinal de menos ou ponto. Nunca falha: entrada
// vazia ou não numérica vira 0.
func ParseNumeric(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		return 0
	case string:
		return parseNumericString(v)
	case []byte:
		return parseNumericString(string(v))
	}

	if s, ok := value.(interface{ String() string }); ok {
		return parseNumericString(s.String())
	}

	return 0
}

func parseNumericString(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}

	clean := b.String()
	if clean == "" {
		return 0
	}

	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return finiteOrZero(f)
	}

	// Mesmo comportamento de um parse por prefixo: "12.5.3" vira 12.5
	return finiteOrZero(parseLeadingFloat(clean))
}

func parseLeadingFloat(s string) float64 {
	end := 0
	seenDot := false
	for i, r := range s {
		switch {
		case r == '-' && i == 0:
		case r >= '0' && r <= '9':
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return parsePrefix(s[:end])
		}
		end = i + 1
	}
	return parsePrefix(s[:end])
}

func parsePrefix(s string) float64 {
	s = strings.TrimSuffix(s, ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
