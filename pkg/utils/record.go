package utils

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FindByAliases procura o valor de um campo entre vários nomes de coluna
// aceitos (inclusive em chinês). A comparação ignora maiúsculas e espaços nas
// pontas. Retorna o primeiro candidato presente e não vazio.
func FindByAliases(record map[string]any, candidates []string) (string, bool) {
	if len(record) == 0 {
		return "", false
	}

	index := make(map[string]string, len(record))
	for key := range record {
		normalized := normalizeKey(key)
		if existing, ok := index[normalized]; ok && existing < key {
			continue
		}
		index[normalized] = key
	}

	for _, candidate := range candidates {
		key, ok := index[normalizeKey(candidate)]
		if !ok {
			continue
		}

		if value := Stringify(record[key]); value != "" {
			return value, true
		}
	}

	return "", false
}

// FindByKeywordSubstring é a busca frouxa: devolve o valor da primeira chave
// (em ordem alfabética) que contém alguma das palavras-chave
func FindByKeywordSubstring(record map[string]any, keywords []string) (string, bool) {
	keys := SortedKeys(record)
	for _, key := range keys {
		lower := strings.ToLower(key)
		for _, keyword := range keywords {
			if keyword == "" || !strings.Contains(lower, strings.ToLower(keyword)) {
				continue
			}

			if value := Stringify(record[key]); value != "" {
				return value, true
			}
		}
	}

	return "", false
}

// SortedKeys devolve as chaves do registro em ordem estável
func SortedKeys[V any](record map[string]V) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Stringify converte um valor escalar em texto sem espaços nas pontas
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
