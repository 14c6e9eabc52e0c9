package normalizing

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

// Classification é o nível decidido para uma linha e o nome exibido
type Classification struct {
	Level    domain.Level
	Name     string
	Age      string
	Gender   string
	ImageURL string
}

// ClassifyLevel decide o nível da linha uma única vez. A primeira regra que
// casar vence; sem nenhuma, a linha vira campanha com nome "Row <n>".
func ClassifyLevel(record domain.RawRecord, index int) Classification {
	imageURL := FindImageURL(record)

	age, hasAge := utils.FindByAliases(record, ageAliases)
	gender, hasGender := utils.FindByAliases(record, genderAliases)
	if hasAge || hasGender {
		level := domain.LevelGender
		if hasAge {
			level = domain.LevelAge
		}
		return Classification{
			Level:    level,
			Name:     strings.TrimSpace(age + " " + GenderName(gender)),
			Age:      age,
			Gender:   gender,
			ImageURL: imageURL,
		}
	}

	if name, ok := utils.FindByAliases(record, creativeAliases); ok {
		return Classification{Level: domain.LevelCreative, Name: name, ImageURL: imageURL}
	}
	if imageURL != "" {
		name, ok := utils.FindByAliases(record, adAliases)
		if !ok {
			name = fmt.Sprintf("Creative %d", index)
		}
		return Classification{Level: domain.LevelCreative, Name: name, ImageURL: imageURL}
	}

	if name, ok := utils.FindByAliases(record, adAliases); ok {
		return Classification{Level: domain.LevelAd, Name: name}
	}
	if name, ok := utils.FindByAliases(record, adSetAliases); ok {
		return Classification{Level: domain.LevelAdSet, Name: name}
	}
	if name, ok := utils.FindByAliases(record, campaignAliases); ok {
		return Classification{Level: domain.LevelCampaign, Name: name}
	}

	return Classification{Level: domain.LevelCampaign, Name: fmt.Sprintf("Row %d", index)}
}

// FindImageURL procura primeiro nos nomes conhecidos e depois em qualquer
// coluna cujo nome lembre imagem ou link. Só aceita valores http(s).
func FindImageURL(record domain.RawRecord) string {
	for _, alias := range imageAliases {
		if value, ok := utils.FindByAliases(record, []string{alias}); ok && isHTTP(value) {
			return value
		}
	}

	for _, key := range utils.SortedKeys(record) {
		lower := strings.ToLower(key)
		if !containsAny(lower, imageKeywords) {
			continue
		}
		if value := utils.Stringify(record[key]); isHTTP(value) {
			return value
		}
	}

	return ""
}

func isHTTP(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
