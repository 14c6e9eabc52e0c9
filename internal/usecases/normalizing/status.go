package normalizing

import (
	"strings"
	"time"

	"github.com/vfg2006/ad-report-api/internal/domain"
)

var genderNames = map[string]string{
	"female":  "女性",
	"male":    "男性",
	"unknown": "未知",
}

// GenderName traduz o gênero da quebra demográfica; valores já traduzidos
// passam direto
func GenderName(gender string) string {
	if name, ok := genderNames[strings.ToLower(strings.TrimSpace(gender))]; ok {
		return name
	}
	return strings.TrimSpace(gender)
}

// statusLabel resolve o estado de veiculação no momento now e devolve o rótulo
func statusLabel(effectiveStatus, endTime string, now time.Time) string {
	return domain.ResolveDeliveryStatus(effectiveStatus, endTime, now).Label()
}

// activeStatuses são os valores de status (API ou exportação) considerados em
// veiculação pelo filtro "active"
var activeStatuses = []string{"active", "enabled", "in_process", "with_issues", "進行中", "審查中", "預審通過"}

func IsActiveStatus(status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	for _, active := range activeStatuses {
		if status == active {
			return true
		}
	}
	return false
}
