package domain

import (
	"strings"
	"time"
)

// DeliveryStatus é o estado de veiculação exibido, derivado a cada sincronização
type DeliveryStatus string

const (
	StatusUnknown            DeliveryStatus = "UNKNOWN"
	StatusActive             DeliveryStatus = "ACTIVE"
	StatusPaused             DeliveryStatus = "PAUSED"
	StatusDeleted            DeliveryStatus = "DELETED"
	StatusArchived           DeliveryStatus = "ARCHIVED"
	StatusInProcess          DeliveryStatus = "IN_PROCESS"
	StatusWithIssues         DeliveryStatus = "WITH_ISSUES"
	StatusCampaignPaused     DeliveryStatus = "CAMPAIGN_PAUSED"
	StatusAdSetPaused        DeliveryStatus = "ADSET_PAUSED"
	StatusPendingReview      DeliveryStatus = "PENDING_REVIEW"
	StatusDisapproved        DeliveryStatus = "DISAPPROVED"
	StatusPreapproved        DeliveryStatus = "PREAPPROVED"
	StatusPendingBillingInfo DeliveryStatus = "PENDING_BILLING_INFO"
	StatusCompleted          DeliveryStatus = "COMPLETED"
)

var statusLabels = map[DeliveryStatus]string{
	StatusActive:             "進行中",
	StatusPaused:             "已關閉",
	StatusDeleted:            "已刪除",
	StatusArchived:           "已封存",
	StatusInProcess:          "進行中",
	StatusWithIssues:         "錯誤",
	StatusCampaignPaused:     "行銷活動已關閉",
	StatusAdSetPaused:        "廣告組合已關閉",
	StatusPendingReview:      "審查中",
	StatusDisapproved:        "未通過",
	StatusPreapproved:        "預審通過",
	StatusPendingBillingInfo: "需更新付款資訊",
	StatusCompleted:          "已完成",
	StatusUnknown:            "未投遞",
}

// IsRunning indica os estados considerados em veiculação
func (s DeliveryStatus) IsRunning() bool {
	return s == StatusActive || s == StatusInProcess || s == StatusWithIssues
}

// Label retorna o rótulo exibido no painel
func (s DeliveryStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusUnknown]
}

// ParseDeliveryStatus converte o effective_status da plataforma
func ParseDeliveryStatus(raw string) DeliveryStatus {
	s := DeliveryStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := statusLabels[s]; ok && s != StatusCompleted {
		return s
	}
	return StatusUnknown
}

// ResolveDeliveryStatus aplica a única transição existente: um estado em
// veiculação cuja data de término já passou vira COMPLETED
func ResolveDeliveryStatus(raw string, stopTime string, now time.Time) DeliveryStatus {
	status := ParseDeliveryStatus(raw)
	if !status.IsRunning() || stopTime == "" {
		return status
	}

	end, ok := parsePlatformTime(stopTime)
	if ok && end.Before(now) {
		return StatusCompleted
	}

	return status
}

var platformTimeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

func parsePlatformTime(value string) (time.Time, bool) {
	for _, layout := range platformTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
