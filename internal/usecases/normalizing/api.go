package normalizing

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/attributing"
	"github.com/vfg2006/ad-report-api/internal/usecases/calculating"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

// structure é o que os metadados de uma entidade acrescentam ao insight
type structure struct {
	status           string
	endTime          string
	objective        string
	optimizationGoal string
	dailyBudget      string
	lifetimeBudget   string
}

type snapshotIndex struct {
	campaigns map[string]metadomain.Campaign
	adSets    map[string]metadomain.AdSet
	ads       map[string]metadomain.Ad
}

func indexSnapshot(snapshot *metadomain.AccountSnapshot) snapshotIndex {
	idx := snapshotIndex{
		campaigns: make(map[string]metadomain.Campaign, len(snapshot.Campaigns)),
		adSets:    make(map[string]metadomain.AdSet, len(snapshot.AdSets)),
		ads:       make(map[string]metadomain.Ad, len(snapshot.Ads)),
	}
	for _, c := range snapshot.Campaigns {
		idx.campaigns[c.ID] = c
	}
	for _, s := range snapshot.AdSets {
		idx.adSets[s.ID] = s
	}
	for _, a := range snapshot.Ads {
		idx.ads[a.ID] = a
	}
	return idx
}

// NormalizeSnapshot junta os insights das três granularidades e das duas
// quebras demográficas com os metadados (status, orçamento, objetivo, meta e
// criativo) e produz as linhas canônicas
func (n *Normalizer) NormalizeSnapshot(snapshot *metadomain.AccountSnapshot, currency string, now time.Time) []*domain.CanonicalRow {
	if snapshot == nil {
		return []*domain.CanonicalRow{}
	}
	if currency == "" {
		currency = n.defaultCurrency
	}

	idx := indexSnapshot(snapshot)
	rows := make([]*domain.CanonicalRow, 0,
		len(snapshot.CampaignInsights)+len(snapshot.AdSetInsights)+len(snapshot.AdInsights)+
			len(snapshot.GenderInsights)+len(snapshot.AgeInsights))

	for i, item := range snapshot.CampaignInsights {
		campaign := idx.campaigns[item.CampaignID]
		info := structure{
			status:         campaign.EffectiveStatus,
			endTime:        campaign.StopTime,
			objective:      firstNonEmpty(item.Objective, campaign.Objective),
			dailyBudget:    campaign.DailyBudget,
			lifetimeBudget: campaign.LifetimeBudget,
		}
		row := n.normalizeInsight(item, domain.LevelCampaign, entityID(item.CampaignID, i), info, currency, now)
		row.OriginalID = item.CampaignID
		row.Name = firstNonEmpty(item.CampaignName, campaign.Name, "Unknown")
		rows = append(rows, n.finishInsight(row, item, info))
	}

	for i, item := range snapshot.AdSetInsights {
		adSet := idx.adSets[item.AdSetID]
		campaign := idx.campaigns[firstNonEmpty(item.CampaignID, adSet.CampaignID)]
		info := structure{
			status:           adSet.EffectiveStatus,
			endTime:          adSet.EndTime,
			objective:        firstNonEmpty(item.Objective, campaign.Objective),
			optimizationGoal: firstNonEmpty(adSet.OptimizationGoal, item.OptimizationGoal),
			dailyBudget:      adSet.DailyBudget,
			lifetimeBudget:   adSet.LifetimeBudget,
		}
		row := n.normalizeInsight(item, domain.LevelAdSet, entityID(item.AdSetID, i), info, currency, now)
		row.OriginalID = item.AdSetID
		row.Name = firstNonEmpty(item.AdSetName, adSet.Name, "Unknown")
		rows = append(rows, n.finishInsight(row, item, info))
	}

	for i, item := range snapshot.AdInsights {
		ad := idx.ads[item.AdID]
		adSet := idx.adSets[firstNonEmpty(item.AdSetID, ad.AdSetID)]
		campaign := idx.campaigns[firstNonEmpty(item.CampaignID, adSet.CampaignID, ad.CampaignID)]
		info := structure{
			status:           firstNonEmpty(ad.EffectiveStatus, "UNKNOWN"),
			endTime:          adSet.EndTime,
			objective:        firstNonEmpty(item.Objective, campaign.Objective),
			optimizationGoal: firstNonEmpty(item.OptimizationGoal, adSet.OptimizationGoal),
		}
		row := n.normalizeInsight(item, domain.LevelAd, entityID(item.AdID, i), info, currency, now)
		row.OriginalID = item.AdID
		row.Name = firstNonEmpty(item.AdName, ad.Name, "Unknown")
		if details := ExtractCreative(ad.Creative); details != nil {
			row.Creative = details
			row.ImageURL = details.ImageURL
		}
		rows = append(rows, n.finishInsight(row, item, info))
	}

	for i, item := range snapshot.GenderInsights {
		campaign := idx.campaigns[item.CampaignID]
		info := structure{
			status:    firstNonEmpty(campaign.EffectiveStatus, string(domain.StatusActive)),
			endTime:   campaign.StopTime,
			objective: firstNonEmpty(item.Objective, campaign.Objective),
		}
		row := n.normalizeInsight(item, domain.LevelGender, entityID(item.CampaignID+"-"+item.Gender, i), info, currency, now)
		row.OriginalID = item.CampaignID
		row.Name = GenderName(firstNonEmpty(item.Gender, "unknown"))
		row.Gender = item.Gender
		rows = append(rows, n.finishInsight(row, item, info))
	}

	for i, item := range snapshot.AgeInsights {
		campaign := idx.campaigns[item.CampaignID]
		info := structure{
			status:    firstNonEmpty(campaign.EffectiveStatus, string(domain.StatusActive)),
			endTime:   campaign.StopTime,
			objective: firstNonEmpty(item.Objective, campaign.Objective),
		}
		row := n.normalizeInsight(item, domain.LevelAge, entityID(item.CampaignID+"-"+item.Age, i), info, currency, now)
		row.OriginalID = item.CampaignID
		row.Name = firstNonEmpty(item.Age, "Unknown")
		row.Age = item.Age
		rows = append(rows, n.finishInsight(row, item, info))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": snapshot.AccountID,
		"currency":   currency,
		"rows":       len(rows),
	}).Info("normalizing: account snapshot normalized")

	return rows
}

// entityID usa o índice quando a API não trouxe o id da entidade
func entityID(id string, index int) string {
	if id == "" || id == "-" {
		return fmt.Sprintf("idx%d", index)
	}
	return id
}

// normalizeInsight preenche contagens, status e orçamento. A atribuição fica
// para finishInsight, depois que o nome da linha é conhecido.
func (n *Normalizer) normalizeInsight(item metadomain.InsightItem, level domain.Level, id string, info structure, currency string, now time.Time) *domain.CanonicalRow {
	actions := toActionValues(item.Actions)
	if thruPlays := sumActions(item.VideoThruPlays); thruPlays > 0 {
		actions = append(actions, domain.ActionValue{ActionType: attributing.ActionThruPlay, Value: thruPlays})
	}

	row := &domain.CanonicalRow{
		ID:               fmt.Sprintf("meta-%s-%s", level, id),
		Platform:         domain.PlatformMeta,
		Level:            level,
		CampaignName:     item.CampaignName,
		AdGroupName:      item.AdSetName,
		Status:           statusLabel(info.status, info.endTime, now),
		Objective:        info.objective,
		OptimizationGoal: info.optimizationGoal,
		Impressions:      utils.ParseNumeric(item.Impressions),
		Clicks:           utils.ParseNumeric(item.Clicks),
		Spend:            utils.ParseNumeric(item.Spend),
		Reach:            utils.ParseNumeric(item.Reach),
		LinkClicks:       utils.ParseNumeric(item.InlineLinkClicks),
		Actions:          actions,
		CostPerActions:   toActionValues(item.CostPerActions),
	}

	row.WebsitePurchases = row.ActionCount(attributing.ActionPixelPurchase)
	row.LandingPageViews = firstPositive(row.ActionCount(attributing.ActionLandingPageView), row.ActionCount(attributing.ActionOmniLandingPageView))
	row.VideoViews = firstPositive(row.ActionCount(attributing.ActionThruPlay), row.ActionCount(attributing.ActionVideoView))
	row.MessagingConversationsStarted = row.ActionCount(attributing.ActionMessagingStarted)
	row.NewMessagingConnections = firstPositive(row.ActionCount(attributing.ActionMessagingConnection), row.ActionCount("messaging_connection"))

	values := toActionValues(item.ActionValues)
	row.ConversionValue = firstPositive(actionValue(values, attributing.ActionPurchase), actionValue(values, attributing.ActionOmniPurchase))

	switch {
	case utils.ParseNumeric(info.dailyBudget) > 0:
		row.Budget = calculating.NormalizeBudget(utils.ParseNumeric(info.dailyBudget), currency)
		row.BudgetType = domain.BudgetDaily
	case utils.ParseNumeric(info.lifetimeBudget) > 0:
		row.Budget = calculating.NormalizeBudget(utils.ParseNumeric(info.lifetimeBudget), currency)
		row.BudgetType = domain.BudgetLifetime
	case level == domain.LevelCampaign:
		// orçamento no conjunto de anúncios
		row.BudgetType = domain.BudgetABO
	}

	return row
}

func (n *Normalizer) finishInsight(row *domain.CanonicalRow, item metadomain.InsightItem, info structure) *domain.CanonicalRow {
	n.attribute(row, attributing.NewInput(row.Actions, row.CostPerActions))

	calculating.Derive(row, calculating.Reported{
		CPM:       utils.ParseNumeric(item.CPM),
		Frequency: utils.ParseNumeric(item.Frequency),
	})
	calculating.DeriveMessaging(row, row.ActionCount(attributing.ActionPostEngagement))

	return row
}

func toActionValues(actions []metadomain.Action) []domain.ActionValue {
	values := make([]domain.ActionValue, 0, len(actions))
	for _, a := range actions {
		values = append(values, domain.ActionValue{ActionType: a.ActionType, Value: utils.ParseNumeric(a.Value)})
	}
	return values
}

func sumActions(actions []metadomain.Action) float64 {
	var total float64
	for _, a := range actions {
		total += utils.ParseNumeric(a.Value)
	}
	return total
}

func actionValue(values []domain.ActionValue, actionType string) float64 {
	for _, v := range values {
		if v.ActionType == actionType {
			return v.Value
		}
	}
	return 0
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
