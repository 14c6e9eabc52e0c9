package normalizing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/attributing"
	"github.com/vfg2006/ad-report-api/internal/usecases/calculating"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table é um arquivo tabular já lido: cabeçalhos e uma RawRecord por linha
type Table struct {
	Source  string
	Headers []string
	Records []domain.RawRecord
}

// ReadTable lê um CSV com cabeçalho. Arquivo vazio ou ilegível resulta em uma
// tabela sem linhas, nunca em erro.
func ReadTable(r io.Reader) Table {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err != io.EOF {
			logrus.WithError(err).Warn("normalizing: could not read table header")
		}
		return Table{}
	}

	headers := uniqueHeaders(header)
	table := Table{Headers: headers}

	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		record := make(domain.RawRecord, len(headers))
		empty := true
		for i, value := range row {
			if i >= len(headers) {
				break
			}
			value = strings.TrimSpace(value)
			if value != "" {
				empty = false
			}
			record[headers[i]] = value
		}

		if !empty {
			table.Records = append(table.Records, record)
		}
	}

	if skipped > 0 {
		logrus.WithField("skipped_rows", skipped).Warn("normalizing: malformed rows ignored")
	}

	return table
}

// uniqueHeaders mantém o cabeçalho original e numera repetições
func uniqueHeaders(header []string) []string {
	seen := make(map[string]int, len(header))
	headers := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, string(utf8BOM))
		}
		if n := seen[h]; n > 0 {
			headers[i] = fmt.Sprintf("%s_%d", h, n)
		} else {
			headers[i] = h
		}
		seen[h]++
	}
	return headers
}

// NormalizeTable detecta plataforma e moeda uma vez e normaliza cada linha
func (n *Normalizer) NormalizeTable(table Table) domain.NormalizedBatch {
	platform := DetectPlatform(table.Headers)
	currency := DetectCurrency(table.Headers, n.defaultCurrency)

	rows := make([]*domain.CanonicalRow, 0, len(table.Records))
	for idx, record := range table.Records {
		rows = append(rows, n.normalizeRecord(record, idx, platform, currency))
	}
	uniqueRowIDs(rows)

	logrus.WithFields(logrus.Fields{
		"source":   table.Source,
		"platform": platform,
		"currency": currency,
		"rows":     len(rows),
	}).Info("normalizing: table normalized")

	return domain.NormalizedBatch{Rows: rows, Currency: currency, Platform: platform}
}

func (n *Normalizer) normalizeRecord(record domain.RawRecord, idx int, platform domain.Platform, currency string) *domain.CanonicalRow {
	class := ClassifyLevel(record, idx)

	row := &domain.CanonicalRow{
		Platform: platform,
		Level:    class.Level,
		Name:     class.Name,
		Age:      class.Age,
		Gender:   class.Gender,
		ImageURL: class.ImageURL,
		Extra:    extraFields(record),
	}

	if class.Level == domain.LevelCreative {
		row.Creative = &domain.CreativeDetails{
			Title:    class.Name,
			Body:     text(record, bodyAliases),
			ImageURL: class.ImageURL,
		}
	}

	row.Objective = text(record, objectiveAliases)
	row.OptimizationGoal = text(record, goalAliases)

	if platform == domain.PlatformGoogle {
		n.fillGoogle(row, record)
	} else {
		n.fillMeta(row, record, currency)
	}

	row.ID = contentRowID(row)
	return row
}

// contentRowID deriva o id da identidade da entidade (nível, campanha,
// conjunto e nome), não da posição no arquivo
func contentRowID(row *domain.CanonicalRow) string {
	identity := strings.Join([]string{
		string(row.Level),
		row.CampaignName,
		row.AdGroupName,
		row.Name,
		row.Age,
		row.Gender,
	}, "\x1f")
	hash := strings.ReplaceAll(uuid.NewSHA1(uuid.NameSpaceOID, []byte(identity)).String(), "-", "")
	return fmt.Sprintf("%s-%s-%s", row.Platform, row.Level, hash[:12])
}

// uniqueRowIDs numera as repetições de um mesmo id na ordem em que aparecem
func uniqueRowIDs(rows []*domain.CanonicalRow) {
	used := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		id := row.ID
		for n := 2; ; n++ {
			if _, taken := used[id]; !taken {
				break
			}
			id = fmt.Sprintf("%s-%d", row.ID, n)
		}
		used[id] = struct{}{}
		row.ID = id
	}
}

func (n *Normalizer) fillMeta(row *domain.CanonicalRow, record domain.RawRecord, currency string) {
	row.Status = textOr(record, metaStatusAliases, "Unknown")
	row.CampaignName = text(record, metaCampaignNameAliases)
	row.AdGroupName = text(record, metaAdSetNameAliases)

	row.Impressions = number(record, metaImpressionsAliases)
	row.Clicks = number(record, metaClicksAliases)
	row.Spend = numberOrKeyword(record, metaSpendAliases, metaSpendKeywords)
	row.ConversionValue = number(record, metaValueAliases)
	row.Reach = number(record, metaReachAliases)
	row.LinkClicks = number(record, metaLinkClicksAliases)
	row.WebsitePurchases = number(record, metaPurchasesAliases)
	row.LandingPageViews = number(record, metaLandingPageViewsAliases)
	row.VideoViews = number(record, metaThruPlaysAliases)
	row.NewMessagingConnections = number(record, metaNewConnectionsAliases)
	row.MessagingConversationsStarted = number(record, metaConversationsAliases)

	row.Budget = number(record, metaBudgetAliases)
	if row.Budget > 0 {
		row.BudgetType = parseBudgetType(text(record, metaBudgetTypeAliases))
	}

	leads := number(record, metaLeadsAliases)
	postEngagement := number(record, metaPostEngagementAliases)

	row.Actions = compactActions(
		domain.ActionValue{ActionType: attributing.ActionPixelPurchase, Value: row.WebsitePurchases},
		domain.ActionValue{ActionType: attributing.ActionLinkClick, Value: row.LinkClicks},
		domain.ActionValue{ActionType: attributing.ActionLandingPageView, Value: row.LandingPageViews},
		domain.ActionValue{ActionType: attributing.ActionThruPlay, Value: row.VideoViews},
		domain.ActionValue{ActionType: attributing.ActionMessagingStarted, Value: row.MessagingConversationsStarted},
		domain.ActionValue{ActionType: attributing.ActionMessagingConnection, Value: row.NewMessagingConnections},
		domain.ActionValue{ActionType: attributing.ActionLead, Value: leads},
		domain.ActionValue{ActionType: attributing.ActionPostEngagement, Value: postEngagement},
	)

	in := attributing.NewInput(row.Actions, nil)
	in.Indicator = textOrKeyword(record, indicatorAliases, indicatorKeywords)
	in.ReportedResults = number(record, metaResultsAliases)
	in.ReportedCostPerResult = numberOrKeyword(record, metaCostPerResultAliases, metaCostPerResultKeywords)

	n.attribute(row, in)

	calculating.Derive(row, calculating.Reported{
		CPM:       numberOrKeyword(record, metaCPMAliases, metaCPMKeywords),
		Frequency: number(record, metaFrequencyAliases),
	})

	calculating.DeriveMessaging(row, postEngagement)
	if reported := numberOrKeyword(record, metaNewConnectionCostAliases, metaNewConnectionCostKeywords); reported > 0 {
		row.CostPerNewMessagingConnection = reported
	}
	if reported := number(record, metaPageEngagementCostAliases); reported > 0 {
		row.CostPerPageEngagement = reported
	}
}

// fillGoogle segue a exportação do Google Ads: cliques fazem papel de cliques
// no link, impressões de alcance e a frequência é 1
func (n *Normalizer) fillGoogle(row *domain.CanonicalRow, record domain.RawRecord) {
	row.Status = textOr(record, googleStatusAliases, "Unknown")
	row.CampaignName = text(record, googleCampaignNameAliases)
	row.AdGroupName = text(record, googleAdGroupNameAliases)

	row.Impressions = number(record, googleImpressionsAliases)
	row.Clicks = number(record, googleClicksAliases)
	row.Spend = number(record, googleSpendAliases)
	row.ConversionValue = number(record, googleValueAliases)
	row.Budget = number(record, googleBudgetAliases)
	row.LinkClicks = row.Clicks
	row.Reach = row.Impressions

	in := attributing.NewInput(nil, nil)
	in.Indicator = textOrKeyword(record, indicatorAliases, indicatorKeywords)
	in.ReportedResults = number(record, googleConversionsAliases)

	n.attribute(row, in)

	calculating.Derive(row, calculating.Reported{Frequency: 1})
}

func parseBudgetType(raw string) domain.BudgetType {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "daily"), strings.Contains(lower, "單日"), strings.Contains(lower, "每日"):
		return domain.BudgetDaily
	case strings.Contains(lower, "lifetime"), strings.Contains(lower, "總經費"), strings.Contains(lower, "總預算"):
		return domain.BudgetLifetime
	}
	return domain.BudgetNone
}

func compactActions(actions ...domain.ActionValue) []domain.ActionValue {
	compacted := make([]domain.ActionValue, 0, len(actions))
	for _, a := range actions {
		if a.Value > 0 {
			compacted = append(compacted, a)
		}
	}
	return compacted
}

// extraFields guarda as colunas que nenhum campo canônico consumiu
func extraFields(record domain.RawRecord) map[string]string {
	var extra map[string]string
	for key, value := range record {
		if _, known := knownHeaders[normalizeHeader(key)]; known {
			continue
		}
		v := utils.Stringify(value)
		if v == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[key] = v
	}
	return extra
}

func text(record domain.RawRecord, aliases []string) string {
	value, _ := utils.FindByAliases(record, aliases)
	return value
}

func textOr(record domain.RawRecord, aliases []string, fallback string) string {
	if value, ok := utils.FindByAliases(record, aliases); ok {
		return value
	}
	return fallback
}

func textOrKeyword(record domain.RawRecord, aliases, keywords []string) string {
	if value, ok := utils.FindByAliases(record, aliases); ok {
		return value
	}
	value, _ := utils.FindByKeywordSubstring(record, keywords)
	return value
}

// number nunca devolve negativos: contagens e valores de exportação são >= 0
func number(record domain.RawRecord, aliases []string) float64 {
	value, _ := utils.FindByAliases(record, aliases)
	return math.Max(0, utils.ParseNumeric(value))
}

func numberOrKeyword(record domain.RawRecord, aliases, keywords []string) float64 {
	return math.Max(0, utils.ParseNumeric(textOrKeyword(record, aliases, keywords)))
}
