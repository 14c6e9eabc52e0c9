package normalizing

import (
	"sort"
	"unicode"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

const TotalRowName = "總計"

// AggregateDemographics agrupa as linhas do nível (age ou gender) pelo nome da
// faixa, soma as contagens e recalcula as taxas. A linha de total soma as
// faixas já agrupadas.
func AggregateDemographics(rows []*domain.CanonicalRow, level domain.Level) domain.DemographicReport {
	groups := make(map[string]*domain.DemographicRow)
	order := make([]string, 0)

	for _, row := range rows {
		if row == nil || row.Level != level {
			continue
		}

		group, ok := groups[row.Name]
		if !ok {
			group = &domain.DemographicRow{Name: row.Name}
			groups[row.Name] = group
			order = append(order, row.Name)
		}

		group.Impressions += row.Impressions
		group.Clicks += row.Clicks
		group.Spend += row.Spend
		group.LinkClicks += row.LinkClicks
		group.WebsitePurchases += row.WebsitePurchases
		group.Conversions += row.Conversions
		group.ConversionValue += row.ConversionValue
	}

	sort.SliceStable(order, func(i, j int) bool {
		return naturalLess(order[i], order[j])
	})

	report := domain.DemographicReport{
		Level: level,
		Rows:  make([]*domain.DemographicRow, 0, len(order)),
		Total: &domain.DemographicRow{Name: TotalRowName},
	}

	for _, name := range order {
		group := groups[name]
		demographicRates(group)
		report.Rows = append(report.Rows, group)

		report.Total.Impressions += group.Impressions
		report.Total.Clicks += group.Clicks
		report.Total.Spend += group.Spend
		report.Total.LinkClicks += group.LinkClicks
		report.Total.WebsitePurchases += group.WebsitePurchases
		report.Total.Conversions += group.Conversions
		report.Total.ConversionValue += group.ConversionValue
	}
	demographicRates(report.Total)

	return report
}

// demographicRates usa conversions como resultado e cai para compras no site
// quando a faixa não tem resultado atribuído
func demographicRates(r *domain.DemographicRow) {
	results := r.Conversions
	if results == 0 {
		results = r.WebsitePurchases
	}

	r.CTR = utils.SafeDivide(r.Clicks, r.Impressions) * 100
	r.CPC = utils.SafeDivide(r.Spend, r.Clicks)
	r.LinkCTR = utils.SafeDivide(r.LinkClicks, r.Impressions) * 100
	r.LinkCPC = utils.SafeDivide(r.Spend, r.LinkClicks)
	r.CPA = utils.SafeDivide(r.Spend, results)
	r.ConversionRate = utils.SafeDivide(results, r.LinkClicks) * 100
}

// naturalLess compara textos tratando sequências de dígitos como números,
// então "18-24" vem antes de "100+" e "65+" depois de "55-64"
func naturalLess(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ra) && j < len(rb) {
		if unicode.IsDigit(ra[i]) && unicode.IsDigit(rb[j]) {
			si := i
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			sj := j
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}

			na, nb := trimZeros(ra[si:i]), trimZeros(rb[sj:j])
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if sa, sb := string(na), string(nb); sa != sb {
				return sa < sb
			}
			continue
		}

		if ra[i] != rb[j] {
			return ra[i] < rb[j]
		}
		i++
		j++
	}

	return len(ra)-i < len(rb)-j
}

func trimZeros(digits []rune) []rune {
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	return digits
}
