package normalizing

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-report-api/internal/config"
	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/attributing"
)

// Normalizer transforma registros crus (arquivo ou API) em CanonicalRow. Não
// guarda estado entre chamadas e pode ser usado em paralelo.
type Normalizer struct {
	engine          *attributing.Engine
	defaultCurrency string
}

func NewNormalizer(cfg *config.Config, engine *attributing.Engine) *Normalizer {
	if engine == nil {
		engine = attributing.NewEngine()
	}

	currency := cfg.Normalizer.DefaultCurrency
	if currency == "" {
		currency = "TWD"
	}

	return &Normalizer{
		engine:          engine,
		defaultCurrency: currency,
	}
}

// NormalizeTables normaliza vários arquivos em paralelo
func (n *Normalizer) NormalizeTables(tables []Table) []domain.NormalizedBatch {
	batches := make([]domain.NormalizedBatch, len(tables))

	var wg sync.WaitGroup
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			batches[i] = n.NormalizeTable(tables[i])
		}(i)
	}
	wg.Wait()

	return batches
}

// attribute completa o Input com os dados da linha e grava o resultado
func (n *Normalizer) attribute(row *domain.CanonicalRow, in *attributing.Input) {
	in.Name = row.Name
	in.Objective = row.Objective
	in.OptimizationGoal = row.OptimizationGoal
	in.Reach = row.Reach
	in.Impressions = row.Impressions
	in.Spend = row.Spend

	attribution := n.engine.Attribute(in)

	row.Conversions = attribution.Value
	row.ResultType = attribution.Label
	row.CostPerResult = attribution.CostPerResult
	row.PrimaryActionType = attribution.ActionType

	logrus.WithFields(logrus.Fields{
		"row_id":      row.ID,
		"row_name":    row.Name,
		"rule":        attribution.Rule,
		"action_type": attribution.ActionType,
		"value":       attribution.Value,
	}).Trace("normalizing: result attributed")
}

// MergeBatches junta lotes de arquivos diferentes. A moeda do primeiro lote
// com linhas prevalece e ids repetidos entre arquivos são numerados.
func MergeBatches(batches []domain.NormalizedBatch, defaultCurrency string) domain.NormalizedBatch {
	merged := domain.NormalizedBatch{Rows: make([]*domain.CanonicalRow, 0), Currency: defaultCurrency, Platform: domain.PlatformUnknown}

	currencySet := false
	for _, batch := range batches {
		merged.Rows = append(merged.Rows, batch.Rows...)
		if !currencySet && len(batch.Rows) > 0 {
			merged.Currency = batch.Currency
			merged.Platform = batch.Platform
			currencySet = true
		}
	}
	uniqueRowIDs(merged.Rows)

	return merged
}

// DefaultCurrency é a moeda usada quando nem o arquivo nem o projeto informam uma
func (n *Normalizer) DefaultCurrency() string {
	return n.defaultCurrency
}
