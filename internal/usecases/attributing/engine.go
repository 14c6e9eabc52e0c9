package attributing

import (
	"slices"
	"strings"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

// Input reúne os sinais disponíveis de uma linha para decidir qual é o
// resultado pretendido
type Input struct {
	Name             string
	Objective        string
	OptimizationGoal string

	// Indicator é o texto de "Result indicator" de uma exportação, se houver
	Indicator string
	// ReportedResults é a contagem de resultados informada pela exportação
	ReportedResults float64
	// ReportedCostPerResult é o custo por resultado informado pela exportação
	ReportedCostPerResult float64

	Actions        map[string]float64
	CostPerActions map[string]float64

	Reach       float64
	Impressions float64
	Spend       float64
}

// NewInput monta o Input a partir das listas cruas de ações
func NewInput(actions, costPerActions []domain.ActionValue) *Input {
	in := &Input{
		Actions:        make(map[string]float64, len(actions)),
		CostPerActions: make(map[string]float64, len(costPerActions)),
	}
	for _, a := range actions {
		in.Actions[a.ActionType] += a.Value
	}
	for _, a := range costPerActions {
		in.CostPerActions[a.ActionType] = a.Value
	}
	return in
}

// Result é o resultado atribuído: contagem, tipo de ação e rótulo exibido
type Result struct {
	Value      float64
	ActionType string
	Label      string
	// Rule é o nome da regra que decidiu, usado apenas em log
	Rule string
}

// Attribution é o Result com o custo por resultado já calculado
type Attribution struct {
	Result
	CostPerResult float64
}

// Rule é uma regra pura da cascata. Retorna false quando não se aplica.
type Rule struct {
	Name  string
	Apply func(in *Input) (Result, bool)
}

// DefaultRules é a cascata na ordem de prioridade
var DefaultRules = []Rule{
	{Name: "reach_goal", Apply: ReachGoalRule},
	{Name: "explicit_indicator", Apply: ExplicitIndicatorRule},
	{Name: "name_keyword", Apply: NameKeywordRule},
	{Name: "optimization_goal", Apply: OptimizationGoalRule},
	{Name: "objective_weighted", Apply: ObjectiveWeightedRule},
	{Name: "global_weighted", Apply: GlobalWeightedRule},
	{Name: "reported_results", Apply: ReportedResultsRule},
}

// Engine aplica as regras em ordem. Não possui estado e pode ser compartilhado.
type Engine struct {
	rules []Rule
}

func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Engine{rules: rules}
}

// Attribute nunca falha: sem nenhum sinal o resultado é {0, "成果"}
func (e *Engine) Attribute(in *Input) Attribution {
	if in == nil {
		in = &Input{}
	}

	result := Result{Label: GenericLabel, Rule: "none"}
	for _, rule := range e.rules {
		if r, ok := rule.Apply(in); ok {
			r.Rule = rule.Name
			result = r
			break
		}
	}

	if result.Value < 0 {
		result.Value = 0
	}
	if result.Label == "" {
		result.Label = GenericLabel
	}

	return Attribution{
		Result:        result,
		CostPerResult: CostPerResult(in, result),
	}
}

// CostPerResult usa o custo por ação da plataforma quando existe para o tipo
// atribuído; caso contrário, gasto / contagem
func CostPerResult(in *Input, result Result) float64 {
	if result.Value <= 0 {
		return 0
	}

	if result.ActionType != "" {
		if cost := in.CostPerActions[result.ActionType]; cost > 0 {
			return cost
		}
	}

	if (result.Rule == "explicit_indicator" || result.Rule == "reported_results") &&
		result.Value == in.ReportedResults && in.ReportedCostPerResult > 0 {
		return in.ReportedCostPerResult
	}

	return utils.SafeDivide(in.Spend, result.Value)
}

// ReachGoalRule trata metas de alcance/impressões, que não passam pelas ações
func ReachGoalRule(in *Input) (Result, bool) {
	switch normalizeGoal(in.OptimizationGoal) {
	case "REACH":
		return Result{Value: in.Reach, ActionType: ActionReach, Label: LabelFor(ActionReach)}, true
	case "IMPRESSIONS":
		return Result{Value: in.Impressions, ActionType: ActionImpressions, Label: LabelFor(ActionImpressions)}, true
	}
	return Result{}, false
}

// ExplicitIndicatorRule usa o indicador de resultado declarado pela exportação.
// Com contagem informada zerada, tenta a contagem da ação correspondente.
func ExplicitIndicatorRule(in *Input) (Result, bool) {
	raw := strings.TrimSpace(in.Indicator)
	if raw == "" {
		return Result{}, false
	}

	normalized := normalizeIndicator(raw)
	actionType, known := indicatorActions[normalized]
	if !known {
		if _, labeled := actionLabels[normalized]; labeled {
			actionType, known = normalized, true
		}
	}

	if !known {
		return Result{Value: in.ReportedResults, Label: raw}, true
	}

	value := in.ReportedResults
	if value <= 0 {
		value = indicatorBackfill(in, actionType)
	}

	return Result{Value: value, ActionType: actionType, Label: LabelFor(actionType)}, true
}

func indicatorBackfill(in *Input, actionType string) float64 {
	switch actionType {
	case ActionReach:
		return in.Reach
	case ActionImpressions:
		return in.Impressions
	}

	if v := in.Actions[actionType]; v > 0 {
		return v
	}

	// o indicador pode vir com um tipo da mesma família (pixel x omni)
	for _, family := range nameKeywords {
		if !slices.Contains(family.actions, actionType) {
			continue
		}
		if v, _ := firstNonZero(in, family.actions); v > 0 {
			return v
		}
	}

	return 0
}

// ReportedResultsRule aceita a contagem de "Results" da exportação quando
// nenhuma ação da linha decidiu o resultado. O tipo é inferido quando a
// contagem coincide com a de uma ação conhecida.
func ReportedResultsRule(in *Input) (Result, bool) {
	if in.ReportedResults <= 0 {
		return Result{}, false
	}

	var (
		matched    string
		bestWeight float64
	)
	for _, actionType := range utils.SortedKeys(in.Actions) {
		if in.Actions[actionType] != in.ReportedResults {
			continue
		}
		if _, labeled := actionLabels[actionType]; !labeled {
			continue
		}
		if weight := weightOf(actionType); matched == "" || weight > bestWeight {
			matched, bestWeight = actionType, weight
		}
	}

	if matched == "" {
		return Result{Value: in.ReportedResults, Label: GenericLabel}, true
	}
	return Result{Value: in.ReportedResults, ActionType: matched, Label: LabelFor(matched)}, true
}

// NameKeywordRule usa palavras do nome da entidade. Uma ação que casa com a
// palavra e com a meta de otimização tem preferência.
func NameKeywordRule(in *Input) (Result, bool) {
	name := strings.ToLower(in.Name)
	if name == "" {
		return Result{}, false
	}

	goalAccepted := goalActions[normalizeGoal(in.OptimizationGoal)]

	for _, group := range nameKeywords {
		if !containsAny(name, group.keywords) {
			continue
		}

		var both []string
		for _, action := range group.actions {
			if slices.Contains(goalAccepted, action) {
				both = append(both, action)
			}
		}
		if actionType, value := highestCount(in, both); value > 0 {
			return Result{Value: value, ActionType: actionType, Label: LabelFor(actionType)}, true
		}

		if actionType, value := highestCount(in, group.actions); value > 0 {
			return Result{Value: value, ActionType: actionType, Label: LabelFor(actionType)}, true
		}
	}

	return Result{}, false
}

// OptimizationGoalRule retorna a primeira ação aceita pela meta com contagem
func OptimizationGoalRule(in *Input) (Result, bool) {
	accepted, ok := goalActions[normalizeGoal(in.OptimizationGoal)]
	if !ok {
		return Result{}, false
	}

	value, actionType := firstNonZero(in, accepted)
	if value <= 0 {
		return Result{}, false
	}

	return Result{Value: value, ActionType: actionType, Label: LabelFor(actionType)}, true
}

// ObjectiveWeightedRule escolhe, para objetivos de engajamento, a ação de
// maior contagem x peso entre as candidatas de engajamento
func ObjectiveWeightedRule(in *Input) (Result, bool) {
	if _, ok := engagementObjectives[strings.ToUpper(strings.TrimSpace(in.Objective))]; !ok {
		return Result{}, false
	}
	return weightedPick(in, engagementCandidates)
}

// GlobalWeightedRule considera todas as ações presentes na linha
func GlobalWeightedRule(in *Input) (Result, bool) {
	return weightedPick(in, utils.SortedKeys(in.Actions))
}

func weightedPick(in *Input, candidates []string) (Result, bool) {
	var (
		best      string
		bestScore float64
	)

	for _, actionType := range candidates {
		count := in.Actions[actionType]
		if count <= 0 {
			continue
		}
		if score := count * weightOf(actionType); score > bestScore {
			best, bestScore = actionType, score
		}
	}

	if best == "" {
		return Result{}, false
	}

	return Result{Value: in.Actions[best], ActionType: best, Label: LabelFor(best)}, true
}

func firstNonZero(in *Input, actionTypes []string) (float64, string) {
	for _, actionType := range actionTypes {
		if v := in.Actions[actionType]; v > 0 {
			return v, actionType
		}
	}
	return 0, ""
}

// highestCount desempata pela ordem da lista
func highestCount(in *Input, actionTypes []string) (string, float64) {
	var (
		best  string
		value float64
	)
	for _, actionType := range actionTypes {
		if v := in.Actions[actionType]; v > value {
			best, value = actionType, v
		}
	}
	return best, value
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
