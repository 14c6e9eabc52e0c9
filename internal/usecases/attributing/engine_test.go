package attributing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-report-api/internal/domain"
)

func TestEngine_Attribute(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name         string
		input        *Input
		wantValue    float64
		wantAction   string
		wantLabel    string
		wantCost     float64
		wantRuleName string
	}{
		{
			name: "Indicador explícito vence contagem maior de cliques",
			input: &Input{
				Indicator:       "actions:offsite_conversion.fb_pixel_purchase",
				ReportedResults: 5,
				Spend:           500,
				Actions:         map[string]float64{ActionLinkClick: 400},
			},
			wantValue:    5,
			wantAction:   ActionPixelPurchase,
			wantLabel:    "網站購買",
			wantCost:     100,
			wantRuleName: "explicit_indicator",
		},
		{
			name: "Indicador com resultado zerado busca a contagem da ação",
			input: &Input{
				Indicator: "offsite_conversion.fb_pixel_purchase",
				Spend:     300,
				Actions:   map[string]float64{ActionPixelPurchase: 3},
			},
			wantValue:    3,
			wantAction:   ActionPixelPurchase,
			wantLabel:    "網站購買",
			wantCost:     100,
			wantRuleName: "explicit_indicator",
		},
		{
			name: "Indicador desconhecido vira o próprio rótulo",
			input: &Input{
				Indicator:       "actions:profile_visit_view",
				ReportedResults: 20,
				Spend:           100,
			},
			wantValue:    20,
			wantLabel:    "actions:profile_visit_view",
			wantCost:     5,
			wantRuleName: "explicit_indicator",
		},
		{
			name: "Palavra no nome e meta de otimização concordam em ThruPlay",
			input: &Input{
				Name:             "影片_觀看_0901",
				OptimizationGoal: "THRUPLAY",
				Spend:            200,
				Actions: map[string]float64{
					ActionThruPlay:  40,
					ActionLinkClick: 200,
				},
			},
			wantValue:    40,
			wantAction:   ActionThruPlay,
			wantLabel:    "ThruPlay 次數",
			wantCost:     5,
			wantRuleName: "name_keyword",
		},
		{
			name: "Palavra no nome sem meta usa a ação de maior contagem do grupo",
			input: &Input{
				Name:  "Messenger 私訊 廣告",
				Spend: 90,
				Actions: map[string]float64{
					ActionMessagingStarted:    9,
					ActionMessagingConnection: 4,
					ActionLinkClick:           80,
				},
			},
			wantValue:    9,
			wantAction:   ActionMessagingStarted,
			wantLabel:    "開始訊息對話",
			wantCost:     10,
			wantRuleName: "name_keyword",
		},
		{
			name: "Meta de otimização com ação zerada cai para a seguinte",
			input: &Input{
				OptimizationGoal: "landing page views",
				Spend:            50,
				Actions: map[string]float64{
					ActionLandingPageView:     0,
					ActionOmniLandingPageView: 25,
				},
			},
			wantValue:    25,
			wantAction:   ActionOmniLandingPageView,
			wantLabel:    "連結頁面瀏覽",
			wantCost:     2,
			wantRuleName: "optimization_goal",
		},
		{
			name: "Custo por ação da plataforma tem prioridade",
			input: &Input{
				OptimizationGoal: "LINK_CLICKS",
				Spend:            100,
				Actions:          map[string]float64{ActionLinkClick: 30},
				CostPerActions:   map[string]float64{ActionLinkClick: 3.5},
			},
			wantValue:    30,
			wantAction:   ActionLinkClick,
			wantLabel:    "連結點擊",
			wantCost:     3.5,
			wantRuleName: "optimization_goal",
		},
		{
			name: "Objetivo de engajamento pondera as candidatas",
			input: &Input{
				Objective: "OUTCOME_ENGAGEMENT",
				Spend:     60,
				Actions: map[string]float64{
					ActionPostEngagement:   500,
					ActionMessagingStarted: 6,
				},
			},
			wantValue:    6,
			wantAction:   ActionMessagingStarted,
			wantLabel:    "開始訊息對話",
			wantCost:     10,
			wantRuleName: "objective_weighted",
		},
		{
			name: "Sem meta nem objetivo, compra pesa mais que cliques",
			input: &Input{
				Spend: 1000,
				Actions: map[string]float64{
					ActionLinkClick: 900,
					ActionPurchase:  4,
				},
			},
			wantValue:    4,
			wantAction:   ActionPurchase,
			wantLabel:    "網站購買",
			wantCost:     250,
			wantRuleName: "global_weighted",
		},
		{
			name: "Meta de alcance ignora as ações",
			input: &Input{
				OptimizationGoal: "REACH",
				Reach:            12000,
				Spend:            120,
				Actions:          map[string]float64{ActionLinkClick: 50},
			},
			wantValue:    12000,
			wantAction:   ActionReach,
			wantLabel:    "觸及人數",
			wantCost:     0.01,
			wantRuleName: "reach_goal",
		},
		{
			name: "Results da exportação sem indicador",
			input: &Input{
				ReportedResults:       8,
				ReportedCostPerResult: 12.5,
				Spend:                 100,
			},
			wantValue:    8,
			wantLabel:    GenericLabel,
			wantCost:     12.5,
			wantRuleName: "reported_results",
		},
		{
			name: "Results da exportação não passa na frente da palavra no nome",
			input: &Input{
				Name:             "影片 受眾A",
				OptimizationGoal: "THRUPLAY",
				ReportedResults:  10,
				Spend:            200,
				Actions: map[string]float64{
					ActionThruPlay:  40,
					ActionLinkClick: 200,
				},
			},
			wantValue:    40,
			wantAction:   ActionThruPlay,
			wantLabel:    "ThruPlay 次數",
			wantCost:     5,
			wantRuleName: "name_keyword",
		},
		{
			name:         "Sem nenhum sinal retorna resultado genérico",
			input:        &Input{Spend: 100},
			wantValue:    0,
			wantLabel:    GenericLabel,
			wantCost:     0,
			wantRuleName: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Attribute(tt.input)

			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantAction, got.ActionType)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantCost, got.CostPerResult, 1e-9)
			assert.Equal(t, tt.wantRuleName, got.Rule)
		})
	}
}

func TestEngine_AttributeNilInput(t *testing.T) {
	got := NewEngine().Attribute(nil)

	assert.Zero(t, got.Value)
	assert.Zero(t, got.CostPerResult)
	assert.Equal(t, GenericLabel, got.Label)
}

func TestEngine_CustomRules(t *testing.T) {
	engine := NewEngine(Rule{Name: "global_weighted", Apply: GlobalWeightedRule})

	got := engine.Attribute(&Input{
		Indicator:       "purchase",
		ReportedResults: 2,
		Actions:         map[string]float64{ActionLinkClick: 10},
	})

	require.Equal(t, ActionLinkClick, got.ActionType)
	assert.Equal(t, float64(10), got.Value)
}

func TestReportedResultsRule(t *testing.T) {
	tests := []struct {
		name       string
		input      *Input
		wantOK     bool
		wantAction string
		wantLabel  string
	}{
		{
			name:   "Sem Results não se aplica",
			input:  &Input{Actions: map[string]float64{ActionLinkClick: 10}},
			wantOK: false,
		},
		{
			name:       "Contagem igual à de uma ação conhecida herda o tipo",
			input:      &Input{ReportedResults: 7, Actions: map[string]float64{ActionLead: 7, ActionLinkClick: 90}},
			wantOK:     true,
			wantAction: ActionLead,
			wantLabel:  LabelFor(ActionLead),
		},
		{
			name:      "Contagem sem ação correspondente fica genérica",
			input:     &Input{ReportedResults: 3, Actions: map[string]float64{ActionLinkClick: 90}},
			wantOK:    true,
			wantLabel: GenericLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReportedResultsRule(tt.input)

			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.input.ReportedResults, got.Value)
			assert.Equal(t, tt.wantAction, got.ActionType)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestNewInput_SumsDuplicatedActions(t *testing.T) {
	in := NewInput(nil, nil)
	assert.Empty(t, in.Actions)

	in = NewInput(
		[]domain.ActionValue{{ActionType: ActionLinkClick, Value: 3}, {ActionType: ActionLinkClick, Value: 2}},
		[]domain.ActionValue{{ActionType: ActionLinkClick, Value: 1.5}},
	)
	assert.Equal(t, float64(5), in.Actions[ActionLinkClick])
	assert.Equal(t, 1.5, in.CostPerActions[ActionLinkClick])
}
