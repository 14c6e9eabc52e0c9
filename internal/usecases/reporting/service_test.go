package reporting

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-report-api/infrastructure/export"
	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/metaclient"
	metamocks "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ad-report-api/infrastructure/repository"
	"github.com/vfg2006/ad-report-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-report-api/internal/config"
	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/attributing"
	"github.com/vfg2006/ad-report-api/internal/usecases/normalizing"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type serviceFixture struct {
	service    *Service
	repository *mocks.MockProjectRepository
	integrator *metamocks.MockIntegrator
}

func newServiceFixture(t *testing.T) serviceFixture {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockProjectRepository(ctrl)
	integrator := metamocks.NewMockIntegrator(ctrl)

	service := NewService(repo, integrator, normalizing.NewNormalizer(&config.Config{}, nil), export.NewXLSXWriter())
	service.now = func() time.Time { return fixedNow }

	return serviceFixture{service: service, repository: repo, integrator: integrator}
}

func testProject() *domain.Project {
	return &domain.Project{ID: "p1", Name: "Loja", Currency: "TWD", MetaAccountID: "act_1"}
}

func requireReportingError(t *testing.T, err error, target error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, target)

	var reportingErr *ReportingError
	require.ErrorAs(t, err, &reportingErr)
	assert.Equal(t, code, reportingErr.Code)
}

const importCSV = "Campaign Name,Impressions,Clicks (All),Link Clicks,Amount Spent (TWD),Results,成果指標\n" +
	"Promo,1000,50,40,500,5,purchase\n" +
	"Marca,2000,20,10,200,0,\n"

const reorderedImportCSV = "Campaign Name,Impressions,Clicks (All),Link Clicks,Amount Spent (TWD),Results,成果指標\n" +
	"Nova,300,3,2,30,0,\n" +
	"Marca,2000,20,10,200,0,\n" +
	"Promo,1000,50,40,500,5,purchase\n"

// rowIDByName normaliza o CSV como a importação faz e devolve o id da linha
func rowIDByName(t *testing.T, content, name string) string {
	t.Helper()
	normalizer := normalizing.NewNormalizer(&config.Config{}, nil)
	batch := normalizer.NormalizeTable(normalizing.ReadTable(strings.NewReader(content)))
	for _, row := range batch.Rows {
		if row.Name == name {
			return row.ID
		}
	}
	t.Fatalf("linha %q não encontrada", name)
	return ""
}

func TestService_CreateProject(t *testing.T) {
	t.Run("Nome vazio é rejeitado", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.CreateProject(context.Background(), &domain.CreateProjectRequest{Name: "  "})

		requireReportingError(t, err, ErrProjectNameRequired, apiErrors.ErrMissingRequiredData)
	})

	t.Run("Moeda padrão quando não informada", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().CreateProject(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, project *domain.Project) error {
				assert.Len(t, project.ID, 6)
				assert.Equal(t, "Loja", project.Name)
				assert.Equal(t, "TWD", project.Currency)
				assert.Equal(t, fixedNow, project.CreatedAt)
				return nil
			})

		project, err := f.service.CreateProject(context.Background(), &domain.CreateProjectRequest{Name: " Loja ", MetaAccountID: "act_1"})

		require.NoError(t, err)
		assert.Equal(t, "act_1", project.MetaAccountID)
	})

	t.Run("Falha no banco vira erro de banco", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().CreateProject(gomock.Any(), gomock.Any()).Return(fmt.Errorf("conexão perdida"))

		_, err := f.service.CreateProject(context.Background(), &domain.CreateProjectRequest{Name: "Loja", Currency: "usd"})

		requireReportingError(t, err, ErrDatabaseOperation, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_GetProject(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GetProject(context.Background(), "")
	requireReportingError(t, err, ErrProjectIDRequired, apiErrors.ErrMissingRequiredData)

	f.repository.EXPECT().GetProject(gomock.Any(), "nope").Return(nil, nil)

	_, err = f.service.GetProject(context.Background(), "nope")
	requireReportingError(t, err, ErrProjectNotFound, apiErrors.ErrNotFound)
}

func TestService_Import(t *testing.T) {
	t.Run("Reaplica escolhas manuais gravadas", func(t *testing.T) {
		f := newServiceFixture(t)

		promoID := rowIDByName(t, importCSV, "Promo")

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().ListOverrides(gomock.Any(), "p1").Return(map[string]string{
			promoID: attributing.ActionLinkClick,
		}, nil)
		f.repository.EXPECT().ReplaceRows(gomock.Any(), "p1", fixedNow.UnixNano(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, batch domain.NormalizedBatch) (bool, error) {
				require.Len(t, batch.Rows, 2)
				assert.Equal(t, domain.PlatformMeta, batch.Platform)

				overridden := batch.Rows[0]
				assert.Equal(t, promoID, overridden.ID)
				assert.Equal(t, attributing.ActionLinkClick, overridden.ResultOverride)
				assert.Equal(t, 40.0, overridden.Conversions)
				assert.InDelta(t, 12.5, overridden.CostPerResult, 1e-9)

				assert.Empty(t, batch.Rows[1].ResultOverride)
				return true, nil
			})

		table := normalizing.ReadTable(strings.NewReader(importCSV))
		result, err := f.service.Import(context.Background(), "p1", []normalizing.Table{table})

		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, 2, result.Rows)
		assert.Equal(t, "TWD", result.Currency)
		assert.NotEmpty(t, result.SyncID)
	})

	t.Run("Escolha manual segue a entidade quando o arquivo muda de ordem", func(t *testing.T) {
		f := newServiceFixture(t)

		promoID := rowIDByName(t, importCSV, "Promo")

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().ListOverrides(gomock.Any(), "p1").Return(map[string]string{
			promoID: attributing.ActionLinkClick,
		}, nil)
		f.repository.EXPECT().ReplaceRows(gomock.Any(), "p1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, batch domain.NormalizedBatch) (bool, error) {
				require.Len(t, batch.Rows, 3)
				for _, row := range batch.Rows {
					if row.Name == "Promo" {
						assert.Equal(t, promoID, row.ID)
						assert.Equal(t, attributing.ActionLinkClick, row.ResultOverride)
						assert.Equal(t, 40.0, row.Conversions)
						continue
					}
					assert.Empty(t, row.ResultOverride, row.Name)
				}
				return true, nil
			})

		table := normalizing.ReadTable(strings.NewReader(reorderedImportCSV))
		_, err := f.service.Import(context.Background(), "p1", []normalizing.Table{table})

		require.NoError(t, err)
	})

	t.Run("Geração nunca volta atrás", func(t *testing.T) {
		f := newServiceFixture(t)

		project := testProject()
		project.SyncGeneration = fixedNow.UnixNano() + 1000

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(project, nil)
		f.repository.EXPECT().ListOverrides(gomock.Any(), "p1").Return(nil, nil)
		f.repository.EXPECT().ReplaceRows(gomock.Any(), "p1", project.SyncGeneration+1, gomock.Any()).Return(true, nil)

		table := normalizing.ReadTable(strings.NewReader(importCSV))
		result, err := f.service.Import(context.Background(), "p1", []normalizing.Table{table})

		require.NoError(t, err)
		assert.Equal(t, project.SyncGeneration+1, result.Generation)
	})

	t.Run("Arquivo sem linhas é rejeitado", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)

		table := normalizing.ReadTable(strings.NewReader("Campaign Name,Impressions\n"))
		_, err := f.service.Import(context.Background(), "p1", []normalizing.Table{table})

		requireReportingError(t, err, ErrEmptyImport, apiErrors.ErrInvalidFormat)
	})

	t.Run("Projeto removido durante a gravação", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().ListOverrides(gomock.Any(), "p1").Return(nil, fmt.Errorf("timeout"))
		f.repository.EXPECT().ReplaceRows(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(false, repository.ErrNotFound)

		table := normalizing.ReadTable(strings.NewReader(importCSV))
		_, err := f.service.Import(context.Background(), "p1", []normalizing.Table{table})

		requireReportingError(t, err, ErrProjectNotFound, apiErrors.ErrNotFound)
	})
}

func syncSnapshot() *metadomain.AccountSnapshot {
	return &metadomain.AccountSnapshot{
		AccountID: "act_1",
		Campaigns: []metadomain.Campaign{{ID: "c1", Name: "Promo", EffectiveStatus: "ACTIVE"}},
		CampaignInsights: []metadomain.InsightItem{
			{CampaignID: "c1", CampaignName: "Promo", Impressions: "1000", Clicks: "10", Spend: "100"},
		},
	}
}

func TestService_Sync(t *testing.T) {
	t.Run("Grava o snapshot normalizado", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.integrator.EXPECT().FetchAccountSnapshot(gomock.Any(), "act_1", nil, nil).Return(syncSnapshot(), nil)
		f.repository.EXPECT().ListOverrides(gomock.Any(), "p1").Return(map[string]string{}, nil)
		f.repository.EXPECT().ReplaceRows(gomock.Any(), "p1", fixedNow.UnixNano(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ int64, batch domain.NormalizedBatch) (bool, error) {
				require.Len(t, batch.Rows, 1)
				assert.Equal(t, "meta-campaign-c1", batch.Rows[0].ID)
				assert.Equal(t, "USD", batch.Currency)
				return true, nil
			})

		result, err := f.service.Sync(context.Background(), "p1", domain.SyncRequest{Currency: "usd"})

		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, domain.PlatformMeta, result.Platform)
	})

	t.Run("Sincronização mais antiga é descartada", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.integrator.EXPECT().FetchAccountSnapshot(gomock.Any(), "act_9", gomock.Any(), gomock.Any()).Return(syncSnapshot(), nil)
		f.repository.EXPECT().ListOverrides(gomock.Any(), "p1").Return(nil, nil)
		f.repository.EXPECT().ReplaceRows(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(false, nil)

		result, err := f.service.Sync(context.Background(), "p1", domain.SyncRequest{AccountID: "act_9"})

		require.NoError(t, err)
		assert.False(t, result.Applied)
	})

	t.Run("Projeto sem conta vinculada", func(t *testing.T) {
		f := newServiceFixture(t)

		project := testProject()
		project.MetaAccountID = ""
		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(project, nil)

		_, err := f.service.Sync(context.Background(), "p1", domain.SyncRequest{})

		requireReportingError(t, err, ErrMetaAccountRequired, apiErrors.ErrMissingRequiredData)
	})

	t.Run("Token expirado", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.integrator.EXPECT().FetchAccountSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: session expired", metaclient.ErrAuthExpired))

		_, err := f.service.Sync(context.Background(), "p1", domain.SyncRequest{})

		requireReportingError(t, err, ErrMetaAuthExpired, apiErrors.ErrExpiredToken)
	})

	t.Run("Falha da Meta não grava nada", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.integrator.EXPECT().FetchAccountSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, metaclient.ErrRateLimited)

		_, err := f.service.Sync(context.Background(), "p1", domain.SyncRequest{})

		requireReportingError(t, err, ErrMetaIntegration, apiErrors.ErrExternalService)
	})
}

func storedRows() []*domain.CanonicalRow {
	return []*domain.CanonicalRow{
		{ID: "r1", Level: domain.LevelCampaign, Name: "Promo", Status: "進行中", Impressions: 1000, Clicks: 50, Spend: 500, LinkClicks: 40},
		{ID: "r2", Level: domain.LevelCampaign, Name: "Marca", Status: "已關閉", Impressions: 0, Spend: 0},
		{ID: "r3", Level: domain.LevelAd, Name: "Anúncio", CampaignName: "Promo", Impressions: 300, Clicks: 9, Spend: 90},
		{ID: "r4", Level: domain.LevelAge, Name: "18-24", CampaignName: "Promo", Impressions: 100, Clicks: 5, Spend: 50, Conversions: 1},
		{ID: "r5", Level: domain.LevelAge, Name: "18-24", CampaignName: "Marca", Impressions: 100, Clicks: 3, Spend: 30, Conversions: 1},
		{ID: "r6", Level: domain.LevelGender, Name: "女性", CampaignName: "Promo", Impressions: 200, Clicks: 8, Spend: 80},
	}
}

func TestService_ListRows(t *testing.T) {
	f := newServiceFixture(t)

	f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
	f.repository.EXPECT().ListRows(gomock.Any(), "p1").Return(storedRows(), nil)

	table, err := f.service.ListRows(context.Background(), "p1", domain.RowFilters{
		Tab:    string(domain.LevelCampaign),
		Status: domain.StatusFilterDelivered,
	})

	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "r1", table.Rows[0].ID)
	require.NotNil(t, table.Totals)
	assert.Equal(t, 1000.0, table.Totals.Impressions)
}

func TestService_OverrideResult(t *testing.T) {
	t.Run("Tipo desconhecido não consulta o banco", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.OverrideResult(context.Background(), "p1", "r1", "desconhecido")

		requireReportingError(t, err, attributing.ErrUnknownResultCategory, apiErrors.ErrInvalidRequest)
	})

	t.Run("Troca e grava a escolha", func(t *testing.T) {
		f := newServiceFixture(t)

		row := storedRows()[0]
		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().GetRow(gomock.Any(), "p1", "r1").Return(row, nil)
		f.repository.EXPECT().UpdateRow(gomock.Any(), "p1", row).Return(nil)
		f.repository.EXPECT().SaveOverride(gomock.Any(), "p1", "r1", attributing.ActionLinkClick).Return(nil)

		updated, err := f.service.OverrideResult(context.Background(), "p1", "r1", "連結點擊")

		require.NoError(t, err)
		assert.Equal(t, 40.0, updated.Conversions)
		assert.InDelta(t, 12.5, updated.CostPerResult, 1e-9)
		assert.Equal(t, "連結點擊", updated.ResultType)
	})

	t.Run("Linha inexistente", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().GetRow(gomock.Any(), "p1", "r9").Return(nil, nil)

		_, err := f.service.OverrideResult(context.Background(), "p1", "r9", attributing.ActionPurchase)

		requireReportingError(t, err, ErrRowNotFound, apiErrors.ErrNotFound)
	})
}

func TestService_Demographics(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Demographics(context.Background(), "p1", domain.LevelCampaign)
	requireReportingError(t, err, ErrInvalidDemographic, apiErrors.ErrInvalidRequest)

	f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
	f.repository.EXPECT().ListRows(gomock.Any(), "p1").Return(storedRows(), nil)

	report, err := f.service.Demographics(context.Background(), "p1", domain.LevelAge)

	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 200.0, report.Rows[0].Impressions)
	assert.Equal(t, 2.0, report.Rows[0].Conversions)
	assert.Equal(t, 200.0, report.Total.Impressions)
}

func TestService_Export(t *testing.T) {
	t.Run("Tipo de relatório inválido", func(t *testing.T) {
		f := newServiceFixture(t)

		err := f.service.Export(context.Background(), "p1", []string{"campaign", "nope"}, &bytes.Buffer{})

		requireReportingError(t, err, ErrInvalidReportType, apiErrors.ErrInvalidRequest)
	})

	t.Run("Gera uma aba por tipo pedido", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().ListRows(gomock.Any(), "p1").Return(storedRows(), nil)

		var buf bytes.Buffer
		err := f.service.Export(context.Background(), "p1", []string{"campaign", "age"}, &buf)
		require.NoError(t, err)

		file, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, []string{"廣告活動", "年齡"}, file.GetSheetList())

		campaignRows, err := file.GetRows("廣告活動")
		require.NoError(t, err)
		require.Len(t, campaignRows, 3)
		assert.Equal(t, "名稱", campaignRows[0][0])
		assert.Equal(t, "Marca", campaignRows[1][0])
		assert.Equal(t, "Promo", campaignRows[2][0])

		ageRows, err := file.GetRows("年齡")
		require.NoError(t, err)
		require.Len(t, ageRows, 3)
		assert.Equal(t, []string{"年齡", "點擊次數", "曝光次數"}, ageRows[0][:3])
		assert.Equal(t, "18-24", ageRows[1][0])
		assert.Equal(t, normalizing.TotalRowName, ageRows[2][0])
	})

	t.Run("Sem tipos exporta todas as abas", func(t *testing.T) {
		f := newServiceFixture(t)

		f.repository.EXPECT().GetProject(gomock.Any(), "p1").Return(testProject(), nil)
		f.repository.EXPECT().ListRows(gomock.Any(), "p1").Return(storedRows(), nil)

		var buf bytes.Buffer
		require.NoError(t, f.service.Export(context.Background(), "p1", nil, &buf))

		file, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer file.Close()

		assert.Len(t, file.GetSheetList(), len(ReportTypes))
	})
}

func TestService_ListAdAccounts(t *testing.T) {
	t.Run("Lista as contas do token", func(t *testing.T) {
		f := newServiceFixture(t)

		f.integrator.EXPECT().GetAdAccounts(gomock.Any()).Return([]metadomain.AdAccount{
			{ID: "act_1", AccountID: "1", Name: "Loja", Currency: "TWD"},
		}, nil)

		accounts, err := f.service.ListAdAccounts(context.Background())

		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "act_1", accounts[0].ID)
	})

	t.Run("Token expirado", func(t *testing.T) {
		f := newServiceFixture(t)

		f.integrator.EXPECT().GetAdAccounts(gomock.Any()).Return(nil, metaclient.ErrAuthExpired)

		_, err := f.service.ListAdAccounts(context.Background())

		requireReportingError(t, err, ErrMetaAuthExpired, apiErrors.ErrExpiredToken)
	})
}

func TestBuildSheet_ArredondaNumeros(t *testing.T) {
	reportType, ok := FindReportType("campaign")
	require.True(t, ok)

	rows := []*domain.CanonicalRow{{
		ID:           "r1",
		Level:        domain.LevelCampaign,
		Name:         "Promo",
		CampaignName: "Promo",
		Spend:        100,
		CTR:          100.0 / 3,
		CPC:          2.0 / 3,
	}}

	sheet := buildSheet(reportType, rows)

	require.Len(t, sheet.Rows, 1)
	for i, header := range sheet.Headers {
		switch header {
		case columnsByID["ctr"].Label:
			assert.Equal(t, 33.33, sheet.Rows[0][i])
		case columnsByID["cpc"].Label:
			assert.Equal(t, 0.67, sheet.Rows[0][i])
		case columnsByID["name"].Label:
			assert.Equal(t, "Promo", sheet.Rows[0][i])
		}
	}
}
