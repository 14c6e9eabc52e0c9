package reporting

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-report-api/infrastructure/export"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-report-api/infrastructure/repository"
	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/attributing"
	"github.com/vfg2006/ad-report-api/internal/usecases/normalizing"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_report_service.go -package=mocks

type ReportService interface {
	CreateProject(ctx context.Context, request *domain.CreateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	Import(ctx context.Context, projectID string, tables []normalizing.Table) (*domain.SyncResult, error)
	Sync(ctx context.Context, projectID string, request domain.SyncRequest) (*domain.SyncResult, error)
	ListRows(ctx context.Context, projectID string, filters domain.RowFilters) (*domain.RowTable, error)
	OverrideResult(ctx context.Context, projectID, rowID, resultType string) (*domain.CanonicalRow, error)
	Demographics(ctx context.Context, projectID string, level domain.Level) (*domain.DemographicReport, error)
	Export(ctx context.Context, projectID string, reportTypes []string, w io.Writer) error
	ListAdAccounts(ctx context.Context) ([]metadomain.AdAccount, error)
}

type Service struct {
	repository repository.ProjectRepository
	integrator meta.Integrator
	normalizer *normalizing.Normalizer
	writer     export.WorkbookWriter
	now        func() time.Time
}

func NewService(
	projectRepository repository.ProjectRepository,
	integrator meta.Integrator,
	normalizer *normalizing.Normalizer,
	writer export.WorkbookWriter,
) *Service {
	return &Service{
		repository: projectRepository,
		integrator: integrator,
		normalizer: normalizer,
		writer:     writer,
		now:        time.Now,
	}
}

func (s *Service) CreateProject(ctx context.Context, request *domain.CreateProjectRequest) (*domain.Project, error) {
	if request == nil || strings.TrimSpace(request.Name) == "" {
		return nil, NewReportingError(ErrProjectNameRequired, apiErrors.ErrMissingRequiredData, "Nome do projeto é obrigatório")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewReportingError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador do projeto")
	}

	currency := strings.ToUpper(strings.TrimSpace(request.Currency))
	if currency == "" {
		currency = s.normalizer.DefaultCurrency()
	}

	now := s.now().UTC()
	project := &domain.Project{
		ID:              id,
		Name:            strings.TrimSpace(request.Name),
		Currency:        currency,
		MetaAccountID:   strings.TrimSpace(request.MetaAccountID),
		MetaAccountName: request.MetaAccountName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repository.CreateProject(ctx, project); err != nil {
		return nil, databaseError(err, id, "Falha ao criar projeto")
	}

	logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
		"currency":   project.Currency,
	}).Info("reporting: project created")

	return project, nil
}

func (s *Service) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if projectID == "" {
		return nil, NewReportingError(ErrProjectIDRequired, apiErrors.ErrMissingRequiredData, "ID do projeto é obrigatório")
	}

	project, err := s.repository.GetProject(ctx, projectID)
	if err != nil {
		return nil, databaseError(err, projectID, "Falha ao buscar projeto")
	}
	if project == nil {
		return nil, NewReportingErrorWithID(ErrProjectNotFound, apiErrors.ErrNotFound, projectID, "Projeto não encontrado")
	}

	return project, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.repository.ListProjects(ctx)
	if err != nil {
		return nil, databaseError(err, "", "Falha ao listar projetos")
	}
	return projects, nil
}

// Import normaliza os arquivos enviados e substitui as linhas do projeto.
// Escolhas manuais gravadas antes são reaplicadas sobre as linhas novas.
func (s *Service) Import(ctx context.Context, projectID string, tables []normalizing.Table) (*domain.SyncResult, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	batch := normalizing.MergeBatches(s.normalizer.NormalizeTables(tables), project.Currency)
	if len(batch.Rows) == 0 {
		return nil, NewReportingErrorWithID(ErrEmptyImport, apiErrors.ErrInvalidFormat, projectID, "Nenhuma linha encontrada nos arquivos")
	}

	return s.store(ctx, project, uuid.NewString(), s.nextGeneration(project), batch)
}

// Sync busca a conta na Meta e substitui as linhas do projeto. A geração é
// reservada antes da busca: se outra sincronização começar depois e terminar
// antes, esta é descartada ao gravar.
func (s *Service) Sync(ctx context.Context, projectID string, request domain.SyncRequest) (*domain.SyncResult, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	accountID := firstNonEmpty(request.AccountID, project.MetaAccountID)
	if accountID == "" {
		return nil, NewReportingErrorWithID(ErrMetaAccountRequired, apiErrors.ErrMissingRequiredData, projectID, "Projeto sem conta de anúncios vinculada")
	}
	currency := strings.ToUpper(firstNonEmpty(request.Currency, project.Currency, s.normalizer.DefaultCurrency()))

	syncID := uuid.NewString()
	generation := s.nextGeneration(project)

	logger := logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"account_id": accountID,
		"sync_id":    syncID,
		"generation": generation,
	})
	logger.Info("reporting: sync started")

	snapshot, err := s.integrator.FetchAccountSnapshot(ctx, accountID, request.StartDate, request.EndDate)
	if err != nil {
		logger.WithError(err).Error("reporting: failed to fetch account snapshot")
		if errors.Is(err, metaclient.ErrAuthExpired) {
			return nil, NewReportingErrorWithID(ErrMetaAuthExpired, apiErrors.ErrExpiredToken, projectID, "Token de acesso da Meta expirado ou inválido")
		}
		return nil, NewReportingErrorWithID(ErrMetaIntegration, apiErrors.ErrExternalService, projectID, err.Error())
	}

	rows := s.normalizer.NormalizeSnapshot(snapshot, currency, s.now())
	batch := domain.NormalizedBatch{Rows: rows, Currency: currency, Platform: domain.PlatformMeta}

	return s.store(ctx, project, syncID, generation, batch)
}

func (s *Service) store(ctx context.Context, project *domain.Project, syncID string, generation int64, batch domain.NormalizedBatch) (*domain.SyncResult, error) {
	s.applyOverrides(ctx, project.ID, batch.Rows)

	applied, err := s.repository.ReplaceRows(ctx, project.ID, generation, batch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewReportingErrorWithID(ErrProjectNotFound, apiErrors.ErrNotFound, project.ID, "Projeto não encontrado")
		}
		return nil, databaseError(err, project.ID, "Falha ao gravar linhas do projeto")
	}

	logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
		"sync_id":    syncID,
		"generation": generation,
		"rows":       len(batch.Rows),
		"applied":    applied,
	}).Info("reporting: rows stored")

	return &domain.SyncResult{
		SyncID:     syncID,
		Generation: generation,
		Applied:    applied,
		Platform:   batch.Platform,
		Currency:   batch.Currency,
		Rows:       len(batch.Rows),
	}, nil
}

// nextGeneration usa o relógio, mas nunca volta atrás em relação à geração
// já gravada no projeto
func (s *Service) nextGeneration(project *domain.Project) int64 {
	return max(s.now().UnixNano(), project.SyncGeneration+1)
}

// applyOverrides reaplica as escolhas manuais. Os ids das linhas são
// determinísticos, então a mesma entidade recebe o mesmo id a cada carga.
func (s *Service) applyOverrides(ctx context.Context, projectID string, rows []*domain.CanonicalRow) {
	overrides, err := s.repository.ListOverrides(ctx, projectID)
	if err != nil {
		logrus.WithError(err).WithField("project_id", projectID).Warn("reporting: failed to load result overrides")
		return
	}
	if len(overrides) == 0 {
		return
	}

	for _, row := range rows {
		target, ok := overrides[row.ID]
		if !ok {
			continue
		}
		if err := attributing.Override(row, target); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"project_id":  projectID,
				"row_id":      row.ID,
				"result_type": target,
			}).Warn("reporting: stored override ignored")
		}
	}
}

func (s *Service) ListRows(ctx context.Context, projectID string, filters domain.RowFilters) (*domain.RowTable, error) {
	rows, err := s.projectRows(ctx, projectID)
	if err != nil {
		return nil, err
	}

	filtered := normalizing.FilterRows(rows, filters)

	return &domain.RowTable{
		Rows:   filtered,
		Totals: normalizing.ComputeTotals(filtered),
	}, nil
}

func (s *Service) projectRows(ctx context.Context, projectID string) ([]*domain.CanonicalRow, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	rows, err := s.repository.ListRows(ctx, projectID)
	if err != nil {
		return nil, databaseError(err, projectID, "Falha ao listar linhas do projeto")
	}

	return rows, nil
}

// OverrideResult troca o tipo de resultado de uma linha e guarda a escolha
// para as próximas cargas
func (s *Service) OverrideResult(ctx context.Context, projectID, rowID, resultType string) (*domain.CanonicalRow, error) {
	category, ok := attributing.FindResultCategory(resultType)
	if !ok {
		return nil, NewReportingErrorWithID(attributing.ErrUnknownResultCategory, apiErrors.ErrInvalidRequest, projectID, "Tipo de resultado desconhecido: "+resultType)
	}

	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	row, err := s.repository.GetRow(ctx, projectID, rowID)
	if err != nil {
		return nil, databaseError(err, projectID, "Falha ao buscar linha")
	}
	if row == nil {
		return nil, NewReportingErrorWithID(ErrRowNotFound, apiErrors.ErrNotFound, projectID, "Linha não encontrada: "+rowID)
	}

	if err := attributing.Override(row, category.ActionType); err != nil {
		return nil, NewReportingErrorWithID(err, apiErrors.ErrInvalidRequest, projectID, resultType)
	}

	if err := s.repository.UpdateRow(ctx, projectID, row); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewReportingErrorWithID(ErrRowNotFound, apiErrors.ErrNotFound, projectID, "Linha não encontrada: "+rowID)
		}
		return nil, databaseError(err, projectID, "Falha ao atualizar linha")
	}

	if err := s.repository.SaveOverride(ctx, projectID, rowID, category.ActionType); err != nil {
		return nil, databaseError(err, projectID, "Falha ao gravar escolha manual")
	}

	logrus.WithFields(logrus.Fields{
		"project_id":  projectID,
		"row_id":      rowID,
		"result_type": category.ActionType,
		"conversions": row.Conversions,
	}).Info("reporting: result overridden")

	return row, nil
}

func (s *Service) Demographics(ctx context.Context, projectID string, level domain.Level) (*domain.DemographicReport, error) {
	if !level.IsDemographic() {
		return nil, NewReportingErrorWithID(ErrInvalidDemographic, apiErrors.ErrInvalidRequest, projectID, string(level))
	}

	rows, err := s.projectRows(ctx, projectID)
	if err != nil {
		return nil, err
	}

	report := normalizing.AggregateDemographics(rows, level)
	return &report, nil
}

// Export monta uma aba por tipo de relatório pedido; sem tipos, exporta todos
func (s *Service) Export(ctx context.Context, projectID string, reportTypes []string, w io.Writer) error {
	types, err := resolveReportTypes(reportTypes)
	if err != nil {
		return NewReportingErrorWithID(err, apiErrors.ErrInvalidRequest, projectID, strings.Join(reportTypes, ","))
	}

	rows, err := s.projectRows(ctx, projectID)
	if err != nil {
		return err
	}

	sheets := make([]export.Sheet, 0, len(types))
	for _, reportType := range types {
		sheets = append(sheets, buildSheet(reportType, rows))
	}

	if err := s.writer.Write(w, sheets); err != nil {
		logrus.WithError(err).WithField("project_id", projectID).Error("reporting: failed to write workbook")
		return NewReportingErrorWithID(ErrExport, apiErrors.ErrInternalServer, projectID, "Falha ao gerar planilha")
	}

	return nil
}

// ListAdAccounts lista as contas visíveis pelo token, para vincular a um projeto
func (s *Service) ListAdAccounts(ctx context.Context) ([]metadomain.AdAccount, error) {
	accounts, err := s.integrator.GetAdAccounts(ctx)
	if err != nil {
		if errors.Is(err, metaclient.ErrAuthExpired) {
			return nil, NewReportingError(ErrMetaAuthExpired, apiErrors.ErrExpiredToken, "Token de acesso da Meta expirado ou inválido")
		}
		return nil, NewReportingError(ErrMetaIntegration, apiErrors.ErrExternalService, err.Error())
	}
	return accounts, nil
}

func resolveReportTypes(ids []string) ([]ReportType, error) {
	if len(ids) == 0 {
		return ReportTypes, nil
	}

	types := make([]ReportType, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		reportType, ok := FindReportType(id)
		if !ok {
			return nil, ErrInvalidReportType
		}
		types = append(types, reportType)
	}

	if len(types) == 0 {
		return ReportTypes, nil
	}
	return types, nil
}

func buildSheet(reportType ReportType, rows []*domain.CanonicalRow) export.Sheet {
	sheet := export.Sheet{Name: reportType.Label}

	if reportType.IsDemographic() {
		sheet.Headers = append(sheet.Headers, reportType.Label)
		for _, c := range demographicColumns {
			sheet.Headers = append(sheet.Headers, c.Label)
		}

		report := normalizing.AggregateDemographics(rows, reportType.Level)
		for _, group := range append(report.Rows, report.Total) {
			values := []any{group.Name}
			for _, c := range demographicColumns {
				values = append(values, cellValue(c.value(group)))
			}
			sheet.Rows = append(sheet.Rows, values)
		}
		return sheet
	}

	selected := make([]Column, 0, len(reportType.Columns))
	for _, id := range reportType.Columns {
		if c, ok := columnsByID[id]; ok {
			selected = append(selected, c)
			sheet.Headers = append(sheet.Headers, c.Label)
		}
	}

	for _, row := range normalizing.FilterRows(rows, domain.RowFilters{Tab: reportType.Tab}) {
		values := make([]any, 0, len(selected))
		for _, c := range selected {
			values = append(values, cellValue(c.value(row)))
		}
		sheet.Rows = append(sheet.Rows, values)
	}

	return sheet
}

// cellValue arredonda números para duas casas na planilha; o JSON mantém a precisão
func cellValue(value any) any {
	if f, ok := value.(float64); ok {
		return utils.RoundWithTwoDecimalPlace(f)
	}
	return value
}

func databaseError(err error, projectID, details string) *ReportingError {
	logrus.WithError(errors.Wrap(err, details)).WithField("project_id", projectID).Error("reporting: database operation failed")
	return NewReportingErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, projectID, details)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
