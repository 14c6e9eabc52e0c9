package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-report-api/internal/config"
	"github.com/vfg2006/ad-report-api/internal/domain"
)

//go:generate mockgen -source=project_sync.go -destination=mocks/mock_project_syncer.go -package=mocks

// ProjectSyncer é a parte do serviço de relatórios usada pelo agendador
type ProjectSyncer interface {
	Sync(ctx context.Context, projectID string, request domain.SyncRequest) (*domain.SyncResult, error)
}

// ProjectSyncConfig representa a configuração do agendador de sincronização
type ProjectSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
	Accounts     []config.SyncAccount
}

// ProjectSyncService sincroniza periodicamente as contas Meta vinculadas a projetos
type ProjectSyncService struct {
	scheduler *gocron.Scheduler
	config    ProjectSyncConfig
	syncer    ProjectSyncer
	now       func() time.Time

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncFailures    int
}

func NewProjectSyncService(syncer ProjectSyncer, appConfig *config.Config) *ProjectSyncService {
	syncConfig := ProjectSyncConfig{
		CronSchedule: appConfig.Sync.CronSchedule,
		LookbackDays: appConfig.Sync.LookbackDays,
		SyncEnabled:  appConfig.Sync.Enabled,
		Accounts:     appConfig.Sync.Accounts,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
		"accounts":      len(syncConfig.Accounts),
	}).Info("scheduler: project sync configuration loaded")

	return &ProjectSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		syncer:    syncer,
		now:       time.Now,
	}
}

// Start agenda a sincronização e para o agendador quando o contexto termina
func (s *ProjectSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("scheduler: project sync disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllProjects(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de projetos: %w", err)
	}

	s.scheduler.StartAsync()

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: project sync started")

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping project sync")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma sincronização fora do horário. Retorna false
// quando já existe uma em andamento.
func (s *ProjectSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.begin() {
		logrus.Info("scheduler: project sync already running, manual request ignored")
		return false
	}

	logrus.Info("scheduler: manual project sync requested")
	go s.run(context.WithoutCancel(ctx))
	return true
}

func (s *ProjectSyncService) syncAllProjects(ctx context.Context) {
	if !s.begin() {
		logrus.Info("scheduler: project sync already running, skipping")
		return
	}
	s.run(ctx)
}

func (s *ProjectSyncService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

// run sincroniza as contas em sequência; a Meta limita chamadas por token
func (s *ProjectSyncService) run(ctx context.Context) {
	startTime := s.now()
	startDate, endDate := s.syncPeriod()

	failures := 0
	for _, account := range s.config.Accounts {
		if ctx.Err() != nil {
			break
		}

		logger := logrus.WithFields(logrus.Fields{
			"project_id": account.ProjectID,
			"account_id": account.AccountID,
		})

		result, err := s.syncer.Sync(ctx, account.ProjectID, domain.SyncRequest{
			AccountID: account.AccountID,
			Currency:  account.Currency,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			failures++
			logger.WithError(err).Error("scheduler: project sync failed")
			continue
		}

		logger.WithFields(logrus.Fields{
			"sync_id": result.SyncID,
			"rows":    result.Rows,
			"applied": result.Applied,
		}).Info("scheduler: project synced")
	}

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastSyncFailures = failures
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": s.now().Sub(startTime).String(),
		"accounts": len(s.config.Accounts),
		"failures": failures,
	}).Info("scheduler: project sync finished")
}

// syncPeriod cobre os últimos LookbackDays dias até ontem. Sem janela, a
// busca usa o período padrão da Meta.
func (s *ProjectSyncService) syncPeriod() (*time.Time, *time.Time) {
	if s.config.LookbackDays <= 0 {
		return nil, nil
	}

	today := s.now()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(s.config.LookbackDays - 1))

	return &start, &end
}

// GetStatus retorna o status atual do agendador
func (s *ProjectSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_accounts":          len(s.config.Accounts),
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_failures":     s.lastSyncFailures,
	}
}
