package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-report-api/infrastructure/export"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-report-api/infrastructure/repository"
	"github.com/vfg2006/ad-report-api/internal/api"
	"github.com/vfg2006/ad-report-api/internal/config"
	"github.com/vfg2006/ad-report-api/internal/scheduler"
	"github.com/vfg2006/ad-report-api/internal/usecases/attributing"
	"github.com/vfg2006/ad-report-api/internal/usecases/normalizing"
	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	projectRepo := repository.NewProjectRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(metaClient)

	normalizer := normalizing.NewNormalizer(cfg, attributing.NewEngine())

	reportService := reporting.NewService(projectRepo, metaIntegrator, normalizer, export.NewXLSXWriter())

	projectSyncService := scheduler.NewProjectSyncService(reportService, cfg)
	if err := projectSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de projetos")
	}

	server, err := api.New(cfg, reportService, projectSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
