package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-report-api/internal/config"
)

// migrations são aplicadas em ordem, cada uma em sua própria transação.
// Todas podem ser reexecutadas sem efeito.
var migrations = []struct {
	name       string
	statements []string
}{
	{
		name: "create_projects",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS projects (
				id                VARCHAR(32) PRIMARY KEY,
				name              TEXT NOT NULL,
				currency          VARCHAR(8) NOT NULL,
				meta_account_id   TEXT NOT NULL DEFAULT '',
				meta_account_name TEXT NOT NULL DEFAULT '',
				sync_generation   BIGINT NOT NULL DEFAULT 0,
				created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
	{
		name: "create_project_rows",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS project_rows (
				project_id VARCHAR(32) NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				id         TEXT NOT NULL,
				position   INTEGER NOT NULL,
				level      VARCHAR(16) NOT NULL,
				data       JSONB NOT NULL,
				PRIMARY KEY (project_id, id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_project_rows_position ON project_rows (project_id, position)`,
		},
	},
	{
		name: "create_result_overrides",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS result_overrides (
				project_id  VARCHAR(32) NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
				row_id      TEXT NOT NULL,
				result_type TEXT NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (project_id, row_id)
			)`,
		},
	},
}

// seedSyncProjects cria, quando ausente, o projeto de cada conta em SYNC_ACCOUNTS
func seedSyncProjects(ctx context.Context, db *sql.DB, accounts []config.SyncAccount) {
	for _, account := range accounts {
		result, err := db.ExecContext(ctx,
			`INSERT INTO projects (id, name, currency, meta_account_id) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			account.ProjectID, account.AccountID, account.Currency, account.AccountID,
		)
		if err != nil {
			logrus.WithError(err).WithField("project_id", account.ProjectID).Error("migration: failed to seed project")
			continue
		}

		if inserted, _ := result.RowsAffected(); inserted > 0 {
			logrus.WithFields(logrus.Fields{
				"project_id": account.ProjectID,
				"account_id": account.AccountID,
			}).Info("migration: project seeded")
		}
	}
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		startTime := time.Now()

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		for _, statement := range m.statements {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				tx.Rollback()
				logrus.WithError(err).WithField("migration", m.name).Error("migration: statement failed")
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"migration": m.name,
			"duration":  time.Since(startTime).String(),
		}).Info("migration: applied")
	}

	return nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir conexão com PostgreSQL")
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	seedSyncProjects(ctx, db, cfg.Sync.Accounts)

	logrus.Info("Migração concluída com sucesso")
}
