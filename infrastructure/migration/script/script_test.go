package main

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-report-api/internal/config"
)

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, m := range migrations {
		mock.ExpectBegin()
		for range m.statements {
			mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()
	}

	require.NoError(t, migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_FalhaDesfazTransacao(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS projects").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	assert.Error(t, migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSyncProjects(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO projects").
		WithArgs("p1", "act_1", "TWD", "act_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO projects").
		WithArgs("p2", "act_2", "USD", "act_2").
		WillReturnError(errors.New("conexão perdida"))

	seedSyncProjects(context.Background(), db, []config.SyncAccount{
		{ProjectID: "p1", AccountID: "act_1", Currency: "TWD"},
		{ProjectID: "p2", AccountID: "act_2", Currency: "USD"},
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
