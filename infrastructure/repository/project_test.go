package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-report-api/internal/domain"
)

func setupProjectRepository(t *testing.T) (ProjectRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewProjectRepository(&postgres.Connection{DB: db}), mock
}

var projectColumns = []string{"id", "name", "currency", "meta_account_id", "meta_account_name", "sync_generation", "created_at", "updated_at"}

func TestProjectRepository_GetProject(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("encontrado", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectQuery(`SELECT (.+) FROM projects WHERE id = \$1`).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(projectColumns).
				AddRow("p1", "Cliente", "TWD", "act_1", "Conta", int64(7), createdAt, createdAt))

		project, err := repo.GetProject(ctx, "p1")

		require.NoError(t, err)
		require.NotNil(t, project)
		assert.Equal(t, "Cliente", project.Name)
		assert.Equal(t, int64(7), project.SyncGeneration)
		assert.Equal(t, createdAt, project.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("não encontrado", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectQuery(`SELECT (.+) FROM projects WHERE id = \$1`).
			WithArgs("p2").
			WillReturnError(sql.ErrNoRows)

		project, err := repo.GetProject(ctx, "p2")

		assert.NoError(t, err)
		assert.Nil(t, project)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_ReplaceRows(t *testing.T) {
	ctx := context.Background()
	batch := domain.NormalizedBatch{
		Currency: "TWD",
		Rows: []*domain.CanonicalRow{
			{ID: "r1", Level: domain.LevelCampaign, Name: "C1"},
			{ID: "r2", Level: domain.LevelAd, Name: "A1"},
		},
	}

	t.Run("geração mais nova substitui as linhas", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT sync_generation FROM projects WHERE id = \$1 FOR UPDATE`).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows([]string{"sync_generation"}).AddRow(int64(3)))
		mock.ExpectExec(`DELETE FROM project_rows WHERE project_id = \$1`).
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(`INSERT INTO project_rows \(project_id,id,position,level,data\) VALUES`).
			WithArgs("p1", "r1", 0, "campaign", sqlmock.AnyArg(), "p1", "r2", 1, "ad", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE projects SET sync_generation = \$1, updated_at = \$2, currency = \$3 WHERE id = \$4`).
			WithArgs(int64(5), sqlmock.AnyArg(), "TWD", "p1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		applied, err := repo.ReplaceRows(ctx, "p1", 5, batch)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("geração antiga é descartada", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT sync_generation FROM projects`).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows([]string{"sync_generation"}).AddRow(int64(10)))
		mock.ExpectCommit()

		applied, err := repo.ReplaceRows(ctx, "p1", 9, batch)

		require.NoError(t, err)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("projeto inexistente", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT sync_generation FROM projects`).
			WithArgs("p9").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		applied, err := repo.ReplaceRows(ctx, "p9", 1, batch)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectRepository_ListRows(t *testing.T) {
	repo, mock := setupProjectRepository(t)

	mock.ExpectQuery(`SELECT data FROM project_rows WHERE project_id = \$1 ORDER BY position ASC`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"r1","level":"campaign","name":"C1","conversions":3,"result_type":"網站購買","extra":{"Notes":"x"}}`)).
			AddRow([]byte(`{"id":"r2","level":"age","name":"25-34"}`)))

	rows, err := repo.ListRows(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3.0, rows[0].Conversions)
	assert.Equal(t, "網站購買", rows[0].ResultType)
	assert.Equal(t, "x", rows[0].Extra["Notes"])
	assert.Equal(t, domain.LevelAge, rows[1].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_UpdateRow(t *testing.T) {
	ctx := context.Background()

	t.Run("atualiza", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectExec(`UPDATE project_rows SET data = \$1 WHERE id = \$2 AND project_id = \$3`).
			WithArgs(sqlmock.AnyArg(), "r1", "p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateRow(ctx, "p1", &domain.CanonicalRow{ID: "r1"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("linha inexistente", func(t *testing.T) {
		repo, mock := setupProjectRepository(t)

		mock.ExpectExec(`UPDATE project_rows SET data`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRow(ctx, "p1", &domain.CanonicalRow{ID: "r9"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProjectRepository_Overrides(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupProjectRepository(t)

	mock.ExpectExec(`INSERT INTO result_overrides (.+) ON CONFLICT \(project_id, row_id\) DO UPDATE`).
		WithArgs("p1", "r1", "link_click", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT row_id, result_type FROM result_overrides WHERE project_id = \$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"row_id", "result_type"}).AddRow("r1", "link_click"))

	require.NoError(t, repo.SaveOverride(ctx, "p1", "r1", "link_click"))

	overrides, err := repo.ListOverrides(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"r1": "link_click"}, overrides)
	assert.NoError(t, mock.ExpectationsWereMet())
}
