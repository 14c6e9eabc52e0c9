package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-report-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	projectsTable  = "projects"
	rowsTable      = "project_rows"
	overridesTable = "result_overrides"

	insertBatchSize = 500
)

// ErrNotFound indica que o projeto ou a linha não existe
var ErrNotFound = errors.New("not found")

//go:generate mockgen -source=project.go -destination=mocks/mock_project_repository.go -package=mocks
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *domain.Project) error
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	ReplaceRows(ctx context.Context, projectID string, generation int64, batch domain.NormalizedBatch) (bool, error)
	ListRows(ctx context.Context, projectID string) ([]*domain.CanonicalRow, error)
	GetRow(ctx context.Context, projectID, rowID string) (*domain.CanonicalRow, error)
	UpdateRow(ctx context.Context, projectID string, row *domain.CanonicalRow) error
	SaveOverride(ctx context.Context, projectID, rowID, resultType string) error
	ListOverrides(ctx context.Context, projectID string) (map[string]string, error)
}

type projectRepository struct {
	conn *postgres.Connection
}

func NewProjectRepository(conn *postgres.Connection) ProjectRepository {
	return &projectRepository{
		conn: conn,
	}
}

func (r *projectRepository) CreateProject(ctx context.Context, project *domain.Project) error {
	query, args, err := squirrel.
		Insert(projectsTable).
		Columns("id", "name", "currency", "meta_account_id", "meta_account_name", "sync_generation", "created_at", "updated_at").
		Values(project.ID, project.Name, project.Currency, project.MetaAccountID, project.MetaAccountName,
			project.SyncGeneration, project.CreatedAt, project.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err)
	}

	return nil
}

func (r *projectRepository) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	query, args, err := selectProjects().
		Where(squirrel.Eq{"id": projectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	project := &domain.Project{}
	if err := scanProject(r.conn.QueryRowContext(ctx, query, args...), project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	return project, nil
}

func (r *projectRepository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	query, args, err := selectProjects().
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project := &domain.Project{}
		if err := scanProject(rows, project); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o projeto: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return projects, nil
}

// ReplaceRows troca todas as linhas do projeto numa transação. A troca só
// acontece quando generation é maior que a geração gravada; caso contrário
// retorna false sem erro (a sincronização mais recente já venceu).
func (r *projectRepository) ReplaceRows(ctx context.Context, projectID string, generation int64, batch domain.NormalizedBatch) (bool, error) {
	applied := false

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		current, err := lockGeneration(ctx, tx, projectID)
		if err != nil {
			return err
		}

		if generation <= current {
			logrus.WithFields(logrus.Fields{
				"project_id":         projectID,
				"generation":         generation,
				"current_generation": current,
			}).Warn("repository: stale rows discarded")
			return nil
		}

		deleteSQL, deleteArgs, err := squirrel.
			Delete(rowsTable).
			Where(squirrel.Eq{"project_id": projectID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return wrapDatabaseError(err)
		}

		if err := insertRows(ctx, tx, projectID, batch.Rows); err != nil {
			return err
		}

		updateBuilder := squirrel.
			Update(projectsTable).
			Set("sync_generation", generation).
			Set("updated_at", time.Now().UTC()).
			Where(squirrel.Eq{"id": projectID}).
			PlaceholderFormat(squirrel.Dollar)
		if batch.Currency != "" {
			updateBuilder = updateBuilder.Set("currency", batch.Currency)
		}

		updateSQL, updateArgs, err := updateBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
			return wrapDatabaseError(err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

func lockGeneration(ctx context.Context, q postgres.Queryer, projectID string) (int64, error) {
	query, args, err := squirrel.
		Select("sync_generation").
		From(projectsTable).
		Where(squirrel.Eq{"id": projectID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var current int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, wrapDatabaseError(err)
	}

	return current, nil
}

func insertRows(ctx context.Context, q postgres.Queryer, projectID string, rows []*domain.CanonicalRow) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		builder := squirrel.
			Insert(rowsTable).
			Columns("project_id", "id", "position", "level", "data").
			PlaceholderFormat(squirrel.Dollar)

		for i, row := range rows[start:end] {
			data, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("erro ao serializar a linha %s: %w", row.ID, err)
			}
			builder = builder.Values(projectID, row.ID, start+i, string(row.Level), data)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return wrapDatabaseError(err)
		}
	}

	return nil
}

func (r *projectRepository) ListRows(ctx context.Context, projectID string) ([]*domain.CanonicalRow, error) {
	query, args, err := squirrel.
		Select("data").
		From(rowsTable).
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	result := make([]*domain.CanonicalRow, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("erro ao ler a linha: %w", err)
		}

		row := &domain.CanonicalRow{}
		if err := json.Unmarshal(data, row); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a linha: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return result, nil
}

func (r *projectRepository) GetRow(ctx context.Context, projectID, rowID string) (*domain.CanonicalRow, error) {
	query, args, err := squirrel.
		Select("data").
		From(rowsTable).
		Where(squirrel.Eq{"project_id": projectID, "id": rowID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var data []byte
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDatabaseError(err)
	}

	row := &domain.CanonicalRow{}
	if err := json.Unmarshal(data, row); err != nil {
		return nil, fmt.Errorf("erro ao deserializar a linha: %w", err)
	}

	return row, nil
}

func (r *projectRepository) UpdateRow(ctx context.Context, projectID string, row *domain.CanonicalRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("erro ao serializar a linha %s: %w", row.ID, err)
	}

	query, args, err := squirrel.
		Update(rowsTable).
		Set("data", data).
		Where(squirrel.Eq{"project_id": projectID, "id": row.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDatabaseError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SaveOverride grava a escolha manual separada das linhas, para ser
// reaplicada depois de uma nova importação ou sincronização
func (r *projectRepository) SaveOverride(ctx context.Context, projectID, rowID, resultType string) error {
	query, args, err := squirrel.
		Insert(overridesTable).
		Columns("project_id", "row_id", "result_type", "updated_at").
		Values(projectID, rowID, resultType, time.Now().UTC()).
		Suffix(`ON CONFLICT (project_id, row_id) DO UPDATE SET
				result_type = EXCLUDED.result_type,
				updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapDatabaseError(err)
	}

	return nil
}

func (r *projectRepository) ListOverrides(ctx context.Context, projectID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("row_id", "result_type").
		From(overridesTable).
		Where(squirrel.Eq{"project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	defer rows.Close()

	overrides := make(map[string]string)
	for rows.Next() {
		var rowID, resultType string
		if err := rows.Scan(&rowID, &resultType); err != nil {
			return nil, fmt.Errorf("erro ao ler a escolha manual: %w", err)
		}
		overrides[rowID] = resultType
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return overrides, nil
}

func selectProjects() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "currency", "meta_account_id", "meta_account_name", "sync_generation", "created_at", "updated_at").
		From(projectsTable).
		PlaceholderFormat(squirrel.Dollar)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner, project *domain.Project) error {
	return s.Scan(
		&project.ID,
		&project.Name,
		&project.Currency,
		&project.MetaAccountID,
		&project.MetaAccountName,
		&project.SyncGeneration,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
}

func wrapDatabaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
