package postgres

import (
	"context"
	"database/sql"
)

// Queryer é satisfeito tanto por *sql.DB quanto por *sql.Tx, o que permite
// reaproveitar as consultas dentro e fora de transações
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
