package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// statementBuilder returns a squirrel builder using the placeholder style of driver.
// SQLite takes "?", the Postgres drivers take "$n".
func statementBuilder(driver string) sq.StatementBuilderType {
	if driver == "sqlite" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type baseRepository struct {
	db *sql.DB // Main DB connection, used if exec is nil
	qb sq.StatementBuilderType
}

func newBaseRepository(db *sql.DB, driver string) baseRepository {
	return baseRepository{db: db, qb: statementBuilder(driver)}
}

func (r baseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r baseRepository) execStatement(ctx context.Context, exec SQLExecutor, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	result, err := r.getExecutor(exec).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, ClassifyError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return affected, nil
}

func (r baseRepository) queryRow(ctx context.Context, exec SQLExecutor, q sq.Sqlizer) (*sql.Row, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return r.getExecutor(exec).QueryRowContext(ctx, query, args...), nil
}

func (r baseRepository) query(ctx context.Context, exec SQLExecutor, q sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ClassifyError(err)
	}
	return rows, nil
}

func (r baseRepository) count(ctx context.Context, exec SQLExecutor, table string) (int, error) {
	row, err := r.queryRow(ctx, exec, r.qb.Select("COUNT(*)").From(table))
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, ClassifyError(err)
	}
	return n, nil
}
