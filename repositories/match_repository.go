package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/swiss-tournament/models"
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Match, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error)
}

type sqlMatchRepository struct {
	baseRepository
}

func NewMatchRepository(db *sql.DB, driver string) MatchRepository {
	return &sqlMatchRepository{baseRepository: newBaseRepository(db, driver)}
}

// Create records one result. Unknown player ids fail with ErrForeignKeyViolation.
func (r *sqlMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	row, err := r.queryRow(ctx, exec,
		r.qb.Insert("matches").
			Columns("win_player_id", "lose_player_id").
			Values(match.WinnerID, match.LoserID).
			Suffix("RETURNING id"),
	)
	if err != nil {
		return err
	}
	if err := row.Scan(&match.ID); err != nil {
		return ClassifyError(err)
	}
	return nil
}

func (r *sqlMatchRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	return r.count(ctx, exec, "matches")
}

func (r *sqlMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Match, error) {
	rows, err := r.query(ctx, exec,
		r.qb.Select("id", "win_player_id", "lose_player_id").
			From("matches").
			OrderBy("id ASC"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID); err != nil {
			return nil, ClassifyError(err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, ClassifyError(err)
	}
	return matches, nil
}

func (r *sqlMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error) {
	return r.execStatement(ctx, exec, r.qb.Delete("matches"))
}
