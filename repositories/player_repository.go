package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/swiss-tournament/models"
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error)
}

type sqlPlayerRepository struct {
	baseRepository
}

func NewPlayerRepository(db *sql.DB, driver string) PlayerRepository {
	return &sqlPlayerRepository{baseRepository: newBaseRepository(db, driver)}
}

// Create inserts the player and fills in the id assigned by the datastore.
func (r *sqlPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	row, err := r.queryRow(ctx, exec,
		r.qb.Insert("players").
			Columns("name").
			Values(player.Name).
			Suffix("RETURNING id"),
	)
	if err != nil {
		return err
	}
	if err := row.Scan(&player.ID); err != nil {
		return ClassifyError(err)
	}
	return nil
}

func (r *sqlPlayerRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	return r.count(ctx, exec, "players")
}

// DeleteAll fails with ErrForeignKeyViolation while matches still reference players.
func (r *sqlPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) (int64, error) {
	return r.execStatement(ctx, exec, r.qb.Delete("players"))
}
