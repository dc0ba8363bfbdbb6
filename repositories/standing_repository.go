package repositories

import (
	"context"
	"database/sql"

	"github.com/Dosada05/swiss-tournament/models"
)

const (
	winsColumn   = "(SELECT COUNT(*) FROM matches m WHERE m.win_player_id = p.id) AS wins"
	playedColumn = "(SELECT COUNT(*) FROM matches m WHERE m.win_player_id = p.id OR m.lose_player_id = p.id) AS played"
)

// StandingRepository derives standings from players and matches on every call.
// Both listings are ordered by wins descending, then player id ascending.
type StandingRepository interface {
	List(ctx context.Context, exec SQLExecutor) ([]models.Standing, error)
	// ListWinRecords fetches only id, name and wins; Matches is left at zero.
	ListWinRecords(ctx context.Context, exec SQLExecutor) ([]models.Standing, error)
}

type sqlStandingRepository struct {
	baseRepository
}

func NewStandingRepository(db *sql.DB, driver string) StandingRepository {
	return &sqlStandingRepository{baseRepository: newBaseRepository(db, driver)}
}

func (r *sqlStandingRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Standing, error) {
	return r.list(ctx, exec, true)
}

func (r *sqlStandingRepository) ListWinRecords(ctx context.Context, exec SQLExecutor) ([]models.Standing, error) {
	return r.list(ctx, exec, false)
}

func (r *sqlStandingRepository) list(ctx context.Context, exec SQLExecutor, withPlayed bool) ([]models.Standing, error) {
	columns := []string{"p.id", "p.name", winsColumn}
	if withPlayed {
		columns = append(columns, playedColumn)
	}
	rows, err := r.query(ctx, exec,
		r.qb.Select(columns...).
			From("players p").
			OrderBy("wins DESC", "p.id ASC"), // p.id for stable sort
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		s, errScan := scanStanding(rows, withPlayed)
		if errScan != nil {
			return nil, ClassifyError(errScan)
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, ClassifyError(err)
	}
	return standings, nil
}

func scanStanding(row rowScanner, withPlayed bool) (models.Standing, error) {
	var s models.Standing
	if withPlayed {
		err := row.Scan(&s.ID, &s.Name, &s.Wins, &s.Matches)
		return s, err
	}
	err := row.Scan(&s.ID, &s.Name, &s.Wins)
	return s, err
}
