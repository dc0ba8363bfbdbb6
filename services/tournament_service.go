package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

// Notifier receives store events after they are committed.
type Notifier interface {
	Publish(eventType string, payload interface{})
}

// TournamentService is the Swiss tournament store. Every call goes to the
// datastore; nothing is cached between calls.
type TournamentService interface {
	ClearMatches(ctx context.Context) error
	ClearPlayers(ctx context.Context) error
	CountPlayers(ctx context.Context) (int, error)
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	Standings(ctx context.Context) ([]models.Standing, error)
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	SwissPairings(ctx context.Context) ([]models.Pairing, error)

	ListMatches(ctx context.Context) ([]models.Match, error)
	Summary(ctx context.Context) (*models.TournamentSummary, error)
	ExportStandings(ctx context.Context) (*models.StandingsSnapshot, error)
	Ping(ctx context.Context) error
}

type tournamentService struct {
	db           *sql.DB
	playerRepo   repositories.PlayerRepository
	matchRepo    repositories.MatchRepository
	standingRepo repositories.StandingRepository
	generator    brackets.PairingGenerator
	notifier     Notifier
	uploader     storage.FileUploader
	logger       *slog.Logger
	now          func() time.Time
}

// NewTournamentService wires the store. notifier and uploader may be nil:
// events are then dropped and ExportStandings returns ErrSnapshotsDisabled.
func NewTournamentService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	generator brackets.PairingGenerator,
	notifier Notifier,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if generator == nil {
		generator = brackets.NewSwissGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		db:           db,
		playerRepo:   playerRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		generator:    generator,
		notifier:     notifier,
		uploader:     uploader,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *tournamentService) ClearMatches(ctx context.Context) error {
	var deleted int64
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		deleted, err = s.matchRepo.DeleteAll(ctx, tx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}

	s.logger.Info("matches cleared", slog.Int64("deleted", deleted))
	s.notifier.Publish(brackets.EventMatchesCleared, map[string]int64{"deleted": deleted})
	return nil
}

func (s *tournamentService) ClearPlayers(ctx context.Context) error {
	var deleted int64
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		deleted, err = s.playerRepo.DeleteAll(ctx, tx)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return fmt.Errorf("%w: %w", ErrRosterInUse, err)
		}
		return fmt.Errorf("failed to clear players: %w", err)
	}

	s.logger.Info("players cleared", slog.Int64("deleted", deleted))
	s.notifier.Publish(brackets.EventPlayersCleared, map[string]int64{"deleted": deleted})
	return nil
}

func (s *tournamentService) CountPlayers(ctx context.Context) (int, error) {
	n, err := s.playerRepo.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

// RegisterPlayer stores name as given. Empty and duplicate names are allowed;
// only the assigned id is unique.
func (s *tournamentService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{Name: name}
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.playerRepo.Create(ctx, tx, player)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	s.logger.Info("player registered", slog.Int("player_id", player.ID))
	s.notifier.Publish(brackets.EventPlayerRegistered, player)
	return player, nil
}

func (s *tournamentService) Standings(ctx context.Context) ([]models.Standing, error) {
	standings, err := s.standingRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	return standings, nil
}

// ReportMatch records one result. winnerID == loserID is not rejected here.
func (s *tournamentService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	match := &models.Match{WinnerID: winnerID, LoserID: loserID}
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.matchRepo.Create(ctx, tx, match)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: winner %d or loser %d: %w", ErrPlayerNotFound, winnerID, loserID, err)
		}
		return nil, fmt.Errorf("failed to report match: %w", err)
	}

	s.logger.Info("match reported",
		slog.Int("match_id", match.ID), slog.Int("winner_id", winnerID), slog.Int("loser_id", loserID))
	s.notifier.Publish(brackets.EventMatchReported, match)
	return match, nil
}

func (s *tournamentService) SwissPairings(ctx context.Context) ([]models.Pairing, error) {
	records, err := s.standingRepo.ListWinRecords(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load win records: %w", err)
	}
	return s.pair(ctx, records)
}

func (s *tournamentService) pair(ctx context.Context, ordered []models.Standing) ([]models.Pairing, error) {
	result, err := s.generator.GeneratePairings(ctx, ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s pairings: %w", s.generator.GetName(), err)
	}
	if result.Unpaired != nil {
		s.logger.Warn("odd number of players, last player left out of pairings",
			slog.Int("player_id", result.Unpaired.ID), slog.Int("players", len(ordered)))
	}
	return result.Pairings, nil
}

func (s *tournamentService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// Summary reads counts and standings inside one read-only transaction, so all
// fields describe the same state. Pairings are derived from those standings.
func (s *tournamentService) Summary(ctx context.Context) (*models.TournamentSummary, error) {
	summary := &models.TournamentSummary{}

	err := withReadTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if summary.PlayerCount, err = s.playerRepo.Count(ctx, tx); err != nil {
			return fmt.Errorf("failed to count players: %w", err)
		}
		if summary.MatchCount, err = s.matchRepo.Count(ctx, tx); err != nil {
			return fmt.Errorf("failed to count matches: %w", err)
		}
		if summary.Standings, err = s.standingRepo.List(ctx, tx); err != nil {
			return fmt.Errorf("failed to load standings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pairings, err := s.pair(ctx, summary.Standings)
	if err != nil {
		return nil, err
	}
	summary.Pairings = pairings
	return summary, nil
}

func (s *tournamentService) ExportStandings(ctx context.Context) (*models.StandingsSnapshot, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}

	standings, err := s.Standings(ctx)
	if err != nil {
		return nil, err
	}
	takenAt := s.now().UTC()
	body, err := json.Marshal(standings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings: %w", err)
	}

	key := fmt.Sprintf("standings/%d.json", takenAt.UnixNano())
	res, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to export standings: %w", err)
	}

	s.logger.Info("standings exported", slog.String("key", res.Key), slog.Int("players", len(standings)))
	return &models.StandingsSnapshot{
		Key:       res.Key,
		URL:       res.Location,
		ETag:      res.ETag,
		TakenAt:   takenAt,
		Standings: standings,
	}, nil
}

func (s *tournamentService) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return repositories.ClassifyError(err)
	}
	return nil
}
