package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/domain/standing"
	"github.com/movearena/team-league/internal/domain/storage"
	"github.com/movearena/team-league/internal/domain/team"
	"github.com/movearena/team-league/internal/platform/cache"
	"github.com/movearena/team-league/internal/platform/logging"
)

// CreateSeasonInput carries everything needed to open a season: its settings
// plus the participating teams in the order that later breaks ranking ties.
type CreateSeasonInput struct {
	Season  season.Season
	TeamIDs []string
}

// SeasonService owns the season's outer lifecycle: creation with fixture
// generation, reads, postponement, deletion. The per-game lifecycle belongs to
// the scheduler.
type SeasonService struct {
	seasonRepo   season.Repository
	teamRepo     team.Repository
	gameRepo     game.Repository
	liveRepo     livegame.Repository
	snapshotRepo snapshot.Repository
	standingRepo standing.Repository
	fixtureSvc   *FixtureService
	standingSvc  *StandingService
	tx           storage.TxRunner
	cache        *cache.Store
	logger       *logging.Logger
	now          func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	liveRepo livegame.Repository,
	snapshotRepo snapshot.Repository,
	standingRepo standing.Repository,
	fixtureSvc *FixtureService,
	standingSvc *StandingService,
	tx storage.TxRunner,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *SeasonService {
	if tx == nil {
		tx = storage.NopTxRunner{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		gameRepo:     gameRepo,
		liveRepo:     liveRepo,
		snapshotRepo: snapshotRepo,
		standingRepo: standingRepo,
		fixtureSvc:   fixtureSvc,
		standingSvc:  standingSvc,
		tx:           tx,
		cache:        cacheStore,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateSeason persists the season, zeroes its standings table and generates
// the full double round-robin fixture list, all in one transaction.
func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (season.Season, []game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	item := input.Season
	if item.Status == "" {
		item.Status = season.StatusActive
	}
	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return season.Season{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(input.TeamIDs) > 0 {
		teams, err := s.teamRepo.ListByIDs(ctx, input.TeamIDs)
		if err != nil {
			return season.Season{}, nil, fmt.Errorf("list season teams: %w", err)
		}
		if len(teams) != len(input.TeamIDs) {
			return season.Season{}, nil, fmt.Errorf("%w: %d of %d season teams do not exist",
				ErrInvalidInput, len(input.TeamIDs)-len(teams), len(input.TeamIDs))
		}
	}

	var fixtures []game.Game
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.seasonRepo.Create(ctx, item); err != nil {
			return fmt.Errorf("create season: %w", err)
		}
		if err := s.standingSvc.Initialize(ctx, item.ID, input.TeamIDs); err != nil {
			return err
		}
		generated, err := s.fixtureSvc.GenerateSeasonFixtures(ctx, item, input.TeamIDs)
		if err != nil {
			return err
		}
		fixtures = generated
		return nil
	})
	if err != nil {
		return season.Season{}, nil, err
	}

	s.logger.InfoContext(ctx, "season created",
		"season_id", item.ID,
		"league_id", item.LeagueID,
		"team_count", len(input.TeamIDs),
		"fixture_count", len(fixtures),
	)

	return item, fixtures, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get")
	defer span.End()

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season %s: %w", seasonID, err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

// DeleteSeason soft-deletes the season and clears its pending scheduler work.
// Evaluated games and standings stay behind as history.
func (s *SeasonService) DeleteSeason(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.DeleteSeason")
	defer span.End()

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("get season %s: %w", seasonID, err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Live rows and snapshots reference the game rows, so they go first.
		for _, status := range []game.Status{game.StatusScheduled, game.StatusInProgress} {
			pending, err := s.gameRepo.ListBySeasonAndStatus(ctx, seasonID, status)
			if err != nil {
				return fmt.Errorf("list pending games: %w", err)
			}
			for _, item := range pending {
				if err := s.liveRepo.DeleteByGame(ctx, item.ID); err != nil {
					return fmt.Errorf("delete live state for game %s: %w", item.ID, err)
				}
				if err := s.snapshotRepo.DeleteByGame(ctx, item.ID); err != nil {
					return fmt.Errorf("delete snapshots for game %s: %w", item.ID, err)
				}
			}
		}
		if err := s.gameRepo.DeletePendingBySeason(ctx, seasonID); err != nil {
			return fmt.Errorf("delete pending games: %w", err)
		}
		if err := s.seasonRepo.SoftDelete(ctx, seasonID); err != nil {
			return fmt.Errorf("soft delete season: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateSeason(ctx, seasonID)
	s.logger.InfoContext(ctx, "season deleted", "season_id", seasonID)

	return nil
}

// Schedule returns a season's full fixture list, cached briefly since it only
// changes on postponement or deletion.
func (s *SeasonService) Schedule(ctx context.Context, seasonID string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Schedule")
	defer span.End()

	key := scheduleCacheKey(seasonID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if games, ok := cached.([]game.Game); ok {
				return games, nil
			}
		}
	}

	games, err := s.gameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season games: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, games)
	}
	return games, nil
}

// Standings returns a season's table ordered by position.
func (s *SeasonService) Standings(ctx context.Context, seasonID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Standings")
	defer span.End()

	key := standingsCacheKey(seasonID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if standings, ok := cached.([]standing.Standing); ok {
				return standings, nil
			}
		}
	}

	standings, err := s.standingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season standings: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, standings)
	}
	return standings, nil
}

// PostponeGame side-exits a game that has not started. Postponed games never
// return to the schedule; the admin recreates them in a later season instead.
func (s *SeasonService) PostponeGame(ctx context.Context, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.PostponeGame")
	defer span.End()

	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	if err := game.Transition(item.Status, game.StatusPostponed); err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	ok, err := s.gameRepo.Postpone(ctx, gameID)
	if err != nil {
		return fmt.Errorf("postpone game %s: %w", gameID, err)
	}
	if !ok {
		return fmt.Errorf("%w: game %s already left the schedule", ErrConflict, gameID)
	}

	s.invalidateSeason(ctx, item.SeasonID)
	s.logger.InfoContext(ctx, "game postponed", "game_id", gameID, "season_id", item.SeasonID)

	return nil
}

func (s *SeasonService) invalidateSeason(ctx context.Context, seasonID string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, "season:"+seasonID+":")
}

func scheduleCacheKey(seasonID string) string  { return "season:" + seasonID + ":schedule" }
func standingsCacheKey(seasonID string) string { return "season:" + seasonID + ":standings" }
