package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/domain/storage"
	"github.com/movearena/team-league/internal/platform/logging"
)

const defaultEvaluationWorkers = 4

// resultStrategy turns a finished game into a final result. Which strategy
// applies is a per-season decision.
type resultStrategy interface {
	computeResult(ctx context.Context, item game.Game) (game.Result, error)
}

type EvaluationService struct {
	gameRepo     game.Repository
	seasonRepo   season.Repository
	liveRepo     livegame.Repository
	snapshotRepo snapshot.Repository
	standingSvc  *StandingService
	broadcastSvc *BroadcastService
	tx           storage.TxRunner
	workers      int
	logger       *logging.Logger
}

func NewEvaluationService(
	gameRepo game.Repository,
	seasonRepo season.Repository,
	liveRepo livegame.Repository,
	snapshotRepo snapshot.Repository,
	standingSvc *StandingService,
	broadcastSvc *BroadcastService,
	tx storage.TxRunner,
	workers int,
	logger *logging.Logger,
) *EvaluationService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultEvaluationWorkers
	}
	if tx == nil {
		tx = storage.NopTxRunner{}
	}
	return &EvaluationService{
		gameRepo:     gameRepo,
		seasonRepo:   seasonRepo,
		liveRepo:     liveRepo,
		snapshotRepo: snapshotRepo,
		standingSvc:  standingSvc,
		broadcastSvc: broadcastSvc,
		tx:           tx,
		workers:      workers,
		logger:       logger,
	}
}

// Evaluate resolves one finished game and commits score, winner, standings
// update and position recompute in a single transaction. The broadcast goes
// out strictly after commit; its failure never rolls back the evaluation.
func (s *EvaluationService) Evaluate(ctx context.Context, gameID string) (game.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.Evaluate")
	defer span.End()

	result, evaluated, err := s.evaluateOne(ctx, gameID)
	if err != nil {
		return game.Result{}, err
	}
	if !evaluated {
		return game.Result{}, fmt.Errorf("%w: game %s is not awaiting evaluation", ErrConflict, gameID)
	}

	s.broadcast(ctx, []game.Result{result})
	return result, nil
}

// EvaluateFinished evaluates a batch of games, each independently: one game's
// failure does not abort the rest. Successfully evaluated results go out in
// one combined broadcast.
func (s *EvaluationService) EvaluateFinished(ctx context.Context, gameIDs []string) ([]game.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.EvaluateFinished")
	defer span.End()

	if len(gameIDs) == 0 {
		return nil, nil
	}

	workerCount := s.workers
	if workerCount > len(gameIDs) {
		workerCount = len(gameIDs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create evaluation worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		results []game.Result
		workers sync.WaitGroup
	)
	for _, gameID := range gameIDs {
		gameID := gameID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			result, evaluated, evalErr := s.evaluateOne(ctx, gameID)
			if evalErr != nil {
				s.logger.ErrorContext(ctx, "evaluate game failed", "game_id", gameID, "error", evalErr)
				return
			}
			if !evaluated {
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit game to evaluation pool: %w", err)
		}
	}
	workers.Wait()

	if len(results) > 0 {
		s.broadcast(ctx, results)
	}

	return results, nil
}

// EvaluateFinishedForDate evaluates a season's finished games whose kickoff
// falls on the given calendar day in the season's evaluation time zone. This
// backs the administrative manual-evaluation trigger.
func (s *EvaluationService) EvaluateFinishedForDate(ctx context.Context, seasonID string, date time.Time) ([]game.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.EvaluateFinishedForDate")
	defer span.End()

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season %s: %w", seasonID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	finished, err := s.gameRepo.ListBySeasonAndStatus(ctx, seasonID, game.StatusFinished)
	if err != nil {
		return nil, fmt.Errorf("list finished games season=%s: %w", seasonID, err)
	}

	loc := item.Location()
	wantY, wantM, wantD := date.In(loc).Date()
	ids := make([]string, 0, len(finished))
	for _, g := range finished {
		y, m, d := g.KickoffAt.In(loc).Date()
		if y == wantY && m == wantM && d == wantD {
			ids = append(ids, g.ID)
		}
	}

	return s.EvaluateFinished(ctx, ids)
}

// evaluateOne computes and commits a single game's result. The false return
// without error means the game was no longer in FINISHED status, which
// happens when a concurrent scheduler tick already processed it.
func (s *EvaluationService) evaluateOne(ctx context.Context, gameID string) (game.Result, bool, error) {
	item, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Result{}, false, fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return game.Result{}, false, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	if item.Status != game.StatusFinished {
		s.logger.DebugContext(ctx, "game not awaiting evaluation, skipping",
			"game_id", gameID, "status", string(item.Status))
		return game.Result{}, false, nil
	}

	seasonItem, exists, err := s.seasonRepo.GetByID(ctx, item.SeasonID)
	if err != nil {
		return game.Result{}, false, fmt.Errorf("get season %s: %w", item.SeasonID, err)
	}
	if !exists {
		return game.Result{}, false, fmt.Errorf("%w: season=%s", ErrNotFound, item.SeasonID)
	}

	result, err := s.strategyFor(seasonItem).computeResult(ctx, item)
	if err != nil {
		return game.Result{}, false, fmt.Errorf("compute result game=%s: %w", gameID, err)
	}

	committed := false
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.gameRepo.FinalizeResult(ctx, result)
		if err != nil {
			return fmt.Errorf("finalize game result: %w", err)
		}
		if !ok {
			// Lost the race against another evaluator; nothing to undo.
			return nil
		}
		committed = true

		if err := s.standingSvc.ApplyResult(ctx, result); err != nil {
			return err
		}
		if err := s.standingSvc.RecomputePositions(ctx, result.SeasonID); err != nil {
			return err
		}
		if err := s.liveRepo.Deactivate(ctx, result.GameID); err != nil {
			return fmt.Errorf("deactivate live game: %w", err)
		}
		return nil
	})
	if err != nil {
		return game.Result{}, false, err
	}
	if !committed {
		return game.Result{}, false, nil
	}

	s.logger.InfoContext(ctx, "game evaluated",
		"game_id", result.GameID,
		"season_id", result.SeasonID,
		"home_score", result.HomeScore,
		"away_score", result.AwayScore,
		"winner_team_id", result.WinnerTeamID,
	)

	return result, true, nil
}

func (s *EvaluationService) strategyFor(item season.Season) resultStrategy {
	if item.SnapshotScoring {
		return &snapshotDifferentialStrategy{snapshotRepo: s.snapshotRepo, logger: s.logger}
	}
	return &liveAccumulationStrategy{liveRepo: s.liveRepo, logger: s.logger}
}

func (s *EvaluationService) broadcast(ctx context.Context, results []game.Result) {
	if s.broadcastSvc == nil {
		return
	}
	if err := s.broadcastSvc.BroadcastEvaluation(ctx, results); err != nil {
		s.logger.ErrorContext(ctx, "broadcast evaluation failed", "game_count", len(results), "error", err)
	}
}

// liveAccumulationStrategy reads the score accrued onto the live game while
// it was in progress. A missing live game degrades to 0-0 rather than
// failing, since a finished game must always resolve to a result.
type liveAccumulationStrategy struct {
	liveRepo livegame.Repository
	logger   *logging.Logger
}

func (s *liveAccumulationStrategy) computeResult(ctx context.Context, item game.Game) (game.Result, error) {
	live, exists, err := s.liveRepo.GetByGameID(ctx, item.ID)
	if err != nil {
		return game.Result{}, fmt.Errorf("get live game: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "live game missing at evaluation, scoring 0-0", "game_id", item.ID)
	}

	return buildResult(item, live.HomeScore, live.AwayScore), nil
}

// snapshotDifferentialStrategy scores each side by its conditioning gain
// between the start and end snapshots. A missing snapshot counts as a zero
// delta for that side.
type snapshotDifferentialStrategy struct {
	snapshotRepo snapshot.Repository
	logger       *logging.Logger
}

func (s *snapshotDifferentialStrategy) computeResult(ctx context.Context, item game.Game) (game.Result, error) {
	homeDelta, err := s.teamDelta(ctx, item.ID, item.HomeTeamID)
	if err != nil {
		return game.Result{}, err
	}
	awayDelta, err := s.teamDelta(ctx, item.ID, item.AwayTeamID)
	if err != nil {
		return game.Result{}, err
	}

	return buildResult(item, homeDelta, awayDelta), nil
}

func (s *snapshotDifferentialStrategy) teamDelta(ctx context.Context, gameID, teamID string) (int, error) {
	start, startExists, err := s.snapshotRepo.Get(ctx, gameID, teamID, snapshot.KindStart)
	if err != nil {
		return 0, fmt.Errorf("get start snapshot team=%s: %w", teamID, err)
	}
	end, endExists, err := s.snapshotRepo.Get(ctx, gameID, teamID, snapshot.KindEnd)
	if err != nil {
		return 0, fmt.Errorf("get end snapshot team=%s: %w", teamID, err)
	}
	if !startExists || !endExists {
		s.logger.WarnContext(ctx, "snapshot missing, scoring zero delta",
			"game_id", gameID,
			"team_id", teamID,
			"start_present", startExists,
			"end_present", endExists,
		)
		return 0, nil
	}

	delta := end.Total() - start.Total()
	if delta < 0 {
		delta = 0
	}
	return delta, nil
}

func buildResult(item game.Game, homeScore, awayScore int) game.Result {
	result := game.Result{
		GameID:     item.ID,
		SeasonID:   item.SeasonID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
	switch {
	case homeScore > awayScore:
		result.WinnerTeamID = item.HomeTeamID
	case awayScore > homeScore:
		result.WinnerTeamID = item.AwayTeamID
	}
	return result
}
