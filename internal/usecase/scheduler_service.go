package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/platform/logging"
)

const defaultTickInterval = 30 * time.Second

// SchedulerService drives every game through its lifecycle without manual
// intervention: due SCHEDULED games start, overdue IN_PROGRESS games finish,
// and finished games get evaluated when the season opts in. It is constructed
// once at process startup and owns the whole loop; nothing else moves games
// between statuses on a timer.
type SchedulerService struct {
	seasonRepo    season.Repository
	gameRepo      game.Repository
	liveRepo      livegame.Repository
	snapshotSvc   *SnapshotService
	evaluationSvc *EvaluationService
	clock         clockwork.Clock
	interval      time.Duration
	logger        *logging.Logger
}

func NewSchedulerService(
	seasonRepo season.Repository,
	gameRepo game.Repository,
	liveRepo livegame.Repository,
	snapshotSvc *SnapshotService,
	evaluationSvc *EvaluationService,
	clock clockwork.Clock,
	interval time.Duration,
	logger *logging.Logger,
) *SchedulerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = defaultTickInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SchedulerService{
		seasonRepo:    seasonRepo,
		gameRepo:      gameRepo,
		liveRepo:      liveRepo,
		snapshotSvc:   snapshotSvc,
		evaluationSvc: evaluationSvc,
		clock:         clock,
		interval:      interval,
		logger:        logger,
	}
}

// Run ticks until the context is cancelled. Each tick is independent; an error
// inside one tick is logged and the loop keeps going.
func (s *SchedulerService) Run(ctx context.Context) {
	s.logger.InfoContext(ctx, "scheduler started", "interval", s.interval.String())

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "scheduler stopped")
			return
		case <-ticker.Chan():
			if err := s.Tick(ctx); err != nil {
				s.logger.ErrorContext(ctx, "scheduler tick failed", "error", err)
			}
		}
	}
}

// Tick runs one full pass over every active season. Exported so the manual
// trigger endpoint and tests can drive the scheduler without the timer.
func (s *SchedulerService) Tick(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchedulerService.Tick")
	defer span.End()

	seasons, err := s.seasonRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active seasons: %w", err)
	}

	for _, item := range seasons {
		if err := s.processSeason(ctx, item); err != nil {
			s.logger.ErrorContext(ctx, "process season failed", "season_id", item.ID, "error", err)
		}
	}

	return nil
}

func (s *SchedulerService) processSeason(ctx context.Context, item season.Season) error {
	now := s.clock.Now().UTC()

	if err := s.startDueGames(ctx, item, now); err != nil {
		return err
	}
	if err := s.finishOverdueGames(ctx, item, now); err != nil {
		return err
	}
	return s.completeSeasonIfDone(ctx, item)
}

// startDueGames moves SCHEDULED games whose kickoff has passed into
// IN_PROGRESS and opens their live score tracking. Snapshot-scored seasons
// also capture both teams' start snapshots here.
func (s *SchedulerService) startDueGames(ctx context.Context, item season.Season, now time.Time) error {
	due, err := s.gameRepo.ListDue(ctx, item.ID, game.StatusScheduled, now)
	if err != nil {
		return fmt.Errorf("list due scheduled games: %w", err)
	}

	for _, g := range due {
		ok, err := s.gameRepo.UpdateStatus(ctx, g.ID, game.StatusScheduled, game.StatusInProgress)
		if err != nil {
			s.logger.ErrorContext(ctx, "start game failed", "game_id", g.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}

		if err := s.liveRepo.Create(ctx, livegame.LiveGame{GameID: g.ID, Active: true}); err != nil {
			s.logger.ErrorContext(ctx, "create live game failed", "game_id", g.ID, "error", err)
		}

		if item.SnapshotScoring {
			s.captureSnapshots(ctx, g, snapshot.KindStart)
		}

		s.logger.InfoContext(ctx, "game started",
			"game_id", g.ID,
			"season_id", item.ID,
			"home_team_id", g.HomeTeamID,
			"away_team_id", g.AwayTeamID,
		)
	}

	return nil
}

// finishOverdueGames moves IN_PROGRESS games past their duration into
// FINISHED, captures end snapshots for snapshot-scored seasons, and hands the
// batch to the evaluation engine when auto-evaluation is on.
func (s *SchedulerService) finishOverdueGames(ctx context.Context, item season.Season, now time.Time) error {
	cutoff := now.Add(-item.GameDuration())
	overdue, err := s.gameRepo.ListDue(ctx, item.ID, game.StatusInProgress, cutoff)
	if err != nil {
		return fmt.Errorf("list overdue in-progress games: %w", err)
	}

	finished := make([]string, 0, len(overdue))
	for _, g := range overdue {
		if item.SnapshotScoring {
			// End snapshots go first so the evaluation that may follow in the
			// same tick sees both sides of the differential.
			s.captureSnapshots(ctx, g, snapshot.KindEnd)
		}

		ok, err := s.gameRepo.UpdateStatus(ctx, g.ID, game.StatusInProgress, game.StatusFinished)
		if err != nil {
			s.logger.ErrorContext(ctx, "finish game failed", "game_id", g.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}

		finished = append(finished, g.ID)
		s.logger.InfoContext(ctx, "game finished", "game_id", g.ID, "season_id", item.ID)
	}

	if len(finished) > 0 && item.AutoEvaluationEnabled && s.evaluationSvc != nil {
		if _, err := s.evaluationSvc.EvaluateFinished(ctx, finished); err != nil {
			s.logger.ErrorContext(ctx, "auto evaluation failed",
				"season_id", item.ID, "game_count", len(finished), "error", err)
		}
	}

	return nil
}

func (s *SchedulerService) captureSnapshots(ctx context.Context, g game.Game, kind snapshot.Kind) {
	if s.snapshotSvc == nil {
		return
	}
	for _, teamID := range []string{g.HomeTeamID, g.AwayTeamID} {
		if _, err := s.snapshotSvc.Capture(ctx, g.ID, teamID, kind); err != nil {
			s.logger.ErrorContext(ctx, "capture snapshot failed",
				"game_id", g.ID, "team_id", teamID, "kind", string(kind), "error", err)
		}
	}
}

// completeSeasonIfDone marks a season COMPLETED once no game can ever run
// again: everything is either EVALUATED or POSTPONED.
func (s *SchedulerService) completeSeasonIfDone(ctx context.Context, item season.Season) error {
	games, err := s.gameRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list season games: %w", err)
	}
	if len(games) == 0 {
		return nil
	}

	for _, g := range games {
		switch g.Status {
		case game.StatusEvaluated, game.StatusPostponed:
		default:
			return nil
		}
	}

	if err := s.seasonRepo.MarkCompleted(ctx, item.ID); err != nil {
		return fmt.Errorf("mark season completed: %w", err)
	}
	s.logger.InfoContext(ctx, "season completed", "season_id", item.ID)

	return nil
}
