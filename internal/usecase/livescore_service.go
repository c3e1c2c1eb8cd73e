package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/platform/logging"
)

// ScoreEventInput is a member contribution as reported by the activity
// ingestion edge. The service resolves side and identity from the game row.
type ScoreEventInput struct {
	GameID         string
	UserID         string
	Username       string
	TeamID         string
	Points         int
	Power          int
	StaminaGained  int
	StrengthGained int
	Description    string
	WorkoutRef     string
}

type LiveScoreService struct {
	gameRepo game.Repository
	liveRepo livegame.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewLiveScoreService(gameRepo game.Repository, liveRepo livegame.Repository, logger *logging.Logger) *LiveScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveScoreService{
		gameRepo: gameRepo,
		liveRepo: liveRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordEvent appends one score event to an in-progress game and accumulates
// its points onto the scoring side. Events against games in any other status
// are rejected, never silently dropped.
func (s *LiveScoreService) RecordEvent(ctx context.Context, input ScoreEventInput) (livegame.ScoreEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.RecordEvent")
	defer span.End()

	if input.GameID == "" || input.UserID == "" || input.TeamID == "" {
		return livegame.ScoreEvent{}, fmt.Errorf("%w: game id, user id and team id are required", ErrInvalidInput)
	}
	if input.Points < 0 {
		return livegame.ScoreEvent{}, fmt.Errorf("%w: points must not be negative", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		return livegame.ScoreEvent{}, fmt.Errorf("get game %s: %w", input.GameID, err)
	}
	if !exists {
		return livegame.ScoreEvent{}, fmt.Errorf("%w: game=%s", ErrNotFound, input.GameID)
	}
	if item.Status != game.StatusInProgress {
		return livegame.ScoreEvent{}, fmt.Errorf("%w: game %s is %s, events need an in-progress game",
			ErrConflict, input.GameID, item.Status)
	}

	var side livegame.Side
	switch input.TeamID {
	case item.HomeTeamID:
		side = livegame.SideHome
	case item.AwayTeamID:
		side = livegame.SideAway
	default:
		return livegame.ScoreEvent{}, fmt.Errorf("%w: team %s plays no part in game %s",
			ErrInvalidInput, input.TeamID, input.GameID)
	}

	event := livegame.ScoreEvent{
		ID:             uuid.NewString(),
		GameID:         input.GameID,
		UserID:         input.UserID,
		Username:       input.Username,
		TeamID:         input.TeamID,
		Side:           side,
		Points:         input.Points,
		Power:          input.Power,
		StaminaGained:  input.StaminaGained,
		StrengthGained: input.StrengthGained,
		Description:    input.Description,
		WorkoutRef:     input.WorkoutRef,
		OccurredAt:     s.now().UTC(),
	}
	if err := s.liveRepo.AppendEvent(ctx, event); err != nil {
		return livegame.ScoreEvent{}, fmt.Errorf("append score event game=%s: %w", input.GameID, err)
	}

	s.logger.DebugContext(ctx, "score event recorded",
		"game_id", event.GameID,
		"user_id", event.UserID,
		"side", string(event.Side),
		"points", event.Points,
	)

	return event, nil
}

// LiveState returns the running score of a game together with its event feed.
func (s *LiveScoreService) LiveState(ctx context.Context, gameID string) (livegame.LiveGame, []livegame.ScoreEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.LiveState")
	defer span.End()

	live, exists, err := s.liveRepo.GetByGameID(ctx, gameID)
	if err != nil {
		return livegame.LiveGame{}, nil, fmt.Errorf("get live game %s: %w", gameID, err)
	}
	if !exists {
		return livegame.LiveGame{}, nil, fmt.Errorf("%w: live game=%s", ErrNotFound, gameID)
	}

	events, err := s.liveRepo.ListEvents(ctx, gameID)
	if err != nil {
		return livegame.LiveGame{}, nil, fmt.Errorf("list score events game=%s: %w", gameID, err)
	}

	return live, events, nil
}
