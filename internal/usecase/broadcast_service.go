package usecase

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/notification"
	"github.com/movearena/team-league/internal/domain/team"
	"github.com/movearena/team-league/internal/platform/logging"
)

const (
	// SubjectGamesEvaluated is the season-independent global topic.
	SubjectGamesEvaluated = "league.games.evaluated"

	defaultFanOutWorkers = 8

	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeDraw = "draw"
)

// UserSubject is the per-user directed topic.
func UserSubject(userID string) string {
	return "user." + userID + ".notifications"
}

// Bus is the publish side of the broadcast mechanism. Delivery is
// fire-and-forget; the engine never depends on acknowledgment or replay.
type Bus interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

type noopBus struct{}

func (noopBus) Publish(context.Context, string, []byte) error { return nil }

func NewNoopBus() Bus { return noopBus{} }

type EvaluationMessage struct {
	EvaluatedCount   int                 `json:"evaluated_count"`
	StandingsUpdated bool                `json:"standings_updated"`
	Games            []GameResultMessage `json:"games"`
}

type GameResultMessage struct {
	GameID       string `json:"game_id"`
	SeasonID     string `json:"season_id"`
	HomeTeamID   string `json:"home_team_id"`
	AwayTeamID   string `json:"away_team_id"`
	HomeScore    int    `json:"home_score"`
	AwayScore    int    `json:"away_score"`
	WinnerTeamID string `json:"winner_team_id,omitempty"`
}

// MemberResultMessage frames a game's outcome from one member's perspective.
type MemberResultMessage struct {
	GameID        string `json:"game_id"`
	SeasonID      string `json:"season_id"`
	TeamID        string `json:"team_id"`
	TeamScore     int    `json:"team_score"`
	OpponentName  string `json:"opponent_name"`
	OpponentScore int    `json:"opponent_score"`
	Outcome       string `json:"outcome"`
}

type BroadcastService struct {
	bus              Bus
	teamRepo         team.Repository
	memberRepo       member.Repository
	notificationRepo notification.Repository
	fanOutWorkers    int
	logger           *logging.Logger
	now              func() time.Time
}

func NewBroadcastService(
	bus Bus,
	teamRepo team.Repository,
	memberRepo member.Repository,
	notificationRepo notification.Repository,
	logger *logging.Logger,
) *BroadcastService {
	if bus == nil {
		bus = NewNoopBus()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BroadcastService{
		bus:              bus,
		teamRepo:         teamRepo,
		memberRepo:       memberRepo,
		notificationRepo: notificationRepo,
		fanOutWorkers:    defaultFanOutWorkers,
		logger:           logger,
		now:              time.Now,
	}
}

// BroadcastEvaluation publishes one global summary for the whole batch, then
// one directed notification per active member of both teams of every game.
// A durable notification row is written before each publish so missed
// real-time events can be recovered by polling.
func (s *BroadcastService) BroadcastEvaluation(ctx context.Context, results []game.Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BroadcastService.BroadcastEvaluation")
	defer span.End()

	if len(results) == 0 {
		return nil
	}

	global := EvaluationMessage{
		EvaluatedCount:   len(results),
		StandingsUpdated: true,
		Games:            make([]GameResultMessage, 0, len(results)),
	}
	for _, r := range results {
		global.Games = append(global.Games, GameResultMessage{
			GameID:       r.GameID,
			SeasonID:     r.SeasonID,
			HomeTeamID:   r.HomeTeamID,
			AwayTeamID:   r.AwayTeamID,
			HomeScore:    r.HomeScore,
			AwayScore:    r.AwayScore,
			WinnerTeamID: r.WinnerTeamID,
		})
	}

	payload, err := sonic.Marshal(global)
	if err != nil {
		return fmt.Errorf("marshal evaluation broadcast: %w", err)
	}
	if err := s.bus.Publish(ctx, SubjectGamesEvaluated, payload); err != nil {
		s.logger.ErrorContext(ctx, "publish global evaluation event failed", "error", err)
	}

	for _, r := range results {
		if err := s.notifyGameMembers(ctx, r); err != nil {
			s.logger.ErrorContext(ctx, "notify game members failed", "game_id", r.GameID, "error", err)
		}
	}

	return nil
}

func (s *BroadcastService) notifyGameMembers(ctx context.Context, result game.Result) error {
	names, err := s.teamNames(ctx, result.HomeTeamID, result.AwayTeamID)
	if err != nil {
		return err
	}

	homeMembers, err := s.memberRepo.ListActiveByTeam(ctx, result.HomeTeamID)
	if err != nil {
		return fmt.Errorf("list home team members team=%s: %w", result.HomeTeamID, err)
	}
	awayMembers, err := s.memberRepo.ListActiveByTeam(ctx, result.AwayTeamID)
	if err != nil {
		return fmt.Errorf("list away team members team=%s: %w", result.AwayTeamID, err)
	}

	fanOut := pool.New().WithMaxGoroutines(s.fanOutWorkers)
	for _, m := range homeMembers {
		m := m
		msg := MemberResultMessage{
			GameID:        result.GameID,
			SeasonID:      result.SeasonID,
			TeamID:        result.HomeTeamID,
			TeamScore:     result.HomeScore,
			OpponentName:  names[result.AwayTeamID],
			OpponentScore: result.AwayScore,
			Outcome:       outcomeFor(result, result.HomeTeamID),
		}
		fanOut.Go(func() { s.notifyMember(ctx, m, msg) })
	}
	for _, m := range awayMembers {
		m := m
		msg := MemberResultMessage{
			GameID:        result.GameID,
			SeasonID:      result.SeasonID,
			TeamID:        result.AwayTeamID,
			TeamScore:     result.AwayScore,
			OpponentName:  names[result.HomeTeamID],
			OpponentScore: result.HomeScore,
			Outcome:       outcomeFor(result, result.AwayTeamID),
		}
		fanOut.Go(func() { s.notifyMember(ctx, m, msg) })
	}
	fanOut.Wait()

	return nil
}

func (s *BroadcastService) notifyMember(ctx context.Context, m member.TeamMember, msg MemberResultMessage) {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal member notification failed", "user_id", m.UserID, "error", err)
		return
	}

	// Durable row first: the real-time publish may be lost, the row may not.
	if s.notificationRepo != nil {
		record := notification.Notification{
			ID:        uuid.NewString(),
			UserID:    m.UserID,
			Kind:      notification.KindGameEvaluated,
			Payload:   payload,
			CreatedAt: s.now().UTC(),
		}
		if err := s.notificationRepo.Insert(ctx, record); err != nil {
			s.logger.ErrorContext(ctx, "insert notification record failed", "user_id", m.UserID, "error", err)
		}
	}

	if err := s.bus.Publish(ctx, UserSubject(m.UserID), payload); err != nil {
		s.logger.WarnContext(ctx, "publish member notification failed",
			"user_id", m.UserID, "game_id", msg.GameID, "error", err)
	}
}

func (s *BroadcastService) teamNames(ctx context.Context, teamIDs ...string) (map[string]string, error) {
	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("list teams for broadcast: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

func outcomeFor(result game.Result, teamID string) string {
	switch {
	case result.WinnerTeamID == "":
		return OutcomeDraw
	case result.WinnerTeamID == teamID:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}
