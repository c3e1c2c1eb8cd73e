package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/domain/snapshot"
	"github.com/movearena/team-league/internal/domain/team"
	"github.com/movearena/team-league/internal/infrastructure/repository/memory"
)

// captureBus records every publish so tests can count global and directed
// messages.
type captureBus struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newCaptureBus() *captureBus {
	return &captureBus{messages: make(map[string][][]byte)}
}

func (b *captureBus) Publish(_ context.Context, subject string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages[subject] = append(b.messages[subject], payload)
	return nil
}

func (b *captureBus) count(subject string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages[subject])
}

func (b *captureBus) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, msgs := range b.messages {
		n += len(msgs)
	}
	return n
}

type evaluationEnv struct {
	seasonRepo       *memory.SeasonRepository
	gameRepo         *memory.GameRepository
	liveRepo         *memory.LiveGameRepository
	snapshotRepo     *memory.SnapshotRepository
	standingRepo     *memory.StandingRepository
	notificationRepo *memory.NotificationRepository
	bus              *captureBus
	service          *EvaluationService
}

func newEvaluationEnv(t *testing.T, item season.Season) *evaluationEnv {
	t.Helper()

	env := &evaluationEnv{
		seasonRepo:       memory.NewSeasonRepository(item),
		gameRepo:         memory.NewGameRepository(),
		liveRepo:         memory.NewLiveGameRepository(),
		snapshotRepo:     memory.NewSnapshotRepository(),
		standingRepo:     memory.NewStandingRepository(),
		notificationRepo: memory.NewNotificationRepository(),
		bus:              newCaptureBus(),
	}

	teamRepo := memory.NewTeamRepository(
		team.Team{ID: "team-a", Name: "Alpha"},
		team.Team{ID: "team-b", Name: "Bravo"},
	)
	memberRepo := memory.NewMemberRepository(
		member.TeamMember{TeamID: "team-a", UserID: "user-1", Username: "one", Active: true},
		member.TeamMember{TeamID: "team-a", UserID: "user-2", Username: "two", Active: true},
		member.TeamMember{TeamID: "team-b", UserID: "user-3", Username: "three", Active: true},
		member.TeamMember{TeamID: "team-b", UserID: "user-4", Username: "four", Active: true},
	)

	standingSvc := NewStandingService(env.standingRepo, env.gameRepo, nil)
	if err := standingSvc.Initialize(context.Background(), item.ID, []string{"team-a", "team-b"}); err != nil {
		t.Fatalf("initialize standings: %v", err)
	}
	broadcastSvc := NewBroadcastService(env.bus, teamRepo, memberRepo, env.notificationRepo, nil)

	env.service = NewEvaluationService(
		env.gameRepo, env.seasonRepo, env.liveRepo, env.snapshotRepo,
		standingSvc, broadcastSvc, nil, 2, nil,
	)
	return env
}

func (env *evaluationEnv) addFinishedGame(t *testing.T, id string, seasonID string) game.Game {
	t.Helper()

	item := game.Game{
		ID:         id,
		SeasonID:   seasonID,
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Week:       1,
		KickoffAt:  time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC),
		Status:     game.StatusFinished,
	}
	if err := env.gameRepo.InsertBatch(context.Background(), []game.Game{item}); err != nil {
		t.Fatalf("insert game: %v", err)
	}
	return item
}

func TestEvaluationService_Evaluate_LiveAccumulation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newEvaluationEnv(t, testSeason("season-1"))
	env.addFinishedGame(t, "g1", "season-1")

	events := []livegame.ScoreEvent{
		{ID: "e1", GameID: "g1", UserID: "user-1", TeamID: "team-a", Side: livegame.SideHome, Points: 2},
		{ID: "e2", GameID: "g1", UserID: "user-2", TeamID: "team-a", Side: livegame.SideHome, Points: 1},
		{ID: "e3", GameID: "g1", UserID: "user-3", TeamID: "team-b", Side: livegame.SideAway, Points: 1},
	}
	for _, e := range events {
		if err := env.liveRepo.AppendEvent(ctx, e); err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	result, err := env.service.Evaluate(ctx, "g1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.HomeScore != 3 || result.AwayScore != 1 || result.WinnerTeamID != "team-a" {
		t.Fatalf("unexpected result: %+v", result)
	}

	item, ok, err := env.gameRepo.GetByID(ctx, "g1")
	if err != nil || !ok {
		t.Fatalf("get game: ok=%v err=%v", ok, err)
	}
	if item.Status != game.StatusEvaluated {
		t.Fatalf("expected EVALUATED status, got %s", item.Status)
	}
	if item.HomeScore == nil || *item.HomeScore != 3 || item.AwayScore == nil || *item.AwayScore != 1 {
		t.Fatalf("scores not persisted: %+v", item)
	}

	a, _, err := env.standingRepo.Get(ctx, "season-1", "team-a")
	if err != nil {
		t.Fatalf("get standing: %v", err)
	}
	if a.Points != 3 || a.Won != 1 || a.Position != 1 {
		t.Fatalf("unexpected winner standing: %+v", a)
	}

	live, _, err := env.liveRepo.GetByGameID(ctx, "g1")
	if err != nil {
		t.Fatalf("get live game: %v", err)
	}
	if live.Active {
		t.Fatal("live game should be deactivated after evaluation")
	}

	// One global message, one directed message per active member.
	if got := env.bus.count(SubjectGamesEvaluated); got != 1 {
		t.Fatalf("expected 1 global broadcast, got %d", got)
	}
	if got := env.bus.total(); got != 5 {
		t.Fatalf("expected 5 published messages, got %d", got)
	}
	rows, err := env.notificationRepo.ListByUserSince(ctx, "user-3", time.Time{})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 durable notification for user-3, got %d", len(rows))
	}
}

func TestEvaluationService_Evaluate_SnapshotDifferential(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	item := testSeason("season-1")
	item.SnapshotScoring = true
	env := newEvaluationEnv(t, item)
	env.addFinishedGame(t, "g1", "season-1")

	snapshots := []snapshot.TeamSnapshot{
		{GameID: "g1", TeamID: "team-a", Kind: snapshot.KindStart, Stamina: 60, Strength: 40},
		{GameID: "g1", TeamID: "team-a", Kind: snapshot.KindEnd, Stamina: 70, Strength: 55},
		{GameID: "g1", TeamID: "team-b", Kind: snapshot.KindStart, Stamina: 10, Strength: 10},
		{GameID: "g1", TeamID: "team-b", Kind: snapshot.KindEnd, Stamina: 20, Strength: 13},
	}
	for _, s := range snapshots {
		if err := env.snapshotRepo.Upsert(ctx, s); err != nil {
			t.Fatalf("upsert snapshot: %v", err)
		}
	}

	result, err := env.service.Evaluate(ctx, "g1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.HomeScore != 25 || result.AwayScore != 13 || result.WinnerTeamID != "team-a" {
		t.Fatalf("unexpected differential result: %+v", result)
	}
}

func TestEvaluationService_Evaluate_MissingSnapshotScoresZero(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	item := testSeason("season-1")
	item.SnapshotScoring = true
	env := newEvaluationEnv(t, item)
	env.addFinishedGame(t, "g1", "season-1")

	// Only the away side has both snapshots; home degrades to zero.
	snapshots := []snapshot.TeamSnapshot{
		{GameID: "g1", TeamID: "team-b", Kind: snapshot.KindStart, Stamina: 5, Strength: 5},
		{GameID: "g1", TeamID: "team-b", Kind: snapshot.KindEnd, Stamina: 9, Strength: 8},
	}
	for _, s := range snapshots {
		if err := env.snapshotRepo.Upsert(ctx, s); err != nil {
			t.Fatalf("upsert snapshot: %v", err)
		}
	}

	result, err := env.service.Evaluate(ctx, "g1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.HomeScore != 0 || result.AwayScore != 7 || result.WinnerTeamID != "team-b" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestEvaluationService_Evaluate_MissingLiveGameIsGoallessDraw(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newEvaluationEnv(t, testSeason("season-1"))
	env.addFinishedGame(t, "g1", "season-1")

	result, err := env.service.Evaluate(ctx, "g1")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.HomeScore != 0 || result.AwayScore != 0 || result.WinnerTeamID != "" {
		t.Fatalf("expected goalless draw, got %+v", result)
	}
	if !result.Draw() {
		t.Fatal("expected result to report a draw")
	}
}

func TestEvaluationService_Evaluate_SecondRunConflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newEvaluationEnv(t, testSeason("season-1"))
	env.addFinishedGame(t, "g1", "season-1")

	if _, err := env.service.Evaluate(ctx, "g1"); err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	if _, err := env.service.Evaluate(ctx, "g1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on re-evaluation, got %v", err)
	}

	// Standings must not double-count.
	a, _, err := env.standingRepo.Get(ctx, "season-1", "team-a")
	if err != nil {
		t.Fatalf("get standing: %v", err)
	}
	if a.Played != 1 {
		t.Fatalf("expected 1 played game after re-evaluation attempt, got %d", a.Played)
	}
}

func TestEvaluationService_EvaluateFinished_SkipsFailedGames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newEvaluationEnv(t, testSeason("season-1"))
	env.addFinishedGame(t, "g1", "season-1")
	env.addFinishedGame(t, "g2", "season-1")

	results, err := env.service.EvaluateFinished(ctx, []string{"g1", "missing-game", "g2"})
	if err != nil {
		t.Fatalf("evaluate finished: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 evaluated games, got %d", len(results))
	}
	if got := env.bus.count(SubjectGamesEvaluated); got != 1 {
		t.Fatalf("expected one combined broadcast, got %d", got)
	}
}

func TestEvaluationService_EvaluateFinishedForDate_FiltersByCalendarDay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newEvaluationEnv(t, testSeason("season-1"))
	g1 := env.addFinishedGame(t, "g1", "season-1")
	g2 := env.addFinishedGame(t, "g2", "season-1")
	g2.KickoffAt = g1.KickoffAt.AddDate(0, 0, 7)
	if err := env.gameRepo.InsertBatch(ctx, []game.Game{g2}); err != nil {
		t.Fatalf("update game kickoff: %v", err)
	}

	results, err := env.service.EvaluateFinishedForDate(ctx, "season-1", g1.KickoffAt)
	if err != nil {
		t.Fatalf("evaluate for date: %v", err)
	}
	if len(results) != 1 || results[0].GameID != "g1" {
		t.Fatalf("expected only g1 evaluated, got %+v", results)
	}

	item, _, err := env.gameRepo.GetByID(ctx, "g2")
	if err != nil {
		t.Fatalf("get g2: %v", err)
	}
	if item.Status != game.StatusFinished {
		t.Fatalf("g2 should stay FINISHED, got %s", item.Status)
	}
}
