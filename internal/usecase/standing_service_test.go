package usecase

import (
	"context"
	"testing"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/standing"
	"github.com/movearena/team-league/internal/infrastructure/repository/memory"
)

func TestStandingService_ApplyResult_AccumulatesRecordAndPoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	standingRepo := memory.NewStandingRepository()
	service := NewStandingService(standingRepo, memory.NewGameRepository(), nil)

	if err := service.Initialize(ctx, "season-1", []string{"team-a", "team-b"}); err != nil {
		t.Fatalf("initialize standings: %v", err)
	}

	results := []game.Result{
		{GameID: "g1", SeasonID: "season-1", HomeTeamID: "team-a", AwayTeamID: "team-b", HomeScore: 2, AwayScore: 1, WinnerTeamID: "team-a"},
		{GameID: "g2", SeasonID: "season-1", HomeTeamID: "team-b", AwayTeamID: "team-a", HomeScore: 0, AwayScore: 0},
	}
	for _, r := range results {
		if err := service.ApplyResult(ctx, r); err != nil {
			t.Fatalf("apply result %s: %v", r.GameID, err)
		}
	}

	a, ok, err := standingRepo.Get(ctx, "season-1", "team-a")
	if err != nil || !ok {
		t.Fatalf("get team-a standing: ok=%v err=%v", ok, err)
	}
	if a.Played != 2 || a.Won != 1 || a.Draw != 1 || a.Lost != 0 || a.Points != 4 {
		t.Fatalf("unexpected team-a standing: %+v", a)
	}

	b, ok, err := standingRepo.Get(ctx, "season-1", "team-b")
	if err != nil || !ok {
		t.Fatalf("get team-b standing: ok=%v err=%v", ok, err)
	}
	if b.Played != 2 || b.Won != 0 || b.Draw != 1 || b.Lost != 1 || b.Points != 1 {
		t.Fatalf("unexpected team-b standing: %+v", b)
	}
}

func TestRankStandings_HeadToHeadBreaksEqualPoints(t *testing.T) {
	t.Parallel()

	// A and B finish level on points. A won both mutual games, so A ranks
	// first even though B outscored everyone overall.
	standings := []standing.Standing{
		{SeasonID: "s", TeamID: "team-b", Points: 6},
		{SeasonID: "s", TeamID: "team-a", Points: 6},
	}
	results := []game.Result{
		{GameID: "g1", SeasonID: "s", HomeTeamID: "team-a", AwayTeamID: "team-b", HomeScore: 1, AwayScore: 0, WinnerTeamID: "team-a"},
		{GameID: "g2", SeasonID: "s", HomeTeamID: "team-b", AwayTeamID: "team-a", HomeScore: 0, AwayScore: 2, WinnerTeamID: "team-a"},
		{GameID: "g3", SeasonID: "s", HomeTeamID: "team-b", AwayTeamID: "team-c", HomeScore: 9, AwayScore: 0, WinnerTeamID: "team-b"},
	}

	ranked := RankStandings(standings, results)
	if ranked[0].TeamID != "team-a" || ranked[1].TeamID != "team-b" {
		t.Fatalf("expected head-to-head winner first, got %s then %s", ranked[0].TeamID, ranked[1].TeamID)
	}
}

func TestRankStandings_TotalScoredBreaksHeadToHeadTie(t *testing.T) {
	t.Parallel()

	// Mutual games split one win each: head-to-head is level at 3 points, so
	// total points scored across the season decides.
	standings := []standing.Standing{
		{SeasonID: "s", TeamID: "team-a", Points: 3},
		{SeasonID: "s", TeamID: "team-b", Points: 3},
	}
	results := []game.Result{
		{GameID: "g1", SeasonID: "s", HomeTeamID: "team-a", AwayTeamID: "team-b", HomeScore: 1, AwayScore: 0, WinnerTeamID: "team-a"},
		{GameID: "g2", SeasonID: "s", HomeTeamID: "team-b", AwayTeamID: "team-a", HomeScore: 4, AwayScore: 0, WinnerTeamID: "team-b"},
	}

	ranked := RankStandings(standings, results)
	if ranked[0].TeamID != "team-b" {
		t.Fatalf("expected higher-scoring team first, got %s", ranked[0].TeamID)
	}
}

func TestRankStandings_FullTieKeepsInputOrder(t *testing.T) {
	t.Parallel()

	standings := []standing.Standing{
		{SeasonID: "s", TeamID: "team-x"},
		{SeasonID: "s", TeamID: "team-y"},
		{SeasonID: "s", TeamID: "team-z"},
	}

	ranked := RankStandings(standings, nil)
	for i, want := range []string{"team-x", "team-y", "team-z"} {
		if ranked[i].TeamID != want {
			t.Fatalf("position %d: got %s, want %s", i+1, ranked[i].TeamID, want)
		}
	}
}

func TestStandingService_RecomputePositions_DenseRanks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	standingRepo := memory.NewStandingRepository()
	gameRepo := memory.NewGameRepository()
	service := NewStandingService(standingRepo, gameRepo, nil)

	teams := []string{"team-a", "team-b", "team-c", "team-d"}
	if err := service.Initialize(ctx, "season-1", teams); err != nil {
		t.Fatalf("initialize standings: %v", err)
	}

	// One decisive game; everyone else stays level on zero points.
	result := game.Result{GameID: "g1", SeasonID: "season-1", HomeTeamID: "team-c", AwayTeamID: "team-a", HomeScore: 3, AwayScore: 1, WinnerTeamID: "team-c"}
	seedEvaluatedGame(t, gameRepo, result)
	if err := service.ApplyResult(ctx, result); err != nil {
		t.Fatalf("apply result: %v", err)
	}
	if err := service.RecomputePositions(ctx, "season-1"); err != nil {
		t.Fatalf("recompute positions: %v", err)
	}

	rows, err := standingRepo.ListBySeason(ctx, "season-1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("row %d has position %d, want dense rank %d", i, row.Position, i+1)
		}
	}
	if rows[0].TeamID != "team-c" {
		t.Fatalf("expected team-c on top, got %s", rows[0].TeamID)
	}
}

// seedEvaluatedGame stores an already evaluated game so ListFinishedResults
// sees the result during recompute.
func seedEvaluatedGame(t *testing.T, repo *memory.GameRepository, result game.Result) {
	t.Helper()

	ctx := context.Background()
	err := repo.InsertBatch(ctx, []game.Game{{
		ID:         result.GameID,
		SeasonID:   result.SeasonID,
		HomeTeamID: result.HomeTeamID,
		AwayTeamID: result.AwayTeamID,
		Week:       1,
		Status:     game.StatusFinished,
	}})
	if err != nil {
		t.Fatalf("insert game: %v", err)
	}
	ok, err := repo.FinalizeResult(ctx, result)
	if err != nil || !ok {
		t.Fatalf("finalize game: ok=%v err=%v", ok, err)
	}
}
