package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/infrastructure/repository/memory"
)

var testKickoffSlot = KickoffSlot{Hour: 19, Minute: 0}

// seqIDGenerator hands out id-1, id-2, ... so fixtures are addressable in
// assertions.
type seqIDGenerator struct {
	next int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

func testSeason(id string) season.Season {
	return season.Season{
		ID:                  id,
		LeagueID:            "league-1",
		Name:                "Test Season",
		StartsAt:            time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC),
		EvaluationTimezone:  "UTC",
		GameDurationMinutes: 60,
		Status:              season.StatusActive,
	}
}

func teamIDs(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("team-%d", i+1))
	}
	return out
}

func TestFixtureService_GenerateSeasonFixtures_DoubleRoundRobin(t *testing.T) {
	t.Parallel()

	repo := memory.NewGameRepository()
	service := NewFixtureService(repo, &seqIDGenerator{}, testKickoffSlot, nil)
	item := testSeason("season-1")
	teams := teamIDs(6)

	fixtures, err := service.GenerateSeasonFixtures(context.Background(), item, teams)
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}

	// n*(n-1) games over 2*(n-1) weeks, n/2 games per week.
	if len(fixtures) != 30 {
		t.Fatalf("expected 30 fixtures for 6 teams, got %d", len(fixtures))
	}

	perWeek := make(map[int]int)
	homeCount := make(map[string]int)
	awayCount := make(map[string]int)
	type matchup struct{ home, away string }
	seen := make(map[matchup]int)
	for _, f := range fixtures {
		if f.Week < 1 || f.Week > 10 {
			t.Fatalf("fixture %s has week %d outside 1..10", f.ID, f.Week)
		}
		perWeek[f.Week]++
		homeCount[f.HomeTeamID]++
		awayCount[f.AwayTeamID]++
		seen[matchup{f.HomeTeamID, f.AwayTeamID}]++

		wantKickoff := item.StartsAt.AddDate(0, 0, 7*(f.Week-1))
		if !f.KickoffAt.Equal(wantKickoff) {
			t.Fatalf("fixture %s week %d kickoff %s, want %s", f.ID, f.Week, f.KickoffAt, wantKickoff)
		}
	}

	for week := 1; week <= 10; week++ {
		if perWeek[week] != 3 {
			t.Fatalf("week %d has %d games, want 3", week, perWeek[week])
		}
	}
	for _, teamID := range teams {
		if homeCount[teamID] != 5 || awayCount[teamID] != 5 {
			t.Fatalf("team %s plays %d home and %d away, want 5 and 5",
				teamID, homeCount[teamID], awayCount[teamID])
		}
	}
	// Every ordered pairing exactly once: each pair meets home and away.
	for _, a := range teams {
		for _, b := range teams {
			if a == b {
				continue
			}
			if seen[matchup{a, b}] != 1 {
				t.Fatalf("pairing %s vs %s occurs %d times, want 1", a, b, seen[matchup{a, b}])
			}
		}
	}

	stored, err := repo.ListBySeason(context.Background(), "season-1")
	if err != nil {
		t.Fatalf("list stored fixtures: %v", err)
	}
	if len(stored) != 30 {
		t.Fatalf("expected 30 stored fixtures, got %d", len(stored))
	}
}

func TestFixtureService_GenerateSeasonFixtures_FewerThanTwoTeamsIsNoOp(t *testing.T) {
	t.Parallel()

	repo := memory.NewGameRepository()
	service := NewFixtureService(repo, &seqIDGenerator{}, testKickoffSlot, nil)

	fixtures, err := service.GenerateSeasonFixtures(context.Background(), testSeason("season-1"), []string{"team-1"})
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	if fixtures != nil {
		t.Fatalf("expected no fixtures for a single team, got %d", len(fixtures))
	}

	stored, err := repo.ListBySeason(context.Background(), "season-1")
	if err != nil {
		t.Fatalf("list stored fixtures: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected empty schedule, got %d fixtures", len(stored))
	}
}

func TestFixtureService_GenerateSeasonFixtures_RejectsInvalidTeamSets(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(memory.NewGameRepository(), &seqIDGenerator{}, testKickoffSlot, nil)
	item := testSeason("season-1")

	cases := []struct {
		name  string
		teams []string
	}{
		{name: "odd team count", teams: teamIDs(5)},
		{name: "too many teams", teams: teamIDs(22)},
		{name: "duplicate team", teams: []string{"team-1", "team-2", "team-3", "team-1"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.GenerateSeasonFixtures(context.Background(), item, tc.teams)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestFixtureService_GenerateSeasonFixtures_RejectsOffSlotStart(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(memory.NewGameRepository(), &seqIDGenerator{}, testKickoffSlot, nil)
	item := testSeason("season-1")
	item.StartsAt = time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

	_, err := service.GenerateSeasonFixtures(context.Background(), item, teamIDs(4))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for off-slot start, got %v", err)
	}
}
