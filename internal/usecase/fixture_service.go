package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/platform/logging"
	idgen "github.com/movearena/team-league/internal/platform/id"
)

const (
	maxSeasonTeams = 20
	maxSeasonSpan  = 365 * 24 * time.Hour
)

// KickoffSlot is the league's canonical weekly kickoff time, evaluated in the
// season's time zone.
type KickoffSlot struct {
	Hour   int
	Minute int
}

type FixtureService struct {
	gameRepo game.Repository
	ids      idgen.Generator
	slot     KickoffSlot
	logger   *logging.Logger
}

func NewFixtureService(gameRepo game.Repository, ids idgen.Generator, slot KickoffSlot, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		gameRepo: gameRepo,
		ids:      ids,
		slot:     slot,
		logger:   logger,
	}
}

// GenerateSeasonFixtures builds a balanced double round-robin schedule for the
// season's teams and persists it in one all-or-nothing insert. The team order
// is the caller's; ties left by the tie-break chain later preserve it.
func (s *FixtureService) GenerateSeasonFixtures(ctx context.Context, item season.Season, teamIDs []string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GenerateSeasonFixtures")
	defer span.End()

	if len(teamIDs) < 2 {
		s.logger.InfoContext(ctx, "season has fewer than two teams, no fixtures generated",
			"season_id", item.ID, "team_count", len(teamIDs))
		return nil, nil
	}
	if len(teamIDs) > maxSeasonTeams {
		return nil, fmt.Errorf("%w: season supports at most %d teams, got %d", ErrInvalidInput, maxSeasonTeams, len(teamIDs))
	}
	if len(teamIDs)%2 != 0 {
		return nil, fmt.Errorf("%w: round-robin needs an even team count, got %d", ErrInvalidInput, len(teamIDs))
	}
	if seen := duplicateTeamID(teamIDs); seen != "" {
		return nil, fmt.Errorf("%w: duplicate team %s in season", ErrInvalidInput, seen)
	}
	if err := s.validateKickoff(item); err != nil {
		return nil, err
	}

	weeks := 2 * (len(teamIDs) - 1)
	lastKickoff := item.StartsAt.AddDate(0, 0, 7*(weeks-1))
	if lastKickoff.Sub(item.StartsAt) > maxSeasonSpan {
		return nil, fmt.Errorf("%w: season span of %d weeks exceeds one year", ErrInvalidInput, weeks)
	}

	pairings := buildRoundRobin(teamIDs)
	fixtures := make([]game.Game, 0, len(teamIDs)*(len(teamIDs)-1))
	for _, pairing := range pairings {
		id, err := s.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate fixture id: %w", err)
		}
		fixtures = append(fixtures, game.Game{
			ID:         id,
			SeasonID:   item.ID,
			HomeTeamID: pairing.home,
			AwayTeamID: pairing.away,
			Week:       pairing.week,
			FirstLeg:   pairing.firstLeg,
			KickoffAt:  item.StartsAt.AddDate(0, 0, 7*(pairing.week-1)),
			Status:     game.StatusScheduled,
		})
	}

	if err := s.gameRepo.InsertBatch(ctx, fixtures); err != nil {
		return nil, fmt.Errorf("insert season fixtures: %w", err)
	}

	s.logger.InfoContext(ctx, "season fixtures generated",
		"season_id", item.ID,
		"team_count", len(teamIDs),
		"fixture_count", len(fixtures),
		"weeks", weeks,
	)

	return fixtures, nil
}

func (s *FixtureService) validateKickoff(item season.Season) error {
	local := item.StartsAt.In(item.Location())
	if local.Hour() != s.slot.Hour || local.Minute() != s.slot.Minute || local.Second() != 0 {
		return fmt.Errorf("%w: season start %s does not fall on the %02d:%02d kickoff slot",
			ErrInvalidInput, local.Format(time.RFC3339), s.slot.Hour, s.slot.Minute)
	}
	return nil
}

type pairing struct {
	home     string
	away     string
	week     int
	firstLeg bool
}

// buildRoundRobin produces a double round-robin via the circle method:
// team[0] stays fixed, the rest rotate one position per round, and position k
// pairs with position n-1-k. The second leg repeats the rounds with venues
// swapped, continuing the week numbers.
func buildRoundRobin(teamIDs []string) []pairing {
	n := len(teamIDs)
	rounds := n - 1
	out := make([]pairing, 0, n*rounds)

	for r := 1; r <= rounds; r++ {
		slots := make([]string, 0, n)
		slots = append(slots, teamIDs[0])
		for i := 0; i < n-1; i++ {
			slots = append(slots, teamIDs[1+(i+r-1)%(n-1)])
		}

		for k := 0; k < n/2; k++ {
			first, second := slots[k], slots[n-1-k]
			// Alternate venues round to round so no team strings together
			// long home or away runs within a leg.
			if r%2 == 0 {
				first, second = second, first
			}
			out = append(out, pairing{home: first, away: second, week: r, firstLeg: true})
		}
	}

	// Second leg mirrors the first: same pairings per round, venues swapped.
	firstLeg := out[:len(out):len(out)]
	for _, p := range firstLeg {
		out = append(out, pairing{home: p.away, away: p.home, week: rounds + p.week, firstLeg: false})
	}

	return out
}

func duplicateTeamID(teamIDs []string) string {
	seen := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
