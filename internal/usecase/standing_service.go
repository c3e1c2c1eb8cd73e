package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/standing"
	"github.com/movearena/team-league/internal/platform/logging"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

type StandingService struct {
	standingRepo standing.Repository
	gameRepo     game.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewStandingService(standingRepo standing.Repository, gameRepo game.Repository, logger *logging.Logger) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingService{
		standingRepo: standingRepo,
		gameRepo:     gameRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Initialize inserts a zeroed standing row per team. Re-running for a season
// is a no-op for rows that already exist.
func (s *StandingService) Initialize(ctx context.Context, seasonID string, teamIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Initialize")
	defer span.End()

	if len(teamIDs) == 0 {
		return nil
	}
	if err := s.standingRepo.InitializeTeams(ctx, seasonID, teamIDs); err != nil {
		return fmt.Errorf("initialize standings season=%s: %w", seasonID, err)
	}
	return nil
}

// ApplyResult awards 3/1/0 points to both sides of an evaluated game. Callers
// run this inside the same transaction as the game's result write.
func (s *StandingService) ApplyResult(ctx context.Context, result game.Result) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ApplyResult")
	defer span.End()

	home, err := s.loadOrZero(ctx, result.SeasonID, result.HomeTeamID)
	if err != nil {
		return err
	}
	away, err := s.loadOrZero(ctx, result.SeasonID, result.AwayTeamID)
	if err != nil {
		return err
	}

	switch {
	case result.HomeScore > result.AwayScore:
		home.Won++
		away.Lost++
	case result.HomeScore < result.AwayScore:
		home.Lost++
		away.Won++
	default:
		home.Draw++
		away.Draw++
	}

	for _, item := range []*standing.Standing{&home, &away} {
		item.Played = item.Won + item.Draw + item.Lost
		item.Points = pointsPerWin*item.Won + pointsPerDraw*item.Draw
		item.UpdatedAt = s.now().UTC()
		if err := s.standingRepo.Upsert(ctx, *item); err != nil {
			return fmt.Errorf("upsert standing season=%s team=%s: %w", item.SeasonID, item.TeamID, err)
		}
	}

	return nil
}

// RecomputePositions re-ranks a season's standings after every result so
// positions stay current. Ordering: points desc, head-to-head points between
// the two tied teams desc, total points scored across the season desc; ties
// beyond that keep input order.
func (s *StandingService) RecomputePositions(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecomputePositions")
	defer span.End()

	standings, err := s.standingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("list standings season=%s: %w", seasonID, err)
	}
	if len(standings) == 0 {
		return nil
	}

	results, err := s.gameRepo.ListFinishedResults(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("list finished results season=%s: %w", seasonID, err)
	}

	ranked := RankStandings(standings, results)

	positions := make(map[string]int, len(ranked))
	for i, item := range ranked {
		positions[item.TeamID] = i + 1
	}
	if err := s.standingRepo.UpdatePositions(ctx, seasonID, positions); err != nil {
		return fmt.Errorf("update standing positions season=%s: %w", seasonID, err)
	}

	return nil
}

func (s *StandingService) loadOrZero(ctx context.Context, seasonID, teamID string) (standing.Standing, error) {
	item, exists, err := s.standingRepo.Get(ctx, seasonID, teamID)
	if err != nil {
		return standing.Standing{}, fmt.Errorf("get standing season=%s team=%s: %w", seasonID, teamID, err)
	}
	if !exists {
		item = standing.Standing{SeasonID: seasonID, TeamID: teamID}
	}
	return item, nil
}

// RankStandings orders standings by the tie-break chain using the season's
// committed results. Stable: teams equal on every criterion keep their input
// order, which is an accepted non-determinism of the ranking.
func RankStandings(standings []standing.Standing, results []game.Result) []standing.Standing {
	totalScored := make(map[string]int)
	for _, r := range results {
		totalScored[r.HomeTeamID] += r.HomeScore
		totalScored[r.AwayTeamID] += r.AwayScore
	}

	ranked := append([]standing.Standing(nil), standings...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		h2hA, h2hB := headToHeadPoints(results, a.TeamID, b.TeamID)
		if h2hA != h2hB {
			return h2hA > h2hB
		}
		return totalScored[a.TeamID] > totalScored[b.TeamID]
	})

	return ranked
}

// headToHeadPoints totals the points each of the two teams earned strictly in
// their mutual games.
func headToHeadPoints(results []game.Result, teamA, teamB string) (int, int) {
	pointsA, pointsB := 0, 0
	for _, r := range results {
		var scoreA, scoreB int
		switch {
		case r.HomeTeamID == teamA && r.AwayTeamID == teamB:
			scoreA, scoreB = r.HomeScore, r.AwayScore
		case r.HomeTeamID == teamB && r.AwayTeamID == teamA:
			scoreB, scoreA = r.HomeScore, r.AwayScore
		default:
			continue
		}

		switch {
		case scoreA > scoreB:
			pointsA += pointsPerWin
		case scoreA < scoreB:
			pointsB += pointsPerWin
		default:
			pointsA += pointsPerDraw
			pointsB += pointsPerDraw
		}
	}
	return pointsA, pointsB
}
