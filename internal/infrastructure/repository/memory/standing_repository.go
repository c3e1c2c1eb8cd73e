package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/movearena/team-league/internal/domain/standing"
)

type standingKey struct {
	seasonID string
	teamID   string
}

type StandingRepository struct {
	mu        sync.RWMutex
	standings map[standingKey]standing.Standing
	order     []standingKey
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{standings: make(map[standingKey]standing.Standing)}
}

func (r *StandingRepository) InitializeTeams(_ context.Context, seasonID string, teamIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, teamID := range teamIDs {
		key := standingKey{seasonID, teamID}
		if _, exists := r.standings[key]; exists {
			continue
		}
		r.standings[key] = standing.Standing{SeasonID: seasonID, TeamID: teamID}
		r.order = append(r.order, key)
	}
	return nil
}

func (r *StandingRepository) Get(_ context.Context, seasonID, teamID string) (standing.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.standings[standingKey{seasonID, teamID}]
	return item, ok, nil
}

// ListBySeason returns standings ordered by position when set, falling back to
// insertion order for freshly initialized rows.
func (r *StandingRepository) ListBySeason(_ context.Context, seasonID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for _, key := range r.order {
		if key.seasonID != seasonID {
			continue
		}
		out = append(out, r.standings[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position == 0 || out[j].Position == 0 {
			return false
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *StandingRepository) Upsert(_ context.Context, item standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := standingKey{item.SeasonID, item.TeamID}
	if _, exists := r.standings[key]; !exists {
		r.order = append(r.order, key)
	}
	r.standings[key] = item
	return nil
}

func (r *StandingRepository) UpdatePositions(_ context.Context, seasonID string, positionByTeam map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for teamID, position := range positionByTeam {
		key := standingKey{seasonID, teamID}
		item, ok := r.standings[key]
		if !ok {
			continue
		}
		item.Position = position
		r.standings[key] = item
	}
	return nil
}
