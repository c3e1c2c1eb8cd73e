package memory

import (
	"context"
	"sync"

	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams ...team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}
	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.teams[id]
	return item, ok, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, ids []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.teams[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type MemberRepository struct {
	mu     sync.RWMutex
	byTeam map[string][]member.TeamMember
}

func NewMemberRepository(members ...member.TeamMember) *MemberRepository {
	byTeam := make(map[string][]member.TeamMember)
	for _, item := range members {
		byTeam[item.TeamID] = append(byTeam[item.TeamID], item)
	}
	return &MemberRepository{byTeam: byTeam}
}

func (r *MemberRepository) ListActiveByTeam(_ context.Context, teamID string) ([]member.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]member.TeamMember, 0)
	for _, item := range r.byTeam[teamID] {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MemberRepository) AggregateConditioning(_ context.Context, teamID string) (member.Conditioning, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cond member.Conditioning
	for _, item := range r.byTeam[teamID] {
		if !item.Active {
			continue
		}
		cond.Stamina += item.Stamina
		cond.Strength += item.Strength
		cond.MemberCount++
	}
	return cond, nil
}

// SetConditioning replaces a member's stamina and strength, used by tests and
// the local seed to simulate training between snapshots.
func (r *MemberRepository) SetConditioning(teamID, userID string, stamina, strength int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.byTeam[teamID]
	for i, item := range members {
		if item.UserID == userID {
			members[i].Stamina = stamina
			members[i].Strength = strength
		}
	}
}
