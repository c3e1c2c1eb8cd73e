package cache

import (
	"context"
	"testing"
	"time"

	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/team"
	basecache "github.com/movearena/team-league/internal/platform/cache"
)

type countingTeamRepo struct {
	calls int
	teams map[string]team.Team
}

func (r *countingTeamRepo) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.calls++
	item, ok := r.teams[id]
	return item, ok, nil
}

func (r *countingTeamRepo) ListByIDs(_ context.Context, ids []string) ([]team.Team, error) {
	r.calls++
	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.teams[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type countingMemberRepo struct {
	listCalls      int
	aggregateCalls int
	members        []member.TeamMember
}

func (r *countingMemberRepo) ListActiveByTeam(_ context.Context, teamID string) ([]member.TeamMember, error) {
	r.listCalls++
	out := make([]member.TeamMember, 0, len(r.members))
	for _, m := range r.members {
		if m.TeamID == teamID && m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *countingMemberRepo) AggregateConditioning(_ context.Context, teamID string) (member.Conditioning, error) {
	r.aggregateCalls++
	var out member.Conditioning
	for _, m := range r.members {
		if m.TeamID == teamID && m.Active {
			out.Stamina += m.Stamina
			out.Strength += m.Strength
			out.MemberCount++
		}
	}
	return out, nil
}

func TestTeamRepository_CachesReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingTeamRepo{teams: map[string]team.Team{
		"team-1": {ID: "team-1", Name: "Alpha"},
		"team-2": {ID: "team-2", Name: "Bravo"},
	}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		item, exists, err := repo.GetByID(ctx, "team-1")
		if err != nil {
			t.Fatalf("get team: %v", err)
		}
		if !exists || item.Name != "Alpha" {
			t.Fatalf("unexpected team: %+v exists=%v", item, exists)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected 1 backing call, got %d", next.calls)
	}

	// Same id set in different order must hit the same key.
	if _, err := repo.ListByIDs(ctx, []string{"team-2", "team-1"}); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if _, err := repo.ListByIDs(ctx, []string{"team-1", "team-2"}); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("expected 2 backing calls after cached list, got %d", next.calls)
	}
}

func TestMemberRepository_CachesListsButNotAggregates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingMemberRepo{members: []member.TeamMember{
		{TeamID: "team-1", UserID: "user-1", Active: true, Stamina: 10, Strength: 8},
		{TeamID: "team-1", UserID: "user-2", Active: true, Stamina: 6, Strength: 4},
	}}
	repo := NewMemberRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		members, err := repo.ListActiveByTeam(ctx, "team-1")
		if err != nil {
			t.Fatalf("list members: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
	}
	if next.listCalls != 1 {
		t.Fatalf("expected 1 backing list call, got %d", next.listCalls)
	}

	for i := 0; i < 2; i++ {
		agg, err := repo.AggregateConditioning(ctx, "team-1")
		if err != nil {
			t.Fatalf("aggregate conditioning: %v", err)
		}
		if agg.Stamina != 16 || agg.Strength != 12 || agg.MemberCount != 2 {
			t.Fatalf("unexpected aggregate: %+v", agg)
		}
	}
	if next.aggregateCalls != 2 {
		t.Fatalf("expected aggregates to bypass the cache, got %d calls", next.aggregateCalls)
	}
}
