// Package cache wraps repositories with a TTL read cache. Team rosters and
// member lists change rarely but are read on every broadcast fan-out, so the
// decorators keep those lookups off the database during evaluation bursts.
package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/team"
	basecache "github.com/movearena/team-league/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	key := "team:id:" + id
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []string) ([]team.Team, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	key := "team:ids:" + strings.Join(sorted, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type MemberRepository struct {
	next  member.Repository
	cache *basecache.Store
}

func NewMemberRepository(next member.Repository, cache *basecache.Store) *MemberRepository {
	return &MemberRepository{next: next, cache: cache}
}

func (r *MemberRepository) ListActiveByTeam(ctx context.Context, teamID string) ([]member.TeamMember, error) {
	key := "member:active:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListActiveByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]member.TeamMember(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]member.TeamMember)
	return append([]member.TeamMember(nil), items...), nil
}

// AggregateConditioning is never cached: snapshots must read the member pool
// as it is at capture time, not as it was up to a TTL ago.
func (r *MemberRepository) AggregateConditioning(ctx context.Context, teamID string) (member.Conditioning, error) {
	return r.next.AggregateConditioning(ctx, teamID)
}
