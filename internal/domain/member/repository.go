package member

import "context"

type Repository interface {
	ListActiveByTeam(ctx context.Context, teamID string) ([]TeamMember, error)
	// AggregateConditioning sums stamina and strength over a team's active
	// members in a single query.
	AggregateConditioning(ctx context.Context, teamID string) (Conditioning, error)
}
