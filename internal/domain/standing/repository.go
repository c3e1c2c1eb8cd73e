package standing

import "context"

type Repository interface {
	// InitializeTeams inserts a zeroed row per team, skipping rows that already
	// exist.
	InitializeTeams(ctx context.Context, seasonID string, teamIDs []string) error
	Get(ctx context.Context, seasonID, teamID string) (Standing, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Standing, error)
	Upsert(ctx context.Context, item Standing) error
	UpdatePositions(ctx context.Context, seasonID string, positionByTeam map[string]int) error
}
