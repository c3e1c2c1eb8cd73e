package snapshot

import "context"

type Repository interface {
	Upsert(ctx context.Context, item TeamSnapshot) error
	Get(ctx context.Context, gameID, teamID string, kind Kind) (TeamSnapshot, bool, error)
	// DeleteByGame removes every snapshot captured for the game, both sides
	// and both kinds. Called before the game row itself is removed.
	DeleteByGame(ctx context.Context, gameID string) error
}
