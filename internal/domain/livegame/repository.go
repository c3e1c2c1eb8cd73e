package livegame

import "context"

type Repository interface {
	Create(ctx context.Context, item LiveGame) error
	GetByGameID(ctx context.Context, gameID string) (LiveGame, bool, error)
	// AppendEvent stores the event and accumulates its points and power onto
	// the live game's side in one atomic operation.
	AppendEvent(ctx context.Context, event ScoreEvent) error
	ListEvents(ctx context.Context, gameID string) ([]ScoreEvent, error)
	Deactivate(ctx context.Context, gameID string) error
	// DeleteByGame drops the live row and its event log. Called before the
	// game row itself is removed so no live state outlives its game.
	DeleteByGame(ctx context.Context, gameID string) error
}
