package game

import (
	"context"
	"time"
)

type Repository interface {
	// InsertBatch persists a season's generated fixtures in one all-or-nothing
	// operation.
	InsertBatch(ctx context.Context, items []Game) error
	GetByID(ctx context.Context, id string) (Game, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Game, error)
	// ListDue returns games of a season in the given status whose kickoff time
	// is at or before the cutoff.
	ListDue(ctx context.Context, seasonID string, status Status, cutoff time.Time) ([]Game, error)
	ListBySeasonAndStatus(ctx context.Context, seasonID string, status Status) ([]Game, error)
	ListFinishedResults(ctx context.Context, seasonID string) ([]Result, error)
	// UpdateStatus moves a game from expected to next and reports whether the
	// row was in the expected status. A false return means another worker got
	// there first; callers treat it as a benign skip.
	UpdateStatus(ctx context.Context, id string, expected, next Status) (bool, error)
	// FinalizeResult writes the final score, winner and EVALUATED status for a
	// game still in FINISHED status.
	FinalizeResult(ctx context.Context, result Result) (bool, error)
	// Postpone side-exits a game that has not started yet.
	Postpone(ctx context.Context, id string) (bool, error)
	// DeletePendingBySeason removes games still SCHEDULED or IN_PROGRESS so a
	// deleted season leaves no dangling scheduler work. Evaluated games stay
	// for history.
	DeletePendingBySeason(ctx context.Context, seasonID string) error
}
