package season

import "context"

type Repository interface {
	Create(ctx context.Context, item Season) error
	GetByID(ctx context.Context, id string) (Season, bool, error)
	ListActive(ctx context.Context) ([]Season, error)
	MarkCompleted(ctx context.Context, id string) error
	// SoftDelete removes the season from scheduler consideration. Implementations
	// must make it invisible to ListActive from the next read onwards.
	SoftDelete(ctx context.Context, id string) error
}
