package team

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Team, error)
}
