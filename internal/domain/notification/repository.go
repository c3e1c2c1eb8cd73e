package notification

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, item Notification) error
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]Notification, error)
}
