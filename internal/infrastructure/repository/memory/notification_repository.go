package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/movearena/team-league/internal/domain/notification"
)

type NotificationRepository struct {
	mu     sync.RWMutex
	byUser map[string][]notification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{byUser: make(map[string][]notification.Notification)}
}

func (r *NotificationRepository) Insert(_ context.Context, item notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[item.UserID] = append(r.byUser[item.UserID], item)
	return nil
}

func (r *NotificationRepository) ListByUserSince(_ context.Context, userID string, since time.Time) ([]notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notification.Notification, 0)
	for _, item := range r.byUser[userID] {
		if !item.CreatedAt.Before(since) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
