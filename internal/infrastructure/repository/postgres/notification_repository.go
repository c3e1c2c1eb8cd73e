package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/notification"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type notificationTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Kind      string    `db:"kind"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, item notification.Notification) error {
	insertModel := notificationTableModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Kind:      item.Kind,
		Payload:   item.Payload,
		CreatedAt: item.CreatedAt,
	}
	query, args, err := qb.InsertModel("notifications", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert notification query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(
			qb.Eq("user_id", userID),
			qb.Gte("created_at", since),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, notification.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Kind:      row.Kind,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
