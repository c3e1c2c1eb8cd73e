package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/movearena/team-league/internal/domain/notification"
	"github.com/movearena/team-league/internal/usecase"
)

const defaultNotificationWindow = 24 * time.Hour

type notificationDTO struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Kind         string          `json:"kind"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAtUTC string          `json:"createdAtUtc"`
}

// ListNotifications serves the catch-up feed: durable rows written before
// each real-time publish, so clients that missed the push can poll.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNotifications")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	if userID == "" {
		writeError(ctx, w, fmt.Errorf("%w: user id is required", usecase.ErrInvalidInput))
		return
	}

	since := time.Now().Add(-defaultNotificationWindow)
	if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: since must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		since = parsed
	}

	items, err := h.notificationRepo.ListByUserSince(ctx, userID, since)
	if err != nil {
		h.logger.WarnContext(ctx, "list notifications failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]notificationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, notificationToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func notificationToDTO(ctx context.Context, v notification.Notification) notificationDTO {
	ctx, span := startSpan(ctx, "httpapi.notificationToDTO")
	defer span.End()

	return notificationDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		Kind:         v.Kind,
		Payload:      json.RawMessage(v.Payload),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
