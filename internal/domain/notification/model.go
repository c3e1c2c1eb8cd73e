package notification

import "time"

const (
	KindGameEvaluated = "game_evaluated"
)

// Notification is the durable record written before any best-effort publish,
// so clients can recover missed real-time events by polling.
type Notification struct {
	ID        string
	UserID    string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}
