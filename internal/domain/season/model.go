package season

import (
	"fmt"
	"time"
)

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// Season is one competition run of a league. Its fixture list is generated
// once at creation and immutable afterwards except for postponements.
type Season struct {
	ID                    string
	LeagueID              string
	Name                  string
	StartsAt              time.Time
	EvaluationTimezone    string
	GameDurationMinutes   float64
	AutoEvaluationEnabled bool
	SnapshotScoring       bool
	Status                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("season league id is required")
	}
	if s.StartsAt.IsZero() {
		return fmt.Errorf("season start time is required")
	}
	if s.GameDurationMinutes <= 0 {
		return fmt.Errorf("season game duration must be positive")
	}
	if _, err := time.LoadLocation(s.EvaluationTimezone); err != nil {
		return fmt.Errorf("season evaluation timezone %q: %w", s.EvaluationTimezone, err)
	}
	return nil
}

// GameDuration converts the configured fractional minutes to a duration.
func (s Season) GameDuration() time.Duration {
	return time.Duration(s.GameDurationMinutes * float64(time.Minute))
}

// Location resolves the season's evaluation time zone, falling back to UTC
// when the stored name no longer loads.
func (s Season) Location() *time.Location {
	loc, err := time.LoadLocation(s.EvaluationTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
