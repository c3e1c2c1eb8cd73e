package livegame

import "time"

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// LiveGame mirrors a Game while it is in progress: running score and power
// plus last-scorer metadata. It is superseded by the game's final score on
// evaluation.
type LiveGame struct {
	GameID             string
	HomeScore          int
	AwayScore          int
	HomePower          int
	AwayPower          int
	LastScorerUserID   string
	LastScorerUsername string
	LastScoredAt       *time.Time
	Active             bool
}

// ScoreEvent is one member contribution recorded during play. Append-only.
type ScoreEvent struct {
	ID             string
	GameID         string
	UserID         string
	Username       string
	TeamID         string
	Side           Side
	Points         int
	Power          int
	StaminaGained  int
	StrengthGained int
	Description    string
	WorkoutRef     string
	OccurredAt     time.Time
}
