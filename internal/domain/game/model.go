package game

import (
	"fmt"
	"time"
)

// Status is the closed set of lifecycle states. A game only ever moves
// forward through Transition; Postponed is a one-way side exit.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
	StatusEvaluated  Status = "EVALUATED"
	StatusPostponed  Status = "POSTPONED"
)

var allowedTransitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusPostponed},
	StatusInProgress: {StatusFinished},
	StatusFinished:   {StatusEvaluated},
	StatusEvaluated:  {},
	StatusPostponed:  {},
}

func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Transition validates a status move against the lifecycle table.
func Transition(from, to Status) error {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("illegal game transition %s -> %s", from, to)
}

// Game is one fixture between two teams within a season.
type Game struct {
	ID           string
	SeasonID     string
	HomeTeamID   string
	AwayTeamID   string
	Week         int
	FirstLeg     bool
	KickoffAt    time.Time
	Status       Status
	HomeScore    *int
	AwayScore    *int
	WinnerTeamID string // empty means draw or not yet evaluated
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Result is a game's final outcome as committed by the evaluation engine.
type Result struct {
	GameID       string
	SeasonID     string
	HomeTeamID   string
	AwayTeamID   string
	HomeScore    int
	AwayScore    int
	WinnerTeamID string // empty on a draw
}

func (r Result) Draw() bool {
	return r.HomeScore == r.AwayScore
}
