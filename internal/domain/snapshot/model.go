package snapshot

import "time"

type Kind string

const (
	KindStart Kind = "start"
	KindEnd   Kind = "end"
)

// TeamSnapshot records a team's aggregate conditioning at one point of a
// game's life. Written once per (game, team, kind); retakes overwrite.
type TeamSnapshot struct {
	GameID      string
	TeamID      string
	Kind        Kind
	Stamina     int
	Strength    int
	MemberCount int
	CapturedAt  time.Time
}

// Total is the conditioning value the differential strategy compares.
func (s TeamSnapshot) Total() int {
	return s.Stamina + s.Strength
}
