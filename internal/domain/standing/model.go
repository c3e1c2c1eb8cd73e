package standing

import "time"

// Standing is one team's season-to-date competitive record.
// Invariants: Points = 3*Won + Draw, Played = Won + Draw + Lost, and Position
// is a dense 1..N rank with no gaps.
type Standing struct {
	SeasonID  string
	TeamID    string
	Played    int
	Won       int
	Draw      int
	Lost      int
	Points    int
	Position  int
	UpdatedAt time.Time
}
