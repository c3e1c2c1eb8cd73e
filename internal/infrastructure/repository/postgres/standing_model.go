package postgres

import (
	"time"

	"github.com/movearena/team-league/internal/domain/standing"
)

type standingTableModel struct {
	SeasonID  string    `db:"season_id"`
	TeamID    string    `db:"team_id"`
	Played    int       `db:"played"`
	Won       int       `db:"won"`
	Draw      int       `db:"draw"`
	Lost      int       `db:"lost"`
	Points    int       `db:"points"`
	Position  int       `db:"position"`
	UpdatedAt time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	SeasonID string `db:"season_id"`
	TeamID   string `db:"team_id"`
	Played   int    `db:"played"`
	Won      int    `db:"won"`
	Draw     int    `db:"draw"`
	Lost     int    `db:"lost"`
	Points   int    `db:"points"`
	Position int    `db:"position"`
}

func (m standingTableModel) toDomain() standing.Standing {
	return standing.Standing{
		SeasonID:  m.SeasonID,
		TeamID:    m.TeamID,
		Played:    m.Played,
		Won:       m.Won,
		Draw:      m.Draw,
		Lost:      m.Lost,
		Points:    m.Points,
		Position:  m.Position,
		UpdatedAt: m.UpdatedAt,
	}
}
