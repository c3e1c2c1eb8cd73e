package postgres

import (
	"database/sql"
	"time"

	"github.com/movearena/team-league/internal/domain/game"
)

type gameTableModel struct {
	ID           string         `db:"id"`
	SeasonID     string         `db:"season_id"`
	HomeTeamID   string         `db:"home_team_id"`
	AwayTeamID   string         `db:"away_team_id"`
	Week         int            `db:"week"`
	FirstLeg     bool           `db:"first_leg"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	Status       string         `db:"status"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
	WinnerTeamID sql.NullString `db:"winner_team_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           m.ID,
		SeasonID:     m.SeasonID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		Week:         m.Week,
		FirstLeg:     m.FirstLeg,
		KickoffAt:    m.KickoffAt,
		Status:       game.Status(m.Status),
		HomeScore:    nullIntToIntPtr(m.HomeScore),
		AwayScore:    nullIntToIntPtr(m.AwayScore),
		WinnerTeamID: nullStringToString(m.WinnerTeamID),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
