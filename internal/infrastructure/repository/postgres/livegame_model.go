package postgres

import (
	"database/sql"
	"time"

	"github.com/movearena/team-league/internal/domain/livegame"
)

type liveGameTableModel struct {
	GameID             string         `db:"game_id"`
	HomeScore          int            `db:"home_score"`
	AwayScore          int            `db:"away_score"`
	HomePower          int            `db:"home_power"`
	AwayPower          int            `db:"away_power"`
	LastScorerUserID   sql.NullString `db:"last_scorer_user_id"`
	LastScorerUsername sql.NullString `db:"last_scorer_username"`
	LastScoredAt       sql.NullTime   `db:"last_scored_at"`
	Active             bool           `db:"active"`
}

func (m liveGameTableModel) toDomain() livegame.LiveGame {
	return livegame.LiveGame{
		GameID:             m.GameID,
		HomeScore:          m.HomeScore,
		AwayScore:          m.AwayScore,
		HomePower:          m.HomePower,
		AwayPower:          m.AwayPower,
		LastScorerUserID:   nullStringToString(m.LastScorerUserID),
		LastScorerUsername: nullStringToString(m.LastScorerUsername),
		LastScoredAt:       nullTimeToTimePtr(m.LastScoredAt),
		Active:             m.Active,
	}
}

type scoreEventTableModel struct {
	ID             string    `db:"id"`
	GameID         string    `db:"game_id"`
	UserID         string    `db:"user_id"`
	Username       string    `db:"username"`
	TeamID         string    `db:"team_id"`
	Side           string    `db:"side"`
	Points         int       `db:"points"`
	Power          int       `db:"power"`
	StaminaGained  int       `db:"stamina_gained"`
	StrengthGained int       `db:"strength_gained"`
	Description    string    `db:"description"`
	WorkoutRef     string    `db:"workout_ref"`
	OccurredAt     time.Time `db:"occurred_at"`
}

func (m scoreEventTableModel) toDomain() livegame.ScoreEvent {
	return livegame.ScoreEvent{
		ID:             m.ID,
		GameID:         m.GameID,
		UserID:         m.UserID,
		Username:       m.Username,
		TeamID:         m.TeamID,
		Side:           livegame.Side(m.Side),
		Points:         m.Points,
		Power:          m.Power,
		StaminaGained:  m.StaminaGained,
		StrengthGained: m.StrengthGained,
		Description:    m.Description,
		WorkoutRef:     m.WorkoutRef,
		OccurredAt:     m.OccurredAt,
	}
}
