package postgres

import (
	"time"

	"github.com/movearena/team-league/internal/domain/season"
)

type seasonTableModel struct {
	ID                    string     `db:"id"`
	LeagueID              string     `db:"league_id"`
	Name                  string     `db:"name"`
	StartsAt              time.Time  `db:"starts_at"`
	EvaluationTimezone    string     `db:"evaluation_timezone"`
	GameDurationMinutes   float64    `db:"game_duration_minutes"`
	AutoEvaluationEnabled bool       `db:"auto_evaluation_enabled"`
	SnapshotScoring       bool       `db:"snapshot_scoring"`
	Status                string     `db:"status"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
	DeletedAt             *time.Time `db:"deleted_at"`
}

type seasonInsertModel struct {
	ID                    string    `db:"id"`
	LeagueID              string    `db:"league_id"`
	Name                  string    `db:"name"`
	StartsAt              time.Time `db:"starts_at"`
	EvaluationTimezone    string    `db:"evaluation_timezone"`
	GameDurationMinutes   float64   `db:"game_duration_minutes"`
	AutoEvaluationEnabled bool      `db:"auto_evaluation_enabled"`
	SnapshotScoring       bool      `db:"snapshot_scoring"`
	Status                string    `db:"status"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:                    m.ID,
		LeagueID:              m.LeagueID,
		Name:                  m.Name,
		StartsAt:              m.StartsAt,
		EvaluationTimezone:    m.EvaluationTimezone,
		GameDurationMinutes:   m.GameDurationMinutes,
		AutoEvaluationEnabled: m.AutoEvaluationEnabled,
		SnapshotScoring:       m.SnapshotScoring,
		Status:                m.Status,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
