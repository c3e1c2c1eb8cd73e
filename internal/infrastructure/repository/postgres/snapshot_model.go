package postgres

import (
	"time"

	"github.com/movearena/team-league/internal/domain/snapshot"
)

type teamSnapshotTableModel struct {
	GameID      string    `db:"game_id"`
	TeamID      string    `db:"team_id"`
	Kind        string    `db:"kind"`
	Stamina     int       `db:"stamina"`
	Strength    int       `db:"strength"`
	MemberCount int       `db:"member_count"`
	CapturedAt  time.Time `db:"captured_at"`
}

func (m teamSnapshotTableModel) toDomain() snapshot.TeamSnapshot {
	return snapshot.TeamSnapshot{
		GameID:      m.GameID,
		TeamID:      m.TeamID,
		Kind:        snapshot.Kind(m.Kind),
		Stamina:     m.Stamina,
		Strength:    m.Strength,
		MemberCount: m.MemberCount,
		CapturedAt:  m.CapturedAt,
	}
}
