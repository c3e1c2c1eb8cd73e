package postgres

import (
	"time"

	"github.com/movearena/team-league/internal/domain/member"
	"github.com/movearena/team-league/internal/domain/team"
)

type teamTableModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Color       string     `db:"color"`
	OwnerUserID string     `db:"owner_user_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		Name:        m.Name,
		Color:       m.Color,
		OwnerUserID: m.OwnerUserID,
	}
}

type teamMemberTableModel struct {
	TeamID   string `db:"team_id"`
	UserID   string `db:"user_id"`
	Username string `db:"username"`
	Active   bool   `db:"active"`
	Stamina  int    `db:"stamina"`
	Strength int    `db:"strength"`
}

func (m teamMemberTableModel) toDomain() member.TeamMember {
	return member.TeamMember{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Username: m.Username,
		Active:   m.Active,
		Stamina:  m.Stamina,
		Strength: m.Strength,
	}
}

type conditioningRow struct {
	Stamina     int `db:"stamina"`
	Strength    int `db:"strength"`
	MemberCount int `db:"member_count"`
}
