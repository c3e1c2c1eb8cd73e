package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/member"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) ListActiveByTeam(ctx context.Context, teamID string) ([]member.TeamMember, error) {
	query, args, err := qb.Select("team_id", "user_id", "username", "active", "stamina", "strength").
		From("team_members").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("active", true),
		).
		OrderBy("username", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	out := make([]member.TeamMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// AggregateConditioning sums the whole team in one query so both sides of a
// game snapshot see a consistent point in time.
func (r *MemberRepository) AggregateConditioning(ctx context.Context, teamID string) (member.Conditioning, error) {
	query, args, err := qb.Select(
		"COALESCE(SUM(stamina), 0) AS stamina",
		"COALESCE(SUM(strength), 0) AS strength",
		"COUNT(*) AS member_count",
	).
		From("team_members").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("active", true),
		).
		ToSQL()
	if err != nil {
		return member.Conditioning{}, fmt.Errorf("build aggregate conditioning query: %w", err)
	}

	var row conditioningRow
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		return member.Conditioning{}, fmt.Errorf("aggregate conditioning: %w", err)
	}
	return member.Conditioning{
		Stamina:     row.Stamina,
		Strength:    row.Strength,
		MemberCount: row.MemberCount,
	}, nil
}
