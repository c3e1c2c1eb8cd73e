package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/standing"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) InitializeTeams(ctx context.Context, seasonID string, teamIDs []string) error {
	if len(teamIDs) == 0 {
		return nil
	}

	builder := qb.InsertInto("standings").
		Columns("season_id", "team_id", "played", "won", "draw", "lost", "points", "position")
	for _, teamID := range teamIDs {
		builder.Values(seasonID, teamID, 0, 0, 0, 0, 0, 0)
	}
	query, args, err := builder.Suffix("ON CONFLICT (season_id, team_id) DO NOTHING").ToSQL()
	if err != nil {
		return fmt.Errorf("build initialize standings query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("initialize standings: %w", err)
	}
	return nil
}

func (r *StandingRepository) Get(ctx context.Context, seasonID, teamID string) (standing.Standing, bool, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build get standing query: %w", err)
	}

	var row standingTableModel
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, fmt.Errorf("get standing: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("CASE WHEN position = 0 THEN 1 ELSE 0 END", "position", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StandingRepository) Upsert(ctx context.Context, item standing.Standing) error {
	insertModel := standingInsertModel{
		SeasonID: item.SeasonID,
		TeamID:   item.TeamID,
		Played:   item.Played,
		Won:      item.Won,
		Draw:     item.Draw,
		Lost:     item.Lost,
		Points:   item.Points,
		Position: item.Position,
	}
	query, args, err := qb.InsertModel("standings", insertModel, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    draw = EXCLUDED.draw,
    lost = EXCLUDED.lost,
    points = EXCLUDED.points,
    position = EXCLUDED.position,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert standing query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standing: %w", err)
	}
	return nil
}

func (r *StandingRepository) UpdatePositions(ctx context.Context, seasonID string, positionByTeam map[string]int) error {
	for teamID, position := range positionByTeam {
		query, args, err := qb.Update("standings").
			Set("position", position).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("season_id", seasonID),
				qb.Eq("team_id", teamID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update standing position query: %w", err)
		}
		if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update standing position team=%s: %w", teamID, err)
		}
	}
	return nil
}
