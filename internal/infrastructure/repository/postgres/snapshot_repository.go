package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/snapshot"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Upsert(ctx context.Context, item snapshot.TeamSnapshot) error {
	insertModel := teamSnapshotTableModel{
		GameID:      item.GameID,
		TeamID:      item.TeamID,
		Kind:        string(item.Kind),
		Stamina:     item.Stamina,
		Strength:    item.Strength,
		MemberCount: item.MemberCount,
		CapturedAt:  item.CapturedAt,
	}
	query, args, err := qb.InsertModel("team_snapshots", insertModel, `ON CONFLICT (game_id, team_id, kind)
DO UPDATE SET
    stamina = EXCLUDED.stamina,
    strength = EXCLUDED.strength,
    member_count = EXCLUDED.member_count,
    captured_at = EXCLUDED.captured_at`)
	if err != nil {
		return fmt.Errorf("build upsert snapshot query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Get(ctx context.Context, gameID, teamID string, kind snapshot.Kind) (snapshot.TeamSnapshot, bool, error) {
	query, args, err := qb.Select("*").From("team_snapshots").
		Where(
			qb.Eq("game_id", gameID),
			qb.Eq("team_id", teamID),
			qb.Eq("kind", string(kind)),
		).
		ToSQL()
	if err != nil {
		return snapshot.TeamSnapshot{}, false, fmt.Errorf("build get snapshot query: %w", err)
	}

	var row teamSnapshotTableModel
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshot.TeamSnapshot{}, false, nil
		}
		return snapshot.TeamSnapshot{}, false, fmt.Errorf("get snapshot: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SnapshotRepository) DeleteByGame(ctx context.Context, gameID string) error {
	query, args, err := qb.DeleteFrom("team_snapshots").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete snapshots query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
