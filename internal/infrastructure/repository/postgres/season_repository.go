package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/season"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	insertModel := seasonInsertModel{
		ID:                    item.ID,
		LeagueID:              item.LeagueID,
		Name:                  item.Name,
		StartsAt:              item.StartsAt,
		EvaluationTimezone:    item.EvaluationTimezone,
		GameDurationMinutes:   item.GameDurationMinutes,
		AutoEvaluationEnabled: item.AutoEvaluationEnabled,
		SnapshotScoring:       item.SnapshotScoring,
		Status:                item.Status,
	}
	query, args, err := qb.InsertModel("seasons", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListActive(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("status", season.StatusActive),
			qb.IsNull("deleted_at"),
		).
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) MarkCompleted(ctx context.Context, id string) error {
	query, args, err := qb.Update("seasons").
		Set("status", season.StatusCompleted).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build complete season query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("complete season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) SoftDelete(ctx context.Context, id string) error {
	query, args, err := qb.Update("seasons").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}
