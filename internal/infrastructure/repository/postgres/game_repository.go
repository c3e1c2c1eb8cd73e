package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/game"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// InsertBatch writes a season's generated fixtures in its own transaction
// unless the caller already opened one.
func (r *GameRepository) InsertBatch(ctx context.Context, items []game.Game) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("games").Columns(
		"id", "season_id", "home_team_id", "away_team_id",
		"week", "first_leg", "kickoff_at", "status",
	)
	for _, item := range items {
		builder.Values(
			item.ID, item.SeasonID, item.HomeTeamID, item.AwayTeamID,
			item.Week, item.FirstLeg, item.KickoffAt, string(item.Status),
		)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert games query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert games: %w", err)
	}
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) ListBySeason(ctx context.Context, seasonID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("week", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season games query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *GameRepository) ListDue(ctx context.Context, seasonID string, status game.Status, cutoff time.Time) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("status", string(status)),
			qb.Lte("kickoff_at", cutoff),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list due games query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *GameRepository) ListBySeasonAndStatus(ctx context.Context, seasonID string, status game.Status) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("status", string(status)),
		).
		OrderBy("week", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by status query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *GameRepository) ListFinishedResults(ctx context.Context, seasonID string) ([]game.Result, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("status", string(game.StatusEvaluated)),
		).
		OrderBy("week", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []gameTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	out := make([]game.Result, 0, len(rows))
	for _, row := range rows {
		if !row.HomeScore.Valid || !row.AwayScore.Valid {
			continue
		}
		out = append(out, game.Result{
			GameID:       row.ID,
			SeasonID:     row.SeasonID,
			HomeTeamID:   row.HomeTeamID,
			AwayTeamID:   row.AwayTeamID,
			HomeScore:    int(row.HomeScore.Int64),
			AwayScore:    int(row.AwayScore.Int64),
			WinnerTeamID: nullStringToString(row.WinnerTeamID),
		})
	}
	return out, nil
}

// UpdateStatus is a compare-and-swap on the status column. Zero rows affected
// means another worker already moved the game on.
func (r *GameRepository) UpdateStatus(ctx context.Context, id string, expected, next game.Status) (bool, error) {
	if err := game.Transition(expected, next); err != nil {
		return false, err
	}

	query, args, err := qb.Update("games").
		Set("status", string(next)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("status", string(expected)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update game status query: %w", err)
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update game status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update game status rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *GameRepository) FinalizeResult(ctx context.Context, result game.Result) (bool, error) {
	query, args, err := qb.Update("games").
		Set("status", string(game.StatusEvaluated)).
		Set("home_score", result.HomeScore).
		Set("away_score", result.AwayScore).
		Set("winner_team_id", stringToNullString(result.WinnerTeamID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", result.GameID),
			qb.Eq("status", string(game.StatusFinished)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build finalize game query: %w", err)
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("finalize game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finalize game rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *GameRepository) Postpone(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update("games").
		Set("status", string(game.StatusPostponed)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("status", string(game.StatusScheduled)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build postpone game query: %w", err)
	}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("postpone game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("postpone game rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *GameRepository) DeletePendingBySeason(ctx context.Context, seasonID string) error {
	query, args, err := qb.DeleteFrom("games").
		Where(
			qb.Eq("season_id", seasonID),
			qb.In("status", []any{
				string(game.StatusScheduled),
				string(game.StatusInProgress),
			}),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pending games query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pending games: %w", err)
	}
	return nil
}

func (r *GameRepository) list(ctx context.Context, query string, args []any) ([]game.Game, error) {
	var rows []gameTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
