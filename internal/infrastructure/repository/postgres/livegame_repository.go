package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/movearena/team-league/internal/domain/livegame"
	qb "github.com/movearena/team-league/internal/platform/querybuilder"
)

type LiveGameRepository struct {
	db *sqlx.DB
	tx *TxRunner
}

func NewLiveGameRepository(db *sqlx.DB) *LiveGameRepository {
	return &LiveGameRepository{db: db, tx: NewTxRunner(db)}
}

func (r *LiveGameRepository) Create(ctx context.Context, item livegame.LiveGame) error {
	query, args, err := qb.InsertInto("live_games").
		Columns("game_id", "home_score", "away_score", "home_power", "away_power", "active").
		Values(item.GameID, item.HomeScore, item.AwayScore, item.HomePower, item.AwayPower, item.Active).
		Suffix("ON CONFLICT (game_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert live game query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert live game: %w", err)
	}
	return nil
}

func (r *LiveGameRepository) GetByGameID(ctx context.Context, gameID string) (livegame.LiveGame, bool, error) {
	query, args, err := qb.Select("*").From("live_games").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return livegame.LiveGame{}, false, fmt.Errorf("build get live game query: %w", err)
	}

	var row liveGameTableModel
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, args...); err != nil {
		if isNotFound(err) {
			return livegame.LiveGame{}, false, nil
		}
		return livegame.LiveGame{}, false, fmt.Errorf("get live game: %w", err)
	}
	return row.toDomain(), true, nil
}

// AppendEvent stores the event row and folds its points and power onto the
// live game in one transaction, so the running score never drifts from the
// event feed.
func (r *LiveGameRepository) AppendEvent(ctx context.Context, event livegame.ScoreEvent) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		insertModel := scoreEventTableModel{
			ID:             event.ID,
			GameID:         event.GameID,
			UserID:         event.UserID,
			Username:       event.Username,
			TeamID:         event.TeamID,
			Side:           string(event.Side),
			Points:         event.Points,
			Power:          event.Power,
			StaminaGained:  event.StaminaGained,
			StrengthGained: event.StrengthGained,
			Description:    event.Description,
			WorkoutRef:     event.WorkoutRef,
			OccurredAt:     event.OccurredAt,
		}
		query, args, err := qb.InsertModel("live_score_events", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert score event query: %w", err)
		}
		if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert score event: %w", err)
		}

		scoreColumn, powerColumn := "home_score", "home_power"
		if event.Side == livegame.SideAway {
			scoreColumn, powerColumn = "away_score", "away_power"
		}
		update := qb.Update("live_games").
			SetExpr(scoreColumn, scoreColumn+" + ?", event.Points).
			SetExpr(powerColumn, powerColumn+" + ?", event.Power).
			Set("last_scorer_user_id", event.UserID).
			Set("last_scorer_username", event.Username).
			Set("last_scored_at", event.OccurredAt).
			Where(qb.Eq("game_id", event.GameID))
		query, args, err = update.ToSQL()
		if err != nil {
			return fmt.Errorf("build accumulate score query: %w", err)
		}
		if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("accumulate score: %w", err)
		}
		return nil
	})
}

func (r *LiveGameRepository) ListEvents(ctx context.Context, gameID string) ([]livegame.ScoreEvent, error) {
	query, args, err := qb.Select("*").From("live_score_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("occurred_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score events query: %w", err)
	}

	var rows []scoreEventTableModel
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score events: %w", err)
	}

	out := make([]livegame.ScoreEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LiveGameRepository) Deactivate(ctx context.Context, gameID string) error {
	query, args, err := qb.Update("live_games").
		Set("active", false).
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate live game query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate live game: %w", err)
	}
	return nil
}

// DeleteByGame removes the event log before the live row so the FK from
// live_score_events never blocks the delete.
func (r *LiveGameRepository) DeleteByGame(ctx context.Context, gameID string) error {
	eventsQuery, eventsArgs, err := qb.DeleteFrom("live_score_events").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete score events query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, eventsQuery, eventsArgs...); err != nil {
		return fmt.Errorf("delete score events: %w", err)
	}

	liveQuery, liveArgs, err := qb.DeleteFrom("live_games").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete live game query: %w", err)
	}
	if _, err := executor(ctx, r.db).ExecContext(ctx, liveQuery, liveArgs...); err != nil {
		return fmt.Errorf("delete live game: %w", err)
	}
	return nil
}
