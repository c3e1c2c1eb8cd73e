package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/usecase"
)

type runEvaluationRequest struct {
	SeasonID string `json:"season_id" validate:"required"`
	Date     string `json:"date" validate:"required"`
}

type evaluationRunDTO struct {
	SeasonID  string          `json:"seasonId"`
	Date      string          `json:"date"`
	Evaluated int             `json:"evaluated"`
	Results   []gameResultDTO `json:"results"`
}

type gameResultDTO struct {
	GameID       string `json:"gameId"`
	SeasonID     string `json:"seasonId"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
	Draw         bool   `json:"draw"`
}

// RunEvaluationForDate is the manual counterpart to the scheduler's automatic
// evaluation, for seasons that opted out of it or for operator replays.
func (h *Handler) RunEvaluationForDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunEvaluationForDate")
	defer span.End()

	var req runEvaluationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", usecase.ErrInvalidInput, err))
		return
	}

	results, err := h.evaluationService.EvaluateFinishedForDate(ctx, req.SeasonID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "manual evaluation failed", "season_id", req.SeasonID, "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, gameResultToDTO(ctx, result))
	}

	writeSuccess(ctx, w, http.StatusOK, evaluationRunDTO{
		SeasonID:  req.SeasonID,
		Date:      req.Date,
		Evaluated: len(items),
		Results:   items,
	})
}

func gameResultToDTO(ctx context.Context, v game.Result) gameResultDTO {
	ctx, span := startSpan(ctx, "httpapi.gameResultToDTO")
	defer span.End()

	return gameResultDTO{
		GameID:       v.GameID,
		SeasonID:     v.SeasonID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		WinnerTeamID: v.WinnerTeamID,
		Draw:         v.Draw(),
	}
}
