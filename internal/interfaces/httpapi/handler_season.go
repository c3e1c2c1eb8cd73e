package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/movearena/team-league/internal/domain/game"
	"github.com/movearena/team-league/internal/domain/season"
	"github.com/movearena/team-league/internal/domain/standing"
	"github.com/movearena/team-league/internal/usecase"
)

type createSeasonRequest struct {
	LeagueID              string   `json:"league_id" validate:"required"`
	Name                  string   `json:"name" validate:"required,max=120"`
	StartsAt              string   `json:"starts_at" validate:"required"`
	EvaluationTimezone    string   `json:"evaluation_timezone" validate:"required"`
	GameDurationMinutes   float64  `json:"game_duration_minutes" validate:"required,gt=0"`
	AutoEvaluationEnabled bool     `json:"auto_evaluation_enabled"`
	SnapshotScoring       bool     `json:"snapshot_scoring"`
	TeamIDs               []string `json:"team_ids" validate:"required,min=2,max=20,dive,required"`
}

type seasonDTO struct {
	ID                    string  `json:"id"`
	LeagueID              string  `json:"leagueId"`
	Name                  string  `json:"name"`
	StartsAt              string  `json:"startsAt"`
	EvaluationTimezone    string  `json:"evaluationTimezone"`
	GameDurationMinutes   float64 `json:"gameDurationMinutes"`
	AutoEvaluationEnabled bool    `json:"autoEvaluationEnabled"`
	SnapshotScoring       bool    `json:"snapshotScoring"`
	Status                string  `json:"status"`
	CreatedAtUTC          string  `json:"createdAtUtc"`
	UpdatedAtUTC          string  `json:"updatedAtUtc"`
}

type createSeasonResponseDTO struct {
	Season   seasonDTO `json:"season"`
	Schedule []gameDTO `json:"schedule"`
}

type gameDTO struct {
	ID           string `json:"id"`
	SeasonID     string `json:"seasonId"`
	Week         int    `json:"week"`
	FirstLeg     bool   `json:"firstLeg"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	KickoffAt    string `json:"kickoffAt"`
	Status       string `json:"status"`
	HomeScore    *int   `json:"homeScore,omitempty"`
	AwayScore    *int   `json:"awayScore,omitempty"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
}

type standingDTO struct {
	SeasonID     string `json:"seasonId"`
	TeamID       string `json:"teamId"`
	Position     int    `json:"position"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Draw         int    `json:"draw"`
	Lost         int    `json:"lost"`
	Points       int    `json:"points"`
	UpdatedAtUTC string `json:"updatedAtUtc"`
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
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

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: starts_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	seasonID, err := h.ids.NewID()
	if err != nil {
		h.logger.ErrorContext(ctx, "generate season id failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	created, schedule, err := h.seasonService.CreateSeason(ctx, usecase.CreateSeasonInput{
		Season: season.Season{
			ID:                    seasonID,
			LeagueID:              req.LeagueID,
			Name:                  strings.TrimSpace(req.Name),
			StartsAt:              startsAt,
			EvaluationTimezone:    req.EvaluationTimezone,
			GameDurationMinutes:   req.GameDurationMinutes,
			AutoEvaluationEnabled: req.AutoEvaluationEnabled,
			SnapshotScoring:       req.SnapshotScoring,
		},
		TeamIDs: req.TeamIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, createSeasonResponseDTO{
		Season:   seasonToDTO(ctx, created),
		Schedule: gamesToDTO(ctx, schedule),
	})
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(ctx, item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	if err := h.seasonService.DeleteSeason(ctx, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"seasonId": seasonID, "status": "deleted"})
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedule")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	games, err := h.seasonService.Schedule(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get schedule failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(ctx, games))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	standings, err := h.seasonService.Standings(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, item := range standings {
		items = append(items, standingToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PostponeGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostponeGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if err := h.seasonService.PostponeGame(ctx, gameID); err != nil {
		h.logger.WarnContext(ctx, "postpone game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"gameId": gameID, "status": string(game.StatusPostponed)})
}

func seasonToDTO(ctx context.Context, v season.Season) seasonDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonToDTO")
	defer span.End()

	return seasonDTO{
		ID:                    v.ID,
		LeagueID:              v.LeagueID,
		Name:                  v.Name,
		StartsAt:              v.StartsAt.UTC().Format(time.RFC3339),
		EvaluationTimezone:    v.EvaluationTimezone,
		GameDurationMinutes:   v.GameDurationMinutes,
		AutoEvaluationEnabled: v.AutoEvaluationEnabled,
		SnapshotScoring:       v.SnapshotScoring,
		Status:                v.Status,
		CreatedAtUTC:          v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:          v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func gamesToDTO(ctx context.Context, games []game.Game) []gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gamesToDTO")
	defer span.End()

	items := make([]gameDTO, 0, len(games))
	for _, item := range games {
		items = append(items, gameToDTO(ctx, item))
	}
	return items
}

func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:           v.ID,
		SeasonID:     v.SeasonID,
		Week:         v.Week,
		FirstLeg:     v.FirstLeg,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		KickoffAt:    v.KickoffAt.UTC().Format(time.RFC3339),
		Status:       string(v.Status),
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		WinnerTeamID: strings.TrimSpace(v.WinnerTeamID),
	}
}

func standingToDTO(ctx context.Context, v standing.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		SeasonID:     v.SeasonID,
		TeamID:       v.TeamID,
		Position:     v.Position,
		Played:       v.Played,
		Won:          v.Won,
		Draw:         v.Draw,
		Lost:         v.Lost,
		Points:       v.Points,
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
