package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/movearena/team-league/internal/domain/livegame"
	"github.com/movearena/team-league/internal/usecase"
)

type recordScoreEventRequest struct {
	GameID         string `json:"game_id" validate:"required"`
	UserID         string `json:"user_id" validate:"required"`
	Username       string `json:"username" validate:"max=80"`
	TeamID         string `json:"team_id" validate:"required"`
	Points         int    `json:"points" validate:"gte=0"`
	Power          int    `json:"power" validate:"gte=0"`
	StaminaGained  int    `json:"stamina_gained" validate:"gte=0"`
	StrengthGained int    `json:"strength_gained" validate:"gte=0"`
	Description    string `json:"description" validate:"max=200"`
	WorkoutRef     string `json:"workout_ref" validate:"max=120"`
}

type liveGameDTO struct {
	GameID             string          `json:"gameId"`
	HomeScore          int             `json:"homeScore"`
	AwayScore          int             `json:"awayScore"`
	HomePower          int             `json:"homePower"`
	AwayPower          int             `json:"awayPower"`
	LastScorerUserID   string          `json:"lastScorerUserId,omitempty"`
	LastScorerUsername string          `json:"lastScorerUsername,omitempty"`
	LastScoredAtUTC    string          `json:"lastScoredAtUtc,omitempty"`
	Active             bool            `json:"active"`
	Events             []scoreEventDTO `json:"events"`
}

type scoreEventDTO struct {
	ID             string `json:"id"`
	GameID         string `json:"gameId"`
	UserID         string `json:"userId"`
	Username       string `json:"username,omitempty"`
	TeamID         string `json:"teamId"`
	Side           string `json:"side"`
	Points         int    `json:"points"`
	Power          int    `json:"power"`
	StaminaGained  int    `json:"staminaGained"`
	StrengthGained int    `json:"strengthGained"`
	Description    string `json:"description,omitempty"`
	WorkoutRef     string `json:"workoutRef,omitempty"`
	OccurredAtUTC  string `json:"occurredAtUtc"`
}

// RecordScoreEvent ingests one member contribution against an in-progress
// game. The activity pipeline is the only caller.
func (h *Handler) RecordScoreEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScoreEvent")
	defer span.End()

	var req recordScoreEventRequest
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

	event, err := h.liveScoreService.RecordEvent(ctx, usecase.ScoreEventInput{
		GameID:         req.GameID,
		UserID:         req.UserID,
		Username:       req.Username,
		TeamID:         req.TeamID,
		Points:         req.Points,
		Power:          req.Power,
		StaminaGained:  req.StaminaGained,
		StrengthGained: req.StrengthGained,
		Description:    req.Description,
		WorkoutRef:     req.WorkoutRef,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record score event failed", "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, scoreEventToDTO(ctx, event))
}

func (h *Handler) GetLiveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	state, events, err := h.liveScoreService.LiveState(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get live game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, liveGameToDTO(ctx, state, events))
}

func liveGameToDTO(ctx context.Context, v livegame.LiveGame, events []livegame.ScoreEvent) liveGameDTO {
	ctx, span := startSpan(ctx, "httpapi.liveGameToDTO")
	defer span.End()

	items := make([]scoreEventDTO, 0, len(events))
	for _, event := range events {
		items = append(items, scoreEventToDTO(ctx, event))
	}

	lastScoredAt := ""
	if v.LastScoredAt != nil && !v.LastScoredAt.IsZero() {
		lastScoredAt = v.LastScoredAt.UTC().Format(time.RFC3339)
	}

	return liveGameDTO{
		GameID:             v.GameID,
		HomeScore:          v.HomeScore,
		AwayScore:          v.AwayScore,
		HomePower:          v.HomePower,
		AwayPower:          v.AwayPower,
		LastScorerUserID:   v.LastScorerUserID,
		LastScorerUsername: v.LastScorerUsername,
		LastScoredAtUTC:    lastScoredAt,
		Active:             v.Active,
		Events:             items,
	}
}

func scoreEventToDTO(ctx context.Context, v livegame.ScoreEvent) scoreEventDTO {
	ctx, span := startSpan(ctx, "httpapi.scoreEventToDTO")
	defer span.End()

	return scoreEventDTO{
		ID:             v.ID,
		GameID:         v.GameID,
		UserID:         v.UserID,
		Username:       v.Username,
		TeamID:         v.TeamID,
		Side:           string(v.Side),
		Points:         v.Points,
		Power:          v.Power,
		StaminaGained:  v.StaminaGained,
		StrengthGained: v.StrengthGained,
		Description:    v.Description,
		WorkoutRef:     v.WorkoutRef,
		OccurredAtUTC:  v.OccurredAt.UTC().Format(time.RFC3339),
	}
}
