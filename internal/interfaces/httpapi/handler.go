package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/movearena/team-league/internal/domain/notification"
	"github.com/movearena/team-league/internal/platform/id"
	"github.com/movearena/team-league/internal/platform/logging"
	"github.com/movearena/team-league/internal/usecase"
)

type Handler struct {
	seasonService     *usecase.SeasonService
	liveScoreService  *usecase.LiveScoreService
	evaluationService *usecase.EvaluationService
	notificationRepo  notification.Repository
	ids               id.Generator
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	liveScoreService *usecase.LiveScoreService,
	evaluationService *usecase.EvaluationService,
	notificationRepo notification.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *Handler {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:     seasonService,
		liveScoreService:  liveScoreService,
		evaluationService: evaluationService,
		notificationRepo:  notificationRepo,
		ids:               ids,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
