package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/movearena/team-league/internal/domain/team"
	"github.com/movearena/team-league/internal/infrastructure/repository/memory"
	"github.com/movearena/team-league/internal/platform/cache"
	"github.com/movearena/team-league/internal/usecase"
)

const testInternalToken = "test-internal-token"

type seqIDGenerator struct {
	next int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type apiEnv struct {
	router           http.Handler
	seasonRepo       *memory.SeasonRepository
	gameRepo         *memory.GameRepository
	liveRepo         *memory.LiveGameRepository
	notificationRepo *memory.NotificationRepository
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	env := &apiEnv{
		seasonRepo:       memory.NewSeasonRepository(),
		gameRepo:         memory.NewGameRepository(),
		liveRepo:         memory.NewLiveGameRepository(),
		notificationRepo: memory.NewNotificationRepository(),
	}
	teamRepo := memory.NewTeamRepository(
		team.Team{ID: "team-1", Name: "Alpha"},
		team.Team{ID: "team-2", Name: "Bravo"},
		team.Team{ID: "team-3", Name: "Charlie"},
		team.Team{ID: "team-4", Name: "Delta"},
	)
	memberRepo := memory.NewMemberRepository()
	snapshotRepo := memory.NewSnapshotRepository()
	standingRepo := memory.NewStandingRepository()

	fixtureSvc := usecase.NewFixtureService(env.gameRepo, &seqIDGenerator{}, usecase.KickoffSlot{Hour: 19}, nil)
	standingSvc := usecase.NewStandingService(standingRepo, env.gameRepo, nil)
	broadcastSvc := usecase.NewBroadcastService(usecase.NewNoopBus(), teamRepo, memberRepo, env.notificationRepo, nil)
	evaluationSvc := usecase.NewEvaluationService(
		env.gameRepo, env.seasonRepo, env.liveRepo, snapshotRepo,
		standingSvc, broadcastSvc, nil, 2, nil,
	)
	seasonSvc := usecase.NewSeasonService(
		env.seasonRepo, teamRepo, env.gameRepo, env.liveRepo, snapshotRepo, standingRepo,
		fixtureSvc, standingSvc, nil, cache.NewStore(time.Minute), nil,
	)
	liveScoreSvc := usecase.NewLiveScoreService(env.gameRepo, env.liveRepo, nil)

	handler := NewHandler(seasonSvc, liveScoreSvc, evaluationSvc, env.notificationRepo, &seqIDGenerator{}, nil)
	env.router = NewRouter(handler, nil, []string{"*"}, testInternalToken)
	return env
}

func (e *apiEnv) do(t *testing.T, method, path string, body any, internal bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if internal {
		req.Header.Set("X-Internal-Token", testInternalToken)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func createSeasonBody() map[string]any {
	return map[string]any{
		"league_id":               "league-1",
		"name":                    "Spring Season",
		"starts_at":               "2026-03-02T19:00:00Z",
		"evaluation_timezone":     "UTC",
		"game_duration_minutes":   60,
		"auto_evaluation_enabled": true,
		"snapshot_scoring":        false,
		"team_ids":                []string{"team-1", "team-2", "team-3", "team-4"},
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", nil, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
}

func TestCreateSeason_FullFlow(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/seasons", createSeasonBody(), true)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	schedule, ok := data["schedule"].([]any)
	if !ok {
		t.Fatalf("expected schedule array, got %v", data)
	}
	// 4 teams: double round robin of 12 games.
	if len(schedule) != 12 {
		t.Fatalf("expected 12 scheduled games, got %d", len(schedule))
	}

	seasonObj, ok := data["season"].(map[string]any)
	if !ok {
		t.Fatalf("expected season object, got %v", data)
	}
	seasonID, _ := seasonObj["id"].(string)
	if seasonID == "" {
		t.Fatalf("expected generated season id, got %v", seasonObj)
	}

	rec = env.do(t, http.MethodGet, "/v1/seasons/"+seasonID+"/schedule", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for schedule, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	if items, ok := body["data"].([]any); !ok || len(items) != 12 {
		t.Fatalf("expected 12 games from schedule endpoint, got %v", body["data"])
	}

	rec = env.do(t, http.MethodGet, "/v1/seasons/"+seasonID+"/standings", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for standings, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	if items, ok := body["data"].([]any); !ok || len(items) != 4 {
		t.Fatalf("expected 4 standings rows, got %v", body["data"])
	}
}

func TestCreateSeason_RequiresInternalToken(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/seasons", createSeasonBody(), false)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestCreateSeason_InvalidPayload(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)

	body := createSeasonBody()
	body["team_ids"] = []string{"team-1"}
	rec := env.do(t, http.MethodPost, "/v1/seasons", body, true)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostponeGame_ConflictOnRepeat(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/seasons", createSeasonBody(), true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	first := data["schedule"].([]any)[0].(map[string]any)
	gameID, _ := first["id"].(string)
	if gameID == "" {
		t.Fatalf("expected game id in schedule, got %v", first)
	}

	rec = env.do(t, http.MethodPost, "/v1/games/"+gameID+"/postpone", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on first postpone, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/v1/games/"+gameID+"/postpone", nil, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 on repeat postpone, got %d", rec.Code)
	}
}

func TestRecordScoreEvent_RejectsScheduledGame(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/seasons", createSeasonBody(), true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	first := data["schedule"].([]any)[0].(map[string]any)
	gameID, _ := first["id"].(string)
	teamID, _ := first["homeTeamId"].(string)

	rec = env.do(t, http.MethodPost, "/v1/internal/score-events", map[string]any{
		"game_id": gameID,
		"user_id": "user-1",
		"team_id": teamID,
		"points":  2,
	}, true)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for scheduled game, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetLiveGame_NotFound(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)
	rec := env.do(t, http.MethodGet, "/v1/games/missing/live", nil, false)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestListNotifications(t *testing.T) {
	t.Parallel()

	env := newAPIEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/users/user-1/notifications?since=not-a-time", nil, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad since, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/v1/users/user-1/notifications", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if items, ok := body["data"].([]any); ok && len(items) != 0 {
		t.Fatalf("expected empty feed, got %v", items)
	}
}

func TestRequireInternalToken_Unconfigured(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireInternalToken("", next)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/score-events", nil)
	req.Header.Set("X-Internal-Token", "anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 with unconfigured token, got %d", rec.Code)
	}
}
