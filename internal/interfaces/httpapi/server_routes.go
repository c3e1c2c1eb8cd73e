package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/schedule", handler.GetSchedule)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/games/{gameID}/live", handler.GetLiveGame)
	mux.HandleFunc("GET /v1/users/{userID}/notifications", handler.ListNotifications)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /v1/seasons", RequireInternalToken(internalToken, http.HandlerFunc(handler.CreateSeason)))
	mux.Handle("DELETE /v1/seasons/{seasonID}", RequireInternalToken(internalToken, http.HandlerFunc(handler.DeleteSeason)))
	mux.Handle("POST /v1/games/{gameID}/postpone", RequireInternalToken(internalToken, http.HandlerFunc(handler.PostponeGame)))
	mux.Handle("POST /v1/internal/score-events", RequireInternalToken(internalToken, http.HandlerFunc(handler.RecordScoreEvent)))
	mux.Handle("POST /v1/internal/evaluations/run", RequireInternalToken(internalToken, http.HandlerFunc(handler.RunEvaluationForDate)))
}
