// Package api exposes the HTTP surface: a health endpoint and the manual
// trigger that runs one monitoring pass and returns its summary.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

// Trigger runs one monitoring pass. Satisfied by *monitor.Runner.
type Trigger interface {
	Run(ctx context.Context, now time.Time) (model.RunSummary, error)
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// runResponse is the JSON summary returned by the manual trigger. Per-user
// errors are listed, not raised: the pass is best-effort, so the endpoint
// answers 200 with success=true even when individual users failed.
type runResponse struct {
	Success           bool     `json:"success"`
	Message           string   `json:"message"`
	UsersProcessed    int      `json:"usersProcessed"`
	TotalJobsScraped  int      `json:"totalJobsScraped"`
	TotalJobsAnalyzed int      `json:"totalJobsAnalyzed"`
	GeminiCallsUsed   int      `json:"geminiCallsUsed"`
	TotalEmailsSent   int      `json:"totalEmailsSent"`
	Errors            []string `json:"errors,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewRouter builds the chi router for the service.
func NewRouter(trigger Trigger, log zerolog.Logger) http.Handler {
	h := &handler{trigger: trigger, log: log.With().Str("component", "api").Logger()}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Post("/api/monitor/run", h.runMonitor)

	return r
}

type handler struct {
	trigger Trigger
	log     zerolog.Logger
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "monitor-service",
		Version: "1.0.0",
	})
}

func (h *handler) runMonitor(w http.ResponseWriter, r *http.Request) {
	h.log.Info().Msg("manual trigger received")

	summary, err := h.trigger.Run(r.Context(), time.Now())
	if err != nil {
		// Only a dead user directory lands here; everything else is
		// degraded into summary.Errors.
		h.log.Error().Err(err).Msg("monitoring pass failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, runResponse{
		Success:           true,
		Message:           "Job monitoring completed",
		UsersProcessed:    summary.UsersProcessed,
		TotalJobsScraped:  summary.TotalJobsScraped,
		TotalJobsAnalyzed: summary.TotalJobsAnalyzed,
		GeminiCallsUsed:   summary.GeminiCallsUsed,
		TotalEmailsSent:   summary.TotalEmailsSent,
		Errors:            summary.Errors,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
