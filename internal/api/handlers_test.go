package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

type fakeTrigger struct {
	summary model.RunSummary
	err     error
}

func (f *fakeTrigger) Run(_ context.Context, _ time.Time) (model.RunSummary, error) {
	return f.summary, f.err
}

func TestHealth(t *testing.T) {
	router := NewRouter(&fakeTrigger{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Service != "monitor-service" {
		t.Errorf("body = %+v", body)
	}
}

func TestRunMonitor_ReturnsSummary(t *testing.T) {
	router := NewRouter(&fakeTrigger{summary: model.RunSummary{
		UsersProcessed:    3,
		TotalJobsScraped:  7,
		TotalJobsAnalyzed: 5,
		GeminiCallsUsed:   4,
		TotalEmailsSent:   2,
	}}, zerolog.Nop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/monitor/run", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body runResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.UsersProcessed != 3 || body.TotalEmailsSent != 2 || body.GeminiCallsUsed != 4 {
		t.Errorf("body = %+v", body)
	}
}

// Per-user failures are listed, not raised: still HTTP 200, success=true.
func TestRunMonitor_PerUserErrorsStillSucceed(t *testing.T) {
	router := NewRouter(&fakeTrigger{summary: model.RunSummary{
		UsersProcessed: 2,
		Errors:         []string{"dev@example.com: notify: provider returned 500: down"},
	}}, zerolog.Nop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/monitor/run", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite per-user errors", rec.Code)
	}
	var body runResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success must stay true for best-effort runs")
	}
	if len(body.Errors) != 1 {
		t.Errorf("errors = %v, want the per-user error listed", body.Errors)
	}
}

func TestRunMonitor_FatalErrorIs500(t *testing.T) {
	router := NewRouter(&fakeTrigger{err: errors.New("load active users: connection refused")}, zerolog.Nop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/monitor/run", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success must be false for a fatal failure")
	}
}
