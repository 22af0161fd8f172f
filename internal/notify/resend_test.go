package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

func digestUser() model.UserProfile {
	return model.UserProfile{ID: "u1", Email: "dev@example.com"}
}

func twoMatches() []model.ScoredMatch {
	return []model.ScoredMatch{
		{Posting: model.Posting{SourceName: "Acme", URL: "https://acme.example/job/1"}, Score: 0.8},
		{Posting: model.Posting{SourceName: "Globex", URL: "https://globex.example/job/2"}, Score: 0.6},
	}
}

func TestSendDigest_PayloadAndSubject(t *testing.T) {
	var got emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	n := NewResendNotifier(srv.URL, "test-key", "Job Match <noreply@example.com>", srv.Client(), zerolog.Nop())
	if err := n.SendDigest(context.Background(), digestUser(), twoMatches()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.To != "dev@example.com" {
		t.Errorf("to = %q", got.To)
	}
	if got.From != "Job Match <noreply@example.com>" {
		t.Errorf("from = %q", got.From)
	}
	if !strings.Contains(got.Subject, "2 New Job Matches") {
		t.Errorf("subject = %q, want match count", got.Subject)
	}
	if !strings.Contains(got.HTML, "https://acme.example/job/1") || !strings.Contains(got.HTML, "Globex") {
		t.Errorf("html is missing match details: %q", got.HTML)
	}
	if !strings.Contains(got.HTML, "Match Score: 80%") {
		t.Errorf("html is missing rendered score: %q", got.HTML)
	}
}

func TestSendDigest_ProviderRejectionIsNotifyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	n := NewResendNotifier(srv.URL, "k", "bad", srv.Client(), zerolog.Nop())
	err := n.SendDigest(context.Background(), digestUser(), twoMatches())

	var ne *model.NotifyError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *model.NotifyError, got %T (%v)", err, err)
	}
	if ne.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", ne.StatusCode)
	}
	if !strings.Contains(ne.Body, "invalid from address") {
		t.Errorf("Body = %q, want the provider error body", ne.Body)
	}
}

func TestSendDigest_NoMatchesSendsNothing(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := NewResendNotifier(srv.URL, "k", "f", srv.Client(), zerolog.Nop())
	if err := n.SendDigest(context.Background(), digestUser(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("no email must be sent for an empty match list")
	}
}
