package scorer

import (
	"context"
	"testing"

	"jobmatch/monitor-service/internal/model"
)

func heuristicScore(t *testing.T, posting model.Posting, skills []string) float64 {
	t.Helper()
	m, err := NewHeuristic().Score(context.Background(), posting, model.UserProfile{Skills: skills}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m.Score
}

func TestHeuristic_SkillInTitle(t *testing.T) {
	p := model.Posting{Title: "Senior Python Engineer", SourceName: "Acme"}
	if got := heuristicScore(t, p, []string{"python"}); got != 0.8 {
		t.Errorf("score = %v, want 0.8", got)
	}
}

func TestHeuristic_SkillInSourceName(t *testing.T) {
	p := model.Posting{Title: "Job at Intel", SourceName: "Intel"}
	if got := heuristicScore(t, p, []string{"intel"}); got != 0.8 {
		t.Errorf("score = %v, want 0.8", got)
	}
}

func TestHeuristic_NoOverlap(t *testing.T) {
	p := model.Posting{Title: "Job at Acme", SourceName: "Acme"}
	if got := heuristicScore(t, p, []string{"Python", "Go"}); got != 0.6 {
		t.Errorf("score = %v, want 0.6", got)
	}
}

func TestHeuristic_CaseInsensitive(t *testing.T) {
	p := model.Posting{Title: "JOB AT ACME - RUST TEAM", SourceName: "Acme"}
	if got := heuristicScore(t, p, []string{"rust"}); got != 0.8 {
		t.Errorf("score = %v, want 0.8", got)
	}
}

func TestHeuristic_EmptySkillIgnored(t *testing.T) {
	p := model.Posting{Title: "Job at Acme", SourceName: "Acme"}
	if got := heuristicScore(t, p, []string{""}); got != 0.6 {
		t.Errorf("score = %v, want 0.6 (empty skill must not match everything)", got)
	}
}

// Both heuristic outputs clear the heuristic-mode 0.5 threshold, so the
// orchestrator's threshold filter only ever bites in Gemini mode. Kept as
// an explicit record of that behavior.
func TestHeuristic_AllOutputsClearDefaultThreshold(t *testing.T) {
	if heuristicMissScore < 0.5 || heuristicHitScore < 0.5 {
		t.Errorf("heuristic outputs (%v, %v) are expected to clear the 0.5 threshold",
			heuristicMissScore, heuristicHitScore)
	}
}
