// Package scorer implements the two scoring strategies: a zero-cost
// keyword heuristic and a budgeted Gemini analysis with a shared cache.
package scorer

import (
	"context"
	"strings"

	"jobmatch/monitor-service/internal/model"
)

const (
	heuristicHitScore  = 0.8
	heuristicMissScore = 0.6
)

// Heuristic scores a posting by substring-matching the user's skills
// against the posting title and source name, case-insensitive. It makes no
// external calls and ignores the budget.
type Heuristic struct{}

// NewHeuristic returns the heuristic scorer.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Score returns 0.8 when any skill appears in the title or source name,
// 0.6 otherwise.
func (h *Heuristic) Score(_ context.Context, posting model.Posting, user model.UserProfile, _ *model.RunBudget) (model.ScoredMatch, error) {
	haystack := strings.ToLower(posting.Title + " " + posting.SourceName)

	score := heuristicMissScore
	for _, skill := range user.Skills {
		if skill == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(skill)) {
			score = heuristicHitScore
			break
		}
	}

	return model.ScoredMatch{Posting: posting, Score: score}, nil
}
