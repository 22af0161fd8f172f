// Package model defines the shared data structures and contracts of the
// monitoring pipeline.
package model

import (
	"context"
	"time"
)

// Source is one company career page the pipeline scrapes. Rows live in the
// admin-managed companies table and are immutable from the core's view.
type Source struct {
	ID        string
	Name      string
	CareerURL string
	Strategy  string // extraction-strategy tag, e.g. "google", "generic"
}

// UserProfile is an active monitoring user together with the sources they
// subscribed to. Owned by the profile collaborator; read-only here.
type UserProfile struct {
	ID              string
	Email           string
	Skills          []string
	ExperienceLevel string // "entry", "mid" or "senior"
	Sources         []Source
}

// Posting is a candidate job posting discovered during one run. It is never
// persisted; only its seen-marker outlives the run.
type Posting struct {
	SourceID     string
	SourceName   string
	PostingID    string
	Title        string
	URL          string
	DiscoveredAt time.Time
}

// Analysis is the structured result of scoring one posting against a
// profile. Heuristic scoring leaves everything but Score empty.
type Analysis struct {
	Title           string   `json:"title"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	ExperienceLevel string   `json:"experience_level"`
	Score           float64  `json:"score"`
	Reasoning       string   `json:"reasoning"`
}

// ScoredMatch pairs a posting with its relevance score in [0,1].
type ScoredMatch struct {
	Posting  Posting
	Score    float64
	Analysis *Analysis // nil in heuristic mode
}

// RunSummary aggregates the counters of one monitoring pass.
type RunSummary struct {
	UsersProcessed    int
	TotalJobsScraped  int
	TotalJobsAnalyzed int
	GeminiCallsUsed   int
	TotalEmailsSent   int
	Errors            []string
}

// UserDirectory is the profile collaborator: it lists every user with
// monitoring switched on, including contact address and subscriptions.
type UserDirectory interface {
	ActiveUsers(ctx context.Context) ([]UserProfile, error)
}

// PageFetcher retrieves a document over HTTP and returns its body as text.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// SeenStore records which (source, posting, user) triples were already
// surfaced, with a TTL. A lookup failure must degrade to "not seen".
type SeenStore interface {
	Seen(ctx context.Context, sourceID, postingID, userID string) (bool, error)
	MarkSeen(ctx context.Context, sourceID, postingID, userID string) error
}

// AnalysisCache stores scoring results per (source, posting), shared across
// users so repeat postings never re-spend external-call budget.
type AnalysisCache interface {
	Get(ctx context.Context, sourceID, postingID string) (*Analysis, bool, error)
	Put(ctx context.Context, sourceID, postingID string, a *Analysis) error
}

// Scorer computes a relevance score for one posting. Implementations that
// call out to an external model must consume from budget before each call
// and return ErrBudgetExhausted once it runs dry.
type Scorer interface {
	Score(ctx context.Context, posting Posting, user UserProfile, budget *RunBudget) (ScoredMatch, error)
}

// Notifier renders and sends one digest for a batch of matches.
type Notifier interface {
	SendDigest(ctx context.Context, user UserProfile, matches []ScoredMatch) error
}
