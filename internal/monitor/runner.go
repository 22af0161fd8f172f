// Package monitor drives one monitoring pass: load active users, scrape a
// rotated subset of each user's sources, dedup, score under budget, and
// send one digest per user with matches.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
	"jobmatch/monitor-service/internal/scraper"
)

// Caps bundles the per-run resource limits.
type Caps struct {
	MaxCompaniesPerRun    int
	MaxPostingsPerCompany int
	CallsPerCompany       int
	MatchThreshold        float64
}

// Runner executes monitoring passes. Users, sources and postings are all
// processed sequentially; the workload is bounded by the caps, and
// sequential processing keeps the budget accounting trivial.
type Runner struct {
	directory model.UserDirectory
	fetcher   model.PageFetcher
	seen      model.SeenStore
	scorer    model.Scorer
	notifier  model.Notifier
	caps      Caps
	log       zerolog.Logger
}

// NewRunner wires a Runner with all its collaborators.
func NewRunner(
	directory model.UserDirectory,
	fetcher model.PageFetcher,
	seen model.SeenStore,
	scorer model.Scorer,
	notifier model.Notifier,
	caps Caps,
	log zerolog.Logger,
) *Runner {
	return &Runner{
		directory: directory,
		fetcher:   fetcher,
		seen:      seen,
		scorer:    scorer,
		notifier:  notifier,
		caps:      caps,
		log:       log.With().Str("component", "monitor").Logger(),
	}
}

// Run executes one monitoring pass at the given time. Per-user failures
// are collected into the summary; the only fatal error is being unable to
// load the active-user list at all.
func (r *Runner) Run(ctx context.Context, now time.Time) (model.RunSummary, error) {
	var summary model.RunSummary

	users, err := r.directory.ActiveUsers(ctx)
	if err != nil {
		return summary, fmt.Errorf("load active users: %w", err)
	}

	r.log.Info().Int("users", len(users)).Msg("monitoring pass started")
	summary.UsersProcessed = len(users)

	for _, user := range users {
		r.processUser(ctx, now, user, &summary)
	}

	r.log.Info().
		Int("users", summary.UsersProcessed).
		Int("scraped", summary.TotalJobsScraped).
		Int("analyzed", summary.TotalJobsAnalyzed).
		Int("emails", summary.TotalEmailsSent).
		Int("errors", len(summary.Errors)).
		Msg("monitoring pass complete")

	return summary, nil
}

func (r *Runner) processUser(ctx context.Context, now time.Time, user model.UserProfile, summary *model.RunSummary) {
	selected := rotateSources(user.Sources, r.caps.MaxCompaniesPerRun, now.Hour())
	budget := model.NewRunBudget(r.caps.CallsPerCompany * len(selected))

	var candidates []model.Posting
	for _, src := range selected {
		found, err := r.collectCandidates(ctx, src, user, now)
		if err != nil {
			// A failed source yields zero postings; the rest of the
			// user's sources still run.
			r.log.Warn().Str("user", user.Email).Str("source", src.Name).Err(err).Msg("scrape failed")
			continue
		}
		candidates = append(candidates, found...)
	}
	summary.TotalJobsScraped += len(candidates)

	var matches []model.ScoredMatch
	for _, posting := range candidates {
		match, err := r.scorer.Score(ctx, posting, user, budget)
		if errors.Is(err, model.ErrBudgetExhausted) {
			// No marker was written, so the posting stays eligible for a
			// future run.
			r.log.Debug().Str("posting", posting.PostingID).Msg("budget exhausted, skipping")
			continue
		}
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", user.Email, err))
			continue
		}

		summary.TotalJobsAnalyzed++

		// Mark seen only once a score decision exists, match or not.
		// Budget-skipped and failed postings carry no marker.
		if err := r.seen.MarkSeen(ctx, posting.SourceID, posting.PostingID, user.ID); err != nil {
			r.log.Warn().Str("user", user.Email).Str("posting", posting.PostingID).Err(err).Msg("mark seen failed")
		}

		if match.Score >= r.caps.MatchThreshold {
			matches = append(matches, match)
		}
	}
	summary.GeminiCallsUsed += budget.Used()

	if len(matches) == 0 {
		return
	}

	// Descending by score; equal scores keep discovery order.
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	if err := r.notifier.SendDigest(ctx, user, matches); err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", user.Email, err))
		return
	}
	summary.TotalEmailsSent++

	r.log.Info().Str("user", user.Email).Int("matches", len(matches)).Msg("user processed")
}

// collectCandidates scrapes one source and returns the not-yet-seen
// postings, capped at MaxPostingsPerCompany considered identifiers.
func (r *Runner) collectCandidates(ctx context.Context, src model.Source, user model.UserProfile, now time.Time) ([]model.Posting, error) {
	page, err := r.fetcher.FetchPage(ctx, src.CareerURL)
	if err != nil {
		return nil, err
	}

	ids := scraper.ExtractPostingIDs(page, src.Strategy)
	if len(ids) > r.caps.MaxPostingsPerCompany {
		ids = ids[:r.caps.MaxPostingsPerCompany]
	}

	var postings []model.Posting
	for _, id := range ids {
		seen, err := r.seen.Seen(ctx, src.ID, id, user.ID)
		if err != nil {
			// Store failure reads as "not seen": one duplicate email is
			// better than a silently dropped posting.
			r.log.Warn().Str("source", src.ID).Str("posting", id).Err(err).Msg("seen lookup failed, treating as new")
		}
		if seen {
			continue
		}

		postings = append(postings, model.Posting{
			SourceID:     src.ID,
			SourceName:   src.Name,
			PostingID:    id,
			Title:        fmt.Sprintf("Job at %s", src.Name),
			URL:          scraper.BuildPostingURL(src.Strategy, src.CareerURL, id),
			DiscoveredAt: now,
		})
	}

	r.log.Debug().Str("source", src.Name).Int("found", len(ids)).Int("new", len(postings)).Msg("source scraped")
	return postings, nil
}
