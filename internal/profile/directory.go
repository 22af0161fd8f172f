// Package profile adapts the external profile store. The core only ever
// reads from it: users, skills and company subscriptions are managed by the
// profile/admin surfaces, not here.
package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/model"
)

// Directory loads active monitoring users and their subscribed sources
// from Postgres.
type Directory struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewDirectory constructs a Directory.
func NewDirectory(pool *pgxpool.Pool, log zerolog.Logger) *Directory {
	return &Directory{pool: pool, log: log.With().Str("component", "profile").Logger()}
}

// ActiveUsers returns every user with monitoring switched on and at least
// one active subscription. Users without subscriptions are skipped; there
// is nothing to scrape for them.
func (d *Directory) ActiveUsers(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT user_id, email, COALESCE(skills, '{}'), COALESCE(experience_level, 'mid')
		 FROM profiles
		 WHERE monitoring_active = true`,
	)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var users []model.UserProfile
	for rows.Next() {
		var u model.UserProfile
		if err := rows.Scan(&u.ID, &u.Email, &u.Skills, &u.ExperienceLevel); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	out := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		sources, err := d.subscribedSources(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if len(sources) == 0 {
			d.log.Debug().Str("user", u.ID).Msg("no active subscriptions, skipping")
			continue
		}
		u.Sources = sources
		out = append(out, u)
	}

	return out, nil
}

func (d *Directory) subscribedSources(ctx context.Context, userID string) ([]model.Source, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT c.id, c.name, c.career_url, COALESCE(c.scraper_type, 'generic')
		 FROM subscriptions s
		 JOIN companies c ON c.id = s.company_id
		 WHERE s.user_id = $1 AND s.active = true
		 ORDER BY c.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions for %s: %w", userID, err)
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var s model.Source
		if err := rows.Scan(&s.ID, &s.Name, &s.CareerURL, &s.Strategy); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		sources = append(sources, s)
	}

	return sources, rows.Err()
}
