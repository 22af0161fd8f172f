// monitor-service scrapes subscribed career pages on a rotation, dedups
// against Redis, scores postings for each user and emails digests.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobmatch/monitor-service/internal/api"
	"jobmatch/monitor-service/internal/config"
	"jobmatch/monitor-service/internal/db"
	"jobmatch/monitor-service/internal/dedup"
	"jobmatch/monitor-service/internal/logging"
	"jobmatch/monitor-service/internal/model"
	"jobmatch/monitor-service/internal/monitor"
	"jobmatch/monitor-service/internal/notify"
	"jobmatch/monitor-service/internal/profile"
	"jobmatch/monitor-service/internal/scheduler"
	"jobmatch/monitor-service/internal/scorer"
	"jobmatch/monitor-service/internal/scraper"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", "console")
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	fetcher := scraper.NewFetcher(cfg.HTTPTimeout)
	seen := dedup.NewRedisSeenStore(rdb, cfg.SeenTTL, log)
	directory := profile.NewDirectory(pool, log)
	notifier := notify.NewResendNotifier("", cfg.ResendAPIKey, cfg.EmailFrom, &http.Client{Timeout: cfg.HTTPTimeout}, log)

	var sc model.Scorer
	if cfg.ScorerMode == config.ScorerGemini {
		cache := scorer.NewRedisAnalysisCache(rdb, cfg.CacheTTL, log)
		sc = scorer.NewGemini("", cfg.GeminiAPIKey, cfg.GeminiModel,
			&http.Client{Timeout: 60 * time.Second}, fetcher, cache, log)
	} else {
		sc = scorer.NewHeuristic()
	}

	runner := monitor.NewRunner(directory, fetcher, seen, sc, notifier, monitor.Caps{
		MaxCompaniesPerRun:    cfg.MaxCompaniesPerRun,
		MaxPostingsPerCompany: cfg.MaxPostingsPerCompany,
		CallsPerCompany:       cfg.GeminiCallsPerCompany,
		MatchThreshold:        cfg.MatchThreshold,
	}, log)

	sched := scheduler.New(runner, cfg.MonitorIntervalHours, log)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("scheduler start failed")
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(runner, log),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("scorer", cfg.ScorerMode).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
