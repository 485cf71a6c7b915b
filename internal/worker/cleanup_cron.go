package worker

// cleanup_cron.go
// Hourly sweep of time-bounded credentials. The document-database original
// relied on TTL indexes; Postgres has no row expiry, so login sessions and
// password-reset tokens are garbage-collected here instead.

import (
	"context"
	"time"

	"gamehouse/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CleanupConfig holds the repositories the sweep operates on.
type CleanupConfig struct {
	LoginSessions repository.LoginSessionRepository
	ResetTokens   repository.ResetTokenRepository
}

// StartCleanupCron schedules the hourly expiry sweep and returns the cron
// scheduler so the caller can Stop() it on shutdown.
func StartCleanupCron(ctx context.Context, cfg CleanupConfig) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() { runCleanup(ctx, cfg) })
	if err != nil {
		log.Error().Err(err).Msg("cleanup_cron: failed to schedule")
		return c
	}
	c.Start()
	log.Info().Msg("cleanup_cron: scheduled hourly expiry sweep")
	return c
}

func runCleanup(ctx context.Context, cfg CleanupConfig) {
	now := time.Now()

	sessions, err := cfg.LoginSessions.DeleteExpired(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("cleanup_cron: login session sweep failed")
	}

	tokens, err := cfg.ResetTokens.DeleteExpired(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("cleanup_cron: reset token sweep failed")
	}

	if sessions > 0 || tokens > 0 {
		log.Info().
			Int64("login_sessions_removed", sessions).
			Int64("reset_tokens_removed", tokens).
			Msg("cleanup_cron: expired credentials removed")
	}
}
