package background

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler runs periodic maintenance jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	tokenRepo repositories.RefreshTokenRepository
	log       *zap.Logger
	now       func() time.Time
}

func NewJobScheduler(tokenRepo repositories.RefreshTokenRepository, cleanupInterval time.Duration, log *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		tokenRepo: tokenRepo,
		log:       log,
		now:       time.Now,
	}

	if err := js.registerJobs(cleanupInterval); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.log.Info("Starting background job scheduler", zap.Int("jobs", len(js.scheduler.Jobs())))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.log.Info("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(cleanupInterval time.Duration) error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(cleanupInterval),
		gocron.NewTask(js.CleanupExpiredTokens, context.Background()),
		gocron.WithName("refresh-token-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token cleanup job: %w", err)
	}
	return nil
}

// CleanupExpiredTokens deletes refresh-token rows past their expiry.
func (js *JobScheduler) CleanupExpiredTokens(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	deleted, err := js.tokenRepo.DeleteExpired(ctx, js.now())
	if err != nil {
		js.log.Error("Refresh token cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		js.log.Info("Expired refresh tokens deleted", zap.Int64("count", deleted))
	}
}
