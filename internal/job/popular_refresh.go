// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"media-search-service/internal/app/service"
	"media-search-service/internal/domain"
	"media-search-service/pkg/locker"
)

// PopularRefresher periodically pulls popular search terms from the trends
// provider and swaps them into the shared PopularList. Distributed locking
// ensures only one instance performs the fetch per interval.
type PopularRefresher struct {
	provider domain.TrendsProvider
	popular  *service.PopularList
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewPopularRefresher creates a new PopularRefresher with distributed locking support.
func NewPopularRefresher(
	provider domain.TrendsProvider,
	popular *service.PopularList,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *PopularRefresher {
	return &PopularRefresher{
		provider: provider,
		popular:  popular,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   locker,
	}
}

// Start begins the background refresh job.
func (r *PopularRefresher) Start(runOnStartup bool) {
	r.ctx, r.cancel = context.WithCancel(context.Background())

	r.logger.Info("starting popular refresh scheduler",
		zap.Duration("interval", r.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	r.wg.Add(1)
	go r.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (r *PopularRefresher) Stop() {
	r.logger.Info("stopping popular refresh scheduler")
	r.cancel()
	r.wg.Wait()
	r.logger.Info("popular refresh scheduler stopped")
}

// run is the main loop of the scheduler.
func (r *PopularRefresher) run(runOnStartup bool) {
	defer r.wg.Done()

	// Run immediately if configured
	if runOnStartup {
		r.executeRefresh()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.executeRefresh()
		}
	}
}

// executeRefresh fetches popular terms with distributed locking and timeout.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate fetches
//   - Failure: Lock released immediately to allow retry by another instance
func (r *PopularRefresher) executeRefresh() {
	const lockKey = "popular:refresh:lock"

	acquired, err := r.locker.Acquire(r.ctx, lockKey, r.interval)
	if err != nil {
		r.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		r.logger.Debug("another instance is refreshing popular terms, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	terms, err := r.provider.FetchPopular(ctx)
	if err != nil {
		// Release lock immediately on error (allow immediate retry)
		if relErr := r.locker.Release(r.ctx, lockKey); relErr != nil {
			r.logger.Error("failed to release lock after refresh error", zap.Error(relErr))
		}
		r.logger.Warn("popular refresh failed, lock released for retry",
			zap.String("provider", r.provider.Name()),
			zap.Error(err),
		)

		return
	}

	r.popular.Replace(terms)

	// Lock expires naturally after interval (cooldown period)
	r.logger.Info("popular terms refreshed, lock held for cooldown",
		zap.String("provider", r.provider.Name()),
		zap.Int("terms", len(terms)),
		zap.Duration("cooldown", r.interval),
	)
}
