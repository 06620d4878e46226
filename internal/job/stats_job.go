package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"change-ops-api/internal/service"
)

// StatsRefreshJob recomputes the dashboard aggregate so the cache stays warm
type StatsRefreshJob struct {
	statsService service.StatsService
	logger       *zap.Logger
}

// NewStatsRefreshJob creates a new StatsRefreshJob instance
func NewStatsRefreshJob(statsService service.StatsService, logger *zap.Logger) *StatsRefreshJob {
	return &StatsRefreshJob{
		statsService: statsService,
		logger:       logger,
	}
}

// Run executes one refresh. Cron calls this on its schedule.
func (j *StatsRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if _, err := j.statsService.RefreshDashboardStats(ctx); err != nil {
		j.logger.Error("Dashboard stats refresh failed", zap.Error(err))
		return
	}

	j.logger.Info("Dashboard stats refreshed",
		zap.Duration("duration", time.Since(start)),
	)
}
