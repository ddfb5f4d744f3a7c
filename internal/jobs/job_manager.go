package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statisticsBaselineJob *StatisticsBaselineJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	statisticsHandler queries.OrderStatisticsQueryHandler,
	location *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statisticsBaselineJob: NewStatisticsBaselineJob(statisticsHandler, location, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statisticsBaselineJob.Start(); err != nil {
		return fmt.Errorf("failed to start statistics baseline job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statisticsBaselineJob.Stop()
}

// Baselines exposes the baseline job as the snapshot source for the
// statistics surface.
func (jm *JobManager) Baselines() *StatisticsBaselineJob {
	return jm.statisticsBaselineJob
}
