package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"orderdesk/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// BaselineSchedule captures a statistics snapshot at local midnight, so each
// day's dashboard compares against the previous day's close.
const BaselineSchedule = "0 0 0 * * *"

// StatisticsBaselineJob periodically captures a statistics snapshot and keeps
// the most recent one as the comparison baseline for dashboard statistics.
// Without a captured baseline the statistics surface reports neutral change.
type StatisticsBaselineJob struct {
	handler  queries.OrderStatisticsQueryHandler
	location *time.Location
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.RWMutex
	baseline *queries.StatisticsSnapshot
}

// NewStatisticsBaselineJob creates a job capturing baselines in the vendor's
// timezone. A nil location falls back to time.Local.
func NewStatisticsBaselineJob(
	handler queries.OrderStatisticsQueryHandler,
	location *time.Location,
	logger *slog.Logger,
) *StatisticsBaselineJob {
	if location == nil {
		location = time.Local
	}
	return &StatisticsBaselineJob{
		handler:  handler,
		location: location,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.With("component", "statistics_baseline_job"),
	}
}

// Start schedules the nightly capture and takes an immediate first snapshot
// so the baseline is populated from startup.
func (j *StatisticsBaselineJob) Start() error {
	_, err := j.cron.AddFunc(BaselineSchedule, func() {
		j.Capture(context.Background())
	})
	if err != nil {
		return err
	}

	j.Capture(context.Background())

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Statistics baseline job started (capturing daily at midnight)")
	return nil
}

// Stop stops the scheduled captures.
func (j *StatisticsBaselineJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Statistics baseline job stopped")
}

// Capture takes a snapshot now and stores it as the current baseline.
// A failed capture keeps the previous baseline.
func (j *StatisticsBaselineJob) Capture(ctx context.Context) {
	query, err := queries.NewOrderStatisticsQuery(
		time.Time{}, time.Time{}, j.location, time.Now(), nil)
	if err != nil {
		j.logger.ErrorContext(ctx, "Baseline capture failed to build query", "error", err)
		return
	}

	response, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Baseline capture failed", "error", err)
		return
	}

	snapshot := response.Current
	j.mu.Lock()
	j.baseline = &snapshot
	j.mu.Unlock()

	j.logger.InfoContext(ctx, "Statistics baseline captured",
		"total_orders", snapshot.TotalOrders,
		"total_revenue", snapshot.TotalRevenue.String(),
	)
}

// Baseline returns the most recently captured snapshot, nil before the first
// successful capture. The returned snapshot is a copy and safe to retain.
func (j *StatisticsBaselineJob) Baseline() *queries.StatisticsSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.baseline == nil {
		return nil
	}
	snapshot := *j.baseline
	return &snapshot
}
