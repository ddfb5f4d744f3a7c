// Package jobs provides scheduled background tasks for the order engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path should not pay for.
//
// # Available Jobs
//
// 1. StatisticsBaselineJob - Captures a statistics snapshot at local midnight
// so the statistics surface can report day-over-day change against a real
// previous period instead of fabricating one.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(statisticsHandler, vendorTZ, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The baseline job uses the cron expression "0 0 0 * * *" in the vendor's
// timezone, and additionally captures once at startup so the baseline is
// populated immediately.
//
// # Error Handling
//
// A failed capture logs the error and keeps the previous baseline; the job
// never propagates capture failures to callers.
package jobs
