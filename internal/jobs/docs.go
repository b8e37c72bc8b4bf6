// Package jobs provides scheduled background tasks for the order pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order pipeline needs.
//
// # Available Jobs
//
// 1. StaleOrderJob - Sweeps for non-terminal orders with no activity inside
// the configured window and flags them urgent.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(markStaleOrdersHandler, "0 * * * *", 72*time.Hour, logger)
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
// The sweep uses a standard five-field cron expression from configuration.
// Hourly is plenty: staleness is measured in days, so a tighter schedule only
// burns database round trips.
//
// # Error Handling
//
// Sweep failures are logged and the next scheduled run retries from scratch;
// a failed start stops any already running jobs.
package jobs
