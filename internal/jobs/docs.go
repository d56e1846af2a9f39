// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order delivery.
//
// # Available Jobs
//
// 1. DispatchSweepJob - Periodically re-attempts dispatch for orders stuck in READY
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(readyOrdersHandler, dispatchHandler, schedule, batchSize, logger)
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
// The sweep uses a six-field cron expression (seconds resolution) supplied
// through configuration, "*/30 * * * * *" by default. Orders left in READY
// because no courier was in range are retried on every sweep.
//
// # Error Handling
//
// - The sweep ignores expected business errors (no courier available, concurrent dispatch)
// - Infrastructure errors are logged as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
