package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchSweepJob *DispatchSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	readyOrdersHandler queries.GetReadyOrdersQueryHandler,
	dispatchHandler commands.DispatchOrderCommandHandler,
	sweepSchedule string,
	sweepBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchSweepJob: NewDispatchSweepJob(readyOrdersHandler, dispatchHandler, sweepSchedule, sweepBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dispatchSweepJob.Stop()
}
