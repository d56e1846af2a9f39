package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob periodically re-attempts dispatch for orders sitting in
// READY: orders whose first dispatch found no courier, and orders readied
// while no dispatch was requested. Finding no courier again is a normal
// outcome, not an error.
type DispatchSweepJob struct {
	readyOrders queries.GetReadyOrdersQueryHandler
	dispatch    commands.DispatchOrderCommandHandler
	schedule    string
	batchSize   int
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewDispatchSweepJob creates the sweep job. The schedule is a six-field
// cron expression; batchSize bounds how many READY orders one sweep touches.
func NewDispatchSweepJob(
	readyOrders queries.GetReadyOrdersQueryHandler,
	dispatch commands.DispatchOrderCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *DispatchSweepJob {
	return &DispatchSweepJob{
		readyOrders: readyOrders,
		dispatch:    dispatch,
		schedule:    schedule,
		batchSize:   batchSize,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "dispatch_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *DispatchSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch sweep job stopped")
}

func (j *DispatchSweepJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetReadyOrdersQuery(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "dispatch sweep failed to build query", "error", err)
		return
	}
	ready, err := j.readyOrders.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "dispatch sweep failed to list ready orders", "error", err)
		return
	}

	for _, o := range ready {
		orderID, err := kernel.UUIDFromString(o.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep skipped malformed order id", "orderId", o.ID, "error", err)
			continue
		}
		cmd, err := commands.NewDispatchOrderCommand(orderID)
		if err != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep skipped order", "orderId", o.ID, "error", err)
			continue
		}

		if err := j.dispatch.Handle(ctx, cmd); err != nil {
			// No courier in range and losing the order to a concurrent
			// dispatch are both expected between sweeps.
			if errors.Is(err, commands.ErrNoCourierAvailable) || errors.Is(err, errs.ErrConflict) {
				continue
			}
			j.logger.ErrorContext(ctx, "dispatch sweep failed for order", "orderId", o.ID, "error", err)
		}
	}
}
