package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/application/usecases/queries"
	"dropship/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// retryActor is recorded in the audit trail for sweeps of this job.
const retryActor = "job:retry"

// RetryJob sweeps orders parked in RETRYING and re-drives each through the
// step it failed at. The step handlers keep the retry budget, so this job
// only dispatches.
type RetryJob struct {
	listHandler  queries.GetOrdersByStatusQueryHandler
	retryHandler commands.RetryOrderCommandHandler
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewRetryJob creates the retry sweep job.
func NewRetryJob(
	listHandler queries.GetOrdersByStatusQueryHandler,
	retryHandler commands.RetryOrderCommandHandler,
	logger *slog.Logger,
) *RetryJob {
	return &RetryJob{
		listHandler:  listHandler,
		retryHandler: retryHandler,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "retry_job"),
	}
}

// Start begins the retry sweep, running every thirty seconds. The longer
// interval gives transient upstream failures time to clear before the next
// attempt burns retry budget.
func (j *RetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the retry sweep.
func (j *RetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Retry job stopped")
}

func (j *RetryJob) sweep(ctx context.Context) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Retrying)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retry sweep query invalid", "error", err)
		return
	}

	candidates, err := j.listHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retry sweep listing failed", "error", err)
		return
	}

	for _, candidate := range candidates {
		cmd, err := commands.NewRetryOrderCommand(candidate.ID, retryActor)
		if err != nil {
			j.logger.ErrorContext(ctx, "Retry command invalid",
				"order_id", candidate.ID.String(), "error", err)
			continue
		}

		if err := j.retryHandler.Handle(ctx, cmd); err != nil {
			// A failed re-attempt was already routed by the step handler;
			// guard misses mean another worker already took the order.
			if errors.Is(err, order.ErrStaleState) || errors.Is(err, order.ErrIllegalTransition) {
				continue
			}
			j.logger.WarnContext(ctx, "Retry attempt failed",
				"order_id", candidate.ID.String(), "retry_count", candidate.RetryCount,
				"error", err)
		}
	}
}
