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

// supplierOrderingActor is recorded in the audit trail for sweeps of this job.
const supplierOrderingActor = "job:supplier_ordering"

// SupplierOrderingJob sweeps orders waiting for a supplier purchase and
// drives each through the supplier step. It also picks up orders stuck in
// SUPPLIER_ORDERING after a crash between claim and settle.
type SupplierOrderingJob struct {
	listHandler queries.GetOrdersByStatusQueryHandler
	stepHandler commands.PlaceSupplierOrderCommandHandler
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewSupplierOrderingJob creates the supplier sweep job.
func NewSupplierOrderingJob(
	listHandler queries.GetOrdersByStatusQueryHandler,
	stepHandler commands.PlaceSupplierOrderCommandHandler,
	logger *slog.Logger,
) *SupplierOrderingJob {
	return &SupplierOrderingJob{
		listHandler: listHandler,
		stepHandler: stepHandler,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "supplier_ordering_job"),
	}
}

// Start begins the supplier sweep, running every five seconds.
func (j *SupplierOrderingJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Supplier ordering job started (running every 5 seconds)")
	return nil
}

// Stop stops the supplier sweep.
func (j *SupplierOrderingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Supplier ordering job stopped")
}

func (j *SupplierOrderingJob) sweep(ctx context.Context) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Pending, order.SupplierOrdering)
	if err != nil {
		j.logger.ErrorContext(ctx, "Supplier sweep query invalid", "error", err)
		return
	}

	candidates, err := j.listHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Supplier sweep listing failed", "error", err)
		return
	}

	for _, candidate := range candidates {
		cmd, err := commands.NewPlaceSupplierOrderCommand(candidate.ID, supplierOrderingActor)
		if err != nil {
			j.logger.ErrorContext(ctx, "Supplier step command invalid",
				"order_id", candidate.ID.String(), "error", err)
			continue
		}

		if err := j.stepHandler.Handle(ctx, cmd); err != nil {
			// Guard misses mean another worker already took the order;
			// everything else was routed by the handler and is logged
			// here for visibility.
			if errors.Is(err, order.ErrStaleState) {
				continue
			}
			j.logger.WarnContext(ctx, "Supplier step failed",
				"order_id", candidate.ID.String(), "error", err)
		}
	}
}
