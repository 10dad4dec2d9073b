package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/application/usecases/queries"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// shipmentActor is recorded in the audit trail for sweeps of this job.
const shipmentActor = "job:shipment"

// ShipmentJob sweeps orders whose buyer info is complete and hands each to
// the freight forwarder. It also picks up orders stuck in FORWARDER_SENDING
// after a crash between claim and settle.
type ShipmentJob struct {
	listHandler queries.GetOrdersByStatusQueryHandler
	stepHandler commands.SubmitShipmentCommandHandler
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewShipmentJob creates the shipment sweep job.
func NewShipmentJob(
	listHandler queries.GetOrdersByStatusQueryHandler,
	stepHandler commands.SubmitShipmentCommandHandler,
	logger *slog.Logger,
) *ShipmentJob {
	return &ShipmentJob{
		listHandler: listHandler,
		stepHandler: stepHandler,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "shipment_job"),
	}
}

// Start begins the shipment sweep, running every five seconds.
func (j *ShipmentJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment job started (running every 5 seconds)")
	return nil
}

// Stop stops the shipment sweep.
func (j *ShipmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment job stopped")
}

func (j *ShipmentJob) sweep(ctx context.Context) {
	query, err := queries.NewGetOrdersByStatusQuery(order.BuyerInfoSet, order.ForwarderSending)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment sweep query invalid", "error", err)
		return
	}

	candidates, err := j.listHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment sweep listing failed", "error", err)
		return
	}

	for _, candidate := range candidates {
		cmd, err := commands.NewSubmitShipmentCommand(candidate.ID, shipmentActor)
		if err != nil {
			j.logger.ErrorContext(ctx, "Shipment step command invalid",
				"order_id", candidate.ID.String(), "error", err)
			continue
		}

		if err := j.stepHandler.Handle(ctx, cmd); err != nil {
			// Guard misses mean another worker already took the order.
			// Missing buyer info should not happen past BUYER_INFO_SET
			// and deserves a louder log line.
			switch {
			case errors.Is(err, order.ErrStaleState):
				continue
			case errors.Is(err, errs.ErrObjectNotFound):
				j.logger.ErrorContext(ctx, "Shipment step found no buyer info",
					"order_id", candidate.ID.String(), "error", err)
			default:
				j.logger.WarnContext(ctx, "Shipment step failed",
					"order_id", candidate.ID.String(), "error", err)
			}
		}
	}
}
