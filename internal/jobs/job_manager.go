package jobs

import (
	"fmt"
	"log/slog"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	supplierOrderingJob *SupplierOrderingJob
	shipmentJob         *ShipmentJob
	retryJob            *RetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the listing query handler and the step command handlers as
// dependencies to wire up the job execution.
func NewJobManager(
	listHandler queries.GetOrdersByStatusQueryHandler,
	placeSupplierOrderHandler commands.PlaceSupplierOrderCommandHandler,
	submitShipmentHandler commands.SubmitShipmentCommandHandler,
	retryOrderHandler commands.RetryOrderCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		supplierOrderingJob: NewSupplierOrderingJob(listHandler, placeSupplierOrderHandler, logger),
		shipmentJob:         NewShipmentJob(listHandler, submitShipmentHandler, logger),
		retryJob:            NewRetryJob(listHandler, retryOrderHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.supplierOrderingJob.Start(); err != nil {
		return fmt.Errorf("failed to start supplier ordering job: %w", err)
	}

	if err := jm.shipmentJob.Start(); err != nil {
		jm.supplierOrderingJob.Stop()
		return fmt.Errorf("failed to start shipment job: %w", err)
	}

	if err := jm.retryJob.Start(); err != nil {
		jm.shipmentJob.Stop()
		jm.supplierOrderingJob.Stop()
		return fmt.Errorf("failed to start retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retryJob.Stop()
	jm.shipmentJob.Stop()
	jm.supplierOrderingJob.Stop()
}
