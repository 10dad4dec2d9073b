// Package jobs provides scheduled background tasks for the order pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to push orders through the fulfillment pipeline without operator input.
//
// # Available Jobs
//
// 1. SupplierOrderingJob - Runs every 5 seconds to place supplier purchases
// for PENDING orders (and to recover orders stuck in SUPPLIER_ORDERING)
// 2. ShipmentJob - Runs every 5 seconds to hand BUYER_INFO_SET orders to the
// freight forwarder (and to recover orders stuck in FORWARDER_SENDING)
// 3. RetryJob - Runs every 30 seconds to re-drive RETRYING orders through
// the step they failed at
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(listHandler, supplierHandler, shipmentHandler, retryHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - All sweeps ignore optimistic-guard misses: a concurrent worker already
// took the order, and the next sweep sees the new state
// - External-call failures are routed by the step handlers themselves
// (retry, manual review or fail), so the jobs only log them
// - Failed job starts will stop any already running jobs
package jobs
