// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dropship/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BuyerInfoRepoFactory provides access to the buyer info repository within a transaction.
	BuyerInfoRepoFactory interface {
		BuyerInfoRepository() ports.BuyerInfoRepository
	}

	// AuditLogRepoFactory provides access to the audit log repository within a transaction.
	AuditLogRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// OrderUoW manages transactions for order lifecycle operations.
	// Every status transition writes its audit entry in the same transaction,
	// so the audit repository is always part of this unit.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditLogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across the order, buyer info and audit log
	// aggregates. Used by commands that touch buyer data alongside the order.
	UoW interface {
		TxManager
		OrderRepoFactory
		BuyerInfoRepoFactory
		AuditLogRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
