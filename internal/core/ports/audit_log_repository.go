package ports

import (
	"context"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/kernel"
)

// AuditLogRepository defines the contract for the append-only audit trail.
// Entries are immutable once written; there is no update or delete.
type AuditLogRepository interface {
	// Append stores an audit entry.
	Append(ctx context.Context, entry *audit.Entry) error

	// ListByOrderID returns all entries for an order ordered by timestamp
	// ascending, so the trail reads as a chronological history.
	ListByOrderID(ctx context.Context, orderID kernel.UUID) ([]*audit.Entry, error)
}
