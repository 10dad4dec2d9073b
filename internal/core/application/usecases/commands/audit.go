package commands

import (
	"context"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/ports"
)

// appendAudit writes one audit entry inside the caller's transaction. Every
// successful status mutation goes through here so the trail and the order row
// commit or roll back together.
func appendAudit(
	ctx context.Context,
	repo ports.AuditLogRepository,
	orderID kernel.UUID,
	actor string,
	action string,
	meta map[string]string,
) error {
	entry, err := audit.NewEntry(orderID, actor, action, meta)
	if err != nil {
		return err
	}

	return repo.Append(ctx, entry)
}

// transitionMeta builds the standard from/to annotation for transition audit
// entries.
func transitionMeta(from, to string) map[string]string {
	return map[string]string{
		audit.MetaKeyFromStatus: from,
		audit.MetaKeyToStatus:   to,
	}
}
