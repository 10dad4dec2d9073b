package queries

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// GetOrderAuditTrailQueryHandler reads the audit trail of an order.
type GetOrderAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderAuditTrailQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderAuditTrailQueryHandler(db *gorm.DB) GetOrderAuditTrailQueryHandler {
	return GetOrderAuditTrailQueryHandler{db: db}
}

// Handle executes the trail query, returning entries oldest first so the
// result reads as a chronological history.
func (h GetOrderAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAuditTrailQuery,
) ([]GetOrderAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			actor,
			action,
			meta,
			ts
		FROM audit_log
		WHERE order_id = ?
		ORDER BY ts, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetOrderAuditTrailQueryResponse, 0)
	for rows.Next() {
		var (
			resp GetOrderAuditTrailQueryResponse
			meta []byte
			ts   time.Time
		)

		if err = rows.Scan(&resp.Actor, &resp.Action, &meta, &ts); err != nil {
			return nil, err
		}

		if len(meta) > 0 {
			if err = json.Unmarshal(meta, &resp.Meta); err != nil {
				return nil, err
			}
		}
		resp.Timestamp = ts

		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
