package queries

import (
	"context"
	"database/sql"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler lists orders directly from the database.
// Newest orders first, so operational dashboards see recent activity on top.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the listing query, optionally filtered by status.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	q := `
		SELECT
			id,
			platform,
			platform_order_ref,
			product_id,
			qty,
			unit_price_amount,
			unit_price_currency,
			status,
			retry_count,
			supplier_order_id,
			forwarder_job_id,
			created_at,
			updated_at
		FROM orders
	`

	var rows *sql.Rows
	var err error
	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		rows, err = h.db.WithContext(ctx).Raw(q+` WHERE status IN ? ORDER BY created_at DESC`, names).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(q + ` ORDER BY created_at DESC`).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersByStatusQueryResponse, 0)
	for rows.Next() {
		var (
			resp        GetOrdersByStatusQueryResponse
			id          uuid.UUID
			amount      int64
			currency    string
			status      string
			supplierID  sql.NullString
			forwarderID sql.NullString
			createdAt   time.Time
			updatedAt   time.Time
		)

		err = rows.Scan(
			&id,
			&resp.Platform,
			&resp.PlatformOrderRef,
			&resp.ProductID,
			&resp.Qty,
			&amount,
			&currency,
			&status,
			&resp.RetryCount,
			&supplierID,
			&forwarderID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		price, priceErr := kernel.NewMoney(amount, currency)
		if priceErr != nil {
			return nil, priceErr
		}
		resp.UnitPrice = price

		parsedStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		resp.Status = parsedStatus

		if supplierID.Valid {
			resp.SupplierOrderID = &supplierID.String
		}
		if forwarderID.Valid {
			resp.ForwarderJobID = &forwarderID.String
		}
		resp.CreatedAt = createdAt
		resp.UpdatedAt = updatedAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
