// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column is stored by wire name rather than ordinal so the rows
// stay readable in raw SQL and stable across code changes.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Platform          string    `gorm:"uniqueIndex:idx_platform_order_ref"`
	PlatformOrderRef  string    `gorm:"uniqueIndex:idx_platform_order_ref"`
	ProductID         string
	Qty               int
	UnitPriceAmount   int64
	UnitPriceCurrency string
	Status            string `gorm:"index"`
	ResumeStatus      string
	RetryCount        int
	SupplierOrderID   *string
	ForwarderJobID    *string
	Meta              []byte `gorm:"type:jsonb"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	meta, err := json.Marshal(aggregate.Meta())
	if err != nil {
		return OrderDTO{}, err
	}

	resumeStatus := ""
	if aggregate.ResumeStatus() != order.Unknown {
		resumeStatus = aggregate.ResumeStatus().String()
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		Platform:          aggregate.Platform(),
		PlatformOrderRef:  aggregate.PlatformOrderRef(),
		ProductID:         aggregate.ProductID(),
		Qty:               aggregate.Qty(),
		UnitPriceAmount:   aggregate.UnitPrice().Amount(),
		UnitPriceCurrency: aggregate.UnitPrice().Currency(),
		Status:            aggregate.Status().String(),
		ResumeStatus:      resumeStatus,
		RetryCount:        aggregate.RetryCount(),
		SupplierOrderID:   aggregate.SupplierOrderID(),
		ForwarderJobID:    aggregate.ForwarderJobID(),
		Meta:              meta,
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder, which revalidates
// the cross-field invariants on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPriceAmount, dto.UnitPriceCurrency)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	resumeStatus := order.Unknown
	if dto.ResumeStatus != "" {
		if resumeStatus, err = order.StatusFromString(dto.ResumeStatus); err != nil {
			return nil, err
		}
	}

	var meta map[string]string
	if len(dto.Meta) > 0 {
		if err = json.Unmarshal(dto.Meta, &meta); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		dto.Platform,
		dto.PlatformOrderRef,
		dto.ProductID,
		dto.Qty,
		unitPrice,
		status,
		resumeStatus,
		dto.RetryCount,
		dto.SupplierOrderID,
		dto.ForwarderJobID,
		meta,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
