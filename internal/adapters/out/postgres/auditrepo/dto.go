// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit trail. Rows are inserted and read, never updated.
package auditrepo

import (
	"encoding/json"
	"time"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit entries.
// The surrogate id keeps a stable read order for entries sharing a timestamp.
type EntryDTO struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Actor   string
	Action  string
	Meta    []byte    `gorm:"type:jsonb"`
	Ts      time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_log"
}

func fromDomain(entry *audit.Entry) (EntryDTO, error) {
	meta, err := json.Marshal(entry.Meta())
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		OrderID: entry.OrderID().Bytes(),
		Actor:   entry.Actor(),
		Action:  entry.Action(),
		Meta:    meta,
		Ts:      entry.Timestamp(),
	}, nil
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var meta map[string]string
	if len(dto.Meta) > 0 {
		if err = json.Unmarshal(dto.Meta, &meta); err != nil {
			return nil, err
		}
	}

	return audit.RestoreEntry(orderID, dto.Actor, dto.Action, meta, dto.Ts)
}
