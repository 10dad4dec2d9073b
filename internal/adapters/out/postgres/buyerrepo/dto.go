// Package buyerrepo provides data transfer objects and mapping functions for
// buyer info persistence. One row per order, keyed by the order id.
package buyerrepo

import (
	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BuyerInfoDTO represents the database structure for persisting buyer info.
type BuyerInfoDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Phone     string
	Address1  string
	Address2  string
	Zip       string
	Country   string
	CustomsID string
}

// TableName specifies the database table name for buyer info records.
func (BuyerInfoDTO) TableName() string {
	return "buyer_info"
}

func fromDomain(info *buyer.BuyerInfo) BuyerInfoDTO {
	return BuyerInfoDTO{
		OrderID:   info.OrderID().Bytes(),
		Name:      info.Name(),
		Phone:     info.Phone(),
		Address1:  info.Address1(),
		Address2:  info.Address2(),
		Zip:       info.Zip(),
		Country:   info.Country(),
		CustomsID: info.CustomsID(),
	}
}

func toDomain(dto BuyerInfoDTO) (*buyer.BuyerInfo, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return buyer.NewBuyerInfo(
		orderID,
		dto.Name,
		dto.Phone,
		dto.Address1,
		dto.Address2,
		dto.Zip,
		dto.Country,
		dto.CustomsID,
	)
}
