package buyerrepo

import (
	"context"
	"errors"

	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBuyerInfoRepository implements BuyerInfoRepository using GORM.
type GormBuyerInfoRepository struct {
	db *gorm.DB
}

// NewGormBuyerInfoRepository creates a new GORM buyer info repository.
func NewGormBuyerInfoRepository(db *gorm.DB) *GormBuyerInfoRepository {
	return &GormBuyerInfoRepository{db: db}
}

// Add saves a new buyer info record to the database.
func (r *GormBuyerInfoRepository) Add(ctx context.Context, info *buyer.BuyerInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	dto := fromDomain(info)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update replaces the buyer info record for an order.
func (r *GormBuyerInfoRepository) Update(ctx context.Context, info *buyer.BuyerInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	dto := fromDomain(info)
	result := r.db.WithContext(ctx).Model(&BuyerInfoDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("*").Omit("order_id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("buyerInfo", info.OrderID().String())
	}

	return nil
}

// GetByOrderID retrieves the buyer info for an order.
func (r *GormBuyerInfoRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*buyer.BuyerInfo, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto BuyerInfoDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("buyerInfo", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
