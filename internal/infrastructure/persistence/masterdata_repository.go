package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/query-service/internal/domain/masterdata"
	"github.com/erp/query-service/internal/domain/shared"
)

// GormProductRepository implements masterdata.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List returns products matching the filter
func (r *GormProductRepository) List(ctx context.Context, filter masterdata.ProductFilter, page shared.Page) ([]masterdata.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.Product{})
	if filter.PartNumber != "" {
		query = query.Where("part_number ILIKE ?", "%"+filter.PartNumber+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []masterdata.Product
	if err := query.Order("part_number").
		Limit(page.Limit).Offset(page.Offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindByPartNumber finds a product by its part number
func (r *GormProductRepository) FindByPartNumber(ctx context.Context, partNumber string) (*masterdata.Product, error) {
	var product masterdata.Product
	if err := r.db.WithContext(ctx).First(&product, "part_number = ?", partNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GormUserRepository implements masterdata.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// List returns users matching the filter
func (r *GormUserRepository) List(ctx context.Context, filter masterdata.UserFilter, page shared.Page) ([]masterdata.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Email != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Email+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []masterdata.User
	if err := query.Order("id").
		Limit(page.Limit).Offset(page.Offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*masterdata.User, error) {
	var user masterdata.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListLogs returns a user's audit trail, newest first. A missing user
// yields shared.ErrNotFound.
func (r *GormUserRepository) ListLogs(ctx context.Context, userID int64, page shared.Page) ([]masterdata.UserLog, int64, error) {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&masterdata.User{}).
		Where("id = ?", userID).Count(&exists).Error; err != nil {
		return nil, 0, err
	}
	if exists == 0 {
		return nil, 0, shared.ErrNotFound
	}

	query := r.db.WithContext(ctx).Model(&masterdata.UserLog{}).
		Where("id_user = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []masterdata.UserLog
	if err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// GormLegacyStockRepository implements masterdata.LegacyStockRepository using GORM
type GormLegacyStockRepository struct {
	db *gorm.DB
}

// NewGormLegacyStockRepository creates a new GormLegacyStockRepository
func NewGormLegacyStockRepository(db *gorm.DB) *GormLegacyStockRepository {
	return &GormLegacyStockRepository{db: db}
}

// ListDeliveries returns deliveries matching the filter, newest first
func (r *GormLegacyStockRepository) ListDeliveries(ctx context.Context, filter masterdata.DeliveryFilter, page shared.Page) ([]masterdata.Delivery, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.Delivery{})
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.Customer != "" {
		query = query.Where("customer ILIKE ?", "%"+filter.Customer+"%")
	}
	query = applyDateWindow(query, "delivery_date", filter.DateFrom, filter.DateTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deliveries []masterdata.Delivery
	if err := query.Order("delivery_date DESC NULLS LAST, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&deliveries).Error; err != nil {
		return nil, 0, err
	}
	return deliveries, total, nil
}

// ListReturns returns customer returns, newest first
func (r *GormLegacyStockRepository) ListReturns(ctx context.Context, partNumber string, page shared.Page) ([]masterdata.CustomerReturn, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.CustomerReturn{})
	if partNumber != "" {
		query = query.Where("part_number = ?", partNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var returns []masterdata.CustomerReturn
	if err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&returns).Error; err != nil {
		return nil, 0, err
	}
	return returns, total, nil
}

// ListFGStock returns finished-goods stock rows
func (r *GormLegacyStockRepository) ListFGStock(ctx context.Context, partNumber string, page shared.Page) ([]masterdata.FGStock, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.FGStock{})
	if partNumber != "" {
		query = query.Where("part_number = ?", partNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stock []masterdata.FGStock
	if err := query.Order("part_number").
		Limit(page.Limit).Offset(page.Offset).Find(&stock).Error; err != nil {
		return nil, 0, err
	}
	return stock, total, nil
}

// ListStockTakes returns stock take history, newest first
func (r *GormLegacyStockRepository) ListStockTakes(ctx context.Context, filter masterdata.StockTakeFilter, page shared.Page) ([]masterdata.StockTake, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.StockTake{})
	if filter.StockType != "" {
		query = query.Where("stock_type = ?", filter.StockType)
	}
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.WithDiscrepancy {
		query = query.Where("discrepancy <> 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var takes []masterdata.StockTake
	if err := query.Order("take_date DESC NULLS LAST, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&takes).Error; err != nil {
		return nil, 0, err
	}
	return takes, total, nil
}

// ListAdjustments returns stock adjustments, newest first
func (r *GormLegacyStockRepository) ListAdjustments(ctx context.Context, partNumber string, page shared.Page) ([]masterdata.StockAdjustment, int64, error) {
	query := r.db.WithContext(ctx).Model(&masterdata.StockAdjustment{})
	if partNumber != "" {
		query = query.Where("part_number = ?", partNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var adjustments []masterdata.StockAdjustment
	if err := query.Order("adjustment_date DESC NULLS LAST, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}
	return adjustments, total, nil
}

// Interface guards
var (
	_ masterdata.ProductRepository     = (*GormProductRepository)(nil)
	_ masterdata.UserRepository        = (*GormUserRepository)(nil)
	_ masterdata.LegacyStockRepository = (*GormLegacyStockRepository)(nil)
)
