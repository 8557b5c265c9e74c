package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
)

// GormOrderRepository implements production.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter production.OrderFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.DateFrom != nil {
		query = query.Where("start_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("start_date <= ?", *filter.DateTo)
	}
	return query
}

// List returns production orders matching the filter, newest first
func (r *GormOrderRepository) List(ctx context.Context, filter production.OrderFilter, page shared.Page) ([]production.Order, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&production.Order{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, OrderSortFields, "start_date")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var orders []production.Order
	if err := query.Order(sortField + " " + sortOrder).Order("id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindByJobOrder finds an order by its job order number
func (r *GormOrderRepository) FindByJobOrder(ctx context.Context, jobOrder string) (*production.Order, error) {
	var order production.Order
	if err := r.db.WithContext(ctx).First(&order, "job_order = ?", jobOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CountByStatus counts orders per status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) ([]production.StatusCount, error) {
	var counts []production.StatusCount
	err := r.db.WithContext(ctx).Model(&production.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Search matches orders by job order, part number or machine name
func (r *GormOrderRepository) Search(ctx context.Context, searchTerm string, page shared.Page) ([]production.Order, int64, error) {
	pattern := "%" + searchTerm + "%"
	query := r.db.WithContext(ctx).Model(&production.Order{}).
		Where("job_order ILIKE ? OR part_number ILIKE ? OR machine_name ILIKE ?", pattern, pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []production.Order
	if err := query.Order("start_date DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GormOutputRepository implements production.OutputRepository using GORM
type GormOutputRepository struct {
	db *gorm.DB
}

// NewGormOutputRepository creates a new GormOutputRepository
func NewGormOutputRepository(db *gorm.DB) *GormOutputRepository {
	return &GormOutputRepository{db: db}
}

func (r *GormOutputRepository) applyFilter(query *gorm.DB, filter production.OutputFilter) *gorm.DB {
	if filter.ProductionOrderID != 0 {
		query = query.Where("production_order_id = ?", filter.ProductionOrderID)
	}
	if filter.MachineID != "" {
		query = query.Where("machine_id = ?", filter.MachineID)
	}
	if filter.Shift != "" {
		query = query.Where("shift = ?", filter.Shift)
	}
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.DateFrom != nil {
		query = query.Where("production_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("production_date <= ?", *filter.DateTo)
	}
	return query
}

// List returns output records matching the filter, newest first
func (r *GormOutputRepository) List(ctx context.Context, filter production.OutputFilter, page shared.Page) ([]production.Output, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&production.Output{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var outputs []production.Output
	if err := query.Order("production_date DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&outputs).Error; err != nil {
		return nil, 0, err
	}
	return outputs, total, nil
}

// ListByJobOrder returns output records linked to one job order
func (r *GormOutputRepository) ListByJobOrder(ctx context.Context, jobOrder string) ([]production.Output, error) {
	var outputs []production.Output
	err := r.db.WithContext(ctx).Model(&production.Output{}).
		Joins("JOIN production_orders ON production_orders.id = output_mc.production_order_id").
		Where("production_orders.job_order = ?", jobOrder).
		Order("output_mc.production_date, output_mc.id").
		Find(&outputs).Error
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

// TotalGoodByJobOrder sums good output linked to one job order
func (r *GormOutputRepository) TotalGoodByJobOrder(ctx context.Context, jobOrder string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&production.Output{}).
		Select("COALESCE(SUM(output_mc.quantity_good), 0) AS total").
		Joins("JOIN production_orders ON production_orders.id = output_mc.production_order_id").
		Where("production_orders.job_order = ?", jobOrder).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// DailySummary aggregates good/NG output per production day
func (r *GormOutputRepository) DailySummary(ctx context.Context, from, to *time.Time) ([]production.DailyOutputSummary, error) {
	query := applyDateWindow(r.db.WithContext(ctx).Model(&production.Output{}), "production_date", from, to)

	var summaries []production.DailyOutputSummary
	err := query.
		Select("production_date, " +
			"COALESCE(SUM(quantity_good), 0) AS quantity_good, " +
			"COALESCE(SUM(quantity_ng), 0) AS quantity_ng").
		Group("production_date").
		Order("production_date").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].YieldPercent = production.YieldPercent(summaries[i].QuantityGood, summaries[i].QuantityNG)
	}
	return summaries, nil
}

// TotalsByMachine aggregates good/NG output per machine over a window
func (r *GormOutputRepository) TotalsByMachine(ctx context.Context, from, to *time.Time) ([]production.MachineOutputTotal, error) {
	query := applyDateWindow(r.db.WithContext(ctx).Model(&production.Output{}), "production_date", from, to)

	var totals []production.MachineOutputTotal
	err := query.
		Select("machine_id, " +
			"COALESCE(SUM(quantity_good), 0) AS quantity_good, " +
			"COALESCE(SUM(quantity_ng), 0) AS quantity_ng").
		Group("machine_id").
		Order("machine_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// TotalsForDate sums good/NG output for one production day
func (r *GormOutputRepository) TotalsForDate(ctx context.Context, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		QuantityGood decimal.Decimal
		QuantityNG   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&production.Output{}).
		Select("COALESCE(SUM(quantity_good), 0) AS quantity_good, "+
			"COALESCE(SUM(quantity_ng), 0) AS quantity_ng").
		Where("production_date = ?", date).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.QuantityGood, row.QuantityNG, nil
}

// GormMachineRepository implements production.MachineRepository using GORM
type GormMachineRepository struct {
	db *gorm.DB
}

// NewGormMachineRepository creates a new GormMachineRepository
func NewGormMachineRepository(db *gorm.DB) *GormMachineRepository {
	return &GormMachineRepository{db: db}
}

// List returns machines matching the filter
func (r *GormMachineRepository) List(ctx context.Context, filter production.MachineFilter, page shared.Page) ([]production.Machine, int64, error) {
	query := r.db.WithContext(ctx).Model(&production.Machine{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var machines []production.Machine
	if err := query.Order("machine_code").
		Limit(page.Limit).Offset(page.Offset).Find(&machines).Error; err != nil {
		return nil, 0, err
	}
	return machines, total, nil
}

// FindByMachineID finds a machine by its machine code
func (r *GormMachineRepository) FindByMachineID(ctx context.Context, machineID string) (*production.Machine, error) {
	var machine production.Machine
	if err := r.db.WithContext(ctx).First(&machine, "machine_code = ?", machineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &machine, nil
}

// GormBOMRepository implements production.BOMRepository using GORM
type GormBOMRepository struct {
	db *gorm.DB
}

// NewGormBOMRepository creates a new GormBOMRepository
func NewGormBOMRepository(db *gorm.DB) *GormBOMRepository {
	return &GormBOMRepository{db: db}
}

// ListActiveByParent returns active BOM lines of one parent part in
// operation sequence order
func (r *GormBOMRepository) ListActiveByParent(ctx context.Context, parentPartNumber string) ([]production.BOMLine, error) {
	var lines []production.BOMLine
	err := r.db.WithContext(ctx).Model(&production.BOMLine{}).
		Where("parent_part_number = ? AND is_active = ?", parentPartNumber, true).
		Order("operation_sequence, child_part_number").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// GormWIPRepository implements production.WIPRepository using GORM
type GormWIPRepository struct {
	db *gorm.DB
}

// NewGormWIPRepository creates a new GormWIPRepository
func NewGormWIPRepository(db *gorm.DB) *GormWIPRepository {
	return &GormWIPRepository{db: db}
}

// List returns WIP stock matching the filter
func (r *GormWIPRepository) List(ctx context.Context, filter production.WIPFilter, page shared.Page) ([]production.WIPStock, int64, error) {
	query := r.db.WithContext(ctx).Model(&production.WIPStock{})
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.CurrentStation != "" {
		query = query.Where("current_station = ?", filter.CurrentStation)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stock []production.WIPStock
	if err := query.Order("part_number").
		Limit(page.Limit).Offset(page.Offset).Find(&stock).Error; err != nil {
		return nil, 0, err
	}
	return stock, total, nil
}

// Count counts WIP stock rows
func (r *GormWIPRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&production.WIPStock{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Interface guards
var (
	_ production.OrderRepository   = (*GormOrderRepository)(nil)
	_ production.OutputRepository  = (*GormOutputRepository)(nil)
	_ production.MachineRepository = (*GormMachineRepository)(nil)
	_ production.BOMRepository     = (*GormBOMRepository)(nil)
	_ production.WIPRepository     = (*GormWIPRepository)(nil)
)
