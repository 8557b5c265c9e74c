package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/shared"
)

// GormLocationRepository implements inventory.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// List returns locations matching the filter, newest code first is not
// useful here so rows are ordered by location code.
func (r *GormLocationRepository) List(ctx context.Context, filter inventory.LocationFilter, page shared.Page) ([]inventory.Location, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Location{})
	if filter.LocationType != "" {
		query = query.Where("location_type = ?", filter.LocationType)
	}
	if filter.WarehouseZone != "" {
		query = query.Where("warehouse_zone = ?", filter.WarehouseZone)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var locations []inventory.Location
	if err := query.Order("location_code").Limit(page.Limit).Offset(page.Offset).Find(&locations).Error; err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id int64) (*inventory.Location, error) {
	var location inventory.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// Count counts locations, optionally active ones only
func (r *GormLocationRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Location{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GormBalanceRepository implements inventory.BalanceRepository using GORM
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewGormBalanceRepository creates a new GormBalanceRepository
func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

func (r *GormBalanceRepository) applyFilter(query *gorm.DB, filter inventory.BalanceFilter) *gorm.DB {
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	return query
}

// List returns balances with their location preloaded
func (r *GormBalanceRepository) List(ctx context.Context, filter inventory.BalanceFilter, page shared.Page) ([]inventory.Balance, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Balance{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var balances []inventory.Balance
	if err := query.Preload("Location").Order("part_number, location_id").
		Limit(page.Limit).Offset(page.Offset).Find(&balances).Error; err != nil {
		return nil, 0, err
	}
	return balances, total, nil
}

// TotalAvailableByPart sums available stock of one part across locations
func (r *GormBalanceRepository) TotalAvailableByPart(ctx context.Context, partNumber string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Select("COALESCE(SUM(available_quantity), 0) AS total").
		Where("part_number = ?", partNumber).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SummaryByPart aggregates balances per part across all locations
func (r *GormBalanceRepository) SummaryByPart(ctx context.Context, page shared.Page) ([]inventory.PartSummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Distinct("part_number").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var summaries []inventory.PartSummary
	err := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Select("part_number, COUNT(*) AS location_count, " +
			"COALESCE(SUM(available_quantity), 0) AS available_quantity, " +
			"COALESCE(SUM(reserved_quantity), 0) AS reserved_quantity, " +
			"COALESCE(SUM(available_quantity * average_cost), 0) AS total_value").
		Group("part_number").
		Order("part_number").
		Limit(page.Limit).Offset(page.Offset).
		Scan(&summaries).Error
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// SummaryByZone aggregates balances per warehouse zone
func (r *GormBalanceRepository) SummaryByZone(ctx context.Context) ([]inventory.ZoneSummary, error) {
	var summaries []inventory.ZoneSummary
	err := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Select("COALESCE(inventory_locations.warehouse_zone, 'unassigned') AS warehouse_zone, " +
			"COUNT(DISTINCT inventory_balances.part_number) AS part_count, " +
			"COALESCE(SUM(inventory_balances.available_quantity), 0) AS available_quantity, " +
			"COALESCE(SUM(inventory_balances.available_quantity * inventory_balances.average_cost), 0) AS total_value").
		Joins("JOIN inventory_locations ON inventory_locations.id = inventory_balances.location_id").
		Group("inventory_locations.warehouse_zone").
		Order("warehouse_zone").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// TotalStockValue values all available stock at average cost
func (r *GormBalanceRepository) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Select("COALESCE(SUM(available_quantity * average_cost), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// ListBelowReorderPoint returns balances at or under their reorder point
func (r *GormBalanceRepository) ListBelowReorderPoint(ctx context.Context, page shared.Page) ([]inventory.Balance, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Where("reorder_point IS NOT NULL AND available_quantity <= reorder_point")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var balances []inventory.Balance
	if err := query.Preload("Location").Order("part_number, location_id").
		Limit(page.Limit).Offset(page.Offset).Find(&balances).Error; err != nil {
		return nil, 0, err
	}
	return balances, total, nil
}

// ListStockAlerts returns zero or negative balances plus balances at or
// under their reorder point
func (r *GormBalanceRepository) ListStockAlerts(ctx context.Context, page shared.Page) ([]inventory.Balance, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Where("available_quantity <= 0 OR (reorder_point IS NOT NULL AND available_quantity <= reorder_point)")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var balances []inventory.Balance
	if err := query.Preload("Location").Order("available_quantity, part_number").
		Limit(page.Limit).Offset(page.Offset).Find(&balances).Error; err != nil {
		return nil, 0, err
	}
	return balances, total, nil
}

// ListSlowMoving returns stocked balances that have not moved since the
// given cutoff (balances that never moved count too).
func (r *GormBalanceRepository) ListSlowMoving(ctx context.Context, since time.Time, page shared.Page) ([]inventory.Balance, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Balance{}).
		Where("available_quantity > 0").
		Where("last_movement_date IS NULL OR last_movement_date < ?", since)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var balances []inventory.Balance
	if err := query.Preload("Location").Order("last_movement_date NULLS FIRST, part_number").
		Limit(page.Limit).Offset(page.Offset).Find(&balances).Error; err != nil {
		return nil, 0, err
	}
	return balances, total, nil
}

// GormMovementRepository implements inventory.MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) applyFilter(query *gorm.DB, filter inventory.MovementFilter) *gorm.DB {
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.MovementType != "" {
		query = query.Where("movement_type = ?", filter.MovementType)
	}
	if filter.DateFrom != nil {
		query = query.Where("movement_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("movement_date <= ?", *filter.DateTo)
	}
	return query
}

// List returns movements matching the filter, newest first
func (r *GormMovementRepository) List(ctx context.Context, filter inventory.MovementFilter, page shared.Page) ([]inventory.Movement, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Movement{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, MovementSortFields, "movement_date")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var movements []inventory.Movement
	if err := query.Order(sortField + " " + sortOrder).Order("id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

func applyDateWindow(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", *from)
	}
	if to != nil {
		query = query.Where(column+" <= ?", *to)
	}
	return query
}

// SummaryByType aggregates movements per type over a window
func (r *GormMovementRepository) SummaryByType(ctx context.Context, from, to *time.Time) ([]inventory.MovementTypeSummary, error) {
	query := applyDateWindow(r.db.WithContext(ctx).Model(&inventory.Movement{}), "movement_date", from, to)

	var summaries []inventory.MovementTypeSummary
	err := query.
		Select("movement_type, COUNT(*) AS movement_count, COALESCE(SUM(quantity), 0) AS total_quantity").
		Group("movement_type").
		Order("movement_type").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// DailySummary aggregates inbound/outbound quantities per day
func (r *GormMovementRepository) DailySummary(ctx context.Context, from, to *time.Time) ([]inventory.DailyMovementSummary, error) {
	query := applyDateWindow(r.db.WithContext(ctx).Model(&inventory.Movement{}), "movement_date", from, to)

	var summaries []inventory.DailyMovementSummary
	err := query.
		Select("movement_date, " +
			"COALESCE(SUM(CASE WHEN movement_type = 'in' THEN quantity ELSE 0 END), 0) AS in_quantity, " +
			"COALESCE(SUM(CASE WHEN movement_type = 'out' THEN quantity ELSE 0 END), 0) AS out_quantity").
		Group("movement_date").
		Order("movement_date").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// CountByPart counts movements per part over a window
func (r *GormMovementRepository) CountByPart(ctx context.Context, from, to *time.Time) ([]inventory.PartMovementCount, error) {
	query := applyDateWindow(r.db.WithContext(ctx).Model(&inventory.Movement{}), "movement_date", from, to)

	var counts []inventory.PartMovementCount
	err := query.
		Select("part_number, COUNT(*) AS movement_count").
		Group("part_number").
		Order("movement_count DESC, part_number").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// GormReservationRepository implements inventory.ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// List returns reservations matching the filter
func (r *GormReservationRepository) List(ctx context.Context, filter inventory.ReservationFilter, page shared.Page) ([]inventory.Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Reservation{})
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []inventory.Reservation
	if err := query.Order("expiry_date NULLS LAST, id").
		Limit(page.Limit).Offset(page.Offset).Find(&reservations).Error; err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// CountActive counts active reservations
func (r *GormReservationRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&inventory.Reservation{}).
		Where("status = ?", inventory.ReservationActive).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GormCycleCountRepository implements inventory.CycleCountRepository using GORM
type GormCycleCountRepository struct {
	db *gorm.DB
}

// NewGormCycleCountRepository creates a new GormCycleCountRepository
func NewGormCycleCountRepository(db *gorm.DB) *GormCycleCountRepository {
	return &GormCycleCountRepository{db: db}
}

// List returns cycle counts matching the filter, newest count date first
func (r *GormCycleCountRepository) List(ctx context.Context, filter inventory.CycleCountFilter, page shared.Page) ([]inventory.CycleCount, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.CycleCount{})
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CountType != "" {
		query = query.Where("count_type = ?", filter.CountType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var counts []inventory.CycleCount
	if err := query.Order("count_date DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&counts).Error; err != nil {
		return nil, 0, err
	}
	return counts, total, nil
}

// FindByID finds a cycle count with its detail lines
func (r *GormCycleCountRepository) FindByID(ctx context.Context, id int64) (*inventory.CycleCount, error) {
	var count inventory.CycleCount
	if err := r.db.WithContext(ctx).Preload("Details").First(&count, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &count, nil
}

// ListDetails returns detail lines of one count, optionally only lines
// with a variance. A missing parent count yields shared.ErrNotFound.
func (r *GormCycleCountRepository) ListDetails(ctx context.Context, countID int64, varianceOnly bool) ([]inventory.CycleCountDetail, error) {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&inventory.CycleCount{}).
		Where("id = ?", countID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, shared.ErrNotFound
	}

	query := r.db.WithContext(ctx).Model(&inventory.CycleCountDetail{}).
		Where("cycle_count_id = ?", countID)
	if varianceOnly {
		query = query.Where("variance_quantity IS NOT NULL AND variance_quantity <> 0")
	}

	var details []inventory.CycleCountDetail
	if err := query.Order("part_number").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// VarianceSummary aggregates completed counts and their variances
func (r *GormCycleCountRepository) VarianceSummary(ctx context.Context, from, to *time.Time) (*inventory.VarianceSummary, error) {
	countQuery := applyDateWindow(
		r.db.WithContext(ctx).Model(&inventory.CycleCount{}).
			Where("status = ?", inventory.CountCompleted),
		"count_date", from, to,
	)

	var summary inventory.VarianceSummary
	if err := countQuery.Count(&summary.CountsCompleted).Error; err != nil {
		return nil, err
	}

	detailQuery := applyDateWindow(
		r.db.WithContext(ctx).Model(&inventory.CycleCountDetail{}).
			Joins("JOIN cycle_counts ON cycle_counts.id = cycle_count_details.cycle_count_id").
			Where("cycle_counts.status = ?", inventory.CountCompleted),
		"cycle_counts.count_date", from, to,
	)

	var row struct {
		LinesCounted      int64
		LinesWithVariance int64
		AbsVarianceValue  decimal.Decimal
		NetVarianceValue  decimal.Decimal
	}
	err := detailQuery.
		Select("COUNT(*) AS lines_counted, " +
			"COUNT(*) FILTER (WHERE variance_quantity IS NOT NULL AND variance_quantity <> 0) AS lines_with_variance, " +
			"COALESCE(SUM(ABS(variance_value)), 0) AS abs_variance_value, " +
			"COALESCE(SUM(variance_value), 0) AS net_variance_value").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	summary.LinesCounted = row.LinesCounted
	summary.LinesWithVariance = row.LinesWithVariance
	summary.AbsVarianceValue = row.AbsVarianceValue
	summary.NetVarianceValue = row.NetVarianceValue
	return &summary, nil
}

// CountOpen counts pending and in-progress cycle counts
func (r *GormCycleCountRepository) CountOpen(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&inventory.CycleCount{}).
		Where("status IN ?", []string{inventory.CountPending, inventory.CountInProgress}).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Interface guards
var (
	_ inventory.LocationRepository    = (*GormLocationRepository)(nil)
	_ inventory.BalanceRepository     = (*GormBalanceRepository)(nil)
	_ inventory.MovementRepository    = (*GormMovementRepository)(nil)
	_ inventory.ReservationRepository = (*GormReservationRepository)(nil)
	_ inventory.CycleCountRepository  = (*GormCycleCountRepository)(nil)
)
