package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/query-service/internal/domain/quality"
	"github.com/erp/query-service/internal/domain/shared"
)

// GormOQCRepository implements quality.OQCRepository using GORM
type GormOQCRepository struct {
	db *gorm.DB
}

// NewGormOQCRepository creates a new GormOQCRepository
func NewGormOQCRepository(db *gorm.DB) *GormOQCRepository {
	return &GormOQCRepository{db: db}
}

// List returns outgoing QC records matching the filter, newest first
func (r *GormOQCRepository) List(ctx context.Context, filter quality.OQCFilter, page shared.Page) ([]quality.OQCRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&quality.OQCRecord{})
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.LotNumber != "" {
		query = query.Where("lot_number = ?", filter.LotNumber)
	}
	query = applyDateWindow(query, "inspection_date", filter.DateFrom, filter.DateTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []quality.OQCRecord
	if err := query.Order("inspection_date DESC NULLS LAST, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindByID finds an outgoing QC record by its ID
func (r *GormOQCRepository) FindByID(ctx context.Context, id int64) (*quality.OQCRecord, error) {
	var record quality.OQCRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Totals aggregates outgoing QC quantities over all records
func (r *GormOQCRepository) Totals(ctx context.Context) (*quality.OQCTotals, error) {
	var totals quality.OQCTotals
	err := r.db.WithContext(ctx).Model(&quality.OQCRecord{}).
		Select("COUNT(*) AS record_count, " +
			"COALESCE(SUM(quantity_good), 0) AS quantity_good, " +
			"COALESCE(SUM(quantity_ng), 0) AS quantity_ng").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// GormInspectionRepository implements quality.InspectionRepository using GORM
type GormInspectionRepository struct {
	db *gorm.DB
}

// NewGormInspectionRepository creates a new GormInspectionRepository
func NewGormInspectionRepository(db *gorm.DB) *GormInspectionRepository {
	return &GormInspectionRepository{db: db}
}

// ListPlans returns inspection plans matching the filter
func (r *GormInspectionRepository) ListPlans(ctx context.Context, filter quality.PlanFilter, page shared.Page) ([]quality.InspectionPlan, int64, error) {
	query := r.db.WithContext(ctx).Model(&quality.InspectionPlan{})
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.InspectionType != "" {
		query = query.Where("inspection_type = ?", filter.InspectionType)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []quality.InspectionPlan
	if err := query.Order("plan_code").
		Limit(page.Limit).Offset(page.Offset).Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *GormInspectionRepository) applyResultFilter(query *gorm.DB, filter quality.ResultFilter) *gorm.DB {
	if filter.QCPlanID != 0 {
		query = query.Where("qc_plan_id = ?", filter.QCPlanID)
	}
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.Status != "" {
		query = query.Where("inspection_status = ?", filter.Status)
	}
	if filter.OverallResult != "" {
		query = query.Where("overall_result = ?", filter.OverallResult)
	}
	return applyDateWindow(query, "created_at", filter.DateFrom, filter.DateTo)
}

// ListResults returns inspection results matching the filter, newest first
func (r *GormInspectionRepository) ListResults(ctx context.Context, filter quality.ResultFilter, page shared.Page) ([]quality.InspectionResult, int64, error) {
	query := r.applyResultFilter(r.db.WithContext(ctx).Model(&quality.InspectionResult{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []quality.InspectionResult
	if err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ResultTotals aggregates inspected quantities over all results
func (r *GormInspectionRepository) ResultTotals(ctx context.Context) (*quality.InspectionTotals, error) {
	var totals quality.InspectionTotals
	err := r.db.WithContext(ctx).Model(&quality.InspectionResult{}).
		Select("COUNT(*) AS result_count, " +
			"COALESCE(SUM(quantity_inspected), 0) AS quantity_inspected, " +
			"COALESCE(SUM(quantity_passed), 0) AS quantity_passed, " +
			"COALESCE(SUM(quantity_failed), 0) AS quantity_failed").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// CountResultsByStatus counts results in any of the given statuses
func (r *GormInspectionRepository) CountResultsByStatus(ctx context.Context, statuses []string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&quality.InspectionResult{}).
		Where("inspection_status IN ?", statuses).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListPendingResults returns results still awaiting inspection, oldest first
func (r *GormInspectionRepository) ListPendingResults(ctx context.Context, page shared.Page) ([]quality.InspectionResult, int64, error) {
	query := r.db.WithContext(ctx).Model(&quality.InspectionResult{}).
		Where("inspection_status IN ?", []string{quality.InspectionPending, quality.InspectionInProgress})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []quality.InspectionResult
	if err := query.Order("created_at, id").
		Limit(page.Limit).Offset(page.Offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// GormNCRRepository implements quality.NCRRepository using GORM
type GormNCRRepository struct {
	db *gorm.DB
}

// NewGormNCRRepository creates a new GormNCRRepository
func NewGormNCRRepository(db *gorm.DB) *GormNCRRepository {
	return &GormNCRRepository{db: db}
}

// List returns non-conformance reports matching the filter, newest first
func (r *GormNCRRepository) List(ctx context.Context, filter quality.NCRFilter, page shared.Page) ([]quality.NCR, int64, error) {
	query := r.db.WithContext(ctx).Model(&quality.NCR{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []quality.NCR
	if err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// CountByStatus counts NCRs per status
func (r *GormNCRRepository) CountByStatus(ctx context.Context) ([]quality.NCRStatusCount, error) {
	var counts []quality.NCRStatusCount
	err := r.db.WithContext(ctx).Model(&quality.NCR{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// GormTransferRepository implements quality.TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// List returns QC transfers matching the filter, newest first
func (r *GormTransferRepository) List(ctx context.Context, filter quality.TransferFilter, page shared.Page) ([]quality.TransferQC, int64, error) {
	query := r.db.WithContext(ctx).Model(&quality.TransferQC{})
	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	query = applyDateWindow(query, "transfer_date", filter.DateFrom, filter.DateTo)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transfers []quality.TransferQC
	if err := query.Order("transfer_date DESC NULLS LAST, id DESC").
		Limit(page.Limit).Offset(page.Offset).Find(&transfers).Error; err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}

// Interface guards
var (
	_ quality.OQCRepository        = (*GormOQCRepository)(nil)
	_ quality.InspectionRepository = (*GormInspectionRepository)(nil)
	_ quality.NCRRepository        = (*GormNCRRepository)(nil)
	_ quality.TransferRepository   = (*GormTransferRepository)(nil)
)
