package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// MovementSortFields contains allowed sort fields for inventory movements
var MovementSortFields = map[string]bool{
	"id":            true,
	"movement_date": true,
	"part_number":   true,
	"movement_type": true,
	"quantity":      true,
	"created_at":    true,
}

// OrderSortFields contains allowed sort fields for production orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"job_order":     true,
	"part_number":   true,
	"plan_quantity": true,
	"start_date":    true,
	"status":        true,
	"created_at":    true,
}

// OutputSortFields contains allowed sort fields for machine output records
var OutputSortFields = map[string]bool{
	"id":              true,
	"machine_id":      true,
	"part_number":     true,
	"quantity_good":   true,
	"quantity_ng":     true,
	"shift":           true,
	"production_date": true,
}

// BalanceSortFields contains allowed sort fields for inventory balances
var BalanceSortFields = map[string]bool{
	"id":                 true,
	"part_number":        true,
	"location_id":        true,
	"available_quantity": true,
	"reserved_quantity":  true,
	"average_cost":       true,
	"last_movement_date": true,
}
