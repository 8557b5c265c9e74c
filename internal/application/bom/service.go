// Package bom computes material requirements from bills of material and
// current stock balances.
package bom

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/telemetry"
)

// ErrInvalidQuantity rejects requirement calculations for non-positive builds.
var ErrInvalidQuantity = shared.NewDomainError("INVALID_INPUT", "quantity must be greater than zero")

// Service answers BOM structure and material requirement queries.
type Service struct {
	bom      production.BOMRepository
	balances inventory.BalanceRepository
}

// NewService creates a BOM query service.
func NewService(bom production.BOMRepository, balances inventory.BalanceRepository) *Service {
	return &Service{bom: bom, balances: balances}
}

// Lines returns the active BOM of one parent part in operation sequence
// order. Parts without an active BOM return shared.ErrNotFound.
func (s *Service) Lines(ctx context.Context, parentPartNumber string) ([]production.BOMLine, error) {
	lines, err := s.bom.ListActiveByParent(ctx, parentPartNumber)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.ErrNotFound
	}
	return lines, nil
}

// Requirements explodes the BOM for a build quantity and checks every
// component against available stock. A component's shortage is never
// negative; the build is producible exactly when the total shortage is zero.
func (s *Service) Requirements(ctx context.Context, parentPartNumber string, quantity decimal.Decimal) (*production.RequirementsResult, error) {
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "bom", "calculate_requirements")
	defer span.End()
	telemetry.SetAttributes(span,
		"bom.parent_part", parentPartNumber,
		"bom.build_quantity", quantity.String(),
	)

	lines, err := s.Lines(ctx, parentPartNumber)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &production.RequirementsResult{
		ParentPartNumber: parentPartNumber,
		BuildQuantity:    quantity,
		Requirements:     make([]production.MaterialRequirement, 0, len(lines)),
		TotalShortage:    decimal.Zero,
	}

	for i := range lines {
		line := &lines[i]
		required := line.RequiredFor(quantity)

		available, err := s.balances.TotalAvailableByPart(ctx, line.ChildPartNumber)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}

		shortage := required.Sub(available)
		if shortage.IsNegative() {
			shortage = decimal.Zero
		}

		result.Requirements = append(result.Requirements, production.MaterialRequirement{
			ChildPartNumber:   line.ChildPartNumber,
			UnitOfMeasure:     line.UnitOfMeasure,
			OperationSequence: line.OperationSequence,
			QuantityPerUnit:   line.QuantityRequired,
			ScrapFactor:       line.ScrapFactor,
			RequiredQuantity:  required,
			AvailableQuantity: available,
			ShortageQuantity:  shortage,
		})
		result.TotalShortage = result.TotalShortage.Add(shortage)
	}

	result.CanProduce = result.TotalShortage.IsZero()
	return result, nil
}
