package bom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
)

type stubBOMRepo struct {
	lines map[string][]production.BOMLine
}

func (r *stubBOMRepo) ListActiveByParent(_ context.Context, parent string) ([]production.BOMLine, error) {
	return r.lines[parent], nil
}

type stubBalanceRepo struct {
	available map[string]decimal.Decimal
}

func (r *stubBalanceRepo) List(_ context.Context, _ inventory.BalanceFilter, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) TotalAvailableByPart(_ context.Context, partNumber string) (decimal.Decimal, error) {
	return r.available[partNumber], nil
}

func (r *stubBalanceRepo) SummaryByPart(_ context.Context, _ shared.Page) ([]inventory.PartSummary, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) SummaryByZone(_ context.Context) ([]inventory.ZoneSummary, error) {
	return nil, nil
}

func (r *stubBalanceRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubBalanceRepo) ListBelowReorderPoint(_ context.Context, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) ListStockAlerts(_ context.Context, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) ListSlowMoving(_ context.Context, _ time.Time, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testBOM() *stubBOMRepo {
	return &stubBOMRepo{lines: map[string][]production.BOMLine{
		"FG-100": {
			{
				ParentPartNumber:  "FG-100",
				ChildPartNumber:   "RM-001",
				QuantityRequired:  dec("2"),
				UnitOfMeasure:     "pcs",
				ScrapFactor:       dec("0.1"),
				OperationSequence: 1,
			},
			{
				ParentPartNumber:  "FG-100",
				ChildPartNumber:   "RM-002",
				QuantityRequired:  dec("1"),
				UnitOfMeasure:     "kg",
				ScrapFactor:       decimal.Zero,
				OperationSequence: 2,
			},
		},
	}}
}

func TestLinesUnknownParentReturnsNotFound(t *testing.T) {
	svc := NewService(testBOM(), &stubBalanceRepo{})

	_, err := svc.Lines(context.Background(), "missing")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestLinesReturnsActiveBOM(t *testing.T) {
	svc := NewService(testBOM(), &stubBalanceRepo{})

	lines, err := svc.Lines(context.Background(), "FG-100")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "RM-001", lines[0].ChildPartNumber)
}

func TestRequirementsRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(testBOM(), &stubBalanceRepo{})

	_, err := svc.Requirements(context.Background(), "FG-100", decimal.Zero)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	_, err = svc.Requirements(context.Background(), "FG-100", dec("-5"))
	assert.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestRequirementsIncludesScrapFactor(t *testing.T) {
	balances := &stubBalanceRepo{available: map[string]decimal.Decimal{
		"RM-001": dec("1000"),
		"RM-002": dec("1000"),
	}}
	svc := NewService(testBOM(), balances)

	result, err := svc.Requirements(context.Background(), "FG-100", dec("10"))
	require.NoError(t, err)

	// 10 * 2 * 1.1 = 22 with scrap allowance
	assert.True(t, result.Requirements[0].RequiredQuantity.Equal(dec("22")))
	assert.True(t, result.Requirements[1].RequiredQuantity.Equal(dec("10")))
	assert.True(t, result.CanProduce)
	assert.True(t, result.TotalShortage.IsZero())
}

func TestRequirementsReportsShortages(t *testing.T) {
	balances := &stubBalanceRepo{available: map[string]decimal.Decimal{
		"RM-001": dec("10"),
		"RM-002": dec("100"),
	}}
	svc := NewService(testBOM(), balances)

	result, err := svc.Requirements(context.Background(), "FG-100", dec("10"))
	require.NoError(t, err)

	// requirement 22 against 10 on hand leaves 12 short
	assert.True(t, result.Requirements[0].ShortageQuantity.Equal(dec("12")))
	// surplus stock never reports a negative shortage
	assert.True(t, result.Requirements[1].ShortageQuantity.IsZero())
	assert.True(t, result.TotalShortage.Equal(dec("12")))
	assert.False(t, result.CanProduce)
}
