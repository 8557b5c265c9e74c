package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/erp/query-service/internal/domain/shared"
)

func TestGormOrderRepository_FindByJobOrder(t *testing.T) {
	t.Run("finds existing order", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "job_order", "part_number", "plan_quantity", "start_date", "status", "workflow_status"}).
			AddRow(1, "JO-2026-001", "PN-100", "500.00", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "running", "in_progress")

		mock.ExpectQuery(`SELECT \* FROM "production_orders" WHERE job_order = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("JO-2026-001", 1).
			WillReturnRows(rows)

		order, err := repo.FindByJobOrder(context.Background(), "JO-2026-001")

		assert.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "PN-100", order.PartNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "production_orders" WHERE job_order = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("JO-MISSING", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		order, err := repo.FindByJobOrder(context.Background(), "JO-MISSING")

		assert.Nil(t, order)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(gormDB)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("pending", 3).
		AddRow("running", 8)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "production_orders" GROUP BY .*status.* ORDER BY status`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())

	assert.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "running", counts[1].Status)
	assert.Equal(t, int64(8), counts[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_Search(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "production_orders" WHERE .*ILIKE.*`).
		WithArgs("%JO-2026%", "%JO-2026%", "%JO-2026%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "job_order", "part_number", "plan_quantity", "status"}).
		AddRow(1, "JO-2026-001", "PN-100", "500.00", "running")

	mock.ExpectQuery(`SELECT \* FROM "production_orders" WHERE .*ILIKE.* ORDER BY start_date DESC, id DESC LIMIT .*`).
		WithArgs("%JO-2026%", "%JO-2026%", "%JO-2026%", 100).
		WillReturnRows(rows)

	orders, total, err := repo.Search(context.Background(), "JO-2026", shared.NewPage(0, 0))

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, "JO-2026-001", orders[0].JobOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOutputRepository_TotalsForDate(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormOutputRepository(gormDB)

	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity_good\), 0\) AS quantity_good, COALESCE\(SUM\(quantity_ng\), 0\) AS quantity_ng FROM "output_mc" WHERE production_date = \$1`).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"quantity_good", "quantity_ng"}).AddRow("950.00", "50.00"))

	good, ng, err := repo.TotalsForDate(context.Background(), date)

	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(950).Equal(good))
	assert.True(t, decimal.NewFromInt(50).Equal(ng))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBOMRepository_ListActiveByParent(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormBOMRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "parent_part_number", "child_part_number", "quantity_required", "scrap_factor", "operation_sequence", "is_active"}).
		AddRow(1, "FG-001", "RM-010", "2.000000", "0.0500", 1, true).
		AddRow(2, "FG-001", "RM-020", "1.000000", "0.0000", 2, true)

	mock.ExpectQuery(`SELECT \* FROM "bill_of_materials" WHERE parent_part_number = \$1 AND is_active = \$2 ORDER BY operation_sequence, child_part_number`).
		WithArgs("FG-001", true).
		WillReturnRows(rows)

	lines, err := repo.ListActiveByParent(context.Background(), "FG-001")

	assert.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "RM-010", lines[0].ChildPartNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
