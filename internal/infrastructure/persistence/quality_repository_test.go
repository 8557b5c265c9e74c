package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/query-service/internal/domain/quality"
	"github.com/erp/query-service/internal/domain/shared"
)

func TestGormOQCRepository_FindByID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOQCRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "part_number", "lot_number", "quantity_good", "quantity_ng"}).
			AddRow(12, "PN-100", "LOT-01", "95.000", "5.000")

		mock.ExpectQuery(`SELECT \* FROM "oqc" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(12), 1).
			WillReturnRows(rows)

		record, err := repo.FindByID(context.Background(), 12)

		assert.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "PN-100", record.PartNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing record", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormOQCRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "oqc" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(404), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		record, err := repo.FindByID(context.Background(), 404)

		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOQCRepository_Totals(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormOQCRepository(gormDB)

	rows := sqlmock.NewRows([]string{"record_count", "quantity_good", "quantity_ng"}).
		AddRow(8, "450.000", "50.000")

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS record_count, COALESCE\(SUM\(quantity_good\), 0\) AS quantity_good, COALESCE\(SUM\(quantity_ng\), 0\) AS quantity_ng FROM "oqc"`).
		WillReturnRows(rows)

	totals, err := repo.Totals(context.Background())

	assert.NoError(t, err)
	require.NotNil(t, totals)
	assert.Equal(t, int64(8), totals.RecordCount)
	assert.True(t, decimal.RequireFromString("450").Equal(totals.QuantityGood))
	assert.True(t, decimal.RequireFromString("50").Equal(totals.QuantityNG))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNCRRepository_CountByStatus(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormNCRRepository(gormDB)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("closed", 4).
		AddRow("investigating", 2).
		AddRow("open", 3)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "qc_non_conformance" GROUP BY .*`).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())

	assert.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, quality.NCRStatusCount{Status: "closed", Count: 4}, counts[0])
	assert.Equal(t, quality.NCRStatusCount{Status: "open", Count: 3}, counts[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNCRRepository_List(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormNCRRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "qc_non_conformance" WHERE status = \$1 AND priority = \$2`).
		WithArgs("open", "high").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "ncr_number", "part_number", "status", "priority"}).
		AddRow(5, "NCR-0005", "PN-200", "open", "high")

	mock.ExpectQuery(`SELECT \* FROM "qc_non_conformance" WHERE status = \$1 AND priority = \$2 ORDER BY created_at DESC, id DESC LIMIT .*`).
		WithArgs("open", "high", 100).
		WillReturnRows(rows)

	reports, total, err := repo.List(context.Background(), quality.NCRFilter{
		Status:   "open",
		Priority: "high",
	}, shared.NewPage(0, 0))

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reports, 1)
	assert.Equal(t, "NCR-0005", reports[0].NCRNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
