package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/tests/testutil"
)

// newMockGormDB creates a GORM DB backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mdb := testutil.NewMockDB(t)
	return mdb.DB, mdb.Mock, mdb.SqlDB
}

func TestGormLocationRepository_FindByID(t *testing.T) {
	t.Run("finds existing location", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "location_code", "location_name", "location_type", "is_active"}).
			AddRow(7, "WH-A-01", "Zone A Rack 1", "warehouse", true)

		mock.ExpectQuery(`SELECT \* FROM "inventory_locations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(7), 1).
			WillReturnRows(rows)

		location, err := repo.FindByID(context.Background(), 7)

		assert.NoError(t, err)
		require.NotNil(t, location)
		assert.Equal(t, "WH-A-01", location.LocationCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing location", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "inventory_locations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(99), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		location, err := repo.FindByID(context.Background(), 99)

		assert.Nil(t, location)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBalanceRepository_TotalAvailableByPart(t *testing.T) {
	t.Run("sums available stock across locations", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBalanceRepository(gormDB)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(available_quantity\), 0\) AS total FROM "inventory_balances" WHERE part_number = \$1`).
			WithArgs("PN-100").
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("250.500"))

		total, err := repo.TotalAvailableByPart(context.Background(), "PN-100")

		assert.NoError(t, err)
		assert.True(t, decimal.RequireFromString("250.5").Equal(total))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when part has no balances", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormBalanceRepository(gormDB)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(available_quantity\), 0\) AS total FROM "inventory_balances" WHERE part_number = \$1`).
			WithArgs("PN-UNKNOWN").
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

		total, err := repo.TotalAvailableByPart(context.Background(), "PN-UNKNOWN")

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMovementRepository_List(t *testing.T) {
	t.Run("filters by part number and type with pagination", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormMovementRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_movements" WHERE part_number = \$1 AND movement_type = \$2`).
			WithArgs("PN-100", "in").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "movement_number", "part_number", "movement_type", "quantity", "user_id", "movement_date"}).
			AddRow(1, "MV-0001", "PN-100", "in", "10.000", 4, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

		mock.ExpectQuery(`SELECT \* FROM "inventory_movements" WHERE part_number = \$1 AND movement_type = \$2 ORDER BY movement_date DESC,id DESC LIMIT .*`).
			WithArgs("PN-100", "in", 100).
			WillReturnRows(rows)

		movements, total, err := repo.List(context.Background(), inventory.MovementFilter{
			PartNumber:   "PN-100",
			MovementType: "in",
		}, shared.NewPage(0, 0))

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, movements, 1)
		assert.Equal(t, "MV-0001", movements[0].MovementNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unsafe sort input", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormMovementRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_movements"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		// The injected field falls back to movement_date DESC
		mock.ExpectQuery(`SELECT \* FROM "inventory_movements" ORDER BY movement_date DESC,id DESC LIMIT .*`).
			WithArgs(100).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, _, err := repo.List(context.Background(), inventory.MovementFilter{
			SortBy:    "quantity; DROP TABLE inventory_movements;--",
			SortOrder: "up",
		}, shared.NewPage(0, 0))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReservationRepository_CountActive(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormReservationRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_reservations" WHERE status = \$1`).
		WithArgs(inventory.ReservationActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repo.CountActive(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCycleCountRepository_ListDetails(t *testing.T) {
	t.Run("returns ErrNotFound when count does not exist", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCycleCountRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cycle_counts" WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		details, err := repo.ListDetails(context.Background(), 42, false)

		assert.Nil(t, details)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("variance only filters zero-variance lines", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCycleCountRepository(gormDB)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cycle_counts" WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "cycle_count_id", "part_number", "variance_quantity"}).
			AddRow(3, 5, "PN-200", "-2.000")

		mock.ExpectQuery(`SELECT \* FROM "cycle_count_details" WHERE cycle_count_id = \$1 AND .*variance_quantity IS NOT NULL.*ORDER BY part_number`).
			WithArgs(int64(5)).
			WillReturnRows(rows)

		details, err := repo.ListDetails(context.Background(), 5, true)

		assert.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "PN-200", details[0].PartNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
