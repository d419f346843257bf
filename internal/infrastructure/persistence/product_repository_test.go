package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func productRows(id, tenantID uuid.UUID, sku, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version", "tenant_id",
		"sku", "name", "description", "price", "status",
	}).AddRow(
		id, now, now, 1, tenantID,
		sku, name, "", decimal.NewFromFloat(9.99), "active",
	)
}

func TestGormProductRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds product within tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		productID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, productID, 1).
			WillReturnRows(productRows(productID, tenantID, "WIDGET-1", "Widget"))

		product, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)

		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "WIDGET-1", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByIDForTenant(context.Background(), tenantID, productID)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("uppercases the SKU before querying", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		productID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE tenant_id = \$1 AND sku = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "WIDGET-1", 1).
			WillReturnRows(productRows(productID, tenantID, "WIDGET-1", "Widget"))

		product, err := repo.FindBySKU(context.Background(), tenantID, "widget-1")

		require.NoError(t, err)
		assert.Equal(t, "WIDGET-1", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_ExistsBySKU(t *testing.T) {
	t.Run("returns true when the SKU is taken", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE tenant_id = \$1 AND sku = \$2`).
			WithArgs(tenantID, "WIDGET-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySKU(context.Background(), tenantID, "widget-1")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when the SKU is free", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE tenant_id = \$1 AND sku = \$2`).
			WithArgs(tenantID, "NEW-SKU").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsBySKU(context.Background(), tenantID, "NEW-SKU")

		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes product within tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()
		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForTenant(context.Background(), tenantID, productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing is deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()
		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), tenantID, productID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_CountForTenant(t *testing.T) {
	t.Run("counts products for tenant", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(gormDB)

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountForTenant(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
