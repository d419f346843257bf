package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func shipmentRows(id, tenantID, orderID, driverID, vehicleID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version", "tenant_id",
		"order_id", "driver_id", "vehicle_id", "tracking_number", "status", "delivered_at",
	}).AddRow(
		id, now, now, 1, tenantID,
		orderID, driverID, vehicleID, "TRK-1001", "assigned", nil,
	)
}

func TestGormShipmentRepository_Create(t *testing.T) {
	newShipment := func(t *testing.T) *trade.Shipment {
		t.Helper()
		shipment, err := trade.NewShipment(uuid.New(), uuid.New(), uuid.New(), uuid.New(), "TRK-2001")
		require.NoError(t, err)
		return shipment
	}

	t.Run("inserts the shipment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		mock.ExpectExec(`INSERT INTO "shipments"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), newShipment(t))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a unique-index violation on order_id to ALREADY_EXISTS", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		mock.ExpectExec(`INSERT INTO "shipments"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err := repo.Create(context.Background(), newShipment(t))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShipmentRepository_FindByOrderID(t *testing.T) {
	t.Run("finds the shipment for an order", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		shipmentID := uuid.New()
		tenantID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "shipments" WHERE tenant_id = \$1 AND order_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, orderID, 1).
			WillReturnRows(shipmentRows(shipmentID, tenantID, orderID, uuid.New(), uuid.New()))

		shipment, err := repo.FindByOrderID(context.Background(), tenantID, orderID)

		require.NoError(t, err)
		assert.Equal(t, shipmentID, shipment.ID)
		assert.Equal(t, orderID, shipment.OrderID)
		assert.Equal(t, "TRK-1001", shipment.TrackingNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when the order has no shipment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		tenantID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "shipments" WHERE tenant_id = \$1 AND order_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		shipment, err := repo.FindByOrderID(context.Background(), tenantID, orderID)

		assert.Nil(t, shipment)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormShipmentRepository_ExistsByOrderID(t *testing.T) {
	t.Run("returns true when the order already has a shipment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		tenantID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "shipments" WHERE tenant_id = \$1 AND order_id = \$2`).
			WithArgs(tenantID, orderID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByOrderID(context.Background(), tenantID, orderID)

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when the order has no shipment", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormShipmentRepository(gormDB)

		tenantID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "shipments" WHERE tenant_id = \$1 AND order_id = \$2`).
			WithArgs(tenantID, orderID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByOrderID(context.Background(), tenantID, orderID)

		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
