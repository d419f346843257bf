package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apptrade "github.com/stockflow/backend/internal/application/trade"
	"github.com/stockflow/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDispatchPair builds a shipped order and the shipment being inserted
// for it, the two writes the shipment unit of work performs together.
func newDispatchPair(t *testing.T) (*trade.Order, *trade.Shipment) {
	t.Helper()
	tenantID := uuid.New()

	item, err := trade.NewOrderItem(uuid.New(), 2, decimal.NewFromInt(10))
	require.NoError(t, err)
	order, err := trade.NewOrder(tenantID, "Acme", []trade.OrderItem{item})
	require.NoError(t, err)
	require.NoError(t, order.Confirm())
	require.NoError(t, order.MarkShipped())

	shipment, err := trade.NewShipment(tenantID, order.ID, uuid.New(), uuid.New(), "TRK-500")
	require.NoError(t, err)
	return order, shipment
}

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	dispatch := func(order *trade.Order, shipment *trade.Shipment) func(repos apptrade.TransactionalRepositories) error {
		return func(repos apptrade.TransactionalRepositories) error {
			if err := repos.ShipmentRepo().Create(ctx, shipment); err != nil {
				return err
			}
			return repos.OrderRepo().Update(ctx, order)
		}
	}

	t.Run("commits when every write succeeds", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		scope := NewGormTransactionScope(gormDB)
		order, shipment := newDispatchPair(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "shipments"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := scope.Execute(ctx, dispatch(order, shipment))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the shipment insert when the order update fails", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		scope := NewGormTransactionScope(gormDB)
		order, shipment := newDispatchPair(t)

		updateErr := errors.New("connection reset by peer")
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "shipments"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnError(updateErr)
		mock.ExpectRollback()

		err := scope.Execute(ctx, dispatch(order, shipment))

		assert.ErrorIs(t, err, updateErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the shipment insert itself fails", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		scope := NewGormTransactionScope(gormDB)
		order, shipment := newDispatchPair(t)

		insertErr := errors.New("disk full")
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "shipments"`).
			WillReturnError(insertErr)
		mock.ExpectRollback()

		err := scope.Execute(ctx, dispatch(order, shipment))

		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
