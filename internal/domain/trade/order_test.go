package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(t *testing.T) []OrderItem {
	t.Helper()
	a, err := NewOrderItem(uuid.New(), 2, decimal.NewFromFloat(9.50))
	require.NoError(t, err)
	b, err := NewOrderItem(uuid.New(), 1, decimal.NewFromInt(5))
	require.NoError(t, err)
	return []OrderItem{a, b}
}

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates pending order with items", func(t *testing.T) {
		order, err := NewOrder(tenantID, "Acme Retail", makeItems(t))

		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.NotEmpty(t, order.OrderNumber)
		assert.Len(t, order.Items, 2)
		for _, item := range order.Items {
			assert.Equal(t, order.ID, item.OrderID)
		}
	})

	t.Run("fails without items", func(t *testing.T) {
		_, err := NewOrder(tenantID, "Acme Retail", nil)

		assert.Error(t, err)
	})
}

func TestNewOrderItem(t *testing.T) {
	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), 0, decimal.NewFromInt(5))

		assert.Error(t, err)
	})

	t.Run("fails with negative unit price", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), 1, decimal.NewFromInt(-5))

		assert.Error(t, err)
	})
}

func TestOrder_TotalAmount(t *testing.T) {
	order, err := NewOrder(uuid.New(), "Acme Retail", makeItems(t))
	require.NoError(t, err)

	// 2 x 9.50 + 1 x 5
	assert.True(t, order.TotalAmount().Equal(decimal.NewFromInt(24)))
}

func TestOrder_MarkShipped(t *testing.T) {
	t.Run("pending order can be shipped", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "", makeItems(t))

		require.NoError(t, order.MarkShipped())
		assert.Equal(t, OrderStatusShipped, order.Status)
	})

	t.Run("cancelled order cannot be shipped", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "", makeItems(t))
		require.NoError(t, order.Cancel())

		assert.Error(t, order.MarkShipped())
	})

	t.Run("shipping twice fails", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "", makeItems(t))
		require.NoError(t, order.MarkShipped())

		assert.Error(t, order.MarkShipped())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "", makeItems(t))
		require.NoError(t, order.MarkShipped())

		err := order.Cancel()
		assert.Error(t, err)
		assert.Equal(t, OrderStatusShipped, order.Status)
	})

	t.Run("confirmed order can be cancelled", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "", makeItems(t))
		require.NoError(t, order.Confirm())

		require.NoError(t, order.Cancel())
		assert.True(t, order.IsCancelled())
	})
}

func TestOrder_MarkDelivered(t *testing.T) {
	order, _ := NewOrder(uuid.New(), "", makeItems(t))

	assert.Error(t, order.MarkDelivered())

	require.NoError(t, order.MarkShipped())
	require.NoError(t, order.MarkDelivered())
	assert.Equal(t, OrderStatusDelivered, order.Status)
}
