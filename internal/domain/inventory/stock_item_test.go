package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockItem(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates stock item", func(t *testing.T) {
		item, err := NewStockItem(tenantID, uuid.New(), uuid.New(), 40)

		require.NoError(t, err)
		assert.Equal(t, int64(40), item.Quantity)
		assert.Len(t, item.GetDomainEvents(), 1)
	})

	t.Run("allows zero quantity", func(t *testing.T) {
		_, err := NewStockItem(tenantID, uuid.New(), uuid.New(), 0)

		require.NoError(t, err)
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewStockItem(tenantID, uuid.New(), uuid.New(), -1)

		assert.Error(t, err)
	})

	t.Run("fails with nil warehouse", func(t *testing.T) {
		_, err := NewStockItem(tenantID, uuid.Nil, uuid.New(), 10)

		assert.Error(t, err)
	})
}

func TestStockItem_SetQuantity(t *testing.T) {
	item, _ := NewStockItem(uuid.New(), uuid.New(), uuid.New(), 10)
	item.ClearDomainEvents()

	require.NoError(t, item.SetQuantity(25))
	assert.Equal(t, int64(25), item.Quantity)

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*StockLevelChangedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(10), changed.PreviousQuantity)
	assert.Equal(t, int64(25), changed.Quantity)

	assert.Error(t, item.SetQuantity(-1))
}

func TestStockItem_Adjust(t *testing.T) {
	item, _ := NewStockItem(uuid.New(), uuid.New(), uuid.New(), 10)

	require.NoError(t, item.Adjust(-4))
	assert.Equal(t, int64(6), item.Quantity)

	err := item.Adjust(-7)
	assert.Error(t, err)
	assert.Equal(t, int64(6), item.Quantity)
}

func TestStockItem_IsBelow(t *testing.T) {
	item, _ := NewStockItem(uuid.New(), uuid.New(), uuid.New(), 19)

	assert.True(t, item.IsBelow(20))
	require.NoError(t, item.SetQuantity(20))
	assert.False(t, item.IsBelow(20))
}
