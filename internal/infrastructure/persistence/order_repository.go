package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create creates a new order with its items
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update updates an existing order without touching its items
func (r *GormOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

// DeleteForTenant deletes an order and its items within a tenant
func (r *GormOrderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&trade.Order{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&trade.OrderItem{}, "order_id = ?", id).Error
	})
}

// FindByIDForTenant finds an order with its items within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant finds all orders for a tenant with pagination
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&trade.Order{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*trade.Order
	query := applyOrdering(base.Preload("Items"), filter, OrderSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountForTenant counts orders for a tenant
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindCreatedSince returns non-cancelled orders with items created on or
// after the given time
func (r *GormOrderRepository) FindCreatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time) ([]*trade.Order, error) {
	var orders []*trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND status <> ? AND created_at >= ?", tenantID, trade.OrderStatusCancelled, since).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindNonCancelled returns all non-cancelled orders with their items
func (r *GormOrderRepository) FindNonCancelled(ctx context.Context, tenantID uuid.UUID) ([]*trade.Order, error) {
	var orders []*trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND status <> ?", tenantID, trade.OrderStatusCancelled).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
