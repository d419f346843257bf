package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Create creates a new shipment. A concurrent insert for the same order
// trips the unique index on order_id and surfaces as ALREADY_EXISTS.
func (r *GormShipmentRepository) Create(ctx context.Context, shipment *trade.Shipment) error {
	if err := r.db.WithContext(ctx).Create(shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "Order already has a shipment")
		}
		return err
	}
	return nil
}

// Update updates an existing shipment
func (r *GormShipmentRepository) Update(ctx context.Context, shipment *trade.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// FindByIDForTenant finds a shipment by ID within a tenant
func (r *GormShipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Shipment, error) {
	var shipment trade.Shipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindByOrderID finds the shipment for an order, if any
func (r *GormShipmentRepository) FindByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (*trade.Shipment, error) {
	var shipment trade.Shipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		First(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// ExistsByOrderID checks whether a shipment already exists for the order
func (r *GormShipmentRepository) ExistsByOrderID(ctx context.Context, tenantID, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Shipment{}).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAllForTenant returns shipments joined with order, driver, and vehicle data
func (r *GormShipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.ShipmentView, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&trade.Shipment{}).
		Where("shipments.tenant_id = ?", tenantID)
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("shipments.status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []*trade.ShipmentView
	query := base.
		Select("shipments.*, orders.order_number AS order_number, drivers.name AS driver_name, vehicles.plate_number AS vehicle_plate_number").
		Joins("JOIN orders ON orders.id = shipments.order_id").
		Joins("JOIN drivers ON drivers.id = shipments.driver_id").
		Joins("JOIN vehicles ON vehicles.id = shipments.vehicle_id").
		Order("shipments.created_at DESC")
	query = applyPagination(query, filter)
	if err := query.Find(&views).Error; err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ trade.ShipmentRepository = (*GormShipmentRepository)(nil)
