package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/trade"
)

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to create a new order
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required,min=1,max=200"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest transitions an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	TenantID     uuid.UUID           `json:"tenant_id"`
	OrderNumber  string              `json:"order_number"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// ToOrderResponse converts an order aggregate to its response form
func ToOrderResponse(order *trade.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}

	return &OrderResponse{
		ID:           order.ID,
		TenantID:     order.TenantID,
		OrderNumber:  order.OrderNumber,
		CustomerName: order.CustomerName,
		Status:       string(order.Status),
		Items:        items,
		TotalAmount:  order.TotalAmount(),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Version:      order.Version,
	}
}

// CreateShipmentRequest represents a request to dispatch an order
type CreateShipmentRequest struct {
	OrderID        uuid.UUID `json:"order_id" binding:"required"`
	DriverID       uuid.UUID `json:"driver_id" binding:"required"`
	VehicleID      uuid.UUID `json:"vehicle_id" binding:"required"`
	TrackingNumber string    `json:"tracking_number" binding:"required,min=1,max=100"`
}

// UpdateShipmentStatusRequest transitions a shipment to a new status
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=assigned in_transit delivered"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	OrderID        uuid.UUID  `json:"order_id"`
	DriverID       uuid.UUID  `json:"driver_id"`
	VehicleID      uuid.UUID  `json:"vehicle_id"`
	TrackingNumber string     `json:"tracking_number"`
	Status         string     `json:"status"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// ToShipmentResponse converts a shipment aggregate to its response form
func ToShipmentResponse(shipment *trade.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:             shipment.ID,
		TenantID:       shipment.TenantID,
		OrderID:        shipment.OrderID,
		DriverID:       shipment.DriverID,
		VehicleID:      shipment.VehicleID,
		TrackingNumber: shipment.TrackingNumber,
		Status:         string(shipment.Status),
		DeliveredAt:    shipment.DeliveredAt,
		CreatedAt:      shipment.CreatedAt,
		UpdatedAt:      shipment.UpdatedAt,
		Version:        shipment.Version,
	}
}

// ShipmentListItemResponse is a shipment joined with order, driver,
// and vehicle data for list views
type ShipmentListItemResponse struct {
	ShipmentResponse
	OrderNumber        string `json:"order_number"`
	DriverName         string `json:"driver_name"`
	VehiclePlateNumber string `json:"vehicle_plate_number"`
}

// ToShipmentListItemResponse converts a joined shipment row to its response form
func ToShipmentListItemResponse(view *trade.ShipmentView) *ShipmentListItemResponse {
	return &ShipmentListItemResponse{
		ShipmentResponse:   *ToShipmentResponse(&view.Shipment),
		OrderNumber:        view.OrderNumber,
		DriverName:         view.DriverName,
		VehiclePlateNumber: view.VehiclePlateNumber,
	}
}
