package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem represents a single line of an order
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times unit price
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Order represents a customer order.
// It is the aggregate root for order-related operations.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber  string      `gorm:"type:varchar(50);not null"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CustomerName string      `gorm:"type:varchar(200)"`
	Items        []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderItem creates an order line after validating its fields
func NewOrderItem(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (OrderItem, error) {
	if productID == uuid.Nil {
		return OrderItem{}, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return OrderItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: time.Now(),
	}, nil
}

// NewOrder creates a new order with at least one item
func NewOrder(tenantID uuid.UUID, customerName string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if len(customerName) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         generateOrderNumber(),
		Status:              OrderStatusPending,
		CustomerName:        customerName,
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// TotalAmount returns the sum of all line subtotals
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Confirm confirms a pending order
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be confirmed")
	}

	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkShipped flips the order to shipped when a shipment is created
func (o *Order) MarkShipped() error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled orders cannot be shipped")
	}
	if o.Status == OrderStatusShipped || o.Status == OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Order has already been shipped")
	}

	o.Status = OrderStatusShipped
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o))

	return nil
}

// MarkDelivered flips a shipped order to delivered
func (o *Order) MarkDelivered() error {
	if o.Status != OrderStatusShipped {
		return shared.NewDomainError("INVALID_STATE", "Only shipped orders can be delivered")
	}

	o.Status = OrderStatusDelivered
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o))

	return nil
}

// Cancel cancels the order; forbidden once shipped
func (o *Order) Cancel() error {
	if o.Status == OrderStatusShipped || o.Status == OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Shipped orders cannot be cancelled")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o))

	return nil
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

func generateOrderNumber() string {
	now := time.Now()
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), uuid.New().String()[:8])
}
