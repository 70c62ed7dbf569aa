package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatus represents the fulfilment state of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CustomerOrderItem is a line on a customer order
type CustomerOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CustomerOrderItem) TableName() string {
	return "customer_order_items"
}

// CustomerOrder is an order placed through the storefront. Delivered orders
// are the input to sale conversion; fulfilment itself happens upstream.
type CustomerOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DeliveredAt *time.Time

	Items []CustomerOrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (CustomerOrder) TableName() string {
	return "customer_orders"
}

// IsDelivered reports whether the order has completed fulfilment
func (o *CustomerOrder) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// MarkDelivered transitions the order to delivered
func (o *CustomerOrder) MarkDelivered() error {
	if o.Status != OrderStatusShipped && o.Status != OrderStatusPending {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Order cannot be delivered from status "+o.Status.String())
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}
