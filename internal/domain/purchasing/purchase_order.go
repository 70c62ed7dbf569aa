package purchasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusPending:
		return target == PurchaseOrderStatusOrdered || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusOrdered:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // terminal
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// PurchaseOrderItem is a line on a purchase order. ReceivedQuantity only ever
// grows and never beyond Quantity.
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         int64           `gorm:"not null"`
	ReceivedQuantity int64           `gorm:"not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates an order line with zero received quantity
func NewPurchaseOrderItem(productID uuid.UUID, productName string, quantity int64, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Ordered quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalCost:   unitCost.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// RemainingQuantity returns the quantity still to be received
func (i *PurchaseOrderItem) RemainingQuantity() int64 {
	return i.Quantity - i.ReceivedQuantity
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity >= i.Quantity
}

// AddReceivedQuantity increases the cumulative received quantity. The cap is
// enforced across batches, not per call.
func (i *PurchaseOrderItem) AddReceivedQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeValidation, "Receive quantity must be positive")
	}
	if i.ReceivedQuantity+quantity > i.Quantity {
		return shared.NewDomainError(shared.CodeOverReceipt,
			fmt.Sprintf("Cannot receive %d, only %d remaining", quantity, i.RemainingQuantity()))
	}

	i.ReceivedQuantity += quantity
	i.UpdatedAt = time.Now()
	return nil
}

// PurchaseOrder is the aggregate root for replenishment orders
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string              `gorm:"type:varchar(30);not null;uniqueIndex"`
	SupplierID   *uuid.UUID          `gorm:"type:uuid;index"`
	SupplierName string              `gorm:"type:varchar(200)"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	OrderDate    time.Time           `gorm:"not null"`
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Notes        string              `gorm:"type:varchar(500)"`
	CreatedBy    *uuid.UUID          `gorm:"type:uuid"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a pending order from its lines
func NewPurchaseOrder(orderNumber string, supplierID *uuid.UUID, supplierName string, items []PurchaseOrderItem, createdBy *uuid.UUID) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Order number is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "A purchase order requires at least one item")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalCost)
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Status:            PurchaseOrderStatusPending,
		OrderDate:         time.Now(),
		TotalAmount:       total,
		CreatedBy:         createdBy,
		Items:             items,
	}

	for idx := range order.Items {
		order.Items[idx].PurchaseOrderID = order.ID
	}

	return order, nil
}

// ChangeStatus performs an administrative status transition. It validates the
// state machine, requires a received date when completing, and never moves
// inventory.
func (o *PurchaseOrder) ChangeStatus(target PurchaseOrderStatus, receivedDate *time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, "Invalid purchase order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot transition purchase order from %s to %s", o.Status, target))
	}

	if target == PurchaseOrderStatusReceived {
		if receivedDate == nil {
			return shared.NewDomainError(shared.CodeValidation, "Received date is required when marking received")
		}
		o.ReceivedDate = receivedDate
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// ApplyReceipt records received units against one line. Only orders that
// have been placed can receive goods.
func (o *PurchaseOrder) ApplyReceipt(itemID uuid.UUID, quantity int64) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusOrdered {
		return nil, shared.NewDomainError(shared.CodeInvalidStateTransition,
			fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}

	item := o.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Purchase order item not found")
	}

	if err := item.AddReceivedQuantity(quantity); err != nil {
		return nil, err
	}

	o.UpdatedAt = time.Now()
	return item, nil
}

// FinalizeIfFullyReceived transitions to received once every line is
// complete. Returns true when the transition happened.
func (o *PurchaseOrder) FinalizeIfFullyReceived() bool {
	if o.Status != PurchaseOrderStatusOrdered || !o.IsFullyReceived() {
		return false
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusReceived
	o.ReceivedDate = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return true
}

// IsFullyReceived checks if all items have been fully received
func (o *PurchaseOrder) IsFullyReceived() bool {
	for _, item := range o.Items {
		if !item.IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetItemByProduct returns the first item for a product
func (o *PurchaseOrder) GetItemByProduct(productID uuid.UUID) *PurchaseOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// TotalRemainingQuantity returns the units still expected across all lines
func (o *PurchaseOrder) TotalRemainingQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.RemainingQuantity()
	}
	return total
}
