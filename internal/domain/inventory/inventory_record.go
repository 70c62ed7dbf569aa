package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// InventoryRecord is the stock position for a single product. QuantityOnHand
// is always the signed sum of the product's stock movements: the only code
// path that changes it is Apply, which callers reach through the ledger.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	QuantityOnHand   int64     `gorm:"not null;default:0"`
	ReservedQuantity int64     `gorm:"not null;default:0"`
	ReorderLevel     int64     `gorm:"not null;default:0"`
	ReorderQuantity  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory"
}

// NewInventoryRecord creates an empty inventory record for a product
func NewInventoryRecord(productID uuid.UUID) (*InventoryRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
	}, nil
}

// Apply applies a movement delta to the on-hand quantity. An outbound
// movement larger than the current balance is rejected and leaves the record
// untouched.
func (r *InventoryRecord) Apply(movementType MovementType, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeValidation, "Movement quantity must be positive")
	}

	switch movementType {
	case MovementTypeIn:
		r.QuantityOnHand += quantity
	case MovementTypeOut:
		if r.QuantityOnHand < quantity {
			return shared.ErrInsufficientStock
		}
		r.QuantityOnHand -= quantity
	default:
		return shared.NewDomainError(shared.CodeValidation, "Invalid movement type")
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetReorderPolicy updates the reorder thresholds. It never touches stock
// quantities and produces no ledger entry.
func (r *InventoryRecord) SetReorderPolicy(level, quantity int64) error {
	if level < 0 {
		return shared.NewDomainError(shared.CodeValidation, "Reorder level cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError(shared.CodeValidation, "Reorder quantity cannot be negative")
	}

	r.ReorderLevel = level
	r.ReorderQuantity = quantity
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// AvailableQuantity returns on-hand stock not held by a reservation
func (r *InventoryRecord) AvailableQuantity() int64 {
	return r.QuantityOnHand - r.ReservedQuantity
}

// IsLowStock reports whether the product is at or below its reorder level.
// Derived on read; never stored.
func (r *InventoryRecord) IsLowStock() bool {
	return r.QuantityOnHand <= r.ReorderLevel
}
