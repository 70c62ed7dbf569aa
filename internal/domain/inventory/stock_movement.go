package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	// MovementTypeIn represents stock entering inventory
	MovementTypeIn MovementType = "in"
	// MovementTypeOut represents stock leaving inventory
	MovementTypeOut MovementType = "out"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// ReferenceType identifies the kind of business document that caused a movement
type ReferenceType string

const (
	// ReferenceTypeSale links a movement to a sale
	ReferenceTypeSale ReferenceType = "sale"
	// ReferenceTypePurchase links a movement to a purchase order
	ReferenceTypePurchase ReferenceType = "purchase"
	// ReferenceTypeAdjustment marks a manual stock adjustment
	ReferenceTypeAdjustment ReferenceType = "adjustment"
)

// String returns the string representation of ReferenceType
func (r ReferenceType) String() string {
	return string(r)
}

// IsValid returns true if the reference type is valid
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceTypeSale, ReferenceTypePurchase, ReferenceTypeAdjustment:
		return true
	}
	return false
}

// StockMovement is one immutable entry in the stock ledger. Once created a
// movement is never modified or deleted; corrections are new movements.
type StockMovement struct {
	shared.BaseEntity
	ProductID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_stock_mvt_product_time,priority:1"`
	MovementType  MovementType  `gorm:"type:varchar(10);not null"`
	Quantity      int64         `gorm:"not null"` // always positive, direction comes from MovementType
	BalanceBefore int64         `gorm:"not null"`
	BalanceAfter  int64         `gorm:"not null"`
	ReferenceType ReferenceType `gorm:"type:varchar(20);not null;index:idx_stock_mvt_reference"`
	ReferenceID   *uuid.UUID    `gorm:"type:uuid;index:idx_stock_mvt_reference"`
	Notes         string        `gorm:"type:varchar(500)"`
	ActorID       *uuid.UUID    `gorm:"type:uuid"`
	OccurredAt    time.Time     `gorm:"not null;index:idx_stock_mvt_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new ledger entry. Balances are captured from the
// inventory record at the moment the movement is applied.
func NewStockMovement(
	productID uuid.UUID,
	movementType MovementType,
	quantity int64,
	balanceBefore int64,
	balanceAfter int64,
	referenceType ReferenceType,
	referenceID *uuid.UUID,
	notes string,
	actorID *uuid.UUID,
) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Invalid movement type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Movement quantity must be positive")
	}
	if !referenceType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Invalid reference type")
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     productID,
		MovementType:  movementType,
		Quantity:      quantity,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Notes:         notes,
		ActorID:       actorID,
		OccurredAt:    time.Now(),
	}, nil
}

// SignedQuantity returns the quantity with direction applied
func (m *StockMovement) SignedQuantity() int64 {
	if m.MovementType == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}
