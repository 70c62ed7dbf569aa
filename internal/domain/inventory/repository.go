package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// InventoryRepository defines the interface for inventory record persistence
type InventoryRepository interface {
	// FindByID finds an inventory record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)

	// FindByProductID finds the inventory record for a product
	FindByProductID(ctx context.Context, productID uuid.UUID) (*InventoryRecord, error)

	// FindByProductIDForUpdate finds the inventory record for a product and
	// takes a row lock for the duration of the surrounding transaction.
	FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*InventoryRecord, error)

	// FindAll finds all inventory records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryRecord, error)

	// FindLowStock finds records where quantity on hand is at or below the reorder level
	FindLowStock(ctx context.Context, filter shared.Filter) ([]InventoryRecord, error)

	// GetOrCreate returns the record for a product, creating an empty one if absent
	GetOrCreate(ctx context.Context, productID uuid.UUID) (*InventoryRecord, error)

	// Save creates or updates an inventory record
	Save(ctx context.Context, record *InventoryRecord) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, record *InventoryRecord) error

	// Count counts inventory records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockMovementRepository defines the interface for the append-only ledger.
// There is deliberately no update or delete.
type StockMovementRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, movement *StockMovement) error

	// FindByProductID returns movements for a product, most recent first.
	// limit <= 0 means no limit.
	FindByProductID(ctx context.Context, productID uuid.UUID, limit int) ([]StockMovement, error)

	// FindByReference returns movements caused by a specific business document
	FindByReference(ctx context.Context, referenceType ReferenceType, referenceID uuid.UUID) ([]StockMovement, error)

	// FindAll finds movements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)

	// SumByProductID returns the signed sum of all movements for a product
	SumByProductID(ctx context.Context, productID uuid.UUID) (int64, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
