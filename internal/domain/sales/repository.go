package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its sale number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds all sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale together with its items
	Save(ctx context.Context, sale *Sale) error

	// ExistsByOrderID checks whether a sale already references a customer order
	ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error)

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateSaleNumber generates the next unique sale number
	GenerateSaleNumber(ctx context.Context) (string, error)
}

// CustomerOrderRepository defines the interface for customer order persistence
type CustomerOrderRepository interface {
	// FindByID finds a customer order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerOrder, error)

	// FindAll finds all customer orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CustomerOrder, error)

	// Save creates or updates a customer order together with its items
	Save(ctx context.Context, order *CustomerOrder) error

	// Count counts customer orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
