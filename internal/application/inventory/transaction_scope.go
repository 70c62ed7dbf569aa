package inventory

import (
	"context"

	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/purchasing"
	"github.com/storefront/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories that
// participate in ledger-backed operations. Everything executed within one
// scope commits or rolls back as a unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current
// transaction. A sale writes its header, items and outbound movements through
// the same unit; receiving writes the purchase order and inbound movements
// the same way.
type TransactionalRepositories interface {
	// InventoryRepo returns the inventory repository scoped to the current transaction
	InventoryRepo() inventory.InventoryRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() sales.SaleRepository
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() purchasing.PurchaseOrderRepository
}

// NoOpTransactionScope runs scope functions without a real transaction.
// Used in tests where rollback semantics are not under test.
type NoOpTransactionScope struct {
	inventoryRepo     inventory.InventoryRepository
	movementRepo      inventory.StockMovementRepository
	saleRepo          sales.SaleRepository
	purchaseOrderRepo purchasing.PurchaseOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	inventoryRepo inventory.InventoryRepository,
	movementRepo inventory.StockMovementRepository,
	saleRepo sales.SaleRepository,
	purchaseOrderRepo purchasing.PurchaseOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inventoryRepo:     inventoryRepo,
		movementRepo:      movementRepo,
		saleRepo:          saleRepo,
		purchaseOrderRepo: purchaseOrderRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryRepository {
	return s.inventoryRepo
}

func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository {
	return s.saleRepo
}

func (s *NoOpTransactionScope) PurchaseOrderRepo() purchasing.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}
