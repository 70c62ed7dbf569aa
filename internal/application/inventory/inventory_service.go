package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// InventoryService exposes read and policy operations on stock positions.
// Absolute adjustments go through the ledger like every other stock change.
type InventoryService struct {
	scope         TransactionScope
	inventoryRepo inventory.InventoryRepository
	ledger        *LedgerService
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(scope TransactionScope, inventoryRepo inventory.InventoryRepository, ledger *LedgerService) *InventoryService {
	return &InventoryService{
		scope:         scope,
		inventoryRepo: inventoryRepo,
		ledger:        ledger,
	}
}

// Get returns the stock position for a product
func (s *InventoryService) Get(ctx context.Context, productID uuid.UUID) (*InventoryResponse, error) {
	record, err := s.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToInventoryResponse(record)
	return &response, nil
}

// List returns stock positions matching the filter
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[InventoryResponse], error) {
	records, err := s.inventoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.inventoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(ToInventoryResponses(records), total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// ListLowStock returns products at or below their reorder level
func (s *InventoryService) ListLowStock(ctx context.Context, filter shared.Filter) ([]InventoryResponse, error) {
	records, err := s.inventoryRepo.FindLowStock(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToInventoryResponses(records), nil
}

// AdjustAbsolute sets the stock level to an absolute value by recording the
// signed difference as an adjustment movement. Setting the current value is a
// no-op and appends nothing.
func (s *InventoryService) AdjustAbsolute(ctx context.Context, productID uuid.UUID, req AdjustStockRequest, actorID *uuid.UUID) (*InventoryResponse, error) {
	if req.NewQuantity < 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Stock level cannot be negative")
	}

	var response InventoryResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.InventoryRepo().FindByProductIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.CodeUnknownProduct,
					"No inventory record exists for product "+productID.String())
			}
			return err
		}

		delta := req.NewQuantity - record.QuantityOnHand
		if delta == 0 {
			response = ToInventoryResponse(record)
			return nil
		}

		movementType := inventory.MovementTypeIn
		quantity := delta
		if delta < 0 {
			movementType = inventory.MovementTypeOut
			quantity = -delta
		}

		mvt, err := s.ledger.RecordWithin(ctx, repos, RecordMovementInput{
			ProductID:     productID,
			MovementType:  movementType,
			Quantity:      quantity,
			ReferenceType: inventory.ReferenceTypeAdjustment,
			Notes:         req.Notes,
			ActorID:       actorID,
		})
		if err != nil {
			return err
		}

		record.QuantityOnHand = mvt.BalanceAfter
		response = ToInventoryResponse(record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// SetReorderPolicy updates the reorder thresholds for a product
func (s *InventoryService) SetReorderPolicy(ctx context.Context, productID uuid.UUID, req SetReorderPolicyRequest) (*InventoryResponse, error) {
	record, err := s.inventoryRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := record.SetReorderPolicy(req.ReorderLevel, req.ReorderQuantity); err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}

	response := ToInventoryResponse(record)
	return &response, nil
}
