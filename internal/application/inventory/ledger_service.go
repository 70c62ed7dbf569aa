package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// LedgerService is the single entry point for stock changes. Every change is
// one appended movement plus the matching delta on the inventory record,
// committed together under a row lock on the product's inventory row.
type LedgerService struct {
	scope        TransactionScope
	movementRepo inventory.StockMovementRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope, movementRepo inventory.StockMovementRepository) *LedgerService {
	return &LedgerService{
		scope:        scope,
		movementRepo: movementRepo,
	}
}

// Record appends one movement in its own transaction
func (s *LedgerService) Record(ctx context.Context, input RecordMovementInput) (*MovementResponse, error) {
	var response MovementResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		mvt, err := s.RecordWithin(ctx, repos, input)
		if err != nil {
			return err
		}
		response = ToMovementResponse(mvt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// RecordWithin appends one movement inside an already-open transaction. This
// is how sales and receiving fold their stock effects into the same unit as
// their document writes.
func (s *LedgerService) RecordWithin(ctx context.Context, repos TransactionalRepositories, input RecordMovementInput) (*inventory.StockMovement, error) {
	record, err := repos.InventoryRepo().FindByProductIDForUpdate(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnknownProduct,
				"No inventory record exists for product "+input.ProductID.String())
		}
		return nil, err
	}

	balanceBefore := record.QuantityOnHand
	if err := record.Apply(input.MovementType, input.Quantity); err != nil {
		return nil, err
	}

	mvt, err := inventory.NewStockMovement(
		input.ProductID,
		input.MovementType,
		input.Quantity,
		balanceBefore,
		record.QuantityOnHand,
		input.ReferenceType,
		input.ReferenceID,
		input.Notes,
		input.ActorID,
	)
	if err != nil {
		return nil, err
	}

	if err := repos.MovementRepo().Append(ctx, mvt); err != nil {
		return nil, err
	}
	if err := repos.InventoryRepo().Save(ctx, record); err != nil {
		return nil, err
	}

	return mvt, nil
}

// MovementsFor returns the most recent movements for a product, newest first.
// limit <= 0 returns the full history.
func (s *LedgerService) MovementsFor(ctx context.Context, productID uuid.UUID, limit int) ([]MovementResponse, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}

	movements, err := s.movementRepo.FindByProductID(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	return ToMovementResponses(movements), nil
}

// MovementsForReference returns the movements caused by one business document
func (s *LedgerService) MovementsForReference(ctx context.Context, referenceType inventory.ReferenceType, referenceID uuid.UUID) ([]MovementResponse, error) {
	if !referenceType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Invalid reference type")
	}

	movements, err := s.movementRepo.FindByReference(ctx, referenceType, referenceID)
	if err != nil {
		return nil, err
	}

	return ToMovementResponses(movements), nil
}
