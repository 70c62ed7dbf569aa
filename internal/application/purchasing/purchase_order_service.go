package purchasing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appinventory "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/purchasing"
	"github.com/storefront/backend/internal/domain/shared"
)

// PurchaseOrderService handles the replenishment lifecycle: order creation,
// administrative status changes, and receiving goods into stock.
type PurchaseOrderService struct {
	scope       appinventory.TransactionScope
	ledger      *appinventory.LedgerService
	orderRepo   purchasing.PurchaseOrderRepository
	productRepo catalog.ProductRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	scope appinventory.TransactionScope,
	ledger *appinventory.LedgerService,
	orderRepo purchasing.PurchaseOrderRepository,
	productRepo catalog.ProductRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:       scope,
		ledger:      ledger,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create creates a pending purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest, actorID *uuid.UUID) (*PurchaseOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "A purchase order requires at least one item")
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, input := range req.Items {
		productIDs[i] = input.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, product := range products {
		names[product.ID] = product.Name
	}

	items := make([]purchasing.PurchaseOrderItem, 0, len(req.Items))
	for _, input := range req.Items {
		name, ok := names[input.ProductID]
		if !ok {
			return nil, shared.NewDomainError(shared.CodeUnknownProduct,
				"Product "+input.ProductID.String()+" not found")
		}

		item, err := purchasing.NewPurchaseOrderItem(input.ProductID, name, input.Quantity, input.UnitCost)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := purchasing.NewPurchaseOrder(orderNumber, req.SupplierID, req.SupplierName, items, actorID)
	if err != nil {
		return nil, err
	}
	order.ExpectedDate = req.ExpectedDate
	order.Notes = req.Notes

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders matching the filter
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(ToPurchaseOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// StatusSummary counts orders per lifecycle state
func (s *PurchaseOrderService) StatusSummary(ctx context.Context) (*StatusSummaryResponse, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusSummaryResponse{
		Pending:   counts[purchasing.PurchaseOrderStatusPending],
		Ordered:   counts[purchasing.PurchaseOrderStatusOrdered],
		Received:  counts[purchasing.PurchaseOrderStatusReceived],
		Cancelled: counts[purchasing.PurchaseOrderStatusCancelled],
	}, nil
}

// UpdateStatus performs an administrative transition. It never moves stock;
// goods enter inventory only through ReceiveItems.
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeStatus(purchasing.PurchaseOrderStatus(req.Status), req.ReceivedDate); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// ReceiveItems records one receiving batch. Every line increments its item's
// received quantity and appends one inbound ledger movement; the batch
// commits or rolls back as a whole. When the last outstanding unit arrives
// the order transitions to received automatically.
func (s *PurchaseOrderService) ReceiveItems(ctx context.Context, orderID uuid.UUID, req ReceiveItemsRequest, actorID *uuid.UUID) (*PurchaseOrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "A receiving batch requires at least one line")
	}

	var response PurchaseOrderResponse

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			item, err := order.ApplyReceipt(line.ItemID, line.Quantity)
			if err != nil {
				return err
			}

			_, err = s.ledger.RecordWithin(ctx, repos, appinventory.RecordMovementInput{
				ProductID:     item.ProductID,
				MovementType:  inventory.MovementTypeIn,
				Quantity:      line.Quantity,
				ReferenceType: inventory.ReferenceTypePurchase,
				ReferenceID:   &order.ID,
				Notes:         fmt.Sprintf("Receipt against %s", order.OrderNumber),
				ActorID:       actorID,
			})
			if err != nil {
				return err
			}
		}

		order.FinalizeIfFullyReceived()

		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		response = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}
