package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinventory "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/sales"
	"github.com/storefront/backend/internal/domain/shared"
)

// SaleService handles the sale lifecycle: point-of-sale creation, conversion
// of delivered customer orders, and payment metadata updates.
type SaleService struct {
	scope       appinventory.TransactionScope
	ledger      *appinventory.LedgerService
	saleRepo    sales.SaleRepository
	orderRepo   sales.CustomerOrderRepository
	productRepo catalog.ProductRepository
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	taxRate     decimal.Decimal
}

// NewSaleService creates a new SaleService. taxRate is the single configured
// rate applied to every sale's subtotal.
func NewSaleService(
	scope appinventory.TransactionScope,
	ledger *appinventory.LedgerService,
	saleRepo sales.SaleRepository,
	orderRepo sales.CustomerOrderRepository,
	productRepo catalog.ProductRepository,
	taxRate decimal.Decimal,
) *SaleService {
	return &SaleService{
		scope:       scope,
		ledger:      ledger,
		saleRepo:    saleRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		idemConfig:  shared.DefaultIdempotencyConfig(),
		taxRate:     taxRate,
	}
}

// SetIdempotencyStore enables duplicate-request protection for sale creation
func (s *SaleService) SetIdempotencyStore(store shared.IdempotencyStore, config shared.IdempotencyConfig) {
	s.idempotency = store
	s.idemConfig = config
}

// CreateSale creates a sale and writes one outbound ledger movement per line,
// all inside one transaction. If any line lacks stock nothing is committed.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest, actorID *uuid.UUID) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "A sale requires at least one item")
	}

	if err := s.reserveIdempotencyKey(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	response, err := s.createSale(ctx, req, actorID)
	if err != nil {
		// the key only guards committed sales; a failed attempt must not
		// block the client's retry for the whole TTL
		s.releaseIdempotencyKey(ctx, req.IdempotencyKey)
		return nil, err
	}
	return response, nil
}

func (s *SaleService) createSale(ctx context.Context, req CreateSaleRequest, actorID *uuid.UUID) (*SaleResponse, error) {
	items, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := sales.NewSale(saleNumber, items, req.Discount, s.taxRate, actorID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		sale.SetCustomer(*req.CustomerID)
	}
	sale.Notes = req.Notes
	if req.PaymentMethod != "" {
		if err := sale.UpdatePaymentMethod(req.PaymentMethod); err != nil {
			return nil, err
		}
	}

	if err := s.commitSale(ctx, sale, actorID); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// CreateSaleFromOrder converts a delivered customer order into a sale. The
// order's own line prices are kept; each order can be converted exactly once.
func (s *SaleService) CreateSaleFromOrder(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*SaleResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnknownOrder,
				"Customer order "+orderID.String()+" not found")
		}
		return nil, err
	}

	if !order.IsDelivered() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Only delivered orders can be converted, order is %s", order.Status))
	}

	converted, err := s.saleRepo.ExistsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if converted {
		return nil, shared.ErrDuplicateConversion
	}

	productIDs := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		productIDs[i] = item.ProductID
	}
	names, err := s.productNames(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items := make([]sales.SaleItem, 0, len(order.Items))
	for _, line := range order.Items {
		item, err := sales.NewSaleItem(uuid.Nil, line.ProductID, names[line.ProductID], line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx)
	if err != nil {
		return nil, err
	}

	sale, err := sales.NewSale(saleNumber, items, order.Discount, s.taxRate, actorID)
	if err != nil {
		return nil, err
	}
	sale.LinkOrder(order.ID)
	sale.SetCustomer(order.CustomerID)

	if err := s.commitSale(ctx, sale, actorID); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales matching the filter
func (s *SaleService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	items, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(ToSaleResponses(items), total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// UpdatePaymentStatus changes the payment state of a sale. Inventory is
// untouched; a refund that returns goods is a separate adjustment.
func (s *SaleService) UpdatePaymentStatus(ctx context.Context, saleID uuid.UUID, req UpdatePaymentStatusRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.UpdatePaymentStatus(sales.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// UpdatePaymentMethod records how a sale was paid
func (s *SaleService) UpdatePaymentMethod(ctx context.Context, saleID uuid.UUID, req UpdatePaymentMethodRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.UpdatePaymentMethod(req.PaymentMethod); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// priceItems loads the products and snapshots their current prices
func (s *SaleService) priceItems(ctx context.Context, inputs []CreateSaleItemInput) ([]sales.SaleItem, error) {
	productIDs := make([]uuid.UUID, len(inputs))
	for i, input := range inputs {
		productIDs[i] = input.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]sales.SaleItem, 0, len(inputs))
	for _, input := range inputs {
		product, ok := byID[input.ProductID]
		if !ok {
			return nil, shared.NewDomainError(shared.CodeUnknownProduct,
				"Product "+input.ProductID.String()+" not found")
		}
		if !product.IsSellable() {
			return nil, shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Product %s is not sellable", product.SKU))
		}

		item, err := sales.NewSaleItem(uuid.Nil, product.ID, product.Name, input.Quantity, product.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

func (s *SaleService) productNames(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(products))
	for _, product := range products {
		names[product.ID] = product.Name
	}
	return names, nil
}

// commitSale persists the sale header, its items and one outbound movement
// per line as a single transaction.
func (s *SaleService) commitSale(ctx context.Context, sale *sales.Sale, actorID *uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		saleID := sale.ID
		for _, item := range sale.Items {
			_, err := s.ledger.RecordWithin(ctx, repos, appinventory.RecordMovementInput{
				ProductID:     item.ProductID,
				MovementType:  inventory.MovementTypeOut,
				Quantity:      item.Quantity,
				ReferenceType: inventory.ReferenceTypeSale,
				ReferenceID:   &saleID,
				Notes:         "Sale " + sale.SaleNumber,
				ActorID:       actorID,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *SaleService) reserveIdempotencyKey(ctx context.Context, key string) error {
	if s.idempotency == nil || !s.idemConfig.Enabled || key == "" {
		return nil
	}

	fresh, err := s.idempotency.MarkProcessed(ctx, "sale:"+key, s.idemConfig.TTL)
	if err != nil {
		return err
	}
	if !fresh {
		return shared.NewDomainError(shared.CodeAlreadyExists,
			"A sale with this idempotency key was already submitted")
	}
	return nil
}

func (s *SaleService) releaseIdempotencyKey(ctx context.Context, key string) {
	if s.idempotency == nil || !s.idemConfig.Enabled || key == "" {
		return
	}

	// best effort: an unreleased key heals itself when the TTL expires
	_ = s.idempotency.Release(ctx, "sale:"+key)
}
