package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		UnitPrice:   product.UnitPrice,
		UnitCost:    product.UnitCost,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ProductService manages the catalog. Creating a product also creates its
// empty inventory record so the ledger has a row to lock from day one.
type ProductService struct {
	productRepo   catalog.ProductRepository
	inventoryRepo inventory.InventoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, inventoryRepo inventory.InventoryRepository) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Create creates a product and its inventory record
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	// SKUs are stored uppercase; normalize before the duplicate check so
	// "widget-1" and "WIDGET-1" collide here, not on the unique index
	sku := strings.ToUpper(strings.TrimSpace(req.SKU))

	existing, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(sku, req.Name, req.UnitPrice, req.UnitCost)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if _, err := s.inventoryRepo.GetOrCreate(ctx, product.ID); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &paginated, nil
}

// Update updates a product's descriptive fields and prices
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.UnitPrice != nil || req.UnitCost != nil {
		price := product.UnitPrice
		cost := product.UnitCost
		if req.UnitPrice != nil {
			price = *req.UnitPrice
		}
		if req.UnitCost != nil {
			cost = *req.UnitCost
		}
		if err := product.SetPrices(price, cost); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate marks a product as no longer sellable
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Deactivate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func isNotFound(err error) bool {
	domainErr, ok := err.(*shared.DomainError)
	return ok && domainErr.Code == shared.CodeNotFound
}
