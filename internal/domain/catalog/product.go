package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a sellable SKU. It is the identity and price source for
// sales and purchasing; stock levels live in the inventory aggregate.
type Product struct {
	shared.BaseAggregateRoot
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(sku, name string, unitPrice, unitCost decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() || unitCost.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Prices cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		UnitPrice:         unitPrice,
		UnitCost:          unitCost,
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetPrices updates the selling price and cost price
func (p *Product) SetPrices(unitPrice, unitCost decimal.Decimal) error {
	if unitPrice.IsNegative() || unitCost.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Prices cannot be negative")
	}

	p.UnitPrice = unitPrice
	p.UnitCost = unitCost
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsSellable reports whether the product can appear on a new sale
func (p *Product) IsSellable() bool {
	return p.Status == ProductStatusActive
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError(shared.CodeValidation, "Product SKU is required")
	}
	if len(sku) > 50 {
		return shared.NewDomainError(shared.CodeValidation, "Product SKU cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeValidation, "Product name cannot exceed 200 characters")
	}
	return nil
}
