package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentStatus represents the payment state of a sale
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// SaleItem is a line on a completed sale. Unit price is a snapshot of the
// catalog price at the time of sale and never tracks later price changes.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a sale line with the total derived from quantity and price
func NewSaleItem(saleID, productID uuid.UUID, productName string, quantity int64, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit price cannot be negative")
	}

	now := time.Now()
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Sale is a committed transaction: once created its items and amounts are
// fixed. Only payment metadata may change afterwards.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber    string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex"` // set when converted from a customer order
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:varchar(500)"`
	SoldBy        *uuid.UUID      `gorm:"type:uuid"`
	SoldAt        time.Time       `gorm:"not null"`

	Items []SaleItem `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale assembles a sale from priced lines. Tax is computed on the subtotal
// with the rate configured for the deployment; discount is subtracted before
// tax is added.
func NewSale(saleNumber string, items []SaleItem, discount, taxRate decimal.Decimal, soldBy *uuid.UUID) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Sale number is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "A sale requires at least one item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Discount cannot be negative")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Tax rate cannot be negative")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	if discount.GreaterThan(subtotal) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Discount cannot exceed subtotal")
	}

	tax := subtotal.Mul(taxRate).Round(2)

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		Subtotal:          subtotal,
		Discount:          discount,
		Tax:               tax,
		Total:             subtotal.Sub(discount).Add(tax),
		PaymentStatus:     PaymentStatusPending,
		SoldBy:            soldBy,
		SoldAt:            time.Now(),
		Items:             items,
	}

	// bind lines to the generated sale ID
	for idx := range sale.Items {
		sale.Items[idx].SaleID = sale.ID
	}

	return sale, nil
}

// LinkOrder records the customer order this sale was converted from
func (s *Sale) LinkOrder(orderID uuid.UUID) {
	s.OrderID = &orderID
}

// SetCustomer records the customer the sale belongs to
func (s *Sale) SetCustomer(customerID uuid.UUID) {
	s.CustomerID = &customerID
}

// UpdatePaymentStatus changes the payment state. Purely administrative; it
// never touches inventory.
func (s *Sale) UpdatePaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, "Invalid payment status")
	}

	s.PaymentStatus = status
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// UpdatePaymentMethod records how the sale was paid
func (s *Sale) UpdatePaymentMethod(method string) error {
	if method == "" {
		return shared.NewDomainError(shared.CodeValidation, "Payment method is required")
	}

	s.PaymentMethod = method
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
