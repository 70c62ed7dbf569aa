package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/sales"
)

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	CustomerID     *uuid.UUID            `json:"customer_id"`
	Items          []CreateSaleItemInput `json:"items" binding:"required,min=1,dive"`
	Discount       decimal.Decimal       `json:"discount"`
	PaymentMethod  string                `json:"payment_method" binding:"omitempty,max=50"`
	Notes          string                `json:"notes" binding:"max=500"`
	IdempotencyKey string                `json:"-"`
}

// CreateSaleItemInput represents one line in the create sale request.
// Prices are not accepted from the client; they are snapshotted from the
// catalog at creation time.
type CreateSaleItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdatePaymentStatusRequest changes the payment state of a sale
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid partial refunded"`
}

// UpdatePaymentMethodRequest records how a sale was paid
type UpdatePaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,min=1,max=50"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	OrderID       *uuid.UUID         `json:"order_id,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentStatus string             `json:"payment_status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	SoldBy        *uuid.UUID         `json:"sold_by,omitempty"`
	SoldAt        time.Time          `json:"sold_at"`
}

// ToSaleResponse converts a domain sale to a response DTO
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}

	return SaleResponse{
		ID:            sale.ID,
		SaleNumber:    sale.SaleNumber,
		CustomerID:    sale.CustomerID,
		OrderID:       sale.OrderID,
		Items:         items,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentStatus: sale.PaymentStatus.String(),
		PaymentMethod: sale.PaymentMethod,
		Notes:         sale.Notes,
		SoldBy:        sale.SoldBy,
		SoldAt:        sale.SoldAt,
	}
}

// ToSaleResponses converts a slice of domain sales to response DTOs
func ToSaleResponses(items []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = ToSaleResponse(&items[i])
	}
	return responses
}
